// Package team detects references to teams in free text. Detection feeds
// the aggregator's context boosts; it never scores entities itself.
package team

import (
	"sort"
	"strings"

	"github.com/okian/rostermatch/internal/domain/index"
)

// Detect scans text for team references and returns the set of matched
// team codes. It is a pure function: no side effects, identical output for
// identical input. An empty set is a valid result, not an error.
//
// Reference strings are tested per team in priority order: full name,
// location, nickname, code, alternates; the first hit wins for that team.
// When a location is shared by several teams, each sharer's own nickname is
// checked first; if none appears the whole group is added rather than
// guessing one team.
func Detect(text string, idx *index.Index) map[string]struct{} {
	mentioned := make(map[string]struct{})
	lower := strings.ToLower(text)

	for _, ref := range idx.TeamRefs() {
		if ref.FullName != "" && strings.Contains(lower, ref.FullName) {
			mentioned[ref.Code] = struct{}{}
			continue
		}

		if ref.Location != "" && strings.Contains(lower, ref.Location) {
			sharers := idx.LocationSharers(ref.Location)
			if len(sharers) > 1 {
				addLocationGroup(lower, idx, sharers, mentioned)
			} else {
				mentioned[ref.Code] = struct{}{}
			}
			continue
		}

		if ref.Nickname != "" && strings.Contains(lower, ref.Nickname) {
			mentioned[ref.Code] = struct{}{}
			continue
		}

		if ref.Abbrev != "" && strings.Contains(lower, ref.Abbrev) {
			mentioned[ref.Code] = struct{}{}
			continue
		}

		for _, alt := range ref.Alternates {
			if strings.Contains(lower, alt) {
				mentioned[ref.Code] = struct{}{}
				break
			}
		}
	}

	return mentioned
}

// addLocationGroup resolves a shared-location hit. A sharer whose own
// nickname appears in the text claims the mention; if no nickname appears,
// all sharers are added.
func addLocationGroup(lower string, idx *index.Index, sharers []string, mentioned map[string]struct{}) {
	claimed := false
	for _, code := range sharers {
		t, ok := idx.Team(code)
		if !ok {
			continue
		}
		nick := strings.ToLower(t.Nickname)
		if nick != "" && strings.Contains(lower, nick) {
			mentioned[code] = struct{}{}
			claimed = true
		}
	}
	if claimed {
		return
	}
	for _, code := range sharers {
		mentioned[code] = struct{}{}
	}
}

// Codes returns the detected set as a sorted slice for stable output.
func Codes(mentioned map[string]struct{}) []string {
	if len(mentioned) == 0 {
		return nil
	}
	codes := make([]string, 0, len(mentioned))
	for code := range mentioned {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
