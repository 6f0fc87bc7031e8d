// Package index builds the static lookup structures resolution runs
// against: name and alias maps for entities plus the team reference table.
//
// An Index is built once from roster data and is read-only afterwards.
// Concurrent resolution calls share one Index without locking; refreshes go
// through the Provider, which swaps a fully built replacement atomically.
package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rostermatch/internal/domain/model"
	"github.com/okian/rostermatch/pkg/metrics"
)

// AliasTable maps entity ids to their nickname strings. It is data-driven:
// roster growth means new table rows, not new code.
type AliasTable map[string][]string

// TeamRef is a team with all its reference strings pre-lowered, kept in the
// priority order the detector tests them: full name, location, nickname,
// code, alternates.
type TeamRef struct {
	Code       string
	FullName   string
	Location   string
	Nickname   string
	Abbrev     string
	Alternates []string
}

// Index holds the pre-built lookup structures. All maps key on normalized
// (lower-cased, trimmed) strings.
type Index struct {
	version string
	builtAt time.Time
	weights Weights

	entities map[string]model.Entity
	order    map[string]int // entity id -> position in the build slice
	names    []string       // canonical names in build order

	lastName  map[string][]string // last token -> entity ids
	firstName map[string][]string // first token -> entity ids
	nickname  map[string][]string // single-word alias -> entity ids
	multiword map[string][]string // multi-word alias -> entity ids
	byName    map[string][]string // canonical name -> entity ids

	teams          map[string]model.Team
	teamRefs       []TeamRef
	locationShares map[string][]string // location -> codes of all teams there
}

type builder struct {
	weights Weights
}

// Build constructs an Index from roster data. It is deterministic and
// idempotent for identical inputs. Any reference to an unknown entity or
// team id fails the build; nothing is silently skipped.
func Build(entities []model.Entity, teams []model.Team, aliases AliasTable, opts ...Option) (*Index, error) {
	start := time.Now()

	b := &builder{weights: defaultWeights}
	for _, opt := range opts {
		opt(b)
	}

	if len(entities) == 0 {
		return nil, ErrNoEntities
	}

	idx := &Index{
		version:        uuid.NewString(),
		builtAt:        time.Now(),
		weights:        b.weights,
		entities:       make(map[string]model.Entity, len(entities)),
		order:          make(map[string]int, len(entities)),
		names:          make([]string, 0, len(entities)),
		lastName:       make(map[string][]string),
		firstName:      make(map[string][]string),
		nickname:       make(map[string][]string),
		multiword:      make(map[string][]string),
		byName:         make(map[string][]string),
		teams:          make(map[string]model.Team, len(teams)),
		teamRefs:       make([]TeamRef, 0, len(teams)),
		locationShares: make(map[string][]string),
	}

	for _, t := range teams {
		code := strings.TrimSpace(t.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: team with empty code", ErrDuplicateTeam)
		}
		if _, dup := idx.teams[code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeam, code)
		}
		idx.teams[code] = t

		ref := TeamRef{
			Code:     code,
			FullName: normalize(t.FullName),
			Location: normalize(t.Location),
			Nickname: normalize(t.Nickname),
			Abbrev:   normalize(code),
		}
		for _, alt := range t.Alternates {
			if a := normalize(alt); a != "" {
				ref.Alternates = append(ref.Alternates, a)
			}
		}
		idx.teamRefs = append(idx.teamRefs, ref)
		if ref.Location != "" {
			idx.locationShares[ref.Location] = append(idx.locationShares[ref.Location], code)
		}
	}

	for i, e := range entities {
		name := strings.TrimSpace(e.CanonicalName)
		if name == "" {
			return nil, fmt.Errorf("%w: entity %q", ErrEmptyName, e.ID)
		}
		if _, dup := idx.entities[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntity, e.ID)
		}
		if e.TeamCode != "" {
			if _, ok := idx.teams[e.TeamCode]; !ok {
				return nil, fmt.Errorf("%w: entity %q -> team %q", ErrUnknownTeam, e.ID, e.TeamCode)
			}
		}

		tokens := strings.Fields(normalize(name))
		e.FirstName = tokens[0]
		e.LastName = tokens[len(tokens)-1]

		idx.entities[e.ID] = e
		idx.order[e.ID] = i
		idx.names = append(idx.names, name)
		idx.byName[normalize(name)] = append(idx.byName[normalize(name)], e.ID)
		idx.lastName[e.LastName] = append(idx.lastName[e.LastName], e.ID)
		idx.firstName[e.FirstName] = append(idx.firstName[e.FirstName], e.ID)
	}

	for entityID, names := range aliases {
		if _, ok := idx.entities[entityID]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entityID)
		}
		for _, alias := range names {
			key := normalize(alias)
			if key == "" {
				continue
			}
			if strings.ContainsRune(key, ' ') {
				idx.multiword[key] = appendUnique(idx.multiword[key], entityID)
			} else {
				idx.nickname[key] = appendUnique(idx.nickname[key], entityID)
			}
		}
	}

	// The alias table is a map; keep id lists deterministic regardless of
	// iteration order.
	for _, ids := range idx.nickname {
		idx.sortByOrder(ids)
	}
	for _, ids := range idx.multiword {
		idx.sortByOrder(ids)
	}

	metrics.RecordIndexBuild()
	metrics.RecordIndexBuildDuration(float64(time.Since(start).Milliseconds()))
	return idx, nil
}

// normalize lower-cases and trims an alias key.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func (i *Index) sortByOrder(ids []string) {
	sort.SliceStable(ids, func(a, b int) bool {
		return i.order[ids[a]] < i.order[ids[b]]
	})
}

// Version identifies this build; a rebuild always yields a new version.
func (i *Index) Version() string { return i.version }

// BuiltAt reports when the index was constructed.
func (i *Index) BuiltAt() time.Time { return i.builtAt }

// Weights returns the alias-kind base weights the index was built with.
func (i *Index) Weights() Weights { return i.weights }

// Entity returns the entity for id.
func (i *Index) Entity(id string) (model.Entity, bool) {
	e, ok := i.entities[id]
	return e, ok
}

// Order returns the build position of an entity id, used as the stable
// tie-break for equal scores. Unknown ids sort last.
func (i *Index) Order(id string) int {
	if pos, ok := i.order[id]; ok {
		return pos
	}
	return len(i.order)
}

// Names returns the canonical names in build order. Callers must not
// mutate the returned slice.
func (i *Index) Names() []string { return i.names }

// IDsForName returns the entity ids whose canonical name matches the
// normalized name.
func (i *Index) IDsForName(name string) []string { return i.byName[normalize(name)] }

// LastNameIDs returns entity ids whose last name equals token.
func (i *Index) LastNameIDs(token string) []string { return i.lastName[token] }

// FirstNameIDs returns entity ids whose first name equals token.
func (i *Index) FirstNameIDs(token string) []string { return i.firstName[token] }

// NicknameIDs returns entity ids for a single-word alias token.
func (i *Index) NicknameIDs(token string) []string { return i.nickname[token] }

// MultiwordIDs returns entity ids for a multi-word alias string.
func (i *Index) MultiwordIDs(phrase string) []string { return i.multiword[phrase] }

// Team returns the team for code.
func (i *Index) Team(code string) (model.Team, bool) {
	t, ok := i.teams[code]
	return t, ok
}

// TeamRefs returns the lowered team reference table in build order.
// Callers must not mutate the returned slice.
func (i *Index) TeamRefs() []TeamRef { return i.teamRefs }

// LocationSharers returns the codes of every team at a lowered location.
func (i *Index) LocationSharers(location string) []string {
	return i.locationShares[location]
}

// EntityCount returns the number of indexed entities.
func (i *Index) EntityCount() int { return len(i.entities) }

// TeamCount returns the number of indexed teams.
func (i *Index) TeamCount() int { return len(i.teams) }

// AliasCount returns the number of distinct alias keys across all kinds.
func (i *Index) AliasCount() int {
	return len(i.lastName) + len(i.firstName) + len(i.nickname) + len(i.multiword)
}
