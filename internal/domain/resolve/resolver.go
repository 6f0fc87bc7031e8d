// Package resolve merges the evidence gathered by the lexical matcher, the
// fuzzy scorer and the team detector into one ranked candidate list.
//
// Merge semantics are strict: lexical and fuzzy evidence for the same
// entity max-merge, never sum. Addition happens in exactly one place, the
// team-context boost stages.
package resolve

import (
	"sort"
	"strings"

	"github.com/okian/rostermatch/internal/domain/index"
	"github.com/okian/rostermatch/internal/domain/model"
	"github.com/okian/rostermatch/internal/domain/team"
)

// Default scoring policy constants. Callers normally override these from
// configuration.
const (
	defaultTeamBoost      = 20
	defaultSurnameBoost   = 30
	defaultSurnamePenalty = 10
	defaultCutoff         = 85
	defaultLimit          = 5
)

// Aggregator runs the fixed stage order of one resolution call: merge,
// team-context boost, surname-collision resolution, rank and truncate.
// It is stateless across calls and safe for concurrent use.
type Aggregator struct {
	teamBoost      float64
	surnameBoost   float64
	surnamePenalty float64
	cutoff         float64
	limit          int
}

// NewAggregator creates an Aggregator with default policy, adjusted by opts.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		teamBoost:      defaultTeamBoost,
		surnameBoost:   defaultSurnameBoost,
		surnamePenalty: defaultSurnamePenalty,
		cutoff:         defaultCutoff,
		limit:          defaultLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Limit returns the configured result cap.
func (a *Aggregator) Limit() int { return a.limit }

// Aggregate combines per-source evidence into the final ranked resolution.
// The lexical and fuzzy maps are treated as immutable inputs; all score
// adjustments happen on a local copy. An empty outcome at any stage is a
// valid terminal state, never an error.
//
// Equal final scores rank by the entity's position in the roster the index
// was built from, keeping output deterministic.
func (a *Aggregator) Aggregate(idx *index.Index, lexical, fuzzy map[string]float64, mentioned map[string]struct{}) model.Resolution {
	// Stage 1: merge by maximum, never sum.
	scores := make(map[string]float64, len(lexical)+len(fuzzy))
	for id, score := range lexical {
		scores[id] = score
	}
	for id, score := range fuzzy {
		if score > scores[id] {
			scores[id] = score
		}
	}

	// Stage 2: team-context boost, the one additive step.
	if len(mentioned) > 0 {
		for id := range scores {
			if e, ok := idx.Entity(id); ok && onMentionedTeam(e, mentioned) {
				scores[id] += a.teamBoost
			}
		}
	}

	// Stage 3: surname-collision resolution.
	ambiguous := a.resolveSurnames(idx, scores, mentioned)

	// Stage 4: rank and truncate.
	ranked := make([]model.Candidate, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, model.Candidate{EntityID: id, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return idx.Order(ranked[i].EntityID) < idx.Order(ranked[j].EntityID)
	})
	if len(ranked) > a.limit {
		ranked = ranked[:a.limit]
	}

	matches := make([]model.Match, 0, len(ranked))
	for _, c := range ranked {
		e, ok := idx.Entity(c.EntityID)
		if !ok {
			continue
		}
		matches = append(matches, model.Match{Entity: e, Score: c.Score})
	}

	res := model.Resolution{
		Matches:   matches,
		Teams:     team.Codes(mentioned),
		Ambiguous: ambiguous,
	}
	if top, ok := res.Top(); ok && top.Score > a.cutoff {
		res.HighConfidence = true
	}
	return res
}

// resolveSurnames adjusts same-surname groups in place. With team context,
// members on a mentioned team gain surnameBoost while members whose team
// exists but was not mentioned lose surnamePenalty. Without team context
// the group stays untouched and the resolution is reported ambiguous.
func (a *Aggregator) resolveSurnames(idx *index.Index, scores map[string]float64, mentioned map[string]struct{}) bool {
	groups := make(map[string][]string)
	for id := range scores {
		e, ok := idx.Entity(id)
		if !ok {
			continue
		}
		surname := strings.ToLower(e.LastName)
		groups[surname] = append(groups[surname], id)
	}

	ambiguous := false
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		if len(mentioned) == 0 {
			ambiguous = true
			continue
		}
		for _, id := range members {
			e, ok := idx.Entity(id)
			if !ok {
				continue
			}
			switch {
			case onMentionedTeam(e, mentioned):
				scores[id] += a.surnameBoost
			case e.TeamCode != "":
				scores[id] -= a.surnamePenalty
			}
		}
	}
	return ambiguous
}

func onMentionedTeam(e model.Entity, mentioned map[string]struct{}) bool {
	if e.TeamCode == "" {
		return false
	}
	_, ok := mentioned[e.TeamCode]
	return ok
}
