// Package model contains domain models passed between layers.
package model

// Entity represents a roster member that text can be matched against.
// Entities are immutable after the roster index is built.
type Entity struct {
	ID            string `json:"id"`             // unique entity identifier
	CanonicalName string `json:"canonical_name"` // full display name, e.g. "LeBron James"
	FirstName     string `json:"first_name"`     // derived: first token of CanonicalName, lower-cased
	LastName      string `json:"last_name"`      // derived: last token of CanonicalName, lower-cased
	TeamCode      string `json:"team_code,omitempty"`
}

// Team represents a secondary entity used for contextual disambiguation.
type Team struct {
	Code       string   // unique key, e.g. "LAL"
	FullName   string   // e.g. "Los Angeles Lakers"
	Location   string   // e.g. "Los Angeles"
	Nickname   string   // e.g. "Lakers"
	Alternates []string // extra alias strings, e.g. "The Lakers", "LA Lakers"
}

// AliasKind classifies how an alias string refers to an entity. Each kind
// carries a base confidence weight used by the lexical matcher.
type AliasKind int

// Alias kinds in ascending base-weight order.
const (
	AliasFirstName AliasKind = iota // weight 70
	AliasLastName                   // weight 80
	AliasNickname                   // weight 90, single- or multi-word
)

// Candidate is a transient scored reference to an entity. It exists only
// for the lifetime of one resolution call.
type Candidate struct {
	EntityID string
	Score    float64
}

// Match is a resolved candidate carrying the full entity record.
type Match struct {
	Entity Entity  `json:"entity"`
	Score  float64 `json:"score"`
}

// Resolution is the final output of one resolution call.
type Resolution struct {
	// Matches holds at most the configured limit of entities, ranked by
	// final score descending.
	Matches []Match `json:"matches"`

	// Teams contains the codes of teams detected in the text, sorted.
	Teams []string `json:"teams,omitempty"`

	// Ambiguous is set when a surname collision survived with no team
	// context to resolve it. The ranking is still valid; a downstream
	// disambiguation step may want to intervene.
	Ambiguous bool `json:"ambiguous,omitempty"`

	// HighConfidence is set when the top match cleared the configured
	// cutoff and can be treated as a singular answer.
	HighConfidence bool `json:"high_confidence,omitempty"`
}

// Top returns the best match and true, or a zero Match and false when the
// resolution is empty.
func (r Resolution) Top() (Match, bool) {
	if len(r.Matches) == 0 {
		return Match{}, false
	}
	return r.Matches[0], true
}
