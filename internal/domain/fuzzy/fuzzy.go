// Package fuzzy defines the approximate-similarity boundary the resolver
// depends on. The core consumes Scorer and never owns the metric itself;
// RatioScorer adapts the Levenshtein primitive from
// github.com/lithammer/fuzzysearch into the token-based variants the
// resolver expects.
package fuzzy

import (
	"context"
	"fmt"
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okian/rostermatch/internal/domain/lexical"
)

// Variant selects the similarity flavor.
type Variant string

// Supported variants. TokenSet ignores token order and multiplicity
// differences; TokenSort only ignores order.
const (
	TokenSet  Variant = "token_set"
	TokenSort Variant = "token_sort"
)

// Result is one scored candidate. Index is the candidate's position in the
// input slice so callers can map back to their own records.
type Result struct {
	Name  string
	Score float64 // 0-100
	Index int
}

// Scorer ranks candidate names against a query text.
//
// Implementations must be deterministic for identical inputs, bounded in
// [0,100], score higher with growing token-multiset overlap regardless of
// token order, and lower with growing edit distance of non-overlapping
// tokens.
type Scorer interface {
	// ScoreAll scores every candidate and returns at most limit results
	// ordered by score descending.
	ScoreAll(ctx context.Context, query string, candidates []string, variant Variant, limit int) ([]Result, error)
}

// cancelCheckStride bounds how many candidates are scored between context
// checks.
const cancelCheckStride = 64

// RatioScorer implements Scorer on top of the fuzzysearch Levenshtein
// distance. It is stateless and safe for concurrent use.
type RatioScorer struct{}

// NewRatioScorer creates a new Levenshtein-backed scorer.
func NewRatioScorer() *RatioScorer {
	return &RatioScorer{}
}

// ScoreAll scores every candidate name against query.
func (s *RatioScorer) ScoreAll(ctx context.Context, query string, candidates []string, variant Variant, limit int) ([]Result, error) {
	var score func(a, b []string) float64
	switch variant {
	case TokenSet:
		score = tokenSetRatio
	case TokenSort:
		score = tokenSortRatio
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	queryTokens := lexical.Tokenize(query)

	results := make([]Result, 0, len(candidates))
	for i, name := range candidates {
		if i%cancelCheckStride == 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("scoring cancelled: %w", ctx.Err())
			default:
			}
		}
		results = append(results, Result{
			Name:  name,
			Score: score(queryTokens, lexical.Tokenize(name)),
			Index: i,
		})
	}

	// Order by score descending; equal scores keep input order.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ratio is the normalized Levenshtein similarity of two joined token
// strings, in [0,100].
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	dist := lfuzzy.LevenshteinDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

// tokenSortRatio compares the two token lists sorted and joined, making
// the score independent of token order.
func tokenSortRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return ratio(sortJoin(a), sortJoin(b))
}

// tokenSetRatio splits both token sets into intersection and differences
// and takes the best pairwise ratio. Shared tokens dominate, so a candidate
// fully contained in the query scores near 100 however much extra text
// surrounds it.
func tokenSetRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := toSet(a)
	setB := toSet(b)

	var common, diffA, diffB []string
	for token := range setA {
		if _, ok := setB[token]; ok {
			common = append(common, token)
		} else {
			diffA = append(diffA, token)
		}
	}
	for token := range setB {
		if _, ok := setA[token]; !ok {
			diffB = append(diffB, token)
		}
	}
	sort.Strings(common)
	sort.Strings(diffA)
	sort.Strings(diffB)

	base := strings.Join(common, " ")
	combinedA := joinNonEmpty(base, strings.Join(diffA, " "))
	combinedB := joinNonEmpty(base, strings.Join(diffB, " "))

	best := ratio(base, combinedA)
	if r := ratio(base, combinedB); r > best {
		best = r
	}
	if r := ratio(combinedA, combinedB); r > best {
		best = r
	}
	return best
}

func sortJoin(tokens []string) string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
