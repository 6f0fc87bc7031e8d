// Package lexical matches direct name and alias hits against the roster
// index. It is the exact-lookup half of evidence gathering; approximate
// similarity lives behind the fuzzy scorer boundary.
package lexical

import (
	"regexp"
	"strings"

	"github.com/okian/rostermatch/internal/domain/index"
)

// tokenPattern splits text into word tokens, dropping punctuation.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lower-cases text and returns its word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Match scans text for alias hits and returns entity id -> score. Each
// token is looked up as a last name, first name and single-word nickname;
// adjacent token bigrams are looked up as multi-word nicknames. An entity
// reachable through several alias kinds keeps only the maximum score: this
// is a max-merge, never additive.
func Match(text string, idx *index.Index) map[string]float64 {
	scores := make(map[string]float64)
	weights := idx.Weights()

	tokens := Tokenize(text)
	for _, token := range tokens {
		record(scores, idx.LastNameIDs(token), weights.LastName)
		record(scores, idx.FirstNameIDs(token), weights.FirstName)
		record(scores, idx.NicknameIDs(token), weights.Nickname)
	}

	for i := 0; i+1 < len(tokens); i++ {
		bigram := tokens[i] + " " + tokens[i+1]
		record(scores, idx.MultiwordIDs(bigram), weights.Nickname)
	}

	return scores
}

// record max-merges score for every id.
func record(scores map[string]float64, ids []string, score float64) {
	for _, id := range ids {
		if score > scores[id] {
			scores[id] = score
		}
	}
}
