// Package match scores queries against candidate strings for the picker.
//
// Scoring comes from github.com/sahilm/fuzzy: a candidate matches when the
// query runes appear in it in order, ignoring case, and the score rewards
// adjacent runs, matches right after a separator or at a camelCase boundary,
// and a match on the first character, while unmatched leading characters
// cost points. Rank turns that into a total order: score descending, then
// shorter candidates first, then original position.
package match

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// Result is one matched candidate. Positions are byte offsets into the
// candidate, ascending.
type Result struct {
	Index     int
	Score     int
	Positions []int
}

// Match scores a single candidate. The empty query matches with score 0.
func Match(query, candidate string) (Result, bool) {
	results := Rank(query, []string{candidate})
	if len(results) == 0 {
		return Result{}, false
	}
	return results[0], true
}

// Rank matches query against every candidate and returns the matches best
// first. Ranking the same input twice yields the same order.
func Rank(query string, candidates []string) []Result {
	if query == "" {
		results := make([]Result, len(candidates))
		for i := range candidates {
			results[i] = Result{Index: i}
		}
		return results
	}

	matches := fuzzy.Find(query, candidates)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Index:     m.Index,
			Score:     m.Score,
			Positions: m.MatchedIndexes,
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if la, lb := len(candidates[a.Index]), len(candidates[b.Index]); la != lb {
			return la < lb
		}
		return a.Index < b.Index
	})

	return results
}
