package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isSubsequence(q, c string) bool {
	q, c = strings.ToLower(q), strings.ToLower(c)
	i := 0
	for j := 0; j < len(c) && i < len(q); j++ {
		if c[j] == q[i] {
			i++
		}
	}
	return i == len(q)
}

func TestMatchSubsequence(t *testing.T) {
	candidates := []string{"Open file", "HTTP GET", "Read file", "git log --oneline", "docker ps -a"}
	queries := []string{"file", "of", "FILE", "gt", "htg", "xyz", "dps", "oa", "eof", "lg"}

	for _, q := range queries {
		for _, c := range candidates {
			_, ok := Match(q, c)
			assert.Equal(t, isSubsequence(q, c), ok, "Match(%q, %q)", q, c)
		}
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	r, ok := Match("HTTP", "http get")
	require.True(t, ok)
	assert.Len(t, r.Positions, 4)

	_, ok = Match("get", "HTTP GET")
	assert.True(t, ok)
}

func TestMatchEmptyQuery(t *testing.T) {
	r, ok := Match("", "anything")
	require.True(t, ok)
	assert.Equal(t, 0, r.Score)
	assert.Empty(t, r.Positions)
}

func TestRankFile(t *testing.T) {
	candidates := []string{"Open file", "HTTP GET", "Read file"}

	results := Rank("file", candidates)
	require.Len(t, results, 2)

	got := []string{candidates[results[0].Index], candidates[results[1].Index]}
	assert.ElementsMatch(t, []string{"Open file", "Read file"}, got)
}

func TestRankEmptyQueryPreservesOrder(t *testing.T) {
	candidates := []string{"zeta", "alpha", "mid", "alpha"}

	results := Rank("", candidates)
	require.Len(t, results, len(candidates))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, 0, r.Score)
	}
}

func TestRankPrefersContiguous(t *testing.T) {
	candidates := []string{"lazy dog", "log"}

	results := Rank("log", candidates)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Index)
}

func TestRankTieBreak(t *testing.T) {
	// identical candidates score the same; original order decides
	candidates := []string{"copy file", "copy file", "copy file"}

	results := Rank("cf", candidates)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
}

func TestRankStable(t *testing.T) {
	candidates := []string{"list files", "find large files", "file info", "tail log file", "profile"}

	first := Rank("fil", candidates)
	for range 5 {
		assert.Equal(t, first, Rank("fil", candidates))
	}
}

func TestRankNoMatches(t *testing.T) {
	assert.Empty(t, Rank("zzz", []string{"abc", "def"}))
	assert.Empty(t, Rank("a", nil))
}
