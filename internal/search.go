package internal

import "github.com/4thel00z/snipman/internal/match"

// MatchField names the part of a snippet a search hit matched on.
type MatchField int

const (
	FieldDescription MatchField = iota
	FieldTags
	FieldCode
)

func (f MatchField) String() string {
	switch f {
	case FieldTags:
		return "tags"
	case FieldCode:
		return "code"
	default:
		return "description"
	}
}

type SearchOptions struct {
	MatchTags bool
	MatchCode bool
}

// SearchHit is one ranked snippet. Positions are byte offsets into the
// matched field.
type SearchHit struct {
	Snippet   *Snippet
	Field     MatchField
	Score     int
	Positions []int
}

// Search ranks snippets against query in tiers: description matches first,
// then snippets matched only by their tags, then those matched only by their
// code. Each tier keeps its own score order. The empty query returns every
// snippet in store order.
func Search(query string, snippets []*Snippet, opts SearchOptions) []SearchHit {
	fields := []MatchField{FieldDescription}
	if query != "" && opts.MatchTags {
		fields = append(fields, FieldTags)
	}
	if query != "" && opts.MatchCode {
		fields = append(fields, FieldCode)
	}

	hits := make([]SearchHit, 0, len(snippets))
	seen := make(map[int]bool, len(snippets))
	for _, field := range fields {
		for _, r := range match.Rank(query, fieldValues(snippets, field)) {
			if seen[r.Index] {
				continue
			}
			seen[r.Index] = true
			hits = append(hits, SearchHit{
				Snippet:   snippets[r.Index],
				Field:     field,
				Score:     r.Score,
				Positions: r.Positions,
			})
		}
	}
	return hits
}

func fieldValues(snippets []*Snippet, field MatchField) []string {
	values := make([]string, len(snippets))
	for i, snip := range snippets {
		switch field {
		case FieldTags:
			values[i] = snip.TagLine()
		case FieldCode:
			values[i] = snip.Code
		default:
			values[i] = snip.Description
		}
	}
	return values
}
