package v1

import (
	"time"

	"github.com/4thel00z/snipman/internal"
)

// Errors returned by the client, for use with errors.Is.
var (
	ErrNotFound             = internal.ErrNotFound
	ErrDuplicateDescription = internal.ErrDuplicateDescription
	ErrEmptyDescription     = internal.ErrEmptyDescription
	ErrCorruptStore         = internal.ErrCorruptStore
	ErrNoHistory            = internal.ErrNoHistory
)

// Snippet represents a stored snippet.
type Snippet struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Code        string   `json:"code"`
}

// SearchResult is a fuzzy match on a snippet. Field is "description",
// "tags" or "code"; Positions are byte offsets into that field.
type SearchResult struct {
	Snippet   Snippet `json:"snippet"`
	Field     string  `json:"field"`
	Score     int     `json:"score"`
	Positions []int   `json:"positions,omitempty"`
}

// Commit represents a git commit in the snippet store.
type Commit struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

func fromSnippet(s *internal.Snippet) Snippet {
	return Snippet{
		ID:          s.ID,
		Description: s.Description,
		Tags:        s.Tags,
		Code:        s.Code,
	}
}

func fromOutput(s internal.SnippetOutput) Snippet {
	return Snippet{
		ID:          s.ID,
		Description: s.Description,
		Tags:        s.Tags,
		Code:        s.Code,
	}
}
