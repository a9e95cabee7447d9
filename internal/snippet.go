package internal

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound             = errors.New("snippet not found")
	ErrDuplicateDescription = errors.New("snippet with this description already exists")
	ErrEmptyDescription     = errors.New("description must not be empty")
	ErrCorruptStore         = errors.New("snippet store is corrupt")
	ErrSave                 = errors.New("save snippets")
	ErrNoHistory            = errors.New("storage backend has no history")
)

// Snippet is a stored code fragment. Snippets are never edited in place.
type Snippet struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Code        string   `json:"code"`
}

func NewSnippet(description string, tags []string, code string) (*Snippet, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			clean = append(clean, tag)
		}
	}

	return &Snippet{
		ID:          uuid.NewString(),
		Description: description,
		Tags:        clean,
		Code:        code,
	}, nil
}

// TagLine joins the tags into a single searchable string.
func (s *Snippet) TagLine() string {
	return strings.Join(s.Tags, " ")
}

// SnippetRepository is the durable storage behind a Store. Load returns an
// empty slice when nothing has been stored yet and wraps ErrCorruptStore when
// the stored data cannot be decoded.
type SnippetRepository interface {
	Load(ctx context.Context) ([]*Snippet, error)
	Save(ctx context.Context, snippets []*Snippet, message string) error
}
