package internal

import (
	"context"
	"fmt"
	"slices"
)

// Store is the in-memory, insertion-ordered snippet collection. Every
// mutation is saved to the repository before it becomes visible, so a failed
// save leaves the store exactly as it was.
type Store struct {
	repo     SnippetRepository
	snippets []*Snippet
}

// OpenStore loads the repository contents. A corrupt repository is returned
// as an error wrapping ErrCorruptStore.
func OpenStore(ctx context.Context, repo SnippetRepository) (*Store, error) {
	snippets, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snippets: %w", err)
	}
	return &Store{repo: repo, snippets: snippets}, nil
}

// All returns the snippets in insertion order. The slice is a copy; the
// snippets themselves are shared and must not be modified.
func (s *Store) All() []*Snippet {
	return slices.Clone(s.snippets)
}

func (s *Store) Len() int {
	return len(s.snippets)
}

// Find returns the first snippet with the given description.
func (s *Store) Find(description string) (*Snippet, error) {
	for _, snip := range s.snippets {
		if snip.Description == description {
			return snip, nil
		}
	}
	return nil, ErrNotFound
}

// Add appends a snippet. Descriptions are unique.
func (s *Store) Add(ctx context.Context, snip *Snippet) error {
	if snip.Description == "" {
		return ErrEmptyDescription
	}
	if _, err := s.Find(snip.Description); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateDescription, snip.Description)
	}

	next := append(slices.Clone(s.snippets), snip)
	return s.commit(ctx, next, fmt.Sprintf("add: %s", snip.Description))
}

// Remove deletes exactly the given snippet, matched by identity.
func (s *Store) Remove(ctx context.Context, snip *Snippet) error {
	idx := slices.Index(s.snippets, snip)
	if idx < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.snippets), idx, idx+1)
	return s.commit(ctx, next, fmt.Sprintf("remove: %s", snip.Description))
}

// RemoveByDescription deletes the snippet with the given description and
// returns it.
func (s *Store) RemoveByDescription(ctx context.Context, description string) (*Snippet, error) {
	snip, err := s.Find(description)
	if err != nil {
		return nil, err
	}
	if err := s.Remove(ctx, snip); err != nil {
		return nil, err
	}
	return snip, nil
}

func (s *Store) commit(ctx context.Context, next []*Snippet, message string) error {
	if err := s.repo.Save(ctx, next, message); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	s.snippets = next
	return nil
}
