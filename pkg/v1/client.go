// Package v1 is the public Go API for a snipman snippet store.
package v1

import (
	"context"
	"fmt"
	"io"

	"github.com/4thel00z/snipman/internal"
)

// Client provides programmatic access to the snippet store.
type Client struct {
	uc     *internal.UseCases
	repo   internal.SnippetRepository
	search internal.SearchOptions
}

// New opens the snippet store. Without options it uses the default backend
// in the platform data directory.
func New(opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	cfg := internal.DefaultConfig()
	if cc.configPath != "" {
		loaded, err := internal.LoadConfig(cc.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if cc.backend != "" {
		cfg.Storage.Backend = cc.backend
	}
	if cc.dataDir != "" {
		cfg.Storage.Dir = cc.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := cfg.OpenRepository(cfg.DataDir(internal.DefaultPaths()))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	repoFor := func() (internal.SnippetRepository, error) { return repo, nil }
	search := internal.SearchOptions{
		MatchTags: cfg.Picker.MatchTags,
		MatchCode: cfg.Picker.MatchCode,
	}
	return &Client{
		uc:     internal.NewUseCases(repoFor, nil),
		repo:   repo,
		search: search,
	}, nil
}

// Add stores a new snippet. Descriptions must be unique.
func (c *Client) Add(ctx context.Context, description string, tags []string, code string) (Snippet, error) {
	out, err := c.uc.AddSnippet.Execute(ctx, internal.AddSnippetInput{
		Description: description,
		Tags:        tags,
		Source:      internal.CodeSource{Kind: internal.CodeInline, Text: code},
	})
	if err != nil {
		return Snippet{}, fmt.Errorf("add: %w", err)
	}
	return fromOutput(*out), nil
}

// Get retrieves a snippet by description.
func (c *Client) Get(ctx context.Context, description string) (Snippet, error) {
	out, err := c.uc.GetSnippet.Execute(ctx, internal.GetSnippetInput{Description: description})
	if err != nil {
		return Snippet{}, err
	}
	return fromOutput(*out), nil
}

// Remove deletes the snippet with the given description.
func (c *Client) Remove(ctx context.Context, description string) error {
	if _, err := c.uc.RemoveSnippet.Execute(ctx, internal.RemoveSnippetInput{Description: description}); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// List returns all snippets in insertion order.
func (c *Client) List(ctx context.Context) ([]Snippet, error) {
	out, err := c.uc.ListSnippets.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	snippets := make([]Snippet, 0, len(out.Snippets))
	for _, s := range out.Snippets {
		snippets = append(snippets, fromOutput(s))
	}
	return snippets, nil
}

// Search ranks snippets against query the way the interactive picker does:
// description matches first, then tag and code matches as configured under
// picker.match_tags and picker.match_code.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	out, err := c.uc.ListSnippets.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	snippets := make([]*internal.Snippet, len(out.Snippets))
	for i, s := range out.Snippets {
		snippets[i] = &internal.Snippet{ID: s.ID, Description: s.Description, Tags: s.Tags, Code: s.Code}
	}

	hits := internal.Search(query, snippets, c.search)
	results := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, SearchResult{
			Snippet:   fromSnippet(h.Snippet),
			Field:     h.Field.String(),
			Score:     h.Score,
			Positions: h.Positions,
		})
	}
	return results, nil
}

// Log returns up to limit commits of store history, newest first. Only the
// git backend keeps history; others return ErrNoHistory.
func (c *Client) Log(ctx context.Context, limit int) ([]Commit, error) {
	out, err := c.uc.Log.Execute(ctx, internal.LogInput{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}

	commits := make([]Commit, 0, len(out.Commits))
	for _, cm := range out.Commits {
		commits = append(commits, Commit{
			Hash:      cm.Hash,
			Message:   cm.Message,
			Author:    cm.Author,
			Timestamp: cm.Timestamp,
		})
	}
	return commits, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	if closer, ok := c.repo.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
