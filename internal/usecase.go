package internal

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Use case input/output DTOs

type SnippetOutput struct {
	ID          string
	Description string
	Tags        []string
	Code        string
}

type AddSnippetInput struct {
	Description string
	Tags        []string
	Source      CodeSource
	Stdin       io.Reader
}

type GetSnippetInput struct {
	Description string
}

type RemoveSnippetInput struct {
	Description string
}

type ListSnippetsOutput struct {
	Snippets []SnippetOutput
}

type LogInput struct {
	Limit int
}

type CommitOutput struct {
	Hash      string
	Message   string
	Author    string
	Timestamp time.Time
}

type LogOutput struct {
	Commits []CommitOutput
}

// RepositoryFunc hands out the configured repository. Use cases call it
// lazily so commands that never touch storage never open it.
type RepositoryFunc func() (SnippetRepository, error)

func toSnippetOutput(s *Snippet) SnippetOutput {
	return SnippetOutput{
		ID:          s.ID,
		Description: s.Description,
		Tags:        s.Tags,
		Code:        s.Code,
	}
}

func openStore(ctx context.Context, repoFor RepositoryFunc) (*Store, error) {
	repo, err := repoFor()
	if err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}
	return OpenStore(ctx, repo)
}

// Use cases

type AddSnippetUseCase struct {
	repoFor RepositoryFunc
	editor  Editor
}

func NewAddSnippetUseCase(repoFor RepositoryFunc, editor Editor) *AddSnippetUseCase {
	return &AddSnippetUseCase{repoFor: repoFor, editor: editor}
}

func (uc *AddSnippetUseCase) Execute(ctx context.Context, input AddSnippetInput) (*SnippetOutput, error) {
	store, err := openStore(ctx, uc.repoFor)
	if err != nil {
		return nil, err
	}

	// Reject early so the user is not sent into an editor for nothing.
	if _, err := store.Find(input.Description); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateDescription, input.Description)
	}

	code, err := input.Source.Read(ctx, input.Stdin, uc.editor)
	if err != nil {
		return nil, err
	}

	snip, err := NewSnippet(input.Description, input.Tags, code)
	if err != nil {
		return nil, err
	}

	if err := store.Add(ctx, snip); err != nil {
		return nil, err
	}

	ForComponent("usecase").Info("snippet added", "id", snip.ID, "source", input.Source.Kind.String())

	out := toSnippetOutput(snip)
	return &out, nil
}

type ListSnippetsUseCase struct {
	repoFor RepositoryFunc
}

func NewListSnippetsUseCase(repoFor RepositoryFunc) *ListSnippetsUseCase {
	return &ListSnippetsUseCase{repoFor: repoFor}
}

func (uc *ListSnippetsUseCase) Execute(ctx context.Context) (*ListSnippetsOutput, error) {
	store, err := openStore(ctx, uc.repoFor)
	if err != nil {
		return nil, err
	}

	all := store.All()
	output := &ListSnippetsOutput{
		Snippets: make([]SnippetOutput, len(all)),
	}
	for i, snip := range all {
		output.Snippets[i] = toSnippetOutput(snip)
	}

	return output, nil
}

type GetSnippetUseCase struct {
	repoFor RepositoryFunc
}

func NewGetSnippetUseCase(repoFor RepositoryFunc) *GetSnippetUseCase {
	return &GetSnippetUseCase{repoFor: repoFor}
}

func (uc *GetSnippetUseCase) Execute(ctx context.Context, input GetSnippetInput) (*SnippetOutput, error) {
	store, err := openStore(ctx, uc.repoFor)
	if err != nil {
		return nil, err
	}

	snip, err := store.Find(input.Description)
	if err != nil {
		return nil, err
	}

	out := toSnippetOutput(snip)
	return &out, nil
}

type RemoveSnippetUseCase struct {
	repoFor RepositoryFunc
}

func NewRemoveSnippetUseCase(repoFor RepositoryFunc) *RemoveSnippetUseCase {
	return &RemoveSnippetUseCase{repoFor: repoFor}
}

func (uc *RemoveSnippetUseCase) Execute(ctx context.Context, input RemoveSnippetInput) (*SnippetOutput, error) {
	store, err := openStore(ctx, uc.repoFor)
	if err != nil {
		return nil, err
	}

	snip, err := store.RemoveByDescription(ctx, input.Description)
	if err != nil {
		return nil, err
	}

	ForComponent("usecase").Info("snippet removed", "id", snip.ID)

	out := toSnippetOutput(snip)
	return &out, nil
}

type LogUseCase struct {
	repoFor RepositoryFunc
}

func NewLogUseCase(repoFor RepositoryFunc) *LogUseCase {
	return &LogUseCase{repoFor: repoFor}
}

func (uc *LogUseCase) Execute(ctx context.Context, input LogInput) (*LogOutput, error) {
	repo, err := uc.repoFor()
	if err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}

	hist, ok := repo.(HistoryRepository)
	if !ok {
		return nil, ErrNoHistory
	}

	commits, err := hist.Log(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	output := &LogOutput{
		Commits: make([]CommitOutput, len(commits)),
	}
	for i, c := range commits {
		output.Commits[i] = CommitOutput{
			Hash:      c.Hash,
			Message:   c.Message,
			Author:    c.Author,
			Timestamp: c.Timestamp,
		}
	}

	return output, nil
}

// UseCases groups every use case the CLI and the public client need.
type UseCases struct {
	AddSnippet    *AddSnippetUseCase
	ListSnippets  *ListSnippetsUseCase
	GetSnippet    *GetSnippetUseCase
	RemoveSnippet *RemoveSnippetUseCase
	Log           *LogUseCase
}

func NewUseCases(repoFor RepositoryFunc, editor Editor) *UseCases {
	return &UseCases{
		AddSnippet:    NewAddSnippetUseCase(repoFor, editor),
		ListSnippets:  NewListSnippetsUseCase(repoFor),
		GetSnippet:    NewGetSnippetUseCase(repoFor),
		RemoveSnippet: NewRemoveSnippetUseCase(repoFor),
		Log:           NewLogUseCase(repoFor),
	}
}
