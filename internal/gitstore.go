package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const (
	SnippetsFilename = "snippets.json"
	DefaultBranch    = "main"
	DefaultAuthor    = "snipman"
	DefaultEmail     = "snipman@local"
)

// gitWorktree is the part of *git.Worktree a save touches.
type gitWorktree interface {
	Add(path string) (plumbing.Hash, error)
	Remove(path string) (plumbing.Hash, error)
	Commit(msg string, opts *git.CommitOptions) (plumbing.Hash, error)
}

// GitRepository keeps snippets.json in a git worktree and commits every
// save that changes it.
type GitRepository struct {
	repo     *git.Repository
	worktree gitWorktree
	rootPath string
}

// OpenGitRepository opens the repository in dir, initializing it first when
// dir does not hold one yet.
func OpenGitRepository(dir string) (*GitRepository, error) {
	if _, err := os.Stat(filepath.Join(dir, git.GitDirName)); os.IsNotExist(err) {
		if err := InitGitRepository(dir); err != nil {
			return nil, err
		}
	}

	storage := filesystem.NewStorage(osfs.New(filepath.Join(dir, git.GitDirName)), cache.NewObjectLRUDefault())

	repo, err := git.Open(storage, osfs.New(dir))
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}

	return &GitRepository{
		repo:     repo,
		worktree: worktree,
		rootPath: dir,
	}, nil
}

func InitGitRepository(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	storage := filesystem.NewStorage(osfs.New(filepath.Join(dir, git.GitDirName)), cache.NewObjectLRUDefault())

	_, err := git.InitWithOptions(storage, osfs.New(dir), git.InitOptions{
		DefaultBranch: plumbing.NewBranchReferenceName(DefaultBranch),
	})
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	return nil
}

func (r *GitRepository) Path() string {
	return filepath.Join(r.rootPath, SnippetsFilename)
}

func (r *GitRepository) Load(ctx context.Context) ([]*Snippet, error) {
	data, err := os.ReadFile(r.Path())
	if os.IsNotExist(err) {
		return []*Snippet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SnippetsFilename, err)
	}

	return decodeSnippets(data)
}

func (r *GitRepository) Save(ctx context.Context, snippets []*Snippet, message string) error {
	data, err := encodeSnippets(snippets)
	if err != nil {
		return err
	}

	previous, err := os.ReadFile(r.Path())
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", SnippetsFilename, err)
	}
	if existed && bytes.Equal(previous, data) {
		return nil
	}

	if err := writeFileAtomic(r.Path(), data); err != nil {
		return err
	}

	if err := r.commit(message); err != nil {
		if rerr := r.rollback(previous, existed); rerr != nil {
			return errors.Join(err, fmt.Errorf("restore %s: %w", SnippetsFilename, rerr))
		}
		return err
	}

	return nil
}

// rollback puts both the file and its index entry back to the state before
// a failed commit, so the worktree, the index and HEAD agree again.
func (r *GitRepository) rollback(previous []byte, existed bool) error {
	if existed {
		if err := writeFileAtomic(r.Path(), previous); err != nil {
			return err
		}
		if _, err := r.worktree.Add(SnippetsFilename); err != nil {
			return fmt.Errorf("restage: %w", err)
		}
		return nil
	}

	if err := os.Remove(r.Path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if _, err := r.worktree.Remove(SnippetsFilename); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
		return fmt.Errorf("unstage: %w", err)
	}
	return nil
}

func (r *GitRepository) commit(message string) error {
	if _, err := r.worktree.Add(SnippetsFilename); err != nil {
		return fmt.Errorf("stage %s: %w", SnippetsFilename, err)
	}

	if message == "" {
		message = "update snippets"
	}

	_, err := r.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  DefaultAuthor,
			Email: DefaultEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Log returns up to limit commits, newest first. A limit <= 0 returns all.
func (r *GitRepository) Log(ctx context.Context, limit int) ([]*Commit, error) {
	if _, err := r.repo.Head(); err != nil {
		return []*Commit{}, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	var commits []*Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(commits) >= limit {
			return io.EOF
		}
		commits = append(commits, toCommit(c))
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return commits, nil
}

func toCommit(c *object.Commit) *Commit {
	return &Commit{
		Hash:      c.Hash.String(),
		Message:   strings.TrimSpace(c.Message),
		Author:    c.Author.Name,
		Timestamp: c.Author.When,
	}
}

func encodeSnippets(snippets []*Snippet) ([]byte, error) {
	if snippets == nil {
		snippets = []*Snippet{}
	}
	data, err := json.MarshalIndent(snippets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snippets: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeSnippets(data []byte) ([]*Snippet, error) {
	var snippets []*Snippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	for i, snip := range snippets {
		if snip == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrCorruptStore, i)
		}
	}
	if snippets == nil {
		snippets = []*Snippet{}
	}
	return snippets, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snippets-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
