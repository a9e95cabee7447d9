package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

func setupGitRepo(t *testing.T) (*GitRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")

	repo, err := OpenGitRepository(dir)
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	return repo, dir
}

func TestGitRepositoryInitializes(t *testing.T) {
	_, dir := setupGitRepo(t)

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Fatalf(".git missing: %v", err)
	}

	// reopening an existing repository works
	if _, err := OpenGitRepository(dir); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestGitRepositoryLoadEmpty(t *testing.T) {
	repo, _ := setupGitRepo(t)

	snippets, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snippets == nil || len(snippets) != 0 {
		t.Errorf("snippets = %v, want empty slice", snippets)
	}
}

func TestGitRepositorySaveAndLoad(t *testing.T) {
	repo, _ := setupGitRepo(t)
	ctx := context.Background()

	want := []*Snippet{
		{ID: "1", Description: "list", Tags: []string{"shell"}, Code: "ls -la\n"},
		{ID: "2", Description: "tabs", Tags: []string{}, Code: "a\tb\r\nc \"quoted\" ünïcode"},
	}
	if err := repo.Save(ctx, want, "add: list"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Description != want[i].Description || got[i].Code != want[i].Code {
			t.Errorf("snippet %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGitRepositoryCommitsEachChange(t *testing.T) {
	repo, _ := setupGitRepo(t)
	ctx := context.Background()

	a := &Snippet{ID: "1", Description: "a", Tags: []string{}, Code: "1"}
	b := &Snippet{ID: "2", Description: "b", Tags: []string{}, Code: "2"}

	if err := repo.Save(ctx, []*Snippet{a}, "add: a"); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := repo.Save(ctx, []*Snippet{a, b}, "add: b"); err != nil {
		t.Fatalf("save b: %v", err)
	}
	if err := repo.Save(ctx, []*Snippet{b}, "remove: a"); err != nil {
		t.Fatalf("remove a: %v", err)
	}

	commits, err := repo.Log(ctx, 0)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("commits = %d, want 3", len(commits))
	}
	if commits[0].Message != "remove: a" {
		t.Errorf("newest message = %q, want %q", commits[0].Message, "remove: a")
	}
	if commits[0].Author != DefaultAuthor {
		t.Errorf("author = %q, want %q", commits[0].Author, DefaultAuthor)
	}

	limited, err := repo.Log(ctx, 2)
	if err != nil {
		t.Fatalf("log limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited = %d, want 2", len(limited))
	}
}

func TestGitRepositoryUnchangedSaveMakesNoCommit(t *testing.T) {
	repo, _ := setupGitRepo(t)
	ctx := context.Background()

	snippets := []*Snippet{{ID: "1", Description: "a", Tags: []string{}, Code: "1"}}
	if err := repo.Save(ctx, snippets, "add: a"); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := repo.Save(ctx, loaded, "noop"); err != nil {
		t.Fatalf("resave: %v", err)
	}

	commits, err := repo.Log(ctx, 0)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 1 {
		t.Errorf("commits = %d, want 1", len(commits))
	}
}

func TestGitRepositoryLogWithoutCommits(t *testing.T) {
	repo, _ := setupGitRepo(t)

	commits, err := repo.Log(context.Background(), 10)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("commits = %d, want 0", len(commits))
	}
}

func TestGitRepositoryCorruptFile(t *testing.T) {
	repo, _ := setupGitRepo(t)

	if err := os.WriteFile(repo.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := repo.Load(context.Background())
	if !errors.Is(err, ErrCorruptStore) {
		t.Errorf("err = %v, want ErrCorruptStore", err)
	}

	if err := os.WriteFile(repo.Path(), []byte(`[null]`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = repo.Load(context.Background())
	if !errors.Is(err, ErrCorruptStore) {
		t.Errorf("null entry: err = %v, want ErrCorruptStore", err)
	}
}

func TestGitRepositoryWithStore(t *testing.T) {
	repo, dir := setupGitRepo(t)
	ctx := context.Background()

	store, err := OpenStore(ctx, repo)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	snip, err := NewSnippet("greet", []string{"demo"}, "echo hello")
	if err != nil {
		t.Fatalf("new snippet: %v", err)
	}
	if err := store.Add(ctx, snip); err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened, err := OpenGitRepository(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	store2, err := OpenStore(ctx, reopened)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	got, err := store2.Find("greet")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != snip.ID || got.Code != "echo hello" {
		t.Errorf("got %+v, want %+v", got, snip)
	}
}

func TestEncodeSnippetsNil(t *testing.T) {
	data, err := encodeSnippets(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("data = %q, want %q", data, "[]\n")
	}
}

func TestGitRepositoryDefaultBranch(t *testing.T) {
	repo, _ := setupGitRepo(t)

	snippets := []*Snippet{{ID: "1", Description: "a", Tags: []string{}, Code: "1"}}
	if err := repo.Save(context.Background(), snippets, "add: a"); err != nil {
		t.Fatalf("save: %v", err)
	}

	head, err := repo.repo.Head()
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if got := head.Name().Short(); got != DefaultBranch {
		t.Errorf("branch = %q, want %q", got, DefaultBranch)
	}
}

// failingWorktree stages through the real worktree but refuses to commit.
// With failAdd set, staging fails too.
type failingWorktree struct {
	gitWorktree
	failAdd bool
}

func (w failingWorktree) Add(path string) (plumbing.Hash, error) {
	if w.failAdd {
		return plumbing.ZeroHash, errors.New("index locked")
	}
	return w.gitWorktree.Add(path)
}

func (failingWorktree) Commit(string, *git.CommitOptions) (plumbing.Hash, error) {
	return plumbing.ZeroHash, errors.New("disk full")
}

func stagedHash(t *testing.T, repo *GitRepository) (plumbing.Hash, bool) {
	t.Helper()
	idx, err := repo.repo.Storer.Index()
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	entry, err := idx.Entry(SnippetsFilename)
	if errors.Is(err, index.ErrEntryNotFound) {
		return plumbing.ZeroHash, false
	}
	if err != nil {
		t.Fatalf("index entry: %v", err)
	}
	return entry.Hash, true
}

func assertClean(t *testing.T, repo *GitRepository) {
	t.Helper()
	wt, err := repo.repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	status, err := wt.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.IsClean() {
		t.Errorf("worktree not clean:\n%s", status)
	}
}

func TestGitRepositoryCommitFailureRestoresFileAndIndex(t *testing.T) {
	repo, _ := setupGitRepo(t)
	ctx := context.Background()

	store, err := OpenStore(ctx, repo)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	keep, _ := NewSnippet("keep", nil, "echo keep")
	drop, _ := NewSnippet("drop", nil, "echo drop")
	for _, snip := range []*Snippet{keep, drop} {
		if err := store.Add(ctx, snip); err != nil {
			t.Fatalf("add %s: %v", snip.Description, err)
		}
	}

	before, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	hashBefore, ok := stagedHash(t, repo)
	if !ok {
		t.Fatal("snippets.json not staged after add")
	}

	repo.worktree = failingWorktree{gitWorktree: repo.worktree}

	err = store.Remove(ctx, drop)
	if !errors.Is(err, ErrSave) {
		t.Fatalf("err = %v, want ErrSave", err)
	}

	after, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("file changed:\n%s\nwant:\n%s", after, before)
	}

	hashAfter, ok := stagedHash(t, repo)
	if !ok || hashAfter != hashBefore {
		t.Errorf("index entry = %v (staged %v), want %v", hashAfter, ok, hashBefore)
	}
	if want := plumbing.ComputeHash(plumbing.BlobObject, after); hashAfter != want {
		t.Errorf("index entry %v does not match file blob %v", hashAfter, want)
	}
	assertClean(t, repo)

	if all := store.All(); len(all) != 2 || all[0] != keep || all[1] != drop {
		t.Errorf("store = %v, want keep and drop", all)
	}
}

func TestGitRepositoryFirstCommitFailureLeavesNothing(t *testing.T) {
	repo, _ := setupGitRepo(t)
	repo.worktree = failingWorktree{gitWorktree: repo.worktree}

	snippets := []*Snippet{{ID: "1", Description: "a", Tags: []string{}, Code: "1"}}
	if err := repo.Save(context.Background(), snippets, "add: a"); err == nil {
		t.Fatal("expected commit error")
	}

	if _, err := os.Stat(repo.Path()); !os.IsNotExist(err) {
		t.Errorf("snippets.json should not exist, stat err = %v", err)
	}
	if _, ok := stagedHash(t, repo); ok {
		t.Error("snippets.json still staged")
	}
	assertClean(t, repo)
}

func TestGitRepositoryReportsFailedRestore(t *testing.T) {
	repo, _ := setupGitRepo(t)
	ctx := context.Background()

	first := []*Snippet{{ID: "1", Description: "a", Tags: []string{}, Code: "1"}}
	if err := repo.Save(ctx, first, "add: a"); err != nil {
		t.Fatalf("save: %v", err)
	}
	before, _ := os.ReadFile(repo.Path())

	repo.worktree = failingWorktree{gitWorktree: repo.worktree, failAdd: true}

	err := repo.Save(ctx, nil, "remove: a")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "stage snippets.json") || !strings.Contains(err.Error(), "restore snippets.json") {
		t.Errorf("err = %v, want both the stage and restore failures", err)
	}

	after, _ := os.ReadFile(repo.Path())
	if !bytes.Equal(before, after) {
		t.Errorf("file not restored: %q", after)
	}
}
