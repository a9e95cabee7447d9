package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/4thel00z/snipman/internal"
)

func TestRemoveCmd(t *testing.T) {
	uc, repo := setupCmdTest(t)
	addSnippets(t, uc, [2]string{"keep", "1"}, [2]string{"drop", "2"})

	cmd := NewRemoveCmd(uc.RemoveSnippet)
	cmd.SetArgs([]string{"-d", "drop"})
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	snippets := loadAll(t, repo)
	if len(snippets) != 1 || snippets[0].Description != "keep" {
		t.Errorf("snippets = %v, want only keep", snippets)
	}
	if !strings.Contains(out.String(), `"drop" deleted successfully`) {
		t.Errorf("output = %q", out.String())
	}
}

func TestRemoveCmdNotFound(t *testing.T) {
	uc, _ := setupCmdTest(t)

	cmd := NewRemoveCmd(uc.RemoveSnippet)
	cmd.SetArgs([]string{"-d", "ghost"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	if !errors.Is(err, internal.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveCmdAliases(t *testing.T) {
	cmd := NewRemoveCmd(nil)

	for _, alias := range []string{"rm", "del"} {
		if !cmd.HasAlias(alias) {
			t.Errorf("missing alias %q", alias)
		}
	}
}
