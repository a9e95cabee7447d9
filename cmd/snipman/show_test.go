package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/4thel00z/snipman/internal"
)

func TestShowCmd(t *testing.T) {
	uc, _ := setupCmdTest(t)
	addSnippets(t, uc, [2]string{"loop", "for i in 1 2 3; do\n\techo $i\ndone\n"})

	cmd := NewShowCmd(uc.GetSnippet)
	cmd.SetArgs([]string{"loop"})
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if out.String() != "for i in 1 2 3; do\n\techo $i\ndone\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestShowCmdNotFound(t *testing.T) {
	uc, _ := setupCmdTest(t)

	cmd := NewShowCmd(uc.GetSnippet)
	cmd.SetArgs([]string{"missing"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	if !errors.Is(err, internal.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
