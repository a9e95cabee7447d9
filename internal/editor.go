package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/mattn/go-shellwords"
)

var ErrEditor = errors.New("editor failed")

// Editor lets the user compose text interactively.
type Editor interface {
	Edit(ctx context.Context, initial string) (string, error)
}

// ExecEditor runs an external editor on a temporary file.
type ExecEditor struct {
	Getenv   func(string) string
	LookPath func(string) (string, error)
	GOOS     string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

func NewExecEditor() *ExecEditor {
	return &ExecEditor{
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
		GOOS:     runtime.GOOS,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Command resolves the editor argv: $VISUAL, then $EDITOR, then a platform
// default.
func (e *ExecEditor) Command() ([]string, error) {
	cmdline := e.Getenv("VISUAL")
	if cmdline == "" {
		cmdline = e.Getenv("EDITOR")
	}

	if cmdline != "" {
		args, err := shellwords.Parse(cmdline)
		if err != nil {
			return nil, fmt.Errorf("%w: parse %q: %v", ErrEditor, cmdline, err)
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: empty $VISUAL/$EDITOR", ErrEditor)
		}
		return args, nil
	}

	switch e.GOOS {
	case "windows":
		return []string{"notepad.exe"}, nil
	case "darwin":
		return []string{"open", "-W", "-t"}, nil
	default:
		if _, err := e.LookPath("nano"); err == nil {
			return []string{"nano"}, nil
		}
		return []string{"vi"}, nil
	}
}

func (e *ExecEditor) Edit(ctx context.Context, initial string) (string, error) {
	args, err := e.Command()
	if err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp("", "snipman-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(initial); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	c := exec.CommandContext(ctx, args[0], append(args[1:], tmpFile.Name())...)
	c.Stdin = e.Stdin
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr

	if err := c.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEditor, args[0], err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(content), nil
}
