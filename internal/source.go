package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrNoCodeSource = errors.New("no code source provided (use --code, --file, --stdin or --editor)")

type CodeSourceKind int

const (
	CodeInline CodeSourceKind = iota + 1
	CodeFile
	CodeStdin
	CodeEditor
)

func (k CodeSourceKind) String() string {
	switch k {
	case CodeInline:
		return "inline"
	case CodeFile:
		return "file"
	case CodeStdin:
		return "stdin"
	case CodeEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// CodeSource says where a snippet body comes from. Text is set for
// CodeInline and Path for CodeFile.
type CodeSource struct {
	Kind CodeSourceKind
	Text string
	Path string
}

// CodeSourceRequest carries every source the user asked for. Several may be
// set at once; ResolveCodeSource picks one.
type CodeSourceRequest struct {
	Inline    string
	HasInline bool
	File      string
	Stdin     bool
	Editor    bool
}

// ResolveCodeSource applies the fixed precedence inline > file > stdin >
// editor.
func ResolveCodeSource(req CodeSourceRequest) (CodeSource, error) {
	switch {
	case req.HasInline:
		return CodeSource{Kind: CodeInline, Text: req.Inline}, nil
	case req.File != "":
		return CodeSource{Kind: CodeFile, Path: req.File}, nil
	case req.Stdin:
		return CodeSource{Kind: CodeStdin}, nil
	case req.Editor:
		return CodeSource{Kind: CodeEditor}, nil
	default:
		return CodeSource{}, ErrNoCodeSource
	}
}

// Read produces the snippet body. stdin and editor are only used by the
// corresponding source kinds and may be nil otherwise.
func (src CodeSource) Read(ctx context.Context, stdin io.Reader, editor Editor) (string, error) {
	switch src.Kind {
	case CodeInline:
		return src.Text, nil
	case CodeFile:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("read code file: %w", err)
		}
		return string(data), nil
	case CodeStdin:
		if stdin == nil {
			return "", fmt.Errorf("read stdin: no input attached")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case CodeEditor:
		if editor == nil {
			return "", fmt.Errorf("%w: no editor configured", ErrEditor)
		}
		return editor.Edit(ctx, "")
	default:
		return "", ErrNoCodeSource
	}
}
