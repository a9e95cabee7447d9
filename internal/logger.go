package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// InitLogger installs a text slog handler writing to path as the default
// logger. The interactive picker owns the terminal, so logs never go to
// stdout or stderr. The returned closer releases the log file.
func InitLogger(path string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return f, nil
}

func ForComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
