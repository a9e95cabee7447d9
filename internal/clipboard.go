package internal

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var ErrClipboard = errors.New("clipboard write failed")

// ClipboardSink receives the text of a chosen snippet.
type ClipboardSink interface {
	Copy(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", ErrClipboard)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
