package internal

import (
	"context"
	"time"
)

type Commit struct {
	Hash      string
	Message   string
	Author    string
	Timestamp time.Time
}

// HistoryRepository is implemented by backends that version every save.
type HistoryRepository interface {
	Log(ctx context.Context, limit int) ([]*Commit, error)
}
