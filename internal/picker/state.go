// Package picker implements the interactive snippet picker: a state machine
// driven one input event at a time, and a terminal front end around it.
package picker

import (
	"context"
	"fmt"
	"strings"

	"github.com/4thel00z/snipman/internal"
)

type Mode int

const (
	ModeSearching Mode = iota
	ModeConfirmingDelete
	ModeExited
)

type PreviewMode int

const (
	PreviewCompact PreviewMode = iota
	PreviewFull
)

func (p PreviewMode) String() string {
	if p == PreviewFull {
		return "full"
	}
	return "compact"
}

type EventKind int

const (
	EventChar EventKind = iota + 1
	EventBackspace
	EventUp
	EventDown
	EventPageUp
	EventPageDown
	EventTogglePreview
	EventEnter
	EventQuit
	EventDelete
	EventConfirm
	EventCancel
)

// Event is one user input. Rune is only meaningful for EventChar.
type Event struct {
	Kind EventKind
	Rune rune
}

func Char(r rune) Event { return Event{Kind: EventChar, Rune: r} }
func Key(kind EventKind) Event { return Event{Kind: kind} }

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeCopy
	OutcomeQuit
)

// Outcome is how a session ended. Deleted lists the snippets removed during
// the session in removal order, whatever the final kind.
type Outcome struct {
	Kind         OutcomeKind
	Snippet      *internal.Snippet
	Code         string
	Deleted      []*internal.Snippet
	ClipboardErr error
}

// Store is the part of internal.Store the picker needs.
type Store interface {
	All() []*internal.Snippet
	Remove(ctx context.Context, snip *internal.Snippet) error
}

type Options struct {
	CompactLines int
	PageSize     int
	MatchTags    bool
	MatchCode    bool
}

func (o Options) withDefaults() Options {
	if o.CompactLines < 1 {
		o.CompactLines = 5
	}
	if o.PageSize < 1 {
		o.PageSize = 10
	}
	return o
}

// Candidate is a ranked snippet. Positions index into the description and
// are empty for candidates that only matched on their tags or code.
type Candidate struct {
	Snippet   *internal.Snippet
	Score     int
	Positions []int
	Field     internal.MatchField
}

// State is one picker session. The zero value is not usable; call NewState.
type State struct {
	ctx   context.Context
	store Store
	opts  Options

	snippets []*internal.Snippet
	query    []rune
	ranked   []Candidate
	selected int
	preview  PreviewMode
	pending  *internal.Snippet
	scroll   int
	mode     Mode

	outcome   Outcome
	deleted   []*internal.Snippet
	status    string
	statusErr bool
}

func NewState(ctx context.Context, store Store, opts Options) *State {
	s := &State{
		ctx:   ctx,
		store: store,
		opts:  opts.withDefaults(),
	}
	s.reload()
	return s
}

// Apply advances the state by one event. Events that do not apply in the
// current mode are ignored.
func (s *State) Apply(ev Event) {
	switch s.mode {
	case ModeSearching:
		s.status, s.statusErr = "", false
		s.applySearching(ev)
	case ModeConfirmingDelete:
		s.applyConfirming(ev)
	}
}

func (s *State) applySearching(ev Event) {
	switch ev.Kind {
	case EventChar:
		if ev.Rune == 0 {
			return
		}
		s.query = append(s.query, ev.Rune)
		s.rerank()
		s.selected = 0
		s.scroll = 0
	case EventBackspace:
		if len(s.query) == 0 {
			return
		}
		s.query = s.query[:len(s.query)-1]
		s.rerank()
		s.selected = 0
		s.scroll = 0
	case EventUp:
		if len(s.ranked) > 0 && s.selected > 0 {
			s.selected--
			s.scroll = 0
		}
	case EventDown:
		if len(s.ranked) > 0 && s.selected < len(s.ranked)-1 {
			s.selected++
			s.scroll = 0
		}
	case EventPageUp:
		s.setScroll(s.scroll - s.opts.PageSize)
	case EventPageDown:
		s.setScroll(s.scroll + s.opts.PageSize)
	case EventTogglePreview:
		if s.preview == PreviewCompact {
			s.preview = PreviewFull
		} else {
			s.preview = PreviewCompact
		}
	case EventEnter:
		snip := s.SelectedSnippet()
		if snip == nil {
			return
		}
		s.exit(Outcome{Kind: OutcomeCopy, Snippet: snip, Code: snip.Code})
	case EventQuit:
		s.exit(Outcome{Kind: OutcomeQuit})
	case EventDelete:
		snip := s.SelectedSnippet()
		if snip == nil {
			return
		}
		s.pending = snip
		s.mode = ModeConfirmingDelete
	}
}

func (s *State) applyConfirming(ev Event) {
	switch ev.Kind {
	case EventConfirm:
		snip := s.pending
		s.pending = nil
		s.mode = ModeSearching

		if err := s.store.Remove(s.ctx, snip); err != nil {
			internal.ForComponent("picker").Error("delete failed", "id", snip.ID, "err", err)
			s.status = fmt.Sprintf("could not delete %q: %v", snip.Description, err)
			s.statusErr = true
			return
		}

		s.deleted = append(s.deleted, snip)
		s.reload()
		if s.selected >= len(s.ranked) {
			s.selected = max(len(s.ranked)-1, 0)
		}
		s.scroll = 0
		s.status = fmt.Sprintf("deleted %q", snip.Description)
	case EventCancel:
		s.pending = nil
		s.mode = ModeSearching
	}
}

func (s *State) exit(out Outcome) {
	out.Deleted = s.deleted
	s.outcome = out
	s.mode = ModeExited
}

func (s *State) reload() {
	s.snippets = s.store.All()
	s.rerank()
}

func (s *State) rerank() {
	hits := internal.Search(string(s.query), s.snippets, internal.SearchOptions{
		MatchTags: s.opts.MatchTags,
		MatchCode: s.opts.MatchCode,
	})

	ranked := make([]Candidate, 0, len(hits))
	for _, h := range hits {
		c := Candidate{Snippet: h.Snippet, Score: h.Score, Field: h.Field}
		if h.Field == internal.FieldDescription {
			c.Positions = h.Positions
		}
		ranked = append(ranked, c)
	}
	s.ranked = ranked
}

func (s *State) setScroll(offset int) {
	limit := max(len(s.previewSource())-1, 0)
	s.scroll = min(max(offset, 0), limit)
}

// previewSource is every line of the selected snippet's code.
func (s *State) previewSource() []string {
	snip := s.SelectedSnippet()
	if snip == nil {
		return nil
	}
	return strings.Split(strings.TrimSuffix(snip.Code, "\n"), "\n")
}

// PreviewLines returns the preview window for the selected snippet: the
// compact line budget or the whole body, starting at the scroll offset.
func (s *State) PreviewLines() []string {
	lines := s.previewSource()
	if s.scroll >= len(lines) {
		return nil
	}
	lines = lines[s.scroll:]
	if s.preview == PreviewCompact && len(lines) > s.opts.CompactLines {
		lines = lines[:s.opts.CompactLines]
	}
	return lines
}

// PreviewLineCount is the number of lines in the selected snippet's code.
func (s *State) PreviewLineCount() int {
	return len(s.previewSource())
}

// SetPageSize changes how far PageUp and PageDown scroll.
func (s *State) SetPageSize(n int) {
	if n > 0 {
		s.opts.PageSize = n
	}
}

func (s *State) Query() string { return string(s.query) }
func (s *State) Ranked() []Candidate { return s.ranked }
func (s *State) Mode() Mode { return s.mode }
func (s *State) Preview() PreviewMode { return s.preview }
func (s *State) Scroll() int { return s.scroll }
func (s *State) Pending() *internal.Snippet { return s.pending }
func (s *State) Outcome() Outcome { return s.outcome }
func (s *State) Exited() bool { return s.mode == ModeExited }

// Status is the last in-session message and whether it reports a failure.
func (s *State) Status() (string, bool) { return s.status, s.statusErr }

// Selected returns the selected index into Ranked, or false when nothing
// matches.
func (s *State) Selected() (int, bool) {
	if len(s.ranked) == 0 {
		return 0, false
	}
	return s.selected, true
}

func (s *State) SelectedSnippet() *internal.Snippet {
	idx, ok := s.Selected()
	if !ok {
		return nil
	}
	return s.ranked[idx].Snippet
}
