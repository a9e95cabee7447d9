package picker

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/4thel00z/snipman/internal"
)

type RunOptions struct {
	Options
	Keys KeyMap

	// Clipboard receives the code of a copied snippet once the terminal
	// has been restored. Nil leaves the outcome undelivered.
	Clipboard internal.ClipboardSink

	// ProgramOptions are appended after the defaults, so tests can swap in
	// their own input and output.
	ProgramOptions []tea.ProgramOption
}

// Run shows the picker until the user copies a snippet or quits, then hands
// a copied snippet to opts.Clipboard. The terminal is restored before Run
// returns, on every path. A session that ends without an explicit outcome
// (the context was cancelled, or the program was killed) reports
// OutcomeQuit.
func Run(ctx context.Context, store Store, opts RunOptions) (Outcome, error) {
	if opts.Keys.Quit == nil && opts.Keys.Preview == nil && opts.Keys.Delete == nil {
		opts.Keys = DefaultKeyMap()
	}

	state := NewState(ctx, store, opts.Options)
	model := NewModel(state, opts.Keys)

	progOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, opts.ProgramOptions...)

	log := internal.ForComponent("picker")
	log.Debug("picker started", "snippets", len(store.All()))

	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		return Outcome{Kind: OutcomeQuit, Deleted: state.deleted}, fmt.Errorf("run picker: %w", err)
	}

	if m, ok := final.(Model); ok {
		state = m.State()
	}
	if !state.Exited() {
		return Outcome{Kind: OutcomeQuit, Deleted: state.deleted}, nil
	}

	out := Finish(state.Outcome(), opts.Clipboard)
	log.Debug("picker finished", "outcome", out.Kind, "deleted", len(out.Deleted))
	return out, nil
}

// Finish delivers a copy outcome to the clipboard. A clipboard failure is
// recorded on the returned outcome rather than discarding the selection.
func Finish(out Outcome, sink internal.ClipboardSink) Outcome {
	if out.Kind != OutcomeCopy || sink == nil {
		return out
	}
	if err := sink.Copy(out.Code); err != nil {
		internal.ForComponent("picker").Warn("clipboard write failed", "err", err)
		out.ClipboardErr = err
	}
	return out
}
