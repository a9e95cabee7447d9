package main

import (
	"context"
	"fmt"

	"github.com/4thel00z/snipman/internal"
	"github.com/4thel00z/snipman/internal/picker"
	"github.com/spf13/cobra"
)

// pickerRunner has the signature of picker.Run.
type pickerRunner func(ctx context.Context, store picker.Store, opts picker.RunOptions) (picker.Outcome, error)

func NewInteractiveCmd(
	repoFor internal.RepositoryFunc,
	cfgFor func() *internal.Config,
	sink internal.ClipboardSink,
	run pickerRunner,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"search", "i"},
		Short:   "Search, copy and remove snippets in a TUI",
		Long: `Open the interactive picker. Type to fuzzy-filter by description, Enter copies
the selected snippet to the clipboard, ctrl+d deletes it after confirmation,
ctrl+p toggles the full preview and esc quits.`,
		Args: cobra.NoArgs,
		RunE: makeInteractiveRunner(repoFor, cfgFor, sink, run),
	}

	return cmd
}

func makeInteractiveRunner(
	repoFor internal.RepositoryFunc,
	cfgFor func() *internal.Config,
	sink internal.ClipboardSink,
	run pickerRunner,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		repo, err := repoFor()
		if err != nil {
			return fmt.Errorf("get repository: %w", err)
		}

		// A corrupt store must fail here, before the terminal is taken over.
		store, err := internal.OpenStore(cmd.Context(), repo)
		if err != nil {
			return err
		}

		cfg := cfgFor()
		out, err := run(cmd.Context(), store, picker.RunOptions{
			Options: picker.Options{
				CompactLines: cfg.Picker.CompactLines,
				MatchTags:    cfg.Picker.MatchTags,
				MatchCode:    cfg.Picker.MatchCode,
			},
			Keys:      picker.KeyMapFromConfig(cfg.Picker.Keys),
			Clipboard: sink,
		})

		for _, snip := range out.Deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "Snippet %q deleted.\n", snip.Description)
		}
		if err != nil {
			return err
		}

		switch out.Kind {
		case picker.OutcomeCopy:
			if out.ClipboardErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", out.ClipboardErr)
				fmt.Fprint(cmd.OutOrStdout(), out.Code)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Snippet copied to clipboard!")
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "No snippet selected.")
		}
		return nil
	}
}
