package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/4thel00z/snipman/internal"
	"github.com/spf13/cobra"
)

const logDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

func NewLogCmd(logUC *internal.LogUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show snippet history",
		Long: `Show which snippets were added and removed, newest first.

Only the git backend keeps history; the sqlite backend reports an error.`,
		Args: cobra.NoArgs,
		RunE: makeLogRunner(logUC),
	}

	cmd.Flags().IntP("number", "n", 10, "Limit number of changes (0 shows all)")
	cmd.Flags().Bool("oneline", false, "Show each change on one line")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func makeLogRunner(logUC *internal.LogUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("number")
		oneline, _ := cmd.Flags().GetBool("oneline")
		asJSON, _ := cmd.Flags().GetBool("json")

		out, err := logUC.Execute(cmd.Context(), internal.LogInput{Limit: limit})
		if err != nil {
			return fmt.Errorf("show history: %w", err)
		}

		if asJSON {
			return writeChangesJSON(cmd.OutOrStdout(), out.Commits)
		}
		if len(out.Commits) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
			return nil
		}

		for _, c := range out.Commits {
			if oneline {
				writeChangeLine(cmd.OutOrStdout(), c)
			} else {
				writeChange(cmd.OutOrStdout(), c)
			}
		}
		return nil
	}
}

// change is a commit read as a store operation. Commits written by snipman
// carry "<action>: <description>"; anything else keeps its whole message as
// the action.
type change struct {
	Hash        string    `json:"hash"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author"`
	Timestamp   time.Time `json:"timestamp"`
}

func parseChange(c internal.CommitOutput) change {
	ch := change{
		Hash:      c.Hash,
		Action:    c.Message,
		Author:    c.Author,
		Timestamp: c.Timestamp,
	}
	if action, desc, ok := strings.Cut(c.Message, ": "); ok {
		ch.Action, ch.Description = action, desc
	}
	return ch
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func writeChangeLine(w io.Writer, c internal.CommitOutput) {
	fmt.Fprintf(w, "%s %s\n", shortHash(c.Hash), c.Message)
}

func writeChange(w io.Writer, c internal.CommitOutput) {
	ch := parseChange(c)
	fmt.Fprintf(w, "commit %s\n", ch.Hash)
	fmt.Fprintf(w, "Author: %s\n", ch.Author)
	fmt.Fprintf(w, "Date:   %s\n\n", ch.Timestamp.Format(logDateFormat))
	if ch.Description != "" {
		fmt.Fprintf(w, "    %s %q\n\n", ch.Action, ch.Description)
	} else {
		fmt.Fprintf(w, "    %s\n\n", ch.Action)
	}
}

func writeChangesJSON(w io.Writer, commits []internal.CommitOutput) error {
	changes := make([]change, 0, len(commits))
	for _, c := range commits {
		changes = append(changes, parseChange(c))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(changes)
}
