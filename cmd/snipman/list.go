package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/4thel00z/snipman/internal"
	"github.com/spf13/cobra"
)

func NewListCmd(listUC *internal.ListSnippetsUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all snippets",
		Long:    `List all snippets in the order they were added.`,
		Args:    cobra.NoArgs,
		RunE:    makeListRunner(listUC),
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func makeListRunner(listUC *internal.ListSnippetsUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		out, err := listUC.Execute(cmd.Context())
		if err != nil {
			return fmt.Errorf("list snippets: %w", err)
		}

		if asJSON {
			return outputListJSON(cmd, out)
		}

		if len(out.Snippets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No snippets found.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Found %d snippets:\n", len(out.Snippets))
		for _, snip := range out.Snippets {
			if len(snip.Tags) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", snip.Description)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "- %s (Tags: %s)\n", snip.Description, strings.Join(snip.Tags, ", "))
		}
		return nil
	}
}

func outputListJSON(cmd *cobra.Command, out *internal.ListSnippetsOutput) error {
	data := make([]map[string]any, 0, len(out.Snippets))
	for _, snip := range out.Snippets {
		tags := snip.Tags
		if tags == nil {
			tags = []string{}
		}
		data = append(data, map[string]any{
			"id":          snip.ID,
			"description": snip.Description,
			"tags":        tags,
			"code":        snip.Code,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
