package main

import (
	"fmt"

	"github.com/4thel00z/snipman/internal"
	"github.com/spf13/cobra"
)

func NewAddCmd(addUC *internal.AddSnippetUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new snippet",
		Long: `Add a new snippet. The body comes from --code, --file, --stdin or --editor;
when several are given the first in that order wins.`,
		Example: `  snipman add -d "list open ports" -t net,linux --code 'ss -tulpn'
  snipman add -d "nginx reload" --file ./reload.sh
  pbpaste | snipman add -d "from clipboard" --stdin`,
		Args: cobra.NoArgs,
		RunE: makeAddRunner(addUC),
	}

	cmd.Flags().StringP("description", "d", "", "A short, searchable description")
	cmd.Flags().StringSliceP("tags", "t", nil, `Comma-separated tags, e.g. "fs,io,read"`)
	cmd.Flags().String("code", "", "Inline code (use quotes)")
	cmd.Flags().String("file", "", "Read the snippet body from a file path")
	cmd.Flags().Bool("stdin", false, "Read the snippet body from stdin")
	cmd.Flags().Bool("editor", false, "Open $VISUAL/$EDITOR to write the snippet body")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func makeAddRunner(addUC *internal.AddSnippetUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		description, _ := cmd.Flags().GetString("description")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		code, _ := cmd.Flags().GetString("code")
		file, _ := cmd.Flags().GetString("file")
		stdin, _ := cmd.Flags().GetBool("stdin")
		editor, _ := cmd.Flags().GetBool("editor")

		src, err := internal.ResolveCodeSource(internal.CodeSourceRequest{
			Inline:    code,
			HasInline: cmd.Flags().Changed("code"),
			File:      file,
			Stdin:     stdin,
			Editor:    editor,
		})
		if err != nil {
			return err
		}

		out, err := addUC.Execute(cmd.Context(), internal.AddSnippetInput{
			Description: description,
			Tags:        tags,
			Source:      src,
			Stdin:       cmd.InOrStdin(),
		})
		if err != nil {
			return fmt.Errorf("add snippet: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Snippet %q saved successfully!\n", out.Description)
		return nil
	}
}
