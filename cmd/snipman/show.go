package main

import (
	"fmt"

	"github.com/4thel00z/snipman/internal"
	"github.com/spf13/cobra"
)

func NewShowCmd(getUC *internal.GetSnippetUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <description>",
		Short: "Print a snippet's code",
		Long:  `Print the code of the snippet with the given description, exactly as stored.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeShowRunner(getUC),
	}

	return cmd
}

func makeShowRunner(getUC *internal.GetSnippetUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out, err := getUC.Execute(cmd.Context(), internal.GetSnippetInput{Description: args[0]})
		if err != nil {
			return fmt.Errorf("show snippet: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), out.Code)
		return nil
	}
}
