package main

import (
	"fmt"

	"github.com/4thel00z/snipman/internal"
	"github.com/spf13/cobra"
)

func NewRemoveCmd(removeUC *internal.RemoveSnippetUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm", "del"},
		Short:   "Remove a snippet by its description",
		Long:    `Remove the snippet with the given description.`,
		Args:    cobra.NoArgs,
		RunE:    makeRemoveRunner(removeUC),
	}

	cmd.Flags().StringP("description", "d", "", "The description of the snippet to remove")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func makeRemoveRunner(removeUC *internal.RemoveSnippetUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		description, _ := cmd.Flags().GetString("description")

		_, err := removeUC.Execute(cmd.Context(), internal.RemoveSnippetInput{Description: description})
		if err != nil {
			return fmt.Errorf("remove snippet %q: %w", description, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Snippet %q deleted successfully.\n", description)
		return nil
	}
}
