package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "snipman",
		Short:         "Fast TUI snippet manager",
		Long:          `Store code snippets with a description and tags, then fuzzy-find one and copy it to the clipboard.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return a.setup(configPath)
		}
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (default is the platform config dir)")
}

func addSubcommands(root *cobra.Command, a *app) {
	uc := a.useCases

	root.AddCommand(
		NewInitCmd(a),
		NewAddCmd(uc.AddSnippet),
		NewListCmd(uc.ListSnippets),
		NewShowCmd(uc.GetSnippet),
		NewRemoveCmd(uc.RemoveSnippet),
		NewInteractiveCmd(a.repository, a.config, a.clipboard, a.runPicker),
		NewLogCmd(uc.Log),
	)
}
