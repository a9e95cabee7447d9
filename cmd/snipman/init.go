package main

import (
	"fmt"
	"os"

	"github.com/4thel00z/snipman/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config and create the snippet store",
		Long:  `Write a config file with the default settings and initialize the configured storage backend.`,
		Args:  cobra.NoArgs,
		RunE:  makeInitRunner(a),
	}

	cmd.Flags().String("backend", "", "Storage backend to record in the config (git|sqlite)")
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func makeInitRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		backend, _ := cmd.Flags().GetString("backend")
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(a.configPath); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", a.configPath)
		}

		if backend != "" {
			a.cfg.Storage.Backend = backend
		}
		if err := a.cfg.Validate(); err != nil {
			return err
		}

		if err := internal.SaveConfig(a.configPath, a.cfg); err != nil {
			return err
		}
		if _, err := a.repository(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", a.configPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s store at %s\n", a.cfg.Storage.Backend, a.dataDir())
		return nil
	}
}
