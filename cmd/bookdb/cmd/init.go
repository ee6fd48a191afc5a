/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/bookdb/pkg/config"
)

// newInitCmd represents the init command
func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a default bookdb config file.

When --db is given its absolute path is stored as db_path, so later runs
can omit it. An existing config file is only replaced with --force.

Examples:
  bookdb init --db ~/books.txt
  bookdb init --config ./bookdb.yaml --force`,
		Args: cobra.NoArgs,
		// init must work before any database path is known
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := opts.configPath
			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}

			cfg, err := config.BootstrapConfig(configPath, opts.dbPath, force)
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", configPath)
			if cfg.DBPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Database file: %s\n", cfg.DBPath)
			}
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return initCmd
}
