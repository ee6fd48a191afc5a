/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ssargent/bookdb/pkg/config"
	"github.com/ssargent/bookdb/pkg/di"
	"github.com/ssargent/bookdb/pkg/shell"
	"github.com/ssargent/bookdb/pkg/store"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// rootOptions carries persistent flag values and the container built from them
type rootOptions struct {
	dbPath      string
	configPath  string
	logLevel    string
	metricsFile string

	container *di.Container
}

// NewRootCmd builds the bookdb command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bookdb [db-file]",
		Short: "bookdb - a plain text book catalogue",
		Long: `bookdb keeps a list of books in a plain text file, one book per line
in the form Title/Author/ISBN/Year.

Run without a subcommand to open the interactive menu.

Examples:
  bookdb books.txt
  bookdb add --db books.txt --title Dune --author "Frank Herbert" --isbn 9780441013593 --year 1965
  bookdb list --db books.txt --format json`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
		RunE: opts.withContainer(func(cmd *cobra.Command, args []string) error {
			sh := shell.New(
				opts.container.GetStore(),
				cmd.InOrStdin(),
				cmd.OutOrStdout(),
				shell.WithLogger(opts.container.GetLogger()),
				shell.WithTerminal(isTerminal(cmd.OutOrStdout())),
			)
			return sh.Run()
		}),
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dbPath, "db", "d", "", "path to the database file")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to the config file (default ~/.config/bookdb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "",
		"write Prometheus metrics to this file on exit")

	rootCmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newStatsCmd(opts),
		newInitCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup resolves configuration and builds the container.
// A positional path beats --db, which beats db_path from the config file.
func (o *rootOptions) setup(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	if !cmd.HasParent() && len(args) == 1 {
		cfg.DBPath = args[0]
	} else if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.metricsFile != "" {
		cfg.Metrics.TextfilePath = o.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	container, err := di.NewContainer(cfg, cmd.ErrOrStderr())
	if errors.Is(err, store.ErrNoPath) {
		return fmt.Errorf("%w: pass a database file or --db, or set db_path in the config file", store.ErrNoPath)
	}
	if err != nil {
		return err
	}
	o.container = container

	return nil
}

// loadConfig reads the config file. Only an explicitly given file has to exist.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.LoadConfig(o.configPath)
	}
	return config.LoadOrDefault(config.GetDefaultConfigPath())
}

// withContainer closes the container after fn, whether or not fn failed,
// so metrics are exported for failed runs too.
func (o *rootOptions) withContainer(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if o.container == nil {
			return err
		}
		return errors.Join(err, o.container.Close())
	}
}

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q (use %s or %s)", format, formatTable, formatJSON)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
