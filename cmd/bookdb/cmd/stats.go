package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newStatsCmd represents the stats command
func newStatsCmd(opts *rootOptions) *cobra.Command {
	var format string

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the database file",
		Long: `Show the number of books, the file size, how many books have no digits
in their year, and the first and last year keys in sort order.

Example:
  bookdb stats --db books.txt`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(format)
		},
		RunE: opts.withContainer(func(cmd *cobra.Command, args []string) error {
			s := opts.container.GetStore()
			stats, err := s.Stats()
			if err != nil {
				opts.container.GetLogger().Warn("stats failed", "error", err)
				return err
			}

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Database:\t%s\n", s.Path())
			fmt.Fprintf(w, "Books:\t%d\n", stats.Records)
			fmt.Fprintf(w, "Size:\t%d bytes\n", stats.SizeBytes)
			fmt.Fprintf(w, "Undated:\t%d\n", stats.Undated)
			if stats.FirstKey != "" {
				fmt.Fprintf(w, "Earliest year:\t%s\n", stats.FirstKey)
				fmt.Fprintf(w, "Latest year:\t%s\n", stats.LastKey)
			}
			return w.Flush()
		}),
	}

	statsCmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format (table or json)")

	return statsCmd
}
