package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ssargent/bookdb/pkg/table"
)

// newListCmd represents the list command
func newListCmd(opts *rootOptions) *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print all books in ascending order by publishing year",
		Long: `Print every book in the database file, ordered by the digits of the
publishing year. Books with the same year keep their file order.

Examples:
  bookdb list --db books.txt
  bookdb list --db books.txt --format json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(format)
		},
		RunE: opts.withContainer(func(cmd *cobra.Command, args []string) error {
			records, err := opts.container.GetStore().Load()
			if err != nil {
				opts.container.GetLogger().Warn("load failed", "error", err)
				return err
			}

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return table.Render(cmd.OutOrStdout(), table.DefaultHeaders, records)
		}),
	}

	listCmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format (table or json)")

	return listCmd
}
