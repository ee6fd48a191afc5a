package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/bookdb/pkg/codec"
)

// newAddCmd represents the add command
func newAddCmd(opts *rootOptions) *cobra.Command {
	var title, author, isbn, year string

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a book without prompts",
		Long: `Append one book to the end of the database file.

The file is created if it does not exist. Values are stored as given; they
may not contain "/" or line breaks.

Example:
  bookdb add --db books.txt --title Dune --author "Frank Herbert" --isbn 9780441013593 --year 1965`,
		Args: cobra.NoArgs,
		RunE: opts.withContainer(func(cmd *cobra.Command, args []string) error {
			record := codec.NewRecord(title, author, isbn, year)
			if err := checkFields(record); err != nil {
				return err
			}

			if err := opts.container.GetStore().Append(record); err != nil {
				opts.container.GetLogger().Warn("append failed", "error", err)
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Book saved to database")
			return nil
		}),
	}

	addCmd.Flags().StringVar(&title, "title", "", "book title (required)")
	addCmd.Flags().StringVar(&author, "author", "", "author name")
	addCmd.Flags().StringVar(&isbn, "isbn", "", "ISBN")
	addCmd.Flags().StringVar(&year, "year", "", "publishing year")
	if err := addCmd.MarkFlagRequired("title"); err != nil {
		panic(err)
	}

	return addCmd
}

// checkFields rejects values that would make the stored line unreadable
func checkFields(r codec.Record) error {
	names := [codec.FieldCount]string{"title", "author", "isbn", "year"}
	for i, v := range r.Fields() {
		if strings.Contains(v, codec.Delimiter) {
			return fmt.Errorf("%s %q must not contain %q", names[i], v, codec.Delimiter)
		}
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%s must not contain line breaks", names[i])
		}
	}
	return nil
}
