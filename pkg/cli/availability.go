package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/flags"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
)

func newAvailabilityCommand(a *app) *cobra.Command {
	var bookID flags.OptionalID
	cmd := &cobra.Command{
		Use:     "availability",
		Short:   "Count the copies of a book that can be rented right now",
		Example: `  rentdesk availability --book-id 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !bookID.IsSet {
				return fmt.Errorf("--book-id is required")
			}
			n, err := a.client.Availability(cmd.Context(), bookID.Value)
			if apiclient.IsNotFound(err) {
				return &notFoundError{kind: "book", id: bookID.Value}
			}
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return output.JSON(cmd.OutOrStdout(), map[string]int64{"bookId": bookID.Value, "available": n})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d copies of book %d available\n", n, bookID.Value)
			return nil
		},
	}
	cmd.Flags().Var(&bookID, "book-id", "ID of the book")
	return cmd
}
