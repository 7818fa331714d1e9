package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/cli/help"
)

// newGuideCommand prints the embedded help topics.
func newGuideCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "guide [topic]",
		Short:     "Read about configuration, filters, dates and rentals",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: help.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				_, _ = fmt.Fprint(w, "rentdesk - Help Topics\n\nAvailable Topics:\n")
				help.WriteIndex(w)
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprintln(w, "Usage: rentdesk guide <topic>")
				return nil
			}

			topic, err := help.Lookup(args[0])
			if err != nil {
				return err
			}
			text, err := topic.Text()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, text)
			return nil
		},
	}
}
