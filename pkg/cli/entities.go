package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/flags"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/parse"
	"github.com/rentdesk/rentdesk/pkg/update"
)

// entitySpec describes one entity command group.
type entitySpec[T any] struct {
	kind    string
	plural  string
	aliases []string
	columns []column[T]
	// service is called after setup, once the API client exists.
	service func(a *app) *apiclient.Service[T]
	// edit returns the create, update and patch commands.
	edit func(a *app) []*cobra.Command
}

// newEntityCommand builds "<kind> list|get|count|delete" plus the entity's edit commands.
func newEntityCommand[T any](a *app, spec entitySpec[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.kind,
		Aliases: spec.aliases,
		Short:   fmt.Sprintf("Manage %s", spec.plural),
	}
	cmd.AddCommand(
		newListCommand(a, spec),
		newGetCommand(a, spec),
		newCountCommand(a, spec),
		newDeleteCommand(a, spec),
	)
	if spec.edit != nil {
		cmd.AddCommand(spec.edit(a)...)
	}
	return cmd
}

func newListCommand[T any](a *app, spec entitySpec[T]) *cobra.Command {
	var (
		page     int
		size     int
		sorts    flags.StringSlice
		filters  flags.StringSlice
		where    string
		jsonPath string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", spec.plural),
		Example: fmt.Sprintf(`  rentdesk %[1]s list
  rentdesk %[1]s list --page 1 --size 50 --sort id,desc
  rentdesk %[1]s list --where 'id > 10' --jsonpath '$[*].id'`, spec.kind),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := parse.Criteria(filters)
			if err != nil {
				return err
			}
			filter, err := compileWhere(where)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				size = a.cfg.PageSize
			}
			opts := (&apiclient.QueryOptions{Size: size, Sort: sorts, Criteria: criteria}).WithPage(page)

			result, err := spec.service(a).Query(cmd.Context(), opts)
			if err != nil {
				return err
			}
			items, err := filterWhere(filter, result.Items)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case jsonPath != "":
				return printJSONPath(w, items, jsonPath)
			case a.jsonOutput():
				return output.JSON(w, items)
			case len(items) == 0:
				_, _ = fmt.Fprintf(w, "No %s found\n", spec.plural)
				return nil
			}
			if err := printTable(w, items, spec.columns); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "\nShowing %d of %d %s (page %d)\n", len(items), result.Total, spec.plural, page)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&page, "page", 0, "Zero-based page index")
	f.IntVar(&size, "size", 0, "Page size (default: configured pageSize)")
	f.Var(&sorts, "sort", "Sort order, e.g. id,desc (repeatable)")
	f.Var(&filters, "filter", "Server-side criterion name=value, e.g. patronId=5 (repeatable)")
	f.StringVar(&where, "where", "", "Client-side filter expression over the fetched page")
	f.StringVar(&jsonPath, "jsonpath", "", "Print only the values selected by a JSONPath expression")
	return cmd
}

func newGetCommand[T any](a *app, spec entitySpec[T]) *cobra.Command {
	var jsonPath string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", spec.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parse.ID(args[0])
			if err != nil {
				return err
			}
			e, err := resolveExisting(cmd.Context(), spec.service(a), spec.kind, id)
			if err != nil {
				return err
			}
			if jsonPath != "" {
				return printJSONPath(cmd.OutOrStdout(), e, jsonPath)
			}
			return printEntity(cmd.OutOrStdout(), a.jsonOutput(), e, spec.columns)
		},
	}
	cmd.Flags().StringVar(&jsonPath, "jsonpath", "", "Print only the values selected by a JSONPath expression")
	return cmd
}

func newCountCommand[T any](a *app, spec entitySpec[T]) *cobra.Command {
	var filters flags.StringSlice
	cmd := &cobra.Command{
		Use:   "count",
		Short: fmt.Sprintf("Count %s", spec.plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := parse.Criteria(filters)
			if err != nil {
				return err
			}
			n, err := spec.service(a).Count(cmd.Context(), &apiclient.QueryOptions{Criteria: criteria})
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return output.JSON(cmd.OutOrStdout(), map[string]int64{"count": n})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().Var(&filters, "filter", "Server-side criterion name=value (repeatable)")
	return cmd
}

func newDeleteCommand[T any](a *app, spec entitySpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", spec.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parse.ID(args[0])
			if err != nil {
				return err
			}
			err = spec.service(a).Delete(cmd.Context(), id)
			switch {
			case errors.Is(err, apiclient.ErrNotFound):
				return &notFoundError{kind: spec.kind, id: id}
			case errors.Is(err, apiclient.ErrConflict):
				return fmt.Errorf("%s %d is still in use and cannot be deleted: %w", spec.kind, id, err)
			case err != nil:
				return err
			}
			if a.jsonOutput() {
				return output.JSON(cmd.OutOrStdout(), map[string]any{"deleted": true, "id": id})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %d\n", spec.kind, id)
			return nil
		},
	}
}

// resolveExisting finds the entity with the given id or returns a notFoundError.
func resolveExisting[T any](ctx context.Context, finder update.Finder[T], kind string, id int64) (*T, error) {
	missing := false
	nav := update.Navigation{OnNotFound: func() { missing = true }}
	e, err := update.Resolve(ctx, finder, &id, nav)
	if err != nil {
		return nil, err
	}
	if missing || e == nil {
		return nil, &notFoundError{kind: kind, id: id}
	}
	return e, nil
}
