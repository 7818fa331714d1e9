package cli

import (
	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/flags"
	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/update"
)

var inventoryColumns = []column[entity.Inventory]{
	{"id", func(i *entity.Inventory) string { return formatID(i.ID) }},
	{"book", func(i *entity.Inventory) string { return bookLabel(i.Book) }},
}

func newInventoryCommand(a *app) *cobra.Command {
	return newEntityCommand(a, entitySpec[entity.Inventory]{
		kind:    "inventory",
		plural:  "inventory copies",
		aliases: []string{"inventories", "copy"},
		columns: inventoryColumns,
		service: func(a *app) *apiclient.Service[entity.Inventory] { return apiclient.NewInventoryService(a.client) },
		edit:    inventoryEditCommands,
	})
}

type inventoryFlags struct {
	bookID flags.OptionalID
}

var inventoryFlagNames = []string{"book-id"}

func (f *inventoryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.bookID, "book-id", "ID of the book this copy belongs to")
}

func inventoryEditCommands(a *app) []*cobra.Command {
	var createFlags, updateFlags, patchFlags inventoryFlags

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Add an inventory copy of a book",
		Example: `  rentdesk inventory create --book-id 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editInventory(cmd, a, nil, &createFlags)
		},
	}
	createFlags.register(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Move an inventory copy to another book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			return editInventory(cmd, a, id, &updateFlags)
		},
	}
	updateFlags.register(updateCmd)

	patchCmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change only the given fields of an inventory copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			if !anyChanged(cmd.Flags(), inventoryFlagNames...) {
				return ErrNoChanges
			}
			partial := &entity.Inventory{ID: id, Book: &entity.Book{ID: patchFlags.bookID.Ptr()}}
			saved, err := apiclient.NewInventoryService(a.client).PartialUpdate(cmd.Context(), partial)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "inventory copy", false, saved, inventoryColumns)
		},
	}
	patchFlags.register(patchCmd)

	return []*cobra.Command{createCmd, updateCmd, patchCmd}
}

func editInventory(cmd *cobra.Command, a *app, id *int64, f *inventoryFlags) error {
	ctx := cmd.Context()
	inventories := apiclient.NewInventoryService(a.client)
	books := apiclient.NewBookService(a.client)
	start, err := startEntity[entity.Inventory](ctx, inventories, "inventory", id)
	if err != nil {
		return err
	}

	ctl := update.NewInventoryUpdate(inventories, books, nil, update.WithLogger(a.logger))
	saved, err := runEdit[entity.Inventory](cmd, ctl, start, func() error {
		return fillForm(cmd, a, id != nil, inventoryFlagNames,
			func() error {
				book, err := pick(ctx, ctl.Books(), (*entity.Book).Identifier, books, "book", f.bookID.Value)
				if err != nil {
					return err
				}
				ctl.SetBook(book)
				return nil
			},
			func() error {
				book, err := selectOne("book", ctl.Books(), (*entity.Book).Identifier, bookLabel, ctl.Form().Book)
				if err != nil {
					return err
				}
				ctl.SetBook(book)
				return nil
			},
		)
	})
	if err != nil {
		return err
	}
	return printSaved(cmd, a, "inventory copy", id == nil, saved, inventoryColumns)
}
