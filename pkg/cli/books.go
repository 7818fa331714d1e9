package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/update"
)

var bookColumns = []column[entity.Book]{
	{"id", func(b *entity.Book) string { return formatID(b.ID) }},
	{"title", func(b *entity.Book) string { return b.Title }},
	{"isbn", func(b *entity.Book) string { return b.ISBN }},
}

func newBookCommand(a *app) *cobra.Command {
	return newEntityCommand(a, entitySpec[entity.Book]{
		kind:    "book",
		plural:  "books",
		aliases: []string{"books"},
		columns: bookColumns,
		service: func(a *app) *apiclient.Service[entity.Book] { return apiclient.NewBookService(a.client) },
		edit:    bookEditCommands,
	})
}

type bookFlags struct {
	title string
	isbn  string
}

var bookFlagNames = []string{"title", "isbn"}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Book title")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "ISBN")
}

func bookEditCommands(a *app) []*cobra.Command {
	var createFlags, updateFlags, patchFlags bookFlags

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a book",
		Example: `  rentdesk book create --title "Dune" --isbn 978-0441172719`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBook(cmd, a, nil, &createFlags)
		},
	}
	createFlags.register(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a book's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			return editBook(cmd, a, id, &updateFlags)
		},
	}
	updateFlags.register(updateCmd)

	patchCmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change only the given fields of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			if !anyChanged(cmd.Flags(), bookFlagNames...) {
				return ErrNoChanges
			}
			partial := &entity.Book{ID: id}
			if cmd.Flags().Changed("title") {
				partial.Title = patchFlags.title
			}
			if cmd.Flags().Changed("isbn") {
				partial.ISBN = patchFlags.isbn
			}
			saved, err := apiclient.NewBookService(a.client).PartialUpdate(cmd.Context(), partial)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "book", false, saved, bookColumns)
		},
	}
	patchFlags.register(patchCmd)

	return []*cobra.Command{createCmd, updateCmd, patchCmd}
}

func editBook(cmd *cobra.Command, a *app, id *int64, f *bookFlags) error {
	ctx := cmd.Context()
	books := apiclient.NewBookService(a.client)
	start, err := startEntity[entity.Book](ctx, books, "book", id)
	if err != nil {
		return err
	}

	ctl := update.NewBookUpdate(books, nil, update.WithLogger(a.logger))
	saved, err := runEdit[entity.Book](cmd, ctl, start, func() error {
		return fillForm(cmd, a, id != nil, bookFlagNames,
			func() error {
				if cmd.Flags().Changed("title") {
					ctl.SetTitle(f.title)
				}
				if cmd.Flags().Changed("isbn") {
					ctl.SetISBN(f.isbn)
				}
				return nil
			},
			func() error {
				form := ctl.Form()
				title, isbn := form.Title, form.ISBN
				err := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("Title").Value(&title).Validate(required("title")),
						huh.NewInput().Title("ISBN").Value(&isbn).Validate(required("isbn")),
					),
				).Run()
				if err != nil {
					return err
				}
				ctl.SetTitle(title)
				ctl.SetISBN(isbn)
				return nil
			},
		)
	})
	if err != nil {
		return err
	}
	return printSaved(cmd, a, "book", id == nil, saved, bookColumns)
}
