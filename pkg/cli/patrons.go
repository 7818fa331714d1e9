package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/parse"
	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/update"
)

var patronColumns = []column[entity.Patron]{
	{"id", func(p *entity.Patron) string { return formatID(p.ID) }},
	{"name", func(p *entity.Patron) string { return p.Name }},
	{"date of birth", func(p *entity.Patron) string { return formatDate(p.DateOfBirth) }},
	{"phone", func(p *entity.Patron) string { return p.PhoneNumber }},
}

func newPatronCommand(a *app) *cobra.Command {
	cmd := newEntityCommand(a, entitySpec[entity.Patron]{
		kind:    "patron",
		plural:  "patrons",
		aliases: []string{"patrons"},
		columns: patronColumns,
		service: func(a *app) *apiclient.Service[entity.Patron] { return apiclient.NewPatronService(a.client).Service },
		edit:    patronEditCommands,
	})
	cmd.AddCommand(newPatronBooksCommand(a))
	return cmd
}

// newPatronBooksCommand counts every rental of a patron, returned or not.
func newPatronBooksCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "books <id>",
		Short:   "Count the books a patron has rented",
		Example: `  rentdesk patron books 86367`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parse.ID(args[0])
			if err != nil {
				return err
			}
			n, err := apiclient.NewPatronService(a.client).RentalCount(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return output.JSON(cmd.OutOrStdout(), map[string]int64{"patronId": id, "rentals": n})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Patron %d has rented %d books\n", id, n)
			return nil
		},
	}
}

type patronFlags struct {
	name        string
	dateOfBirth string
	phone       string
}

var patronFlagNames = []string{"name", "date-of-birth", "phone"}

func (f *patronFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Patron name")
	cmd.Flags().StringVar(&f.dateOfBirth, "date-of-birth", "", "Date of birth ("+entity.DateFormat+")")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
}

func patronEditCommands(a *app) []*cobra.Command {
	var createFlags, updateFlags, patchFlags patronFlags

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Register a patron",
		Example: `  rentdesk patron create --name "Ada Lovelace" --date-of-birth 1815-12-10 --phone 555-0100`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editPatron(cmd, a, nil, &createFlags)
		},
	}
	createFlags.register(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a patron's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			return editPatron(cmd, a, id, &updateFlags)
		},
	}
	updateFlags.register(updateCmd)

	patchCmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change only the given fields of a patron",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			if !anyChanged(cmd.Flags(), patronFlagNames...) {
				return ErrNoChanges
			}
			partial := &entity.Patron{ID: id}
			if cmd.Flags().Changed("name") {
				partial.Name = patchFlags.name
			}
			if cmd.Flags().Changed("date-of-birth") {
				if partial.DateOfBirth, err = parse.OptionalDate(patchFlags.dateOfBirth); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("phone") {
				partial.PhoneNumber = patchFlags.phone
			}
			saved, err := apiclient.NewPatronService(a.client).PartialUpdate(cmd.Context(), partial)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "patron", false, saved, patronColumns)
		},
	}
	patchFlags.register(patchCmd)

	return []*cobra.Command{createCmd, updateCmd, patchCmd}
}

func editPatron(cmd *cobra.Command, a *app, id *int64, f *patronFlags) error {
	ctx := cmd.Context()
	patrons := apiclient.NewPatronService(a.client)
	start, err := startEntity[entity.Patron](ctx, patrons, "patron", id)
	if err != nil {
		return err
	}

	ctl := update.NewPatronUpdate(patrons, nil, update.WithLogger(a.logger))
	saved, err := runEdit[entity.Patron](cmd, ctl, start, func() error {
		return fillForm(cmd, a, id != nil, patronFlagNames,
			func() error {
				if cmd.Flags().Changed("name") {
					ctl.SetName(f.name)
				}
				if cmd.Flags().Changed("date-of-birth") {
					d, err := parse.OptionalDate(f.dateOfBirth)
					if err != nil {
						return err
					}
					ctl.SetDateOfBirth(d)
				}
				if cmd.Flags().Changed("phone") {
					ctl.SetPhoneNumber(f.phone)
				}
				return nil
			},
			func() error {
				form := ctl.Form()
				name, dob, phone := form.Name, formatDate(form.DateOfBirth), form.PhoneNumber
				err := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("Name").Value(&name).Validate(required("name")),
						huh.NewInput().Title("Date of birth").Placeholder(entity.DateFormat).Value(&dob).Validate(validDate(false)),
						huh.NewInput().Title("Phone number").Value(&phone).Validate(required("phone number")),
					),
				).Run()
				if err != nil {
					return err
				}
				d, err := parse.OptionalDate(dob)
				if err != nil {
					return err
				}
				ctl.SetName(name)
				ctl.SetDateOfBirth(d)
				ctl.SetPhoneNumber(phone)
				return nil
			},
		)
	})
	if err != nil {
		return err
	}
	return printSaved(cmd, a, "patron", id == nil, saved, patronColumns)
}
