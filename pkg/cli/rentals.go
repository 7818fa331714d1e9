package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rentdesk/rentdesk/pkg/apiclient"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/flags"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/output"
	"github.com/rentdesk/rentdesk/pkg/cli/internal/parse"
	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/update"
)

var rentalColumns = []column[entity.Rental]{
	{"id", func(r *entity.Rental) string { return formatID(r.ID) }},
	{"rental date", func(r *entity.Rental) string { return formatDate(r.RentalDate) }},
	{"return date", func(r *entity.Rental) string { return formatDate(r.ReturnDate) }},
	{"patron", func(r *entity.Rental) string { return patronLabel(r.Patron) }},
	{"inventory", func(r *entity.Rental) string { return inventoryLabel(r.Inventory) }},
}

func newRentalCommand(a *app) *cobra.Command {
	cmd := newEntityCommand(a, entitySpec[entity.Rental]{
		kind:    "rental",
		plural:  "rentals",
		aliases: []string{"rentals"},
		columns: rentalColumns,
		service: func(a *app) *apiclient.Service[entity.Rental] {
			return apiclient.NewRentalService(a.client).Service
		},
		edit: rentalEditCommands,
	})
	cmd.AddCommand(newReturnCommand(a), newAvailableCommand(a))
	return cmd
}

type rentalFlags struct {
	rentalDate  string
	returnDate  string
	patronID    flags.OptionalID
	inventoryID flags.OptionalID
}

var rentalFlagNames = []string{"rental-date", "return-date", "patron-id", "inventory-id"}

func (f *rentalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rentalDate, "rental-date", "", "Day the copy was rented ("+entity.DateFormat+", default today on create)")
	cmd.Flags().StringVar(&f.returnDate, "return-date", "", "Day the copy was returned ("+entity.DateFormat+")")
	cmd.Flags().Var(&f.patronID, "patron-id", "ID of the renting patron")
	cmd.Flags().Var(&f.inventoryID, "inventory-id", "ID of the rented inventory copy")
}

func rentalEditCommands(a *app) []*cobra.Command {
	var createFlags, updateFlags, patchFlags rentalFlags

	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Rent an inventory copy to a patron",
		Example: `  rentdesk rental create --patron-id 86367 --inventory-id 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRental(cmd, a, nil, &createFlags)
		},
	}
	createFlags.register(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a rental's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			return editRental(cmd, a, id, &updateFlags)
		},
	}
	updateFlags.register(updateCmd)

	patchCmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change only the given fields of a rental",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := editTarget(args)
			if err != nil {
				return err
			}
			if !anyChanged(cmd.Flags(), rentalFlagNames...) {
				return ErrNoChanges
			}
			// A merge-patch map, so "--return-date ''" is sent as null and reopens the rental.
			patch := map[string]any{}
			fs := cmd.Flags()
			if fs.Changed("rental-date") {
				if patch["rentalDate"], err = parse.OptionalDate(patchFlags.rentalDate); err != nil {
					return err
				}
			}
			if fs.Changed("return-date") {
				if patch["returnDate"], err = parse.OptionalDate(patchFlags.returnDate); err != nil {
					return err
				}
			}
			if fs.Changed("patron-id") {
				patch["patron"] = map[string]int64{"id": patchFlags.patronID.Value}
			}
			if fs.Changed("inventory-id") {
				patch["inventory"] = map[string]int64{"id": patchFlags.inventoryID.Value}
			}
			saved, err := apiclient.NewRentalService(a.client).MergePatch(cmd.Context(), *id, patch)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "rental", false, saved, rentalColumns)
		},
	}
	patchFlags.register(patchCmd)

	return []*cobra.Command{createCmd, updateCmd, patchCmd}
}

func editRental(cmd *cobra.Command, a *app, id *int64, f *rentalFlags) error {
	ctx := cmd.Context()
	rentals := apiclient.NewRentalService(a.client)
	patrons := apiclient.NewPatronService(a.client)
	inventories := apiclient.NewInventoryService(a.client)
	start, err := startEntity[entity.Rental](ctx, rentals, "rental", id)
	if err != nil {
		return err
	}

	ctl := update.NewRentalUpdate(rentals, patrons, inventories, nil, update.WithLogger(a.logger))
	saved, err := runEdit[entity.Rental](cmd, ctl, start, func() error {
		err := fillForm(cmd, a, id != nil, rentalFlagNames,
			func() error { return applyRentalFlags(cmd, ctl, patrons, inventories, f) },
			func() error { return promptRental(ctl) },
		)
		if err != nil {
			return err
		}
		if id == nil && ctl.Form().RentalDate == nil {
			today := entity.Today()
			ctl.SetRentalDate(&today)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return printSaved(cmd, a, "rental", id == nil, saved, rentalColumns)
}

func applyRentalFlags(cmd *cobra.Command, ctl *update.RentalUpdate, patrons *apiclient.PatronService, inventories *apiclient.InventoryService, f *rentalFlags) error {
	ctx := cmd.Context()
	fs := cmd.Flags()
	if fs.Changed("rental-date") {
		d, err := parse.OptionalDate(f.rentalDate)
		if err != nil {
			return err
		}
		ctl.SetRentalDate(d)
	}
	if fs.Changed("return-date") {
		d, err := parse.OptionalDate(f.returnDate)
		if err != nil {
			return err
		}
		ctl.SetReturnDate(d)
	}
	if fs.Changed("patron-id") {
		p, err := pick(ctx, ctl.Patrons(), (*entity.Patron).Identifier, patrons, "patron", f.patronID.Value)
		if err != nil {
			return err
		}
		ctl.SetPatron(p)
	}
	if fs.Changed("inventory-id") {
		inv, err := pick(ctx, ctl.Inventories(), (*entity.Inventory).Identifier, inventories, "inventory", f.inventoryID.Value)
		if err != nil {
			return err
		}
		ctl.SetInventory(inv)
	}
	return nil
}

func promptRental(ctl *update.RentalUpdate) error {
	form := ctl.Form()
	rentalDate, returnDate := formatDate(form.RentalDate), formatDate(form.ReturnDate)
	if rentalDate == "" {
		rentalDate = entity.Today().String()
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Rental date").Placeholder(entity.DateFormat).Value(&rentalDate).Validate(validDate(false)),
		huh.NewInput().Title("Return date").Placeholder("leave empty while rented").Value(&returnDate).Validate(validDate(true)),
	)).Run()
	if err != nil {
		return err
	}
	patron, err := selectOne("patron", ctl.Patrons(), (*entity.Patron).Identifier, patronLabel, form.Patron)
	if err != nil {
		return err
	}
	inv, err := selectOne("inventory", ctl.Inventories(), (*entity.Inventory).Identifier, inventoryLabel, form.Inventory)
	if err != nil {
		return err
	}

	rd, err := parse.OptionalDate(rentalDate)
	if err != nil {
		return err
	}
	ret, err := parse.OptionalDate(returnDate)
	if err != nil {
		return err
	}
	ctl.SetRentalDate(rd)
	ctl.SetReturnDate(ret)
	ctl.SetPatron(patron)
	ctl.SetInventory(inv)
	return nil
}

func newReturnCommand(a *app) *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:     "return <id>",
		Short:   "Mark a rental as returned",
		Example: `  rentdesk rental return 7 --date 2026-10-19`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parse.ID(args[0])
			if err != nil {
				return err
			}
			date := entity.Today()
			if on != "" {
				d, err := parse.OptionalDate(on)
				if err != nil {
					return err
				}
				date = *d
			}
			rentals := apiclient.NewRentalService(a.client)
			current, err := resolveExisting[entity.Rental](cmd.Context(), rentals, "rental", id)
			if err != nil {
				return err
			}
			if current.IsReturned() {
				return fmt.Errorf("rental %d was already returned on %s", id, current.ReturnDate)
			}
			saved, err := rentals.Return(cmd.Context(), id, date)
			if err != nil {
				return err
			}
			return printSaved(cmd, a, "rental", false, saved, rentalColumns)
		},
	}
	cmd.Flags().StringVar(&on, "date", "", "Return date ("+entity.DateFormat+", default today)")
	return cmd
}

func newAvailableCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "Count the inventory copies not currently rented out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := apiclient.NewRentalService(a.client).Available(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return output.JSON(cmd.OutOrStdout(), map[string]int64{"available": n})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
