package update

import (
	"context"

	"github.com/rentdesk/rentdesk/pkg/entity"
)

// RentalForm holds the editable fields of a rental.
type RentalForm struct {
	ID         *int64
	RentalDate *entity.Date
	ReturnDate *entity.Date
	Patron     *entity.Patron
	Inventory  *entity.Inventory
}

func (f RentalForm) clone() RentalForm {
	return RentalForm{
		ID:         cloneID(f.ID),
		RentalDate: cloneDate(f.RentalDate),
		ReturnDate: cloneDate(f.ReturnDate),
		Patron:     f.Patron.Clone(),
		Inventory:  f.Inventory.Clone(),
	}
}

// RentalUpdate edits one rental. Its patron and inventory fields offer the
// entities loaded from their services; both loads run concurrently.
type RentalUpdate struct {
	*core[entity.Rental]

	patronService    Querier[entity.Patron]
	inventoryService Querier[entity.Inventory]

	form        RentalForm
	patrons     []*entity.Patron
	inventories []*entity.Inventory
}

// NewRentalUpdate creates a rental controller.
func NewRentalUpdate(
	rentals Saver[entity.Rental],
	patrons Querier[entity.Patron],
	inventories Querier[entity.Inventory],
	nav Navigator,
	opts ...Option,
) *RentalUpdate {
	return &RentalUpdate{
		core:             newCore("rental", rentals, (*entity.Rental).Identifier, nav, opts),
		patronService:    patrons,
		inventoryService: inventories,
	}
}

// Init copies r into the form and starts loading the patron and inventory
// options. The current patron and inventory are selectable immediately.
func (c *RentalUpdate) Init(ctx context.Context, r *entity.Rental) *LoadTask {
	c.mu.Lock()
	c.form = RentalForm{}
	if r != nil {
		c.form = RentalForm{
			ID:         r.ID,
			RentalDate: r.RentalDate,
			ReturnDate: r.ReturnDate,
			Patron:     r.Patron,
			Inventory:  r.Inventory,
		}.clone()
	}
	c.patrons = c.patronService.AddToCollectionIfMissing(c.patrons, c.form.Patron)
	c.inventories = c.inventoryService.AddToCollectionIfMissing(c.inventories, c.form.Inventory)
	gen := c.startLoading()
	c.mu.Unlock()

	return c.load(ctx, gen,
		relationshipLoader(c.core, "patron", c.patronService, &c.patrons, func() *entity.Patron { return c.form.Patron }),
		relationshipLoader(c.core, "inventory", c.inventoryService, &c.inventories, func() *entity.Inventory { return c.form.Inventory }),
	)
}

// Form returns a copy of the form.
func (c *RentalUpdate) Form() RentalForm {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.form.clone()
}

// SetRentalDate sets the day the copy was handed out.
func (c *RentalUpdate) SetRentalDate(d *entity.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.RentalDate = cloneDate(d)
}

// SetReturnDate sets the day the copy came back; nil means not yet returned.
func (c *RentalUpdate) SetReturnDate(d *entity.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.ReturnDate = cloneDate(d)
}

// SetPatron selects the renting patron.
func (c *RentalUpdate) SetPatron(p *entity.Patron) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Patron = p.Clone()
}

// SetInventory selects the rented copy.
func (c *RentalUpdate) SetInventory(inv *entity.Inventory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Inventory = inv.Clone()
}

// Patrons returns the patron options.
func (c *RentalUpdate) Patrons() []*entity.Patron {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSlice(c.patrons)
}

// Inventories returns the inventory options.
func (c *RentalUpdate) Inventories() []*entity.Inventory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSlice(c.inventories)
}

// Entity materializes a fresh rental from the form.
func (c *RentalUpdate) Entity() *entity.Rental {
	f := c.Form()
	return &entity.Rental{
		ID:         f.ID,
		RentalDate: f.RentalDate,
		ReturnDate: f.ReturnDate,
		Patron:     f.Patron,
		Inventory:  f.Inventory,
	}
}

// Validate checks the form's required fields.
func (c *RentalUpdate) Validate() error {
	return entity.Validate(c.Entity())
}

// Save writes the form through the rental service in the background.
func (c *RentalUpdate) Save(ctx context.Context) *SaveTask[entity.Rental] {
	return c.save(ctx, c.Entity())
}
