package update

import (
	"context"

	"github.com/rentdesk/rentdesk/pkg/entity"
)

// InventoryForm holds the editable fields of an inventory copy.
type InventoryForm struct {
	ID   *int64
	Book *entity.Book
}

// InventoryUpdate edits one inventory copy. Its book field offers the books
// loaded from the book service.
type InventoryUpdate struct {
	*core[entity.Inventory]

	bookService Querier[entity.Book]

	form  InventoryForm
	books []*entity.Book
}

// NewInventoryUpdate creates an inventory controller.
func NewInventoryUpdate(inventories Saver[entity.Inventory], books Querier[entity.Book], nav Navigator, opts ...Option) *InventoryUpdate {
	return &InventoryUpdate{
		core:        newCore("inventory", inventories, (*entity.Inventory).Identifier, nav, opts),
		bookService: books,
	}
}

// Init copies inv into the form and starts loading the book options.
// The current book is selectable immediately.
func (c *InventoryUpdate) Init(ctx context.Context, inv *entity.Inventory) *LoadTask {
	c.mu.Lock()
	c.form = InventoryForm{}
	if inv != nil {
		c.form = InventoryForm{ID: cloneID(inv.ID), Book: inv.Book.Clone()}
	}
	c.books = c.bookService.AddToCollectionIfMissing(c.books, c.form.Book)
	gen := c.startLoading()
	c.mu.Unlock()

	return c.load(ctx, gen,
		relationshipLoader(c.core, "book", c.bookService, &c.books, func() *entity.Book { return c.form.Book }),
	)
}

// Form returns a copy of the form.
func (c *InventoryUpdate) Form() InventoryForm {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return InventoryForm{ID: cloneID(c.form.ID), Book: c.form.Book.Clone()}
}

// SetBook selects the book this copy belongs to.
func (c *InventoryUpdate) SetBook(b *entity.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Book = b.Clone()
}

// Books returns the book options for the selection widget.
func (c *InventoryUpdate) Books() []*entity.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSlice(c.books)
}

// Entity materializes a fresh inventory from the form.
func (c *InventoryUpdate) Entity() *entity.Inventory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &entity.Inventory{ID: cloneID(c.form.ID), Book: c.form.Book.Clone()}
}

// Validate checks the form's required fields.
func (c *InventoryUpdate) Validate() error {
	return entity.Validate(c.Entity())
}

// Save writes the form through the inventory service in the background.
func (c *InventoryUpdate) Save(ctx context.Context) *SaveTask[entity.Inventory] {
	return c.save(ctx, c.Entity())
}
