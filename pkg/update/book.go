package update

import (
	"context"

	"github.com/rentdesk/rentdesk/pkg/entity"
)

// BookForm holds the editable fields of a book.
type BookForm struct {
	ID    *int64
	Title string
	ISBN  string
}

// BookUpdate edits one book. Books have no relationship fields, so Init
// reaches StateReady without any query.
type BookUpdate struct {
	*core[entity.Book]
	form BookForm
}

// NewBookUpdate creates a book controller.
func NewBookUpdate(books Saver[entity.Book], nav Navigator, opts ...Option) *BookUpdate {
	return &BookUpdate{core: newCore("book", books, (*entity.Book).Identifier, nav, opts)}
}

// Init copies b into the form.
func (c *BookUpdate) Init(ctx context.Context, b *entity.Book) *LoadTask {
	c.mu.Lock()
	c.form = BookForm{}
	if b != nil {
		c.form = BookForm{ID: cloneID(b.ID), Title: b.Title, ISBN: b.ISBN}
	}
	gen := c.startLoading()
	c.mu.Unlock()
	return c.load(ctx, gen)
}

// Form returns a copy of the form.
func (c *BookUpdate) Form() BookForm {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.form
	f.ID = cloneID(f.ID)
	return f
}

// SetTitle sets the title.
func (c *BookUpdate) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Title = title
}

// SetISBN sets the ISBN.
func (c *BookUpdate) SetISBN(isbn string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.ISBN = isbn
}

// Entity materializes a fresh book from the form.
func (c *BookUpdate) Entity() *entity.Book {
	f := c.Form()
	return &entity.Book{ID: f.ID, Title: f.Title, ISBN: f.ISBN}
}

// Validate checks the form's required fields.
func (c *BookUpdate) Validate() error {
	return entity.Validate(c.Entity())
}

// Save writes the form through the book service in the background.
func (c *BookUpdate) Save(ctx context.Context) *SaveTask[entity.Book] {
	return c.save(ctx, c.Entity())
}
