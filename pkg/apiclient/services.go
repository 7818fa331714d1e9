package apiclient

import (
	"context"

	"github.com/rentdesk/rentdesk/pkg/entity"
)

// Resource paths, relative to the configured API base URL.
const (
	BooksResource       = "api/books"
	PatronsResource     = "api/patrons"
	InventoriesResource = "api/inventories"
	RentalsResource     = "api/rentals"
)

// BookService manages books.
type BookService = Service[entity.Book]


// InventoryService manages inventory copies.
type InventoryService = Service[entity.Inventory]

// NewBookService creates the book service.
func NewBookService(c *Client) *BookService {
	return NewService(c, BooksResource, "book", (*entity.Book).Identifier)
}

// PatronService manages patrons and counts their rentals.
type PatronService struct {
	*Service[entity.Patron]
}

// NewPatronService creates the patron service.
func NewPatronService(c *Client) *PatronService {
	return &PatronService{
		Service: NewService(c, PatronsResource, "patron", (*entity.Patron).Identifier),
	}
}

// RentalCount returns how many rentals, returned or not, the patron has.
// The backend answers 0 for an unknown patron.
func (s *PatronService) RentalCount(ctx context.Context, id int64) (int64, error) {
	return s.client.getCount(ctx, s.itemURL(id)+"/books")
}

// NewInventoryService creates the inventory service.
func NewInventoryService(c *Client) *InventoryService {
	return NewService(c, InventoriesResource, "inventory", (*entity.Inventory).Identifier)
}

// RentalService manages rentals and answers availability questions.
type RentalService struct {
	*Service[entity.Rental]
}

// NewRentalService creates the rental service.
func NewRentalService(c *Client) *RentalService {
	return &RentalService{
		Service: NewService(c, RentalsResource, "rental", (*entity.Rental).Identifier),
	}
}

// Available returns the number of inventory copies not currently rented out.
func (s *RentalService) Available(ctx context.Context) (int64, error) {
	return s.client.getCount(ctx, s.ResourceURL()+"/available")
}

// Return marks the rental as returned on the given date with a partial update.
func (s *RentalService) Return(ctx context.Context, id int64, on entity.Date) (*entity.Rental, error) {
	return s.PartialUpdate(ctx, &entity.Rental{ID: entity.ID(id), ReturnDate: &on})
}
