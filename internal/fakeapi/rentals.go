package fakeapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rentdesk/rentdesk/pkg/entity"
	"github.com/rentdesk/rentdesk/pkg/httputil"
)

func (s *Server) hydrateInventory(i *entity.Inventory) []httputil.FieldError {
	book := s.books.Get(*i.Book.Identifier())
	if book == nil {
		return []httputil.FieldError{{ObjectName: "inventory", Field: "book", Message: "does not exist"}}
	}
	i.Book = book
	return nil
}

func (s *Server) hydrateRental(r *entity.Rental) []httputil.FieldError {
	var fields []httputil.FieldError
	if r.Patron != nil {
		if patron := s.patrons.Get(*r.Patron.Identifier()); patron != nil {
			r.Patron = patron
		} else {
			fields = append(fields, httputil.FieldError{ObjectName: "rental", Field: "patron", Message: "does not exist"})
		}
	}
	if r.Inventory != nil {
		inventory := s.inventories.Get(*r.Inventory.Identifier())
		switch {
		case inventory == nil:
			fields = append(fields, httputil.FieldError{ObjectName: "rental", Field: "inventory", Message: "does not exist"})
		case !r.IsReturned() && s.isRented(*inventory.ID, r.ID):
			fields = append(fields, httputil.FieldError{ObjectName: "rental", Field: "inventory", Message: "is already rented"})
		default:
			if book := s.books.Get(idOrZero(inventory.Book.Identifier())); book != nil {
				inventory.Book = book
			}
			r.Inventory = inventory
		}
	}
	return fields
}

func idOrZero(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// isRented reports whether an open rental other than except holds the inventory copy.
func (s *Server) isRented(inventoryID int64, except *int64) bool {
	open := s.rentalsWhere(func(r *entity.Rental) bool {
		return !r.IsReturned() &&
			idEquals(r.Inventory.Identifier(), inventoryID) &&
			(except == nil || !idEquals(r.ID, *except))
	})
	return len(open) > 0
}

func (s *Server) rentalsWhere(match func(*entity.Rental) bool) []*entity.Rental {
	var result []*entity.Rental
	for _, r := range s.rentals.List() {
		if match(r) {
			result = append(result, r)
		}
	}
	return result
}

// availableCopies counts inventory copies without an open rental, optionally for one book.
func (s *Server) availableCopies(bookID *int64) int {
	n := 0
	for _, inv := range s.inventories.List() {
		if bookID != nil && !idEquals(inv.Book.Identifier(), *bookID) {
			continue
		}
		if !s.isRented(*inv.ID, nil) {
			n++
		}
	}
	return n
}

// handlePatronRentals counts every rental of a patron. An unknown patron has none.
func (s *Server) handlePatronRentals(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req)
	if !ok {
		return
	}
	rentals := s.rentalsWhere(func(r *entity.Rental) bool {
		return idEquals(r.Patron.Identifier(), id)
	})
	httputil.WriteOK(w, len(rentals))
}

func (s *Server) handleAvailableRentals(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, s.availableCopies(nil))
}

func (s *Server) handleAvailability(w http.ResponseWriter, req *http.Request) {
	raw := req.URL.Query().Get("bookId")
	bookID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "error.bookid", fmt.Sprintf("invalid bookId %q", raw))
		return
	}
	if !s.books.Exists(bookID) {
		httputil.WriteNotFound(w, "error.notfound", fmt.Sprintf("book %d not found", bookID))
		return
	}
	httputil.WriteOK(w, s.availableCopies(&bookID))
}
