package fakeapi

import "github.com/rentdesk/rentdesk/pkg/entity"

// SeedSample fills the stores with a small library: two books, three copies,
// two patrons and one open rental of copy 10.
func (s *Server) SeedSample() {
	dune := &entity.Book{ID: entity.ID(1), Title: "Dune", ISBN: "978-0441172719"}
	solaris := &entity.Book{ID: entity.ID(2), Title: "Solaris", ISBN: "978-0156027601"}
	s.books.Seed(dune)
	s.books.Seed(solaris)

	s.inventories.Seed(&entity.Inventory{ID: entity.ID(10), Book: dune})
	s.inventories.Seed(&entity.Inventory{ID: entity.ID(11), Book: dune})
	s.inventories.Seed(&entity.Inventory{ID: entity.ID(12), Book: solaris})

	ada := &entity.Patron{
		ID:          entity.ID(86367),
		Name:        "Ada Lovelace",
		DateOfBirth: entity.DatePtr(entity.MustParseDate("1990-12-10")),
		PhoneNumber: "555-0100",
	}
	s.patrons.Seed(ada)
	s.patrons.Seed(&entity.Patron{
		ID:          entity.ID(86368),
		Name:        "Alan Turing",
		DateOfBirth: entity.DatePtr(entity.MustParseDate("1992-06-23")),
		PhoneNumber: "555-0101",
	})

	s.rentals.Seed(&entity.Rental{
		ID:         entity.ID(1),
		RentalDate: entity.DatePtr(entity.MustParseDate("2026-10-01")),
		Patron:     ada,
		Inventory:  &entity.Inventory{ID: entity.ID(10), Book: dune},
	})
}
