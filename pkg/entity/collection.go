package entity

// AddToCollectionIfMissing returns candidates that are not yet part of collection,
// in the order given, followed by collection itself.
//
// Nil candidates and candidates without an identifier are dropped, as is any
// candidate whose identifier already appears in collection or earlier among the
// candidates. When nothing qualifies, collection is returned as is. Otherwise a
// new slice is returned and collection is left untouched.
func AddToCollectionIfMissing[T any](identify func(*T) *int64, collection []*T, candidates ...*T) []*T {
	var seen map[int64]struct{}
	var toAdd []*T
	for _, c := range candidates {
		if c == nil {
			continue
		}
		id := identify(c)
		if id == nil {
			continue
		}
		if seen == nil {
			seen = make(map[int64]struct{}, len(collection)+len(candidates))
			for _, item := range collection {
				if item == nil {
					continue
				}
				if itemID := identify(item); itemID != nil {
					seen[*itemID] = struct{}{}
				}
			}
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		toAdd = append(toAdd, c)
	}
	if len(toAdd) == 0 {
		return collection
	}

	merged := make([]*T, 0, len(toAdd)+len(collection))
	merged = append(merged, toAdd...)
	return append(merged, collection...)
}

// AddBookToCollectionIfMissing is AddToCollectionIfMissing for books.
func AddBookToCollectionIfMissing(collection []*Book, books ...*Book) []*Book {
	return AddToCollectionIfMissing((*Book).Identifier, collection, books...)
}

// AddPatronToCollectionIfMissing is AddToCollectionIfMissing for patrons.
func AddPatronToCollectionIfMissing(collection []*Patron, patrons ...*Patron) []*Patron {
	return AddToCollectionIfMissing((*Patron).Identifier, collection, patrons...)
}

// AddInventoryToCollectionIfMissing is AddToCollectionIfMissing for inventory copies.
func AddInventoryToCollectionIfMissing(collection []*Inventory, inventories ...*Inventory) []*Inventory {
	return AddToCollectionIfMissing((*Inventory).Identifier, collection, inventories...)
}

// AddRentalToCollectionIfMissing is AddToCollectionIfMissing for rentals.
func AddRentalToCollectionIfMissing(collection []*Rental, rentals ...*Rental) []*Rental {
	return AddToCollectionIfMissing((*Rental).Identifier, collection, rentals...)
}
