package entity

// Rental records a patron borrowing an inventory copy.
// A nil ReturnDate means the copy has not been returned yet.
type Rental struct {
	ID         *int64     `json:"id,omitempty"`
	RentalDate *Date      `json:"rentalDate,omitempty"`
	ReturnDate *Date      `json:"returnDate,omitempty"`
	Patron     *Patron    `json:"patron,omitempty"`
	Inventory  *Inventory `json:"inventory,omitempty"`
}

// Identifier returns the rental's ID, or nil for a nil or transient rental.
func (r *Rental) Identifier() *int64 {
	if r == nil {
		return nil
	}
	return r.ID
}

// IsNew reports whether the rental has not been persisted yet.
func (r *Rental) IsNew() bool {
	return r.Identifier() == nil
}

// IsReturned reports whether the rented copy has been brought back.
func (r *Rental) IsReturned() bool {
	return r != nil && r.ReturnDate != nil && !r.ReturnDate.IsZero()
}

// Clone returns a deep copy of r, including its references.
func (r *Rental) Clone() *Rental {
	if r == nil {
		return nil
	}
	return &Rental{
		ID:         cloneID(r.ID),
		RentalDate: cloneDate(r.RentalDate),
		ReturnDate: cloneDate(r.ReturnDate),
		Patron:     r.Patron.Clone(),
		Inventory:  r.Inventory.Clone(),
	}
}
