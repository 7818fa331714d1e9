package entity

// Inventory is one physical lending copy of a Book.
type Inventory struct {
	ID   *int64 `json:"id,omitempty"`
	Book *Book  `json:"book,omitempty"`
}

// Identifier returns the copy's ID, or nil for a nil or transient copy.
func (i *Inventory) Identifier() *int64 {
	if i == nil {
		return nil
	}
	return i.ID
}

// IsNew reports whether the copy has not been persisted yet.
func (i *Inventory) IsNew() bool {
	return i.Identifier() == nil
}

// Clone returns a deep copy of i, including its book.
func (i *Inventory) Clone() *Inventory {
	if i == nil {
		return nil
	}
	return &Inventory{ID: cloneID(i.ID), Book: i.Book.Clone()}
}
