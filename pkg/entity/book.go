package entity

// Book is a title in the catalogue.
type Book struct {
	ID    *int64 `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	ISBN  string `json:"isbn,omitempty"`
}

// Identifier returns the book's ID, or nil for a nil or transient book.
func (b *Book) Identifier() *int64 {
	if b == nil {
		return nil
	}
	return b.ID
}

// IsNew reports whether the book has not been persisted yet.
func (b *Book) IsNew() bool {
	return b.Identifier() == nil
}

// Clone returns a deep copy of b.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	c := *b
	c.ID = cloneID(b.ID)
	return &c
}
