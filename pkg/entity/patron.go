package entity

// Patron is a library member who can rent inventory copies.
type Patron struct {
	ID          *int64 `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	DateOfBirth *Date  `json:"dateOfBirth,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Identifier returns the patron's ID, or nil for a nil or transient patron.
func (p *Patron) Identifier() *int64 {
	if p == nil {
		return nil
	}
	return p.ID
}

// IsNew reports whether the patron has not been persisted yet.
func (p *Patron) IsNew() bool {
	return p.Identifier() == nil
}

// Clone returns a deep copy of p.
func (p *Patron) Clone() *Patron {
	if p == nil {
		return nil
	}
	c := *p
	c.ID = cloneID(p.ID)
	c.DateOfBirth = cloneDate(p.DateOfBirth)
	return &c
}
