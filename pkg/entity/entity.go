package entity

// Identifiable is implemented by every entity pointer type.
// Identifier must be safe to call on a nil receiver.
type Identifiable interface {
	Identifier() *int64
}

// ID returns a pointer to id, for building entities in code.
func ID(id int64) *int64 {
	return &id
}

// SameIdentity reports whether a and b carry the same non-nil identifier.
func SameIdentity(a, b Identifiable) bool {
	ai, bi := identifierOf(a), identifierOf(b)
	return ai != nil && bi != nil && *ai == *bi
}

func identifierOf(v Identifiable) *int64 {
	if v == nil {
		return nil
	}
	return v.Identifier()
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
