package update

// Navigator moves the presentation layer between views.
type Navigator interface {
	// PreviousState returns to the view the edit was started from.
	PreviousState()
	// NotFound shows the error view for a missing entity.
	NotFound()
}

// Navigation adapts two funcs to Navigator. Nil funcs are skipped.
type Navigation struct {
	OnPreviousState func()
	OnNotFound      func()
}

// PreviousState implements Navigator.
func (n Navigation) PreviousState() {
	if n.OnPreviousState != nil {
		n.OnPreviousState()
	}
}

// NotFound implements Navigator.
func (n Navigation) NotFound() {
	if n.OnNotFound != nil {
		n.OnNotFound()
	}
}
