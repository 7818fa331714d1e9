package update

import (
	"context"

	"github.com/rentdesk/rentdesk/pkg/entity"
)

// PatronForm holds the editable fields of a patron.
type PatronForm struct {
	ID          *int64
	Name        string
	DateOfBirth *entity.Date
	PhoneNumber string
}

// PatronUpdate edits one patron.
type PatronUpdate struct {
	*core[entity.Patron]
	form PatronForm
}

// NewPatronUpdate creates a patron controller.
func NewPatronUpdate(patrons Saver[entity.Patron], nav Navigator, opts ...Option) *PatronUpdate {
	return &PatronUpdate{core: newCore("patron", patrons, (*entity.Patron).Identifier, nav, opts)}
}

// Init copies p into the form.
func (c *PatronUpdate) Init(ctx context.Context, p *entity.Patron) *LoadTask {
	c.mu.Lock()
	c.form = PatronForm{}
	if p != nil {
		c.form = PatronForm{
			ID:          cloneID(p.ID),
			Name:        p.Name,
			DateOfBirth: cloneDate(p.DateOfBirth),
			PhoneNumber: p.PhoneNumber,
		}
	}
	gen := c.startLoading()
	c.mu.Unlock()
	return c.load(ctx, gen)
}

// Form returns a copy of the form.
func (c *PatronUpdate) Form() PatronForm {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.form
	f.ID = cloneID(f.ID)
	f.DateOfBirth = cloneDate(f.DateOfBirth)
	return f
}

// SetName sets the patron's name.
func (c *PatronUpdate) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Name = name
}

// SetDateOfBirth sets the date of birth.
func (c *PatronUpdate) SetDateOfBirth(d *entity.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.DateOfBirth = cloneDate(d)
}

// SetPhoneNumber sets the phone number.
func (c *PatronUpdate) SetPhoneNumber(phone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.PhoneNumber = phone
}

// Entity materializes a fresh patron from the form.
func (c *PatronUpdate) Entity() *entity.Patron {
	f := c.Form()
	return &entity.Patron{ID: f.ID, Name: f.Name, DateOfBirth: f.DateOfBirth, PhoneNumber: f.PhoneNumber}
}

// Validate checks the form's required fields.
func (c *PatronUpdate) Validate() error {
	return entity.Validate(c.Entity())
}

// Save writes the form through the patron service in the background.
func (c *PatronUpdate) Save(ctx context.Context) *SaveTask[entity.Patron] {
	return c.save(ctx, c.Entity())
}
