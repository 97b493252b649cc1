// Package forms holds the state of the client and project entry forms.
// A form collects values, checks required fields and hands the values to
// a caller supplied submit function. It never talks to the store itself.
// Forms are not safe for concurrent use.
package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// ErrInvalid is returned by Submit when required fields are missing.
var ErrInvalid = errors.New("form has missing fields")

// Issue is one failed field check.
type Issue struct {
	Field   string
	Message string
}

func required(issues []Issue, field, value string) []Issue {
	if strings.TrimSpace(value) == "" {
		issues = append(issues, Issue{Field: field, Message: field + " is required"})
	}
	return issues
}

// state is shared by both forms.
type state struct {
	editMode   bool
	submitting bool
	err        string
	issues     []Issue
}

// Err is the message of the last failed submission, or "".
func (s *state) Err() string { return s.err }

// Issues are the field problems found by the last Submit.
func (s *state) Issues() []Issue { return s.issues }

// Submitting reports whether a submission is in flight.
func (s *state) Submitting() bool { return s.submitting }

func (s *state) EditMode() bool { return s.editMode }

func (s *state) label(create, update string) string {
	if s.editMode {
		return update
	}
	return create
}

// run validates, calls submit and records the outcome. The form stays
// usable after a failure so the user can retry.
func (s *state) run(issues []Issue, submit func() error) error {
	s.issues = issues
	if len(issues) > 0 {
		s.err = issues[0].Message
		return ErrInvalid
	}

	s.submitting = true
	s.err = ""
	defer func() { s.submitting = false }()

	if err := submit(); err != nil {
		s.err = err.Error()
		if s.err == "" {
			s.err = "an error occurred while saving"
		}
		return err
	}
	return nil
}

// ClientData is the value set of the client form.
type ClientData struct {
	Name  string
	Email string
	Phone string
}

type ClientForm struct {
	state
	Data ClientData
}

// NewClientForm starts in edit mode when initial is not nil.
func NewClientForm(initial *ClientData) *ClientForm {
	f := &ClientForm{}
	if initial != nil {
		f.Data = *initial
		f.editMode = true
	}
	return f
}

// ClientDataOf copies the editable fields of c.
func ClientDataOf(c domain.Client) ClientData {
	return ClientData{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func (f *ClientForm) Validate() []Issue {
	var issues []Issue
	issues = required(issues, "name", f.Data.Name)
	issues = required(issues, "email", f.Data.Email)
	return issues
}

func (f *ClientForm) SubmitLabel() string { return f.label("Create", "Update") }

// Submit validates the fields and waits for fn.
func (f *ClientForm) Submit(ctx context.Context, fn func(context.Context, ClientData) error) error {
	return f.run(f.Validate(), func() error { return fn(ctx, f.Data) })
}

// ProjectData is the value set of the project form. ClientID holds the
// selected option value, as text.
type ProjectData struct {
	Name     string
	ClientID string
	Address  string
	Location domain.Location
	Budget   float64
	Manager  string
}

// ClientLister supplies the options of the client selector.
type ClientLister interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
}

type ProjectForm struct {
	state
	Data ProjectData

	clients       []domain.Client
	clientsLoaded bool
	loadErr       error
}

// NewProjectForm starts in edit mode when initial is not nil. New projects
// default to INSIDE.
func NewProjectForm(initial *ProjectData) *ProjectForm {
	f := &ProjectForm{Data: ProjectData{Location: domain.LocationInside}}
	if initial != nil {
		f.Data = *initial
		f.editMode = true
	}
	return f
}

// ProjectDataOf copies the editable fields of p.
func ProjectDataOf(p domain.Project) ProjectData {
	return ProjectData{
		Name:     p.Name,
		ClientID: domain.FormatID(p.ClientID),
		Address:  p.Address,
		Location: p.Location,
		Budget:   p.Budget,
		Manager:  p.Manager,
	}
}

// LoadClients fetches the selector options on the first call only. Later
// calls return the list fetched then, even if it has gone stale.
func (f *ProjectForm) LoadClients(ctx context.Context, l ClientLister) ([]domain.Client, error) {
	if !f.clientsLoaded {
		f.clientsLoaded = true
		f.clients, f.loadErr = l.ListClients(ctx)
		if f.clients == nil {
			f.clients = []domain.Client{}
		}
	}
	return f.clients, f.loadErr
}

// Clients returns the loaded selector options.
func (f *ProjectForm) Clients() []domain.Client { return f.clients }

func (f *ProjectForm) Validate() []Issue {
	var issues []Issue
	issues = required(issues, "name", f.Data.Name)
	issues = required(issues, "clientId", f.Data.ClientID)
	issues = required(issues, "address", f.Data.Address)
	issues = required(issues, "manager", f.Data.Manager)
	if !f.Data.Location.Valid() {
		issues = append(issues, Issue{Field: "location", Message: "location must be INSIDE or OUTSIDE"})
	}
	if f.Data.Budget < 0 {
		issues = append(issues, Issue{Field: "budget", Message: "budget must not be negative"})
	}
	return issues
}

func (f *ProjectForm) SubmitLabel() string { return f.label("Create", "Update") }

// Submit validates the fields and waits for fn.
func (f *ProjectForm) Submit(ctx context.Context, fn func(context.Context, ProjectData) error) error {
	return f.run(f.Validate(), func() error { return fn(ctx, f.Data) })
}
