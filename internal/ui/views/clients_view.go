// Package views holds the client list and its create and edit dialogs.
// Every successful mutation is followed by a full reload of the list.
package views

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
	"github.com/shiftboard/shiftboard-backend/internal/ui/forms"
	"github.com/shiftboard/shiftboard-backend/pkg/apiclient"
)

// API is the part of the API client the view uses.
type API interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, in apiclient.ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, id int64, in apiclient.ClientInput) (*domain.Client, error)
	CreateProject(ctx context.Context, in apiclient.ProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, in apiclient.ProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// ClientsView is the client list with each client's projects.
type ClientsView struct {
	api     API
	log     *logrus.Entry
	clients []domain.Client
	lastErr error
}

func NewClientsView(api API, log *logrus.Entry) *ClientsView {
	return &ClientsView{api: api, log: log.WithField("component", "clients-view"), clients: []domain.Client{}}
}

// Clients is the collection loaded by the last Refresh.
func (v *ClientsView) Clients() []domain.Client { return v.clients }

// LastError is the error of the last Refresh, or nil.
func (v *ClientsView) LastError() error { return v.lastErr }

// Refresh reloads the whole list. On failure the list is left empty.
func (v *ClientsView) Refresh(ctx context.Context) error {
	list, err := v.api.ListClients(ctx)
	if err != nil {
		v.log.WithError(err).Warn("refresh clients failed")
		v.clients = []domain.Client{}
		v.lastErr = err
		return err
	}
	if list == nil {
		list = []domain.Client{}
	}
	v.clients = list
	v.lastErr = nil
	return nil
}

// ClientEditor pairs a client form with the call that saves it.
type ClientEditor struct {
	Form *forms.ClientForm
	save func(context.Context, forms.ClientData) error
}

// Save submits the form. The view is refreshed after a successful save.
func (e *ClientEditor) Save(ctx context.Context) error {
	return e.Form.Submit(ctx, e.save)
}

func (v *ClientsView) OpenCreateClient() *ClientEditor {
	return &ClientEditor{
		Form: forms.NewClientForm(nil),
		save: func(ctx context.Context, d forms.ClientData) error {
			if _, err := v.api.CreateClient(ctx, clientInput(d)); err != nil {
				return err
			}
			return v.refreshAfterWrite(ctx)
		},
	}
}

func (v *ClientsView) OpenEditClient(c domain.Client) *ClientEditor {
	data := forms.ClientDataOf(c)
	return &ClientEditor{
		Form: forms.NewClientForm(&data),
		save: func(ctx context.Context, d forms.ClientData) error {
			if _, err := v.api.UpdateClient(ctx, c.ID, clientInput(d)); err != nil {
				return err
			}
			return v.refreshAfterWrite(ctx)
		},
	}
}

// ProjectEditor pairs a project form with the call that saves it.
type ProjectEditor struct {
	Form *forms.ProjectForm
	api  API
	save func(context.Context, forms.ProjectData) error
}

// LoadClients fills the client selector once.
func (e *ProjectEditor) LoadClients(ctx context.Context) ([]domain.Client, error) {
	return e.Form.LoadClients(ctx, e.api)
}

// Save submits the form. The view is refreshed after a successful save.
func (e *ProjectEditor) Save(ctx context.Context) error {
	return e.Form.Submit(ctx, e.save)
}

// OpenCreateProject preselects clientID when it is positive.
func (v *ClientsView) OpenCreateProject(clientID int64) *ProjectEditor {
	f := forms.NewProjectForm(nil)
	if clientID > 0 {
		f.Data.ClientID = domain.FormatID(clientID)
	}
	return &ProjectEditor{
		Form: f,
		api:  v.api,
		save: func(ctx context.Context, d forms.ProjectData) error {
			if _, err := v.api.CreateProject(ctx, projectInput(d)); err != nil {
				return err
			}
			return v.refreshAfterWrite(ctx)
		},
	}
}

func (v *ClientsView) OpenEditProject(p domain.Project) *ProjectEditor {
	data := forms.ProjectDataOf(p)
	return &ProjectEditor{
		Form: forms.NewProjectForm(&data),
		api:  v.api,
		save: func(ctx context.Context, d forms.ProjectData) error {
			if _, err := v.api.UpdateProject(ctx, p.ID, projectInput(d)); err != nil {
				return err
			}
			return v.refreshAfterWrite(ctx)
		},
	}
}

// DeleteProject removes a project and reloads the list.
func (v *ClientsView) DeleteProject(ctx context.Context, id int64) error {
	if err := v.api.DeleteProject(ctx, id); err != nil {
		return err
	}
	return v.refreshAfterWrite(ctx)
}

// refreshAfterWrite reloads the list. A failed reload does not undo the
// write, so it is recorded in LastError but not reported to the form.
func (v *ClientsView) refreshAfterWrite(ctx context.Context) error {
	_ = v.Refresh(ctx)
	return nil
}

func clientInput(d forms.ClientData) apiclient.ClientInput {
	return apiclient.ClientInput{Name: d.Name, Email: d.Email, Phone: d.Phone}
}

func projectInput(d forms.ProjectData) apiclient.ProjectInput {
	return apiclient.ProjectInput{
		Name:     d.Name,
		ClientID: d.ClientID,
		Address:  d.Address,
		Location: string(d.Location),
		Budget:   d.Budget,
		Manager:  d.Manager,
	}
}
