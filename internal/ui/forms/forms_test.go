package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

func TestClientForm_CreateAndEditMode(t *testing.T) {
	f := NewClientForm(nil)
	assert.False(t, f.EditMode())
	assert.Equal(t, "Create", f.SubmitLabel())
	assert.Equal(t, ClientData{}, f.Data)

	e := NewClientForm(&ClientData{Name: "Acme", Email: "a@acme.test"})
	assert.True(t, e.EditMode())
	assert.Equal(t, "Update", e.SubmitLabel())
	assert.Equal(t, "Acme", e.Data.Name)
}

func TestClientForm_RequiredFields(t *testing.T) {
	f := NewClientForm(nil)
	called := false

	err := f.Submit(context.Background(), func(context.Context, ClientData) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)
	require.Len(t, f.Issues(), 2)
	assert.Equal(t, "name", f.Issues()[0].Field)
	assert.Equal(t, "name is required", f.Err())
}

func TestClientForm_FailureThenRetry(t *testing.T) {
	f := NewClientForm(&ClientData{Name: "Acme", Email: "a@acme.test"})
	ctx := context.Background()

	err := f.Submit(ctx, func(context.Context, ClientData) error {
		return domain.Invalid("email", "email is not a valid address")
	})
	require.Error(t, err)
	assert.Equal(t, "email is not a valid address", f.Err())
	assert.False(t, f.Submitting())

	f.Data.Email = "ops@acme.test"
	var got ClientData
	require.NoError(t, f.Submit(ctx, func(_ context.Context, d ClientData) error {
		assert.True(t, f.Submitting())
		got = d
		return nil
	}))
	assert.Empty(t, f.Err())
	assert.Equal(t, "ops@acme.test", got.Email)
}

func TestProjectForm_Defaults(t *testing.T) {
	f := NewProjectForm(nil)
	assert.Equal(t, domain.LocationInside, f.Data.Location)
	assert.Equal(t, "Create", f.SubmitLabel())

	data := ProjectDataOf(domain.Project{Name: "Lobby", ClientID: 12, Location: domain.LocationOutside, Budget: 9})
	e := NewProjectForm(&data)
	assert.Equal(t, "12", e.Data.ClientID)
	assert.Equal(t, "Update", e.SubmitLabel())
}

func TestProjectForm_Validate(t *testing.T) {
	f := NewProjectForm(&ProjectData{
		Name: "Lobby", ClientID: "1", Address: "1 Main St", Manager: "Jane",
		Location: domain.Location("ROOF"), Budget: -1,
	})

	fields := []string{}
	for _, is := range f.Validate() {
		fields = append(fields, is.Field)
	}
	assert.Equal(t, []string{"location", "budget"}, fields)
}

type listerStub struct {
	calls   int
	clients []domain.Client
	err     error
}

func (l *listerStub) ListClients(context.Context) ([]domain.Client, error) {
	l.calls++
	return l.clients, l.err
}

func TestProjectForm_LoadClientsOnce(t *testing.T) {
	ctx := context.Background()
	l := &listerStub{clients: []domain.Client{{ID: 1, Name: "Acme"}}}
	f := NewProjectForm(nil)

	got, err := f.LoadClients(ctx, l)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	l.clients = append(l.clients, domain.Client{ID: 2, Name: "Beta"})
	got, err = f.LoadClients(ctx, l)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, l.calls)
	assert.Len(t, f.Clients(), 1)
}

func TestProjectForm_LoadClientsFailure(t *testing.T) {
	f := NewProjectForm(nil)
	_, err := f.LoadClients(context.Background(), &listerStub{err: errors.New("offline")})
	assert.Error(t, err)
	assert.NotNil(t, f.Clients())
	assert.Empty(t, f.Clients())
}
