package views

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftboard/shiftboard-backend/config"
	"github.com/shiftboard/shiftboard-backend/internal/bootstrap"
	"github.com/shiftboard/shiftboard-backend/internal/domain"
	"github.com/shiftboard/shiftboard-backend/internal/logging"
	"github.com/shiftboard/shiftboard-backend/internal/storage/memory"
	"github.com/shiftboard/shiftboard-backend/internal/ui/forms"
	"github.com/shiftboard/shiftboard-backend/pkg/apiclient"
)

func newView(t *testing.T) *ClientsView {
	gin.SetMode(gin.TestMode)
	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: &config.Config{
			Server: config.ServerConfig{RequestTimeout: 5 * time.Second, RateLimitRPS: 1000, RateLimitBurst: 1000},
		},
		Log:    logging.Discard(),
		Stores: bootstrap.MemoryStores(memory.NewStore()),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return NewClientsView(apiclient.New(srv.URL+"/api"), logging.Discard())
}

func TestClientsView_CreateFlow(t *testing.T) {
	ctx := context.Background()
	v := newView(t)

	require.NoError(t, v.Refresh(ctx))
	assert.Empty(t, v.Clients())

	ed := v.OpenCreateClient()
	ed.Form.Data.Name = "Acme"
	ed.Form.Data.Email = "a@acme.test"
	require.NoError(t, ed.Save(ctx))
	require.Len(t, v.Clients(), 1)
	acme := v.Clients()[0]

	pe := v.OpenCreateProject(acme.ID)
	opts, err := pe.LoadClients(ctx)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	pe.Form.Data.Name = "Lobby Clean"
	pe.Form.Data.Address = "1 Main St"
	pe.Form.Data.Manager = "Jane"
	pe.Form.Data.Budget = 500
	require.NoError(t, pe.Save(ctx))

	require.Len(t, v.Clients()[0].Projects, 1)
	p := v.Clients()[0].Projects[0]
	assert.Equal(t, domain.LocationInside, p.Location)

	edit := v.OpenEditProject(p)
	assert.Equal(t, "Update", edit.Form.SubmitLabel())
	edit.Form.Data.Budget = 750
	require.NoError(t, edit.Save(ctx))
	assert.Equal(t, 750.0, v.Clients()[0].Projects[0].Budget)

	ce := v.OpenEditClient(v.Clients()[0])
	ce.Form.Data.Phone = "210"
	require.NoError(t, ce.Save(ctx))
	assert.Equal(t, "210", v.Clients()[0].Phone)

	require.NoError(t, v.DeleteProject(ctx, p.ID))
	assert.Empty(t, v.Clients()[0].Projects)
}

func TestClientsView_ServerErrorShownInForm(t *testing.T) {
	ctx := context.Background()
	v := newView(t)

	ed := v.OpenCreateClient()
	ed.Form.Data.Name = "Acme"
	ed.Form.Data.Email = "not-an-email"

	err := ed.Save(ctx)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "email is not a valid address", ed.Form.Err())
	assert.Empty(t, v.Clients())

	pe := v.OpenCreateProject(0)
	pe.Form.Data = forms.ProjectData{
		Name: "Ghost", ClientID: "404", Address: "nowhere", Manager: "Jane", Location: domain.LocationInside,
	}
	err = pe.Save(ctx)
	assert.Equal(t, domain.KindReference, domain.KindOf(err))
	assert.Equal(t, "client 404 does not exist", pe.Form.Err())
}

type failingAPI struct{ API }

func (failingAPI) ListClients(context.Context) ([]domain.Client, error) {
	return nil, errors.New("offline")
}

func TestClientsView_RefreshFailureKeepsEmptyList(t *testing.T) {
	v := NewClientsView(failingAPI{}, logging.Discard())
	v.clients = []domain.Client{{ID: 1}}

	assert.Error(t, v.Refresh(context.Background()))
	assert.NotNil(t, v.Clients())
	assert.Empty(t, v.Clients())
	assert.EqualError(t, v.LastError(), "offline")
}
