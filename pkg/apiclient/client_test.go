package apiclient_test

import (
	"context"
	"fmt"
	"net/http"
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
	"github.com/shiftboard/shiftboard-backend/pkg/apiclient"
)

func newServer(t *testing.T) *apiclient.Client {
	gin.SetMode(gin.TestMode)
	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: &config.Config{
			Server: config.ServerConfig{RequestTimeout: 5 * time.Second, RateLimitRPS: 1000, RateLimitBurst: 1000},
			App:    config.AppConfig{Name: "shiftboard-api"},
		},
		Log:    logging.Discard(),
		Stores: bootstrap.MemoryStores(memory.NewStore()),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return apiclient.New(srv.URL + "/api/")
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newServer(t)

	acme, err := api.CreateClient(ctx, apiclient.ClientInput{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)

	p, err := api.CreateProject(ctx, apiclient.ProjectInput{
		Name: "Lobby Clean", ClientID: fmt.Sprint(acme.ID), Location: "outside premises", Budget: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LocationOutside, p.Location)

	updated, err := api.UpdateProject(ctx, p.ID, apiclient.ProjectInput{
		Name: "Lobby Clean", ClientID: fmt.Sprint(acme.ID), Location: "OUTSIDE", Budget: 240,
	})
	require.NoError(t, err)
	assert.Equal(t, 240.0, updated.Budget)
	require.NotNil(t, updated.Client)

	list, err := api.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Projects, 1)

	require.NoError(t, api.DeleteProject(ctx, p.ID))
	require.NoError(t, api.DeleteClient(ctx, acme.ID))

	emps, err := api.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, emps)
}

func TestClient_TaggedErrors(t *testing.T) {
	ctx := context.Background()
	api := newServer(t)

	_, err := api.CreateClient(ctx, apiclient.ClientInput{Name: "Acme"})
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "email", apiErr.Field)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = api.CreateProject(ctx, apiclient.ProjectInput{Name: "x", ClientID: "77"})
	assert.Equal(t, domain.KindReference, domain.KindOf(err))

	err = api.DeleteProject(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = api.GetClient(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := apiclient.New(url).ListClients(context.Background())
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL).ListClients(context.Background())
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.KindStore, apiErr.Code)
	assert.Equal(t, "api returned status 502", apiErr.Message)
}
