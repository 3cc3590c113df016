package alpaca_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/pkg/alpacatest"
)

func TestManagement(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.SetDescription(alpaca.ServerDescription{
		Name:                "Observatory",
		Manufacturer:        "Cereceda",
		ManufacturerVersion: "2.0",
		Location:            "Madrid",
	})
	srv.MountDome(0)

	mgmt, err := alpaca.NewManagement(srv.Address())
	require.NoError(t, err)

	versions, err := mgmt.APIVersions()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, versions)
	assert.NotEmpty(t, srv.LastRequest().Query.Get("ClientTransactionID"))

	desc, err := mgmt.Description()
	require.NoError(t, err)
	assert.Equal(t, "Observatory", desc.Name)
	assert.Equal(t, "Madrid", desc.Location)

	devices, err := mgmt.ConfiguredDevices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "Dome", devices[0].Type)
	assert.Equal(t, "dome/"+srv.Address()+"/0", devices[0].Descriptor(srv.Address()))

	dev, err := alpaca.CreateClient(devices[0].Descriptor(srv.Address()))
	require.NoError(t, err)
	name, err := dev.Name()
	require.NoError(t, err)
	assert.Equal(t, "Dome Simulator", name)
}

func TestManagementErrors(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.Handle(http.MethodGet, "/management/apiversions", alpacatest.Status(http.StatusInternalServerError, "down"))

	mgmt, err := alpaca.NewManagement(srv.Address())
	require.NoError(t, err)

	_, err = mgmt.APIVersions()
	var httpErr *alpaca.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "down", httpErr.Message)

	_, err = alpaca.NewManagement("bad host")
	assert.Error(t, err)
}

func TestDiscoverAt(t *testing.T) {
	responder := alpacatest.NewDiscoveryResponder(t, 11111)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	servers, err := alpaca.DiscoverAt(ctx, responder.Addr())
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "127.0.0.1", servers[0].IP)
	assert.Equal(t, 11111, servers[0].Port)
	assert.Equal(t, "127.0.0.1:11111", servers[0].Address())
}
