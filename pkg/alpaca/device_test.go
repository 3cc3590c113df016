package alpaca_test

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/pkg/alpacatest"
)

func TestEveryOperationHasAMethod(t *testing.T) {
	for _, deviceType := range alpaca.DeviceTypes {
		t.Run(string(deviceType), func(t *testing.T) {
			dev, err := alpaca.New(deviceType, "localhost", 0)
			require.NoError(t, err)

			typ := reflect.TypeOf(dev)
			for _, name := range dev.OperationNames() {
				_, ok := typ.MethodByName(name)
				assert.True(t, ok, "%T has no method %s", dev, name)
			}
		})
	}
}

func TestOperationAttributesAreLowerCase(t *testing.T) {
	for _, deviceType := range alpaca.DeviceTypes {
		dev, err := alpaca.New(deviceType, "localhost", 0)
		require.NoError(t, err)

		for _, name := range dev.OperationNames() {
			op, ok := dev.Operation(name)
			require.True(t, ok)
			assert.Regexp(t, "^[a-z]+$", op.Attribute, "%s.%s", deviceType, name)
		}
	}
}

func TestCreateClient(t *testing.T) {
	dev, err := alpaca.CreateClient("telescope/10.0.0.5/0")
	require.NoError(t, err)

	_, ok := dev.(*alpaca.Telescope)
	assert.True(t, ok, "got %T", dev)
	assert.Equal(t, "http://10.0.0.5/api/v1/telescope/0", dev.Identity().BaseURL())

	tests := []struct {
		name       string
		descriptor string
		sentinel   error
	}{
		{name: "Unknown category", descriptor: "spectrograph/10.0.0.5/0", sentinel: alpaca.ErrUnknownDeviceType},
		{name: "Capitalized category", descriptor: "Telescope/10.0.0.5/0", sentinel: alpaca.ErrUnknownDeviceType},
		{name: "Too few parts", descriptor: "telescope/10.0.0.5", sentinel: alpaca.ErrInvalidDescriptor},
		{name: "Too many parts", descriptor: "telescope/10.0.0.5/0/1", sentinel: alpaca.ErrInvalidDescriptor},
		{name: "Bad number", descriptor: "telescope/10.0.0.5/zero", sentinel: alpaca.ErrInvalidDescriptor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dev, err := alpaca.CreateClient(tc.descriptor)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.Nil(t, dev)
		})
	}
}

func TestNewReturnsNilInterfaceOnError(t *testing.T) {
	dev, err := alpaca.New(alpaca.TypeDome, "", 0)
	require.Error(t, err)
	assert.True(t, dev == nil, "expected a nil interface, got %#v", dev)
}

func TestInvoke(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.Handle(http.MethodPut, "/api/v1/focuser/0/move", alpacatest.Empty())

	f, err := alpaca.NewFocuser(srv.Address(), 0)
	require.NoError(t, err)

	_, err = f.Invoke("Move", alpaca.Int(5000))
	require.NoError(t, err)
	assert.Equal(t, "5000", srv.LastRequest().Form.Get("Position"))

	before := len(srv.Requests())

	_, err = f.Invoke("Teleport")
	assert.ErrorIs(t, err, alpaca.ErrUnknownOperation)

	_, err = f.Invoke("Move")
	assert.ErrorIs(t, err, alpaca.ErrParameterCount)

	_, err = f.Invoke("Move", alpaca.Float(1.5))
	var tm *alpaca.TypeMismatchError
	require.True(t, errors.As(err, &tm), "got %v", err)
	assert.Equal(t, "Move.Position", tm.Name)
	assert.Equal(t, "int", tm.Want)
	assert.Equal(t, "float", tm.Got)

	assert.Len(t, srv.Requests(), before, "invalid calls must not reach the server")
}

func TestCommonDeviceSurface(t *testing.T) {
	srv := alpacatest.NewServer(t)
	path := func(attr string) string { return alpacatest.DevicePath(alpaca.TypeSafetyMonitor, 2, attr) }

	srv.Handle(http.MethodGet, path("driverinfo"), alpacatest.Value("Cloud sensor, v2.1 , (c) Someone"))
	srv.Handle(http.MethodGet, path("description"), alpacatest.Value("Boltwood II"))
	srv.Handle(http.MethodGet, path("name"), alpacatest.Value("Cloud"))
	srv.Handle(http.MethodGet, path("interfaceversion"), alpacatest.Value(3))
	srv.Handle(http.MethodGet, path("supportedactions"), alpacatest.Value([]string{"reset"}))
	srv.Handle(http.MethodGet, path("devicestate"), alpacatest.Value([]alpaca.StateProperty{
		{Name: "IsSafe", Value: true},
		{Name: "TimeStamp", Value: "2024-01-01T00:00:00"},
	}))
	srv.Handle(http.MethodGet, path("issafe"), alpacatest.Value(false))
	srv.Handle(http.MethodPut, path("action"), alpacatest.Value("done"))
	srv.Handle(http.MethodPut, path("connected"), alpacatest.Empty())
	srv.Handle(http.MethodPut, path("commandbool"), alpacatest.Value(true))

	sm, err := alpaca.NewSafetyMonitor(srv.Address(), 2)
	require.NoError(t, err)

	info, err := sm.DriverInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{"Cloud sensor", "v2.1", "(c) Someone"}, info)

	desc, err := sm.Description()
	require.NoError(t, err)
	assert.Equal(t, "Boltwood II", desc)
	assert.Equal(t, path("description"), srv.LastRequest().Path)

	name, err := sm.Name()
	require.NoError(t, err)
	assert.Equal(t, "Cloud", name)

	version, err := sm.InterfaceVersion()
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	actions, err := sm.SupportedActions()
	require.NoError(t, err)
	assert.Equal(t, []string{"reset"}, actions)

	state, err := sm.DeviceState()
	require.NoError(t, err)
	assert.Equal(t, []alpaca.StateProperty{
		{Name: "IsSafe", Value: true},
		{Name: "TimeStamp", Value: "2024-01-01T00:00:00"},
	}, state)

	safe, err := sm.IsSafe()
	require.NoError(t, err)
	assert.False(t, safe)

	result, err := sm.Action("reset")
	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, "reset", srv.LastRequest().Form.Get("Action"))
	assert.False(t, srv.LastRequest().Form.Has("Parameters"))

	_, err = sm.Action("threshold", "clouds=-20")
	require.NoError(t, err)
	assert.Equal(t, "clouds=-20", srv.LastRequest().Form.Get("Parameters"))

	require.NoError(t, sm.SetConnected(true))
	assert.Equal(t, "True", srv.LastRequest().Form.Get("Connected"))

	ok, err := sm.CommandBool(":GS#", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ":GS#", srv.LastRequest().Form.Get("Command"))
	assert.Equal(t, "False", srv.LastRequest().Form.Get("Raw"))
}
