package alpaca_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/pkg/alpacatest"
)

func TestCameraImageArray(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.Handle(http.MethodGet, "/api/v1/camera/0/imagearray",
		alpacatest.Value([][]int{{1, 2, 3}, {4, 5, 6}}).With("Type", 2).With("Rank", 2))
	srv.Handle(http.MethodGet, "/api/v1/camera/0/imagearrayvariant",
		alpacatest.Value([][][]int{{{1, 2, 3}}}).With("Type", 2).With("Rank", 3))

	cam, err := alpaca.NewCamera(srv.Address(), 0)
	require.NoError(t, err)

	img, err := cam.ImageArray()
	require.NoError(t, err)
	assert.Equal(t, alpaca.ElementInt32, img.Type)
	assert.Equal(t, 2, img.Rank)

	plane, err := img.Plane()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, plane)

	_, err = img.Cube()
	assert.Error(t, err)

	variant, err := cam.ImageArrayVariant()
	require.NoError(t, err)
	cube, err := variant.Cube()
	require.NoError(t, err)
	assert.Equal(t, [][][]float64{{{1, 2, 3}}}, cube)
}

func TestCameraExposure(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.Handle(http.MethodPut, "/api/v1/camera/1/startexposure", alpacatest.Empty())
	srv.Handle(http.MethodGet, "/api/v1/camera/1/camerastate", alpacatest.Value(2))
	srv.Handle(http.MethodPut, "/api/v1/camera/1/setccdtemperature", alpacatest.Empty())

	cam, err := alpaca.NewCamera(srv.Address(), 1)
	require.NoError(t, err)

	require.NoError(t, cam.StartExposure(30, false))
	req := srv.LastRequest()
	assert.Equal(t, "30", req.Form.Get("Duration"))
	assert.Equal(t, "False", req.Form.Get("Light"))

	state, err := cam.CameraState()
	require.NoError(t, err)
	assert.Equal(t, alpaca.CameraExposing, state)
	assert.Equal(t, "Exposing", state.String())

	require.NoError(t, cam.SetCCDTemperatureSetpoint(-10.5))
	assert.Equal(t, "-10.5", srv.LastRequest().Form.Get("SetCCDTemperature"))
}

func TestFilterWheel(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.Handle(http.MethodGet, "/api/v1/filterwheel/0/names", alpacatest.Value([]string{"L", "R", "G", "B"}))
	srv.Handle(http.MethodGet, "/api/v1/filterwheel/0/focusoffsets", alpacatest.Value([]int{0, 12, 10, -4}))
	srv.Handle(http.MethodPut, "/api/v1/filterwheel/0/position", alpacatest.Empty())

	fw, err := alpaca.NewFilterWheel(srv.Address(), 0)
	require.NoError(t, err)

	names, err := fw.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"L", "R", "G", "B"}, names)

	offsets, err := fw.FocusOffsets()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 12, 10, -4}, offsets)

	require.NoError(t, fw.SetPosition(2))
	assert.Equal(t, "2", srv.LastRequest().Form.Get("Position"))
}

func TestRotator(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.Handle(http.MethodPut, "/api/v1/rotator/0/moveabsolute", alpacatest.Empty())
	srv.Handle(http.MethodGet, "/api/v1/rotator/0/position", alpacatest.Value(181.75))

	rot, err := alpaca.NewRotator(srv.Address(), 0)
	require.NoError(t, err)

	require.NoError(t, rot.MoveAbsolute(90.5))
	assert.Equal(t, "90.5", srv.LastRequest().Form.Get("Position"))

	pos, err := rot.Position()
	require.NoError(t, err)
	assert.Equal(t, 181.75, pos)
}

func TestSwitchValues(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.Handle(http.MethodGet, "/api/v1/switch/0/maxswitchvalue", alpacatest.Value(255))
	srv.Handle(http.MethodPut, "/api/v1/switch/0/setswitchvalue", alpacatest.Empty())

	sw, err := alpaca.NewSwitch(srv.Address(), 0)
	require.NoError(t, err)

	maxValue, err := sw.MaxSwitchValue(1)
	require.NoError(t, err)
	assert.Equal(t, 255.0, maxValue)
	assert.Equal(t, "1", srv.LastRequest().Query.Get("Id"))

	require.NoError(t, sw.SetSwitchValue(1, 127.5))
	req := srv.LastRequest()
	assert.Equal(t, "1", req.Form.Get("Id"))
	assert.Equal(t, "127.5", req.Form.Get("Value"))
}

func TestDomeSimulator(t *testing.T) {
	srv := alpacatest.NewServer(t)
	sim := srv.MountDome(0)

	dome, err := alpaca.NewDome(srv.Address(), 0)
	require.NoError(t, err)

	_, err = dome.ShutterStatus()
	assert.ErrorIs(t, err, alpaca.ErrNotConnected)

	require.NoError(t, dome.Connect())
	connected, err := dome.Connected()
	require.NoError(t, err)
	assert.True(t, connected)

	require.NoError(t, dome.OpenShutter())
	status, err := dome.ShutterStatus()
	require.NoError(t, err)
	assert.Equal(t, alpaca.ShutterOpen, status)

	err = dome.SlewToAzimuth(120)
	assert.ErrorIs(t, err, alpaca.ErrInvalidWhileParked)

	require.NoError(t, dome.FindHome())
	require.NoError(t, dome.SlewToAzimuth(120))
	az, err := dome.Azimuth()
	require.NoError(t, err)
	assert.Equal(t, 120.0, az)

	err = dome.SlewToAltitude(120)
	var alpacaErr *alpaca.AlpacaError
	require.True(t, errors.As(err, &alpacaErr), "got %v", err)
	assert.ErrorIs(t, err, alpaca.ErrInvalidValue)

	require.NoError(t, dome.SetSlaved(true))
	assert.ErrorIs(t, dome.SlewToAzimuth(10), alpaca.ErrInvalidWhileSlaved)

	state, err := dome.DeviceState()
	require.NoError(t, err)
	names := make([]string, 0, len(state))
	for _, p := range state {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "ShutterStatus")
	assert.Contains(t, names, "Azimuth")

	assert.Equal(t, 120.0, sim.Status().Azimuth)
	assert.True(t, sim.Status().Slaved)

	require.NoError(t, dome.Disconnect())
	assert.False(t, sim.Connected())
}
