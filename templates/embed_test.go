package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpacaclient/pkg/alpaca"
)

func TestRenderStatus(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = RenderStatus(&buf, tmpl, DeviceStatus{
		URL:              "http://10.0.0.5/api/v1/dome/0",
		Name:             "Roof",
		Description:      "Roll-off roof",
		DriverInfo:       []string{"ZRO", "v1"},
		DriverVersion:    "1.0",
		InterfaceVersion: "3",
		Connected:        "true",
		State:            []alpaca.StateProperty{{Name: "AtPark", Value: true}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "http://10.0.0.5/api/v1/dome/0\n")
	assert.Contains(t, out, "Driver:            ZRO, v1\n")
	assert.Contains(t, out, "    AtPark               true")

	buf.Reset()
	require.NoError(t, RenderStatus(&buf, tmpl, DeviceStatus{StateError: "Error 1024: Not implemented"}))
	assert.Contains(t, buf.String(), "State:             Error 1024: Not implemented")
}

func TestRenderServer(t *testing.T) {
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = RenderServer(&buf, tmpl, ServerStatus{
		Address:     "obs.local:11111",
		Description: alpaca.ServerDescription{Name: "Observatory", Manufacturer: "Cereceda", ManufacturerVersion: "1.0"},
		Versions:    []int{1, 2},
		Devices: []alpaca.DeviceConfiguration{
			{Name: "Roof", Type: "Dome", Number: 0, UniqueID: "abc"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Observatory at obs.local:11111")
	assert.Contains(t, out, "API versions: 1, 2")
	assert.Contains(t, out, "dome/obs.local:11111/0  Roof (abc)")

	buf.Reset()
	require.NoError(t, RenderServer(&buf, tmpl, ServerStatus{Address: "x"}))
	assert.Contains(t, buf.String(), "none")
}
