// Documentation: https://ascom-standards.org/api/?urls.primaryName=ASCOM+Alpaca+Management+API

package alpaca

import (
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

type ServerDescription struct {
	Name                string `json:"ServerName"`
	Manufacturer        string `json:"Manufacturer"`
	ManufacturerVersion string `json:"ManufacturerVersion"`
	Location            string `json:"Location"`
}

// DeviceConfiguration is one entry of the configureddevices list.
type DeviceConfiguration struct {
	Name     string `json:"DeviceName"`
	Type     string `json:"DeviceType"`
	Number   int    `json:"DeviceNumber"`
	UniqueID string `json:"UniqueID"`
}

// Descriptor returns the CreateClient descriptor of the device on the server
// at address.
func (dc DeviceConfiguration) Descriptor(address string) string {
	return fmt.Sprintf("%s/%s/%d", strings.ToLower(dc.Type), address, dc.Number)
}

// Management queries the management API of an Alpaca server.
type Management struct {
	baseURL    string
	apiVersion int
	http       *http.Client
	logger     log.FieldLogger
	clientID   uint32
}

func NewManagement(address string, opts ...Option) (*Management, error) {
	o := buildOptions(opts)
	if err := checkEndpoint(address, o.scheme, o.apiVersion); err != nil {
		return nil, err
	}

	return &Management{
		baseURL:    fmt.Sprintf("%s://%s/management", o.scheme, address),
		apiVersion: o.apiVersion,
		http:       o.httpClient,
		logger:     o.logger.WithField("server", address),
		clientID:   o.clientID,
	}, nil
}

func (m *Management) get(path string, v any) error {
	resp, err := roundTrip(m.http, m.logger, http.MethodGet, m.baseURL+path, transaction(m.clientID, nil))
	if err != nil {
		return err
	}
	if err := resp.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// APIVersions lists the API versions the server supports.
func (m *Management) APIVersions() ([]int, error) {
	var versions []int
	if err := m.get("/apiversions", &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

func (m *Management) Description() (ServerDescription, error) {
	var desc ServerDescription
	err := m.get(fmt.Sprintf("/v%d/description", m.apiVersion), &desc)
	return desc, err
}

// ConfiguredDevices lists the devices the server exposes.
func (m *Management) ConfiguredDevices() ([]DeviceConfiguration, error) {
	var devices []DeviceConfiguration
	if err := m.get(fmt.Sprintf("/v%d/configureddevices", m.apiVersion), &devices); err != nil {
		return nil, err
	}
	return devices, nil
}
