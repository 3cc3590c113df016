// Documentation: https://ascom-standards.org/api/?urls.primaryName=ASCOM+Alpaca+Device+API

package alpaca

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultAPIVersion = 1
	DefaultScheme     = "http"

	// MaxDeviceNumber is the highest device number a server may expose.
	MaxDeviceNumber = math.MaxUint32
)

// DeviceType is the lower case device category used in endpoint paths.
type DeviceType string

const (
	TypeSwitch        DeviceType = "switch"
	TypeSafetyMonitor DeviceType = "safetymonitor"
	TypeDome          DeviceType = "dome"
	TypeCamera        DeviceType = "camera"
	TypeFilterWheel   DeviceType = "filterwheel"
	TypeTelescope     DeviceType = "telescope"
	TypeRotator       DeviceType = "rotator"
	TypeFocuser       DeviceType = "focuser"
)

// DeviceTypes lists every supported category.
var DeviceTypes = []DeviceType{
	TypeSwitch,
	TypeSafetyMonitor,
	TypeDome,
	TypeCamera,
	TypeFilterWheel,
	TypeTelescope,
	TypeRotator,
	TypeFocuser,
}

func (t DeviceType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known categories. The comparison is
// case sensitive.
func (t DeviceType) Valid() bool {
	for _, known := range DeviceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseDeviceType converts a category name into a DeviceType, ignoring
// case.
func ParseDeviceType(s string) (DeviceType, error) {
	t := DeviceType(strings.ToLower(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDeviceType, s)
	}
	return t, nil
}

// Identity fixes the remote device a client talks to. The base URL is
// computed once by NewIdentity and never changes.
type Identity struct {
	address    string
	deviceType DeviceType
	number     uint32
	scheme     string
	apiVersion int
	baseURL    string
}

// NewIdentity validates the endpoint fields and builds the base URL
// <scheme>://<address>/api/v<version>/<type>/<number>. An empty scheme and a
// zero version select the defaults.
func NewIdentity(address string, deviceType DeviceType, number int, scheme string, apiVersion int) (Identity, error) {
	if scheme == "" {
		scheme = DefaultScheme
	}
	if apiVersion == 0 {
		apiVersion = DefaultAPIVersion
	}

	if err := checkEndpoint(address, scheme, apiVersion); err != nil {
		return Identity{}, err
	}
	if !deviceType.Valid() {
		return Identity{}, fmt.Errorf("%w: %q", ErrUnknownDeviceType, string(deviceType))
	}
	if number < 0 || uint64(number) > MaxDeviceNumber {
		return Identity{}, fmt.Errorf("device number out of range: %d", number)
	}

	id := Identity{
		address:    address,
		deviceType: deviceType,
		number:     uint32(number),
		scheme:     scheme,
		apiVersion: apiVersion,
	}
	id.baseURL = fmt.Sprintf("%s://%s/api/v%d/%s/%d", scheme, address, apiVersion, deviceType, id.number)

	return id, nil
}

// checkEndpoint validates the parts of a URL shared by device and
// management endpoints.
func checkEndpoint(address, scheme string, apiVersion int) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if strings.ContainsAny(address, "/ \t\r\n") {
		return fmt.Errorf("invalid address: %q", address)
	}
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("unsupported scheme: %q", scheme)
	}
	if apiVersion < 1 {
		return fmt.Errorf("invalid API version: %d", apiVersion)
	}
	return nil
}

func (id Identity) Address() string        { return id.address }
func (id Identity) Type() DeviceType       { return id.deviceType }
func (id Identity) Number() int            { return int(id.number) }
func (id Identity) Scheme() string         { return id.scheme }
func (id Identity) APIVersion() int        { return id.apiVersion }
func (id Identity) BaseURL() string        { return id.baseURL }
func (id Identity) URL(attr string) string { return id.baseURL + "/" + attr }

// Descriptor returns the compact <type>/<address>/<number> form accepted by
// CreateClient.
func (id Identity) Descriptor() string {
	return fmt.Sprintf("%s/%s/%d", id.deviceType, id.address, id.number)
}

func (id Identity) String() string {
	return id.baseURL
}
