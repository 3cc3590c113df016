package alpaca

import "fmt"

// ShutterStatus is the state of a dome shutter or roll-off roof.
type ShutterStatus int

const (
	ShutterOpen ShutterStatus = iota
	ShutterClosed
	ShutterOpening
	ShutterClosing
	ShutterError
)

func (s ShutterStatus) String() string {
	switch s {
	case ShutterOpen:
		return "Open"
	case ShutterClosed:
		return "Closed"
	case ShutterOpening:
		return "Opening"
	case ShutterClosing:
		return "Closing"
	case ShutterError:
		return "Error"
	default:
		return fmt.Sprintf("ShutterStatus(%d)", int(s))
	}
}

var domeOps = withDeviceOps(Operations{
	"Altitude":       get("altitude"),
	"AtHome":         get("athome"),
	"AtPark":         get("atpark"),
	"Azimuth":        get("azimuth"),
	"CanFindHome":    get("canfindhome"),
	"CanPark":        get("canpark"),
	"CanSetAltitude": get("cansetaltitude"),
	"CanSetAzimuth":  get("cansetazimuth"),
	"CanSetPark":     get("cansetpark"),
	"CanSetShutter":  get("cansetshutter"),
	"CanSlave":       get("canslave"),
	"CanSyncAzimuth": get("cansyncazimuth"),
	"ShutterStatus":  get("shutterstatus"),
	"Slaved":         get("slaved"),
	"SetSlaved":      put("slaved", boolParam("Slaved")),
	"Slewing":        get("slewing"),

	"AbortSlew":      put("abortslew"),
	"CloseShutter":   put("closeshutter"),
	"FindHome":       put("findhome"),
	"OpenShutter":    put("openshutter"),
	"Park":           put("park"),
	"SetPark":        put("setpark"),
	"SlewToAltitude": put("slewtoaltitude", floatParam("Altitude")),
	"SlewToAzimuth":  put("slewtoazimuth", floatParam("Azimuth")),
	"SyncToAzimuth":  put("synctoazimuth", floatParam("Azimuth")),
})

// Dome controls a dome or roll-off roof.
type Dome struct {
	Device
}

func NewDome(address string, number int, opts ...Option) (*Dome, error) {
	dev, err := newDevice(TypeDome, address, number, domeOps, opts)
	if err != nil {
		return nil, err
	}
	return &Dome{Device: dev}, nil
}

// Altitude of the shutter opening in degrees.
func (d *Dome) Altitude() (float64, error) {
	return invoke[float64](&d.Device, "Altitude")
}

func (d *Dome) AtHome() (bool, error) { return invoke[bool](&d.Device, "AtHome") }
func (d *Dome) AtPark() (bool, error) { return invoke[bool](&d.Device, "AtPark") }

// Azimuth of the opening in degrees, North-referenced and increasing
// clockwise.
func (d *Dome) Azimuth() (float64, error) {
	return invoke[float64](&d.Device, "Azimuth")
}

func (d *Dome) CanFindHome() (bool, error)    { return invoke[bool](&d.Device, "CanFindHome") }
func (d *Dome) CanPark() (bool, error)        { return invoke[bool](&d.Device, "CanPark") }
func (d *Dome) CanSetAltitude() (bool, error) { return invoke[bool](&d.Device, "CanSetAltitude") }
func (d *Dome) CanSetAzimuth() (bool, error)  { return invoke[bool](&d.Device, "CanSetAzimuth") }
func (d *Dome) CanSetPark() (bool, error)     { return invoke[bool](&d.Device, "CanSetPark") }
func (d *Dome) CanSetShutter() (bool, error)  { return invoke[bool](&d.Device, "CanSetShutter") }
func (d *Dome) CanSlave() (bool, error)       { return invoke[bool](&d.Device, "CanSlave") }
func (d *Dome) CanSyncAzimuth() (bool, error) { return invoke[bool](&d.Device, "CanSyncAzimuth") }

func (d *Dome) ShutterStatus() (ShutterStatus, error) {
	return invoke[ShutterStatus](&d.Device, "ShutterStatus")
}

// Slaved is true when the dome follows the telescope.
func (d *Dome) Slaved() (bool, error) {
	return invoke[bool](&d.Device, "Slaved")
}

func (d *Dome) SetSlaved(slaved bool) error {
	return run(&d.Device, "SetSlaved", Bool(slaved))
}

func (d *Dome) Slewing() (bool, error) {
	return invoke[bool](&d.Device, "Slewing")
}

// AbortSlew stops any dome movement, including shutter movement.
func (d *Dome) AbortSlew() error    { return run(&d.Device, "AbortSlew") }
func (d *Dome) CloseShutter() error { return run(&d.Device, "CloseShutter") }
func (d *Dome) FindHome() error     { return run(&d.Device, "FindHome") }
func (d *Dome) OpenShutter() error  { return run(&d.Device, "OpenShutter") }
func (d *Dome) Park() error         { return run(&d.Device, "Park") }

// SetPark makes the current azimuth the park position.
func (d *Dome) SetPark() error {
	return run(&d.Device, "SetPark")
}

func (d *Dome) SlewToAltitude(altitude float64) error {
	return run(&d.Device, "SlewToAltitude", Float(altitude))
}

func (d *Dome) SlewToAzimuth(azimuth float64) error {
	return run(&d.Device, "SlewToAzimuth", Float(azimuth))
}

// SyncToAzimuth tells the dome that its current azimuth is azimuth.
func (d *Dome) SyncToAzimuth(azimuth float64) error {
	return run(&d.Device, "SyncToAzimuth", Float(azimuth))
}
