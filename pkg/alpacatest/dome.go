package alpacatest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"alpacaclient/pkg/alpaca"
)

const (
	domeUID       = "621ca2e0-399a-43f6-b9e7-e6575d953507"
	domeName      = "Dome Simulator"
	driverInfo    = "Dome Simulator, alpacatest"
	driverVersion = "1.0"

	errInvalidValue  = 0x401
	errNotConnected  = 0x407
	errInvalidParked = 0x408
	errInvalidSlaved = 0x409
)

// DomeStatus is the simulated state of a dome.
type DomeStatus struct {
	AtHome   bool
	AtPark   bool
	Slewing  bool
	Slaved   bool
	Altitude float64
	Azimuth  float64
	Shutter  alpaca.ShutterStatus
}

func (ds DomeStatus) properties() []alpaca.StateProperty {
	return []alpaca.StateProperty{
		{Name: "AtHome", Value: ds.AtHome},
		{Name: "AtPark", Value: ds.AtPark},
		{Name: "Slewing", Value: ds.Slewing},
		{Name: "Altitude", Value: ds.Altitude},
		{Name: "Azimuth", Value: ds.Azimuth},
		{Name: "ShutterStatus", Value: int(ds.Shutter)},
	}
}

// Dome simulates a dome whose movements complete instantly. Every operation
// except the connection ones fails with NotConnected until it is connected.
type Dome struct {
	number int

	mu        sync.Mutex
	connected bool
	status    DomeStatus
}

// MountDome serves a simulated dome as dome number n and lists it in the
// management API.
func (s *Server) MountDome(n int) *Dome {
	d := &Dome{
		number: n,
		status: DomeStatus{
			AtPark:  true,
			Shutter: alpaca.ShutterClosed,
		},
	}

	s.AddDevice(alpaca.DeviceConfiguration{
		Name:     domeName,
		Type:     "Dome",
		Number:   n,
		UniqueID: domeUID,
	})

	route := func(method, attr string, fn func(Request) Reply) {
		s.HandleFunc(method, DevicePath(alpaca.TypeDome, n, attr), fn)
	}
	get := func(attr string, fn func() any) {
		route(http.MethodGet, attr, d.connectedOnly(func(Request) Reply { return Value(fn()) }))
	}
	put := func(attr string, fn func(Request) Reply) {
		route(http.MethodPut, attr, d.connectedOnly(fn))
	}

	route(http.MethodGet, "name", d.always(domeName))
	route(http.MethodGet, "description", d.always("Simulated dome"))
	route(http.MethodGet, "driverinfo", d.always(driverInfo))
	route(http.MethodGet, "driverversion", d.always(driverVersion))
	route(http.MethodGet, "interfaceversion", d.always(3))
	route(http.MethodGet, "supportedactions", d.always([]string{}))
	route(http.MethodGet, "connected", func(Request) Reply { return Value(d.Connected()) })
	route(http.MethodGet, "connecting", d.always(false))
	route(http.MethodPut, "connected", d.handleSetConnected)
	route(http.MethodPut, "connect", func(Request) Reply {
		d.setConnected(true)
		return Empty()
	})
	route(http.MethodPut, "disconnect", func(Request) Reply {
		d.setConnected(false)
		return Empty()
	})
	route(http.MethodGet, "devicestate", func(Request) Reply { return Value(d.state()) })

	for _, name := range []string{
		"canfindhome", "canpark", "cansetaltitude", "cansetazimuth",
		"cansetpark", "cansetshutter", "canslave", "cansyncazimuth",
	} {
		route(http.MethodGet, name, d.always(true))
	}

	get("altitude", func() any { return d.Status().Altitude })
	get("athome", func() any { return d.Status().AtHome })
	get("atpark", func() any { return d.Status().AtPark })
	get("azimuth", func() any { return d.Status().Azimuth })
	get("shutterstatus", func() any { return int(d.Status().Shutter) })
	get("slaved", func() any { return d.Status().Slaved })
	get("slewing", func() any { return d.Status().Slewing })

	put("slaved", d.handleSlaved)
	put("abortslew", d.update(func(ds *DomeStatus) { ds.Slewing = false }))
	put("openshutter", d.update(func(ds *DomeStatus) { ds.Shutter = alpaca.ShutterOpen }))
	put("closeshutter", d.update(func(ds *DomeStatus) { ds.Shutter = alpaca.ShutterClosed }))
	put("findhome", d.update(func(ds *DomeStatus) {
		ds.AtHome = true
		ds.AtPark = false
		ds.Azimuth = 0
	}))
	put("park", d.update(func(ds *DomeStatus) {
		ds.AtHome = false
		ds.AtPark = true
	}))
	put("setpark", d.update(func(ds *DomeStatus) { ds.AtPark = true }))
	put("slewtoaltitude", d.handleMove("Altitude", 0, 90, func(ds *DomeStatus, v float64) { ds.Altitude = v }))
	put("slewtoazimuth", d.handleMove("Azimuth", 0, 360, func(ds *DomeStatus, v float64) { ds.Azimuth = v }))
	put("synctoazimuth", d.handleSync)

	return d
}

func (d *Dome) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Status returns a snapshot of the simulated state.
func (d *Dome) Status() DomeStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Dome) setConnected(connected bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = connected
}

func (d *Dome) state() []alpaca.StateProperty {
	d.mu.Lock()
	defer d.mu.Unlock()

	props := []alpaca.StateProperty{
		{Name: "TimeStamp", Value: time.Now().UTC().Format(time.RFC3339)},
	}
	if d.connected {
		props = append(props, d.status.properties()...)
	}
	return props
}

func (d *Dome) always(v any) HandlerFunc {
	return func(Request) Reply { return Value(v) }
}

func (d *Dome) connectedOnly(fn HandlerFunc) HandlerFunc {
	return func(r Request) Reply {
		if !d.Connected() {
			return Error(errNotConnected, fmt.Sprintf("dome %d is not connected", d.number))
		}
		return fn(r)
	}
}

func (d *Dome) update(fn func(*DomeStatus)) HandlerFunc {
	return func(Request) Reply {
		d.mu.Lock()
		defer d.mu.Unlock()
		fn(&d.status)
		return Empty()
	}
}

func (d *Dome) handleSetConnected(r Request) Reply {
	connected, err := parseBool(r.Get("Connected"))
	if err != nil {
		return Error(errInvalidValue, err.Error())
	}
	d.setConnected(connected)
	return Empty()
}

func (d *Dome) handleSlaved(r Request) Reply {
	slaved, err := parseBool(r.Get("Slaved"))
	if err != nil {
		return Error(errInvalidValue, err.Error())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status.Slaved = slaved
	return Empty()
}

func (d *Dome) handleMove(field string, lo, hi float64, apply func(*DomeStatus, float64)) HandlerFunc {
	return func(r Request) Reply {
		v, err := strconv.ParseFloat(r.Get(field), 64)
		if err != nil || v < lo || v > hi {
			return Error(errInvalidValue, fmt.Sprintf("invalid %s: %q", field, r.Get(field)))
		}

		d.mu.Lock()
		defer d.mu.Unlock()
		if d.status.Slaved {
			return Error(errInvalidSlaved, "dome is slaved")
		}
		if d.status.AtPark && field == "Azimuth" {
			return Error(errInvalidParked, "dome is parked")
		}
		apply(&d.status, v)
		d.status.AtHome = false
		return Empty()
	}
}

func (d *Dome) handleSync(r Request) Reply {
	v, err := strconv.ParseFloat(r.Get("Azimuth"), 64)
	if err != nil || v < 0 || v > 360 {
		return Error(errInvalidValue, fmt.Sprintf("invalid Azimuth: %q", r.Get("Azimuth")))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status.Azimuth = v
	return Empty()
}

// parseBool accepts the True/False spelling used on the wire.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean: %q", s)
}
