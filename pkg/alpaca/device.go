package alpaca

import (
	"fmt"
	"strings"
)

// StateProperty is one entry of the devicestate list.
type StateProperty struct {
	Name  string
	Value any
}

var deviceOps = Operations{
	"Action":           put("action", stringParam("Action"), ParamSpec{Name: "Parameters", Kind: KindString, Variadic: true}),
	"CommandBlind":     put("commandblind", stringParam("Command"), boolParam("Raw")),
	"CommandBool":      put("commandbool", stringParam("Command"), boolParam("Raw")),
	"CommandString":    put("commandstring", stringParam("Command"), boolParam("Raw")),
	"Connected":        get("connected"),
	"SetConnected":     put("connected", boolParam("Connected")),
	"Connecting":       get("connecting"),
	"Connect":          put("connect"),
	"Disconnect":       put("disconnect"),
	"Description":      get("description"),
	"DeviceState":      get("devicestate"),
	"DriverInfo":       get("driverinfo"),
	"DriverVersion":    get("driverversion"),
	"InterfaceVersion": get("interfaceversion"),
	"Name":             get("name"),
	"SupportedActions": get("supportedactions"),
}

// AlpacaDevice is implemented by every device facade.
type AlpacaDevice interface {
	Identity() Identity
	Client() *Client
	Operation(name string) (Operation, bool)
	OperationNames() []string
	Invoke(name string, args ...Value) (*Response, error)

	Action(action string, parameters ...string) (any, error)
	CommandBlind(command string, raw bool) error
	CommandBool(command string, raw bool) (bool, error)
	CommandString(command string, raw bool) (string, error)
	Connected() (bool, error)
	SetConnected(connected bool) error
	Connecting() (bool, error)
	Connect() error
	Disconnect() error
	Description() (string, error)
	DeviceState() ([]StateProperty, error)
	DriverInfo() ([]string, error)
	DriverVersion() (string, error)
	InterfaceVersion() (int, error)
	Name() (string, error)
	SupportedActions() ([]string, error)
}

// Device holds the methods shared by all device types. Facades embed it.
type Device struct {
	client *Client
	ops    Operations
}

func newDevice(deviceType DeviceType, address string, number int, ops Operations, opts []Option) (Device, error) {
	client, err := NewClient(address, deviceType, number, opts...)
	if err != nil {
		return Device{}, err
	}
	return Device{client: client, ops: ops}, nil
}

func (d *Device) Identity() Identity {
	return d.client.Identity()
}

func (d *Device) Client() *Client {
	return d.client
}

func (d *Device) Operation(name string) (Operation, bool) {
	op, ok := d.ops[name]
	return op, ok
}

func (d *Device) OperationNames() []string {
	return d.ops.names()
}

// Invoke runs the named operation from the device's table. Arguments are
// checked before anything is sent.
func (d *Device) Invoke(name string, args ...Value) (*Response, error) {
	op, ok := d.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no operation %q", ErrUnknownOperation, d.Identity().Type(), name)
	}

	params, err := op.bind(name, args)
	if err != nil {
		return nil, err
	}

	return d.client.Do(op.Access.method(), op.Attribute, params...)
}

// invoke runs an operation and decodes its Value into T.
func invoke[T any](d *Device, name string, args ...Value) (T, error) {
	var v T
	resp, err := d.Invoke(name, args...)
	if err != nil {
		return v, err
	}
	if err := resp.Decode(&v); err != nil {
		return v, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// run runs an operation whose Value, if any, is not needed.
func run(d *Device, name string, args ...Value) error {
	_, err := d.Invoke(name, args...)
	return err
}

// Action invokes a driver specific action and returns its Value.
func (d *Device) Action(action string, parameters ...string) (any, error) {
	args := make([]Value, 0, len(parameters)+1)
	args = append(args, String(action))
	for _, p := range parameters {
		args = append(args, String(p))
	}

	resp, err := d.Invoke("Action", args...)
	if err != nil {
		return nil, err
	}
	if !resp.HasValue() {
		return nil, nil
	}

	var v any
	if err := resp.Decode(&v); err != nil {
		return nil, fmt.Errorf("action %s: %w", action, err)
	}
	return v, nil
}

// CommandBlind transmits an arbitrary string to the device without waiting
// for a response.
func (d *Device) CommandBlind(command string, raw bool) error {
	return run(d, "CommandBlind", String(command), Bool(raw))
}

// CommandBool transmits an arbitrary string and returns the boolean reply.
func (d *Device) CommandBool(command string, raw bool) (bool, error) {
	return invoke[bool](d, "CommandBool", String(command), Bool(raw))
}

// CommandString transmits an arbitrary string and returns the string reply.
func (d *Device) CommandString(command string, raw bool) (string, error) {
	return invoke[string](d, "CommandString", String(command), Bool(raw))
}

func (d *Device) Connected() (bool, error) {
	return invoke[bool](d, "Connected")
}

func (d *Device) SetConnected(connected bool) error {
	return run(d, "SetConnected", Bool(connected))
}

// Connecting is true while an asynchronous Connect or Disconnect is running.
func (d *Device) Connecting() (bool, error) {
	return invoke[bool](d, "Connecting")
}

func (d *Device) Connect() error {
	return run(d, "Connect")
}

func (d *Device) Disconnect() error {
	return run(d, "Disconnect")
}

func (d *Device) Description() (string, error) {
	return invoke[string](d, "Description")
}

// DeviceState returns the operational properties the driver reports in one
// call.
func (d *Device) DeviceState() ([]StateProperty, error) {
	return invoke[[]StateProperty](d, "DeviceState")
}

// DriverInfo returns the comma separated driver information split into its
// parts.
func (d *Device) DriverInfo() ([]string, error) {
	info, err := invoke[string](d, "DriverInfo")
	if err != nil {
		return nil, err
	}

	parts := strings.Split(info, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func (d *Device) DriverVersion() (string, error) {
	return invoke[string](d, "DriverVersion")
}

func (d *Device) InterfaceVersion() (int, error) {
	return invoke[int](d, "InterfaceVersion")
}

func (d *Device) Name() (string, error) {
	return invoke[string](d, "Name")
}

func (d *Device) SupportedActions() ([]string, error) {
	return invoke[[]string](d, "SupportedActions")
}
