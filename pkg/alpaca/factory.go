package alpaca

import (
	"fmt"
	"strconv"
	"strings"
)

type constructor func(address string, number int, opts ...Option) (AlpacaDevice, error)

// adapt turns a typed facade constructor into a constructor. A failed call
// yields a nil interface rather than a typed nil pointer.
func adapt[T AlpacaDevice](fn func(string, int, ...Option) (T, error)) constructor {
	return func(address string, number int, opts ...Option) (AlpacaDevice, error) {
		dev, err := fn(address, number, opts...)
		if err != nil {
			return nil, err
		}
		return dev, nil
	}
}

var constructors = map[DeviceType]constructor{
	TypeCamera:        adapt(NewCamera),
	TypeDome:          adapt(NewDome),
	TypeFilterWheel:   adapt(NewFilterWheel),
	TypeFocuser:       adapt(NewFocuser),
	TypeRotator:       adapt(NewRotator),
	TypeSafetyMonitor: adapt(NewSafetyMonitor),
	TypeSwitch:        adapt(NewSwitch),
	TypeTelescope:     adapt(NewTelescope),
}

// New returns the facade for a device of the given type.
func New(deviceType DeviceType, address string, number int, opts ...Option) (AlpacaDevice, error) {
	ctor, ok := constructors[deviceType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceType, deviceType)
	}
	return ctor(address, number, opts...)
}

// CreateClient builds a facade from a <type>/<address>/<number> descriptor,
// for example "telescope/10.0.0.5/0". The type must be lower case, as it
// appears on the wire.
func CreateClient(descriptor string, opts ...Option) (AlpacaDevice, error) {
	parts := strings.Split(descriptor, "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDescriptor, descriptor)
	}

	deviceType := DeviceType(parts[0])
	if !deviceType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceType, parts[0])
	}

	number, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: device number %q", ErrInvalidDescriptor, parts[2])
	}

	return New(deviceType, parts[1], number, opts...)
}
