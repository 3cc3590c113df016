package alpaca

import (
	"errors"
	"fmt"
)

// HTTPError is returned when the server answers with an HTTP error status.
// Message holds the raw response body.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// AlpacaError is returned when the request succeeded at the HTTP level but
// the response carries a non-zero ErrorNumber.
type AlpacaError struct {
	Number  int
	Message string
}

func (e *AlpacaError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Number, e.Message)
}

// Is matches on the error number only, so a server error can be compared
// against the sentinels below with errors.Is.
func (e *AlpacaError) Is(target error) bool {
	t, ok := target.(*AlpacaError)
	return ok && t.Number == e.Number
}

// Error numbers reserved by the ASCOM standard.
var (
	ErrPropertyNotImplemented = &AlpacaError{Number: 0x400, Message: "Property or method not implemented"}
	ErrInvalidValue           = &AlpacaError{Number: 0x401, Message: "Invalid value"}
	ErrValueNotSet            = &AlpacaError{Number: 0x402, Message: "Value not set"}
	ErrNotConnected           = &AlpacaError{Number: 0x407, Message: "Not connected"}
	ErrInvalidWhileParked     = &AlpacaError{Number: 0x408, Message: "Invalid while parked"}
	ErrInvalidWhileSlaved     = &AlpacaError{Number: 0x409, Message: "Invalid while slaved"}
	ErrInvalidOperation       = &AlpacaError{Number: 0x40B, Message: "Invalid operation"}
	ErrActionNotImplemented   = &AlpacaError{Number: 0x40C, Message: "Action not implemented"}
)

// TypeMismatchError is raised locally, before any request is sent, when a
// value of the wrong shape is passed to an operation.
type TypeMismatchError struct {
	Name string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Name, e.Want, e.Got)
}

var (
	ErrUnknownDeviceType = errors.New("unknown device type")
	ErrInvalidDescriptor = errors.New("invalid device descriptor")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrParameterCount    = errors.New("wrong number of parameters")
	ErrNoValue           = errors.New("response has no Value")
)
