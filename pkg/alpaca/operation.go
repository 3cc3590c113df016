package alpaca

import (
	"fmt"
	"net/http"
	"sort"
)

// Access selects the request shape of an operation.
type Access int

const (
	Read Access = iota
	Write
)

func (a Access) String() string {
	if a == Write {
		return "write"
	}
	return "read"
}

func (a Access) method() string {
	if a == Write {
		return http.MethodPut
	}
	return http.MethodGet
}

// ParamSpec describes one parameter of an operation. A variadic spec must
// be last and accepts zero or more values.
type ParamSpec struct {
	Name     string
	Kind     Kind
	Variadic bool
}

// Operation maps an exposed method onto a wire attribute.
type Operation struct {
	Access    Access
	Attribute string
	Params    []ParamSpec
}

// Operations is a device category's table, keyed by method name.
type Operations map[string]Operation

func get(attribute string, params ...ParamSpec) Operation {
	return Operation{Access: Read, Attribute: attribute, Params: params}
}

func put(attribute string, params ...ParamSpec) Operation {
	return Operation{Access: Write, Attribute: attribute, Params: params}
}

func boolParam(name string) ParamSpec   { return ParamSpec{Name: name, Kind: KindBool} }
func intParam(name string) ParamSpec    { return ParamSpec{Name: name, Kind: KindInt} }
func floatParam(name string) ParamSpec  { return ParamSpec{Name: name, Kind: KindFloat} }
func stringParam(name string) ParamSpec { return ParamSpec{Name: name, Kind: KindString} }

// withDeviceOps returns ops merged with the operations every device has.
func withDeviceOps(ops Operations) Operations {
	merged := make(Operations, len(deviceOps)+len(ops))
	for name, op := range deviceOps {
		merged[name] = op
	}
	for name, op := range ops {
		merged[name] = op
	}
	return merged
}

// names returns the operation names sorted.
func (ops Operations) names() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bind checks args against the operation's parameters and names them.
func (op Operation) bind(name string, args []Value) ([]Param, error) {
	fixed := len(op.Params)
	variadic := fixed > 0 && op.Params[fixed-1].Variadic
	if variadic {
		fixed--
	}
	if len(args) < fixed || (!variadic && len(args) > fixed) {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", name, ErrParameterCount, fixed, len(args))
	}

	params := make([]Param, 0, len(args))
	for i, arg := range args {
		spec := op.Params[min(i, len(op.Params)-1)]
		if arg.Kind() != spec.Kind {
			return nil, &TypeMismatchError{
				Name: name + "." + spec.Name,
				Want: spec.Kind.String(),
				Got:  arg.Kind().String(),
			}
		}
		params = append(params, P(spec.Name, arg))
	}
	return params, nil
}

// ParseArgs converts textual arguments into values of the kinds the
// operation expects.
func (op Operation) ParseArgs(args []string) ([]Value, error) {
	values := make([]Value, 0, len(args))
	for i, arg := range args {
		if len(op.Params) == 0 {
			return nil, fmt.Errorf("%w: want 0, got %d", ErrParameterCount, len(args))
		}
		spec := op.Params[min(i, len(op.Params)-1)]
		if i >= len(op.Params) && !spec.Variadic {
			return nil, fmt.Errorf("%w: want %d, got %d", ErrParameterCount, len(op.Params), len(args))
		}
		v, err := ParseValue(spec.Kind, arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		values = append(values, v)
	}
	return values, nil
}
