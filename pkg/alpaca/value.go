package alpaca

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Kind is the primitive type of a request parameter.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a single flat parameter value. The protocol is form encoded, so
// only booleans, integers, floats and strings can be sent.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func Int(i int) Value       { return Value{kind: KindInt, i: int64(i)} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind { return v.kind }

// Interface returns the value as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// Encode returns the textual form sent on the wire. Booleans are sent as
// True/False.
func (v Value) Encode() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

func (v Value) String() string {
	return v.Encode()
}

// ParseValue converts s into a Value of kind k.
func ParseValue(k Kind, s string) (Value, error) {
	switch k {
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, fmt.Errorf("invalid bool %q", s)
		}
		return Bool(b), nil
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid int %q", s)
		}
		return Value{kind: KindInt, i: i}, nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float %q", s)
		}
		return Float(f), nil
	case KindString:
		return String(s), nil
	default:
		return Value{}, fmt.Errorf("cannot parse value of kind %s", k)
	}
}

// Param is a named request parameter.
type Param struct {
	Name  string
	Value Value
}

// P is shorthand for building a Param.
func P(name string, v Value) Param {
	return Param{Name: name, Value: v}
}

// encodeParams form-encodes params keeping their order. url.Values would
// sort the keys.
func encodeParams(params []Param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value.Encode()))
	}
	return sb.String()
}
