package gml

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a [Value] holds.
type Kind int

const (
	// KindInvalid is the kind of the zero Value. It is never emitted.
	KindInvalid Kind = iota
	KindInt
	KindReal
	KindString
	KindBool
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindInt:     "int",
	KindReal:    "real",
	KindString:  "string",
	KindBool:    "bool",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable attribute value: an integer, a real, a string or a
// boolean. Construct one with [Int], [Real], [String], [Bool] or [ValueOf].
//
// The zero Value is invalid; writing it fails with
// [UnsupportedAttributeTypeError].
type Value struct {
	kind  Kind
	i     int64
	f     float64
	s     string
	b     bool
	cause *UnsupportedAttributeTypeError // why ValueOf rejected the input
}

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Real returns a real value.
func Real(f float64) Value { return Value{kind: KindReal, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bool returns a boolean value. GML has no boolean token, so booleans are
// written as the quoted strings "true" and "false".
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds one of the supported variants.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsInt returns the integer held by v and whether v is an Int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsReal returns the real held by v and whether v is a Real.
func (v Value) AsReal() (float64, bool) { return v.f, v.kind == KindReal }

// AsString returns the string held by v and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsBool returns the boolean held by v and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// String renders v the way it appears after its key in a GML document.
// Invalid values and non-finite reals render as "<invalid>"; use the
// exporter to get an error for them instead.
func (v Value) String() string {
	s, err := v.encode()
	if err != nil {
		return "<invalid>"
	}
	return s
}

// encode returns the GML token for v.
func (v Value) encode() (string, error) {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindReal:
		return formatReal(v.f)
	case KindString:
		return quote(v.s), nil
	case KindBool:
		return quote(strconv.FormatBool(v.b)), nil
	default:
		if v.cause != nil {
			ue := *v.cause
			return "", &ue
		}
		return "", &UnsupportedAttributeTypeError{Type: v.kind.String()}
	}
}

// formatReal renders f in plain decimal notation with the fewest digits that
// round-trip. Integral values keep one fractional digit so a real never reads
// back as an integer.
func formatReal(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &UnsupportedAttributeTypeError{Type: "real", Detail: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s, nil
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote wraps s in double quotes, escaping backslashes and double quotes.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// ValueOf converts a Go value into a [Value].
//
// Signed and unsigned integers become Int, float32/float64 become Real,
// string becomes String, and bool becomes Bool. A json.Number becomes Int
// when it parses as an int64 and Real otherwise. A Value is returned as is.
// Any other type yields an [UnsupportedAttributeTypeError].
//
// On failure the returned Value is invalid and remembers the error, so an
// exporter writing it fails with the same error instead of dropping the key.
func ValueOf(x any) (Value, error) {
	v, err := valueOf(x)
	if err != nil {
		return Value{cause: err}, err
	}
	return v, nil
}

func valueOf(x any) (Value, *UnsupportedAttributeTypeError) {
	switch t := x.(type) {
	case Value:
		if t.cause != nil {
			ue := *t.cause
			return Value{}, &ue
		}
		if !t.IsValid() {
			return Value{}, &UnsupportedAttributeTypeError{Type: t.kind.String()}
		}
		return t, nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return uintValue(uint64(t))
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return uintValue(t)
	case float32:
		// Shortest float32 decimal, so float32(0.1) stays 0.1.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(t), 'g', -1, 32), 64)
		return Real(f), nil
	case float64:
		return Real(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, &UnsupportedAttributeTypeError{Type: "json.Number", Detail: t.String()}
		}
		return Real(f), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	default:
		return Value{}, &UnsupportedAttributeTypeError{Type: fmt.Sprintf("%T", x)}
	}
}

func uintValue(u uint64) (Value, *UnsupportedAttributeTypeError) {
	if u > math.MaxInt64 {
		return Value{}, &UnsupportedAttributeTypeError{Type: "uint64", Detail: strconv.FormatUint(u, 10) + " overflows int64"}
	}
	return Int(int64(u)), nil
}

// Attribute is a single key/value pair inside a node, edge or graphics block.
type Attribute struct {
	Key   string
	Value Value
}

// Attributes is an ordered attribute map. Entries are written in slice order.
type Attributes []Attribute

// Attr is shorthand for Attribute{Key: key, Value: v}.
func Attr(key string, v Value) Attribute { return Attribute{Key: key, Value: v} }

// Get returns the value of the first entry with the given key.
func (a Attributes) Get(key string) (Value, bool) {
	for _, at := range a {
		if at.Key == key {
			return at.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the keys of a in order.
func (a Attributes) Keys() []string {
	keys := make([]string, len(a))
	for i, at := range a {
		keys[i] = at.Key
	}
	return keys
}
