package envfile

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the type of a scalar Value.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a scalar: a boolean, a 64-bit integer, a 64-bit float or a
// string. The zero Value is the empty string.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean held by v, or false if v is not a boolean.
func (v Value) Bool() bool { return v.b }

// Int returns the integer held by v, or 0 if v is not an integer.
func (v Value) Int() int64 { return v.i }

// Float returns the float held by v. Integers are converted.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Str returns the string held by v, or "" if v is not a string.
func (v Value) Str() string { return v.s }

// String returns the canonical text of v: "true" or "false" for booleans,
// base-10 digits for integers, the shortest exact decimal for floats (always
// containing a '.'), and the string itself for strings.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	}
	return v.s
}

// Interface returns v as a bool, int64, float64 or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	}
	return v.s
}

// Equal reports whether v and o have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	}
	return v.s == o.s
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ValueOf converts a Go scalar into a Value. Booleans, all integer and float
// widths, strings, types with those underlying kinds, and
// encoding.TextMarshaler implementations are supported.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Value{}, &UnsupportedTypeError{Type: reflect.TypeOf(x)}
		}
		return *t, nil
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return Value{}, fmt.Errorf("envfile: error calling MarshalText for type %T: %w", x, err)
		}
		return String(string(text)), nil
	}
	return valueOf(reflect.ValueOf(x))
}

func valueOf(rv reflect.Value) (Value, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Value{}, &UnsupportedTypeError{Type: rv.Type()}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Value{}, &UnsupportedTypeError{}
	}
	if rv.CanInterface() {
		if m, ok := rv.Interface().(encoding.TextMarshaler); ok {
			return ValueOf(m)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("envfile: cannot marshal uint64 %d (overflows int64)", u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	}
	return Value{}, &UnsupportedTypeError{Type: rv.Type()}
}
