package envfile

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-envfile/internal/formatter"
)

var (
	// ErrInvalidName is wrapped by encode errors for names that cannot be
	// written unambiguously.
	ErrInvalidName = formatter.ErrInvalidKey
	// ErrUnrepresentable is wrapped by encode errors for strings that no
	// quoting style can read back unchanged.
	ErrUnrepresentable = formatter.ErrUnrepresentable
)

// ParseError describes a line that could not be decoded.
type ParseError struct {
	Line    int
	Content string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("envfile: parsing error at line %d: %s: %q", e.Line, e.Message, e.Content)
}

// ParseErrors is a slice of ParseError that implements the error interface.
// Decoding reports every malformed line at once and never returns a partial
// result alongside it.
type ParseErrors []*ParseError

func (p ParseErrors) Error() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return p[0].Error()
	}
	return p[0].Error() + " (and " + strconv.Itoa(len(p)-1) + " more errors)"
}

func (p ParseErrors) Unwrap() []error {
	errs := make([]error, len(p))
	for i, e := range p {
		errs[i] = e
	}
	return errs
}

// FieldError reports a failure to encode a single named entry, such as an
// invalid name or a value with no textual representation.
type FieldError struct {
	Name string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("envfile: entry %q: %s", e.Name, strings.TrimPrefix(e.Err.Error(), "envfile: "))
}

func (e *FieldError) Unwrap() error { return e.Err }

// An UnsupportedTypeError is returned by Marshal when attempting to encode
// a value of a type that has no scalar representation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == nil {
		return "envfile: unsupported type: nil"
	}
	return "envfile: unsupported type: " + e.Type.String()
}

// An UnmarshalTypeError describes a value that was not appropriate for the
// Go value it was decoded into.
type UnmarshalTypeError struct {
	Name  string
	Value Kind
	Type  reflect.Type
}

func (e *UnmarshalTypeError) Error() string {
	return fmt.Sprintf("envfile: cannot unmarshal %s into Go value of type %s (key %q)", e.Value, e.Type, e.Name)
}

// An InvalidUnmarshalError describes an invalid argument passed to Unmarshal.
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "envfile: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "envfile: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "envfile: Unmarshal(nil " + e.Type.String() + ")"
}
