package envfile

import (
	"bytes"
)

// Marshal returns the envfile encoding of v.
//
// v may be a *Document, a map with string keys, or a struct (or a pointer to
// one). Map entries are written in sorted key order, struct fields in
// declaration order, and Document entries in document order unless the
// SortKeys option is given.
//
// Struct fields are named by their "env" tag, falling back to the field
// name. The "omitempty" option skips zero values and the tag "-" skips the
// field. Nil pointer fields are skipped.
//
// Each value is written in its canonical text form, using a triple-quoted
// block if it contains a newline, quotes if it contains a space, '#' or '='
// or would otherwise lose surrounding whitespace or quotes, and bare
// otherwise.
//
// Not every string can be written. Marshal returns a *FieldError wrapping
// ErrUnrepresentable for a multi-line string with an inner line
// ending in """ or a carriage return, and for a single-line string in which
// both a double and a single quote are followed by whitespace and '#'.
// NaN and infinite floats are rejected as well.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the envfile-encoded data and stores the result in the
// value pointed to by v, which may be a *Document, a pointer to a map with
// string keys, or a pointer to a struct.
//
// Values are inferred in this order: a case-insensitive "true" or "false" is
// a boolean, a run of ASCII digits is an integer, a decimal fraction such as
// "3.14" or "-.5" is a float, and everything else is a string. A signed
// integer such as "-7" is a string unless the SignedIntegers option is set.
//
// Malformed input yields a ParseErrors value listing every offending line,
// and v is left unmodified.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	doc, err := parseDocument(data, o)
	if err != nil {
		return err
	}
	return decodeDocument(doc, v, o)
}

// Parse parses data into a Document.
func Parse(data []byte, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parseDocument(data, o)
}

// Format parses src and writes it back in canonical form. Comments and
// blank lines are dropped, duplicate names are collapsed to their last value
// and every value is re-quoted.
func Format(src []byte, opts ...Option) ([]byte, error) {
	doc, err := Parse(src, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(doc, opts...)
}

// Decode stores the entries of d in the value pointed to by v, with the
// same targets and conversions as Unmarshal. d is not modified.
func (d *Document) Decode(v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	return decodeDocument(d.Clone(), v, o)
}

// DocumentOf converts any value accepted by Marshal into a Document.
func DocumentOf(v any, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return toDocument(v, o)
}
