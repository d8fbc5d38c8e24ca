package envfile

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"

	"github.com/KimNorgaard/go-envfile/internal/formatter"
	"github.com/KimNorgaard/go-envfile/internal/mapper"
)

// Encoder writes envfile documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the envfile encoding of v to the stream.
//
// See the documentation for Marshal for details about the conversion of Go
// values into entries.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	doc, err := toDocument(v, o)
	if err != nil {
		return err
	}

	entries := doc.entries
	if o.sortKeys {
		entries = doc.sorted()
	}

	// Render into a buffer first so that a failing entry leaves w untouched.
	var buf bytes.Buffer
	f := formatter.New(&buf)
	for _, entry := range entries {
		if err := writeEntry(f, entry, o); err != nil {
			return err
		}
	}
	_, err = e.w.Write(buf.Bytes())
	return err
}

func writeEntry(f *formatter.Formatter, entry Entry, o *options) error {
	if entry.Value.Kind() == KindFloat {
		if fv := entry.Value.Float(); math.IsNaN(fv) || math.IsInf(fv, 0) {
			return &FieldError{Name: entry.Name, Err: fmt.Errorf("float value %v has no decimal representation", fv)}
		}
	}
	literal := o.preserveStrings && entry.Value.Kind() == KindString
	if err := f.WriteEntry(entry.Name, entry.Value.String(), literal); err != nil {
		return &FieldError{Name: entry.Name, Err: err}
	}
	return nil
}

// toDocument converts the supported Marshal inputs into a Document.
func toDocument(v any, o *options) (*Document, error) {
	switch d := v.(type) {
	case *Document:
		if d == nil {
			return &Document{}, nil
		}
		return d, nil
	case Document:
		return &d, nil
	case map[string]any:
		return DocumentFromMap(d)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, &UnsupportedTypeError{Type: rv.Type()}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		return mapToDocument(rv)
	case reflect.Struct:
		return structToDocument(rv, o)
	case reflect.Invalid:
		return nil, &UnsupportedTypeError{}
	}
	return nil, &UnsupportedTypeError{Type: rv.Type()}
}

func mapToDocument(rv reflect.Value) (*Document, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("envfile: map key type must be a string, got %s", rv.Type().Key())
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	d := &Document{}
	for _, key := range keys {
		val, err := valueOf(rv.MapIndex(key))
		if err != nil {
			return nil, &FieldError{Name: key.String(), Err: err}
		}
		d.Set(key.String(), val)
	}
	return d, nil
}

func structToDocument(rv reflect.Value, o *options) (*Document, error) {
	d := &Document{}
	for _, f := range mapper.CachedFields(rv.Type(), o.tagName).List {
		fv := rv.FieldByIndex(f.Index)
		if f.OmitEmpty && fv.IsZero() {
			continue
		}
		if (fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface) && fv.IsNil() {
			continue
		}
		val, err := valueOf(fv)
		if err != nil {
			return nil, &FieldError{Name: f.Name, Err: err}
		}
		d.Set(f.Name, val)
	}
	return d, nil
}
