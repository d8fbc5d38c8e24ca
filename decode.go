package envfile

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/KimNorgaard/go-envfile/internal/lexer"
	"github.com/KimNorgaard/go-envfile/internal/mapper"
	"github.com/KimNorgaard/go-envfile/internal/parser"
	"github.com/KimNorgaard/go-envfile/internal/token"
)

// Decoder reads and decodes envfile documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder reads r to EOF on Decode. It is the caller's responsibility to
// call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the whole input and stores the result in the value pointed
// to by v.
//
// See the documentation for Unmarshal for details about the conversion of
// entries into a Go value.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("envfile: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return Unmarshal(data, v, d.opts...)
}

// parseDocument runs the line parser and resolves duplicate names, later
// assignments winning.
func parseDocument(data []byte, o *options) (*Document, error) {
	p := parser.New(lexer.New(data), o.signedIntegers)
	pairs := p.Parse()

	if errs := p.Errors(); len(errs) > 0 {
		perrs := make(ParseErrors, len(errs))
		for i, e := range errs {
			perrs[i] = &ParseError{Line: e.Line, Content: e.Content, Message: e.Message}
		}
		return nil, perrs
	}

	doc := &Document{}
	for _, pair := range pairs {
		doc.Set(pair.Key, pairValue(pair))
	}
	return doc, nil
}

func pairValue(p parser.Pair) Value {
	switch p.Type {
	case token.BOOL:
		b, _ := token.LookupBool(p.Value)
		return Bool(b)
	case token.INT:
		i, err := strconv.ParseInt(p.Value, 10, 64)
		if err == nil {
			return Int(i)
		}
	case token.FLOAT:
		f, err := strconv.ParseFloat(p.Value, 64)
		if err == nil {
			return Float(f)
		}
	}
	return String(p.Value)
}

// decodeDocument stores doc in the value pointed to by v.
func decodeDocument(doc *Document, v any, o *options) error {
	switch t := v.(type) {
	case *Document:
		if t == nil {
			return &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
		}
		*t = *doc
		return nil
	case *map[string]any:
		if t == nil {
			return &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
		}
		*t = doc.Map()
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
	}
	rv = rv.Elem()
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return decodeStruct(doc, rv, o)
	case reflect.Map:
		return decodeMap(doc, rv)
	}
	return fmt.Errorf("envfile: cannot unmarshal document into Go value of type %s", rv.Type())
}

func decodeMap(doc *Document, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("envfile: cannot unmarshal document into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	for _, e := range doc.entries {
		elem := reflect.New(mapType.Elem()).Elem()
		if err := setValue(e.Name, e.Value, elem); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(e.Name).Convert(mapType.Key()), elem)
	}
	return nil
}

func decodeStruct(doc *Document, rv reflect.Value, o *options) error {
	fields := mapper.CachedFields(rv.Type(), o.tagName)
	for _, e := range doc.entries {
		f, ok := fields.Lookup(e.Name)
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanSet() {
			continue
		}
		if err := setValue(e.Name, e.Value, fv); err != nil {
			return err
		}
	}
	return nil
}

// setValue stores val in rv. Strings accept the canonical text of any
// value; integers may be stored in float fields.
func setValue(name string, val Value, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(val.String())); err != nil {
				return fmt.Errorf("envfile: error calling UnmarshalText for key %q: %w", name, err)
			}
			return nil
		}
	}

	mismatch := &UnmarshalTypeError{Name: name, Value: val.Kind(), Type: rv.Type()}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return mismatch
		}
		rv.Set(reflect.ValueOf(val.Interface()))
	case reflect.String:
		rv.SetString(val.String())
	case reflect.Bool:
		if val.Kind() != KindBool {
			return mismatch
		}
		rv.SetBool(val.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if val.Kind() != KindInt {
			return mismatch
		}
		if rv.OverflowInt(val.Int()) {
			return fmt.Errorf("envfile: integer value %d overflows Go value of type %s (key %q)", val.Int(), rv.Type(), name)
		}
		rv.SetInt(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if val.Kind() != KindInt {
			return mismatch
		}
		if val.Int() < 0 || rv.OverflowUint(uint64(val.Int())) {
			return fmt.Errorf("envfile: integer value %d overflows Go value of type %s (key %q)", val.Int(), rv.Type(), name)
		}
		rv.SetUint(uint64(val.Int()))
	case reflect.Float32, reflect.Float64:
		if val.Kind() != KindFloat && val.Kind() != KindInt {
			return mismatch
		}
		if rv.OverflowFloat(val.Float()) {
			return fmt.Errorf("envfile: float value %v overflows Go value of type %s (key %q)", val.Float(), rv.Type(), name)
		}
		rv.SetFloat(val.Float())
	default:
		return mismatch
	}
	return nil
}
