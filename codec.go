package envfile

import "errors"

// Codec encodes and decodes flat configuration maps, for use by
// configuration loaders that plug in file formats by extension.
type Codec struct{}

// Encode returns the envfile encoding of v, with names in sorted order.
func (Codec) Encode(v map[string]any) ([]byte, error) {
	return Marshal(v)
}

// Decode parses b and adds its entries to v, which must not be nil.
func (Codec) Decode(b []byte, v map[string]any) error {
	if v == nil {
		return errors.New("envfile: Decode into nil map")
	}
	doc, err := Parse(b)
	if err != nil {
		return err
	}
	for name, val := range doc.All() {
		v[name] = val.Interface()
	}
	return nil
}
