package envfile

import (
	"iter"
	"slices"
	"sort"
)

// Entry is a single name/value pair.
type Entry struct {
	Name  string
	Value Value
}

// Document is an ordered mapping of unique names to values. Setting an
// existing name replaces its value in place, so the position of a name is
// the position where it was first set.
//
// The zero Document is empty and ready to use. A Document is not safe for
// concurrent mutation.
type Document struct {
	entries []Entry
	index   map[string]int
}

// NewDocument returns a Document holding the given entries, applied in order.
func NewDocument(entries ...Entry) *Document {
	d := &Document{}
	for _, e := range entries {
		d.Set(e.Name, e.Value)
	}
	return d
}

// DocumentFromMap builds a Document from m, with names in sorted order.
// Every map value must be accepted by ValueOf.
func DocumentFromMap(m map[string]any) (*Document, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	d := &Document{}
	for _, name := range names {
		v, err := ValueOf(m[name])
		if err != nil {
			return nil, &FieldError{Name: name, Err: err}
		}
		d.Set(name, v)
	}
	return d, nil
}

// Set assigns v to name, overwriting any previous value.
func (d *Document) Set(name string, v Value) {
	if i, ok := d.index[name]; ok {
		d.entries[i].Value = v
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[name] = len(d.entries)
	d.entries = append(d.entries, Entry{Name: name, Value: v})
}

// Get returns the value stored under name.
func (d *Document) Get(name string) (Value, bool) {
	i, ok := d.index[name]
	if !ok {
		return Value{}, false
	}
	return d.entries[i].Value, true
}

// Has reports whether name is present.
func (d *Document) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Delete removes name and reports whether it was present.
func (d *Document) Delete(name string) bool {
	i, ok := d.index[name]
	if !ok {
		return false
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	delete(d.index, name)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].Name] = j
	}
	return true
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.entries) }

// Keys returns the names in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Name
	}
	return keys
}

// Entries returns a copy of the entries in document order.
func (d *Document) Entries() []Entry {
	return slices.Clone(d.entries)
}

// All iterates over the entries in document order.
func (d *Document) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range d.entries {
			if !yield(e.Name, e.Value) {
				return
			}
		}
	}
}

// Merge overlays other onto d: values from other win on a name collision,
// and names new to d are appended in other's order.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		d.Set(e.Name, e.Value)
	}
}

// Clone returns an independent copy of d.
func (d *Document) Clone() *Document {
	return NewDocument(d.entries...)
}

// Map returns the entries as a map of names to bool, int64, float64 or
// string values.
func (d *Document) Map() map[string]any {
	m := make(map[string]any, len(d.entries))
	for _, e := range d.entries {
		m[e.Name] = e.Value.Interface()
	}
	return m
}

// Equal reports whether d and o hold the same names, in the same order,
// with equal values. A nil Document equals only nil.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return slices.EqualFunc(d.entries, o.entries, func(a, b Entry) bool {
		return a.Name == b.Name && a.Value.Equal(b.Value)
	})
}

func (d *Document) sorted() []Entry {
	entries := d.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
