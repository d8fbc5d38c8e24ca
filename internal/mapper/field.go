package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes an exported struct field that maps to an entry.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

// Fields is the ordered field list of a struct type with lookup tables.
type Fields struct {
	List   []Field
	byName map[string]int
	byFold map[string]int
}

type cacheKey struct {
	t   reflect.Type
	tag string
}

// fieldCache caches the parsed fields for each struct type and tag name.
var fieldCache sync.Map // map[cacheKey]*Fields

// CachedFields returns the fields of struct type t, reading names from the
// given struct tag. Unexported fields and fields tagged "-" are skipped.
// Embedded structs are flattened; an outer field shadows an embedded one of
// the same name.
func CachedFields(t reflect.Type, tag string) *Fields {
	key := cacheKey{t: t, tag: tag}
	if f, ok := fieldCache.Load(key); ok {
		return f.(*Fields)
	}

	fs := &Fields{byName: map[string]int{}, byFold: map[string]int{}}
	var embedded []Field
	var walk func(t reflect.Type, idx []int, depth int)
	walk = func(t reflect.Type, idx []int, depth int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			index := append(append([]int(nil), idx...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get(tag) == "" {
				walk(sf.Type, index, depth+1)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			tagStr := sf.Tag.Get(tag)
			if tagStr == "-" {
				continue
			}

			f := Field{Index: index}
			name, opts, _ := strings.Cut(tagStr, ",")
			if name != "" {
				f.Name = name
				f.Tagged = true
			} else {
				f.Name = sf.Name
			}
			for opts != "" {
				var opt string
				opt, opts, _ = strings.Cut(opts, ",")
				if strings.TrimSpace(opt) == "omitempty" {
					f.OmitEmpty = true
				}
			}

			if depth > 0 {
				embedded = append(embedded, f)
			} else {
				fs.add(f)
			}
		}
	}
	walk(t, nil, 0)
	for _, f := range embedded {
		if _, ok := fs.byName[f.Name]; !ok {
			fs.add(f)
		}
	}

	actual, _ := fieldCache.LoadOrStore(key, fs)
	return actual.(*Fields)
}

func (fs *Fields) add(f Field) {
	if _, ok := fs.byName[f.Name]; ok {
		return
	}
	fs.byName[f.Name] = len(fs.List)
	lower := strings.ToLower(f.Name)
	if _, ok := fs.byFold[lower]; !ok {
		fs.byFold[lower] = len(fs.List)
	}
	fs.List = append(fs.List, f)
}

// Lookup finds the field for an entry name. It first attempts a
// case-sensitive match, then falls back to a case-insensitive one.
func (fs *Fields) Lookup(name string) (Field, bool) {
	if i, ok := fs.byName[name]; ok {
		return fs.List[i], true
	}
	if i, ok := fs.byFold[strings.ToLower(name)]; ok {
		return fs.List[i], true
	}
	return Field{}, false
}
