package envfile

import "fmt"

// Option configures encoding and decoding.
type Option func(*options) error

type options struct {
	sortKeys        bool
	signedIntegers  bool
	preserveStrings bool
	tagName         string
}

const defaultTagName = "env"

func newOptions(opts []Option) (*options, error) {
	o := &options{tagName: defaultTagName}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// SortKeys returns an Option that writes entries sorted by name instead of
// in document order.
func SortKeys() Option {
	return func(o *options) error {
		o.sortKeys = true
		return nil
	}
}

// SignedIntegers returns an Option that decodes values such as "-7" and
// "+7" as integers. By default only unsigned digit strings are integers and
// a signed value decodes as a string, which matches files written by other
// tools using this format.
func SignedIntegers() Option {
	return func(o *options) error {
		o.signedIntegers = true
		return nil
	}
}

// PreserveStrings returns an Option that writes string values which look
// like a boolean or a number, such as "42" or "true", as triple-quoted
// blocks so that they decode as strings again. By default they are written
// bare and decode as the type they resemble.
func PreserveStrings() Option {
	return func(o *options) error {
		o.preserveStrings = true
		return nil
	}
}

// TagName returns an Option that sets the struct tag consulted when mapping
// struct fields to entry names. The default is "env".
func TagName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return fmt.Errorf("envfile: tag name cannot be empty")
		}
		o.tagName = name
		return nil
	}
}
