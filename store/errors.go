package store

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is returned by Create when the target exists and
	// overwriting was not requested.
	ErrAlreadyExists = errors.New("file already exists")
	// ErrNotFound is returned by Read when the target does not exist.
	ErrNotFound = errors.New("file not found")
)

// IOError wraps a failing filesystem operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("envfile: unable to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError reports a file whose content is not a valid envfile. Err is
// the envfile.ParseErrors describing the offending lines.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("envfile: unable to decode %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
