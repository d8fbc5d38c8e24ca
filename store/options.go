package store

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/KimNorgaard/go-envfile"
)

// DefaultFileMode is the permission used for files created by a Store.
const DefaultFileMode os.FileMode = 0o644

// Option configures a Store.
type Option func(*Store)

// WithFileSystem sets the filesystem the Store operates on. The default is
// the operating system's filesystem.
func WithFileSystem(fs vfs.FileSystem) Option {
	return func(s *Store) {
		s.vfs = fs
	}
}

// WithBackend replaces the file access layer entirely, taking precedence
// over WithFileSystem and WithFileMode.
func WithBackend(fs FileSystem) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithFileMode sets the permission of newly created files.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Store) {
		s.mode = mode
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(log logr.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithEncodeOptions sets the options used when writing documents.
func WithEncodeOptions(opts ...envfile.Option) Option {
	return func(s *Store) {
		s.encodeOpts = opts
	}
}

// WithDecodeOptions sets the options used when reading documents.
func WithDecodeOptions(opts ...envfile.Option) Option {
	return func(s *Store) {
		s.decodeOpts = opts
	}
}
