// Package store persists envfile documents on a filesystem.
//
// Every write re-encodes the whole document; there is no partial update.
// A Store does not coordinate concurrent writers: Update is a
// read-modify-write sequence that assumes a single writer per path.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/KimNorgaard/go-envfile"
)

// Store creates, reads, updates and deletes envfiles.
type Store struct {
	fs         FileSystem
	vfs        vfs.FileSystem
	mode       os.FileMode
	log        logr.Logger
	encodeOpts []envfile.Option
	decodeOpts []envfile.Option
}

// New returns a Store configured by opts.
func New(opts ...Option) *Store {
	s := &Store{
		mode: DefaultFileMode,
		log:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		if s.vfs == nil {
			s.vfs = osfs.New()
		}
		s.fs = NewVFS(s.vfs, s.mode)
	}
	return s
}

// Create writes v, which may be anything accepted by envfile.Marshal, to
// path. Missing parent directories are created. Unless overwrite is set,
// Create fails with ErrAlreadyExists if path exists, leaving it untouched.
func (s *Store) Create(ctx context.Context, path string, v any, overwrite bool) error {
	log := s.log.WithValues("path", path)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !overwrite && s.fs.Exists(path) {
		log.V(1).Info("refusing to overwrite existing file")
		return fmt.Errorf("%w: %q", ErrAlreadyExists, path)
	}

	data, err := envfile.Marshal(v, s.encodeOpts...)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.EnsureParentDirs(path); err != nil {
		log.Error(err, "unable to create parent directories")
		return err
	}
	if err := s.fs.WriteText(path, string(data), overwrite); err != nil {
		if !errors.Is(err, ErrAlreadyExists) {
			log.Error(err, "unable to write file")
		}
		return err
	}
	log.V(1).Info("wrote file", "bytes", len(data), "overwrite", overwrite)
	return nil
}

// Read parses the file at path. A missing file yields ErrNotFound and
// malformed content a *DecodeError; neither is reported as an empty
// document.
func (s *Store) Read(ctx context.Context, path string) (*envfile.Document, error) {
	log := s.log.WithValues("path", path)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := s.fs.ReadText(path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.V(1).Info("file not found")
		} else {
			log.Error(err, "unable to read file")
		}
		return nil, err
	}

	doc, err := envfile.Parse([]byte(text), s.decodeOpts...)
	if err != nil {
		log.Error(err, "unable to decode file")
		return nil, &DecodeError{Path: path, Err: err}
	}
	log.V(1).Info("read file", "entries", doc.Len())
	return doc, nil
}

// ReadInto parses the file at path into v, as envfile.Unmarshal does.
// Errors are reported as by Read.
func (s *Store) ReadInto(ctx context.Context, path string, v any) error {
	doc, err := s.Read(ctx, path)
	if err != nil {
		return err
	}
	if err := doc.Decode(v, s.decodeOpts...); err != nil {
		s.log.Error(err, "unable to decode file into value", "path", path)
		return err
	}
	return nil
}

// Update overlays partial onto the document stored at path and rewrites the
// file in full. A missing file is treated as an empty document; a malformed
// one is an error and is left untouched. The merged document is returned.
func (s *Store) Update(ctx context.Context, path string, partial any) (*envfile.Document, error) {
	overlay, err := envfile.DocumentOf(partial, s.encodeOpts...)
	if err != nil {
		return nil, err
	}

	doc, err := s.Read(ctx, path)
	switch {
	case errors.Is(err, ErrNotFound):
		doc = &envfile.Document{}
	case err != nil:
		return nil, err
	}
	doc.Merge(overlay)

	if err := s.Create(ctx, path, doc, true); err != nil {
		return nil, err
	}
	s.log.V(1).Info("updated file", "path", path, "keys", overlay.Keys())
	return doc, nil
}

// Delete removes the file at path if it exists.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.Delete(path); err != nil {
		s.log.Error(err, "unable to delete file", "path", path)
		return err
	}
	s.log.V(1).Info("deleted file", "path", path)
	return nil
}

// Exists reports whether a file exists at path.
func (s *Store) Exists(path string) bool {
	return s.fs.Exists(path)
}
