package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// FileSystem is the file access a Store needs. Implementations report
// missing files with ErrNotFound and refused overwrites with
// ErrAlreadyExists.
type FileSystem interface {
	Exists(path string) bool
	EnsureParentDirs(path string) error
	ReadText(path string) (string, error)
	WriteText(path, text string, overwrite bool) error
	Delete(path string) error
}

var errIsDir = errors.New("is a directory")

// VFS implements FileSystem on top of a virtual filesystem.
type VFS struct {
	fs   vfs.FileSystem
	mode os.FileMode
}

var _ FileSystem = &VFS{}

// NewVFS returns a FileSystem backed by fs that creates files with mode.
func NewVFS(fs vfs.FileSystem, mode os.FileMode) *VFS {
	return &VFS{fs: fs, mode: mode}
}

// Exists reports whether path exists.
func (v *VFS) Exists(path string) bool {
	ok, err := vfs.Exists(v.fs, path)
	return err == nil && ok
}

// EnsureParentDirs creates the directory holding path, including any
// missing parents.
func (v *VFS) EnsureParentDirs(path string) error {
	dir := vfs.Dir(v.fs, path)
	if err := v.fs.MkdirAll(dir, os.ModePerm); err != nil {
		return &IOError{Op: "create directory", Path: dir, Err: err}
	}
	return nil
}

// ReadText returns the content of path.
func (v *VFS) ReadText(path string) (string, error) {
	if fi, err := v.fs.Stat(path); err == nil && fi.IsDir() {
		return "", &IOError{Op: "read", Path: path, Err: errIsDir}
	}
	data, err := vfs.ReadFile(v.fs, path)
	if err != nil {
		if vfs.IsErrNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// WriteText replaces the content of path with text. Without overwrite the
// file must not exist yet.
func (v *VFS) WriteText(path, text string, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		if v.Exists(path) {
			return fmt.Errorf("%w: %q", ErrAlreadyExists, path)
		}
		flags |= os.O_EXCL
	}

	f, err := v.fs.OpenFile(path, flags, v.mode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %q", ErrAlreadyExists, path)
		}
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if _, err := f.Write([]byte(text)); err != nil {
		f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Delete removes path. A missing file is not an error.
func (v *VFS) Delete(path string) error {
	if err := v.fs.Remove(path); err != nil && !vfs.IsErrNotExist(err) {
		return &IOError{Op: "delete", Path: path, Err: err}
	}
	return nil
}
