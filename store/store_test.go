package store_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/readonlyfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/require"
	"github.com/tonglil/buflogr"

	"github.com/KimNorgaard/go-envfile"
	"github.com/KimNorgaard/go-envfile/store"
)

func newStore(t *testing.T) (*store.Store, vfs.FileSystem) {
	t.Helper()
	fs := memoryfs.New()
	return store.New(store.WithFileSystem(fs)), fs
}

func readFile(t *testing.T, fs vfs.FileSystem, path string) string {
	t.Helper()
	data, err := vfs.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the serialized document and parent directories", func(t *testing.T) {
		s, fs := newStore(t)
		doc := envfile.NewDocument(
			envfile.Entry{Name: "NAME", Value: envfile.String("my app")},
			envfile.Entry{Name: "PORT", Value: envfile.Int(8080)},
		)
		require.NoError(t, s.Create(ctx, "/etc/app/config/.env", doc, false))
		require.Equal(t, "NAME=\"my app\"\nPORT=8080\n", readFile(t, fs, "/etc/app/config/.env"))
		require.True(t, s.Exists("/etc/app/config/.env"))
	})

	t.Run("accepts maps", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, s.Create(ctx, "/a.env", map[string]any{"B": 2, "A": true}, false))
		require.Equal(t, "A=true\nB=2\n", readFile(t, fs, "/a.env"))
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("# keep me\nA=1\n"), 0o644))

		err := s.Create(ctx, "/a.env", map[string]any{"A": 2}, false)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
		require.Equal(t, "# keep me\nA=1\n", readFile(t, fs, "/a.env"))
	})

	t.Run("overwrites when asked", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("A=1\nB=2\n"), 0o644))

		require.NoError(t, s.Create(ctx, "/a.env", map[string]any{"A": 2}, true))
		require.Equal(t, "A=2\n", readFile(t, fs, "/a.env"))
	})

	t.Run("encode errors leave no file behind", func(t *testing.T) {
		s, _ := newStore(t)
		err := s.Create(ctx, "/a.env", map[string]any{"BAD KEY=": 1}, false)
		require.Error(t, err)
		var ferr *envfile.FieldError
		require.ErrorAs(t, err, &ferr)
		require.False(t, s.Exists("/a.env"))
	})

	t.Run("filesystem failures are IOErrors", func(t *testing.T) {
		s := store.New(store.WithFileSystem(readonlyfs.New(memoryfs.New())))
		err := s.Create(ctx, "/dir/a.env", map[string]any{"A": 1}, false)
		var ioErr *store.IOError
		require.ErrorAs(t, err, &ioErr)
	})

	t.Run("canceled context", func(t *testing.T) {
		s, _ := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, s.Create(cctx, "/a.env", map[string]any{"A": 1}, false), context.Canceled)
		require.False(t, s.Exists("/a.env"))
	})
}

func TestRead(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the file", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("A=1\nB=\"x y\"\nC=0.5\nD=TRUE\n"), 0o644))

		doc, err := s.Read(ctx, "/a.env")
		require.NoError(t, err)
		require.Equal(t, map[string]any{"A": int64(1), "B": "x y", "C": 0.5, "D": true}, doc.Map())
	})

	t.Run("empty file is an empty document", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", nil, 0o644))

		doc, err := s.Read(ctx, "/a.env")
		require.NoError(t, err)
		require.Equal(t, 0, doc.Len())
	})

	t.Run("missing file is ErrNotFound", func(t *testing.T) {
		s, _ := newStore(t)
		doc, err := s.Read(ctx, "/missing.env")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.Nil(t, doc)
	})

	t.Run("malformed file is a DecodeError", func(t *testing.T) {
		var buf bytes.Buffer
		fs := memoryfs.New()
		s := store.New(store.WithFileSystem(fs), store.WithLogger(buflogr.NewWithBuffer(&buf)))
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("A=1\nnotakeyvalue\n"), 0o644))

		_, err := s.Read(ctx, "/a.env")
		var derr *store.DecodeError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, "/a.env", derr.Path)

		var perrs envfile.ParseErrors
		require.ErrorAs(t, err, &perrs)
		require.Len(t, perrs, 1)
		require.Equal(t, 2, perrs[0].Line)
		require.Equal(t, "notakeyvalue", perrs[0].Content)
		require.False(t, errors.Is(err, store.ErrNotFound))

		require.Contains(t, buf.String(), "unable to decode file")
	})

	t.Run("directory is an IOError", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, fs.MkdirAll("/dir.env", 0o755))

		doc, err := s.Read(ctx, "/dir.env")
		var ioErr *store.IOError
		require.ErrorAs(t, err, &ioErr)
		require.Equal(t, "read", ioErr.Op)
		require.Equal(t, "/dir.env", ioErr.Path)
		require.Nil(t, doc)

		_, err = s.Update(ctx, "/dir.env", map[string]any{"A": 1})
		require.ErrorAs(t, err, &ioErr)
	})

	t.Run("decode options are applied", func(t *testing.T) {
		fs := memoryfs.New()
		s := store.New(store.WithFileSystem(fs), store.WithDecodeOptions(envfile.SignedIntegers()))
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("A=-7\n"), 0o644))

		doc, err := s.Read(ctx, "/a.env")
		require.NoError(t, err)
		v, _ := doc.Get("A")
		require.Equal(t, envfile.Int(-7), v)
	})
}

func TestReadInto(t *testing.T) {
	type config struct {
		Host string `env:"HOST"`
		Port int    `env:"PORT"`
	}
	ctx := context.Background()
	s, fs := newStore(t)
	require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("HOST=localhost\nPORT=5432\n"), 0o644))

	var cfg config
	require.NoError(t, s.ReadInto(ctx, "/a.env", &cfg))
	require.Equal(t, config{Host: "localhost", Port: 5432}, cfg)

	require.ErrorIs(t, s.ReadInto(ctx, "/missing.env", &cfg), store.ErrNotFound)

	require.NoError(t, vfs.WriteFile(fs, "/bad.env", []byte("oops\n"), 0o644))
	var derr *store.DecodeError
	require.ErrorAs(t, s.ReadInto(ctx, "/bad.env", &cfg), &derr)
}

func TestReadInto_Logging(t *testing.T) {
	type config struct {
		Port int `env:"PORT"`
	}
	ctx := context.Background()
	var buf bytes.Buffer
	fs := memoryfs.New()
	s := store.New(store.WithFileSystem(fs), store.WithLogger(buflogr.NewWithBuffer(&buf)))

	require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("PORT=5432\n"), 0o644))
	var cfg config
	require.NoError(t, s.ReadInto(ctx, "/a.env", &cfg))
	require.Contains(t, buf.String(), "read file")

	require.NoError(t, vfs.WriteFile(fs, "/bad.env", []byte("oops\n"), 0o644))
	require.Error(t, s.ReadInto(ctx, "/bad.env", &cfg))
	require.Contains(t, buf.String(), "unable to decode file")

	require.NoError(t, vfs.WriteFile(fs, "/text.env", []byte("PORT=http\n"), 0o644))
	var terr *envfile.UnmarshalTypeError
	require.ErrorAs(t, s.ReadInto(ctx, "/text.env", &cfg), &terr)
	require.Contains(t, buf.String(), "unable to decode file into value")
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("adds to existing entries", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("B=2\n"), 0o644))

		doc, err := s.Update(ctx, "/a.env", map[string]any{"A": 1})
		require.NoError(t, err)
		require.Equal(t, []string{"B", "A"}, doc.Keys())
		require.Equal(t, "B=2\nA=1\n", readFile(t, fs, "/a.env"))
	})

	t.Run("overwrites instead of duplicating", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("A=0\nB=2\n"), 0o644))

		_, err := s.Update(ctx, "/a.env", map[string]any{"A": 1})
		require.NoError(t, err)
		require.Equal(t, "A=1\nB=2\n", readFile(t, fs, "/a.env"))
	})

	t.Run("rewrites in canonical form", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("# comment\n  B = 'two words'  # trailing\n"), 0o644))

		_, err := s.Update(ctx, "/a.env", map[string]any{"A": "x"})
		require.NoError(t, err)
		require.Equal(t, "B=\"two words\"\nA=x\n", readFile(t, fs, "/a.env"))
	})

	t.Run("missing file starts empty", func(t *testing.T) {
		s, fs := newStore(t)
		_, err := s.Update(ctx, "/new/dir/a.env", map[string]any{"A": 1})
		require.NoError(t, err)
		require.Equal(t, "A=1\n", readFile(t, fs, "/new/dir/a.env"))
	})

	t.Run("malformed file is not replaced", func(t *testing.T) {
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("garbage\n"), 0o644))

		_, err := s.Update(ctx, "/a.env", map[string]any{"A": 1})
		var derr *store.DecodeError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, "garbage\n", readFile(t, fs, "/a.env"))
	})

	t.Run("struct overlay", func(t *testing.T) {
		type patch struct {
			Debug bool `env:"DEBUG"`
		}
		s, fs := newStore(t)
		require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("DEBUG=false\nNAME=x\n"), 0o644))

		_, err := s.Update(ctx, "/a.env", patch{Debug: true})
		require.NoError(t, err)
		require.Equal(t, "DEBUG=true\nNAME=x\n", readFile(t, fs, "/a.env"))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, fs := newStore(t)
	require.NoError(t, vfs.WriteFile(fs, "/a.env", []byte("A=1\n"), 0o644))

	require.NoError(t, s.Delete(ctx, "/a.env"))
	require.False(t, s.Exists("/a.env"))

	// Deleting a missing file is a no-op.
	require.NoError(t, s.Delete(ctx, "/a.env"))

	_, err := s.Read(ctx, "/a.env")
	require.ErrorIs(t, err, store.ErrNotFound)
}
