// Package command implements the envfile command line.
package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KimNorgaard/go-envfile"
	"github.com/KimNorgaard/go-envfile/store"
)

// GlobalOptions holds the flags shared by every subcommand.
type GlobalOptions struct {
	// Verbosity is the highest logr V-level written to stderr.
	Verbosity int
	// SignedIntegers makes "-7" and "+7" integers when reading.
	SignedIntegers bool
	// SortKeys writes entries in name order.
	SortKeys bool
	// PreserveStrings keeps number-like strings as strings when writing.
	PreserveStrings bool

	fs vfs.FileSystem
}

// AddFlags registers the global flags.
func (o *GlobalOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&o.Verbosity, "verbosity", "v", 0, "log verbosity written to stderr")
	fs.BoolVar(&o.SignedIntegers, "signed-integers", false, "read signed whole numbers as integers")
	fs.BoolVar(&o.SortKeys, "sort", false, "write entries sorted by name")
	fs.BoolVar(&o.PreserveStrings, "preserve-strings", false, "write strings that look like numbers or booleans so they read back as strings")
}

func (o *GlobalOptions) decodeOptions() []envfile.Option {
	var opts []envfile.Option
	if o.SignedIntegers {
		opts = append(opts, envfile.SignedIntegers())
	}
	return opts
}

func (o *GlobalOptions) encodeOptions() []envfile.Option {
	var opts []envfile.Option
	if o.SortKeys {
		opts = append(opts, envfile.SortKeys())
	}
	if o.PreserveStrings {
		opts = append(opts, envfile.PreserveStrings())
	}
	return opts
}

// Logger returns a logger writing to w at the configured verbosity.
func (o *GlobalOptions) Logger(w io.Writer) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: o.Verbosity})
}

// Store returns a store over the configured filesystem, logging to w.
func (o *GlobalOptions) Store(w io.Writer) *store.Store {
	return store.New(
		store.WithFileSystem(o.fs),
		store.WithLogger(o.Logger(w).WithName("store")),
		store.WithEncodeOptions(o.encodeOptions()...),
		store.WithDecodeOptions(o.decodeOptions()...),
	)
}

// NewEnvfileCommand creates the root command operating on fs.
func NewEnvfileCommand(fs vfs.FileSystem) *cobra.Command {
	opts := &GlobalOptions{fs: fs}
	cmd := &cobra.Command{
		Use:           "envfile",
		Short:         "read and write typed key/value configuration files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewFmtCommand(opts))
	return cmd
}

// parseAssignments reads KEY=VALUE arguments with the same rules as a file,
// so quoting and type inference behave as they would on disk.
func parseAssignments(args []string, opts []envfile.Option) (*envfile.Document, error) {
	doc := &envfile.Document{}
	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			return nil, fmt.Errorf("invalid assignment %q: expected KEY=VALUE", arg)
		}
		if strings.ContainsAny(arg, "\r\n") {
			return nil, fmt.Errorf("invalid assignment %q: values must be on one line", arg)
		}
		parsed, err := envfile.Parse([]byte(arg), opts...)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", arg, err)
		}
		if parsed.Len() != 1 {
			return nil, fmt.Errorf("invalid assignment %q: expected KEY=VALUE", arg)
		}
		doc.Merge(parsed)
	}
	return doc, nil
}
