package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CreateOptions configures the create command.
type CreateOptions struct {
	*GlobalOptions

	Path        string
	Assignments []string
	// Overwrite replaces an existing file.
	Overwrite bool
}

// NewCreateCommand writes a new envfile.
func NewCreateCommand(global *GlobalOptions) *cobra.Command {
	opts := &CreateOptions{GlobalOptions: global}
	cmd := &cobra.Command{
		Use:   "create FILE [KEY=VALUE...]",
		Args:  cobra.MinimumNArgs(1),
		Short: "create an envfile",
		Long: `
create writes FILE with the given entries. Missing parent directories are
created. An existing file is an error unless --overwrite is set.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Assignments = args[1:]
			return opts.Run(cmd)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// AddFlags registers the create flags.
func (o *CreateOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Overwrite, "overwrite", false, "replace the file if it exists")
}

// Run writes the file.
func (o *CreateOptions) Run(cmd *cobra.Command) error {
	doc, err := parseAssignments(o.Assignments, o.decodeOptions())
	if err != nil {
		return err
	}
	return o.Store(cmd.ErrOrStderr()).Create(cmd.Context(), o.Path, doc, o.Overwrite)
}
