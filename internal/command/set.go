package command

import (
	"github.com/spf13/cobra"
)

// SetOptions configures the set command.
type SetOptions struct {
	*GlobalOptions

	Path        string
	Assignments []string
}

// NewSetCommand updates entries of an envfile.
func NewSetCommand(global *GlobalOptions) *cobra.Command {
	opts := &SetOptions{GlobalOptions: global}
	return &cobra.Command{
		Use:   "set FILE KEY=VALUE...",
		Args:  cobra.MinimumNArgs(2),
		Short: "set entries in an envfile",
		Long: `
set adds or replaces the given entries and rewrites FILE, creating it if it
does not exist. Values are read with the same quoting and type rules as the
file itself: KEY=42 and KEY='42' both store an integer, while the block
form KEY="""42""" stores a string.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Assignments = args[1:]
			return opts.Run(cmd)
		},
	}
}

// Run merges the assignments into the file.
func (o *SetOptions) Run(cmd *cobra.Command) error {
	partial, err := parseAssignments(o.Assignments, o.decodeOptions())
	if err != nil {
		return err
	}
	_, err = o.Store(cmd.ErrOrStderr()).Update(cmd.Context(), o.Path, partial)
	return err
}
