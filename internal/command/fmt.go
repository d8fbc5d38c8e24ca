package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KimNorgaard/go-envfile"
)

// FmtOptions configures the fmt command.
type FmtOptions struct {
	*GlobalOptions

	Path string
	// Write rewrites the file instead of printing it.
	Write bool
}

// NewFmtCommand prints or rewrites an envfile in canonical form.
func NewFmtCommand(global *GlobalOptions) *cobra.Command {
	opts := &FmtOptions{GlobalOptions: global}
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Args:  cobra.ExactArgs(1),
		Short: "format an envfile",
		Long: `
fmt prints FILE in canonical form: comments and blank lines are dropped,
duplicate keys collapse to their last value and every value is re-quoted.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			return opts.Run(cmd)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// AddFlags registers the fmt flags.
func (o *FmtOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.Write, "write", "w", false, "write the result back to the file")
}

// Run formats the file.
func (o *FmtOptions) Run(cmd *cobra.Command) error {
	st := o.Store(cmd.ErrOrStderr())
	doc, err := st.Read(cmd.Context(), o.Path)
	if err != nil {
		return err
	}
	if o.Write {
		return st.Create(cmd.Context(), o.Path, doc, true)
	}
	data, err := envfile.Marshal(doc, o.encodeOptions()...)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
