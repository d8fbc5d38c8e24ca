package command

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand removes envfiles.
func NewDeleteCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete FILE...",
		Args:  cobra.MinimumNArgs(1),
		Short: "delete envfiles",
		Long: `
delete removes each FILE. A file that does not exist is ignored.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := global.Store(cmd.ErrOrStderr())
			for _, path := range args {
				if err := st.Delete(cmd.Context(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
