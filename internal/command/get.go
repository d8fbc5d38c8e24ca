package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-envfile"
)

// Output formats supported by get.
const (
	OutputEnv  = "env"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// GetOptions configures the get command.
type GetOptions struct {
	*GlobalOptions

	// Path is the envfile to read.
	Path string
	// Keys restricts the output to these entries, in this order.
	Keys []string
	// Output is one of env, json or yaml.
	Output string
}

// NewGetCommand prints the entries of an envfile.
func NewGetCommand(global *GlobalOptions) *cobra.Command {
	opts := &GetOptions{GlobalOptions: global}
	cmd := &cobra.Command{
		Use:   "get FILE [KEY...]",
		Args:  cobra.MinimumNArgs(1),
		Short: "print the entries of an envfile",
		Long: `
get reads FILE and prints all of its entries, or only the named keys.
A key that is not present is an error.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(args); err != nil {
				return err
			}
			return opts.Run(cmd)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// Complete validates the arguments.
func (o *GetOptions) Complete(args []string) error {
	o.Path = args[0]
	o.Keys = args[1:]
	switch o.Output {
	case OutputEnv, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q: must be one of %s, %s or %s", o.Output, OutputEnv, OutputJSON, OutputYAML)
	}
}

// AddFlags registers the get flags.
func (o *GetOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", OutputEnv, "output format: env, json or yaml")
}

// Run prints the selected entries to the command's output.
func (o *GetOptions) Run(cmd *cobra.Command) error {
	doc, err := o.Store(cmd.ErrOrStderr()).Read(cmd.Context(), o.Path)
	if err != nil {
		return err
	}
	if len(o.Keys) > 0 {
		selected := &envfile.Document{}
		for _, key := range o.Keys {
			v, ok := doc.Get(key)
			if !ok {
				return fmt.Errorf("key %q not found in %s", key, o.Path)
			}
			selected.Set(key, v)
		}
		doc = selected
	}

	out := cmd.OutOrStdout()
	switch o.Output {
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.Map())
	case OutputYAML:
		return writeYAML(out, doc)
	default:
		data, err := envfile.Marshal(doc, o.encodeOptions()...)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
}

// writeYAML writes doc as a YAML mapping in document order, tagging every
// scalar with its inferred kind.
func writeYAML(w io.Writer, doc *envfile.Document) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for name, v := range doc.All() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
		switch v.Kind() {
		case envfile.KindBool:
			val.Tag = "!!bool"
		case envfile.KindInt:
			val.Tag = "!!int"
		case envfile.KindFloat:
			val.Tag = "!!float"
		default:
			val.Tag = "!!str"
			val.Value = v.Str()
		}
		root.Content = append(root.Content, key, val)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}
