package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/viewmorph/viewmorph/pkg/transition"
)

// paramsOpts holds the command-line flags for the params command.
type paramsOpts struct {
	asTOML bool // emit a params file skeleton instead of a listing
}

// paramsCommand creates the params command for inspecting strategy schemas.
func (c *CLI) paramsCommand() *cobra.Command {
	var opts paramsOpts

	cmd := &cobra.Command{
		Use:   "params [strategy]",
		Short: "List the parameters a strategy accepts",
		Long: `List the parameters a strategy accepts.

Without an argument the command lists every strategy. With --toml it
writes a params file skeleton holding the strategy's defaults, ready
for editing and passing back via --params-file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			if opts.asTOML && name == "" {
				return fmt.Errorf("--toml needs a strategy (one of %s)", strings.Join(transition.StrategyNames(), ", "))
			}
			return c.runParams(cmd, name, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.asTOML, "toml", false, "emit a params file skeleton with defaults")

	return cmd
}

// runParams prints the schema listing or TOML skeleton to the command's
// output.
func (c *CLI) runParams(cmd *cobra.Command, name string, opts *paramsOpts) error {
	names := transition.StrategyNames()
	if name != "" {
		s, err := transition.ParseStrategy(name)
		if err != nil {
			return err
		}
		names = []string{s.String()}
	}

	w := cmd.OutOrStdout()
	if opts.asTOML {
		s, err := transition.ParseStrategy(names[0])
		if err != nil {
			return err
		}
		enc := toml.NewEncoder(w)
		enc.Indent = ""
		return enc.Encode(schemaDefaults(transition.SchemaFor(s)))
	}

	for i, n := range names {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s, err := transition.ParseStrategy(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, StyleTitle.Render(n))
		schema := transition.SchemaFor(s)
		if len(schema) == 0 {
			fmt.Fprintln(w, StyleDim.Render("  no parameters"))
			continue
		}
		writeSchema(w, schema, "  ")
	}
	return nil
}

// writeSchema prints one schema level in sorted order, recursing into
// groups with deeper indentation.
func writeSchema(w io.Writer, schema transition.Schema, indent string) {
	names := make([]string, 0, len(schema))
	for n := range schema {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		spec := schema[n]
		line := indent + StyleValue.Render(fmt.Sprintf("%-18s", n)) + " " + StyleDim.Render(fmt.Sprintf("%-8s", spec.Kind))
		if d := describeDomain(spec); d != "" {
			line += " " + d
		}
		fmt.Fprintln(w, line)
		if spec.Kind == transition.ParamGroup {
			writeSchema(w, spec.Contents, indent+"  ")
		}
	}
}

// describeDomain renders the domain and default of a parameter for the
// listing.
func describeDomain(spec transition.ParamSpec) string {
	switch spec.Kind {
	case transition.ParamNumber:
		return fmt.Sprintf("%g..%g (default %v)", spec.Min, spec.Max, spec.Default)
	case transition.ParamBool:
		return fmt.Sprintf("(default %v)", spec.Default)
	case transition.ParamEnum:
		return fmt.Sprintf("%s (default %v)", strings.Join(spec.Variants, " | "), spec.Default)
	case transition.ParamDerived:
		return StyleDim.Render("(computed)")
	}
	return ""
}

// schemaDefaults collects the default values of a schema for the TOML
// skeleton. Derived parameters are computed, not set, so they are left
// out.
func schemaDefaults(schema transition.Schema) map[string]any {
	out := make(map[string]any, len(schema))
	for name, spec := range schema {
		switch spec.Kind {
		case transition.ParamDerived:
			continue
		case transition.ParamGroup:
			out[name] = schemaDefaults(spec.Contents)
		default:
			out[name] = spec.Default
		}
	}
	return out
}
