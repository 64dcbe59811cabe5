package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viewmorph/viewmorph/pkg/render/anim"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// curvesOpts holds the command-line flags for the curves command.
type curvesOpts struct {
	pipelineFlags
	output string
	width  float64
	height float64
}

// curvesCommand creates the curves command for rendering spline paths.
func (c *CLI) curvesCommand() *cobra.Command {
	opts := curvesOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "curves [dataset.json]",
		Short: "Render the spline point paths to SVG",
		Long: `Render the spline point paths to SVG.

The curves command prepares a spline transition and draws every point's
path as a polyline, alternating stroke color per segment. Use it to see
how parameter changes reshape the geometry without sampling frames.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.strategy != "" && opts.strategy != "spline" {
				return fmt.Errorf("curves renders spline transitions (got %q)", opts.strategy)
			}
			return c.runCurves(cmd.Context(), args[0], &opts)
		},
	}

	opts.pipelineFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default derived from input)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")

	return cmd
}

// runCurves prepares the spline and writes its debug rendering.
func (c *CLI) runCurves(ctx context.Context, input string, opts *curvesOpts) error {
	opts.strategy = "spline"
	pOpts, err := opts.options(input)
	if err != nil {
		return err
	}
	pOpts.Logger = c.Logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, pOpts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Preparing spline...")
	spinner.Start()
	prog := newProgress(c.Logger)
	tr, err := runner.Prepare(ctx, ds, pOpts)
	if err != nil {
		spinner.StopWithError("Preparation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Prepared %d point paths", ds.Len()))

	sp, ok := tr.(*transition.Spline)
	if !ok {
		return fmt.Errorf("transition is not a spline")
	}

	svg, err := anim.CurvesSVG(sp, anim.WithSize(opts.width, opts.height))
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = basePath("", input) + "_curves.svg"
	}
	if err := os.WriteFile(out, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered %d point paths", ds.Len())
	printFile(out)
	return nil
}
