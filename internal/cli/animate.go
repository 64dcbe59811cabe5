package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	morphio "github.com/viewmorph/viewmorph/pkg/io"
	"github.com/viewmorph/viewmorph/pkg/pipeline"
	"github.com/viewmorph/viewmorph/pkg/render/anim"
)

const (
	formatJSON = "json"
	formatSVG  = "svg"
	formatPNG  = "png"
	formatPDF  = "pdf"

	defaultWidth  = 800 // default frame width in pixels
	defaultHeight = 600 // default frame height in pixels
)

// validFormats is the set of supported animate output formats.
var validFormats = map[string]bool{formatJSON: true, formatSVG: true, formatPNG: true, formatPDF: true}

// validateFormat checks that the requested format is supported.
func validateFormat(f string) error {
	if !validFormats[f] {
		return fmt.Errorf("invalid format: %s (must be 'json', 'svg', 'png', or 'pdf')", f)
	}
	return nil
}

// animateOpts holds the command-line flags for the animate command.
type animateOpts struct {
	pipelineFlags
	output string  // output file (json) or base path (image formats)
	format string  // output format: json, svg, png, pdf
	width  float64 // frame width for image formats
	height float64 // frame height for image formats
	labels bool    // draw point IDs next to points
}

// animateCommand creates the animate command for sampling animations.
func (c *CLI) animateCommand() *cobra.Command {
	opts := animateOpts{format: formatJSON, width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "animate [dataset.json]",
		Short: "Sample an animation to frames",
		Long: `Sample an animation to frames.

The animate command loads a dataset, prepares the transition across the
given view path, and samples evenly spaced frames. The default json format
puts all frames in one file; the image formats write one file per frame.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runAnimate(cmd.Context(), args[0], &opts)
		},
	}

	opts.pipelineFlags.register(cmd)
	opts.pipelineFlags.registerFrames(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (json) or base path (image formats); - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json (default), svg, png, pdf")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width (image formats)")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height (image formats)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw point IDs next to points (image formats)")

	return cmd
}

// runAnimate runs the full pipeline and writes the sampled frames.
func (c *CLI) runAnimate(ctx context.Context, input string, opts *animateOpts) error {
	if opts.labels && opts.format == formatJSON {
		printWarning("--labels only applies to image formats")
	}

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

	spinner := newSpinnerWithContext(ctx, "Animating...")
	spinner.Start()
	result, err := runner.Execute(ctx, pOpts)
	if err != nil {
		spinner.StopWithError("Animation failed")
		return err
	}
	spinner.Stop()

	printStats(result.Stats.PointCount, len(result.Frames.Frames), result.CacheInfo.FramesHit)

	if opts.format == formatJSON {
		return writeFrameJSON(result.Frames, opts, input)
	}
	return writeFrameImages(result.Frames, opts, input)
}

// writeFrameJSON writes the frame set to one JSON file or stdout.
func writeFrameJSON(fs *pipeline.FrameSet, opts *animateOpts, input string) error {
	data, err := pipeline.MarshalFrames(fs)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}

	out := opts.output
	if out == "" {
		out = basePath("", input) + "_frames.json"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Wrote %d frames", len(fs.Frames))
	printFile(out)
	printNextStep("Preview in the terminal", fmt.Sprintf("%s preview %s --views %s", appName, input, opts.viewsStr))
	return nil
}

// writeFrameImages writes one image file per frame.
func writeFrameImages(fs *pipeline.FrameSet, opts *animateOpts, input string) error {
	base := basePath(opts.output, input)
	svgOpts := []anim.SVGOption{anim.WithSize(opts.width, opts.height)}
	if opts.labels {
		svgOpts = append(svgOpts, anim.WithLabels())
	}

	for i, frame := range fs.Frames {
		var data []byte
		var err error
		switch opts.format {
		case formatSVG:
			data = anim.FrameSVG(frame, svgOpts...)
		case formatPNG:
			data, err = anim.FramePNG(frame, anim.WithPNGSVGOptions(svgOpts...))
		case formatPDF:
			data, err = anim.FramePDF(frame, anim.WithPDFSVGOptions(svgOpts...))
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		path := frameFilename(base, i, opts.format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Wrote %d frames", len(fs.Frames))
	printFile(frameFilename(base, 0, opts.format))
	if len(fs.Frames) > 1 {
		printDetail("... through %s", frameFilename(base, len(fs.Frames)-1, opts.format))
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input, keeping only
// the last segment for URL inputs. If output has a format extension, it
// strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if morphio.IsURL(input) {
			input = input[strings.LastIndex(input, "/")+1:]
			if input == "" {
				input = "dataset"
			}
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// frameFilename names one frame file: base_frame_007.svg.
func frameFilename(base string, i int, format string) string {
	return fmt.Sprintf("%s_frame_%03d.%s", base, i, format)
}
