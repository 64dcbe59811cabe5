// Package cli implements the viewmorph command-line interface.
//
// This package provides commands for animating scatter plots across view
// changes, inspecting transition parameters, previewing animations in the
// terminal, and running the HTTP service. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - animate: Sample an animation to JSON frames or per-frame images
//   - curves: Render the spline control curves for debugging
//   - cluster: Render the hierarchical clustering dendrogram
//   - params: Show a strategy's parameter schema
//   - preview: Play an animation in the terminal
//   - serve: Run the HTTP animation service
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/viewmorph/viewmorph/pkg/buildinfo"
	"github.com/viewmorph/viewmorph/pkg/cache"
	"github.com/viewmorph/viewmorph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "viewmorph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Viewmorph animates scatter plots between views",
		Long:         `Viewmorph is a CLI tool for animating scatter plots between axis configurations, moving every point along a smooth path from one view of the data to the next.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.curvesCommand())
	root.AddCommand(c.clusterCommand())
	root.AddCommand(c.paramsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
