// Package cli implements the arbor command-line interface.
//
// Commands load a TOML scene (see internal/scenefile) and then either print
// the laid-out visual tree, render it to a PNG, or open it in a window.
// --verbose (-v) switches both the command logger and the arbor core logger
// to debug level.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/internal/scenefile"
)

var version = "dev"

// SetVersion sets the string printed by --version.
func SetVersion(v string) {
	version = v
}

// sceneFlags are the persistent flags that shape how a scene is loaded.
type sceneFlags struct {
	config        string
	width, height int
	debugOutlines bool
	debugMode     bool
}

// Execute runs the arbor CLI.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool
	flags := &sceneFlags{}

	root := &cobra.Command{
		Use:          "arbor",
		Short:        "Lay out, render and view arbor scenes",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			arbor.SetLogger(logger.WithPrefix("arbor"))
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&flags.config, "config", "", "options file (TOML) replacing the scene's [options]")
	pf.IntVar(&flags.width, "width", 0, "override canvas width")
	pf.IntVar(&flags.height, "height", 0, "override canvas height")
	pf.BoolVar(&flags.debugOutlines, "debug-outlines", false, "draw margin, bounds and padding outlines")
	pf.BoolVar(&flags.debugMode, "debug", false, "enable debug checks and frame statistics")

	root.AddCommand(newLayoutCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newViewCmd(flags))
	return root
}

// loadScene reads the scene at path and applies --config and flag overrides
// to its options.
func loadScene(ctx context.Context, path string, f *sceneFlags) (*scenefile.Scene, error) {
	logger := loggerFromContext(ctx)
	s, err := scenefile.Load(path)
	if err != nil {
		return nil, err
	}
	if f.config != "" {
		opts, err := arbor.LoadOptions(f.config)
		if err != nil {
			return nil, err
		}
		s.Options = opts
		logger.Debug("options loaded", "path", f.config)
	}
	if f.width > 0 {
		s.Options.Width = f.width
	}
	if f.height > 0 {
		s.Options.Height = f.height
	}
	if f.debugOutlines {
		s.Options.DebugOutlines = true
	}
	if f.debugMode {
		s.Options.DebugMode = true
	}
	if err := s.Options.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// log_level governs the core logger unless --verbose asked for more.
	if lvl, err := s.Options.Level(); err == nil && logger.GetLevel() > charmlog.DebugLevel {
		arbor.Logger().SetLevel(lvl)
	}
	logger.Debug("scene loaded", "path", path, "width", s.Options.Width, "height", s.Options.Height)
	return s, nil
}
