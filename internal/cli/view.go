package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor/ebitenrender"
)

func newViewCmd(flags *sceneFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view [scene.toml]",
		Short: "Open a scene in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), args[0], flags)
		},
	}
}

func runView(ctx context.Context, path string, flags *sceneFlags) error {
	logger := loggerFromContext(ctx)
	s, err := loadScene(ctx, path, flags)
	if err != nil {
		return err
	}
	c := ebitenrender.NewCanvas(s.Options)
	s.Mount(c)
	logger.Info("Opening window", "scene", path)
	return ebitenrender.Run(c, ebitenrender.RunConfig{
		Title:     "arbor " + filepath.Base(path),
		Resizable: true,
	})
}
