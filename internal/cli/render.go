package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ggrender"
)

func newRenderCmd(flags *sceneFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Render a scene to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = defaultOutput(args[0])
			}
			return runRender(cmd.Context(), args[0], output, flags)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG (default: scene name with .png)")
	return cmd
}

// defaultOutput replaces the scene file's extension with .png.
func defaultOutput(scene string) string {
	return strings.TrimSuffix(scene, filepath.Ext(scene)) + ".png"
}

func runRender(ctx context.Context, path, output string, flags *sceneFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := loadScene(ctx, path, flags)
	if err != nil {
		return err
	}
	r := ggrender.New(s.Options.Width, s.Options.Height)
	c := arbor.NewCanvas(r, s.Options)
	s.Mount(c)
	c.Render()
	if err := r.SavePNG(output); err != nil {
		return err
	}
	prog.done("Rendered", "scene", path, "output", output)
	return nil
}
