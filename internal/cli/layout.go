package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ggrender"
)

func newLayoutCmd(flags *sceneFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [scene.toml]",
		Short: "Lay out a scene and print the visual tree with bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}
}

func runLayout(ctx context.Context, w io.Writer, path string, flags *sceneFlags) error {
	s, err := loadScene(ctx, path, flags)
	if err != nil {
		return err
	}
	// A headless renderer is still needed so text visuals measure.
	c := arbor.NewCanvas(ggrender.New(s.Options.Width, s.Options.Height), s.Options)
	s.Mount(c)
	c.Layout()
	_, err = fmt.Fprintln(w, layoutTree(c.Visual()).String())
	return err
}
