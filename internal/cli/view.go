package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"box2d-shapes/internal/graphics"
	"box2d-shapes/internal/shapes"
)

// newViewCommand creates the "view" subcommand that shows the project in a raylib window.
func newViewCommand(opts *Options) *cobra.Command {
	var width, height int32

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the project shapes as wireframes in a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEditor(cmd, opts)
			if err != nil {
				return err
			}

			hud := graphics.NewHUD(func() []string {
				count := 0
				for _, n := range e.Scene().Nodes() {
					if n.Material != nil && n.Material.Name == shapes.MaterialName {
						count++
					}
				}
				return []string{
					fmt.Sprintf("Shapes: %d", count),
					fmt.Sprintf("Nodes: %d", e.Scene().Len()),
				}
			})
			v := graphics.NewViewer(e.Scene(), hud)
			graphics.Run(graphics.Window{
				Title:  "box2d shapes - " + e.ProjectDir(),
				Width:  width,
				Height: height,
			}, v.Update, v.Draw)
			return nil
		},
	}

	cmd.Flags().Int32Var(&width, "width", 1280, "Window width")
	cmd.Flags().Int32Var(&height, "height", 720, "Window height")
	return cmd
}
