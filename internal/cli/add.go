package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"box2d-shapes/internal/box2d"
	"box2d-shapes/internal/shapes"
)

// newAddCommand creates the "add" subcommand that places a cube or a sphere and saves the project.
func newAddCommand(opts *Options) *cobra.Command {
	var (
		name                        string
		position, rotation, scaling string
		noSave                      bool
	)

	cmd := &cobra.Command{
		Use:       "add cube|sphere",
		Short:     "Add a box2d marker shape",
		Long:      "Add a cube or a sphere marker to the project. The name is asked for when --name is not given.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(shapes.Cube), string(shapes.Sphere)},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			if _, ok := shapes.ParseKind(args[0]); !ok {
				return fmt.Errorf("unknown shape type %q (want cube or sphere)", args[0])
			}

			e, err := openEditor(cmd, opts)
			if err != nil {
				return err
			}

			cmdArgs := []string{box2d.CommandAdd, "-kind", args[0]}
			if cmd.Flags().Changed("name") {
				cmdArgs = append(cmdArgs, "-name", name)
			}
			for _, f := range []struct{ flag, value string }{
				{"-position", position},
				{"-rotation", rotation},
				{"-scaling", scaling},
			} {
				if f.value != "" {
					cmdArgs = append(cmdArgs, f.flag, f.value)
				}
			}
			if err := e.Commands().Execute(cmd.Context(), cmdArgs); err != nil {
				return err
			}

			n := e.Graph().Selected()
			if n == nil {
				logger.Info("add cancelled")
				return nil
			}
			logger.Info("shape added", "name", n.Name, "id", n.ID, "type", args[0])

			if noSave {
				return nil
			}
			return e.SaveProject(true)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Shape name (prompted when omitted)")
	cmd.Flags().StringVar(&position, "position", "", "Position as x,y,z")
	cmd.Flags().StringVar(&rotation, "rotation", "", "Rotation in radians as x,y,z")
	cmd.Flags().StringVar(&scaling, "scaling", "", "Scaling as x,y,z")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the project after adding")

	return cmd
}
