package cli

import (
	"github.com/spf13/cobra"
)

// newSaveCommand creates the "save" subcommand that saves the project and, unless told otherwise,
// generates the scene.
func newSaveCommand(opts *Options) *cobra.Command {
	var skipGenerate bool

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the project and generate the scene",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEditor(cmd, opts)
			if err != nil {
				return err
			}
			return e.SaveProject(skipGenerate)
		},
	}

	cmd.Flags().BoolVar(&skipGenerate, "skip-generate", false, "Only save the project")
	return cmd
}

// newGenerateCommand creates the "generate" subcommand that writes the final scene.
func newGenerateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the final scene and box2d.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEditor(cmd, opts)
			if err != nil {
				return err
			}
			return e.ExportFinalScene()
		},
	}
}

// newListCommand creates the "list" subcommand that prints the scene graph.
func newListCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the scene graph",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEditor(cmd, opts)
			if err != nil {
				return err
			}
			return e.Graph().Render(cmd.OutOrStdout())
		},
	}
}
