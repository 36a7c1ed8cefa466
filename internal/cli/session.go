package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"box2d-shapes/internal/box2d"
	"box2d-shapes/internal/editor"
	"box2d-shapes/internal/logger"
	"box2d-shapes/internal/workspace"
)

// openEditor opens the configured workspace, loads the box2d plugin and initializes the editor,
// which loads the saved shapes.
func openEditor(cmd *cobra.Command, opts *Options) (*editor.Editor, error) {
	log := LoggerFromContext(cmd.Context())

	dir := opts.Workspace
	if dir == "" && opts.cfg != nil {
		dir = opts.cfg.Workspace
	}
	if dir == "" {
		dir = "."
	}

	consolePath := ""
	if opts.cfg != nil && opts.cfg.Log.File != "" {
		consolePath = workspace.Resolve(dir, opts.cfg.Log.File)
	}

	e := editor.New(
		editor.WithLogger(log),
		editor.WithConsole(logger.New(consolePath, log)),
	)
	if err := e.OpenWorkspace(dir); err != nil {
		return nil, fmt.Errorf("open workspace %q: %w", dir, err)
	}
	if opts.cfg != nil {
		if opts.cfg.Project.Dir != "" {
			e.SetProjectDir(workspace.Resolve(dir, opts.cfg.Project.Dir))
		}
		if opts.cfg.Scene.Dir != "" {
			e.SetSceneDir(workspace.Resolve(dir, opts.cfg.Scene.Dir))
		}
	}

	if err := e.LoadPlugin(box2d.Name, box2d.Register); err != nil {
		return nil, err
	}
	if err := e.Init(); err != nil {
		return nil, err
	}
	log.Debug("editor ready",
		"workspace", filepath.Clean(dir),
		"project", e.ProjectDir(),
		"scene", e.SceneDir(),
		"shapes", len(e.Scene().Nodes()),
	)
	return e, nil
}
