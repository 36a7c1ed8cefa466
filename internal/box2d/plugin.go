// Package box2d is the editor plugin that places box2d marker shapes in the scene and keeps their
// descriptors on disk next to the project.
package box2d

import (
	"encoding/json"

	"box2d-shapes/internal/editor"
	"box2d-shapes/internal/shapes"
)

// Name is the plugin name used for the editor and the workspace preferences.
const Name = "box2d"

// Preferences are the plugin's workspace preferences. None are defined yet.
type Preferences struct{}

// Instance is one loaded copy of the plugin.
type Instance struct {
	Shapes   *shapes.Registry
	Exporter *Exporter
	Toolbar  *Toolbar

	editor *editor.Editor
	prefs  Preferences
}

// Attach builds the plugin against e: it creates the shape registry, starts the exporter and
// registers the toolbar commands.
func Attach(e *editor.Editor, opts ...shapes.Option) *Instance {
	reg := shapes.NewRegistry(e.Scene(), opts...)
	inst := &Instance{
		Shapes:   reg,
		Exporter: NewExporter(e, reg),
		Toolbar:  NewToolbar(e, reg),
		editor:   e,
	}
	inst.Exporter.Init()
	inst.Toolbar.RegisterCommands(e.Commands())
	return inst
}

// Plugin returns the editor-facing description of the instance.
func (i *Instance) Plugin() editor.Plugin {
	return editor.Plugin{
		Toolbar: []editor.ToolbarMenu{i.Toolbar.Menu()},
		GetWorkspacePreferences: func() any {
			return i.prefs
		},
		SetWorkspacePreferences: func(raw json.RawMessage) {
			if err := json.Unmarshal(raw, &i.prefs); err != nil {
				i.editor.Logger().Debug("box2d: ignoring workspace preferences", "err", err)
			}
		},
		OnDispose: func() {
			i.Exporter.Dispose()
			i.Toolbar.UnregisterCommands(i.editor.Commands())
		},
	}
}

// Register is the editor.RegisterFunc of the plugin.
func Register(e *editor.Editor) editor.Plugin {
	return Attach(e).Plugin()
}

// RegisterWith returns a RegisterFunc that passes opts to the shape registry.
func RegisterWith(opts ...shapes.Option) editor.RegisterFunc {
	return func(e *editor.Editor) editor.Plugin {
		return Attach(e, opts...).Plugin()
	}
}
