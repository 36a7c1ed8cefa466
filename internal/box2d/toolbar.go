package box2d

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"box2d-shapes/internal/commands"
	"box2d-shapes/internal/editor"
	"box2d-shapes/internal/scene"
	"box2d-shapes/internal/shapes"
)

// Command names registered in the editor's command registry.
const (
	CommandAdd      = "add"
	CommandExport   = "export"
	CommandGenerate = "generate"
)

// Toolbar holds the user actions of the plugin: add a cube or a sphere, export the project,
// generate the scene.
type Toolbar struct {
	editor *editor.Editor
	shapes *shapes.Registry
}

// NewToolbar returns the toolbar actions for r.
func NewToolbar(e *editor.Editor, r *shapes.Registry) *Toolbar {
	return &Toolbar{editor: e, shapes: r}
}

// AddShape asks the user for a name and adds a shape of the given kind. If the dialog is
// cancelled nothing is created and editor.ErrDialogCancelled is returned.
func (t *Toolbar) AddShape(ctx context.Context, kind shapes.Kind) (*scene.Node, error) {
	name, err := t.editor.Dialog().Show(ctx, "Shape Name?", "Please provide a name for the new shape")
	if err != nil {
		return nil, err
	}
	return t.AddNamedShape(kind, name)
}

// AddNamedShape adds a shape, tells the editor about it and selects it in the graph.
func (t *Toolbar) AddNamedShape(kind shapes.Kind, name string) (*scene.Node, error) {
	n := t.shapes.Add(kind, name)
	if n == nil {
		return nil, fmt.Errorf("box2d: unknown shape type %q", kind)
	}
	t.editor.AddedNode.Notify(n)
	t.editor.Graph().RefreshAndSelect(n)
	return n, nil
}

// ExportProject saves the project through the editor, which also generates the scene.
func (t *Toolbar) ExportProject() error {
	return t.editor.SaveProject(false)
}

// GenerateScene exports the final scene through the editor.
func (t *Toolbar) GenerateScene() error {
	return t.editor.ExportFinalScene()
}

// Menu returns the toolbar menu. Each item runs one of the registered commands.
func (t *Toolbar) Menu() editor.ToolbarMenu {
	return editor.ToolbarMenu{
		Label: "Box 2D",
		Icon:  "box",
		Items: []editor.MenuItem{
			{Text: "Add", Icon: "add", Children: []editor.MenuItem{
				{Text: "Cube...", Icon: "export", Command: []string{CommandAdd, "-kind", string(shapes.Cube)}},
				{Text: "Sphere...", Icon: "export", Command: []string{CommandAdd, "-kind", string(shapes.Sphere)}},
			}},
			{Divider: true},
			{Text: "Export Project...", Icon: "export", Command: []string{CommandExport}},
			{Text: "Generate Scene...", Icon: "export", Command: []string{CommandGenerate}},
		},
	}
}

// RegisterCommands binds the toolbar actions to reg.
//
//	add -kind cube|sphere [-name N] [-position x,y,z] [-rotation x,y,z] [-scaling x,y,z]
//	export
//	generate
//
// add prompts for the name unless -name is given; a cancelled prompt is not an error.
func (t *Toolbar) RegisterCommands(reg *commands.Registry) {
	fs := commands.NewFlagSet(CommandAdd)
	kind := fs.String("kind", string(shapes.Cube), "shape type (cube or sphere)")
	var (
		name                        string
		nameSet                     bool
		position, rotation, scaling *scene.Vector3
	)
	fs.Func("name", "shape name (prompted when omitted)", func(s string) error {
		name, nameSet = s, true
		return nil
	})
	fs.Func("position", "position as x,y,z", vectorFlag(&position))
	fs.Func("rotation", "rotation in radians as x,y,z", vectorFlag(&rotation))
	fs.Func("scaling", "scaling as x,y,z", vectorFlag(&scaling))

	reg.Register(CommandAdd, "add a box2d shape", fs, func(ctx context.Context, _ []string) error {
		defer func() {
			*kind = string(shapes.Cube)
			name, nameSet = "", false
			position, rotation, scaling = nil, nil, nil
		}()

		k, ok := shapes.ParseKind(*kind)
		if !ok {
			return fmt.Errorf("box2d: unknown shape type %q", *kind)
		}
		var (
			n   *scene.Node
			err error
		)
		if nameSet {
			n, err = t.AddNamedShape(k, name)
		} else {
			n, err = t.AddShape(ctx, k)
		}
		if errors.Is(err, editor.ErrDialogCancelled) {
			t.editor.Logger().Debug("box2d: add shape cancelled", "kind", k)
			return nil
		}
		if err != nil {
			return err
		}
		if position != nil {
			n.Position = *position
		}
		if rotation != nil {
			n.Rotation = *rotation
		}
		if scaling != nil {
			n.Scaling = *scaling
		}
		return nil
	})
	reg.Register(CommandExport, "save the project and generate the scene", nil, func(context.Context, []string) error {
		return t.ExportProject()
	})
	reg.Register(CommandGenerate, "generate the final scene", nil, func(context.Context, []string) error {
		return t.GenerateScene()
	})
}

// UnregisterCommands removes the toolbar commands from reg.
func (t *Toolbar) UnregisterCommands(reg *commands.Registry) {
	for _, name := range []string{CommandAdd, CommandExport, CommandGenerate} {
		reg.Unregister(name)
	}
}

func vectorFlag(dst **scene.Vector3) func(string) error {
	return func(s string) error {
		v, err := ParseVector(s)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

// ParseVector parses "x,y,z" (spaces allowed) into a vector.
func ParseVector(s string) (scene.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return scene.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var out [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return scene.Vector3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		out[i] = f
	}
	return scene.FromArray(out), nil
}
