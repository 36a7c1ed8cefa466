package box2d

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flytam/filenamify"

	"box2d-shapes/internal/editor"
	"box2d-shapes/internal/observable"
	"box2d-shapes/internal/scene"
	"box2d-shapes/internal/shapes"
)

const (
	// DirName is the plugin's directory inside the project directory.
	DirName = "box2d"
	// ManifestFileName lists the descriptor files of the project, one shape per file.
	ManifestFileName = "project.box2d.json"
	// GeneratedFileName is the combined descriptor array written next to the generated scene.
	GeneratedFileName = "box2d.json"
)

// Exporter keeps the on-disk shape descriptors in sync with the shapes of the scene. It loads them
// when the editor is initialized, saves them after each project save and writes the combined
// runtime file after each scene generation.
type Exporter struct {
	editor *editor.Editor
	shapes *shapes.Registry

	onInitialized *observable.Observer[*editor.Editor]
	onSaved       *observable.Observer[string]
	onGenerated   *observable.Observer[string]
}

// NewExporter returns an exporter for the shapes of r. Call Init to subscribe it.
func NewExporter(e *editor.Editor, r *shapes.Registry) *Exporter {
	return &Exporter{editor: e, shapes: r}
}

// Init loads the project (now if the editor is already initialized, else once it is) and
// subscribes Save and Generate to the editor's save and generate signals.
func (x *Exporter) Init() {
	if x.editor.IsInitialized() {
		x.report(x.Load(x.editor.ProjectDir()))
	} else {
		x.onInitialized = x.editor.EditorInitialized.AddOnce(func(e *editor.Editor) {
			x.onInitialized = nil
			x.report(x.Load(e.ProjectDir()))
		})
	}
	x.onSaved = x.editor.AfterSaveProject.Add(func(dir string) {
		x.report(x.Save(dir))
	})
	x.onGenerated = x.editor.AfterGenerateScene.Add(func(dir string) {
		x.report(x.Generate(dir))
	})
}

// Dispose removes every shape and the marker material from the scene and unsubscribes from the
// editor. Nothing is written.
func (x *Exporter) Dispose() {
	for {
		n := x.shapes.First()
		if n == nil {
			break
		}
		x.editor.Scene().Remove(n)
		x.shapes.Forget(n)
	}
	x.shapes.Prune()
	x.editor.Scene().RemoveMaterial(x.shapes.Material())

	if x.onInitialized != nil {
		x.editor.EditorInitialized.Remove(x.onInitialized)
		x.onInitialized = nil
	}
	if x.onSaved != nil {
		x.editor.AfterSaveProject.Remove(x.onSaved)
		x.onSaved = nil
	}
	if x.onGenerated != nil {
		x.editor.AfterGenerateScene.Remove(x.onGenerated)
		x.onGenerated = nil
	}

	x.editor.Graph().Refresh()
}

// Load recreates the shapes saved in projectDir. A missing project directory or plugin directory
// is not an error. A missing or corrupt manifest or descriptor file aborts the load before any
// shape is created. Descriptors of unknown type are skipped.
func (x *Exporter) Load(projectDir string) error {
	if projectDir == "" {
		return nil
	}
	dir := filepath.Join(projectDir, DirName)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("box2d: load: %w", err)
	}

	var files []string
	if err := readJSON(filepath.Join(dir, ManifestFileName), &files); err != nil {
		return fmt.Errorf("box2d: read manifest: %w", err)
	}
	descriptors := make([]shapes.Descriptor, 0, len(files))
	seenFiles := make(map[string]bool, len(files))
	seenIDs := make(map[string]bool, len(files))
	for _, name := range files {
		base := filepath.Base(name)
		if seenFiles[base] {
			x.editor.Logger().Debug("box2d: skipping repeated manifest entry", "file", name)
			continue
		}
		seenFiles[base] = true

		var d shapes.Descriptor
		if err := readJSON(filepath.Join(dir, base), &d); err != nil {
			return fmt.Errorf("box2d: read shape %q: %w", name, err)
		}
		if seenIDs[d.ID] {
			x.editor.Logger().Debug("box2d: skipping shape with repeated id", "file", name, "id", d.ID)
			continue
		}
		seenIDs[d.ID] = true
		descriptors = append(descriptors, d)
	}

	for _, d := range descriptors {
		n := x.shapes.Instantiate(d)
		if n == nil {
			x.editor.Logger().Debug("box2d: skipping shape of unknown type", "id", d.ID, "type", d.Type)
			continue
		}
		x.editor.AddedNode.Notify(n)
	}

	x.editor.NotifyMessage("Box2D configuration successfully loaded")
	x.editor.Graph().Refresh()
	return nil
}

// Save writes one descriptor file per shape into the plugin directory of projectDir, rewrites the
// manifest and removes any other file from the directory. A shape whose file cannot be written is
// reported on the console and left out of the manifest.
func (x *Exporter) Save(projectDir string) error {
	dir := filepath.Join(projectDir, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("box2d: save: %w", err)
	}

	saved := make([]string, 0)
	written := make(map[string]bool)
	for _, n := range x.shapes.Shapes() {
		d, ok := x.shapes.Describe(n)
		if !ok {
			continue
		}
		name := ShapeFileName(n)
		if written[name] {
			x.editor.Console().LogError(fmt.Sprintf("Failed to save box2d shape at path: %q (file name already used by another shape)", name))
			continue
		}
		if err := writeJSON(filepath.Join(dir, name), d, true); err != nil {
			x.editor.Console().LogError(fmt.Sprintf("Failed to save box2d shape at path: %q", name))
			x.editor.Logger().Debug("box2d: write shape failed", "file", name, "err", err)
			continue
		}
		saved = append(saved, name)
		written[name] = true
	}

	if err := writeJSON(filepath.Join(dir, ManifestFileName), saved, true); err != nil {
		return fmt.Errorf("box2d: write manifest: %w", err)
	}
	if err := editor.CleanOutputDir(dir, append(saved, ManifestFileName)); err != nil {
		x.editor.Console().LogError(fmt.Sprintf("Failed to clean box2d directory: %v", err))
	}

	x.editor.NotifyMessage("Box2D configuration successfully saved.")
	return nil
}

// Generate writes every shape descriptor as one JSON array to sceneDir.
func (x *Exporter) Generate(sceneDir string) error {
	if err := os.MkdirAll(sceneDir, 0755); err != nil {
		return fmt.Errorf("box2d: generate: %w", err)
	}
	if err := writeJSON(filepath.Join(sceneDir, GeneratedFileName), x.shapes.DescribeAll(), false); err != nil {
		return fmt.Errorf("box2d: generate: %w", err)
	}
	x.editor.NotifyMessage("Box2D configuration successfully generated.")
	return nil
}

func (x *Exporter) report(err error) {
	if err != nil {
		x.editor.Console().LogError(err.Error())
	}
}

// ShapeFileName returns the descriptor file name of a shape: its display name made safe for the
// file system, a dash, its id with path separators removed, and the .json extension.
func ShapeFileName(n *scene.Node) string {
	return sanitize(n.Name) + "-" + idSeparators.Replace(n.ID) + ".json"
}

var idSeparators = strings.NewReplacer("/", "", "\\", "")

func sanitize(s string) string {
	safe, err := filenamify.Filenamify(s, filenamify.Options{})
	if err != nil || safe == "" {
		return ""
	}
	return filepath.Base(safe)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeJSON writes v followed by a newline; indented output uses tabs.
func writeJSON(path string, v any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "\t")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
