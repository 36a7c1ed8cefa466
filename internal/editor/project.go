package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"box2d-shapes/internal/scene"
	"box2d-shapes/internal/workspace"
)

const (
	// ProjectFileName is the editor's own project file inside the project directory.
	ProjectFileName = "scene.editorproject"
	// SceneFileName is the editor's generated scene inside the scene directory.
	SceneFileName = "scene.json"
)

// projectFile is the on-disk form of the editor's project and generated scene.
type projectFile struct {
	Nodes []scene.Node `json:"nodes"`
}

// SaveProject writes the editor's project file and the workspace, then fires AfterSaveProject.
// Unless skipGenerateScene is set, the final scene is exported as well.
func (e *Editor) SaveProject(skipGenerateScene bool) error {
	if e.projectDir == "" {
		return ErrNoProject
	}
	if err := os.MkdirAll(e.projectDir, 0755); err != nil {
		return fmt.Errorf("editor: save project: %w", err)
	}
	if err := e.writeNodes(filepath.Join(e.projectDir, ProjectFileName), true); err != nil {
		return fmt.Errorf("editor: save project: %w", err)
	}

	if e.workspaceDir != "" {
		e.collectPreferences()
		if err := workspace.Save(e.workspaceDir, e.ws); err != nil {
			return fmt.Errorf("editor: save project: %w", err)
		}
	}

	e.log.Debug("project saved", "dir", e.projectDir)
	e.AfterSaveProject.Notify(e.projectDir)

	if skipGenerateScene {
		return nil
	}
	return e.ExportFinalScene()
}

// ExportFinalScene writes the runtime scene to the scene directory and fires AfterGenerateScene.
func (e *Editor) ExportFinalScene() error {
	if e.sceneDir == "" {
		return ErrNoProject
	}
	if err := os.MkdirAll(e.sceneDir, 0755); err != nil {
		return fmt.Errorf("editor: export scene: %w", err)
	}
	if err := e.writeNodes(filepath.Join(e.sceneDir, SceneFileName), false); err != nil {
		return fmt.Errorf("editor: export scene: %w", err)
	}
	e.log.Debug("scene generated", "dir", e.sceneDir)
	e.AfterGenerateScene.Notify(e.sceneDir)
	return nil
}

func (e *Editor) writeNodes(path string, indent bool) error {
	nodes, err := e.scene.Snapshot(func(n *scene.Node) bool { return !n.DoNotSerialize })
	if err != nil {
		return err
	}
	pf := projectFile{Nodes: nodes}
	var data []byte
	if indent {
		data, err = json.MarshalIndent(pf, "", "\t")
	} else {
		data, err = json.Marshal(pf)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// loadProjectNodes recreates the serializable nodes saved in the project file, if any.
func (e *Editor) loadProjectNodes() error {
	if e.projectDir == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(e.projectDir, ProjectFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("editor: load project: %w", err)
	}
	var pf projectFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("editor: load project: %w", err)
	}
	for _, saved := range pf.Nodes {
		var n *scene.Node
		switch saved.Geometry.Kind {
		case scene.GeometryBox:
			n = e.scene.CreateBox(saved.Name, saved.Geometry.Size)
		case scene.GeometrySphere:
			n = e.scene.CreateSphere(saved.Name, saved.Geometry.Segments, saved.Geometry.Diameter)
		default:
			e.log.Debug("skipping node with unknown geometry", "name", saved.Name, "kind", saved.Geometry.Kind)
			continue
		}
		n.ID = saved.ID
		n.Position = saved.Position
		n.Rotation = saved.Rotation
		n.Scaling = saved.Scaling
		if saved.Material != nil {
			m := *saved.Material
			e.scene.AddMaterial(&m)
			n.Material = &m
		}
	}
	return nil
}

// CleanOutputDir removes every regular file in dir whose name is not in keep.
// Subdirectories are left alone. All removals are attempted; the first error is returned.
func CleanOutputDir(dir string, keep []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("editor: clean %s: %w", dir, err)
	}
	keepSet := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		keepSet[k] = struct{}{}
	}
	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := keepSet[entry.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("editor: clean %s: %w", dir, err)
		}
	}
	return firstErr
}
