package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the workspace file stored at the root of a workspace directory.
const FileName = "workspace.editorworkspace"

// Workspace holds editor-only settings of one workspace: where the editable project and the
// generated scene live, and each plugin's saved preferences. Persisted across runs.
type Workspace struct {
	ProjectDir string                     `json:"projectDir"`
	SceneDir   string                     `json:"sceneDir"`
	Plugins    map[string]json.RawMessage `json:"plugins,omitempty"`
}

// Default returns the workspace layout used when no file exists.
func Default() Workspace {
	return Workspace{
		ProjectDir: "project",
		SceneDir:   "scene",
	}
}

// Path returns the workspace file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the workspace file in dir. A missing file yields Default() and no error;
// a file that exists but does not parse is an error.
func Load(dir string) (Workspace, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("workspace: %w", err)
	}
	w := Default()
	if err := json.Unmarshal(data, &w); err != nil {
		return Default(), fmt.Errorf("workspace: parse %s: %w", FileName, err)
	}
	// Save indents the whole file, preferences included; plugins get them back compact.
	for name, raw := range w.Plugins {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return Default(), fmt.Errorf("workspace: preferences of %s: %w", name, err)
		}
		w.Plugins[name] = buf.Bytes()
	}
	return w, nil
}

// Save writes w to dir, creating dir if needed.
func Save(dir string, w Workspace) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	data, err := json.MarshalIndent(w, "", "\t")
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	return os.WriteFile(Path(dir), append(data, '\n'), 0644)
}

// Resolve returns p joined to dir unless p is already absolute.
func Resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// SetPluginPreferences stores v (marshalled to JSON) under the plugin name.
func (w *Workspace) SetPluginPreferences(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("workspace: preferences of %s: %w", name, err)
	}
	if w.Plugins == nil {
		w.Plugins = make(map[string]json.RawMessage)
	}
	w.Plugins[name] = data
	return nil
}

// PluginPreferences returns the raw preferences saved for a plugin.
func (w *Workspace) PluginPreferences(name string) (json.RawMessage, bool) {
	raw, ok := w.Plugins[name]
	return raw, ok
}
