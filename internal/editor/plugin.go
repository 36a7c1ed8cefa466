package editor

import (
	"context"
	"encoding/json"
	"fmt"
)

// Plugin is what a plugin's register function hands back to the editor.
type Plugin struct {
	// Toolbar lists the menus to add to the editor toolbar.
	Toolbar []ToolbarMenu
	// GetWorkspacePreferences returns a JSON-serializable value stored in the workspace file
	// each time the project is saved. Optional.
	GetWorkspacePreferences func() any
	// SetWorkspacePreferences receives the value saved by GetWorkspacePreferences. Optional.
	SetWorkspacePreferences func(raw json.RawMessage)
	// OnDispose is called when the plugin is unloaded. Optional.
	OnDispose func()
}

// RegisterFunc builds a plugin against the given editor.
type RegisterFunc func(e *Editor) Plugin

// ToolbarMenu is a toolbar button opening a menu.
type ToolbarMenu struct {
	Label string
	Icon  string
	Items []MenuItem
}

// MenuItem is a menu entry. Entries with Children open a submenu; Divider entries only separate.
// Command holds the args executed through the editor's command registry when clicked.
type MenuItem struct {
	Text     string
	Icon     string
	Divider  bool
	Children []MenuItem
	Command  []string
}

type loadedPlugin struct {
	name   string
	plugin Plugin
}

// LoadPlugin registers a plugin under name. Plugins loaded after Init receive their saved
// preferences immediately.
func (e *Editor) LoadPlugin(name string, register RegisterFunc) error {
	for _, p := range e.plugins {
		if p.name == name {
			return fmt.Errorf("editor: plugin %q already loaded", name)
		}
	}
	lp := &loadedPlugin{name: name, plugin: register(e)}
	e.plugins = append(e.plugins, lp)
	if e.initialized {
		e.restorePreferences(lp)
	}
	e.log.Debug("plugin loaded", "plugin", name)
	return nil
}

// UnloadPlugin disposes the plugin loaded under name.
func (e *Editor) UnloadPlugin(name string) error {
	for i, p := range e.plugins {
		if p.name != name {
			continue
		}
		if p.plugin.OnDispose != nil {
			p.plugin.OnDispose()
		}
		e.plugins = append(e.plugins[:i], e.plugins[i+1:]...)
		e.log.Debug("plugin unloaded", "plugin", name)
		return nil
	}
	return fmt.Errorf("editor: plugin %q not loaded", name)
}

// Plugins returns the names of loaded plugins in load order.
func (e *Editor) Plugins() []string {
	names := make([]string, len(e.plugins))
	for i, p := range e.plugins {
		names[i] = p.name
	}
	return names
}

// Toolbar returns the toolbar menus of all loaded plugins.
func (e *Editor) Toolbar() []ToolbarMenu {
	var out []ToolbarMenu
	for _, p := range e.plugins {
		out = append(out, p.plugin.Toolbar...)
	}
	return out
}

// Click runs the command bound to a menu item.
func (e *Editor) Click(ctx context.Context, item MenuItem) error {
	if len(item.Command) == 0 {
		return fmt.Errorf("editor: menu item %q has no command", item.Text)
	}
	return e.commands.Execute(ctx, item.Command)
}

func (e *Editor) restorePreferences(p *loadedPlugin) {
	if p.plugin.SetWorkspacePreferences == nil {
		return
	}
	if raw, ok := e.ws.PluginPreferences(p.name); ok {
		p.plugin.SetWorkspacePreferences(raw)
	}
}

func (e *Editor) collectPreferences() {
	for _, p := range e.plugins {
		if p.plugin.GetWorkspacePreferences == nil {
			continue
		}
		if err := e.ws.SetPluginPreferences(p.name, p.plugin.GetWorkspacePreferences()); err != nil {
			e.errorf("Failed to save preferences of plugin %q: %v", p.name, err)
		}
	}
}
