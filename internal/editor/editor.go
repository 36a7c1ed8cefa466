// Package editor is the host scene editor that plugins run in. It owns the scene graph, the
// lifecycle signals plugins subscribe to, the scene-graph view, user notifications, the modal
// text prompt and the project save/export routines.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"box2d-shapes/internal/commands"
	"box2d-shapes/internal/logger"
	"box2d-shapes/internal/logging"
	"box2d-shapes/internal/observable"
	"box2d-shapes/internal/scene"
	"box2d-shapes/internal/workspace"
)

// ErrNoProject is returned by save/export routines when no project directory is known.
var ErrNoProject = errors.New("editor: no project directory")

// Editor is the host application. It is driven from a single goroutine.
type Editor struct {
	scene    *scene.Scene
	graph    *Graph
	console  *logger.Logger
	log      *slog.Logger
	commands *commands.Registry
	dialog   Prompter

	workspaceDir string
	ws           workspace.Workspace
	projectDir   string
	sceneDir     string

	initialized bool
	messages    []string
	plugins     []*loadedPlugin

	// EditorInitialized fires once, when Init completes.
	EditorInitialized *observable.Observable[*Editor]
	// AfterSaveProject fires after each project save with the project directory.
	AfterSaveProject *observable.Observable[string]
	// AfterGenerateScene fires after each final-scene export with the output directory.
	AfterGenerateScene *observable.Observable[string]
	// AddedNode is notified by whoever adds a node outside the editor's own routines.
	AddedNode *observable.Observable[*scene.Node]
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the slog logger used for notifications and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithConsole sets the error console.
func WithConsole(c *logger.Logger) Option {
	return func(e *Editor) {
		if c != nil {
			e.console = c
		}
	}
}

// WithPrompter sets the modal dialog implementation.
func WithPrompter(p Prompter) Option {
	return func(e *Editor) {
		if p != nil {
			e.dialog = p
		}
	}
}

// WithScene replaces the empty default scene.
func WithScene(s *scene.Scene) Option {
	return func(e *Editor) {
		if s != nil {
			e.scene = s
		}
	}
}

// New returns an editor with an empty scene and no project.
func New(opts ...Option) *Editor {
	e := &Editor{
		scene:              scene.New(),
		commands:           commands.NewRegistry(),
		dialog:             HuhPrompter{},
		ws:                 workspace.Default(),
		EditorInitialized:  observable.New[*Editor](),
		AfterSaveProject:   observable.New[string](),
		AfterGenerateScene: observable.New[string](),
		AddedNode:          observable.New[*scene.Node](),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.Discard()
	}
	if e.console == nil {
		e.console = logger.New("", e.log)
	}
	e.graph = newGraph(e.scene)
	return e
}

// OpenWorkspace reads the workspace file in dir and points the project and scene directories at
// the locations it names.
func (e *Editor) OpenWorkspace(dir string) error {
	ws, err := workspace.Load(dir)
	if err != nil {
		return err
	}
	e.workspaceDir = dir
	e.ws = ws
	e.projectDir = workspace.Resolve(dir, ws.ProjectDir)
	e.sceneDir = workspace.Resolve(dir, ws.SceneDir)
	e.log.Debug("workspace opened", "dir", dir, "project", e.projectDir, "scene", e.sceneDir)
	return nil
}

// SetProjectDir overrides the editable project directory.
func (e *Editor) SetProjectDir(dir string) {
	e.projectDir = dir
}

// SetSceneDir overrides the generated scene directory.
func (e *Editor) SetSceneDir(dir string) {
	e.sceneDir = dir
}

// ProjectDir returns the editable project directory, or "" when none is open.
func (e *Editor) ProjectDir() string {
	return e.projectDir
}

// SceneDir returns the generated scene directory, or "" when none is set.
func (e *Editor) SceneDir() string {
	return e.sceneDir
}

// WorkspaceDir returns the directory of the open workspace, or "".
func (e *Editor) WorkspaceDir() string {
	return e.workspaceDir
}

// Init restores the editor's own project nodes, hands plugins their saved preferences and fires
// EditorInitialized. Calling Init again does nothing.
func (e *Editor) Init() error {
	if e.initialized {
		return nil
	}
	if err := e.loadProjectNodes(); err != nil {
		return err
	}
	for _, p := range e.plugins {
		e.restorePreferences(p)
	}
	e.initialized = true
	e.graph.Refresh()
	e.EditorInitialized.Notify(e)
	return nil
}

// IsInitialized reports whether Init has completed.
func (e *Editor) IsInitialized() bool {
	return e.initialized
}

// Scene returns the editor scene.
func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

// Graph returns the scene-graph view.
func (e *Editor) Graph() *Graph {
	return e.graph
}

// Console returns the error console.
func (e *Editor) Console() *logger.Logger {
	return e.console
}

// Logger returns the editor's slog logger.
func (e *Editor) Logger() *slog.Logger {
	return e.log
}

// Commands returns the command registry shared by plugins and the CLI.
func (e *Editor) Commands() *commands.Registry {
	return e.commands
}

// Dialog returns the modal prompt.
func (e *Editor) Dialog() Prompter {
	return e.dialog
}

// NotifyMessage shows a transient notification to the user.
func (e *Editor) NotifyMessage(msg string) {
	e.messages = append(e.messages, msg)
	e.log.Info(msg)
}

// Messages returns the notifications shown so far.
func (e *Editor) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

func (e *Editor) errorf(format string, args ...any) {
	e.console.LogError(fmt.Sprintf(format, args...))
}
