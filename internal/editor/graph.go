package editor

import (
	"fmt"
	"io"

	"box2d-shapes/internal/scene"
)

// GraphEntry is one row of the scene-graph view.
type GraphEntry struct {
	Handle   scene.Handle
	ID       string
	Name     string
	Style    scene.GraphStyle
	Selected bool
}

// Graph is the scene-graph view. It shows the scene as of the last Refresh.
type Graph struct {
	scene     *scene.Scene
	entries   []GraphEntry
	selected  scene.Handle
	refreshes int
}

func newGraph(s *scene.Scene) *Graph {
	return &Graph{scene: s}
}

// Refresh rebuilds the view from the scene.
func (g *Graph) Refresh() {
	g.refreshes++
	nodes := g.scene.Nodes()
	g.entries = make([]GraphEntry, 0, len(nodes))
	found := false
	for _, n := range nodes {
		e := GraphEntry{Handle: n.Handle(), ID: n.ID, Name: n.Name, Selected: n.Handle() == g.selected}
		if n.GraphStyle != nil {
			e.Style = *n.GraphStyle
		}
		found = found || e.Selected
		g.entries = append(g.entries, e)
	}
	if !found {
		g.selected = 0
	}
}

// RefreshAndSelect rebuilds the view and selects n.
func (g *Graph) RefreshAndSelect(n *scene.Node) {
	if n != nil {
		g.selected = n.Handle()
	}
	g.Refresh()
}

// Entries returns the rows shown by the view.
func (g *Graph) Entries() []GraphEntry {
	out := make([]GraphEntry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Selected returns the selected node, or nil.
func (g *Graph) Selected() *scene.Node {
	if g.selected == 0 {
		return nil
	}
	return g.scene.Find(func(n *scene.Node) bool { return n.Handle() == g.selected })
}

// Refreshes returns how many times the view was rebuilt.
func (g *Graph) Refreshes() int {
	return g.refreshes
}

// Render writes the view as text, one node per line. Italic rows are wrapped in underscores and
// the style colour is shown in brackets; the selected row is marked with '>'.
func (g *Graph) Render(w io.Writer) error {
	for _, e := range g.entries {
		mark := " "
		if e.Selected {
			mark = ">"
		}
		name := e.Name
		if e.Style.FontStyle == "italic" {
			name = "_" + name + "_"
		}
		line := fmt.Sprintf("%s %s (%s)", mark, name, e.ID)
		if e.Style.Color != "" {
			line += " [" + e.Style.Color + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
