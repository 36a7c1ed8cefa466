package shapes

import (
	"box2d-shapes/internal/scene"
)

// Descriptor is the persisted form of one shape.
type Descriptor struct {
	Name     string     `json:"name"`
	ID       string     `json:"id"`
	Type     Kind       `json:"type"`
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
	Scaling  [3]float64 `json:"scaling"`
}

// Describe converts a shape node to its descriptor. ok is false when n is not a shape.
func (r *Registry) Describe(n *scene.Node) (d Descriptor, ok bool) {
	meta, ok := r.tags.Get(n)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{
		Name:     n.Name,
		ID:       n.ID,
		Type:     meta.ShapeType,
		Position: n.Position.AsArray(),
		Rotation: n.Rotation.AsArray(),
		Scaling:  n.Scaling.AsArray(),
	}, true
}

// DescribeAll converts every shape in the scene, in scene order.
func (r *Registry) DescribeAll() []Descriptor {
	nodes := r.Shapes()
	out := make([]Descriptor, 0, len(nodes))
	for _, n := range nodes {
		if d, ok := r.Describe(n); ok {
			out = append(out, d)
		}
	}
	return out
}

// Instantiate creates the shape described by d, keeping its saved id and transform.
// Returns nil when d.Type is not a known kind.
func (r *Registry) Instantiate(d Descriptor) *scene.Node {
	kind, ok := ParseKind(string(d.Type))
	if !ok {
		return nil
	}
	n := r.Add(kind, d.Name)
	if n == nil {
		return nil
	}
	n.ID = d.ID
	n.Position = scene.FromArray(d.Position)
	n.Rotation = scene.FromArray(d.Rotation)
	n.Scaling = scene.FromArray(d.Scaling)
	return n
}
