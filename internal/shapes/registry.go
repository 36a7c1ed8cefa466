// Package shapes creates the box2d marker shapes in the editor scene and converts them to and from
// their persisted descriptors.
package shapes

import (
	"image/color"

	"github.com/google/uuid"

	"box2d-shapes/internal/primitives"
	"box2d-shapes/internal/scene"
)

// Kind is the type of a marker shape.
type Kind string

const (
	Cube   Kind = "cube"
	Sphere Kind = "sphere"
)

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Cube, Sphere:
		return Kind(s), true
	default:
		return "", false
	}
}

// MaterialName is the name of the shared marker material.
const MaterialName = "box2d_shapes"

// MarkerColor is the colour every shape is drawn with (darkgoldenrod).
var MarkerColor = color.RGBA{R: 184, G: 134, B: 11, A: 255}

// graphStyle is the scene-graph hint stamped on every shape.
var graphStyle = scene.GraphStyle{FontStyle: "italic", Color: "darkgoldenrod"}

// Metadata is the plugin-owned record attached to each shape node.
type Metadata struct {
	ShapeType Kind
}

// Registry creates marker shapes in a scene. It owns the marker material, created once, and the
// side-table that marks which nodes are shapes.
type Registry struct {
	scene    *scene.Scene
	material *scene.Material
	tags     *scene.Tags[Metadata]
	defs     map[string]primitives.PrimitiveDef
	newID    func() string
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDGenerator replaces uuid-based ids (used by tests that need stable names).
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRegistry returns a registry bound to s and registers the marker material with it.
func NewRegistry(s *scene.Scene, opts ...Option) *Registry {
	r := &Registry{
		scene: s,
		tags:  scene.NewTags[Metadata](),
		defs:  primitives.Builtin(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.material = &scene.Material{
		Name:            MaterialName,
		DisableLighting: true,
		Wireframe:       true,
		DoNotSerialize:  true,
		Color:           MarkerColor,
	}
	s.AddMaterial(r.material)
	return r
}

// AddCube adds a unit cube shape.
func (r *Registry) AddCube(name string) *scene.Node {
	return r.Add(Cube, name)
}

// AddSphere adds a low-tessellation sphere shape.
func (r *Registry) AddSphere(name string) *scene.Node {
	return r.Add(Sphere, name)
}

// Add creates a shape of the given kind. Returns nil for an unknown kind.
func (r *Registry) Add(kind Kind, name string) *scene.Node {
	def, ok := r.defs[string(kind)]
	if !ok {
		return nil
	}
	n, err := def.Create(r.scene, name)
	if err != nil {
		return nil
	}
	return r.configure(n, kind)
}

func (r *Registry) configure(n *scene.Node, kind Kind) *scene.Node {
	n.ID = r.newID()
	n.Material = r.material
	n.DoNotSerialize = true

	style := graphStyle
	n.GraphStyle = &style
	r.tags.Set(n, Metadata{ShapeType: kind})
	return n
}

// Material returns the shared marker material.
func (r *Registry) Material() *scene.Material {
	return r.material
}

// Scene returns the scene shapes are created in.
func (r *Registry) Scene() *scene.Scene {
	return r.scene
}

// Metadata returns the shape record of n, if n is a shape.
func (r *Registry) Metadata(n *scene.Node) (Metadata, bool) {
	return r.tags.Get(n)
}

// IsShape reports whether n was created by this registry.
func (r *Registry) IsShape(n *scene.Node) bool {
	return r.tags.Has(n)
}

// Shapes returns the shape nodes still in the scene, in scene order.
func (r *Registry) Shapes() []*scene.Node {
	return r.tags.Tagged(r.scene)
}

// First returns the first shape still in the scene, or nil.
func (r *Registry) First() *scene.Node {
	return r.tags.FirstTagged(r.scene)
}

// Forget drops the shape record of n.
func (r *Registry) Forget(n *scene.Node) {
	r.tags.Delete(n)
}

// Prune drops records of shapes removed from the scene by someone else.
func (r *Registry) Prune() {
	r.tags.Prune(r.scene)
}
