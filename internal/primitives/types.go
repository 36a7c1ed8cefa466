package primitives

import (
	"fmt"

	"box2d-shapes/internal/scene"
)

// PrimitiveDef is the YAML definition for a marker primitive (e.g. defs/cube.yaml).
// Type is the shape kind the definition serves; Geometry selects the scene primitive.
type PrimitiveDef struct {
	Type     string  `yaml:"type"`
	Geometry string  `yaml:"geometry"`
	Size     float64 `yaml:"size,omitempty"`
	Segments int     `yaml:"segments,omitempty"`
	Diameter float64 `yaml:"diameter,omitempty"`
}

// Create adds the primitive described by d to s.
func (d PrimitiveDef) Create(s *scene.Scene, name string) (*scene.Node, error) {
	switch d.Geometry {
	case scene.GeometryBox:
		return s.CreateBox(name, d.Size), nil
	case scene.GeometrySphere:
		return s.CreateSphere(name, d.Segments, d.Diameter), nil
	default:
		return nil, fmt.Errorf("primitives: unknown geometry %q for %q", d.Geometry, d.Type)
	}
}
