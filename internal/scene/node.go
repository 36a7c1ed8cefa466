package scene

import "image/color"

// Geometry kinds understood by the scene and by viewers.
const (
	GeometryBox    = "box"
	GeometrySphere = "sphere"
)

// Vector3 is a 3-component vector used for position, rotation (radians) and scaling.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromArray builds a vector from a [x, y, z] array.
func FromArray(a [3]float64) Vector3 {
	return Vector3{X: a[0], Y: a[1], Z: a[2]}
}

// AsArray flattens v to [x, y, z].
func (v Vector3) AsArray() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Geometry describes the primitive a node renders. Size is used by boxes; Segments and
// Diameter by spheres.
type Geometry struct {
	Kind     string  `json:"kind"`
	Size     float64 `json:"size,omitempty"`
	Segments int     `json:"segments,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
}

// Material is a render material that may be shared by many nodes.
type Material struct {
	Name            string     `json:"name"`
	DisableLighting bool       `json:"disableLighting"`
	Wireframe       bool       `json:"wireframe"`
	DoNotSerialize  bool       `json:"-"`
	Color           color.RGBA `json:"color"`
}

// GraphStyle is a display hint for the editor's scene-graph view.
type GraphStyle struct {
	FontStyle string `json:"fontStyle,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Node is a renderable entity of the scene.
// DoNotSerialize excludes the node from the editor's own project and scene files.
type Node struct {
	handle Handle

	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Vector3  `json:"position"`
	Rotation Vector3  `json:"rotation"`
	Scaling  Vector3  `json:"scaling"`
	Geometry Geometry `json:"geometry"`

	Material       *Material   `json:"material,omitempty"`
	DoNotSerialize bool        `json:"-"`
	GraphStyle     *GraphStyle `json:"-"`
}

// Handle returns the node's stable scene handle.
func (n *Node) Handle() Handle {
	return n.handle
}
