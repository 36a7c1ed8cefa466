package scene

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// Handle is the stable identity of a node inside one Scene. Unlike Node.ID, which callers may
// overwrite (e.g. when restoring a saved id), a handle never changes for the life of the node.
type Handle uint64

// Scene holds the nodes of the editor scene in creation order. The scene owns node lifecycle;
// callers that attach side data to nodes should key it by Handle (see Tags).
type Scene struct {
	nodes     []*Node
	next      Handle
	materials []*Material
	onRemove  []func(*Node)
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// CreateBox adds a box of the given edge size. Position is the origin, scaling is (1,1,1).
func (s *Scene) CreateBox(name string, size float64) *Node {
	return s.add(name, Geometry{Kind: GeometryBox, Size: size})
}

// CreateSphere adds a sphere with the given tessellation (segments) and diameter.
func (s *Scene) CreateSphere(name string, segments int, diameter float64) *Node {
	return s.add(name, Geometry{Kind: GeometrySphere, Segments: segments, Diameter: diameter})
}

func (s *Scene) add(name string, geom Geometry) *Node {
	s.next++
	n := &Node{
		handle:   s.next,
		ID:       fmt.Sprintf("node-%d", s.next),
		Name:     name,
		Scaling:  Vector3{1, 1, 1},
		Geometry: geom,
	}
	s.nodes = append(s.nodes, n)
	return n
}

// AddMaterial registers a material with the scene so viewers can enumerate it.
func (s *Scene) AddMaterial(m *Material) {
	s.materials = append(s.materials, m)
}

// RemoveMaterial unregisters m. Returns false when m was not registered.
func (s *Scene) RemoveMaterial(m *Material) bool {
	for i, cur := range s.materials {
		if cur == m {
			s.materials = append(s.materials[:i], s.materials[i+1:]...)
			return true
		}
	}
	return false
}

// Materials returns a copy of the registered materials.
func (s *Scene) Materials() []*Material {
	out := make([]*Material, len(s.materials))
	copy(out, s.materials)
	return out
}

// Nodes returns a copy of the node list in creation order. Safe to iterate while removing.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Find returns the first node matching pred, or nil.
func (s *Scene) Find(pred func(*Node) bool) *Node {
	for _, n := range s.nodes {
		if pred(n) {
			return n
		}
	}
	return nil
}

// NodeByID returns the first node whose ID equals id, or nil.
func (s *Scene) NodeByID(id string) *Node {
	return s.Find(func(n *Node) bool { return n.ID == id })
}

// Contains reports whether n is still part of the scene.
func (s *Scene) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	return s.indexOf(n.handle) >= 0
}

// Remove disposes n. Returns false when the node was not in the scene.
// Removal listeners run after the node has left the node list.
func (s *Scene) Remove(n *Node) bool {
	if n == nil {
		return false
	}
	i := s.indexOf(n.handle)
	if i < 0 {
		return false
	}
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	for _, fn := range s.onRemove {
		fn(n)
	}
	return true
}

// OnRemove registers fn to run each time a node is removed.
func (s *Scene) OnRemove(fn func(*Node)) {
	s.onRemove = append(s.onRemove, fn)
}

func (s *Scene) indexOf(h Handle) int {
	for i, n := range s.nodes {
		if n.handle == h {
			return i
		}
	}
	return -1
}

// Snapshot returns deep copies of the nodes accepted by keep (all nodes when keep is nil).
// The copies share nothing with the scene, so exporters can serialize them freely.
func (s *Scene) Snapshot(keep func(*Node) bool) ([]Node, error) {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if keep != nil && !keep(n) {
			continue
		}
		var c Node
		if err := copier.CopyWithOption(&c, n, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("scene: snapshot %q: %w", n.Name, err)
		}
		c.handle = n.handle
		out = append(out, c)
	}
	return out, nil
}
