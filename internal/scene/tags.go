package scene

// Tags is a typed side-table of per-node records keyed by Handle. It lets a subsystem mark the
// nodes it owns and later filter the scene by that mark without touching the node itself.
// Entries for nodes that left the scene are ignored by Tagged and dropped by Prune.
type Tags[T any] struct {
	records map[Handle]T
}

// NewTags returns an empty side-table.
func NewTags[T any]() *Tags[T] {
	return &Tags[T]{records: make(map[Handle]T)}
}

// Set attaches v to n, replacing any previous record.
func (t *Tags[T]) Set(n *Node, v T) {
	t.records[n.handle] = v
}

// Get returns the record attached to n.
func (t *Tags[T]) Get(n *Node) (T, bool) {
	v, ok := t.records[n.handle]
	return v, ok
}

// Has reports whether n carries a record.
func (t *Tags[T]) Has(n *Node) bool {
	_, ok := t.records[n.handle]
	return ok
}

// Delete removes the record attached to n.
func (t *Tags[T]) Delete(n *Node) {
	delete(t.records, n.handle)
}

// Len returns the number of records, including stale ones not yet pruned.
func (t *Tags[T]) Len() int {
	return len(t.records)
}

// Tagged returns the nodes of s that carry a record, in scene order.
func (t *Tags[T]) Tagged(s *Scene) []*Node {
	var out []*Node
	for _, n := range s.nodes {
		if _, ok := t.records[n.handle]; ok {
			out = append(out, n)
		}
	}
	return out
}

// FirstTagged returns the first tagged node of s, or nil.
func (t *Tags[T]) FirstTagged(s *Scene) *Node {
	return s.Find(t.Has)
}

// Prune drops records of nodes no longer in s.
func (t *Tags[T]) Prune(s *Scene) {
	for h := range t.records {
		if s.indexOf(h) < 0 {
			delete(t.records, h)
		}
	}
}
