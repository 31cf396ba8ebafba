package btreemap

import "bytes"

// Map is an in-memory ordered key/value container backed by a B-tree of
// minimum degree t. Keys are byte slices ordered by bytes.Compare; values
// may be any type.
//
// A Map is not safe for concurrent use. Callers that share one across
// goroutines must serialize every operation externally.
type Map[V any] struct {
	degree int
	root   *node[V]
	length int
}

// New creates an empty Map with minimum degree t. Every node holds at most
// 2t-1 keys and, the root excepted, at least t-1. Degrees below 2 are
// rejected with ErrInvalidDegree.
func New[V any](degree int) (*Map[V], error) {
	if degree < 2 {
		return nil, ErrInvalidDegree
	}
	return &Map[V]{
		degree: degree,
		root:   newNode[V](true),
	}, nil
}

// maxKeys is the key capacity of a node.
func (m *Map[V]) maxKeys() int { return 2*m.degree - 1 }

// Len returns the number of entries stored.
func (m *Map[V]) Len() int { return m.length }

// Height returns the number of node levels; a tree that is a single leaf
// has height 1. Every leaf sits at the same depth, so the leftmost path
// suffices.
func (m *Map[V]) Height() int {
	h := 1
	for n := m.root; !n.isLeaf; n = n.children[0] {
		h++
	}
	return h
}

// Get returns the value stored under key. Absent keys report
// ErrKeyNotFound; an empty key reports ErrKeyEmpty.
func (m *Map[V]) Get(key []byte) (V, error) {
	var zero V
	if len(key) == 0 {
		return zero, ErrKeyEmpty
	}
	n, idx := m.lookup(key)
	if n == nil {
		return zero, ErrKeyNotFound
	}
	return n.values[idx], nil
}

// lookup descends from the root and returns the node and index holding key,
// or (nil, -1) when absent. It never mutates the tree.
func (m *Map[V]) lookup(key []byte) (*node[V], int) {
	for n := m.root; ; {
		i := n.childIndex(key)
		if i < len(n.keys) && bytes.Equal(key, n.keys[i]) {
			return n, i
		}
		if n.isLeaf {
			return nil, -1
		}
		n = n.children[i]
	}
}

// Set stores value under key. If the key is already present its value is
// overwritten in place and the tree shape does not change.
func (m *Map[V]) Set(key []byte, value V) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}

	// Resolve overwrites with a read-only descent first: the split pass
	// below would otherwise restructure the tree for a key it already
	// holds.
	if n, idx := m.lookup(key); n != nil {
		n.values[idx] = value
		return nil
	}

	// A full root splits under a fresh root before the descent. This is
	// the only way the tree gains a level.
	if len(m.root.keys) == m.maxKeys() {
		oldRoot := m.root
		m.root = newNode[V](false)
		m.root.children = append(m.root.children, oldRoot)
		m.splitChild(m.root, 0)
	}

	m.insertNonFull(m.root, key, value)
	m.length++
	return nil
}

// insertNonFull inserts key into the subtree rooted at n, which is known to
// have room. Full children are split before descending, so the recursion
// never needs a fix-up pass on the way back.
func (m *Map[V]) insertNonFull(n *node[V], key []byte, value V) {
	i := n.childIndex(key)

	if n.isLeaf {
		n.keys = insertAt(n.keys, i, key)
		n.values = insertAt(n.values, i, value)
		return
	}

	if len(n.children[i].keys) == m.maxKeys() {
		m.splitChild(n, i)
		// The separator promoted by the split may precede the key; re-aim.
		if bytes.Compare(key, n.keys[i]) > 0 {
			i++
		}
	}
	m.insertNonFull(n.children[i], key, value)
}

// splitChild splits the full child at idx of parent. The child keeps keys
// [0, t-1), the middle key moves up into parent at idx, and a new right
// sibling takes keys [t, 2t-1) along with the upper half of the children.
func (m *Map[V]) splitChild(parent *node[V], idx int) {
	t := m.degree
	child := parent.children[idx]

	next := newNode[V](child.isLeaf)
	next.keys = append(next.keys, child.keys[t:]...)
	next.values = append(next.values, child.values[t:]...)
	if !child.isLeaf {
		next.children = append(next.children, child.children[t:]...)
		child.children = child.children[:t]
	}

	midKey, midVal := child.keys[t-1], child.values[t-1]
	child.keys = child.keys[:t-1]
	child.values = child.values[:t-1]

	parent.keys = insertAt(parent.keys, idx, midKey)
	parent.values = insertAt(parent.values, idx, midVal)
	parent.children = insertAt(parent.children, idx+1, next)
}

// Delete removes key and its value. Deleting a key that is not present,
// including from an empty tree, is a no-op.
func (m *Map[V]) Delete(key []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}

	// An absent key must leave the tree untouched, so resolve it before
	// the descent below starts rebalancing nodes along its path.
	if n, _ := m.lookup(key); n == nil {
		return nil
	}

	m.deleteFromNode(m.root, key)
	m.length--

	// Collapse an emptied internal root onto its sole child. This is the
	// only way the tree loses a level.
	if len(m.root.keys) == 0 && !m.root.isLeaf {
		m.root = m.root.children[0]
	}
	return nil
}

// deleteFromNode removes key from the subtree rooted at n. Except at the
// root, n holds at least t keys on entry, so losing one cannot underflow it.
func (m *Map[V]) deleteFromNode(n *node[V], key []byte) {
	idx := n.childIndex(key)

	if idx < len(n.keys) && bytes.Equal(key, n.keys[idx]) {
		if n.isLeaf {
			n.keys = removeAt(n.keys, idx)
			n.values = removeAt(n.values, idx)
			return
		}
		m.deleteFromInternal(n, key, idx)
		return
	}

	if n.isLeaf {
		// Not present; Delete already filtered this case.
		return
	}

	// The child we descend into must be able to lose a key. Filling may
	// merge it with a sibling and move it, so follow the index fill
	// reports.
	if len(n.children[idx].keys) < m.degree {
		idx = m.fill(n, idx)
	}
	m.deleteFromNode(n.children[idx], key)
}

// deleteFromInternal removes the key at idx of internal node n. Internal
// keys are never removed directly: the key is replaced by its predecessor
// or successor, which is then deleted from the child it came from, or the
// two adjacent children are merged when neither can spare a key.
func (m *Map[V]) deleteFromInternal(n *node[V], key []byte, idx int) {
	left, right := n.children[idx], n.children[idx+1]

	switch {
	case len(left.keys) >= m.degree:
		predKey, predVal := findPredecessor(left)
		n.keys[idx] = predKey
		n.values[idx] = predVal
		m.deleteFromNode(left, predKey)
	case len(right.keys) >= m.degree:
		succKey, succVal := findSuccessor(right)
		n.keys[idx] = succKey
		n.values[idx] = succVal
		m.deleteFromNode(right, succKey)
	default:
		m.mergeChildren(n, idx)
		m.deleteFromNode(left, key)
	}
}

// findPredecessor returns the rightmost key/value of the subtree rooted at n.
func findPredecessor[V any](n *node[V]) ([]byte, V) {
	for !n.isLeaf {
		n = n.children[len(n.children)-1]
	}
	last := len(n.keys) - 1
	return n.keys[last], n.values[last]
}

// findSuccessor returns the leftmost key/value of the subtree rooted at n.
func findSuccessor[V any](n *node[V]) ([]byte, V) {
	for !n.isLeaf {
		n = n.children[0]
	}
	return n.keys[0], n.values[0]
}

// fill brings the child at idx up to at least t keys, borrowing from a
// sibling with spare capacity or merging with one. It returns the index of
// the child now covering the original child's key range: merging a last
// child into its left sibling shifts it to idx-1, every other case leaves
// it at idx.
func (m *Map[V]) fill(parent *node[V], idx int) int {
	if idx > 0 && len(parent.children[idx-1].keys) >= m.degree {
		m.borrowFromLeft(parent, idx)
		return idx
	}
	if idx < len(parent.keys) && len(parent.children[idx+1].keys) >= m.degree {
		m.borrowFromRight(parent, idx)
		return idx
	}
	if idx < len(parent.keys) {
		m.mergeChildren(parent, idx)
		return idx
	}
	m.mergeChildren(parent, idx-1)
	return idx - 1
}

// borrowFromLeft moves the parent separator at idx-1 down to the front of
// the child at idx and the left sibling's last key up into its place. For
// internal nodes the sibling's last child comes along.
func (m *Map[V]) borrowFromLeft(parent *node[V], idx int) {
	child := parent.children[idx]
	sibling := parent.children[idx-1]

	child.keys = insertAt(child.keys, 0, parent.keys[idx-1])
	child.values = insertAt(child.values, 0, parent.values[idx-1])
	if !child.isLeaf {
		last := len(sibling.children) - 1
		child.children = insertAt(child.children, 0, sibling.children[last])
		sibling.children = sibling.children[:last]
	}

	last := len(sibling.keys) - 1
	parent.keys[idx-1] = sibling.keys[last]
	parent.values[idx-1] = sibling.values[last]
	sibling.keys = sibling.keys[:last]
	sibling.values = sibling.values[:last]
}

// borrowFromRight is the mirror image: the separator at idx moves down to
// the end of the child and the right sibling's first key moves up.
func (m *Map[V]) borrowFromRight(parent *node[V], idx int) {
	child := parent.children[idx]
	sibling := parent.children[idx+1]

	child.keys = append(child.keys, parent.keys[idx])
	child.values = append(child.values, parent.values[idx])
	if !child.isLeaf {
		child.children = append(child.children, sibling.children[0])
		sibling.children = removeAt(sibling.children, 0)
	}

	parent.keys[idx] = sibling.keys[0]
	parent.values[idx] = sibling.values[0]
	sibling.keys = removeAt(sibling.keys, 0)
	sibling.values = removeAt(sibling.values, 0)
}

// mergeChildren folds the separator at idx and the child at idx+1 into the
// child at idx, leaving it with exactly 2t-2 keys. The absorbed sibling is
// dropped from the parent and becomes unreferenced.
func (m *Map[V]) mergeChildren(parent *node[V], idx int) {
	child := parent.children[idx]
	sibling := parent.children[idx+1]

	child.keys = append(child.keys, parent.keys[idx])
	child.values = append(child.values, parent.values[idx])
	child.keys = append(child.keys, sibling.keys...)
	child.values = append(child.values, sibling.values...)
	if !child.isLeaf {
		child.children = append(child.children, sibling.children...)
	}

	parent.keys = removeAt(parent.keys, idx)
	parent.values = removeAt(parent.values, idx)
	parent.children = removeAt(parent.children, idx+1)
}
