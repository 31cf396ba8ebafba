package btreemap

import (
	"bytes"
	"sort"
)

// Linear scan beats binary search on small nodes.
const searchThreshold = 32

// node is a B-tree node. Leaves hold no children; internal nodes hold
// exactly len(keys)+1 of them, and each node owns its children exclusively.
type node[V any] struct {
	isLeaf   bool
	keys     [][]byte
	values   []V
	children []*node[V]
}

func newNode[V any](isLeaf bool) *node[V] {
	return &node[V]{isLeaf: isLeaf}
}

// childIndex returns the smallest index i with key <= keys[i], which is both
// the position key would occupy in this node and the index of the child
// subtree covering it.
func (n *node[V]) childIndex(key []byte) int {
	if len(n.keys) < searchThreshold {
		i := 0
		for i < len(n.keys) && bytes.Compare(key, n.keys[i]) > 0 {
			i++
		}
		return i
	}
	return sort.Search(len(n.keys), func(i int) bool {
		return bytes.Compare(key, n.keys[i]) <= 0
	})
}

// insertAt inserts value at index, shifting subsequent elements forward.
func insertAt[T any](s []T, index int, value T) []T {
	return append(s[:index], append([]T{value}, s[index:]...)...)
}

// removeAt removes the element at index, shifting subsequent elements back.
func removeAt[T any](s []T, index int) []T {
	return append(s[:index], s[index+1:]...)
}
