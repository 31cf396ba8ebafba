package btreemap

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Walk visits every node in pre-order, reporting its depth and keys. The
// slice passed to fn aliases node storage and must not be retained or
// modified.
func (m *Map[V]) Walk(fn func(depth int, keys [][]byte)) {
	walkNode(m.root, 0, fn)
}

func walkNode[V any](n *node[V], depth int, fn func(int, [][]byte)) {
	fn(depth, n.keys)
	for _, c := range n.children {
		walkNode(c, depth+1, fn)
	}
}

// Dump writes an indented pre-order rendering of the tree, one node per
// line. Diagnostic only; the output format is not stable.
func (m *Map[V]) Dump(w io.Writer) {
	m.Walk(func(depth int, keys [][]byte) {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = string(k)
		}
		fmt.Fprintf(w, "%s[%s]\n", strings.Repeat("  ", depth), strings.Join(parts, " "))
	})
}

// Fingerprint hashes the tree's shape and key set. Two trees with the same
// node layout and the same keys hash equal; values do not participate.
func (m *Map[V]) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	m.Walk(func(depth int, keys [][]byte) {
		binary.LittleEndian.PutUint64(buf[:], uint64(depth)<<32|uint64(len(keys)))
		h.Write(buf[:])
		for _, k := range keys {
			binary.LittleEndian.PutUint64(buf[:], uint64(len(k)))
			h.Write(buf[:])
			h.Write(k)
		}
	})
	return h.Sum64()
}
