package btreemap

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpRendersEveryNode(t *testing.T) {
	t.Parallel()

	m, err := New[string](2)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, m.Set([]byte(fmt.Sprintf("%02d", i)), "v"))
	}

	var sb strings.Builder
	m.Dump(&sb)
	out := sb.String()

	for i := 0; i < 10; i++ {
		assert.Contains(t, out, fmt.Sprintf("%02d", i))
	}
	// Multi-level tree renders indented child lines
	assert.Greater(t, m.Height(), 1)
	assert.Contains(t, out, "\n  [")
}

func TestWalkReportsDepths(t *testing.T) {
	t.Parallel()

	m, err := New[string](2)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		require.NoError(t, m.Set([]byte(fmt.Sprintf("%02d", i)), "v"))
	}

	maxDepth := 0
	keyCount := 0
	m.Walk(func(depth int, keys [][]byte) {
		if depth > maxDepth {
			maxDepth = depth
		}
		keyCount += len(keys)
	})
	assert.Equal(t, m.Height()-1, maxDepth)
	assert.Equal(t, 30, keyCount)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	m, err := New[string](3)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, m.Set([]byte(fmt.Sprintf("%02d", i)), "old"))
	}

	fp := m.Fingerprint()
	assert.Equal(t, fp, m.Fingerprint(), "fingerprint must be deterministic")

	// Values do not participate in the fingerprint
	require.NoError(t, m.Set([]byte("05"), "new"))
	assert.Equal(t, fp, m.Fingerprint())

	// Structural changes do
	require.NoError(t, m.Set([]byte("99"), "v"))
	assert.NotEqual(t, fp, m.Fingerprint())

	require.NoError(t, m.Delete([]byte("99")))
	// Shape may differ from the original after a delete, but deleting an
	// absent key never changes it again.
	fp = m.Fingerprint()
	require.NoError(t, m.Delete([]byte("99")))
	assert.Equal(t, fp, m.Fingerprint())
}
