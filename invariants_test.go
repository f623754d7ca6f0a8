package mcl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// orderedHash is a stub hasher whose digest is the first 8 bytes written,
// zero padded. Keys keep the ordering of the raw values, so structural tests
// can place nodes deliberately, and two values sharing a first-8-byte prefix
// collide on demand.
type orderedHash struct {
	buf []byte
}

func (h *orderedHash) Write(p []byte) (int, error) {
	h.buf = append(h.buf, p...)
	return len(p), nil
}

func (h *orderedHash) Sum(b []byte) []byte {
	d := make([]byte, 8)
	copy(d, h.buf)
	return append(b, d...)
}

func (h *orderedHash) Reset()         { h.buf = h.buf[:0] }
func (h *orderedHash) Size() int      { return 8 }
func (h *orderedHash) BlockSize() int { return 1 }

// orderedValue builds a value whose orderedHash key is b followed by zeros.
func orderedValue(b byte) []byte {
	return []byte{b}
}

// orderedKey is the orderedHash key for orderedValue(b).
func orderedKey(b byte) []byte {
	return []byte{b, 0, 0, 0, 0, 0, 0, 0}
}

// layers returns every layer's nodes top to bottom, left to right.
func (l *List) layers() [][]Ref {
	var out [][]Ref
	for head := l.root; head != NoRef; head = l.arena[head].down {
		var layer []Ref
		for cur := head; cur != NoRef; cur = l.arena[cur].right {
			layer = append(layer, cur)
		}
		out = append(out, layer)
	}
	return out
}

// layerFirstKeyBytes projects a layer's keys to their first byte, for
// asserting structure built with orderedHash.
func (l *List) layerFirstKeyBytes(layer []Ref) []byte {
	var out []byte
	for _, r := range layer {
		out = append(out, l.arena[r].key[0])
	}
	return out
}

// unitSizes groups a layer by parent and returns the member counts. The top
// layer, where every up is NoRef, groups as the single unit it is.
func (l *List) unitSizes(layer []Ref) []int {
	var sizes []int
	prev := NoRef
	for i, r := range layer {
		up := l.arena[r].up
		if i == 0 || up != prev {
			sizes = append(sizes, 0)
		}
		sizes[len(sizes)-1]++
		prev = up
	}
	return sizes
}

// checkInvariants walks the whole structure and requires every structural
// and cryptographic invariant to hold.
func checkInvariants(t *testing.T, l *List) {
	t.Helper()

	if l.root == NoRef {
		require.Equal(t, 0, l.itemCount)
		require.Nil(t, l.rootCommit)
		require.Equal(t, len(l.arena), len(l.freed))
		return
	}

	layers := l.layers()
	reachable := 0
	floor := l.unitMax / 2
	if floor < 1 {
		floor = 1
	}

	for li, layer := range layers {
		reachable += len(layer)
		top := li == 0
		bottom := li == len(layers)-1

		for i, r := range layer {
			n := l.arena[r]

			// horizontal chain is symmetric and strictly ordered
			if i > 0 {
				prev := layer[i-1]
				require.Equal(t, prev, n.left)
				require.Equal(t, r, l.arena[prev].right)
				require.Equal(t, 1, bytes.Compare(n.key, l.arena[prev].key),
					"layer %d keys out of order at %d", li, i)
			} else {
				require.Equal(t, NoRef, n.left)
			}

			if top {
				require.Equal(t, NoRef, n.up)
			} else {
				require.NotEqual(t, NoRef, n.up)
			}

			if bottom {
				require.Equal(t, NoRef, n.down)
				// leaf commitment binds the value and is the key
				require.Equal(t, n.key, n.commit)
				require.Equal(t, n.key, l.digest(n.value))
			} else {
				// representative: key/value taken from the unit head below
				require.NotEqual(t, NoRef, n.down)
				child := l.arena[n.down]
				require.Equal(t, r, child.up)
				require.Equal(t, child.key, n.key)
				require.Equal(t, child.value, n.value)
			}
		}

		// unit occupancy and unit commitments
		for i := 0; i < len(layer); {
			up := l.arena[layer[i]].up
			j := i
			for j < len(layer) && l.arena[layer[j]].up == up {
				j++
			}
			u := layer[i:j]

			if top {
				require.Equal(t, len(layer), len(u), "top layer must be one unit")
				require.Equal(t, l.unitCommit(u), l.rootCommit)
			} else {
				require.GreaterOrEqual(t, len(u), floor, "unit below floor in layer %d", li)
				require.LessOrEqual(t, len(u), l.unitMax, "unit above capacity in layer %d", li)
				require.Equal(t, l.unitCommit(u), l.arena[up].commit,
					"stale unit commitment in layer %d", li)
			}
			i = j
		}
	}

	bottom := layers[len(layers)-1]
	require.Equal(t, l.itemCount, len(bottom))
	require.Equal(t, l.itemCount, l.WalkCount())

	// every arena slot is either reachable or on the free list
	require.Equal(t, len(l.arena), reachable+len(l.freed))
	for _, r := range l.freed {
		n := l.arena[r]
		require.Equal(t, NoRef, n.up)
		require.Equal(t, NoRef, n.down)
		require.Equal(t, NoRef, n.left)
		require.Equal(t, NoRef, n.right)
	}
}
