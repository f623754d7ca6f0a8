package mcl

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-merklelog/mcl/mcltesting"
)

func TestRebuildEmptyIsNoop(t *testing.T) {
	l := NewDefault()
	l.Rebuild()
	require.Nil(t, l.Root())
	require.Equal(t, 0, l.Height())
}

// TestRebuildAfterChurn drives the structure through heavy mixed mutation,
// rebuilds, and checks contents, proofs and invariants all survive.
func TestRebuildAfterChurn(t *testing.T) {
	tc := mcltesting.NewTestContext(t, mcltesting.TestConfig{
		Seed: 29, TestLabelPrefix: "TestRebuildAfterChurn",
	})
	values := tc.GenerateValues(500)

	l, err := New(4, sha256.New())
	require.NoError(t, err)

	for _, v := range values {
		_, err = l.Put(v)
		require.NoError(t, err)
	}
	// churn: drop every other value so units sit near their floors
	kept := make([][]byte, 0, len(values)/2)
	for i, v := range values {
		if i%2 == 0 {
			kept = append(kept, v)
			continue
		}
		_, err = l.Remove(l.keyFor(v))
		require.NoError(t, err)
	}
	checkInvariants(t, l)
	churnedHeight := l.Height()

	l.Rebuild()
	checkInvariants(t, l)
	require.Equal(t, len(kept), l.ItemCount())
	require.LessOrEqual(t, l.Height(), churnedHeight)

	root := l.Root()
	require.NotNil(t, root)
	for _, v := range kept {
		key := l.keyFor(v)

		got, ok := l.Get(key)
		require.True(t, ok)
		require.Equal(t, v, got)

		p, err := l.Prove(key)
		require.NoError(t, err)
		ok, err = VerifyInclusion(sha256.New(), root, p)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// mutations keep working on the rebuilt layout
	extra := tc.GenerateValues(50)
	for _, v := range extra {
		_, err = l.Put(v)
		require.NoError(t, err)
	}
	checkInvariants(t, l)
}

// TestRebuildShapes pins the exact rebuilt layout for a deliberately placed
// population: units are cut at the floor and a short tail folds into the
// final unit.
func TestRebuildShapes(t *testing.T) {
	l, err := New(4, &orderedHash{})
	require.NoError(t, err)

	for b := byte(1); b <= 9; b++ {
		_, err = l.Put(orderedValue(b))
		require.NoError(t, err)
	}

	l.Rebuild()
	checkInvariants(t, l)

	// 9 leaves cut at 2: 2+2+2+3 (tail folded), then a 4-unit layer splits
	// again into 2+2 under a two-node top
	layers := l.layers()
	require.Equal(t, 3, len(layers))
	require.Equal(t, []int{2, 2, 2, 3}, l.unitSizes(layers[2]))
	require.Equal(t, []int{2, 2}, l.unitSizes(layers[1]))
	require.Equal(t, []byte{1, 5}, l.layerFirstKeyBytes(layers[0]))
}

func TestRebuildBelowCapacityDropsToOneLayer(t *testing.T) {
	l, err := New(4, &orderedHash{})
	require.NoError(t, err)

	for _, b := range []byte{1, 2, 3, 4, 5} {
		_, err = l.Put(orderedValue(b))
		require.NoError(t, err)
	}
	require.Equal(t, 2, l.Height())

	_, err = l.Remove(orderedKey(5))
	require.NoError(t, err)
	_, err = l.Remove(orderedKey(4))
	require.NoError(t, err)

	// three leaves fit a single unit; the rebuild discards the upper layer
	l.Rebuild()
	checkInvariants(t, l)
	require.Equal(t, 1, l.Height())
	require.Equal(t, 3, l.ItemCount())
}
