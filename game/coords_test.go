package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoords(t *testing.T) {
	coords := ForWidth(19)

	t.Run("padded layout", func(t *testing.T) {
		require.Equal(t, Point(21), coords.At(0, 0))
		require.Equal(t, 400, coords.FirstPointBeyondBoard())
		require.Equal(t, 421, coords.FirstPointBeyondExtendedBoard())
		require.Equal(t, 1083, coords.MaxMovesPerGame())
		require.Len(t, coords.AllPointsOnBoard(), 361)
		require.Same(t, coords, ForWidth(19), "coordinate systems are shared per width")
	})

	t.Run("neighbors are ordered N, W, E, S then diagonals", func(t *testing.T) {
		p := coords.At(5, 5)
		n := coords.Neighbors(p)
		require.Equal(t, coords.At(4, 5), n[North])
		require.Equal(t, coords.At(5, 4), n[West])
		require.Equal(t, coords.At(5, 6), n[East])
		require.Equal(t, coords.At(6, 5), n[South])
		require.Equal(t, coords.At(4, 4), n[NorthWest])
		require.Equal(t, coords.At(6, 6), n[SouthEast])
		require.False(t, coords.IsOnBoard(coords.Neighbors(coords.At(0, 0))[North]))
	})

	t.Run("vertex labels skip I", func(t *testing.T) {
		p, err := coords.Parse("j10")
		require.NoError(t, err)
		require.Equal(t, 8, coords.Column(p))
		require.Equal(t, 9, coords.Row(p))
		require.Equal(t, "J10", coords.String(p))
		require.Equal(t, "PASS", coords.String(coords.MustParse("pass")))
	})

	t.Run("invalid vertices are errors", func(t *testing.T) {
		for _, label := range []string{"", "z1", "a0", "a20", "a?"} {
			_, err := coords.Parse(label)
			require.Error(t, err, "label %q", label)
		}
	})

	t.Run("zobrist constants are reproducible and distinct", func(t *testing.T) {
		p := coords.At(3, 3)
		require.NotEqual(t, coords.Hash(Black, p), coords.Hash(White, p))
		require.NotEqual(t, coords.Hash(Black, p), coords.Hash(Black, coords.At(3, 4)))
		require.Equal(t, coords.Hash(Black, p), newCoords(19).Hash(Black, p))
	})
}

func TestSuperKoTable(t *testing.T) {
	table := NewSuperKoTable(ForWidth(5))
	require.Equal(t, 150, table.Capacity())
	require.True(t, table.Contains(Empty), "the empty board is always present")

	keys := []uint64{7, 7 + 150, 7 + 300, 1 << 40}
	for _, k := range keys {
		require.False(t, table.Contains(k))
		table.Add(k)
	}
	for _, k := range keys {
		require.True(t, table.Contains(k), "colliding keys are found by linear probing")
	}

	copied := NewSuperKoTable(ForWidth(5))
	copied.CopyFrom(table)
	require.True(t, copied.Contains(7+300))

	table.Clear()
	require.False(t, table.Contains(7))
}

func TestPointSet(t *testing.T) {
	s := NewPointSet(50)
	for _, p := range []Point{3, 9, 27} {
		s.Add(p)
	}
	s.Add(9)
	require.Equal(t, 3, s.Size())

	s.Remove(3)
	require.Equal(t, []Point{27, 9}, s.Points(), "removal moves the last element into the hole")
	require.False(t, s.Contains(3))

	other := NewPointSet(50)
	other.CopyFrom(s)
	require.True(t, other.Equal(s))
	other.Add(4)
	require.False(t, other.Equal(s))
}
