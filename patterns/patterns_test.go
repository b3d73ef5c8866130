package patterns

import (
	"testing"

	"ginkgo/game"

	"github.com/stretchr/testify/require"
)

func TestRings(t *testing.T) {
	require.Len(t, offsets, (2*maxOffset+1)*(2*maxOffset+1)-1)
	require.Equal(t, len(offsets), ringEnds[len(ringEnds)-1])
	start := 0
	for _, end := range ringEnds {
		require.Zero(t, (end-start)%4, "rings are symmetric")
		start = end
	}
	require.Equal(t, 4, ringEnds[0], "the first ring is the orthogonal neighbors")
	require.Equal(t, 8, ringEnds[1])
}

func TestHash(t *testing.T) {
	b := game.NewBoard(9)
	c := b.Coords()
	center := c.At(4, 4)

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, Hash(b, center, 1, game.NoPoint), Hash(b, center, 1, game.NoPoint))
		require.NotEqual(t, Hash(b, center, 1, game.NoPoint), Hash(b, c.At(0, 0), 1, game.NoPoint),
			"the edge is part of the shape")
	})

	t.Run("distant stones are ignored once enough stones are seen", func(t *testing.T) {
		b.Clear()
		b.PlaceInitialStone(game.Black, c.At(4, 5))
		near := Hash(b, center, 1, game.NoPoint)
		b.PlaceInitialStone(game.White, c.At(0, 0))
		require.Equal(t, near, Hash(b, center, 1, game.NoPoint))
		require.NotEqual(t, near, Hash(b, center, 2, game.NoPoint))
	})

	t.Run("owner and last move matter", func(t *testing.T) {
		b.Clear()
		b.PlaceInitialStone(game.Black, c.At(4, 5))
		b.SetColorToPlay(game.Black)
		friendly := Hash(b, center, 1, game.NoPoint)
		b.SetColorToPlay(game.White)
		enemy := Hash(b, center, 1, game.NoPoint)
		require.NotEqual(t, friendly, enemy)
		require.NotEqual(t, enemy, Hash(b, center, 1, c.At(4, 5)))
	})
}

func TestShapeTable(t *testing.T) {
	table := NewShapeTable(0.9)
	hash := uint64(0x123456789abcdef)
	require.InDelta(t, 0.5, table.WinRate(hash), 1e-6)

	table.Update(hash, true)
	require.InDelta(t, 0.55, table.WinRate(hash), 1e-6)

	table.Update(hash, false)
	require.InDelta(t, 0.495, table.WinRate(hash), 1e-6)

	require.InDelta(t, 0.5, table.WinRate(^hash), 1e-6, "other shapes are untouched")
}
