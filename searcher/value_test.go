package searcher

import (
	"math"
	"testing"

	"ginkgo/game"

	"github.com/stretchr/testify/require"
)

func TestUctValue(t *testing.T) {
	coords := game.ForWidth(9)
	p, q := coords.MustParse("c3"), coords.MustParse("g7")

	t.Run("higher win rate gives higher value", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		n.Update(p, 4, 4)
		n.Update(q, 4, 0)

		require.Greater(t, uctValue(n, p), uctValue(n, q))
	})

	t.Run("exploration term decreases with move runs", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		n.Update(p, 10, 5)

		require.InDelta(t, n.WinRate(p), n.WinRate(q), 1e-6, "Both moves should have the same win rate")
		require.Greater(t, uctValue(n, q), uctValue(n, p),
			"Fewer runs should increase exploration term")
	})

	t.Run("exploration term increases with parent runs", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		before := uctValue(n, p)
		n.Update(q, 1000, 500)

		require.Greater(t, uctValue(n, p), before)
	})

	t.Run("excluded move is never chosen", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		n.Exclude(p)

		require.True(t, math.IsInf(uctValue(n, p), -1))
	})
}

func TestRaveValue(t *testing.T) {
	coords := game.ForWidth(9)
	p, q := coords.MustParse("c3"), coords.MustParse("g7")

	t.Run("amaf wins raise the value", func(t *testing.T) {
		n := freshNode(coords, newRaveNode).(*raveNode)
		for i := 0; i < 10; i++ {
			n.AddRaveRun(p, 1)
		}

		require.Greater(t, raveValue(n, p), raveValue(n, q))
	})

	t.Run("direct runs outweigh amaf runs once plentiful", func(t *testing.T) {
		n := freshNode(coords, newRaveNode).(*raveNode)
		for i := 0; i < 100; i++ {
			n.AddRaveRun(p, 1)
		}
		n.Update(p, 10000, 0)

		require.Less(t, raveValue(n, p), 0.1)
	})

	t.Run("more direct wins at equal runs give higher value", func(t *testing.T) {
		n := freshNode(coords, newRaveNode)
		n.Update(p, 10, 3)
		n.Update(q, 10, 8)

		require.Equal(t, n.Runs(p), n.Runs(q))
		require.Greater(t, raveValue(n, q), raveValue(n, p))
	})

	t.Run("pass uses its direct win rate", func(t *testing.T) {
		n := freshNode(coords, newRaveNode)

		require.InDelta(t, passPriorWinRate, raveValue(n, game.Pass), 1e-6)
	})

	t.Run("excluded move is never chosen", func(t *testing.T) {
		n := freshNode(coords, newRaveNode)
		n.Exclude(q)

		require.True(t, math.IsInf(raveValue(n, q), -1))
	})
}
