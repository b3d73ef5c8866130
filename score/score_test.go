package score

import (
	"testing"

	"ginkgo/game"

	"github.com/stretchr/testify/require"
)

func setUp(t *testing.T, diagram ...string) *game.Board {
	t.Helper()
	b := game.NewBoard(len(diagram))
	require.NoError(t, b.SetUpProblem(diagram, game.Black))
	return b
}

func TestChinesePlayoutScorer(t *testing.T) {
	t.Run("filled board counts stones and eyes", func(t *testing.T) {
		b := setUp(t,
			".#O.O",
			"##OOO",
			"#.#OO",
			"###OO",
			"#.#O.",
		)
		s := NewChinesePlayoutScorer(b, 0.5)
		// 10 stones each, three black eyes and two white eyes
		require.InDelta(t, 0.5, s.Score(), 1e-9)
		require.Equal(t, game.Black, s.Winner())
		require.Equal(t, 0.5, s.Komi())
	})

	t.Run("open areas are not counted", func(t *testing.T) {
		b := setUp(t,
			".#O..",
			".#O..",
			".#O..",
			".#O..",
			".#O..",
		)
		require.InDelta(t, -0.5, NewChinesePlayoutScorer(b, 0.5).Score(), 1e-9)
	})

	t.Run("tie", func(t *testing.T) {
		b := game.NewBoard(5)
		require.Equal(t, game.Vacant, NewChinesePlayoutScorer(b, 0).Winner())
	})
}

func TestChineseFinalScorer(t *testing.T) {
	t.Run("territory", func(t *testing.T) {
		b := setUp(t,
			".#O..",
			".#O..",
			".#O..",
			".#O..",
			".#O..",
		)
		s := NewChineseFinalScorer(b, 0.5)
		require.InDelta(t, 5-10-0.5, s.Score(), 1e-9)
		require.Equal(t, game.White, s.Winner())
	})

	t.Run("agrees with the playout scorer on a filled board", func(t *testing.T) {
		b := setUp(t,
			".#O.O",
			"##OOO",
			"#.#OO",
			"###OO",
			"#.#O.",
		)
		require.InDelta(t, NewChinesePlayoutScorer(b, 7.5).Score(), NewChineseFinalScorer(b, 7.5).Score(), 1e-9)
	})

	t.Run("empty board is neutral", func(t *testing.T) {
		b := game.NewBoard(9)
		require.InDelta(t, -7.5, NewChineseFinalScorer(b, 7.5).Score(), 1e-9)
	})

	t.Run("dead stones removed on a copy", func(t *testing.T) {
		b := setUp(t,
			".#O..",
			".#O..",
			"O#O..",
			".#O..",
			".#O..",
		)
		s := NewChineseFinalScorer(b, 0.5)
		require.InDelta(t, 5-6-10-0.5, s.Score(), 1e-9, "the white stone spoils black's territory")

		scratch := game.NewBoard(5)
		scratch.CopyFrom(b)
		dead := game.NewPointSet(b.Coords().FirstPointBeyondBoard())
		dead.Add(b.Coords().At(2, 0))
		scratch.RemoveStones(dead)
		require.InDelta(t, 5-10-0.5, s.ScoreBoard(scratch), 1e-9)
		require.InDelta(t, 5-6-10-0.5, s.Score(), 1e-9, "the original board is untouched")
	})
}
