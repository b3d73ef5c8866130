package feature

import (
	"slices"
	"testing"

	"ginkgo/game"
	"ginkgo/patterns"

	"github.com/stretchr/testify/require"
)

type observed struct {
	board   *game.Board
	atari   *AtariObserver
	history *HistoryObserver
}

func setUp(t *testing.T, colorToPlay game.Color, diagram ...string) observed {
	t.Helper()
	b := game.NewBoard(len(diagram))
	o := observed{board: b, atari: NewAtariObserver(b), history: NewHistoryObserver(b)}
	require.NoError(t, b.SetUpProblem(diagram, colorToPlay))
	return o
}

func points(s *game.PointSet) []game.Point {
	return slices.Clone(s.Points())
}

func TestAtariObserver(t *testing.T) {
	t.Run("chain placed into atari is tracked", func(t *testing.T) {
		o := setUp(t, game.Black,
			"#O...",
			".....",
			".....",
			".....",
			".....",
		)
		c := o.board.Coords()
		require.Equal(t, []game.Point{c.At(0, 0)}, points(o.atari.ChainsInAtari(game.Black)))
		require.Zero(t, o.atari.ChainsInAtari(game.White).Size())

		require.Equal(t, game.OK, o.board.Play(c.At(1, 0)))
		require.Zero(t, o.atari.ChainsInAtari(game.Black).Size(), "extending out of atari should drop the chain")
	})

	t.Run("captured chain is dropped", func(t *testing.T) {
		o := setUp(t, game.Black,
			".#...",
			"#O#..",
			".....",
			".....",
			".....",
		)
		c := o.board.Coords()
		require.Equal(t, []game.Point{c.At(1, 1)}, points(o.atari.ChainsInAtari(game.White)))

		require.Equal(t, game.OK, o.board.Play(c.At(2, 1)))
		require.Zero(t, o.atari.ChainsInAtari(game.White).Size())
	})

	t.Run("copy carries tracked chains", func(t *testing.T) {
		o := setUp(t, game.Black,
			"#O...",
			".....",
			".....",
			".....",
			".....",
		)
		copied := setUp(t, game.Black, ".....", ".....", ".....", ".....", ".....")
		copied.board.CopyFrom(o.board)
		require.True(t, copied.atari.ChainsInAtari(game.Black).Equal(o.atari.ChainsInAtari(game.Black)))
	})
}

func TestStoneCountObserver(t *testing.T) {
	t.Run("mercy thresholds", func(t *testing.T) {
		b := game.NewBoard(9)
		o := NewStoneCountObserver(b, 7.5)
		// base is max(81/6, 15) = 15
		require.Equal(t, 23, o.black)
		require.Equal(t, -8, o.white)
	})

	t.Run("black mercy win", func(t *testing.T) {
		b := game.NewBoard(9)
		o := NewStoneCountObserver(b, 7.5)
		c := b.Coords()
		for i := 0; i < 22; i++ {
			b.PlaceInitialStone(game.Black, c.At(i/9, i%9))
		}
		require.Equal(t, 22, o.Count(game.Black))
		require.Equal(t, game.Vacant, o.MercyWinner())
		b.PlaceInitialStone(game.Black, c.At(2, 4))
		require.Equal(t, game.Black, o.MercyWinner())
	})

	t.Run("white mercy win", func(t *testing.T) {
		b := game.NewBoard(9)
		o := NewStoneCountObserver(b, 7.5)
		c := b.Coords()
		for i := 0; i < 7; i++ {
			b.PlaceInitialStone(game.White, c.At(i/9, i%9))
		}
		require.Equal(t, game.Vacant, o.MercyWinner())
		b.PlaceInitialStone(game.White, c.At(0, 7))
		require.Equal(t, game.White, o.MercyWinner())
	})

	t.Run("captures reduce the count", func(t *testing.T) {
		b := game.NewBoard(5)
		o := NewStoneCountObserver(b, 0.5)
		require.NoError(t, b.SetUpProblem([]string{
			".#...",
			"#O#..",
			".....",
			".....",
			".....",
		}, game.Black))
		require.Equal(t, 1, o.Count(game.White))
		require.Equal(t, game.OK, b.Play(b.Coords().At(2, 1)))
		require.Equal(t, 4, o.Count(game.Black))
		require.Equal(t, 0, o.Count(game.White))
	})
}

func TestHistoryObserver(t *testing.T) {
	o := setUp(t, game.Black,
		"#....",
		".....",
		".....",
		".....",
		".....",
	)
	c := o.board.Coords()
	require.Zero(t, o.history.Size(), "initial stones are not moves")
	require.Equal(t, game.NoPoint, o.history.Get(-1))

	o.board.Play(c.At(2, 2))
	o.board.Play(game.Pass)
	o.board.Play(c.At(3, 3))

	require.Equal(t, 3, o.history.Size())
	require.Equal(t, c.At(2, 2), o.history.Get(0))
	require.Equal(t, game.Pass, o.history.Get(1))
	require.Equal(t, c.At(3, 3), o.history.Get(2))
	require.Equal(t, game.NoPoint, o.history.Get(3))
	require.Equal(t, "[C3, PASS, D2]", o.history.String())
}

func TestPredicates(t *testing.T) {
	t.Run("not eye like", func(t *testing.T) {
		o := setUp(t, game.Black,
			".#.#.",
			"#.#..",
			".#...",
			".....",
			".....",
		)
		c := o.board.Coords()
		e := NewNotEyeLike(o.board)
		require.False(t, e.At(c.At(0, 0)), "corner eye")
		require.False(t, e.At(c.At(1, 1)), "center eye")
		require.True(t, e.At(c.At(3, 3)))

		o.board.SetColorToPlay(game.White)
		require.True(t, e.At(c.At(0, 0)), "an eye of the opponent is not eye like")
	})

	t.Run("false eyes are not eye like", func(t *testing.T) {
		o := setUp(t, game.Black,
			".#...",
			"#O...",
			".....",
			".....",
			".....",
		)
		require.True(t, NewNotEyeLike(o.board).At(o.board.Coords().At(0, 0)),
			"one enemy diagonal makes a corner eye false")

		o = setUp(t, game.Black,
			".....",
			"..#..",
			".#.#.",
			".O#..",
			".....",
		)
		c := o.board.Coords()
		require.False(t, NewNotEyeLike(o.board).At(c.At(2, 2)), "a center point needs two enemy diagonals")

		o = setUp(t, game.Black,
			".....",
			"..#O.",
			".#.#.",
			".O#..",
			".....",
		)
		require.True(t, NewNotEyeLike(o.board).At(c.At(2, 2)))
	})

	t.Run("near another stone", func(t *testing.T) {
		o := setUp(t, game.Black,
			"#........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
		)
		c := o.board.Coords()
		n := NewNearAnotherStone(o.board)
		require.True(t, n.At(c.At(3, 0)))
		require.True(t, n.At(c.At(2, 2)))
		require.True(t, n.At(c.At(1, 3)))
		require.False(t, n.At(c.At(3, 3)))
		require.False(t, n.At(c.At(8, 8)))
	})

	t.Run("third or fourth line", func(t *testing.T) {
		c := game.ForWidth(9)
		l := NewOnThirdOrFourthLine(c)
		require.True(t, l.At(c.At(2, 2)))
		require.True(t, l.At(c.At(3, 4)))
		require.True(t, l.At(c.At(6, 5)))
		require.False(t, l.At(c.At(4, 4)))
		require.False(t, l.At(c.At(0, 5)))
		require.Equal(t, 5, Line(c, c.At(4, 4)))
	})

	t.Run("conjunction and disjunction", func(t *testing.T) {
		c := game.ForWidth(9)
		l := NewOnThirdOrFourthLine(c)
		o := setUp(t, game.Black,
			"#........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
		)
		n := NewNearAnotherStone(o.board)
		require.True(t, Conjunction(l, n).At(c.At(2, 2)))
		require.False(t, Conjunction(l, n).At(c.At(6, 6)))
		require.True(t, Disjunction(l, n).At(c.At(6, 6)))
		require.False(t, Disjunction(l, n).At(c.At(8, 8)))
	})
}

func TestCaptureSuggester(t *testing.T) {
	o := setUp(t, game.Black,
		".#...",
		"#O#..",
		".....",
		".....",
		".....",
	)
	c := o.board.Coords()
	s := NewCaptureSuggester(o.board, o.atari, 5)
	require.Equal(t, []game.Point{c.At(2, 1)}, points(s.Suggest()))
	require.Equal(t, 5, s.Bias())

	o.board.SetColorToPlay(game.White)
	require.Zero(t, s.Suggest().Size(), "white has nothing to capture")
}

func TestEscapeSuggester(t *testing.T) {
	t.Run("extend", func(t *testing.T) {
		o := setUp(t, game.Black,
			".....",
			".O...",
			"O#O..",
			".....",
			".....",
		)
		c := o.board.Coords()
		s := NewEscapeSuggester(o.board, o.atari, 0)
		require.Equal(t, []game.Point{c.At(3, 1)}, points(s.Suggest()))
	})

	t.Run("merge and capture", func(t *testing.T) {
		o := setUp(t, game.Black,
			".O#..",
			"O#O#.",
			".....",
			".....",
			".....",
		)
		c := o.board.Coords()
		s := NewEscapeSuggester(o.board, o.atari, 0)
		require.ElementsMatch(t,
			[]game.Point{c.At(2, 1), c.At(0, 0), c.At(2, 2), c.At(0, 3)},
			points(s.Suggest()))
	})
}

func TestPatternSuggester(t *testing.T) {
	t.Run("hane around the last move", func(t *testing.T) {
		o := setUp(t, game.Black, ".....", ".....", ".....", ".....", ".....")
		c := o.board.Coords()
		for _, p := range []game.Point{c.At(1, 0), c.At(4, 4), c.At(1, 2), c.At(1, 1)} {
			require.Equal(t, game.OK, o.board.Play(p))
		}
		s := NewPatternSuggester(o.board, o.history, 0)
		moves := s.Suggest()
		require.True(t, moves.Contains(c.At(2, 1)), "enclosing hane below")
		require.True(t, moves.Contains(c.At(0, 1)), "enclosing hane above")
		require.False(t, moves.Contains(c.At(3, 3)), "only neighbors of the last move are considered")
	})

	t.Run("nothing after a pass or before the first move", func(t *testing.T) {
		o := setUp(t, game.Black, ".....", ".....", ".....", ".....", ".....")
		s := NewPatternSuggester(o.board, o.history, 0)
		require.Zero(t, s.Suggest().Size())
		o.board.Play(game.Pass)
		require.Zero(t, s.Suggest().Size())
	})

	t.Run("pattern codes", func(t *testing.T) {
		o := setUp(t, game.Black, ".....", ".....", ".....", ".....", ".....")
		c := o.board.Coords()
		require.Equal(t, uint16(0xAAAA), Pattern(o.board, c.At(2, 2)), "all vacant")
		require.False(t, GoodPatterns().Contains(0xAAAA))
		// The corner sees off-board cells in the north, west and both northern diagonals
		corner := Pattern(o.board, c.At(0, 0))
		require.Equal(t, uint16(3), corner>>(2*game.North)&3)
		require.Equal(t, uint16(2), corner>>(2*game.East)&3)
	})

	t.Run("symmetric variants are included", func(t *testing.T) {
		set := &PatternSet{}
		set.AddShape([3]string{"X..", "...", "..."})
		count := 0
		for p := 0; p < PatternCount; p++ {
			if set.Contains(uint16(p)) {
				count++
			}
		}
		// Four corners for each color
		require.Equal(t, 8, count)
	})
}

func TestLgrfTable(t *testing.T) {
	c := game.ForWidth(5)
	table := NewLgrfTable(c)
	a, b, reply, other := c.At(0, 0), c.At(1, 1), c.At(2, 2), c.At(3, 3)

	t.Run("win stores both levels", func(t *testing.T) {
		table.Update(game.Black, true, a, b, reply)
		require.Equal(t, reply, table.FirstLevelReply(game.Black, b))
		require.Equal(t, reply, table.SecondLevelReply(game.Black, a, b))
		require.Equal(t, game.NoPoint, table.FirstLevelReply(game.White, b))
	})

	t.Run("loss with another reply keeps the entry", func(t *testing.T) {
		table.Update(game.Black, false, a, b, other)
		require.Equal(t, reply, table.FirstLevelReply(game.Black, b))
	})

	t.Run("loss with the same reply clears it", func(t *testing.T) {
		table.Update(game.Black, false, a, b, reply)
		require.Equal(t, game.NoPoint, table.FirstLevelReply(game.Black, b))
		require.Equal(t, game.NoPoint, table.SecondLevelReply(game.Black, a, b))
	})

	t.Run("passes are ignored", func(t *testing.T) {
		table.Update(game.White, true, a, b, game.Pass)
		require.Equal(t, game.NoPoint, table.FirstLevelReply(game.White, b))
	})

	t.Run("clear", func(t *testing.T) {
		table.Update(game.White, true, a, b, reply)
		table.Clear()
		require.Equal(t, game.NoPoint, table.SecondLevelReply(game.White, a, b))
	})
}

func TestLgrfSuggester(t *testing.T) {
	o := setUp(t, game.Black, ".....", ".....", ".....", ".....", ".....")
	c := o.board.Coords()
	table := NewLgrfTable(c)
	s := NewLgrfSuggester(o.board, o.history, table, 0, NewNotEyeLike(o.board))
	first, second := c.At(0, 0), c.At(4, 4)
	o.board.Play(first)
	o.board.Play(second)

	require.Zero(t, s.Suggest().Size())

	table.Update(game.Black, true, game.NoPoint, second, c.At(3, 3))
	require.Equal(t, []game.Point{c.At(3, 3)}, points(s.Suggest()), "first level reply")

	table.Update(game.Black, true, first, second, c.At(2, 2))
	require.Equal(t, []game.Point{c.At(2, 2)}, points(s.Suggest()), "second level reply wins")

	table.Update(game.Black, true, first, second, first)
	table.Update(game.Black, true, game.NoPoint, second, c.At(3, 3))
	require.Equal(t, []game.Point{c.At(3, 3)}, points(s.Suggest()),
		"an occupied second level reply falls back to the first level")
}

type recordingNode struct {
	runs map[game.Point]int
	wins map[game.Point]float32
}

func (n *recordingNode) Update(p game.Point, runs int, wins float32) {
	n.runs[p] += runs
	n.wins[p] += wins
}

func TestShapeRater(t *testing.T) {
	o := setUp(t, game.Black,
		"#....",
		".....",
		"..O..",
		".....",
		".....",
	)
	r := NewShapeRater(o.board, o.history, patterns.NewShapeTable(patterns.DefaultScalingFactor), 10, 3)
	node := &recordingNode{runs: map[game.Point]int{}, wins: map[game.Point]float32{}}
	r.UpdateNode(node)

	require.Len(t, node.runs, 23, "every vacant point is rated")
	for p, runs := range node.runs {
		require.Equal(t, 10, runs)
		require.InDelta(t, 5, node.wins[p], 1e-6, "a fresh table rates every shape at one half")
	}
}
