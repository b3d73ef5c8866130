package searcher

import (
	"strings"
	"testing"

	"ginkgo/feature"
	"ginkgo/game"

	"github.com/stretchr/testify/require"
)

type fixedSuggester struct {
	moves *game.PointSet
	bias  int
}

func (s fixedSuggester) Suggest() *game.PointSet {
	return s.moves
}

func (s fixedSuggester) Bias() int {
	return s.bias
}

type fixedRater struct {
	p    game.Point
	runs int
}

func (r fixedRater) UpdateNode(node feature.Node) {
	node.Update(r.p, r.runs, float32(r.runs))
}

func freshNode(coords *game.Coords, newNode func(*game.Coords) SearchNode) SearchNode {
	n := newNode(coords)
	n.Clear(1)
	return n
}

func TestSimpleNodePriors(t *testing.T) {
	coords := game.ForWidth(9)
	n := freshNode(coords, newSimpleNode)
	p := coords.MustParse("e5")

	require.Equal(t, priorRuns, n.Runs(p))
	require.Equal(t, float32(priorWinRate), n.WinRate(p))
	require.Equal(t, passPriorRuns, n.Runs(game.Pass))
	require.Equal(t, float32(passPriorWinRate), n.WinRate(game.Pass))
	require.Equal(t, priorRuns*81+passPriorRuns, n.TotalRuns())
	require.True(t, n.IsFresh())
	require.Equal(t, game.NoPoint, n.WinningMove())
}

func TestSimpleNodeUpdate(t *testing.T) {
	coords := game.ForWidth(9)
	p := coords.MustParse("e5")

	t.Run("adds runs and wins", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		n.Update(p, 1, 1)

		require.Equal(t, 3, n.Runs(p))
		require.InDelta(t, 2.0/3, n.WinRate(p), 1e-6)
		require.InDelta(t, 2.0, n.Wins(p), 1e-6)
		require.False(t, n.IsFresh())
		require.Equal(t, p, n.MoveWithMostWins(coords))
	})

	t.Run("excluded move is never updated", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		n.Exclude(p)
		n.Update(p, 10, 10)

		require.Equal(t, float32(-1), n.WinRate(p))
		require.Equal(t, priorRuns, n.Runs(p))
		require.NotEqual(t, p, n.MoveWithMostWins(coords))
	})

	t.Run("winning playout marks the winning move", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		moves := []game.Point{p}
		played := game.NewPointSet(coords.FirstPointBeyondBoard())

		n.RecordPlayout(1, moves, 0, 1, played)
		require.Equal(t, p, n.WinningMove())

		n.RecordPlayout(0, moves, 0, 1, played)
		require.Equal(t, game.NoPoint, n.WinningMove())
		require.Equal(t, 4, n.Runs(p))
	})

	t.Run("clear restores the priors", func(t *testing.T) {
		n := freshNode(coords, newSimpleNode)
		n.Update(p, 5, 5)
		n.Exclude(coords.MustParse("a1"))
		n.Clear(7)

		require.Equal(t, uint64(7), n.Key())
		require.True(t, n.IsFresh())
		require.Equal(t, float32(priorWinRate), n.WinRate(coords.MustParse("a1")))
	})
}

func TestSimpleNodeUpdateBias(t *testing.T) {
	coords := game.ForWidth(9)
	n := freshNode(coords, newSimpleNode)
	suggested := coords.MustParse("c3")
	rated := coords.MustParse("g7")
	moves := game.NewPointSet(coords.FirstPointBeyondBoard())
	moves.Add(suggested)
	suggesters := []feature.Suggester{fixedSuggester{moves: moves, bias: 20}}
	raters := []feature.Rater{fixedRater{p: rated, runs: 5}}

	n.UpdateBias(suggesters, raters)
	require.True(t, n.BiasUpdated())
	require.Equal(t, priorRuns+20, n.Runs(suggested))
	require.Equal(t, priorRuns+5, n.Runs(rated))

	n.UpdateBias(suggesters, raters)
	require.Equal(t, priorRuns+20, n.Runs(suggested), "Bias should only be applied once")
}

func TestRaveNodeRecordPlayout(t *testing.T) {
	coords := game.ForWidth(9)
	a, b, c, d := coords.MustParse("c3"), coords.MustParse("g7"), coords.MustParse("c7"), coords.MustParse("g3")
	played := game.NewPointSet(coords.FirstPointBeyondBoard())

	t.Run("credits later moves of the same player", func(t *testing.T) {
		n := freshNode(coords, newRaveNode).(*raveNode)
		n.RecordPlayout(1, []game.Point{a, b, c, d}, 0, 4, played)

		require.Equal(t, priorRuns+1, n.Runs(a))
		require.Equal(t, priorRuns, n.Runs(c), "Only the first move gets a real run")
		require.Equal(t, priorRuns+1, n.RaveRuns(a))
		require.Equal(t, priorRuns+1, n.RaveRuns(c))
		require.Equal(t, priorRuns, n.RaveRuns(b), "Opponent moves are not credited")
		require.Equal(t, priorRuns, n.RaveRuns(d))
		require.InDelta(t, 2.0/3, n.RaveWinRate(a), 1e-6)
	})

	t.Run("skips points the opponent played first", func(t *testing.T) {
		n := freshNode(coords, newRaveNode).(*raveNode)
		n.RecordPlayout(0, []game.Point{a, c, c, d}, 0, 4, played)

		require.Equal(t, priorRuns+1, n.RaveRuns(a))
		require.Equal(t, priorRuns, n.RaveRuns(c))
		require.InDelta(t, 1.0/3, n.RaveWinRate(a), 1e-6)
	})

	t.Run("starts at the node's own turn", func(t *testing.T) {
		n := freshNode(coords, newRaveNode).(*raveNode)
		n.RecordPlayout(1, []game.Point{a, b, c, d}, 1, 4, played)

		require.Equal(t, priorRuns+1, n.Runs(b))
		require.Equal(t, priorRuns+1, n.RaveRuns(b))
		require.Equal(t, priorRuns+1, n.RaveRuns(d))
		require.Equal(t, priorRuns, n.RaveRuns(a))
	})

	t.Run("string lists visited moves", func(t *testing.T) {
		n := freshNode(coords, newRaveNode)
		n.Update(a, 3, 3)
		s := n.String()

		require.True(t, strings.Contains(s, "C3"), s)
		require.True(t, strings.Contains(s, "RAVE"), s)
	})
}
