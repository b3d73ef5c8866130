package searcher

import (
	"ginkgo/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Below this win rate the best move is not worth playing out.
const resignThreshold = 0.1

// valueFunc scores move p of node for selection. It is called with node read locked.
type valueFunc func(node SearchNode, p game.Point) float64

// Descender walks workers down the tree and picks the move to play.
type Descender struct {
	board     *game.Board
	table     *Table
	biasDelay int
	value     valueFunc
}

func newDescender(board *game.Board, table *Table, biasDelay int, value valueFunc) *Descender {
	return &Descender{
		board:     board,
		table:     table,
		biasDelay: biasDelay,
		value:     value,
	}
}

// Root returns the node of the player's current position, or nil if the table is full.
func (d *Descender) Root() SearchNode {
	return d.table.FindOrAllocate(d.board.SearchKey())
}

// SearchValue is the selection value of p at node.
func (d *Descender) SearchValue(node SearchNode, p game.Point) float64 {
	node.base().RLock()
	defer node.base().RUnlock()
	return d.value(node, p)
}

// Descend plays moves on the worker's board, following the tree from the root for as long
// as the resulting positions have nodes.
func (d *Descender) Descend(w *worker) {
	node := d.Root()
	if node == nil {
		return
	}
	board := w.kit.Board
	for board.Passes() < 2 {
		w.acceptMove(d.bestSearchMove(node, w))
		child := d.table.Find(board.SearchKey())
		if child == nil {
			return
		}
		if child.TotalRuns() > d.biasDelay && !child.BiasUpdated() {
			child.UpdateBias(w.kit.Suggesters, w.kit.Raters)
		}
		node = child
	}
}

// bestSearchMove returns the move to explore from node on the worker's board. Points that
// look best but turn out to be infeasible or illegal are excluded from node.
func (d *Descender) bestSearchMove(node SearchNode, w *worker) game.Point {
	board := w.kit.Board
	if move := node.WinningMove(); move != game.NoPoint && board.IsLegal(move) {
		return move
	}

	excluded := w.excluded[:0]
	node.base().RLock()
	best := d.value(node, game.Pass)
	result := game.Pass
	candidates := append(w.candidates[:0], board.Vacant().Points()...)
	for len(candidates) > 0 {
		var p game.Point
		p, candidates = removeRandom(w.rng, candidates)
		v := d.value(node, p)
		if v <= best {
			continue
		}
		if w.kit.Filter.At(p) && board.IsLegal(p) {
			best, result = v, p
		} else {
			excluded = append(excluded, p)
		}
	}
	node.base().RUnlock()

	for _, p := range excluded {
		node.Exclude(p)
	}
	w.excluded = excluded
	return result
}

// BestPlayMove picks the move with the most wins at the root, checked against the real
// board. It returns game.Resign when even the best move is hopeless.
func (d *Descender) BestPlayMove() game.Point {
	root := d.Root()
	if root == nil {
		log.Warn().Msg("no root node, passing")
		return game.Pass
	}
	coords := d.board.Coords()
	vacant := d.board.Vacant()
	result := game.Pass
	for {
		mostWins := root.Wins(game.Pass)
		if result != game.Pass {
			log.Debug().Str("move", coords.String(result)).Msg("rejected illegal move")
			root.Exclude(result)
			result = game.Pass
		}
		for _, p := range vacant.Points() {
			if w := root.Wins(p); w > mostWins {
				mostWins, result = w, p
			}
		}
		if result == game.Pass || d.board.IsLegal(result) {
			break
		}
	}
	if root.WinRate(result) < resignThreshold {
		return game.Resign
	}
	log.Debug().
		Str("move", coords.String(result)).
		Float32("wins", root.Wins(result)).
		Int("runs", root.Runs(result)).
		Msg("selected move")
	return result
}

// removeRandom swaps a random element to the end of candidates and returns it with the
// shortened slice.
func removeRandom(rng *rand.Rand, candidates []game.Point) (game.Point, []game.Point) {
	last := len(candidates) - 1
	i := rng.Intn(len(candidates))
	p := candidates[i]
	candidates[i] = candidates[last]
	return p, candidates[:last]
}
