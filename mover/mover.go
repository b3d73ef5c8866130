// Package mover chooses and plays rollout moves.
package mover

import (
	"ginkgo/feature"
	"ginkgo/game"

	"golang.org/x/exp/rand"
)

// Mover picks a move for the side to move and plays it on its board. With fast set the move
// is played with PlayFast.
type Mover interface {
	SelectAndPlayOneMove(rng *rand.Rand, fast bool) game.Point
}

func play(board *game.Board, p game.Point, fast bool) game.Legality {
	if fast {
		return board.PlayFast(p)
	}
	return board.Play(p)
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

// PredicateMover plays a random vacant point accepted by its filter, or passes if there is
// none.
type PredicateMover struct {
	board      *game.Board
	filter     feature.Predicate
	candidates []game.Point
}

func NewPredicateMover(board *game.Board, filter feature.Predicate) *PredicateMover {
	return &PredicateMover{
		board:      board,
		filter:     filter,
		candidates: make([]game.Point, 0, board.Coords().Area()),
	}
}

func (m *PredicateMover) SelectAndPlayOneMove(rng *rand.Rand, fast bool) game.Point {
	candidates := append(m.candidates[:0], m.board.Vacant().Points()...)
	for len(candidates) > 0 {
		var p game.Point
		p, candidates = removeRandom(rng, candidates)
		if m.board.ColorAt(p) == game.Vacant && m.filter.At(p) && play(m.board, p, fast) == game.OK {
			return p
		}
	}
	m.board.Play(game.Pass)
	return game.Pass
}

// SuggesterMover plays a random legal suggestion, or defers to its fallback.
type SuggesterMover struct {
	board      *game.Board
	suggester  feature.Suggester
	fallback   Mover
	candidates []game.Point
}

func NewSuggesterMover(board *game.Board, suggester feature.Suggester, fallback Mover) *SuggesterMover {
	return &SuggesterMover{
		board:      board,
		suggester:  suggester,
		fallback:   fallback,
		candidates: make([]game.Point, 0, board.Coords().Area()),
	}
}

func (m *SuggesterMover) SelectAndPlayOneMove(rng *rand.Rand, fast bool) game.Point {
	candidates := append(m.candidates[:0], m.suggester.Suggest().Points()...)
	for len(candidates) > 0 {
		var p game.Point
		p, candidates = removeRandom(rng, candidates)
		if m.board.ColorAt(p) == game.Vacant && play(m.board, p, fast) == game.OK {
			return p
		}
	}
	return m.fallback.SelectAndPlayOneMove(rng, fast)
}
