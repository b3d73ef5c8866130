package book

import (
	"ginkgo/game"
)

// Book suggests opening moves. NextMove returns game.NoPoint when it has nothing to say.
type Book interface {
	NextMove(board *game.Board) game.Point
}

// None is the empty book.
type None struct{}

func (None) NextMove(*game.Board) game.Point {
	return game.NoPoint
}

// Fuseki maps positions, keyed by search key, to the reply played most often from them.
type Fuseki struct {
	maxMoves int
	replies  map[uint64]game.Point
}

func NewFuseki(maxMoves int, replies map[uint64]game.Point) *Fuseki {
	return &Fuseki{maxMoves: maxMoves, replies: replies}
}

// NextMove returns the stored reply if the game is still within the book's horizon and the
// reply is legal.
func (f *Fuseki) NextMove(board *game.Board) game.Point {
	if board.Turn() >= f.maxMoves {
		return game.NoPoint
	}
	move, ok := f.replies[board.SearchKey()]
	if !ok || !board.IsLegal(move) {
		return game.NoPoint
	}
	return move
}

func (f *Fuseki) Size() int {
	return len(f.replies)
}

func (f *Fuseki) MaxMoves() int {
	return f.maxMoves
}
