package feature

import (
	"ginkgo/game"
	"ginkgo/patterns"
)

// Node is the part of a search node that raters write to.
type Node interface {
	Update(p game.Point, n int, wins float32)
}

// Rater adds prior runs to every move of a freshly biased search node.
type Rater interface {
	UpdateNode(node Node)
}

// ShapeRater biases each vacant point by the learned win rate of the shape around it.
type ShapeRater struct {
	board     *game.Board
	history   *HistoryObserver
	table     *patterns.ShapeTable
	bias      int
	minStones int
}

func NewShapeRater(board *game.Board, history *HistoryObserver, table *patterns.ShapeTable, bias, minStones int) *ShapeRater {
	return &ShapeRater{
		board:     board,
		history:   history,
		table:     table,
		bias:      bias,
		minStones: minStones,
	}
}

func (r *ShapeRater) UpdateNode(node Node) {
	last := r.history.Get(r.board.Turn() - 1)
	for _, p := range r.board.Vacant().Points() {
		hash := patterns.Hash(r.board, p, r.minStones, last)
		node.Update(p, r.bias, float32(int(float32(r.bias)*r.table.WinRate(hash))))
	}
}
