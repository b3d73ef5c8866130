package searcher

import (
	"ginkgo/game"
	"ginkgo/patterns"
)

// Only the opening moves of a playout train the shape table.
const (
	shapeUpdateDepth     = 20
	shapeUpdateMinStones = 3
)

// shapeUpdater also trains the shape table, replaying the start of each conclusive playout
// on the worker's board.
type shapeUpdater struct {
	TreeUpdater
	table *patterns.ShapeTable
	board *game.Board
}

func newShapeUpdater(updater TreeUpdater, table *patterns.ShapeTable, board *game.Board) *shapeUpdater {
	return &shapeUpdater{TreeUpdater: updater, table: table, board: board}
}

func (u *shapeUpdater) Update(w *worker, winner game.Color) {
	u.TreeUpdater.Update(w, winner)
	if winner == game.Vacant {
		return
	}
	turn := w.kit.Board.Turn()
	start := u.board.Turn()
	end := min(turn, start+shapeUpdateDepth)
	moves := append(w.replay[:0], w.kit.History.Moves()[:end]...)
	w.replay = moves

	board := w.kit.Board
	board.CopyFrom(u.board)
	win := winner == u.board.ColorToPlay()
	for t := start; t < end; t++ {
		p := moves[t]
		if p != game.Pass {
			var last game.Point = game.NoPoint
			if t > 0 {
				last = moves[t-1]
			}
			u.table.Update(patterns.Hash(board, p, shapeUpdateMinStones, last), win)
		}
		board.Play(p)
		win = !win
	}
}
