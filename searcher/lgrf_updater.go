package searcher

import (
	"ginkgo/feature"
	"ginkgo/game"
)

// lgrfUpdater also teaches the last-good-reply tables from every conclusive playout.
type lgrfUpdater struct {
	TreeUpdater
	table *feature.LgrfTable
	board *game.Board
}

func newLgrfUpdater(updater TreeUpdater, table *feature.LgrfTable, board *game.Board) *lgrfUpdater {
	return &lgrfUpdater{TreeUpdater: updater, table: table, board: board}
}

func (u *lgrfUpdater) Update(w *worker, winner game.Color) {
	u.TreeUpdater.Update(w, winner)
	if winner == game.Vacant {
		return
	}
	history := w.kit.History
	turn := w.kit.Board.Turn()
	color := u.board.ColorToPlay()
	win := winner == color
	t := u.board.Turn()
	penultimate := history.Get(t - 2)
	previous := history.Get(t - 1)
	for ; t < turn; t++ {
		reply := history.Get(t)
		u.table.Update(color, win, penultimate, previous, reply)
		win = !win
		penultimate, previous = previous, reply
		color = color.Opposite()
	}
}

func (u *lgrfUpdater) Clear() {
	u.table.Clear()
	u.TreeUpdater.Clear()
}
