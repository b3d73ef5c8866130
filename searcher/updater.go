package searcher

import (
	"ginkgo/experiments/metrics"
	"ginkgo/game"

	"github.com/rs/zerolog/log"
)

// TreeUpdater folds finished playouts back into the tree and keeps the table tidy between
// moves.
type TreeUpdater interface {
	Update(w *worker, winner game.Color)
	UpdateForAcceptMove()
	Root() SearchNode
	Clear()
}

type treeUpdater struct {
	board     *game.Board
	table     *Table
	gestation int
	metrics   metrics.Collector
}

// newTreeUpdater grows the tree by one node per playout once the move leading to it has
// more than gestation runs.
func newTreeUpdater(board *game.Board, table *Table, gestation int, collector metrics.Collector) *treeUpdater {
	return &treeUpdater{
		board:     board,
		table:     table,
		gestation: gestation,
		metrics:   collector,
	}
}

func (u *treeUpdater) Root() SearchNode {
	return u.table.FindOrAllocate(u.board.SearchKey())
}

// Update credits every node on the descended path. Playouts without a winner are ignored.
func (u *treeUpdater) Update(w *worker, winner game.Color) {
	if winner == game.Vacant {
		return
	}
	node := u.Root()
	if node == nil {
		u.metrics.AddTableFull()
		return
	}
	moves := w.kit.History.Moves()
	turn := w.kit.Board.Turn()
	color := u.board.ColorToPlay()
	for t := u.board.Turn(); t < turn; t++ {
		var winProportion float32
		if winner == color {
			winProportion = 1
		}
		node.RecordPlayout(winProportion, moves, t, turn, w.played)
		if t+1 > w.keyedTurn {
			return
		}
		child := u.table.Find(w.searchKeys[t+1])
		if child == nil {
			if node.Runs(moves[t]) > u.gestation && u.table.Expand(node, moves[t], w.searchKeys[t+1]) == nil {
				u.metrics.AddTableFull()
			}
			return
		}
		node = child
		color = color.Opposite()
	}
}

// UpdateForAcceptMove frees every node the new position can no longer reach.
func (u *treeUpdater) UpdateForAcceptMove() {
	kept := u.table.MarkReachableFrom(u.table.Find(u.board.SearchKey()))
	freed := u.table.Sweep()
	log.Debug().
		Int("kept", kept).
		Int("freed", freed).
		Int("capacity", u.table.Capacity()).
		Msg("collected search tree")
}

func (u *treeUpdater) Clear() {
	u.table.Sweep()
}
