package searcher

import (
	"math"

	"ginkgo/game"
)

const uctExploration = 0.4

// uctValue is UCB1-tuned. Win rates double as the mean squared reward since every reward is
// 0 or 1.
func uctValue(node SearchNode, p game.Point) float64 {
	n := node.base()
	barX := float64(n.winRates[p])
	if barX < 0 {
		return math.Inf(-1)
	}
	runs := float64(n.runs[p])
	logN := math.Log(float64(n.totalRuns))
	v := barX - barX*barX + math.Sqrt(2*logN/runs)
	return barX + uctExploration*math.Sqrt(logN/runs*math.Min(0.25, v))
}

func NewUctDescender(board *game.Board, table *Table, biasDelay int) *Descender {
	return newDescender(board, table, biasDelay, uctValue)
}
