package searcher

import (
	"math"

	"ginkgo/game"
)

const raveBias = 0.0009

// raveValue blends the direct win rate with the AMAF win rate, trusting AMAF less as real
// runs accumulate. node must be a raveNode.
func raveValue(node SearchNode, p game.Point) float64 {
	n := node.(*raveNode)
	r := float64(n.winRates[p])
	if r < 0 {
		return math.Inf(-1)
	}
	if p == game.Pass {
		return r
	}
	c := float64(n.runs[p])
	rc := float64(n.raveRuns[p])
	rr := float64(n.raveWinRates[p])
	coef := rc / (rc + c + rc*c*raveBias)
	return r*(1-coef) + rr*coef
}

func NewRaveDescender(board *game.Board, table *Table, biasDelay int) *Descender {
	return newDescender(board, table, biasDelay, raveValue)
}
