package searcher

import (
	"fmt"
	"strings"

	"ginkgo/game"
)

// raveNode adds all-moves-as-first statistics: every move a player makes later in a playout
// is credited as if it had been played from this node.
type raveNode struct {
	simpleNode
	raveRuns     []int32
	raveWinRates []float32
}

func newRaveNode(coords *game.Coords) SearchNode {
	size := coords.FirstPointBeyondBoard()
	n := &raveNode{
		raveRuns:     make([]int32, size),
		raveWinRates: make([]float32, size),
	}
	n.simpleNode.init(coords)
	return n
}

func (n *raveNode) Clear(key uint64) {
	n.simpleNode.Clear(key)
	n.Lock()
	defer n.Unlock()
	for i := range n.raveRuns {
		n.raveRuns[i] = priorRuns
		n.raveWinRates[i] = priorWinRate
	}
}

func (n *raveNode) RaveRuns(p game.Point) int {
	n.RLock()
	defer n.RUnlock()
	return int(n.raveRuns[p])
}

func (n *raveNode) RaveWinRate(p game.Point) float32 {
	n.RLock()
	defer n.RUnlock()
	return n.raveWinRates[p]
}

// AddRaveRun records one AMAF run of p with the given win proportion.
func (n *raveNode) AddRaveRun(p game.Point, winProportion float32) {
	n.Lock()
	defer n.Unlock()
	n.addRaveRun(p, winProportion)
}

func (n *raveNode) addRaveRun(p game.Point, winProportion float32) {
	r := float32(n.raveRuns[p])
	n.raveWinRates[p] = (winProportion + n.raveWinRates[p]*r) / (1 + r)
	n.raveRuns[p]++
}

// RecordPlayout also credits each later move of the player to move here, counting only the
// first play at each point by either side.
func (n *raveNode) RecordPlayout(winProportion float32, moves []game.Point, t, turn int, played *game.PointSet) {
	n.Lock()
	defer n.Unlock()
	n.recordMove(winProportion, moves[t])
	played.Clear()
	for t < turn {
		move := moves[t]
		if move != game.Pass && !played.Contains(move) {
			played.AddKnownAbsent(move)
			n.addRaveRun(move, winProportion)
		}
		t++
		if t >= turn {
			return
		}
		played.Add(moves[t])
		t++
	}
}

func (n *raveNode) String() string {
	n.RLock()
	defer n.RUnlock()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total runs: %d\n", n.totalRuns)
	for _, p := range n.coords.AllPointsOnBoard() {
		if n.runs[p] > priorRuns {
			n.formatMove(&sb, p)
		}
	}
	if n.runs[game.Pass] > passPriorRuns {
		n.formatMove(&sb, game.Pass)
	}
	return sb.String()
}

func (n *raveNode) formatMove(sb *strings.Builder, p game.Point) {
	fmt.Fprintf(sb, "%s: %7d/%7d (%1.4f) RAVE %d (%1.4f)\n",
		n.coords.String(p), int(n.wins(p)), n.runs[p], n.winRates[p], n.raveRuns[p], n.raveWinRates[p])
}
