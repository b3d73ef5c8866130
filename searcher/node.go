package searcher

import (
	"fmt"
	"strings"
	"sync"

	"ginkgo/feature"
	"ginkgo/game"
	"ginkgo/timing"
)

// Priors given to every move of a fresh node. Pass starts out looking bad.
const (
	priorRuns        = 2
	priorWinRate     = 0.5
	passPriorRuns    = 10
	passPriorWinRate = 0.1
)

// SearchNode holds the move statistics of one position of the search DAG.
type SearchNode interface {
	feature.Node
	timing.Stats

	Key() uint64
	// Clear resets the node to the priors and marks it in use for key.
	Clear(key uint64)
	IsInUse() bool
	Free()
	IsFresh() bool
	TotalRuns() int
	// Exclude poisons p so it is never chosen again from this node.
	Exclude(p game.Point)
	WinningMove() game.Point
	SetWinningMove(p game.Point)
	OverallWinRate() float32
	HasChild(p game.Point) bool
	SetHasChild(p game.Point)
	BiasUpdated() bool
	UpdateBias(suggesters []feature.Suggester, raters []feature.Rater)
	// RecordPlayout credits moves[t], played from this node, with winProportion. turn is
	// the length of the playout.
	RecordPlayout(winProportion float32, moves []game.Point, t, turn int, played *game.PointSet)
	String() string

	base() *simpleNode
	isMarked() bool
	setMarked(marked bool)
	firstChild() int32
	setFirstChild(cell int32)
}

type simpleNode struct {
	sync.RWMutex
	coords      *game.Coords
	key         uint64
	totalRuns   int
	runs        []int32
	winRates    []float32
	hasChild    []bool
	winningMove game.Point
	biasUpdated bool

	// Guarded by the table
	inUse    bool
	marked   bool
	children int32
}

func newSimpleNode(coords *game.Coords) SearchNode {
	return makeSimpleNode(coords)
}

func makeSimpleNode(coords *game.Coords) *simpleNode {
	n := &simpleNode{}
	n.init(coords)
	return n
}

func (n *simpleNode) init(coords *game.Coords) {
	size := coords.FirstPointBeyondBoard()
	n.coords = coords
	n.runs = make([]int32, size)
	n.winRates = make([]float32, size)
	n.hasChild = make([]bool, size)
	n.children = noCell
}

func (n *simpleNode) base() *simpleNode {
	return n
}

func (n *simpleNode) Key() uint64 {
	return n.key
}

func (n *simpleNode) Clear(key uint64) {
	n.Lock()
	defer n.Unlock()
	n.key = key
	for i := range n.runs {
		n.runs[i] = priorRuns
		n.winRates[i] = priorWinRate
		n.hasChild[i] = false
	}
	n.runs[game.Pass] = passPriorRuns
	n.winRates[game.Pass] = passPriorWinRate
	n.totalRuns = n.freshRuns()
	n.winningMove = game.NoPoint
	n.biasUpdated = false
	n.children = noCell
	n.marked = false
	n.inUse = true
}

func (n *simpleNode) freshRuns() int {
	return priorRuns*n.coords.Area() + passPriorRuns
}

func (n *simpleNode) IsInUse() bool {
	return n.inUse
}

func (n *simpleNode) Free() {
	n.inUse = false
}

func (n *simpleNode) isMarked() bool {
	return n.marked
}

func (n *simpleNode) setMarked(marked bool) {
	n.marked = marked
}

func (n *simpleNode) firstChild() int32 {
	return n.children
}

func (n *simpleNode) setFirstChild(cell int32) {
	n.children = cell
}

func (n *simpleNode) IsFresh() bool {
	n.RLock()
	defer n.RUnlock()
	return n.totalRuns == n.freshRuns()
}

func (n *simpleNode) TotalRuns() int {
	n.RLock()
	defer n.RUnlock()
	return n.totalRuns
}

func (n *simpleNode) Runs(p game.Point) int {
	n.RLock()
	defer n.RUnlock()
	return int(n.runs[p])
}

func (n *simpleNode) WinRate(p game.Point) float32 {
	n.RLock()
	defer n.RUnlock()
	return n.winRates[p]
}

func (n *simpleNode) Wins(p game.Point) float32 {
	n.RLock()
	defer n.RUnlock()
	return n.wins(p)
}

func (n *simpleNode) wins(p game.Point) float32 {
	return n.winRates[p] * float32(n.runs[p])
}

// Update adds runs with the given number of wins to p. Excluded moves are left alone.
func (n *simpleNode) Update(p game.Point, runs int, wins float32) {
	n.Lock()
	defer n.Unlock()
	n.update(p, runs, wins)
}

func (n *simpleNode) update(p game.Point, runs int, wins float32) {
	if n.winRates[p] <= 0 {
		return
	}
	r := float32(n.runs[p])
	n.winRates[p] = (wins + n.winRates[p]*r) / (float32(runs) + r)
	n.runs[p] += int32(runs)
	n.totalRuns += runs
}

func (n *simpleNode) Exclude(p game.Point) {
	n.Lock()
	defer n.Unlock()
	n.winRates[p] = -1
}

func (n *simpleNode) WinningMove() game.Point {
	n.RLock()
	defer n.RUnlock()
	return n.winningMove
}

func (n *simpleNode) SetWinningMove(p game.Point) {
	n.Lock()
	defer n.Unlock()
	n.winningMove = p
}

// MoveWithMostWins breaks ties in favor of the later point. Pass is returned only when no
// point does as well.
func (n *simpleNode) MoveWithMostWins(coords *game.Coords) game.Point {
	n.RLock()
	defer n.RUnlock()
	best := game.Pass
	most := n.wins(game.Pass)
	for _, p := range coords.AllPointsOnBoard() {
		if w := n.wins(p); w >= most {
			best, most = p, w
		}
	}
	return best
}

// OverallWinRate pools the runs of every move that is not excluded.
func (n *simpleNode) OverallWinRate() float32 {
	n.RLock()
	defer n.RUnlock()
	wins := n.wins(game.Pass)
	runs := n.runs[game.Pass]
	for _, p := range n.coords.AllPointsOnBoard() {
		if n.winRates[p] > 0 {
			wins += n.wins(p)
			runs += n.runs[p]
		}
	}
	return wins / float32(runs)
}

func (n *simpleNode) HasChild(p game.Point) bool {
	n.RLock()
	defer n.RUnlock()
	return n.hasChild[p]
}

func (n *simpleNode) SetHasChild(p game.Point) {
	n.Lock()
	defer n.Unlock()
	n.hasChild[p] = true
}

func (n *simpleNode) BiasUpdated() bool {
	n.RLock()
	defer n.RUnlock()
	return n.biasUpdated
}

// UpdateBias seeds the node with the opinions of the suggesters and raters, which must be
// looking at this node's position. Only the first call has any effect.
func (n *simpleNode) UpdateBias(suggesters []feature.Suggester, raters []feature.Rater) {
	n.Lock()
	if n.biasUpdated {
		n.Unlock()
		return
	}
	n.biasUpdated = true
	n.Unlock()

	for _, s := range suggesters {
		bias := s.Bias()
		for _, p := range s.Suggest().Points() {
			n.Update(p, bias, float32(bias))
		}
	}
	for _, r := range raters {
		r.UpdateNode(n)
	}
}

func (n *simpleNode) RecordPlayout(winProportion float32, moves []game.Point, t, turn int, played *game.PointSet) {
	n.Lock()
	defer n.Unlock()
	n.recordMove(winProportion, moves[t])
}

func (n *simpleNode) recordMove(winProportion float32, move game.Point) {
	n.update(move, 1, winProportion)
	if winProportion == 1 {
		n.winningMove = move
	} else {
		n.winningMove = game.NoPoint
	}
}

func (n *simpleNode) String() string {
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

func (n *simpleNode) formatMove(sb *strings.Builder, p game.Point) {
	fmt.Fprintf(sb, "%s: %7d/%7d (%1.4f)\n", n.coords.String(p), int(n.wins(p)), n.runs[p], n.winRates[p])
}
