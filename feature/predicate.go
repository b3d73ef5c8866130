package feature

import (
	"sync"

	"ginkgo/game"
)

// Predicate is a yes/no property of a vacant point, evaluated against the board it was built
// for.
type Predicate interface {
	At(p game.Point) bool
}

// NotEyeLike is true for points that are not eyes or false eyes of the side to move.
type NotEyeLike struct {
	board *game.Board
	// edgeEnemies[p] is 1 for points with an off-board diagonal neighbor
	edgeEnemies []int
}

func NewNotEyeLike(board *game.Board) *NotEyeLike {
	coords := board.Coords()
	edgeEnemies := make([]int, coords.FirstPointBeyondBoard())
	for _, p := range coords.AllPointsOnBoard() {
		neighbors := coords.Neighbors(p)
		for i := game.FirstDiagonal; i <= game.LastDiagonal; i++ {
			if !coords.IsOnBoard(neighbors[i]) {
				edgeEnemies[p] = 1
			}
		}
	}
	return &NotEyeLike{board: board, edgeEnemies: edgeEnemies}
}

func (e *NotEyeLike) At(p game.Point) bool {
	color := e.board.ColorToPlay()
	if !e.board.HasMaxNeighborsForColor(color, p) {
		return true
	}
	count := e.edgeEnemies[p]
	enemy := color.Opposite()
	neighbors := e.board.Coords().Neighbors(p)
	for i := game.FirstDiagonal; i <= game.LastDiagonal; i++ {
		if e.board.ColorAt(neighbors[i]) == enemy {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// neighborhoodOffsets lists (row, column) offsets within a distance of about three, nearest
// first.
var neighborhoodOffsets = [...][2]int{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	{-2, 0}, {2, 0}, {0, -2}, {0, 2}, {-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{2, 1}, {2, -1}, {1, -2}, {1, 2}, {2, 2}, {2, -2}, {-2, 2}, {-2, -2},
	{3, 0}, {-3, 0}, {0, -3}, {0, 3}, {3, 1}, {3, -1}, {-1, -3}, {1, -3},
	{-3, -1}, {-3, 1}, {-1, 3}, {1, 3},
}

var (
	neighborhoodsMu sync.Mutex
	neighborhoods   [game.MaxBoardWidth + 1][][]game.Point
)

func neighborhoodsFor(coords *game.Coords) [][]game.Point {
	neighborhoodsMu.Lock()
	defer neighborhoodsMu.Unlock()
	width := coords.Width()
	if neighborhoods[width] == nil {
		table := make([][]game.Point, coords.FirstPointBeyondBoard())
		for _, p := range coords.AllPointsOnBoard() {
			r, c := coords.Row(p), coords.Column(p)
			for _, offset := range neighborhoodOffsets {
				rr, cc := r+offset[0], c+offset[1]
				if coords.IsValidIndex(rr) && coords.IsValidIndex(cc) {
					table[p] = append(table[p], coords.At(rr, cc))
				}
			}
		}
		neighborhoods[width] = table
	}
	return neighborhoods[width]
}

// NearAnotherStone is true for points with a stone of either color within a distance of
// about three.
type NearAnotherStone struct {
	board         *game.Board
	neighborhoods [][]game.Point
}

func NewNearAnotherStone(board *game.Board) *NearAnotherStone {
	return &NearAnotherStone{board: board, neighborhoods: neighborhoodsFor(board.Coords())}
}

func (n *NearAnotherStone) At(p game.Point) bool {
	for _, q := range n.neighborhoods[p] {
		if n.board.ColorAt(q) != game.Vacant {
			return true
		}
	}
	return false
}

// OnThirdOrFourthLine is true for points on the third or fourth line from the nearest edge.
// It depends only on the board width.
type OnThirdOrFourthLine struct {
	bits []bool
}

func NewOnThirdOrFourthLine(coords *game.Coords) *OnThirdOrFourthLine {
	bits := make([]bool, coords.FirstPointBeyondBoard())
	for _, p := range coords.AllPointsOnBoard() {
		if line := Line(coords, p); line == 3 || line == 4 {
			bits[p] = true
		}
	}
	return &OnThirdOrFourthLine{bits: bits}
}

func (l *OnThirdOrFourthLine) At(p game.Point) bool {
	return l.bits[p]
}

// Line returns the 1-based distance of p from the nearest edge.
func Line(coords *game.Coords, p game.Point) int {
	width := coords.Width()
	r := min(coords.Row(p), width-coords.Row(p)-1)
	c := min(coords.Column(p), width-coords.Column(p)-1)
	return 1 + min(r, c)
}

type conjunction struct {
	a, b Predicate
}

// Conjunction is true where both a and b are.
func Conjunction(a, b Predicate) Predicate {
	return conjunction{a: a, b: b}
}

func (c conjunction) At(p game.Point) bool {
	return c.a.At(p) && c.b.At(p)
}

type disjunction struct {
	a, b Predicate
}

// Disjunction is true where either a or b is.
func Disjunction(a, b Predicate) Predicate {
	return disjunction{a: a, b: b}
}

func (d disjunction) At(p game.Point) bool {
	return d.a.At(p) || d.b.At(p)
}
