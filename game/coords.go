package game

import (
	"strconv"
	"strings"
	"sync"

	"github.com/bszcz/mt19937_64"
	"github.com/pkg/errors"
)

// Point is an index into the padded one-dimensional board layout. The first few indices are
// reserved for moves that are not intersections.
type Point int16

const (
	NoPoint Point = 0
	Pass    Point = 1
	Resign  Point = 2
)

// MaxBoardWidth is the largest supported board.
const MaxBoardWidth = 19

// Neighbor slots returned by Coords.Neighbors.
const (
	North = iota
	West
	East
	South
	NorthWest
	NorthEast
	SouthWest
	SouthEast
)

const (
	FirstOrthogonal = North
	LastOrthogonal  = South
	FirstDiagonal   = NorthWest
	LastDiagonal    = SouthEast
)

const columnLetters = "ABCDEFGHJKLMNOPQRST"

// Coords holds everything derived from the board width: point numbering, neighbor tables
// and Zobrist constants. It is immutable once built and shared by every board of that width.
type Coords struct {
	width    int
	south    Point
	all      []Point
	maxMoves int
	// neighbors[p] is indexed by the North..SouthEast constants
	neighbors [][8]Point
	zobrist   [2][]uint64
}

var (
	coordsMu    sync.Mutex
	coordsCache [MaxBoardWidth + 1]*Coords
)

// ForWidth returns the shared Coords for a board of the given width.
func ForWidth(width int) *Coords {
	if width < 1 || width > MaxBoardWidth {
		panic("unsupported board width " + strconv.Itoa(width))
	}
	coordsMu.Lock()
	defer coordsMu.Unlock()
	if coordsCache[width] == nil {
		coordsCache[width] = newCoords(width)
	}
	return coordsCache[width]
}

func newCoords(width int) *Coords {
	c := &Coords{
		width:    width,
		south:    Point(width + 1),
		maxMoves: width * width * 3,
	}
	c.all = make([]Point, 0, width*width)
	for r := 0; r < width; r++ {
		for col := 0; col < width; col++ {
			c.all = append(c.all, c.At(r, col))
		}
	}
	n := c.FirstPointBeyondBoard()
	c.neighbors = make([][8]Point, n)
	c.zobrist[Black] = make([]uint64, n)
	c.zobrist[White] = make([]uint64, n)
	// Seeded with 0 so keys agree between runs
	mt := mt19937_64.New()
	mt.Seed(0)
	for _, p := range c.all {
		s := c.south
		c.neighbors[p] = [8]Point{p - s, p - 1, p + 1, p + s, p - s - 1, p - s + 1, p + s - 1, p + s + 1}
		c.zobrist[Black][p] = mt.Uint64()
		c.zobrist[White][p] = mt.Uint64()
	}
	return c
}

// At returns the point at row r and column c, both zero based from the top left.
func (c *Coords) At(r, col int) Point {
	return Point((r+1)*int(c.south) + col + 1)
}

// Parse reads a GTP vertex such as "d4", "pass" or "resign".
func (c *Coords) Parse(label string) (Point, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	switch label {
	case "PASS":
		return Pass, nil
	case "RESIGN":
		return Resign, nil
	}
	if len(label) < 2 {
		return NoPoint, errors.Errorf("invalid vertex %q", label)
	}
	col := strings.IndexByte(columnLetters, label[0])
	row, err := strconv.Atoi(label[1:])
	if err != nil {
		return NoPoint, errors.Wrapf(err, "invalid row in vertex %q", label)
	}
	row = c.width - row
	if col < 0 || !c.IsValidIndex(row) || !c.IsValidIndex(col) {
		return NoPoint, errors.Errorf("vertex %q is off a %dx%d board", label, c.width, c.width)
	}
	return c.At(row, col), nil
}

// MustParse is Parse for labels known to be valid, typically in tests and fixed tables.
func (c *Coords) MustParse(label string) Point {
	p, err := c.Parse(label)
	if err != nil {
		panic(err)
	}
	return p
}

func (c *Coords) Row(p Point) int {
	return int(p/c.south) - 1
}

func (c *Coords) Column(p Point) int {
	return int(p%c.south) - 1
}

func (c *Coords) IsValidIndex(i int) bool {
	return i >= 0 && i < c.width
}

// IsOnBoard reports whether p is a real intersection.
func (c *Coords) IsOnBoard(p Point) bool {
	return c.IsValidIndex(c.Row(p)) && c.IsValidIndex(c.Column(p))
}

func (c *Coords) Width() int {
	return c.width
}

func (c *Coords) Area() int {
	return c.width * c.width
}

// AllPointsOnBoard returns the on-board points in row-major order. Callers must not modify
// the returned slice.
func (c *Coords) AllPointsOnBoard() []Point {
	return c.all
}

// FirstPointBeyondBoard bounds every on-board point index, so it sizes per-point arrays.
func (c *Coords) FirstPointBeyondBoard() int {
	return c.width*(int(c.south)+1) + 1
}

// FirstPointBeyondExtendedBoard also covers the off-board ring below the last row.
func (c *Coords) FirstPointBeyondExtendedBoard() int {
	return (c.width+1)*(c.width+2) + 1
}

// MaxMovesPerGame is the ply ceiling after which rollouts are abandoned.
func (c *Coords) MaxMovesPerGame() int {
	return c.maxMoves
}

func (c *Coords) Neighbors(p Point) *[8]Point {
	return &c.neighbors[p]
}

// Hash returns the Zobrist constant for a stone of the given color at p.
func (c *Coords) Hash(color Color, p Point) uint64 {
	return c.zobrist[color][p]
}

func (c *Coords) ManhattanDistance(p, q Point) int {
	return abs(c.Row(p)-c.Row(q)) + abs(c.Column(p)-c.Column(q))
}

// String formats p as a GTP vertex.
func (c *Coords) String(p Point) string {
	switch p {
	case Pass:
		return "PASS"
	case NoPoint:
		return "NO_POINT"
	case Resign:
		return "RESIGN"
	}
	return string(columnLetters[c.Column(p)]) + strconv.Itoa(c.width-c.Row(p))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
