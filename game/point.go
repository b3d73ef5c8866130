package game

// Neighbor counts for black, white and vacant are packed into 3-bit fields of one int.
const (
	fieldSize    = 3
	fieldMask    = 1<<fieldSize - 1
	maxNeighbors = 4
)

var shift = [3]int{Black: 0, White: fieldSize, Vacant: 2 * fieldSize}

const (
	// An off-board neighbor counts as both a black and a white neighbor
	edgeIncrement      = 1<<0 + 1<<fieldSize - 1<<(2*fieldSize)
	fourVacantNeighbor = maxNeighbors << (2 * fieldSize)
)

var (
	maxColorMask      = [2]int{maxNeighbors << shift[Black], maxNeighbors << shift[White]}
	neighborIncrement = [2]int{1<<shift[Black] - 1<<shift[Vacant], 1<<shift[White] - 1<<shift[Vacant]}
)

// intersection is the per-point record of a board. Chains are circular lists threaded
// through chainNext; only the chain root's liberties are meaningful.
type intersection struct {
	index          Point
	color          Color
	chainID        Point
	chainNext      Point
	liberties      *PointSet
	neighborCounts int
}

func newIntersection(coords *Coords, p Point) *intersection {
	in := &intersection{index: p}
	if coords.IsOnBoard(p) {
		in.liberties = NewPointSet(coords.FirstPointBeyondBoard())
	} else {
		in.color = OffBoard
	}
	return in
}

func (in *intersection) clear() {
	in.liberties.Clear()
	in.color = Vacant
	in.chainID = in.index
	in.chainNext = in.index
	in.neighborCounts = fourVacantNeighbor
}

func (in *intersection) copyFrom(that *intersection) {
	in.chainID = that.chainID
	in.chainNext = that.chainNext
	in.color = that.color
	in.liberties.CopyFrom(that.liberties)
	in.neighborCounts = that.neighborCounts
}

// addToChain splices this point into chain right after the chain's root.
func (in *intersection) addToChain(chain *intersection) {
	in.chainNext = chain.chainNext
	chain.chainNext = in.index
	in.chainID = chain.index
}

func (in *intersection) becomeOneStoneChain(liberties *PointSet) {
	in.chainID = in.index
	in.chainNext = in.index
	in.liberties.CopyFrom(liberties)
}

func (in *intersection) neighborCount(c Color) int {
	return (in.neighborCounts >> shift[c]) & fieldMask
}

func (in *intersection) hasMaxNeighborsForColor(c Color) bool {
	return in.neighborCounts&maxColorMask[c] == maxColorMask[c]
}

func (in *intersection) isInAtari() bool {
	return in.liberties.Size() == 1
}
