package game

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var handicapLocations = [...]string{"d4", "q16", "q4", "d16", "k10", "d10", "q10", "k4", "k16"}

// Observer is notified after every change to a Board it is attached to. Observers attached to
// worker boards are copied along with the board, so CopyFrom receives an observer of the same
// concrete type.
type Observer interface {
	Update(color Color, p Point, captured []Point)
	Clear()
	CopyFrom(that Observer)
}

// Board is a mutable Go position with incremental chain, liberty and hash maintenance. A
// Board is owned by one goroutine; searches copy it into worker-local boards with CopyFrom.
type Board struct {
	coords      *Coords
	points      []*intersection
	colorToPlay Color
	turn        int
	passes      int
	koPoint     Point
	hash        uint64
	vacant      *PointSet
	superKo     *SuperKoTable
	initial     [2]*PointSet
	observers   []Observer

	// Scratch state filled by legality and consumed by the play that follows it
	friendlyChains   []Point
	enemyChains      []Point
	lastPlayLibs     *PointSet
	proposedHash     uint64
	captured         []Point
	capturedNeighbor []Point
}

// NewBoard returns an empty board of the given width with black to play.
func NewBoard(width int) *Board {
	coords := ForWidth(width)
	n := coords.FirstPointBeyondBoard()
	b := &Board{
		coords:           coords,
		points:           make([]*intersection, coords.FirstPointBeyondExtendedBoard()),
		vacant:           NewPointSet(n),
		superKo:          NewSuperKoTable(coords),
		initial:          [2]*PointSet{NewPointSet(n), NewPointSet(n)},
		friendlyChains:   make([]Point, 0, 4),
		enemyChains:      make([]Point, 0, 4),
		lastPlayLibs:     NewPointSet(n),
		captured:         make([]Point, 0, coords.Area()),
		capturedNeighbor: make([]Point, 0, 4),
	}
	for p := range b.points {
		b.points[p] = newIntersection(coords, Point(p))
	}
	b.Clear()
	return b
}

// AddObserver attaches o. Observers must be attached before the first move.
func (b *Board) AddObserver(o Observer) {
	if b.turn != 0 || b.hash != Empty {
		panic("observers must be added to an untouched board")
	}
	b.observers = append(b.observers, o)
}

func (b *Board) Coords() *Coords {
	return b.coords
}

// Clear empties the board, the history set and every observer.
func (b *Board) Clear() {
	b.colorToPlay = Black
	b.hash = Empty
	b.koPoint = NoPoint
	b.passes = 0
	b.turn = 0
	b.superKo.Clear()
	b.vacant.Clear()
	b.initial[Black].Clear()
	b.initial[White].Clear()
	for _, p := range b.coords.AllPointsOnBoard() {
		in := b.points[p]
		in.clear()
		b.vacant.AddKnownAbsent(p)
		neighbors := b.coords.Neighbors(p)
		for i := FirstOrthogonal; i <= LastOrthogonal; i++ {
			if !b.coords.IsOnBoard(neighbors[i]) {
				in.neighborCounts += edgeIncrement
			}
		}
	}
	for _, o := range b.observers {
		o.Clear()
	}
}

// ClearPreservingInitialStones clears the board and puts back the handicap or problem
// stones placed with PlaceInitialStone.
func (b *Board) ClearPreservingInitialStones() {
	var saved [2][]Point
	for c := Black; c <= White; c++ {
		saved[c] = slices.Clone(b.initial[c].Points())
	}
	b.Clear()
	for c := Black; c <= White; c++ {
		for _, p := range saved[c] {
			b.PlaceInitialStone(c, p)
		}
	}
}

// CopyFrom makes b an exact copy of that, observers included. Both boards must have the same
// width and the same observer layout.
func (b *Board) CopyFrom(that *Board) {
	b.colorToPlay = that.colorToPlay
	b.hash = that.hash
	b.koPoint = that.koPoint
	b.passes = that.passes
	b.turn = that.turn
	for i, o := range b.observers {
		o.CopyFrom(that.observers[i])
	}
	for _, p := range b.coords.AllPointsOnBoard() {
		b.points[p].copyFrom(that.points[p])
	}
	b.superKo.CopyFrom(that.superKo)
	b.vacant.CopyFrom(that.vacant)
	b.initial[Black].CopyFrom(that.initial[Black])
	b.initial[White].CopyFrom(that.initial[White])
}

func (b *Board) ColorAt(p Point) Color {
	return b.points[p].color
}

func (b *Board) ColorToPlay() Color {
	return b.colorToPlay
}

func (b *Board) SetColorToPlay(c Color) {
	b.colorToPlay = c
}

func (b *Board) Turn() int {
	return b.turn
}

func (b *Board) Passes() int {
	return b.passes
}

func (b *Board) SetPasses(passes int) {
	b.passes = passes
}

func (b *Board) KoPoint() Point {
	return b.koPoint
}

// Hash is the Zobrist hash of the stones on the board.
func (b *Board) Hash() uint64 {
	return b.hash
}

// SearchKey extends Hash with the ko point and the side to move, so that positions that
// differ only in those respects get different transposition table entries. Passes are not
// included; end-of-game positions are never stored.
func (b *Board) SearchKey() uint64 {
	key := b.hash
	if b.koPoint != NoPoint {
		key ^= b.coords.Hash(b.colorToPlay, b.koPoint)
	}
	if b.colorToPlay == White {
		key = ^key
	}
	return key
}

// Vacant returns the live set of vacant points. Callers must not modify it.
func (b *Board) Vacant() *PointSet {
	return b.vacant
}

// Liberties returns the liberties of the chain containing the stone at p.
func (b *Board) Liberties(p Point) *PointSet {
	return b.points[b.points[p].chainID].liberties
}

func (b *Board) ChainRoot(p Point) Point {
	return b.points[p].chainID
}

func (b *Board) ChainNext(p Point) Point {
	return b.points[p].chainNext
}

// NeighborCount returns how many orthogonal neighbors of p have color c. Edges count as
// both black and white.
func (b *Board) NeighborCount(p Point, c Color) int {
	return b.points[p].neighborCount(c)
}

func (b *Board) HasMaxNeighborsForColor(c Color, p Point) bool {
	return b.points[p].hasMaxNeighborsForColor(c)
}

// InitialStones returns the stones placed with PlaceInitialStone for color c.
func (b *Board) InitialStones(c Color) *PointSet {
	return b.initial[c]
}

// IsLegal reports whether the side to move may play p. Pass is always legal.
func (b *Board) IsLegal(p Point) bool {
	if p == Pass {
		return true
	}
	return b.legality(b.colorToPlay, p) == OK
}

// Play attempts p for the side to move.
func (b *Board) Play(p Point) Legality {
	if p == Pass {
		b.pass()
		return OK
	}
	if result := b.legality(b.colorToPlay, p); result != OK {
		return result
	}
	b.finalizePlay(b.colorToPlay, p)
	b.colorToPlay = b.colorToPlay.Opposite()
	b.passes = 0
	b.turn++
	b.hash = b.proposedHash
	b.superKo.Add(b.hash)
	b.notifyObservers(b.colorToPlay.Opposite(), p)
	return OK
}

// PlayLabel is Play for a GTP vertex.
func (b *Board) PlayLabel(label string) (Legality, error) {
	p, err := b.coords.Parse(label)
	if err != nil {
		return OK, err
	}
	return b.Play(p), nil
}

// PlayFast is Play without the occupancy and superko checks and without hash maintenance.
// The caller guarantees p is vacant, as rollout movers do.
func (b *Board) PlayFast(p Point) Legality {
	if p == Pass {
		b.pass()
		return OK
	}
	if result := b.legalityFast(b.colorToPlay, p); result != OK {
		return result
	}
	b.finalizePlay(b.colorToPlay, p)
	b.colorToPlay = b.colorToPlay.Opposite()
	b.passes = 0
	b.turn++
	b.notifyObservers(b.colorToPlay.Opposite(), p)
	return OK
}

func (b *Board) pass() {
	b.koPoint = NoPoint
	b.colorToPlay = b.colorToPlay.Opposite()
	b.passes++
	b.turn++
	b.captured = b.captured[:0]
	b.notifyObservers(b.colorToPlay.Opposite(), Pass)
}

// PlaceInitialStone puts a stone of color c on p outside the normal move sequence. The turn
// counter and side to move are unchanged.
func (b *Board) PlaceInitialStone(c Color, p Point) {
	// legality is run for the scratch state finalizePlay consumes
	b.legality(c, p)
	b.finalizePlay(c, p)
	b.initial[c].Add(p)
	b.hash = b.proposedHash
	b.superKo.Add(b.hash)
	b.notifyObservers(c, p)
}

// SetUpHandicap clears the board, places n black stones on the standard 19x19 points and
// gives white the move. Only 2 to 9 stones on a 19x19 board are supported.
func (b *Board) SetUpHandicap(n int) error {
	if b.coords.Width() != MaxBoardWidth {
		return errors.Errorf("handicap needs a %dx%d board, not %dx%d",
			MaxBoardWidth, MaxBoardWidth, b.coords.Width(), b.coords.Width())
	}
	if n < 2 || n > len(handicapLocations) {
		return errors.Errorf("handicap of %d stones is outside 2..%d", n, len(handicapLocations))
	}
	b.Clear()
	for i := 0; i < n; i++ {
		if (n == 6 || n == 8) && i == 4 {
			i++
			n++
		}
		b.PlaceInitialStone(Black, b.coords.MustParse(handicapLocations[i]))
	}
	b.colorToPlay = White
	return nil
}

// SetUpProblem clears the board and places stones from a diagram of '#', 'O' and '.' rows.
func (b *Board) SetUpProblem(diagram []string, colorToPlay Color) error {
	width := b.coords.Width()
	if len(diagram) != width {
		return errors.Errorf("diagram has %d rows, want %d", len(diagram), width)
	}
	b.Clear()
	for r, row := range diagram {
		if len(row) != width {
			return errors.Errorf("diagram row %d has %d columns, want %d", r, len(row), width)
		}
		for c := 0; c < width; c++ {
			color, ok := ColorForGlyph(row[c])
			switch {
			case !ok || color == OffBoard:
				return errors.Errorf("invalid glyph %q at row %d column %d", row[c], r, c)
			case color.IsStone():
				p := b.coords.At(r, c)
				// a stone left without liberties would corrupt its chain
				if legality := b.legality(color, p); legality == Suicide || legality == Occupied {
					b.Clear()
					return errors.Errorf("cannot place %s at %s: %s", color, b.coords.String(p), legality)
				}
				b.PlaceInitialStone(color, p)
			}
		}
	}
	b.colorToPlay = colorToPlay
	return nil
}

// RemoveStones marks the given stones vacant without touching chains or the hash. It is only
// used on scratch boards for final scoring.
func (b *Board) RemoveStones(dead *PointSet) {
	for _, p := range dead.Points() {
		b.points[p].color = Vacant
		b.vacant.Add(p)
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	width := b.coords.Width()
	for r := 0; r < width; r++ {
		for c := 0; c < width; c++ {
			sb.WriteByte(b.points[b.coords.At(r, c)].color.Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) legality(c Color, p Point) Legality {
	if b.turn >= b.coords.MaxMovesPerGame()-2 {
		return GameTooLong
	}
	if b.points[p].color != Vacant {
		return Occupied
	}
	if p == b.koPoint {
		return KoViolation
	}
	if b.isSuicidal(c, p) {
		return Suicide
	}
	b.proposedHash = b.hashAfterRemovingCapturedStones(c, p)
	if b.superKo.Contains(b.proposedHash) {
		return KoViolation
	}
	return OK
}

func (b *Board) legalityFast(c Color, p Point) Legality {
	if b.turn >= b.coords.MaxMovesPerGame()-2 {
		return GameTooLong
	}
	if p == b.koPoint {
		return KoViolation
	}
	if b.isSuicidal(c, p) {
		return Suicide
	}
	return OK
}

// isSuicidal also records the neighboring chains and direct liberties of p for finalizePlay.
func (b *Board) isSuicidal(c Color, p Point) bool {
	b.friendlyChains = b.friendlyChains[:0]
	b.enemyChains = b.enemyChains[:0]
	b.lastPlayLibs.Clear()
	suicide := true
	neighbors := b.coords.Neighbors(p)
	for i := FirstOrthogonal; i <= LastOrthogonal; i++ {
		n := neighbors[i]
		switch color := b.points[n].color; {
		case color == Vacant:
			b.lastPlayLibs.Add(n)
			suicide = false
		case color == c:
			chain := b.points[n].chainID
			if !slices.Contains(b.friendlyChains, chain) {
				b.friendlyChains = append(b.friendlyChains, chain)
			}
			suicide = suicide && b.points[chain].isInAtari()
		case color != OffBoard:
			chain := b.points[n].chainID
			if !slices.Contains(b.enemyChains, chain) {
				b.enemyChains = append(b.enemyChains, chain)
			}
			suicide = suicide && !b.points[chain].isInAtari()
		}
	}
	return suicide
}

func (b *Board) hashAfterRemovingCapturedStones(c Color, p Point) uint64 {
	result := b.hash ^ b.coords.Hash(c, p)
	enemy := c.Opposite()
	for _, chain := range b.enemyChains {
		if !b.points[chain].isInAtari() {
			continue
		}
		s := chain
		for {
			result ^= b.coords.Hash(enemy, s)
			s = b.points[s].chainNext
			if s == chain {
				break
			}
		}
	}
	return result
}

func (b *Board) finalizePlay(c Color, p Point) {
	lastVacantCount := b.vacant.Size()
	in := b.points[p]
	in.color = c
	b.vacant.Remove(p)
	surrounded := in.hasMaxNeighborsForColor(c.Opposite())
	neighbors := b.coords.Neighbors(p)
	for i := FirstOrthogonal; i <= LastOrthogonal; i++ {
		b.points[neighbors[i]].neighborCounts += neighborIncrement[c]
	}
	b.adjustFriendlyNeighbors(p)
	b.adjustEnemyNeighbors(c, p)
	if lastVacantCount == b.vacant.Size() && surrounded {
		// The single captured stone was appended last
		b.koPoint = b.vacant.Get(b.vacant.Size() - 1)
	} else {
		b.koPoint = NoPoint
	}
}

func (b *Board) adjustFriendlyNeighbors(p Point) {
	if len(b.friendlyChains) == 0 {
		b.points[p].becomeOneStoneChain(b.lastPlayLibs)
		return
	}
	chain := b.friendlyChains[0]
	b.points[p].addToChain(b.points[chain])
	b.points[chain].liberties.AddAll(b.lastPlayLibs)
	for _, ally := range b.friendlyChains[1:] {
		if b.points[chain].liberties.Size() >= b.points[ally].liberties.Size() {
			b.mergeChains(chain, ally)
		} else {
			b.mergeChains(ally, chain)
			chain = ally
		}
	}
	b.points[chain].liberties.RemoveKnownPresent(p)
}

func (b *Board) adjustEnemyNeighbors(c Color, p Point) {
	b.captured = b.captured[:0]
	for _, enemy := range b.enemyChains {
		if b.points[enemy].isInAtari() {
			s := enemy
			for {
				// removeStone leaves chainNext intact
				b.removeStone(c.Opposite(), s)
				s = b.points[s].chainNext
				if s == enemy {
					break
				}
			}
		} else {
			b.points[enemy].liberties.RemoveKnownPresent(p)
		}
	}
}

// mergeChains relabels every stone of appendage and splices the two circular lists.
func (b *Board) mergeChains(base, appendage Point) {
	b.points[base].liberties.AddAll(b.points[appendage].liberties)
	root := b.points[base].chainID
	s := appendage
	for {
		b.points[s].chainID = root
		s = b.points[s].chainNext
		if s == appendage {
			break
		}
	}
	b.points[base].chainNext, b.points[appendage].chainNext = b.points[appendage].chainNext, b.points[base].chainNext
}

func (b *Board) removeStone(c Color, p Point) {
	b.points[p].color = Vacant
	b.vacant.AddKnownAbsent(p)
	b.capturedNeighbor = b.capturedNeighbor[:0]
	neighbors := b.coords.Neighbors(p)
	for i := FirstOrthogonal; i <= LastOrthogonal; i++ {
		n := b.points[neighbors[i]]
		n.neighborCounts -= neighborIncrement[c]
		if n.color.IsStone() && !slices.Contains(b.capturedNeighbor, n.chainID) {
			b.capturedNeighbor = append(b.capturedNeighbor, n.chainID)
		}
	}
	for _, chain := range b.capturedNeighbor {
		b.points[chain].liberties.AddKnownAbsent(p)
	}
	b.captured = append(b.captured, p)
}

func (b *Board) notifyObservers(c Color, p Point) {
	for _, o := range b.observers {
		o.Update(c, p, b.captured)
	}
}
