package feature

import (
	"math"
	"strings"

	"ginkgo/game"

	"github.com/samber/lo"
)

// AtariObserver tracks, for each color, the roots of chains that have exactly one liberty.
type AtariObserver struct {
	board  *game.Board
	chains [2]*game.PointSet
}

// NewAtariObserver returns an observer attached to board.
func NewAtariObserver(board *game.Board) *AtariObserver {
	n := board.Coords().FirstPointBeyondBoard()
	o := &AtariObserver{
		board:  board,
		chains: [2]*game.PointSet{game.NewPointSet(n), game.NewPointSet(n)},
	}
	board.AddObserver(o)
	return o
}

// ChainsInAtari returns the roots of the chains of color c that are in atari.
func (o *AtariObserver) ChainsInAtari(c game.Color) *game.PointSet {
	return o.chains[c]
}

func (o *AtariObserver) Clear() {
	o.chains[game.Black].Clear()
	o.chains[game.White].Clear()
}

func (o *AtariObserver) CopyFrom(that game.Observer) {
	original := that.(*AtariObserver)
	o.chains[game.Black].CopyFrom(original.chains[game.Black])
	o.chains[game.White].CopyFrom(original.chains[game.White])
}

func (o *AtariObserver) Update(color game.Color, p game.Point, captured []game.Point) {
	if p == game.Pass {
		return
	}
	enemy := color.Opposite()
	o.removeInvalidChains(color)
	o.removeInvalidChains(enemy)
	if o.board.Liberties(p).Size() == 1 {
		o.chains[color].Add(o.board.ChainRoot(p))
	}
	neighbors := o.board.Coords().Neighbors(p)
	for i := game.FirstOrthogonal; i <= game.LastOrthogonal; i++ {
		n := neighbors[i]
		if o.board.ColorAt(n) == enemy && o.board.Liberties(n).Size() == 1 {
			o.chains[enemy].Add(o.board.ChainRoot(n))
		}
	}
}

// removeInvalidChains drops entries that were captured, merged into another chain or
// escaped from atari.
func (o *AtariObserver) removeInvalidChains(c game.Color) {
	chains := o.chains[c]
	for i := 0; i < chains.Size(); {
		p := chains.Get(i)
		if o.board.ColorAt(p) != c || o.board.ChainRoot(p) != p || o.board.Liberties(p).Size() > 1 {
			// The last element moves into slot i
			chains.RemoveKnownPresent(p)
			continue
		}
		i++
	}
}

// StoneCountObserver counts the stones of each color and detects a mercy-rule win.
type StoneCountObserver struct {
	counts [2]int
	black  int
	white  int
}

// NewStoneCountObserver returns an observer attached to board. Mercy thresholds scale with
// the board area and komi.
func NewStoneCountObserver(board *game.Board, komi float64) *StoneCountObserver {
	base := max(board.Coords().Area()/6, int(2*komi))
	o := &StoneCountObserver{
		black: base + int(math.Ceil(komi)),
		white: -base + int(math.Floor(komi)),
	}
	board.AddObserver(o)
	return o
}

func (o *StoneCountObserver) Count(c game.Color) int {
	return o.counts[c]
}

// MercyWinner returns the color whose stone lead is overwhelming, or Vacant if neither
// side has such a lead.
func (o *StoneCountObserver) MercyWinner() game.Color {
	difference := o.counts[game.Black] - o.counts[game.White]
	switch {
	case difference >= o.black:
		return game.Black
	case difference <= o.white:
		return game.White
	}
	return game.Vacant
}

func (o *StoneCountObserver) Clear() {
	o.counts = [2]int{}
}

func (o *StoneCountObserver) CopyFrom(that game.Observer) {
	o.counts = that.(*StoneCountObserver).counts
}

func (o *StoneCountObserver) Update(color game.Color, p game.Point, captured []game.Point) {
	if p == game.Pass {
		return
	}
	o.counts[color]++
	o.counts[color.Opposite()] -= len(captured)
}

// HistoryObserver records the moves of a game, including passes. Initial stones are not
// moves and are not recorded.
type HistoryObserver struct {
	board *game.Board
	moves []game.Point
}

// NewHistoryObserver returns an observer attached to board.
func NewHistoryObserver(board *game.Board) *HistoryObserver {
	o := &HistoryObserver{
		board: board,
		moves: make([]game.Point, 0, board.Coords().MaxMovesPerGame()),
	}
	board.AddObserver(o)
	return o
}

// Get returns the move played at turn t, or NoPoint before the first move.
func (o *HistoryObserver) Get(t int) game.Point {
	if t < 0 || t >= len(o.moves) {
		return game.NoPoint
	}
	return o.moves[t]
}

func (o *HistoryObserver) Size() int {
	return len(o.moves)
}

// Moves returns a view of the recorded moves. It is invalidated by the next update.
func (o *HistoryObserver) Moves() []game.Point {
	return o.moves
}

func (o *HistoryObserver) Clear() {
	o.moves = o.moves[:0]
}

func (o *HistoryObserver) CopyFrom(that game.Observer) {
	o.moves = append(o.moves[:0], that.(*HistoryObserver).moves...)
}

func (o *HistoryObserver) Update(color game.Color, p game.Point, captured []game.Point) {
	if o.board.Turn() > 0 {
		o.moves = append(o.moves, p)
	}
}

func (o *HistoryObserver) String() string {
	coords := o.board.Coords()
	labels := lo.Map(o.moves, func(p game.Point, _ int) string { return coords.String(p) })
	return "[" + strings.Join(labels, ", ") + "]"
}
