package timing

import (
	"fmt"
	"math"

	"ginkgo/game"
)

// Lag reserve kept back from the clock on every allocation.
const reserveSeconds = 10

// Fraction of the vacant points expected to still be played by us.
const movesLeftFraction = 0.2

// Manager decides how long the player thinks. The player calls StartNewTurn, then Msec
// repeatedly, searching for the returned number of milliseconds each time, until Msec
// returns 0.
type Manager interface {
	Msec() int
	SetRemainingSeconds(seconds int)
	StartNewTurn()
}

// Stats is the view of the search root the exiting manager needs.
type Stats interface {
	MoveWithMostWins(coords *game.Coords) game.Point
	WinRate(p game.Point) float32
	Wins(p game.Point) float32
	Runs(p game.Point) int
}

// Simple spends a fixed budget once per turn.
type Simple struct {
	msec    int
	thought bool
}

func NewSimple(msec int) *Simple {
	return &Simple{msec: msec}
}

func (s *Simple) Msec() int {
	if s.thought {
		return 0
	}
	s.thought = true
	return s.msec
}

func (s *Simple) SetRemainingSeconds(int) {}

func (s *Simple) StartNewTurn() {
	s.thought = false
}

// Uniform spreads the remaining clock over the moves expected to remain.
type Uniform struct {
	board         *game.Board
	msecRemaining int
	thought       bool
}

func NewUniform(board *game.Board) *Uniform {
	return &Uniform{board: board}
}

func (u *Uniform) Msec() int {
	if u.thought {
		return 0
	}
	u.thought = true
	return max(1, u.msecRemaining/movesLeft(u.board))
}

func (u *Uniform) SetRemainingSeconds(seconds int) {
	u.msecRemaining = max(1, (seconds-reserveSeconds)*1000)
}

func (u *Uniform) StartNewTurn() {
	u.thought = false
}

const (
	sliceCount = 3
	// Confidence that the best move beats the rest above which thinking stops early.
	exitConfidence = 0.99
)

// Exiting splits each move's budget into slices and stops between slices once the best
// move is clearly ahead. Unused slices roll over into the next move.
type Exiting struct {
	board           *game.Board
	root            func() Stats
	msecRemaining   int
	msecPerSlice    int
	slicesRemaining int
	rollover        int
}

// NewExiting builds an exiting manager. root is called between slices, with the search
// stopped, to read the current root statistics.
func NewExiting(board *game.Board, root func() Stats) *Exiting {
	return &Exiting{board: board, root: root}
}

func (e *Exiting) Msec() int {
	if e.slicesRemaining == 0 {
		e.rollover = 0
		return 0
	}
	if e.slicesRemaining < sliceCount && e.confidenceBestVsRest() > exitConfidence {
		e.rollover = e.slicesRemaining * e.msecPerSlice
		e.slicesRemaining = 0
		return 0
	}
	e.slicesRemaining--
	return e.msecPerSlice
}

// SetRemainingSeconds also starts the slices for the coming move, since the clock is
// reported once per move.
func (e *Exiting) SetRemainingSeconds(seconds int) {
	e.msecRemaining = (seconds - reserveSeconds) * 1000
	e.slicesRemaining = sliceCount
	e.msecPerSlice = (max(1, e.msecRemaining/movesLeft(e.board)) + e.rollover) / sliceCount
}

func (e *Exiting) StartNewTurn() {}

// Rollover is the time saved by the last early exit.
func (e *Exiting) Rollover() int {
	return e.rollover
}

func (e *Exiting) confidenceBestVsRest() float64 {
	root := e.root()
	if root == nil {
		return 0
	}
	coords := e.board.Coords()
	best := root.MoveWithMostWins(coords)
	bestWinRate := float64(root.WinRate(best))
	bestRuns := float64(root.Runs(best))

	var restWins, restRuns float64
	for _, p := range e.board.Vacant().Points() {
		if p != best && root.WinRate(p) > 0 {
			restWins += float64(root.Wins(p))
			restRuns += float64(root.Runs(p))
		}
	}
	if restRuns == 0 {
		return 1
	}
	restWinRate := restWins / restRuns
	if restWinRate <= 0 {
		return 0
	}
	return Confidence(bestWinRate, bestRuns, restWinRate, restRuns)
}

// Confidence is the probability that win rate a really exceeds win rate b, by a normal
// approximation of the difference of two proportions.
func Confidence(winRateA, runsA, winRateB, runsB float64) float64 {
	if runsB == 0 {
		return 1
	}
	z := (winRateA - winRateB) / math.Sqrt(winRateA*(1-winRateA)/runsA+winRateB*(1-winRateB)/runsB)
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

func movesLeft(board *game.Board) int {
	return max(10, int(float64(board.Vacant().Size())*movesLeftFraction))
}

// Kind names a time manager on the command line.
type Kind string

const (
	KindSimple  Kind = "simple"
	KindUniform Kind = "uniform"
	KindExiting Kind = "exiting"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSimple, KindUniform, KindExiting:
		return k, nil
	}
	return "", fmt.Errorf("unknown time manager %q", s)
}
