package gamemaster

import (
	"errors"
	"fmt"

	"ginkgo/game"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrIllegalMove = errors.New("illegal move")
)

// UpdateGetter returns the next move played on the referee's board and the color that played
// it. ok is false when no update is pending.
type UpdateGetter func() (color game.Color, move game.Point, ok bool)

// Engine is the authoritative board of a game between two players.
type Engine interface {
	Init() (*game.Board, UpdateGetter)
	Play(move game.Point) error
	IsOver() bool
	Result() Result
}

// Result describes a finished game. Score is black's area minus white's area minus komi; it
// is zero when the game ended by resignation.
type Result struct {
	Winner   game.Color
	Score    float64
	Moves    int
	Resigned bool
}

func (r Result) String() string {
	switch {
	case r.Resigned:
		return fmt.Sprintf("%s+R", letter(r.Winner))
	case r.Winner == game.Vacant:
		return "0"
	case r.Score < 0:
		return fmt.Sprintf("%s+%.1f", letter(r.Winner), -r.Score)
	}
	return fmt.Sprintf("%s+%.1f", letter(r.Winner), r.Score)
}

func letter(c game.Color) string {
	if c == game.White {
		return "W"
	}
	return "B"
}
