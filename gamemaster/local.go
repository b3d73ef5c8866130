package gamemaster

import (
	"fmt"

	"ginkgo/game"
	"ginkgo/score"

	"github.com/rs/zerolog/log"
)

type update struct {
	color game.Color
	move  game.Point
}

type localEngine struct {
	board    *game.Board
	scorer   *score.ChineseFinalScorer
	updateCh chan update
	resigned game.Color
	gameOver bool
}

func NewLocalEngine(width int, komi float64) *localEngine {
	board := game.NewBoard(width)
	return &localEngine{
		board:    board,
		scorer:   score.NewChineseFinalScorer(board, komi),
		resigned: game.Vacant,
	}
}

// Init starts a new game and returns a copy of the empty board along with a getter for the
// moves played from then on.
func (e *localEngine) Init() (*game.Board, UpdateGetter) {
	e.board.Clear()
	e.resigned = game.Vacant
	e.gameOver = false
	// Every move of a game fits, so Play never blocks on a slow reader
	e.updateCh = make(chan update, e.board.Coords().MaxMovesPerGame()+1)

	board := game.NewBoard(e.board.Coords().Width())
	board.CopyFrom(e.board)
	return board, func() (game.Color, game.Point, bool) {
		select {
		case u, ok := <-e.updateCh:
			if !ok { // Game over
				return game.Vacant, game.NoPoint, false
			}
			return u.color, u.move, true
		default:
			return game.Vacant, game.NoPoint, false
		}
	}
}

// Play applies move for the side to move. Resign ends the game in the opponent's favor.
func (e *localEngine) Play(move game.Point) error {
	if e.gameOver {
		return ErrGameOver
	}
	color := e.board.ColorToPlay()
	if move == game.Resign {
		e.resigned = color
		e.finish(color, move)
		return nil
	}
	if legality := e.board.Play(move); legality != game.OK {
		return fmt.Errorf("%w: %s at %s", ErrIllegalMove, legality, e.board.Coords().String(move))
	}
	if e.board.Passes() >= 2 || e.board.Turn() >= e.board.Coords().MaxMovesPerGame()-2 {
		e.finish(color, move)
		return nil
	}
	e.updateCh <- update{color: color, move: move}
	return nil
}

// finish sends the final update and closes the update channel.
func (e *localEngine) finish(color game.Color, move game.Point) {
	e.gameOver = true
	e.updateCh <- update{color: color, move: move}
	close(e.updateCh)
	log.Debug().Int("turn", e.board.Turn()).Str("result", e.Result().String()).Msg("game over")
}

func (e *localEngine) IsOver() bool {
	return e.gameOver
}

// Board is the referee's own board. Callers must not play on it.
func (e *localEngine) Board() *game.Board {
	return e.board
}

// Result scores the board as it stands, counting every stone as alive.
func (e *localEngine) Result() Result {
	if e.resigned != game.Vacant {
		return Result{Winner: e.resigned.Opposite(), Moves: e.board.Turn(), Resigned: true}
	}
	s := e.scorer.Score()
	return Result{Winner: score.WinnerOf(s), Score: s, Moves: e.board.Turn()}
}
