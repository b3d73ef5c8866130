package searcher

import (
	"context"
	"fmt"

	"ginkgo/game"
	"ginkgo/mover"

	"github.com/bszcz/mt19937_64"
	"golang.org/x/exp/rand"
)

// mtSource adapts the 64-bit Mersenne Twister to rand.Source.
type mtSource struct {
	mt *mt19937_64.MT
}

func newMTSource(seed uint64) *mtSource {
	s := &mtSource{mt: mt19937_64.New()}
	s.Seed(seed)
	return s
}

func (s *mtSource) Uint64() uint64 {
	return s.mt.Uint64()
}

func (s *mtSource) Seed(seed uint64) {
	s.mt.Seed(int64(seed))
}

// worker runs playouts on a private copy of the player's board.
type worker struct {
	player *Player
	kit    *mover.Kit
	rng    *rand.Rand

	// searchKeys[t] is the search key after turn t, valid up to keyedTurn
	searchKeys []uint64
	keyedTurn  int

	candidates []game.Point
	excluded   []game.Point
	replay     []game.Point
	played     *game.PointSet
	playouts   int
}

func newWorker(player *Player, kit *mover.Kit, seed uint64) *worker {
	coords := kit.Board.Coords()
	return &worker{
		player:     player,
		kit:        kit,
		rng:        rand.New(newMTSource(seed)),
		searchKeys: make([]uint64, coords.MaxMovesPerGame()+1),
		candidates: make([]game.Point, 0, coords.Area()),
		excluded:   make([]game.Point, 0, coords.Area()),
		replay:     make([]game.Point, 0, coords.MaxMovesPerGame()),
		played:     game.NewPointSet(coords.FirstPointBeyondBoard()),
	}
}

func (w *worker) recordKey() {
	w.keyedTurn = w.kit.Board.Turn()
	w.searchKeys[w.keyedTurn] = w.kit.Board.SearchKey()
}

func (w *worker) copyDataFrom(board *game.Board) {
	w.kit.Board.CopyFrom(board)
	w.recordKey()
}

// acceptMove plays a move already known to be legal.
func (w *worker) acceptMove(p game.Point) {
	if legality := w.kit.Board.Play(p); legality != game.OK {
		panic(fmt.Sprintf("descent chose %s: %s", w.kit.Board.Coords().String(p), legality))
	}
	w.recordKey()
}

// performMcRun runs one playout from the player's position and records its result. With
// mercy set, playouts stop early once one side is far ahead on the board.
func (w *worker) performMcRun(mercy bool) game.Color {
	w.copyDataFrom(w.player.board)
	w.player.descender.Descend(w)
	var winner game.Color
	if w.kit.Board.Passes() >= 2 {
		winner = w.kit.PlayoutScorer.Winner()
	} else {
		winner = w.playout(mercy)
	}
	w.player.updater.Update(w, winner)
	w.playouts++
	w.player.metrics.AddPlayout()
	return winner
}

// playout finishes the game with the rollout policy. It returns game.Vacant if the game runs
// past the move limit.
func (w *worker) playout(mercy bool) game.Color {
	board := w.kit.Board
	maxMoves := board.Coords().MaxMovesPerGame()
	if board.Turn() >= maxMoves {
		return game.Vacant
	}
	// The first move is played in full so its search key is known
	w.kit.Mover.SelectAndPlayOneMove(w.rng, false)
	w.recordKey()
	for {
		if board.Passes() >= 2 {
			return w.kit.PlayoutScorer.Winner()
		}
		if mercy {
			if winner := w.kit.StoneCount.MercyWinner(); winner != game.Vacant {
				return winner
			}
		}
		if board.Turn() >= maxMoves {
			return game.Vacant
		}
		w.kit.Mover.SelectAndPlayOneMove(w.rng, true)
	}
}

func (w *worker) run(ctx context.Context) error {
	for w.player.keepRunning.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.performMcRun(true)
	}
	return nil
}
