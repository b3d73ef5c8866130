package agent

import (
	"context"
	"fmt"

	"ginkgo/experiments/metrics"
	"ginkgo/game"
	"ginkgo/mover"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// RandomAgent plays a uniformly random feasible legal move, passing when there is none. It is
// the baseline opponent in experiments.
type RandomAgent struct {
	kit *mover.Kit
	rng *rand.Rand
}

func NewRandomAgent(width int, komi float64, seed uint64) *RandomAgent {
	return &RandomAgent{
		kit: mover.Build(mover.Config{Width: width, Komi: komi, Policy: mover.Feasible}),
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (a *RandomAgent) FindMove(ctx context.Context) (game.Point, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return game.NoPoint, metrics.SearchMetric{}, err
	}
	board := a.kit.Board
	candidates := lo.Filter(board.Vacant().Points(), func(p game.Point, _ int) bool {
		return a.kit.Filter.At(p) && board.IsLegal(p)
	})
	if len(candidates) == 0 {
		return game.Pass, metrics.SearchMetric{}, nil
	}
	return candidates[a.rng.Intn(len(candidates))], metrics.SearchMetric{}, nil
}

func (a *RandomAgent) Observe(move game.Point) error {
	if move == game.Resign {
		return nil
	}
	if legality := a.kit.Board.Play(move); legality != game.OK {
		return fmt.Errorf("failed to observe %s: %s", a.kit.Board.Coords().String(move), legality)
	}
	return nil
}

func (a *RandomAgent) Reset() {
	a.kit.Board.Clear()
}
