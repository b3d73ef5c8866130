package agent

import (
	"context"
	"fmt"

	"ginkgo/experiments/metrics"
	"ginkgo/game"
	"ginkgo/searcher"
)

// MCTSAgent plays the moves chosen by a searcher.Player.
type MCTSAgent struct {
	player *searcher.Player
}

func NewMCTSAgent(options ...searcher.Option) *MCTSAgent {
	return &MCTSAgent{player: searcher.NewPlayer(options...)}
}

func (a *MCTSAgent) FindMove(ctx context.Context) (game.Point, metrics.SearchMetric, error) {
	move, err := a.player.BestMove(ctx)
	if err != nil {
		return game.NoPoint, metrics.SearchMetric{}, fmt.Errorf("failed to find move: %w", err)
	}
	return move, a.player.Metrics(), nil
}

func (a *MCTSAgent) Observe(move game.Point) error {
	if move == game.Resign {
		return nil
	}
	if legality := a.player.AcceptMove(move); legality != game.OK {
		return fmt.Errorf("failed to observe %s: %s", a.player.Board().Coords().String(move), legality)
	}
	return nil
}

func (a *MCTSAgent) Reset() {
	a.player.Clear()
}

// Player exposes the underlying searcher.
func (a *MCTSAgent) Player() *searcher.Player {
	return a.player
}
