package agent

import (
	"context"

	"ginkgo/experiments/metrics"
	"ginkgo/game"
)

// Agent is one side of a game. It keeps its own copy of the position, which the caller
// advances with Observe for the moves of both sides.
type Agent interface {
	// FindMove returns the move to play in the current position without playing it.
	FindMove(ctx context.Context) (game.Point, metrics.SearchMetric, error)
	// Observe plays move, chosen by either side, on the agent's board.
	Observe(move game.Point) error
	// Reset starts a new game.
	Reset()
}
