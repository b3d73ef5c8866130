package agent

import (
	"context"
	"time"

	"ginkgo/experiments/metrics"
	"ginkgo/game"

	"github.com/rs/zerolog/log"
)

// ClockedAgent plays under sudden-death main time, reporting the time left to the searcher's
// time manager before every move. It resigns once its clock runs out.
type ClockedAgent struct {
	*MCTSAgent
	mainTime  time.Duration
	remaining time.Duration
}

func NewClockedAgent(a *MCTSAgent, mainTime time.Duration) *ClockedAgent {
	return &ClockedAgent{MCTSAgent: a, mainTime: mainTime, remaining: mainTime}
}

func (a *ClockedAgent) FindMove(ctx context.Context) (game.Point, metrics.SearchMetric, error) {
	a.player.SetRemainingTime(int(a.remaining.Seconds()))
	start := time.Now()
	move, metric, err := a.MCTSAgent.FindMove(ctx)
	if err != nil {
		return move, metric, err
	}
	a.remaining -= time.Since(start)
	if a.remaining <= 0 {
		log.Warn().Str("color", a.player.Board().ColorToPlay().String()).Msg("out of time")
		return game.Resign, metric, nil
	}
	return move, metric, nil
}

// Remaining is the time left on the clock.
func (a *ClockedAgent) Remaining() time.Duration {
	return a.remaining
}

func (a *ClockedAgent) Reset() {
	a.MCTSAgent.Reset()
	a.remaining = a.mainTime
}
