package engine

import (
	"context"

	"ginkgo/experiments/metrics"
	"ginkgo/gamemaster"
)

type Engine interface {
	// Run plays a game to the end through the referee
	Run(ctx context.Context) (result gamemaster.Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
