package engine

import (
	"context"
	"fmt"
	"time"

	"ginkgo/agent"
	"ginkgo/experiments/metrics"
	"ginkgo/game"
	"ginkgo/gamemaster"

	"github.com/rs/zerolog/log"
)

// Local plays two in-process agents against each other.
type Local struct {
	referee gamemaster.Engine
	agents  [2]agent.Agent // Indexed by color
}

func LocalEngine(width int, komi float64, black, white agent.Agent) *Local {
	return &Local{
		referee: gamemaster.NewLocalEngine(width, komi),
		agents:  [2]agent.Agent{game.Black: black, game.White: white},
	}
}

// Run executes the entire game loop until the referee declares the game over.
func (e *Local) Run(ctx context.Context) (gamemaster.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	board, getUpdate := e.referee.Init()
	coords := board.Coords()
	for _, a := range e.agents {
		a.Reset()
	}

	startTime := time.Now()
	var moveMetrics []metrics.MoveMetric
	toPlay := game.Black
	for !e.referee.IsOver() {
		move, searchMetric, err := e.agents[toPlay].FindMove(ctx)
		if err != nil {
			return gamemaster.Result{}, metrics.GameMetric{}, moveMetrics, fmt.Errorf("failed to get %s move: %w", toPlay, err)
		}
		if err := e.referee.Play(move); err != nil {
			return gamemaster.Result{}, metrics.GameMetric{}, moveMetrics, fmt.Errorf("failed to play %s move: %w", toPlay, err)
		}

		for {
			color, played, ok := getUpdate()
			if !ok {
				break
			}
			for _, a := range e.agents {
				if err := a.Observe(played); err != nil {
					return gamemaster.Result{}, metrics.GameMetric{}, moveMetrics, err
				}
			}
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         len(moveMetrics) + 1,
				Color:        color.String(),
				Move:         coords.String(played),
				SearchMetric: searchMetric,
			})
			toPlay = color.Opposite()
		}
	}

	result := e.referee.Result()
	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		Winner:     result.Winner.String(),
		Score:      result.Score,
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalMoves: result.Moves,
	}
	log.Info().Msgf("game over after %d moves: %s", result.Moves, result)
	return result, gameMetric, moveMetrics, nil
}
