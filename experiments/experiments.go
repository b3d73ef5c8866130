package experiments

import (
	"context"
	"fmt"

	"ginkgo/agent"
	"ginkgo/engine"
	"ginkgo/experiments/metrics"
	"ginkgo/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Settings shared by every game of an experiment.
type Settings struct {
	Root     string // Directory the results are written under
	Width    int
	Komi     float64
	Games    int // Per matchup
	Memory   int // Megabytes per search agent
	Parallel int // Games played at the same time
}

type matchUp struct {
	black metrics.AgentConfig
	white metrics.AgentConfig
}

// RunThroughputExperiment pits each thread count against itself, measuring playouts per
// second. Games are played one at a time so searches do not compete for cores.
func RunThroughputExperiment(ctx context.Context, s Settings, msec int) error {
	configs := lo.Map([]int{1, 2, 4, 8, 16}, func(threads, i int) metrics.AgentConfig {
		return metrics.AgentConfig{ID: i + 1, Threads: threads, Msec: msec, Rave: true, Lgrf2: true}
	})
	// Same config for both players for the same playing strength and similar game length
	matchUps := lo.Map(configs, func(c metrics.AgentConfig, _ int) matchUp {
		return matchUp{black: c, white: c}
	})
	s.Parallel = 1
	return runExperiment(ctx, "throughput", s, configs, matchUps)
}

// RunRaveExperiment pairs a RAVE searcher against a plain UCT searcher, alternating colors.
func RunRaveExperiment(ctx context.Context, s Settings, threads, msec int) error {
	rave := metrics.AgentConfig{ID: 1, Threads: threads, Msec: msec, Rave: true, Lgrf2: true}
	uct := metrics.AgentConfig{ID: 2, Threads: threads, Msec: msec, Lgrf2: true}
	matchUps := []matchUp{{black: rave, white: uct}, {black: uct, white: rave}}
	return runExperiment(ctx, "rave", s, []metrics.AgentConfig{rave, uct}, matchUps)
}

// RunBaselineExperiment pairs the default searcher against random play.
func RunBaselineExperiment(ctx context.Context, s Settings, threads, msec int) error {
	search := metrics.AgentConfig{ID: 1, Threads: threads, Msec: msec, Rave: true, Lgrf2: true}
	random := metrics.AgentConfig{ID: 0, Random: true}
	matchUps := []matchUp{{black: search, white: random}, {black: random, white: search}}
	return runExperiment(ctx, "baseline", s, []metrics.AgentConfig{search, random}, matchUps)
}

func runExperiment(ctx context.Context, name string, s Settings, configs []metrics.AgentConfig, matchUps []matchUp) error {
	writer, err := metrics.NewWriter(s.Root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msgf("starting %s experiment...", name)

	// Each game gets a fixed slot so concurrent games never share state
	total := len(matchUps) * s.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, s.Parallel))
	for mi, m := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between black=%+v and white=%+v...", mi+1, len(matchUps), m.black, m.white)
		for i := 0; i < s.Games; i++ {
			id := mi*s.Games + i + 1
			group.Go(func() error {
				e := engine.LocalEngine(s.Width, s.Komi, createAgent(m.black, s, id), createAgent(m.white, s, id))
				result, gameMetric, moveMetrics, err := e.Run(gctx)
				if err != nil {
					return fmt.Errorf("failed to run game %d: %w", id, err)
				}
				gameRecords[id-1] = metrics.GameRecord{ID: id, Black: m.black.ID, White: m.white.ID, GameMetric: gameMetric}
				moveRecords[id-1] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
					return metrics.MoveRecord{Game: id, MoveMetric: mm}
				})
				log.Info().Msgf("completed matchup %d game %d with result: %s", mi+1, i+1, result)
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return err
	}
	log.Info().Msgf("completed %s experiment", name)

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(lo.Flatten(moveRecords)); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}

func createAgent(config metrics.AgentConfig, s Settings, game int) agent.Agent {
	seed := uint64(game*1000 + config.ID)
	if config.Random {
		return agent.NewRandomAgent(s.Width, s.Komi, seed)
	}
	return agent.NewMCTSAgent(
		searcher.WithWidth(s.Width),
		searcher.WithKomi(s.Komi),
		searcher.WithThreads(config.Threads),
		searcher.WithMsecPerMove(config.Msec),
		searcher.WithMemory(s.Memory),
		searcher.WithRave(config.Rave),
		searcher.WithLgrf2(config.Lgrf2),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
}
