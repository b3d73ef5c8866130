package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"ginkgo/agent"
	"ginkgo/book"
	"ginkgo/engine"
	"ginkgo/experiments"
	"ginkgo/meta"
	"ginkgo/mover"
	"ginkgo/searcher"
	"ginkgo/timing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "selfplay", "selfplay, throughput, rave or baseline")
	width := flag.Int("width", 9, "Board width")
	komi := flag.Float64("komi", meta.KOMI, "Compensation for white")
	threads := flag.Int("threads", meta.THREADS, "Number of playout goroutines per player")
	msec := flag.Int("msec", meta.MSEC_PER_MOVE, "Thinking time per move in milliseconds")
	memory := flag.Int("memory", 256, "Transposition table budget per player in megabytes")
	games := flag.Int("games", 10, "Games per matchup")
	parallel := flag.Int("parallel", 1, "Games played at the same time")
	rave := flag.Bool("rave", true, "Use RAVE in the search")
	lgrf2 := flag.Bool("lgrf2", true, "Use last good reply in the playouts")
	shape := flag.Bool("shape", false, "Learn and use the shape table")
	policy := flag.String("policy", "", "Rollout policy, overriding -lgrf2 and -shape")
	clock := flag.Duration("clock", 0, "Main time per player; 0 uses -msec for every move")
	timeKind := flag.String("time", string(timing.KindUniform), "Time manager used with -clock: simple, uniform or exiting")
	bookFile := flag.String("book", "", "Game records to build an opening book from")
	out := flag.String("out", "experiments", "Directory experiment results are written under")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings := experiments.Settings{
		Root:     *out,
		Width:    *width,
		Komi:     *komi,
		Games:    *games,
		Memory:   *memory,
		Parallel: *parallel,
	}
	var err error
	switch *mode {
	case "throughput":
		err = experiments.RunThroughputExperiment(ctx, settings, *msec)
	case "rave":
		err = experiments.RunRaveExperiment(ctx, settings, *threads, *msec)
	case "baseline":
		err = experiments.RunBaselineExperiment(ctx, settings, *threads, *msec)
	case "selfplay":
		kind, parseErr := timing.ParseKind(*timeKind)
		if parseErr != nil {
			log.Fatal().Err(parseErr).Msg("invalid time manager")
		}
		options := []searcher.Option{
			searcher.WithWidth(*width),
			searcher.WithKomi(*komi),
			searcher.WithThreads(*threads),
			searcher.WithMsecPerMove(*msec),
			searcher.WithMemory(*memory),
			searcher.WithRave(*rave),
			searcher.WithLgrf2(*lgrf2),
			searcher.WithTimeManager(kind),
			searcher.WithCoupDeGrace(true),
			searcher.WithMetrics(),
		}
		if *shape {
			options = append(options, searcher.WithShape(meta.SHAPE_SCALING_FACTOR, meta.SHAPE_BIAS, meta.SHAPE_MIN_STONES))
		}
		if *policy != "" {
			p, parseErr := mover.ParsePolicy(*policy)
			if parseErr != nil {
				log.Fatal().Err(parseErr).Msg("invalid rollout policy")
			}
			options = append(options, searcher.WithPolicy(p))
		}
		if *bookFile != "" {
			options = append(options, searcher.WithBook(loadBook(*bookFile, *width)))
		}
		err = selfPlay(ctx, *width, *komi, *games, *clock, options)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func loadBook(path string, width int) book.Book {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open book")
	}
	defer f.Close()
	fuseki, err := book.Load(f, width, meta.BOOK_MOVES, meta.BOOK_COUNT_THRESHOLD)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build book")
	}
	log.Info().Int("positions", fuseki.Size()).Msg("loaded opening book")
	return fuseki
}

// selfPlay plays games between two identically configured searchers.
func selfPlay(ctx context.Context, width int, komi float64, games int, clock time.Duration, options []searcher.Option) error {
	newAgent := func() agent.Agent {
		a := agent.NewMCTSAgent(options...)
		if clock > 0 {
			return agent.NewClockedAgent(a, clock)
		}
		return a
	}
	e := engine.LocalEngine(width, komi, newAgent(), newAgent())
	wins := map[string]int{}
	for i := 0; i < games; i++ {
		result, gameMetric, _, err := e.Run(ctx)
		if err != nil {
			return err
		}
		wins[gameMetric.Winner]++
		log.Info().Msgf("game %d of %d: %s in %s", i+1, games, result, gameMetric.Duration.Round(time.Millisecond))
	}
	log.Info().Int("black", wins["black"]).Int("white", wins["white"]).Msg("self-play complete")
	return nil
}
