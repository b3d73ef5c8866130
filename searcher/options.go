package searcher

import (
	"ginkgo/book"
	"ginkgo/experiments/metrics"
	"ginkgo/game"
	"ginkgo/mover"
	"ginkgo/timing"
)

type Option func(p *Player)

func WithThreads(threads int) Option {
	return func(p *Player) {
		if threads > 0 {
			p.threads = threads
		}
	}
}

// WithMemory sets the transposition table budget in megabytes.
func WithMemory(megabytes int) Option {
	return func(p *Player) {
		if megabytes > 0 {
			p.memory = megabytes
		}
	}
}

// WithMsecPerMove sets the thinking time used while no clock has been reported.
func WithMsecPerMove(msec int) Option {
	return func(p *Player) {
		if msec > 0 {
			p.msecPerMove = msec
		}
	}
}

// WithWidth sets the board width. Widths outside 1..game.MaxBoardWidth are ignored.
func WithWidth(width int) Option {
	return func(p *Player) {
		if width > 0 && width <= game.MaxBoardWidth {
			p.width = width
		}
	}
}

func WithKomi(komi float64) Option {
	return func(p *Player) {
		p.komi = komi
	}
}

func WithRave(enabled bool) Option {
	return func(p *Player) {
		p.rave = enabled
	}
}

func WithLgrf2(enabled bool) Option {
	return func(p *Player) {
		p.lgrf2 = enabled
	}
}

// WithGestation sets how many runs a move needs before its position gets a node.
func WithGestation(runs int) Option {
	return func(p *Player) {
		if runs >= 0 {
			p.gestation = runs
		}
	}
}

// WithBiasDelay sets how many runs a node needs before the heuristics bias it.
func WithBiasDelay(runs int) Option {
	return func(p *Player) {
		if runs >= 0 {
			p.biasDelay = runs
		}
	}
}

// WithShape turns on the learned shape table and rater.
func WithShape(scalingFactor float32, bias, minStones int) Option {
	return func(p *Player) {
		p.shape = true
		if scalingFactor > 0 {
			p.shapeScalingFactor = scalingFactor
		}
		if bias > 0 {
			p.shapeBias = bias
		}
		if minStones > 0 {
			p.shapeMinStones = minStones
		}
	}
}

// WithPolicy replaces the rollout policy otherwise derived from WithLgrf2 and WithShape.
func WithPolicy(policy mover.Policy) Option {
	return func(p *Player) {
		p.policy = &policy
	}
}

func WithTimeManager(kind timing.Kind) Option {
	return func(p *Player) {
		p.timeKind = kind
	}
}

func WithBook(b book.Book) Option {
	return func(p *Player) {
		if b != nil {
			p.book = b
		}
	}
}

func WithCoupDeGrace(enabled bool) Option {
	return func(p *Player) {
		p.coupDeGrace = enabled
	}
}

// WithSeed fixes the seeds of the worker random number generators.
func WithSeed(seed uint64) Option {
	return func(p *Player) {
		p.seed = seed
	}
}

func WithMetrics() Option {
	return func(p *Player) {
		p.metrics = metrics.NewCollector()
	}
}
