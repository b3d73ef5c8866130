package searcher

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"ginkgo/book"
	"ginkgo/experiments/metrics"
	"ginkgo/feature"
	"ginkgo/game"
	"ginkgo/meta"
	"ginkgo/mover"
	"ginkgo/patterns"
	"ginkgo/timing"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Player owns the real board and searches it with a pool of playout workers. A Player is
// driven from a single goroutine; workers only run inside BestMove.
type Player struct {
	threads            int
	memory             int
	msecPerMove        int
	width              int
	komi               float64
	rave               bool
	lgrf2              bool
	gestation          int
	biasDelay          int
	shape              bool
	shapeScalingFactor float32
	shapeBias          int
	shapeMinStones     int
	policy             *mover.Policy
	timeKind           timing.Kind
	seed               uint64
	coupDeGrace        bool
	cleanupMode        bool

	kit         *mover.Kit
	board       *game.Board
	firstColor  game.Color
	table       *Table
	descender   *Descender
	updater     TreeUpdater
	workers     []*worker
	book        book.Book
	timeManager timing.Manager
	timeSent    bool
	metrics     metrics.Collector
	lastMetric  metrics.SearchMetric

	keepRunning atomic.Bool
	running     bool
	group       *errgroup.Group
}

func NewPlayer(options ...Option) *Player {
	p := &Player{ // Default values
		threads:            meta.THREADS,
		memory:             meta.MEMORY_MB,
		msecPerMove:        meta.MSEC_PER_MOVE,
		width:              meta.WIDTH,
		komi:               meta.KOMI,
		rave:               true,
		lgrf2:              true,
		gestation:          meta.GESTATION,
		biasDelay:          meta.BIAS_DELAY,
		shapeScalingFactor: meta.SHAPE_SCALING_FACTOR,
		shapeBias:          meta.SHAPE_BIAS,
		shapeMinStones:     meta.SHAPE_MIN_STONES,
		timeKind:           timing.KindUniform,
		seed:               uint64(time.Now().UnixNano()),
		book:               book.None{},
		metrics:            metrics.NewDummyCollector(),
		firstColor:         game.Black,
	}
	for _, option := range options {
		option(p)
	}

	cfg := mover.Config{
		Width:          p.width,
		Komi:           p.komi,
		Policy:         mover.UseWithBias,
		ShapeBias:      p.shapeBias,
		ShapeMinStones: p.shapeMinStones,
	}
	switch {
	case p.policy != nil:
		cfg.Policy = *p.policy
	case p.shape:
		cfg.Policy = mover.Shape
	case p.lgrf2:
		cfg.Policy = mover.LgrfWithBias
	}
	coords := game.ForWidth(p.width)
	if cfg.Policy.UsesLgrf() {
		cfg.Lgrf = feature.NewLgrfTable(coords)
	}
	if cfg.Policy == mover.Shape {
		cfg.ShapeTable = patterns.NewShapeTable(p.shapeScalingFactor)
	}

	p.kit = mover.Build(cfg)
	p.board = p.kit.Board
	if p.rave {
		p.table = NewTable(p.memory, coords, newRaveNode)
		p.descender = NewRaveDescender(p.board, p.table, p.biasDelay)
	} else {
		p.table = NewTable(p.memory, coords, newSimpleNode)
		p.descender = NewUctDescender(p.board, p.table, p.biasDelay)
	}
	p.updater = newTreeUpdater(p.board, p.table, p.gestation, p.metrics)
	if cfg.Lgrf != nil {
		p.updater = newLgrfUpdater(p.updater, cfg.Lgrf, p.board)
	}
	if cfg.ShapeTable != nil {
		p.updater = newShapeUpdater(p.updater, cfg.ShapeTable, p.board)
	}
	p.workers = make([]*worker, p.threads)
	for i := range p.workers {
		p.workers[i] = newWorker(p, mover.Build(cfg), p.seed+uint64(i))
	}

	switch p.timeKind {
	case timing.KindSimple:
		p.timeManager = timing.NewSimple(p.msecPerMove)
	case timing.KindExiting:
		p.timeManager = timing.NewExiting(p.board, func() timing.Stats {
			if root := p.Root(); root != nil {
				return root
			}
			return nil
		})
	default:
		p.timeManager = timing.NewUniform(p.board)
	}

	log.Info().Msgf("player ready: %dx%d, komi %.1f, %d threads, %d nodes, policy %s, rave %t",
		p.width, p.width, p.komi, p.threads, p.table.Capacity(), cfg.Policy, p.rave)
	return p
}

func (p *Player) Board() *game.Board {
	return p.board
}

// Root returns the node of the current position, or nil if the table is full.
func (p *Player) Root() SearchNode {
	return p.updater.Root()
}

// Metrics describes the most recent search.
func (p *Player) Metrics() metrics.SearchMetric {
	return p.lastMetric
}

// Playouts counts the playouts completed by all workers since the player was built.
func (p *Player) Playouts() int {
	total := 0
	for _, w := range p.workers {
		total += w.playouts
	}
	return total
}

// SearchValue exposes the descender's selection value of p at node.
func (p *Player) SearchValue(node SearchNode, move game.Point) float64 {
	return p.descender.SearchValue(node, move)
}

func (p *Player) SetCleanupMode(enabled bool) {
	p.cleanupMode = enabled
}

func (p *Player) SetCoupDeGrace(enabled bool) {
	p.coupDeGrace = enabled
}

func (p *Player) SetColorToPlay(c game.Color) {
	p.board.SetColorToPlay(c)
	if p.board.Turn() == 0 {
		p.firstColor = c
	}
}

// SetRemainingTime reports the clock. From then on the time manager decides how long to
// think.
func (p *Player) SetRemainingTime(seconds int) {
	p.timeSent = true
	p.timeManager.SetRemainingSeconds(seconds)
}

// BestMove searches the current position and returns the move to play. It neither plays the
// move nor advances the board; call AcceptMove for that.
func (p *Player) BestMove(ctx context.Context) (game.Point, error) {
	if err := p.stopThreads(); err != nil {
		return game.NoPoint, err
	}
	if move := p.book.NextMove(p.board); move != game.NoPoint {
		log.Debug().Str("move", p.board.Coords().String(move)).Msg("book move")
		return move, nil
	}
	if p.cleanupMode {
		if !p.findCleanupMoves() {
			return game.Pass, nil
		}
	} else if p.board.Passes() == 1 && p.coupDeGrace {
		if p.CanWinByPassing() {
			return game.Pass, nil
		}
		p.findCleanupMoves()
	}

	p.metrics.Start(len(p.workers))
	if root := p.Root(); root != nil {
		p.metrics.SetTreeReused(!root.IsFresh())
	}
	if !p.timeSent {
		if err := p.search(ctx, p.msecPerMove); err != nil {
			return game.NoPoint, err
		}
	} else {
		p.timeManager.StartNewTurn()
		msec := p.timeManager.Msec()
		log.Debug().Int("msec", msec).Msg("allocating time")
		for msec > 0 {
			if err := p.search(ctx, msec); err != nil {
				return game.NoPoint, err
			}
			msec = p.timeManager.Msec()
		}
	}
	p.lastMetric = p.metrics.Complete()
	log.Info().Int("turn", p.board.Turn()).Int("playouts", p.Playouts()).Msg("search complete")
	return p.descender.BestPlayMove(), nil
}

func (p *Player) search(ctx context.Context, msec int) error {
	p.startThreads(ctx)
	timer := time.NewTimer(time.Duration(msec) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
		return p.stopThreads()
	case <-ctx.Done():
		if err := p.stopThreads(); err != nil {
			return err
		}
		return fmt.Errorf("failed to complete search: %w", ctx.Err())
	}
}

func (p *Player) startThreads(ctx context.Context) {
	if p.running {
		return
	}
	if root := p.Root(); root != nil && !root.BiasUpdated() {
		w := p.workers[0]
		w.copyDataFrom(p.board)
		root.UpdateBias(w.kit.Suggesters, w.kit.Raters)
	}
	p.keepRunning.Store(true)
	group, gctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		group.Go(func() error {
			return w.run(gctx)
		})
	}
	p.group = group
	p.running = true
}

func (p *Player) stopThreads() error {
	if !p.running {
		return nil
	}
	p.keepRunning.Store(false)
	err := p.group.Wait()
	p.running = false
	if err != nil {
		return fmt.Errorf("failed to complete search: %w", err)
	}
	return nil
}

// AcceptMove plays p on the real board and discards the parts of the tree it makes
// unreachable.
func (p *Player) AcceptMove(move game.Point) game.Legality {
	legality := p.board.Play(move)
	if legality == game.OK {
		p.updater.UpdateForAcceptMove()
	}
	return legality
}

// Undo takes back the last move by replaying the game without it.
func (p *Player) Undo() bool {
	if p.board.Turn() == 0 {
		return false
	}
	moves := slices.Clone(p.kit.History.Moves())
	moves = moves[:len(moves)-1]
	p.board.ClearPreservingInitialStones()
	p.board.SetColorToPlay(p.firstColor)
	p.updater.Clear()
	for _, move := range moves {
		p.board.Play(move)
	}
	return true
}

func (p *Player) Clear() {
	p.board.Clear()
	p.updater.Clear()
	p.cleanupMode = false
	p.firstColor = game.Black
}

// SetUpHandicap starts a new game with n black handicap stones. The position is unchanged if
// the handicap is not supported on this board.
func (p *Player) SetUpHandicap(n int) error {
	if err := p.board.SetUpHandicap(n); err != nil {
		return fmt.Errorf("failed to set up handicap: %w", err)
	}
	p.updater.Clear()
	p.cleanupMode = false
	p.firstColor = p.board.ColorToPlay()
	return nil
}

// ReplayGame clears the board and plays moves, stopping at the first illegal one.
func (p *Player) ReplayGame(moves []game.Point) error {
	p.Clear()
	coords := p.board.Coords()
	for i, move := range moves {
		if legality := p.board.Play(move); legality != game.OK {
			return fmt.Errorf("failed to replay move %d (%s): %s", i+1, coords.String(move), legality)
		}
	}
	return nil
}

// FinalScore scores the real board as it stands, from black's point of view.
func (p *Player) FinalScore() float64 {
	return p.kit.FinalScorer.Score()
}

// FindDeadStones returns the stones of color that survive fewer than threshold of a batch
// of playouts from the current position.
func (p *Player) FindDeadStones(threshold float64, color game.Color) *game.PointSet {
	coords := p.board.Coords()
	w := p.workers[0]
	survivals := make([]int, coords.FirstPointBeyondBoard())
	for i := 0; i < meta.DEAD_STONE_RUNS; i++ {
		// Playouts must continue past a game that has already ended
		passes := p.board.Passes()
		p.board.SetPasses(0)
		w.performMcRun(false)
		p.board.SetPasses(passes)
		for _, q := range coords.AllPointsOnBoard() {
			if w.kit.Board.ColorAt(q) == p.board.ColorAt(q) {
				survivals[q]++
			}
		}
	}
	dead := game.NewPointSet(coords.FirstPointBeyondBoard())
	for _, q := range coords.AllPointsOnBoard() {
		if p.board.ColorAt(q) == color && float64(survivals[q]) < meta.DEAD_STONE_RUNS*threshold {
			dead.Add(q)
		}
	}
	log.Debug().Str("color", color.String()).Str("dead", dead.Format(coords)).Msg("found dead stones")
	return dead
}

// LiveStones returns every stone on the board that is not dead at the given threshold.
func (p *Player) LiveStones(threshold float64) *game.PointSet {
	dead := p.FindDeadStones(threshold, game.White)
	dead.AddAll(p.FindDeadStones(threshold, game.Black))
	coords := p.board.Coords()
	live := game.NewPointSet(coords.FirstPointBeyondBoard())
	for _, q := range coords.AllPointsOnBoard() {
		if p.board.ColorAt(q) != game.Vacant && !dead.Contains(q) {
			live.Add(q)
		}
	}
	return live
}

// CanWinByPassing reports whether the side to move wins if its own dead stones are removed
// and the game ends now.
func (p *Player) CanWinByPassing() bool {
	color := p.board.ColorToPlay()
	dead := p.FindDeadStones(1.0, color)
	scratch := p.workers[0].kit.Board
	scratch.CopyFrom(p.board)
	scratch.RemoveStones(dead)
	score := p.kit.FinalScorer.ScoreBoard(scratch)
	if color == game.White {
		return score < 0
	}
	return score > 0
}

// findCleanupMoves steers the search towards capturing dead enemy stones instead of
// passing. It reports false if there is nothing to capture.
func (p *Player) findCleanupMoves() bool {
	coords := p.board.Coords()
	dead := p.FindDeadStones(1.0, p.board.ColorToPlay().Opposite())
	if dead.Size() == 0 {
		return false
	}
	root := p.Root()
	if root == nil {
		return true
	}
	root.Exclude(game.Pass)
	targets := game.NewPointSet(coords.FirstPointBeyondBoard())
	for _, q := range dead.Points() {
		if q == p.board.ChainRoot(q) {
			targets.AddAll(p.board.Liberties(q))
		}
	}
	bias := int(root.Wins(root.MoveWithMostWins(coords)))
	for _, q := range targets.Points() {
		root.Update(q, bias, float32(bias))
	}
	root.SetWinningMove(game.NoPoint)
	return true
}
