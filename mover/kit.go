package mover

import (
	"fmt"

	"ginkgo/feature"
	"ginkgo/game"
	"ginkgo/patterns"
	"ginkgo/score"
)

// Policy names a rollout policy, from uniformly random to the full heuristic chain.
type Policy int

const (
	SimpleRandom Policy = iota
	Feasible
	Capturer
	EscapeCapturer
	EscapePatternCapturer
	UseWithBias
	LgrfWithBias
	Shape
)

var policyNames = [...]string{
	SimpleRandom:          "simple-random",
	Feasible:              "feasible",
	Capturer:              "capturer",
	EscapeCapturer:        "escape-capturer",
	EscapePatternCapturer: "escape-pattern-capturer",
	UseWithBias:           "use-with-bias",
	LgrfWithBias:          "lgrf-with-bias",
	Shape:                 "shape",
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(name string) (Policy, error) {
	for i, n := range policyNames {
		if n == name {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rollout policy %q", name)
}

// UsesLgrf reports whether kits built for p read a last-good-reply table.
func (p Policy) UsesLgrf() bool {
	return p == LgrfWithBias || p == Shape
}

// SuggesterBias is the prior given to moves proposed by the tactical suggesters.
const SuggesterBias = 20

// Config describes the kits to build. The tables are shared by every kit built from the
// same Config; a nil table gives each kit a private one.
type Config struct {
	Width  int
	Komi   float64
	Policy Policy

	Lgrf           *feature.LgrfTable
	ShapeTable     *patterns.ShapeTable
	ShapeBias      int
	ShapeMinStones int
}

// Kit is a board with everything a playout needs attached to it.
type Kit struct {
	Board         *game.Board
	Atari         *feature.AtariObserver
	History       *feature.HistoryObserver
	StoneCount    *feature.StoneCountObserver
	PlayoutScorer *score.ChinesePlayoutScorer
	FinalScorer   *score.ChineseFinalScorer
	// Filter decides which moves the search may consider
	Filter     feature.Predicate
	Suggesters []feature.Suggester
	Raters     []feature.Rater
	Lgrf       *feature.LgrfSuggester
	Mover      Mover
}

// Build assembles a new kit. Observers are attached to the board in a fixed order, so any
// two kits built from the same Config can copy boards between them.
func Build(cfg Config) *Kit {
	board := game.NewBoard(cfg.Width)
	k := &Kit{
		Board:         board,
		PlayoutScorer: score.NewChinesePlayoutScorer(board, cfg.Komi),
		FinalScorer:   score.NewChineseFinalScorer(board, cfg.Komi),
	}
	k.StoneCount = feature.NewStoneCountObserver(board, cfg.Komi)
	k.History = feature.NewHistoryObserver(board)
	switch cfg.Policy {
	case SimpleRandom:
		k.Filter = feature.NewNotEyeLike(board)
		k.Mover = NewPredicateMover(board, k.Filter)
		return k
	case Feasible:
		k.Filter = NewFeasibleFilter(board)
		k.Mover = NewPredicateMover(board, k.Filter)
		return k
	}
	k.Filter = NewFeasibleFilter(board)

	k.Atari = feature.NewAtariObserver(board)
	capture := feature.NewCaptureSuggester(board, k.Atari, SuggesterBias)
	escape := feature.NewEscapeSuggester(board, k.Atari, SuggesterBias)
	pattern := feature.NewPatternSuggester(board, k.History, SuggesterBias)
	capturer := NewSuggesterMover(board, capture, NewPredicateMover(board, k.Filter))
	switch cfg.Policy {
	case Capturer:
		k.Mover = capturer
		return k
	case EscapeCapturer:
		k.Mover = NewSuggesterMover(board, escape, capturer)
		return k
	case EscapePatternCapturer:
		k.Mover = NewSuggesterMover(board, escape, NewSuggesterMover(board, pattern, capturer))
		return k
	}

	k.Suggesters = []feature.Suggester{escape, pattern, capture}
	k.Mover = NewSuggesterMover(board, escape, NewSuggesterMover(board, pattern, capturer))
	if cfg.Policy.UsesLgrf() {
		if cfg.Lgrf == nil {
			cfg.Lgrf = feature.NewLgrfTable(board.Coords())
		}
		k.Lgrf = feature.NewLgrfSuggester(board, k.History, cfg.Lgrf, 0, k.Filter)
		k.Mover = NewSuggesterMover(board, k.Lgrf, k.Mover)
	}
	if cfg.Policy == Shape {
		if cfg.ShapeTable == nil {
			cfg.ShapeTable = patterns.NewShapeTable(patterns.DefaultScalingFactor)
		}
		k.Raters = []feature.Rater{
			feature.NewShapeRater(board, k.History, cfg.ShapeTable, cfg.ShapeBias, cfg.ShapeMinStones),
		}
	}
	return k
}

// NewFeasibleFilter accepts points that are not eye like and are either on the third or
// fourth line or near another stone.
func NewFeasibleFilter(board *game.Board) feature.Predicate {
	return feature.Conjunction(
		feature.NewNotEyeLike(board),
		feature.Disjunction(feature.NewOnThirdOrFourthLine(board.Coords()), feature.NewNearAnotherStone(board)))
}
