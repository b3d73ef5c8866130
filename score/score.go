// Package score implements Chinese area scoring for rollouts and for finished games.
// Positive scores favor black.
package score

import "ginkgo/game"

type Scorer interface {
	Komi() float64
	Score() float64
	Winner() game.Color
}

// FinalScorer can also score a board other than the one it is attached to, typically a copy
// with the dead stones removed.
type FinalScorer interface {
	Scorer
	ScoreBoard(b *game.Board) float64
}

// WinnerOf returns the color favored by score, or Vacant for a tie.
func WinnerOf(score float64) game.Color {
	switch {
	case score > 0:
		return game.Black
	case score < 0:
		return game.White
	}
	return game.Vacant
}

// ChinesePlayoutScorer assumes every stone is alive and only counts vacant points whose four
// neighbors are all one color (or the edge). It is meant for finished rollouts, where all
// remaining territory consists of one-point eyes.
type ChinesePlayoutScorer struct {
	board *game.Board
	komi  float64
}

func NewChinesePlayoutScorer(board *game.Board, komi float64) *ChinesePlayoutScorer {
	return &ChinesePlayoutScorer{board: board, komi: komi}
}

func (s *ChinesePlayoutScorer) Komi() float64 {
	return s.komi
}

func (s *ChinesePlayoutScorer) Score() float64 {
	result := -s.komi
	for _, p := range s.board.Coords().AllPointsOnBoard() {
		switch s.board.ColorAt(p) {
		case game.Black:
			result++
		case game.White:
			result--
		default:
			if s.board.HasMaxNeighborsForColor(game.Black, p) {
				result++
			} else if s.board.HasMaxNeighborsForColor(game.White, p) {
				result--
			}
		}
	}
	return result
}

func (s *ChinesePlayoutScorer) Winner() game.Color {
	return WinnerOf(s.Score())
}

// ChineseFinalScorer counts stones plus regions of vacant points that touch stones of only
// one color.
type ChineseFinalScorer struct {
	board   *game.Board
	komi    float64
	visited *game.PointSet

	// State of the region being flood filled
	owner game.Color
	valid bool
}

func NewChineseFinalScorer(board *game.Board, komi float64) *ChineseFinalScorer {
	return &ChineseFinalScorer{
		board:   board,
		komi:    komi,
		visited: game.NewPointSet(board.Coords().FirstPointBeyondBoard()),
	}
}

func (s *ChineseFinalScorer) Komi() float64 {
	return s.komi
}

func (s *ChineseFinalScorer) Score() float64 {
	return s.ScoreBoard(s.board)
}

func (s *ChineseFinalScorer) Winner() game.Color {
	return WinnerOf(s.Score())
}

// ScoreBoard scores b, which must have the same width as the attached board.
func (s *ChineseFinalScorer) ScoreBoard(b *game.Board) float64 {
	result := -s.komi
	s.visited.Clear()
	for _, p := range b.Coords().AllPointsOnBoard() {
		switch b.ColorAt(p) {
		case game.Black:
			result++
		case game.White:
			result--
		}
	}
	for _, p := range b.Vacant().Points() {
		if s.visited.Contains(p) {
			continue
		}
		s.owner = game.Vacant
		s.valid = true
		s.visited.Add(p)
		territory := s.fill(b, p)
		if !s.valid {
			continue
		}
		switch s.owner {
		case game.Black:
			result += float64(territory)
		case game.White:
			result -= float64(territory)
		}
	}
	return result
}

// fill returns the size of the vacant region containing p, recording which colors border it.
func (s *ChineseFinalScorer) fill(b *game.Board, p game.Point) int {
	result := 1
	neighbors := b.Coords().Neighbors(p)
	for i := game.FirstOrthogonal; i <= game.LastOrthogonal; i++ {
		n := neighbors[i]
		color := b.ColorAt(n)
		switch {
		case color == game.OffBoard:
		case color == game.Vacant:
			if !s.visited.Contains(n) {
				s.visited.Add(n)
				result += s.fill(b, n)
			}
		case s.owner == game.Vacant:
			s.owner = color
		case color != s.owner:
			s.valid = false
		}
	}
	return result
}
