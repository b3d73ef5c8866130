package feature

import "ginkgo/game"

// Suggester proposes moves for the side to move. The returned set is owned by the suggester
// and is overwritten by the next call.
type Suggester interface {
	Suggest() *game.PointSet
	// Bias is the number of fake winning runs added to each suggested move when a search
	// node is first biased.
	Bias() int
}

// CaptureSuggester suggests the last liberty of every enemy chain in atari.
type CaptureSuggester struct {
	board *game.Board
	atari *AtariObserver
	bias  int
	moves *game.PointSet
}

func NewCaptureSuggester(board *game.Board, atari *AtariObserver, bias int) *CaptureSuggester {
	return &CaptureSuggester{
		board: board,
		atari: atari,
		bias:  bias,
		moves: game.NewPointSet(board.Coords().FirstPointBeyondBoard()),
	}
}

func (s *CaptureSuggester) Bias() int {
	return s.bias
}

func (s *CaptureSuggester) Suggest() *game.PointSet {
	s.moves.Clear()
	for _, chain := range s.atari.ChainsInAtari(s.board.ColorToPlay().Opposite()).Points() {
		s.moves.Add(s.board.Liberties(chain).Get(0))
	}
	return s.moves
}

// EscapeSuggester suggests moves that rescue a friendly chain in atari, either by extending
// it to at least two liberties or by capturing an adjacent enemy chain.
type EscapeSuggester struct {
	board         *game.Board
	atari         *AtariObserver
	bias          int
	moves         *game.PointSet
	tempLiberties *game.PointSet
}

func NewEscapeSuggester(board *game.Board, atari *AtariObserver, bias int) *EscapeSuggester {
	n := board.Coords().FirstPointBeyondBoard()
	return &EscapeSuggester{
		board:         board,
		atari:         atari,
		bias:          bias,
		moves:         game.NewPointSet(n),
		tempLiberties: game.NewPointSet(n),
	}
}

func (s *EscapeSuggester) Bias() int {
	return s.bias
}

func (s *EscapeSuggester) Suggest() *game.PointSet {
	s.moves.Clear()
	colorToPlay := s.board.ColorToPlay()
	for _, chain := range s.atari.ChainsInAtari(colorToPlay).Points() {
		p := s.board.Liberties(chain).Get(0)
		if s.board.NeighborCount(p, game.Vacant) >= 2 {
			s.moves.Add(p)
		} else if s.board.NeighborCount(p, colorToPlay) > 0 {
			s.escapeByMerging(p)
		}
		s.escapeByCapturing(chain)
	}
	return s.moves
}

// escapeByMerging suggests liberty if playing there joins chains with enough liberties to
// leave the result with at least two.
func (s *EscapeSuggester) escapeByMerging(liberty game.Point) {
	s.tempLiberties.Clear()
	neighbors := s.board.Coords().Neighbors(liberty)
	for i := game.FirstOrthogonal; i <= game.LastOrthogonal; i++ {
		n := neighbors[i]
		switch s.board.ColorAt(n) {
		case game.Vacant:
			s.tempLiberties.Add(n)
		case s.board.ColorToPlay():
			libs := s.board.Liberties(n)
			if libs.Size() <= 1 {
				continue
			}
			for _, l := range libs.Points() {
				s.tempLiberties.Add(l)
				// liberty itself is among them, so three means two remain
				if s.tempLiberties.Size() == 3 {
					s.moves.Add(liberty)
					return
				}
			}
		}
	}
}

func (s *EscapeSuggester) escapeByCapturing(chain game.Point) {
	enemy := s.board.ColorToPlay().Opposite()
	enemiesInAtari := s.atari.ChainsInAtari(enemy)
	coords := s.board.Coords()
	p := chain
	for {
		neighbors := coords.Neighbors(p)
		for i := game.FirstOrthogonal; i <= game.LastOrthogonal; i++ {
			n := neighbors[i]
			if s.board.ColorAt(n) == enemy && enemiesInAtari.Contains(s.board.ChainRoot(n)) {
				s.moves.Add(s.board.Liberties(n).Get(0))
			}
		}
		p = s.board.ChainNext(p)
		if p == chain {
			return
		}
	}
}
