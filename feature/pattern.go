package feature

import (
	"sync"

	"ginkgo/game"
)

// Neighbor codes of a 3x3 pattern, relative to the side to move. They coincide with the
// game.Color values of Vacant and OffBoard.
const (
	codeEnemy    = 0
	codeFriendly = 1
	codeVacant   = 2
	codeOffBoard = 3
)

// PatternCount is the number of distinct 3x3 neighborhoods: 2 bits for each of 8 neighbors.
const PatternCount = 1 << 16

// goodShapes are the 3x3 shapes played around the last move in rollouts. X is the side to
// move, O the opponent, x and o their negations, ? anything and a space the edge. The center
// is always the candidate point.
var goodShapes = [...][3]string{
	{"XOX", "...", "???"}, // enclosing hane
	{"XO.", "...", "?.?"}, // non-cutting hane
	{"XO?", "X..", "x.?"}, // magari
	{".O.", "X..", "..."}, // katatsuke
	{"XO?", "O.o", "?o?"}, // unprotected cut
	{"XO?", "O.X", "???"}, // peeped cut
	{"?X?", "O.O", "ooo"}, // de
	{"OX?", "o.O", "???"}, // cut keima
	{"X.?", "O.?", "   "}, // side chase
	{"OX?", "X.O", "   "}, // block side cut
	{"?X?", "x.O", "   "}, // block side connection
	{"?XO", "x.x", "   "}, // sagari
	{"?OX", "X.O", "   "}, // side cut
}

// cellForNeighbor maps the North..SouthEast neighbor slots onto (row, column) cells of a
// 3x3 diagram.
var cellForNeighbor = [8][2]int{
	game.North:     {0, 1},
	game.West:      {1, 0},
	game.East:      {1, 2},
	game.South:     {2, 1},
	game.NorthWest: {0, 0},
	game.NorthEast: {0, 2},
	game.SouthWest: {2, 0},
	game.SouthEast: {2, 2},
}

var (
	goodPatternsOnce sync.Once
	goodPatterns     *PatternSet
)

// GoodPatterns returns the set of all symmetric and color-swapped variants of goodShapes.
func GoodPatterns() *PatternSet {
	goodPatternsOnce.Do(func() {
		goodPatterns = &PatternSet{}
		for _, shape := range goodShapes {
			goodPatterns.AddShape(shape)
		}
	})
	return goodPatterns
}

// PatternSet is a bit vector over all 3x3 pattern codes.
type PatternSet struct {
	bits [PatternCount / 64]uint64
}

func (s *PatternSet) Contains(pattern uint16) bool {
	return s.bits[pattern>>6]&(1<<(pattern&63)) != 0
}

func (s *PatternSet) Add(pattern uint16) {
	s.bits[pattern>>6] |= 1 << (pattern & 63)
}

// AddShape adds every pattern matching the diagram under the 8 board symmetries and with the
// colors swapped.
func (s *PatternSet) AddShape(diagram [3]string) {
	for _, variant := range [2][3]string{diagram, swapColors(diagram)} {
		for sym := 0; sym < 8; sym++ {
			s.addMatches(transform(variant, sym), 0, 0)
		}
	}
}

func (s *PatternSet) addMatches(diagram [3]string, slot int, pattern uint16) {
	if slot == len(cellForNeighbor) {
		s.Add(pattern)
		return
	}
	cell := cellForNeighbor[slot]
	for _, code := range codesFor(diagram[cell[0]][cell[1]]) {
		s.addMatches(diagram, slot+1, pattern|uint16(code)<<(2*slot))
	}
}

func codesFor(glyph byte) []int {
	switch glyph {
	case 'X':
		return []int{codeFriendly}
	case 'O':
		return []int{codeEnemy}
	case '.':
		return []int{codeVacant}
	case ' ':
		return []int{codeOffBoard}
	case 'x':
		return []int{codeEnemy, codeVacant, codeOffBoard}
	case 'o':
		return []int{codeFriendly, codeVacant, codeOffBoard}
	default:
		return []int{codeEnemy, codeFriendly, codeVacant, codeOffBoard}
	}
}

func swapColors(diagram [3]string) [3]string {
	var result [3]string
	for r, row := range diagram {
		b := []byte(row)
		for c := range b {
			switch b[c] {
			case 'X':
				b[c] = 'O'
			case 'O':
				b[c] = 'X'
			case 'x':
				b[c] = 'o'
			case 'o':
				b[c] = 'x'
			}
		}
		result[r] = string(b)
	}
	return result
}

// transform applies symmetry sym: bit 0 mirrors left to right, bit 1 mirrors top to bottom
// and bit 2 transposes.
func transform(diagram [3]string, sym int) [3]string {
	var cells [3][3]byte
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rr, cc := r, c
			if sym&4 != 0 {
				rr, cc = cc, rr
			}
			if sym&1 != 0 {
				cc = 2 - cc
			}
			if sym&2 != 0 {
				rr = 2 - rr
			}
			cells[rr][cc] = diagram[r][c]
		}
	}
	var result [3]string
	for r := range cells {
		result[r] = string(cells[r][:])
	}
	return result
}

// Pattern returns the code of the 3x3 neighborhood of p as seen by the side to move.
func Pattern(board *game.Board, p game.Point) uint16 {
	var pattern uint16
	friendly := board.ColorToPlay()
	enemy := friendly.Opposite()
	for i, n := range board.Coords().Neighbors(p) {
		switch color := board.ColorAt(n); color {
		case friendly:
			pattern |= codeFriendly << (2 * i)
		case enemy:
		default:
			pattern |= uint16(color) << (2 * i)
		}
	}
	return pattern
}

// PatternSuggester suggests vacant neighbors of the last move whose 3x3 neighborhood is a
// known good shape.
type PatternSuggester struct {
	board    *game.Board
	history  *HistoryObserver
	patterns *PatternSet
	bias     int
	moves    *game.PointSet
}

func NewPatternSuggester(board *game.Board, history *HistoryObserver, bias int) *PatternSuggester {
	return &PatternSuggester{
		board:    board,
		history:  history,
		patterns: GoodPatterns(),
		bias:     bias,
		moves:    game.NewPointSet(board.Coords().FirstPointBeyondBoard()),
	}
}

func (s *PatternSuggester) Bias() int {
	return s.bias
}

func (s *PatternSuggester) Suggest() *game.PointSet {
	s.moves.Clear()
	turn := s.board.Turn()
	if turn == 0 {
		return s.moves
	}
	last := s.history.Get(turn - 1)
	if last == game.Pass || last == game.NoPoint {
		return s.moves
	}
	for _, n := range s.board.Coords().Neighbors(last) {
		if s.board.ColorAt(n) == game.Vacant && s.patterns.Contains(Pattern(s.board, n)) {
			s.moves.Add(n)
		}
	}
	return s.moves
}
