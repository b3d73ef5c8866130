package feature

import (
	"sync/atomic"

	"ginkgo/game"
)

// LgrfTable stores last-good-replies: for each color, the reply that last won a playout after
// a given previous move (level 1) or a given pair of previous moves (level 2). It is shared by
// every playout worker; entries are read and written atomically and a lost update only costs
// one reply.
type LgrfTable struct {
	n        int
	replies1 []atomic.Int32
	replies2 []atomic.Int32
}

func NewLgrfTable(coords *game.Coords) *LgrfTable {
	n := coords.FirstPointBeyondBoard()
	// Entries start as zero, which is NoPoint
	return &LgrfTable{
		n:        n,
		replies1: make([]atomic.Int32, 2*n),
		replies2: make([]atomic.Int32, 2*n*n),
	}
}

func (t *LgrfTable) index1(c game.Color, previous game.Point) int {
	return int(c)*t.n + int(previous)
}

func (t *LgrfTable) index2(c game.Color, penultimate, previous game.Point) int {
	return (int(c)*t.n+int(penultimate))*t.n + int(previous)
}

func (t *LgrfTable) Clear() {
	for i := range t.replies1 {
		t.replies1[i].Store(int32(game.NoPoint))
	}
	for i := range t.replies2 {
		t.replies2[i].Store(int32(game.NoPoint))
	}
}

// FirstLevelReply returns the stored reply of color c to previous, or NoPoint.
func (t *LgrfTable) FirstLevelReply(c game.Color, previous game.Point) game.Point {
	return game.Point(t.replies1[t.index1(c, previous)].Load())
}

// SecondLevelReply returns the stored reply of color c to the pair (penultimate, previous),
// or NoPoint.
func (t *LgrfTable) SecondLevelReply(c game.Color, penultimate, previous game.Point) game.Point {
	return game.Point(t.replies2[t.index2(c, penultimate, previous)].Load())
}

// Update records reply as good for c if the playout was won, and forgets it if it lost.
// Passes are never stored.
func (t *LgrfTable) Update(c game.Color, won bool, penultimate, previous, reply game.Point) {
	if reply == game.Pass {
		return
	}
	r1 := &t.replies1[t.index1(c, previous)]
	r2 := &t.replies2[t.index2(c, penultimate, previous)]
	if won {
		r1.Store(int32(reply))
		r2.Store(int32(reply))
		return
	}
	r1.CompareAndSwap(int32(reply), int32(game.NoPoint))
	r2.CompareAndSwap(int32(reply), int32(game.NoPoint))
}

// LgrfSuggester suggests the stored reply to the last two moves, falling back to the reply
// to the last move. A reply is only suggested if it is vacant and passes the filter.
type LgrfSuggester struct {
	board   *game.Board
	history *HistoryObserver
	table   *LgrfTable
	filter  Predicate
	bias    int
	moves   *game.PointSet
}

func NewLgrfSuggester(board *game.Board, history *HistoryObserver, table *LgrfTable, bias int, filter Predicate) *LgrfSuggester {
	return &LgrfSuggester{
		board:   board,
		history: history,
		table:   table,
		filter:  filter,
		bias:    bias,
		moves:   game.NewPointSet(board.Coords().FirstPointBeyondBoard()),
	}
}

func (s *LgrfSuggester) Bias() int {
	return s.bias
}

func (s *LgrfSuggester) Table() *LgrfTable {
	return s.table
}

func (s *LgrfSuggester) Suggest() *game.PointSet {
	s.moves.Clear()
	turn := s.board.Turn()
	color := s.board.ColorToPlay()
	previous := s.history.Get(turn - 1)
	reply := s.table.SecondLevelReply(color, s.history.Get(turn-2), previous)
	if s.usable(reply) {
		s.moves.Add(reply)
		return s.moves
	}
	reply = s.table.FirstLevelReply(color, previous)
	if s.usable(reply) {
		s.moves.Add(reply)
	}
	return s.moves
}

func (s *LgrfSuggester) usable(reply game.Point) bool {
	return reply != game.NoPoint && s.board.ColorAt(reply) == game.Vacant && s.filter.At(reply)
}
