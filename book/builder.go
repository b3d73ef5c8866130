package book

import (
	"ginkgo/game"

	"github.com/pkg/errors"
)

const symmetries = 8

// Builder collects reply counts from game records, in all eight orientations of the board,
// and keeps for each position the most frequent reply.
type Builder struct {
	coords         *game.Coords
	maxMoves       int
	countThreshold int
	boards         [symmetries]*game.Board
	counts         map[uint64]map[game.Point]int
}

// NewBuilder records the first maxMoves moves of each game. A reply enters the book only if
// it was seen at least countThreshold times.
func NewBuilder(width, maxMoves, countThreshold int) *Builder {
	b := &Builder{
		coords:         game.ForWidth(width),
		maxMoves:       maxMoves,
		countThreshold: max(1, countThreshold),
		counts:         make(map[uint64]map[game.Point]int),
	}
	for i := range b.boards {
		b.boards[i] = game.NewBoard(width)
	}
	return b
}

// AddGame replays one game record. An illegal move ends the record early and is reported.
func (b *Builder) AddGame(moves []game.Point) error {
	for _, board := range b.boards {
		board.Clear()
	}
	var transformed [symmetries]game.Point
	for i, move := range moves {
		if i >= b.maxMoves {
			break
		}
		transformed[0] = move
		transformed[1] = b.rotate90(move)
		transformed[2] = b.rotate90(transformed[1])
		transformed[3] = b.rotate90(transformed[2])
		transformed[4] = b.reflect(move)
		transformed[5] = b.rotate90(transformed[4])
		transformed[6] = b.rotate90(transformed[5])
		transformed[7] = b.rotate90(transformed[6])
		for s, board := range b.boards {
			b.count(board.SearchKey(), transformed[s])
			if legality := board.Play(transformed[s]); legality != game.OK {
				return errors.Errorf("move %d (%s) is illegal: %s", i, b.coords.String(move), legality)
			}
		}
	}
	return nil
}

// AddGames adds every record, failing on the first bad one.
func (b *Builder) AddGames(games [][]game.Point) error {
	for i, moves := range games {
		if err := b.AddGame(moves); err != nil {
			return errors.Wrapf(err, "game %d", i)
		}
	}
	return nil
}

func (b *Builder) count(key uint64, move game.Point) {
	replies, ok := b.counts[key]
	if !ok {
		replies = make(map[game.Point]int)
		b.counts[key] = replies
	}
	replies[move]++
}

// Build returns the book of the most frequent replies at or above the threshold. Ties go to
// the later point in board order.
func (b *Builder) Build() *Fuseki {
	replies := make(map[uint64]game.Point)
	for key, counts := range b.counts {
		best := game.NoPoint
		most := 0
		for _, p := range append([]game.Point{game.Pass}, b.coords.AllPointsOnBoard()...) {
			if n := counts[p]; n >= b.countThreshold && n >= most {
				best, most = p, n
			}
		}
		if best != game.NoPoint {
			replies[key] = best
		}
	}
	return NewFuseki(b.maxMoves, replies)
}

func (b *Builder) rotate90(p game.Point) game.Point {
	if !b.coords.IsOnBoard(p) {
		return p
	}
	w := b.coords.Width()
	return b.coords.At(w-1-b.coords.Column(p), b.coords.Row(p))
}

func (b *Builder) reflect(p game.Point) game.Point {
	if !b.coords.IsOnBoard(p) {
		return p
	}
	w := b.coords.Width()
	return b.coords.At(w-1-b.coords.Column(p), w-1-b.coords.Row(p))
}
