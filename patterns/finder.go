// Package patterns hashes the shape around a point and learns how often playing into each
// shape wins.
package patterns

import (
	"encoding/binary"
	"sort"

	"ginkgo/game"

	"github.com/OneOfOne/xxhash"
)

// Cell classes. A stone's class is its liberty class (atari, two, three or more) offset by
// its owner; the enemy stone played on the last move gets classes of its own.
const (
	friendlyBase = 0
	enemyBase    = 3
	lastMoveBase = 6
	offBoard     = 9
	classCount   = 10

	atari        = 0
	twoLiberties = 1
	threeOrMore  = 2
)

const maxOffset = game.MaxBoardWidth - 1

var (
	// offsets are all nonzero (row, column) displacements on a maximal board, nearest first
	offsets [][2]int
	// ringEnds[i] is the number of offsets in the i+1 innermost rings; rings are symmetric
	ringEnds []int
	// pointHashes[class][i] is the hash contribution of a cell of that class at offsets[i]
	pointHashes [classCount][]uint64
)

func init() {
	for r := -maxOffset; r <= maxOffset; r++ {
		for c := -maxOffset; c <= maxOffset; c++ {
			if r != 0 || c != 0 {
				offsets = append(offsets, [2]int{r, c})
			}
		}
	}
	sort.SliceStable(offsets, func(i, j int) bool {
		return squaredLength(offsets[i]) < squaredLength(offsets[j])
	})
	for i := 1; i <= len(offsets); i++ {
		if i == len(offsets) || squaredLength(offsets[i]) != squaredLength(offsets[i-1]) {
			ringEnds = append(ringEnds, i)
		}
	}
	var buf [9]byte
	for class := range pointHashes {
		pointHashes[class] = make([]uint64, len(offsets))
		for i, offset := range offsets {
			buf[0] = byte(class)
			binary.LittleEndian.PutUint32(buf[1:], uint32(int32(offset[0])))
			binary.LittleEndian.PutUint32(buf[5:], uint32(int32(offset[1])))
			pointHashes[class][i] = xxhash.Checksum64(buf[:])
		}
	}
}

func squaredLength(offset [2]int) int {
	return offset[0]*offset[0] + offset[1]*offset[1]
}

// Hash returns the shape hash of the neighborhood of p as seen by the side to move. Rings of
// increasing radius are added until at least minStones stones have been seen; lastMove marks
// the opponent's most recent stone.
func Hash(board *game.Board, p game.Point, minStones int, lastMove game.Point) uint64 {
	coords := board.Coords()
	friendly := board.ColorToPlay()
	enemy := friendly.Opposite()
	row, column := coords.Row(p), coords.Column(p)
	var result uint64
	stonesSeen := 0
	start := 0
	for _, end := range ringEnds {
		for j := start; j < end; j++ {
			r, c := row+offsets[j][0], column+offsets[j][1]
			if !coords.IsValidIndex(r) || !coords.IsValidIndex(c) {
				result ^= pointHashes[offBoard][j]
				continue
			}
			q := coords.At(r, c)
			switch board.ColorAt(q) {
			case friendly:
				result ^= pointHashes[friendlyBase+libertyClass(board, q)][j]
				stonesSeen++
			case enemy:
				base := enemyBase
				if q == lastMove {
					base = lastMoveBase
				}
				result ^= pointHashes[base+libertyClass(board, q)][j]
				stonesSeen++
			}
		}
		start = end
		if stonesSeen >= minStones {
			break
		}
	}
	return result
}

func libertyClass(board *game.Board, q game.Point) int {
	switch board.Liberties(q).Size() {
	case 1:
		return atari
	case 2:
		return twoLiberties
	default:
		return threeOrMore
	}
}
