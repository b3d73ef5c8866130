package patterns

import (
	"math"
	"sync/atomic"
)

const (
	subTables    = 3
	subTableBits = 21
	subTableSize = 1 << subTableBits
	subTableMask = subTableSize - 1
)

// DefaultScalingFactor weights the old estimate in each update.
const DefaultScalingFactor = 0.99

// ShapeTable estimates the win rate of playing into each shape. A shape hash is split into
// three 21-bit indices, one per sub-table, and the estimate is the mean of the three entries.
// Entries are float32 bit patterns so that workers may update the table concurrently; a lost
// update only drops one sample.
type ShapeTable struct {
	scalingFactor float32
	tables        [subTables][]atomic.Uint32
}

func NewShapeTable(scalingFactor float32) *ShapeTable {
	t := &ShapeTable{scalingFactor: scalingFactor}
	half := math.Float32bits(0.5)
	for i := range t.tables {
		t.tables[i] = make([]atomic.Uint32, subTableSize)
		for j := range t.tables[i] {
			t.tables[i][j].Store(half)
		}
	}
	return t
}

func (t *ShapeTable) ScalingFactor() float32 {
	return t.scalingFactor
}

func index(hash uint64, i int) int {
	return int(hash >> (subTableBits * i) & subTableMask)
}

// Update moves the estimate for hash toward 1 after a win and toward 0 after a loss.
func (t *ShapeTable) Update(hash uint64, win bool) {
	var target float32
	if win {
		target = 1 - t.scalingFactor
	}
	for i := range t.tables {
		entry := &t.tables[i][index(hash, i)]
		old := math.Float32frombits(entry.Load())
		entry.Store(math.Float32bits(t.scalingFactor*old + target))
	}
}

func (t *ShapeTable) WinRate(hash uint64) float32 {
	var sum float32
	for i := range t.tables {
		sum += math.Float32frombits(t.tables[i][index(hash, i)].Load())
	}
	return sum / subTables
}
