package game

// Empty is the hash of the empty board. The history set uses it as its vacant-slot marker and
// treats it as always present.
const Empty uint64 = 0

const ignoreSignBit = 0x7fffffff

// SuperKoTable is the set of position hashes seen so far in a game. It never removes entries
// and never grows: capacity is twice the ply ceiling.
type SuperKoTable struct {
	data []uint64
}

func NewSuperKoTable(coords *Coords) *SuperKoTable {
	return &SuperKoTable{data: make([]uint64, coords.MaxMovesPerGame()*2)}
}

func (t *SuperKoTable) slot(key uint64) int {
	return int(key&ignoreSignBit) % len(t.data)
}

func (t *SuperKoTable) Add(key uint64) {
	if key == Empty {
		return
	}
	slot := t.slot(key)
	for t.data[slot] != Empty {
		if t.data[slot] == key {
			return
		}
		slot = (slot + 1) % len(t.data)
	}
	t.data[slot] = key
}

func (t *SuperKoTable) Contains(key uint64) bool {
	if key == Empty {
		return true
	}
	slot := t.slot(key)
	for t.data[slot] != Empty {
		if t.data[slot] == key {
			return true
		}
		slot = (slot + 1) % len(t.data)
	}
	return false
}

func (t *SuperKoTable) Clear() {
	clear(t.data)
}

func (t *SuperKoTable) CopyFrom(that *SuperKoTable) {
	copy(t.data, that.data)
}

func (t *SuperKoTable) Capacity() int {
	return len(t.data)
}
