package searcher

import (
	"sync"

	"ginkgo/game"
)

const ignoreSignBit = 0x7fffffff

const noCell int32 = -1

// childCell links one child into its parent's list of children.
type childCell struct {
	node SearchNode
	next int32
}

// Table is the transposition table: a fixed arena of search nodes addressed by search key
// with linear probing, plus a pool of cells for the child lists that garbage collection
// follows. Nodes are never deleted individually; Sweep frees everything not marked.
type Table struct {
	sync.Mutex
	coords   *game.Coords
	nodes    []SearchNode
	cells    []childCell
	freeCell int32
	inUse    int
}

// NewTable sizes the table for the given memory budget in megabytes.
func NewTable(megabytes int, coords *game.Coords, newNode func(*game.Coords) SearchNode) *Table {
	size := max(1, megabytes*1024*16/max(81, coords.Area()))
	t := &Table{
		coords: coords,
		nodes:  make([]SearchNode, size),
		cells:  make([]childCell, 3*size),
	}
	for i := range t.nodes {
		t.nodes[i] = newNode(coords)
	}
	for i := range t.cells {
		t.cells[i].next = int32(i) + 1
	}
	t.cells[len(t.cells)-1].next = noCell
	return t
}

func (t *Table) slot(key uint64) int {
	return int(key&ignoreSignBit) % len(t.nodes)
}

// Find returns the node for key, or nil if the table does not hold it.
func (t *Table) Find(key uint64) SearchNode {
	t.Lock()
	defer t.Unlock()
	return t.find(key)
}

func (t *Table) find(key uint64) SearchNode {
	start := t.slot(key)
	slot := start
	for {
		n := t.nodes[slot]
		if !n.IsInUse() {
			return nil
		}
		if n.Key() == key {
			return n
		}
		slot = (slot + 1) % len(t.nodes)
		if slot == start {
			return nil
		}
	}
}

// FindOrAllocate returns the node for key, claiming a fresh one if needed. It returns nil
// when the table is full.
func (t *Table) FindOrAllocate(key uint64) SearchNode {
	t.Lock()
	defer t.Unlock()
	return t.findOrAllocate(key)
}

func (t *Table) findOrAllocate(key uint64) SearchNode {
	start := t.slot(key)
	slot := start
	for {
		n := t.nodes[slot]
		if !n.IsInUse() {
			n.Clear(key)
			t.inUse++
			return n
		}
		if n.Key() == key {
			return n
		}
		slot = (slot + 1) % len(t.nodes)
		if slot == start {
			return nil
		}
	}
}

// AddChild links child into parent's child list. It reports false when the cell pool is
// exhausted.
func (t *Table) AddChild(parent, child SearchNode) bool {
	t.Lock()
	defer t.Unlock()
	return t.addChild(parent, child)
}

func (t *Table) addChild(parent, child SearchNode) bool {
	if t.freeCell == noCell {
		return false
	}
	i := t.freeCell
	t.freeCell = t.cells[i].next
	t.cells[i].node = child
	t.cells[i].next = parent.firstChild()
	parent.setFirstChild(i)
	return true
}

// Expand finds or allocates the node reached from parent by move and links it as a child
// the first time. It returns nil if there is no room.
func (t *Table) Expand(parent SearchNode, move game.Point, key uint64) SearchNode {
	t.Lock()
	defer t.Unlock()
	child := t.findOrAllocate(key)
	if child == nil {
		return nil
	}
	if !parent.HasChild(move) {
		if !t.addChild(parent, child) {
			return nil
		}
		parent.SetHasChild(move)
	}
	return child
}

// MarkReachableFrom marks every node reachable from root and returns how many were newly
// marked. It must only run while no worker is searching.
func (t *Table) MarkReachableFrom(root SearchNode) int {
	if root == nil || root.isMarked() {
		return 0
	}
	root.setMarked(true)
	sum := 1
	for i := root.firstChild(); i != noCell; i = t.cells[i].next {
		sum += t.MarkReachableFrom(t.cells[i].node)
	}
	return sum
}

// Sweep frees every node in use that is not marked, along with its child cells, and
// unmarks the survivors. It returns the number of nodes freed.
func (t *Table) Sweep() int {
	t.Lock()
	defer t.Unlock()
	freed := 0
	for _, n := range t.nodes {
		if !n.IsInUse() {
			continue
		}
		if n.isMarked() {
			n.setMarked(false)
			continue
		}
		for i := n.firstChild(); i != noCell; {
			next := t.cells[i].next
			t.cells[i].node = nil
			t.cells[i].next = t.freeCell
			t.freeCell = i
			i = next
		}
		n.setFirstChild(noCell)
		n.Free()
		t.inUse--
		freed++
	}
	return freed
}

// DAGSize counts the nodes reachable from root.
func (t *Table) DAGSize(root SearchNode) int {
	size := t.MarkReachableFrom(root)
	for _, n := range t.nodes {
		n.setMarked(false)
	}
	return size
}

func (t *Table) InUse() int {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

func (t *Table) Capacity() int {
	return len(t.nodes)
}

// FreeCells counts the child cells left in the pool.
func (t *Table) FreeCells() int {
	t.Lock()
	defer t.Unlock()
	n := 0
	for i := t.freeCell; i != noCell; i = t.cells[i].next {
		n++
	}
	return n
}
