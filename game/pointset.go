package game

import "strings"

// PointSet is a sparse set of points with O(1) add, remove and membership and
// insertion-ordered iteration. Removing an element moves the last element into its slot,
// which the ko detection in Board relies on.
type PointSet struct {
	data      []Point
	locations []int16
	size      int
}

// NewPointSet returns a set able to hold points in [0, capacity).
func NewPointSet(capacity int) *PointSet {
	return &PointSet{
		data:      make([]Point, capacity),
		locations: make([]int16, capacity),
	}
}

func (s *PointSet) Add(p Point) {
	if !s.Contains(p) {
		s.AddKnownAbsent(p)
	}
}

func (s *PointSet) AddKnownAbsent(p Point) {
	s.data[s.size] = p
	s.locations[p] = int16(s.size)
	s.size++
}

func (s *PointSet) AddAll(that *PointSet) {
	for i := 0; i < that.size; i++ {
		s.Add(that.data[i])
	}
}

func (s *PointSet) Contains(p Point) bool {
	loc := int(s.locations[p])
	return loc < s.size && s.data[loc] == p
}

func (s *PointSet) Remove(p Point) {
	if s.Contains(p) {
		s.RemoveKnownPresent(p)
	}
}

func (s *PointSet) RemoveKnownPresent(p Point) {
	s.size--
	loc := s.locations[p]
	last := s.data[s.size]
	s.data[loc] = last
	s.locations[last] = loc
}

func (s *PointSet) Clear() {
	s.size = 0
}

func (s *PointSet) Size() int {
	return s.size
}

// Get returns the i-th element in iteration order.
func (s *PointSet) Get(i int) Point {
	return s.data[i]
}

// Points returns a view of the members. It is invalidated by the next mutation.
func (s *PointSet) Points() []Point {
	return s.data[:s.size]
}

// CopyFrom makes s an exact copy of that, including iteration order. Both sets must share a
// capacity.
func (s *PointSet) CopyFrom(that *PointSet) {
	s.size = that.size
	copy(s.data[:s.size], that.data[:that.size])
	for i := 0; i < s.size; i++ {
		s.locations[s.data[i]] = int16(i)
	}
}

// Equal reports whether both sets hold the same members, in any order.
func (s *PointSet) Equal(that *PointSet) bool {
	if s.size != that.size {
		return false
	}
	for i := 0; i < s.size; i++ {
		if !that.Contains(s.data[i]) {
			return false
		}
	}
	return true
}

// Format renders the set using vertex labels, for logs and test failures.
func (s *PointSet) Format(coords *Coords) string {
	labels := make([]string, s.size)
	for i := 0; i < s.size; i++ {
		labels[i] = coords.String(s.data[i])
	}
	return "{" + strings.Join(labels, ", ") + "}"
}
