package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Threads      int
	Duration     time.Duration
	Playouts     int
	TableFull    int
	IsTreeReused bool
}

type MoveMetric struct {
	Step  int
	Color string // Side that moved
	Move  string
	SearchMetric
}

type GameMetric struct {
	Winner     string
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(threads int)
	SetTreeReused(value bool)
	AddPlayout()
	AddTableFull()
	Complete() SearchMetric
}

type collector struct {
	threads      int
	startTime    time.Time
	playouts     atomic.Int32
	tableFull    atomic.Int32
	isTreeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReused(value bool) {
	m.isTreeReused.Store(value)
}

func (m *collector) Start(threads int) {
	m.startTime = time.Now()
	m.threads = threads
	m.playouts.Store(0)
	m.tableFull.Store(0)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddTableFull() {
	m.tableFull.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Threads:      m.threads,
		Duration:     time.Since(m.startTime),
		Playouts:     int(m.playouts.Load()),
		TableFull:    int(m.tableFull.Load()),
		IsTreeReused: m.isTreeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(threads int)        {}
func (m *dummyCollector) SetTreeReused(value bool) {}
func (m *dummyCollector) AddPlayout()              {}
func (m *dummyCollector) AddTableFull()            {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
