package metrics

import (
	"sync/atomic"
	"time"
)

// GrowthMetric summarizes one tree-growth run.
type GrowthMetric struct {
	States    int
	Slices    int
	Duration  time.Duration
	Exhausted bool
}

type Collector interface {
	Start()
	AddSlice(states int)
	SetExhausted(value bool)
	Complete() GrowthMetric
}

type collector struct {
	startTime time.Time
	states    atomic.Int64
	slices    atomic.Int64
	exhausted atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddSlice(states int) {
	m.states.Add(int64(states))
	m.slices.Add(1)
}

func (m *collector) SetExhausted(value bool) {
	m.exhausted.Store(value)
}

func (m *collector) Complete() GrowthMetric {
	return GrowthMetric{
		States:    int(m.states.Load()),
		Slices:    int(m.slices.Load()),
		Duration:  time.Since(m.startTime),
		Exhausted: m.exhausted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                  {}
func (m *dummyCollector) AddSlice(states int)     {}
func (m *dummyCollector) SetExhausted(value bool) {}
func (m *dummyCollector) Complete() GrowthMetric  { return GrowthMetric{} }
