// Package monitoring collects counters and timings from concurrent
// simulation runs.
package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks simulation throughput. It is safe for
// concurrent use.
type PerformanceMonitor struct {
	// Tick metrics
	tickCount     atomic.Uint64
	tickTimeTotal atomic.Uint64 // nanoseconds
	lastTickTime  atomic.Uint64 // nanoseconds

	// Run metrics
	activeRuns    atomic.Int32
	completedRuns atomic.Uint64
	failedRuns    atomic.Uint64

	// Agent metrics
	agentsSpawned   atomic.Uint64
	agentsRescued   atomic.Uint64
	agentsExhausted atomic.Uint64

	mutex     sync.RWMutex
	slowest   time.Duration
	startTime time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{startTime: time.Now()}
}

// TickTimer measures one simulation tick.
type TickTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartTick begins tick timing
func (pm *PerformanceMonitor) StartTick() *TickTimer {
	return &TickTimer{monitor: pm, startTime: time.Now()}
}

// EndTick completes tick timing
func (tt *TickTimer) EndTick() {
	d := time.Since(tt.startTime)
	pm := tt.monitor
	pm.lastTickTime.Store(uint64(d.Nanoseconds()))
	pm.tickTimeTotal.Add(uint64(d.Nanoseconds()))
	pm.tickCount.Add(1)

	pm.mutex.Lock()
	if d > pm.slowest {
		pm.slowest = d
	}
	pm.mutex.Unlock()
}

// StartRun marks a run as in progress.
func (pm *PerformanceMonitor) StartRun() {
	pm.activeRuns.Add(1)
}

// EndRun marks a run finished and adds its agent counts.
func (pm *PerformanceMonitor) EndRun(err error) {
	pm.activeRuns.Add(-1)
	if err != nil {
		pm.failedRuns.Add(1)
		return
	}
	pm.completedRuns.Add(1)
}

// AddAgents adds agent outcomes of one run.
func (pm *PerformanceMonitor) AddAgents(spawned, rescued, exhausted int) {
	pm.agentsSpawned.Add(uint64(spawned))
	pm.agentsRescued.Add(uint64(rescued))
	pm.agentsExhausted.Add(uint64(exhausted))
}

// Metrics is a snapshot of the monitor.
type Metrics struct {
	Ticks           uint64
	AverageTickTime time.Duration
	SlowestTick     time.Duration
	ActiveRuns      int32
	CompletedRuns   uint64
	FailedRuns      uint64
	AgentsSpawned   uint64
	AgentsRescued   uint64
	AgentsExhausted uint64
	Uptime          time.Duration
	Goroutines      int
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	ticks := pm.tickCount.Load()
	var avg time.Duration
	if ticks > 0 {
		avg = time.Duration(pm.tickTimeTotal.Load() / ticks)
	}

	return Metrics{
		Ticks:           ticks,
		AverageTickTime: avg,
		SlowestTick:     pm.slowest,
		ActiveRuns:      pm.activeRuns.Load(),
		CompletedRuns:   pm.completedRuns.Load(),
		FailedRuns:      pm.failedRuns.Load(),
		AgentsSpawned:   pm.agentsSpawned.Load(),
		AgentsRescued:   pm.agentsRescued.Load(),
		AgentsExhausted: pm.agentsExhausted.Load(),
		Uptime:          time.Since(pm.startTime),
		Goroutines:      runtime.NumGoroutine(),
	}
}

// RescueRate is the share of spawned agents that were rescued.
func (m Metrics) RescueRate() float64 {
	if m.AgentsSpawned == 0 {
		return 0
	}
	return float64(m.AgentsRescued) / float64(m.AgentsSpawned)
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.tickCount.Store(0)
	pm.tickTimeTotal.Store(0)
	pm.lastTickTime.Store(0)
	pm.activeRuns.Store(0)
	pm.completedRuns.Store(0)
	pm.failedRuns.Store(0)
	pm.agentsSpawned.Store(0)
	pm.agentsRescued.Store(0)
	pm.agentsExhausted.Store(0)

	pm.mutex.Lock()
	pm.slowest = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
