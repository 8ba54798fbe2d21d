package monitoring

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}

	// Check that start time is recent
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestPerformanceMonitorTickTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	timer := pm.StartTick()
	time.Sleep(10 * time.Millisecond) // Simulate some work
	timer.EndTick()
	pm.StartTick().EndTick()

	m := pm.GetCurrentMetrics()
	if m.Ticks != 2 {
		t.Errorf("Expected tick count to be 2, got %d", m.Ticks)
	}
	if m.SlowestTick < 10*time.Millisecond {
		t.Errorf("Expected slowest tick to be at least 10ms, got %v", m.SlowestTick)
	}
	if m.AverageTickTime <= 0 || m.AverageTickTime > m.SlowestTick {
		t.Errorf("Unexpected average tick time %v", m.AverageTickTime)
	}
}

func TestPerformanceMonitorRuns(t *testing.T) {
	pm := NewPerformanceMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pm.StartRun()
			pm.AddAgents(4, 3, 1)
			var err error
			if i%5 == 0 {
				err = errors.New("boom")
			}
			pm.EndRun(err)
		}(i)
	}
	wg.Wait()

	m := pm.GetCurrentMetrics()
	if m.ActiveRuns != 0 {
		t.Errorf("Expected no active runs, got %d", m.ActiveRuns)
	}
	if m.CompletedRuns != 16 || m.FailedRuns != 4 {
		t.Errorf("Expected 16 completed and 4 failed runs, got %d and %d", m.CompletedRuns, m.FailedRuns)
	}
	if m.AgentsSpawned != 80 || m.AgentsRescued != 60 || m.AgentsExhausted != 20 {
		t.Errorf("Unexpected agent counts %+v", m)
	}
	if m.RescueRate() != 0.75 {
		t.Errorf("Expected rescue rate 0.75, got %v", m.RescueRate())
	}
}

func TestPerformanceMonitorReset(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.StartTick().EndTick()
	pm.AddAgents(1, 1, 0)
	pm.Reset()

	m := pm.GetCurrentMetrics()
	if m.Ticks != 0 || m.AgentsSpawned != 0 || m.SlowestTick != 0 {
		t.Errorf("Expected counters to be reset, got %+v", m)
	}
	if (Metrics{}).RescueRate() != 0 {
		t.Error("Expected zero rescue rate without agents")
	}
}
