package performance

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// PerformanceMonitor tracks performance metrics
type PerformanceMonitor struct {
	clock   clock.PassiveClock
	metrics map[string]*Metric
	mutex   sync.RWMutex
}

// Metric represents a performance metric
type Metric struct {
	Name        string
	Count       int64
	TotalTime   time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
	LastTime    time.Duration
	LastUpdated time.Time
	Samples     []time.Duration
	MaxSamples  int
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor(clk clock.PassiveClock) *PerformanceMonitor {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &PerformanceMonitor{
		clock:   clk,
		metrics: make(map[string]*Metric),
	}
}

// StartTimer starts timing an operation
func (pm *PerformanceMonitor) StartTimer(name string) func() {
	start := pm.clock.Now()
	return func() {
		pm.RecordDuration(name, pm.clock.Since(start))
	}
}

// RecordDuration records a duration for a metric
func (pm *PerformanceMonitor) RecordDuration(name string, duration time.Duration) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	metric, exists := pm.metrics[name]
	if !exists {
		metric = &Metric{
			Name:       name,
			MinTime:    duration,
			MaxTime:    duration,
			MaxSamples: 100,
			Samples:    make([]time.Duration, 0, 100),
		}
		pm.metrics[name] = metric
	}

	metric.Count++
	metric.TotalTime += duration
	metric.LastTime = duration
	metric.LastUpdated = pm.clock.Now()

	if metric.Count == 1 || duration < metric.MinTime {
		metric.MinTime = duration
	}
	if duration > metric.MaxTime {
		metric.MaxTime = duration
	}

	if len(metric.Samples) >= metric.MaxSamples {
		metric.Samples = metric.Samples[1:]
	}
	metric.Samples = append(metric.Samples, duration)
}

// GetMetric returns a copy of a metric by name, or nil
func (pm *PerformanceMonitor) GetMetric(name string) *Metric {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	metric, exists := pm.metrics[name]
	if !exists {
		return nil
	}

	copied := *metric
	copied.Samples = append([]time.Duration(nil), metric.Samples...)
	return &copied
}

// AverageTime returns the average time for a metric
func (m *Metric) AverageTime() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.TotalTime / time.Duration(m.Count)
}

// RecentAverageTime returns the average of the last sampleCount samples
func (m *Metric) RecentAverageTime(sampleCount int) time.Duration {
	if len(m.Samples) == 0 {
		return 0
	}

	start := max(0, len(m.Samples)-sampleCount)

	var total time.Duration
	for _, sample := range m.Samples[start:] {
		total += sample
	}
	return total / time.Duration(len(m.Samples)-start)
}

// Reset resets a metric
func (pm *PerformanceMonitor) Reset(name string) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	if metric, exists := pm.metrics[name]; exists {
		metric.Count = 0
		metric.TotalTime = 0
		metric.MinTime = 0
		metric.MaxTime = 0
		metric.LastTime = 0
		metric.Samples = metric.Samples[:0]
	}
}
