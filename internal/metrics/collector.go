// Package metrics provides in-memory timing collection for the pipeline
// phases of a run.
package metrics

import (
	"log/slog"
	"sync"
	"time"
)

// Phase names for the collector.
const (
	PhaseLogs     = "logs"
	PhaseParse    = "parse"
	PhaseClassify = "classify"
	PhasePlan     = "plan"
	PhasePatch    = "patch"
)

// PhaseMetrics holds aggregated timings for a single phase.
type PhaseMetrics struct {
	Count int64
	Total time.Duration
}

// Collector aggregates phase timings.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	phases    map[string]*PhaseMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		phases:    make(map[string]*PhaseMetrics),
	}
}

// Record adds one timing for a phase.
func (c *Collector) Record(phase string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.phases[phase]
	if !ok {
		m = &PhaseMetrics{}
		c.phases[phase] = m
	}
	m.Count++
	m.Total += duration
}

// LogAttrs returns the collected timings as slog attributes, one per phase
// plus the total elapsed time, ready for a single summary log line.
func (c *Collector) LogAttrs() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	attrs := []any{slog.Duration("elapsed", time.Since(c.startTime))}
	for _, phase := range []string{PhaseLogs, PhaseParse, PhaseClassify, PhasePlan, PhasePatch} {
		if m, ok := c.phases[phase]; ok {
			attrs = append(attrs, slog.Duration(phase, m.Total))
		}
	}
	return attrs
}
