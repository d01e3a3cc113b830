// Package sweep orchestrates a clean-up run: Plan builds a reviewable
// deletion plan from the save documents, Apply splices the plan into the
// raw snapshot bytes. Nothing between the two phases is destructive, so any
// confirmation mechanism can sit in the gap.
package sweep

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/raphaelgruber/gridsweep/internal/metrics"
	"github.com/raphaelgruber/gridsweep/internal/models"
	"github.com/raphaelgruber/gridsweep/internal/rules"
	"github.com/raphaelgruber/gridsweep/internal/sandbox"
)

// Planner builds deletion plans.
type Planner struct {
	engine    *rules.Engine
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewPlanner returns a planner over the given rule engine. collector may be
// nil when no timings are wanted.
func NewPlanner(engine *rules.Engine, logger *slog.Logger, collector *metrics.Collector) *Planner {
	return &Planner{engine: engine, logger: logger, collector: collector}
}

// Plan reads the definitions and world documents, classifies every grid and
// evaluates the rule groups. The returned plan is pure data; the input
// files are only read.
func (p *Planner) Plan(sbcPath, sbsPath string, opts rules.Options, isActive func(string) bool) (*models.DeletionPlan, error) {
	p.logger.Info("parsing definitions", "file", sbcPath)

	parseStart := time.Now()

	sbc, err := os.Open(sbcPath)
	if err != nil {
		return nil, fmt.Errorf("open definitions: %w", err)
	}
	defer sbc.Close()

	names, err := sandbox.ReadDefinitions(sbc)
	if err != nil {
		return nil, err
	}

	p.logger.Info("parsing world snapshot, this may take a while", "file", sbsPath)

	sbs, err := os.Open(sbsPath)
	if err != nil {
		return nil, fmt.Errorf("open world snapshot: %w", err)
	}
	defer sbs.Close()

	grids, err := sandbox.ReadWorld(sbs, names)
	if err != nil {
		return nil, err
	}
	p.record(metrics.PhaseParse, time.Since(parseStart))

	classifyStart := time.Now()
	p.engine.Classify(grids)
	p.record(metrics.PhaseClassify, time.Since(classifyStart))

	planStart := time.Now()
	selected := p.engine.SelectForDeletion(grids, opts, isActive)
	p.record(metrics.PhasePlan, time.Since(planStart))

	p.logger.Info("plan ready", "grids", len(grids), "selected", len(selected))

	return &models.DeletionPlan{Grids: grids, Delete: selected}, nil
}

func (p *Planner) record(phase string, d time.Duration) {
	if p.collector != nil {
		p.collector.Record(phase, d)
	}
}
