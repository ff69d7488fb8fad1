// Package engine orchestrates the simulation step: grid clear, particle to
// grid transfer, grid solve, and grid to particle transfer, with the two
// transfer phases spread over a worker pool.
package engine

import (
	"math/rand"

	"github.com/mattjh/slush/config"
	"github.com/mattjh/slush/mpm"
	"github.com/mattjh/slush/telemetry"
)

// Engine holds the complete simulation state.
type Engine struct {
	cfg    *config.Config
	consts mpm.Constants

	particles *mpm.Particles
	grid      *mpm.Grid

	parallel *parallelState
	perf     *telemetry.PerfCollector
	stats    *telemetry.StatsCollector
	output   *telemetry.OutputManager

	tick int64
}

// New builds an engine from the configuration: derives the solver constants,
// allocates the grid, and places the scene's particle blocks.
func New(cfg *config.Config, rng *rand.Rand, output *telemetry.OutputManager) (*Engine, error) {
	consts := mpm.Constants{
		DT:            cfg.Derived.DT32,
		DX:            cfg.Derived.DX,
		InvDX:         cfg.Derived.InvDX,
		PMass:         cfg.Derived.PMass,
		PVol:          cfg.Derived.PVol,
		Mu0:           cfg.Derived.Mu0,
		Lambda0:       cfg.Derived.Lambda0,
		Gravity:       cfg.Derived.Gravity32,
		GridDim:       cfg.Grid.Dim,
		BoundaryWidth: cfg.Grid.BoundaryWidth,
	}

	particles, err := BuildScene(cfg, rng)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		consts:    consts,
		particles: particles,
		grid:      mpm.NewGrid(cfg.Grid.Dim),
		parallel:  newParallelState(),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		stats:     telemetry.NewStatsCollector(particles.Len()),
		output:    output,
	}, nil
}

// Step advances the simulation by one tick.
func (e *Engine) Step() {
	e.perf.StartTick()

	e.perf.StartPhase(telemetry.PhaseGridClear)
	e.grid.Clear()

	e.perf.StartPhase(telemetry.PhaseP2G)
	e.parallel.run(e.particles.Len(), func(start, end int) {
		mpm.P2GRange(&e.consts, e.particles, e.grid, start, end)
	})

	// Step stats read the grid while it still holds raw momentum.
	interval := int64(e.cfg.Telemetry.Interval)
	logStep := interval > 0 && e.tick%interval == 0
	var st telemetry.StepStats
	if logStep {
		e.perf.StartPhase(telemetry.PhaseTelemetry)
		st = e.stats.Collect(e.tick, e.grid, e.particles)
	}

	e.perf.StartPhase(telemetry.PhaseGridSolve)
	mpm.GridSolve(&e.consts, e.grid)

	e.perf.StartPhase(telemetry.PhaseG2P)
	e.parallel.run(e.particles.Len(), func(start, end int) {
		mpm.G2PRange(&e.consts, e.particles, e.grid, start, end)
	})

	e.perf.EndTick()

	if logStep {
		st.Log()
		if err := e.output.WriteStep(st); err != nil {
			Logf("telemetry write failed: %v", err)
		}
		if err := e.output.WritePerf(e.perf.Stats(), e.tick); err != nil {
			Logf("perf write failed: %v", err)
		}
	}

	e.tick++
}

// Tick returns the number of completed steps.
func (e *Engine) Tick() int64 { return e.tick }

// Particles exposes the particle store for rendering and inspection.
func (e *Engine) Particles() *mpm.Particles { return e.particles }

// Grid exposes the background grid for rendering and inspection.
func (e *Engine) Grid() *mpm.Grid { return e.grid }

// Constants returns the solver constants in effect.
func (e *Engine) Constants() mpm.Constants { return e.consts }

// Perf returns aggregated timing stats over the rolling window.
func (e *Engine) Perf() telemetry.PerfStats { return e.perf.Stats() }

// RecordFrame forwards frame timing to the perf collector (graphics mode).
func (e *Engine) RecordFrame() { e.perf.RecordFrame() }

// Close stops the worker pool.
func (e *Engine) Close() {
	e.parallel.stopWorkers()
}
