package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/mattjh/slush/mpm"
)

// StepStats summarizes the field state after one step: conserved totals from
// the grid and the spread of the plastic history across particles.
type StepStats struct {
	Tick        int64   `csv:"tick"`
	TotalMass   float64 `csv:"total_mass"`
	MomentumX   float64 `csv:"momentum_x"`
	MomentumY   float64 `csv:"momentum_y"`
	MaxCellMass float64 `csv:"max_cell_mass"`
	ActiveCells int     `csv:"active_cells"`
	MeanJp      float64 `csv:"mean_jp"`
	MinJp       float64 `csv:"min_jp"`
	MaxJp       float64 `csv:"max_jp"`
}

// StatsCollector computes StepStats without allocating per step.
type StatsCollector struct {
	jpScratch []float64
}

// NewStatsCollector creates a collector sized for n particles.
func NewStatsCollector(n int) *StatsCollector {
	return &StatsCollector{jpScratch: make([]float64, n)}
}

// Collect gathers grid totals and particle plasticity stats.
// Call it between P2G and GridSolve, while cells still hold momentum.
func (sc *StatsCollector) Collect(tick int64, g *mpm.Grid, ps *mpm.Particles) StepStats {
	st := StepStats{Tick: tick}

	dim := int32(g.Dim())
	for j := int32(0); j < dim; j++ {
		for i := int32(0); i < dim; i++ {
			c := g.CellAt(i, j)
			m := float64(c.Mass())
			if m == 0 {
				continue
			}
			st.ActiveCells++
			st.TotalMass += m
			if m > st.MaxCellMass {
				st.MaxCellMass = m
			}
			v := c.Velocity()
			st.MomentumX += float64(v.X)
			st.MomentumY += float64(v.Y)
		}
	}

	if n := ps.Len(); n > 0 {
		if cap(sc.jpScratch) < n {
			sc.jpScratch = make([]float64, n)
		}
		jp := sc.jpScratch[:n]
		for i, v := range ps.Jp {
			jp[i] = float64(v)
		}
		st.MeanJp = floats.Sum(jp) / float64(n)
		st.MinJp = floats.Min(jp)
		st.MaxJp = floats.Max(jp)
	}

	return st
}

// Log emits the stats as a structured log record.
func (st StepStats) Log() {
	slog.Info("step",
		"tick", st.Tick,
		"total_mass", st.TotalMass,
		"momentum_x", st.MomentumX,
		"momentum_y", st.MomentumY,
		"max_cell_mass", st.MaxCellMass,
		"active_cells", st.ActiveCells,
		"mean_jp", st.MeanJp,
	)
}
