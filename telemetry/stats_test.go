package telemetry

import (
	"math"
	"testing"

	"github.com/mattjh/slush/mpm"
)

func TestCollectStepStats(t *testing.T) {
	g := mpm.NewGrid(16)
	g.CellAt(2, 3).AddMass(0.5)
	g.CellAt(2, 3).AddVelocity(mpm.Vec2{X: 1, Y: -2})
	g.CellAt(7, 7).AddMass(1.5)
	g.CellAt(7, 7).AddVelocity(mpm.Vec2{X: -0.5, Y: 0.5})

	ps := mpm.NewParticles(3)
	ps.Jp[0] = 0.9
	ps.Jp[1] = 1.0
	ps.Jp[2] = 1.1

	sc := NewStatsCollector(ps.Len())
	st := sc.Collect(42, g, ps)

	if st.Tick != 42 {
		t.Errorf("tick = %d, want 42", st.Tick)
	}
	if math.Abs(st.TotalMass-2.0) > 1e-6 {
		t.Errorf("total mass = %v, want 2", st.TotalMass)
	}
	if st.ActiveCells != 2 {
		t.Errorf("active cells = %d, want 2", st.ActiveCells)
	}
	if math.Abs(st.MaxCellMass-1.5) > 1e-6 {
		t.Errorf("max cell mass = %v, want 1.5", st.MaxCellMass)
	}
	if math.Abs(st.MomentumX-0.5) > 1e-6 || math.Abs(st.MomentumY+1.5) > 1e-6 {
		t.Errorf("momentum = (%v, %v), want (0.5, -1.5)", st.MomentumX, st.MomentumY)
	}
	if math.Abs(st.MeanJp-1.0) > 1e-6 {
		t.Errorf("mean jp = %v, want 1", st.MeanJp)
	}
	if math.Abs(st.MinJp-0.9) > 1e-6 || math.Abs(st.MaxJp-1.1) > 1e-6 {
		t.Errorf("jp range = [%v, %v], want [0.9, 1.1]", st.MinJp, st.MaxJp)
	}
}

func TestCollectStepStatsEmpty(t *testing.T) {
	g := mpm.NewGrid(8)
	ps := mpm.NewParticles(0)

	sc := NewStatsCollector(0)
	st := sc.Collect(0, g, ps)

	if st.TotalMass != 0 || st.ActiveCells != 0 {
		t.Errorf("empty scene should produce zero stats, got %+v", st)
	}
}
