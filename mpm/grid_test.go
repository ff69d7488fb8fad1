package mpm

import (
	"math"
	"sync"
	"testing"
)

func TestGridIndexBounds(t *testing.T) {
	g := NewGrid(8)

	tests := []struct {
		name string
		i, j int32
		want int
		ok   bool
	}{
		{"origin", 0, 0, 0, true},
		{"interior", 3, 2, 19, true},
		{"last", 7, 7, 63, true},
		{"negative x", -1, 0, 0, false},
		{"negative y", 0, -1, 0, false},
		{"past x", 8, 0, 0, false},
		{"past y", 0, 8, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Index(tt.i, tt.j)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Index(%d, %d) = %d, %v; want %d, %v", tt.i, tt.j, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestContainingCell(t *testing.T) {
	const invDX = 128

	tests := []struct {
		name string
		pos  Vec2
		i, j int32
	}{
		{"origin", Vec2{0, 0}, 0, 0},
		{"cell interior", Vec2{0.5, 0.25}, 64, 32},
		{"just below boundary", Vec2{0.0078124, 0.5}, 0, 64},
		{"just above boundary", Vec2{0.0078126, 0.5}, 1, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j := ContainingCell(tt.pos, invDX)
			if i != tt.i || j != tt.j {
				t.Errorf("ContainingCell(%v) = (%d, %d), want (%d, %d)", tt.pos, i, j, tt.i, tt.j)
			}
		})
	}
}

// TestCellAtomicAccumulation hammers a single cell from many goroutines and
// checks the total: the scatter correctness of the whole solver rests on
// this add being atomic.
func TestCellAtomicAccumulation(t *testing.T) {
	g := NewGrid(4)
	cell := g.CellAt(1, 1)

	const workers = 8
	const addsPerWorker = 10000
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsPerWorker; i++ {
				cell.AddMass(1)
				cell.AddVelocity(Vec2{0.5, -0.5})
			}
		}()
	}
	wg.Wait()

	wantMass := float64(workers * addsPerWorker)
	if got := float64(cell.Mass()); math.Abs(got-wantMass) > 0.5 {
		t.Errorf("mass = %v, want %v", got, wantMass)
	}
	v := cell.Velocity()
	if math.Abs(float64(v.X)-wantMass/2) > 0.5 || math.Abs(float64(v.Y)+wantMass/2) > 0.5 {
		t.Errorf("velocity = %v, want (%v, %v)", v, wantMass/2, -wantMass/2)
	}
}

func TestGridClear(t *testing.T) {
	g := NewGrid(4)
	g.CellAt(2, 3).AddMass(5)
	g.CellAt(2, 3).AddVelocity(Vec2{1, 2})

	g.Clear()

	for j := int32(0); j < 4; j++ {
		for i := int32(0); i < 4; i++ {
			c := g.CellAt(i, j)
			if c.Mass() != 0 || c.Velocity() != (Vec2{}) {
				t.Errorf("cell (%d, %d) not cleared: mass=%v v=%v", i, j, c.Mass(), c.Velocity())
			}
		}
	}
}
