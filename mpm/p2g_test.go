package mpm

import (
	"math"
	"testing"
)

// totalGridMass sums mass over every cell.
func totalGridMass(g *Grid) float64 {
	var sum float64
	dim := int32(g.Dim())
	for j := int32(0); j < dim; j++ {
		for i := int32(0); i < dim; i++ {
			sum += float64(g.CellAt(i, j).Mass())
		}
	}
	return sum
}

func totalGridMomentum(g *Grid) (float64, float64) {
	var px, py float64
	dim := int32(g.Dim())
	for j := int32(0); j < dim; j++ {
		for i := int32(0); i < dim; i++ {
			v := g.CellAt(i, j).Velocity()
			px += float64(v.X)
			py += float64(v.Y)
		}
	}
	return px, py
}

// oneParticle builds a single-particle store at the given position.
func oneParticle(pos Vec2, vel Vec2, m Material) *Particles {
	ps := NewParticles(1)
	ps.Pos[0] = pos
	ps.Vel[0] = vel
	ps.Mat[0] = m
	return ps
}

// TestP2GPartitionOfUnity drops one particle exactly on a cell center; the
// nine stencil weights must sum to one, so the scattered mass must equal the
// particle mass.
func TestP2GPartitionOfUnity(t *testing.T) {
	k := testConstants()
	g := NewGrid(k.GridDim)

	// exactly the center of cell (64, 32)
	pos := Vec2{(64 + 0.5) * k.DX, (32 + 0.5) * k.DX}
	ps := oneParticle(pos, Vec2{}, MaterialFluid)

	P2G(k, ps, g)

	got := totalGridMass(g)
	if math.Abs(got-float64(k.PMass)) > 1e-9 {
		t.Errorf("total scattered mass = %v, want %v", got, k.PMass)
	}

	// The center cell alone gets 0.75*0.75 of the mass.
	center := g.CellAt(64, 32).Mass()
	want := 0.75 * 0.75 * k.PMass
	if math.Abs(float64(center-want)) > 1e-12 {
		t.Errorf("center cell mass = %v, want %v", center, want)
	}
}

// TestP2GOrderIndependence scatters two particles into overlapping stencils
// in both iteration orders; the accumulated grid must agree within rounding.
func TestP2GOrderIndependence(t *testing.T) {
	k := testConstants()

	pa := Vec2{0.5, 0.5}
	pb := Vec2{0.5 + 0.4*k.DX, 0.5 - 0.3*k.DX}

	forward := NewParticles(2)
	forward.Pos[0], forward.Pos[1] = pa, pb
	forward.Vel[0] = Vec2{0.1, 0}
	forward.Vel[1] = Vec2{0, -0.2}
	forward.Mat[0], forward.Mat[1] = MaterialJelly, MaterialJelly

	reversed := NewParticles(2)
	reversed.Pos[0], reversed.Pos[1] = pb, pa
	reversed.Vel[0] = Vec2{0, -0.2}
	reversed.Vel[1] = Vec2{0.1, 0}
	reversed.Mat[0], reversed.Mat[1] = MaterialJelly, MaterialJelly

	gf := NewGrid(k.GridDim)
	gr := NewGrid(k.GridDim)
	P2G(k, forward, gf)
	P2G(k, reversed, gr)

	dim := int32(k.GridDim)
	for j := int32(0); j < dim; j++ {
		for i := int32(0); i < dim; i++ {
			mf := gf.CellAt(i, j).Mass()
			mr := gr.CellAt(i, j).Mass()
			if math.Abs(float64(mf-mr)) > 1e-7*(1+math.Abs(float64(mf))) {
				t.Errorf("cell (%d, %d): mass %v vs %v depends on order", i, j, mf, mr)
			}
		}
	}
}

// TestP2GUntouchedCellsStayZero verifies cells outside every stencil receive
// nothing at all, not merely something small.
func TestP2GUntouchedCellsStayZero(t *testing.T) {
	k := testConstants()
	g := NewGrid(k.GridDim)

	ps := oneParticle(Vec2{0.5, 0.5}, Vec2{1, 1}, MaterialSnow)
	P2G(k, ps, g)

	ci, cj := ContainingCell(Vec2{0.5, 0.5}, k.InvDX)
	dim := int32(k.GridDim)
	for j := int32(0); j < dim; j++ {
		for i := int32(0); i < dim; i++ {
			di := i - ci
			dj := j - cj
			if di >= -1 && di <= 1 && dj >= -1 && dj <= 1 {
				continue
			}
			c := g.CellAt(i, j)
			if c.Mass() != 0 || c.Velocity() != (Vec2{}) {
				t.Errorf("cell (%d, %d) outside the stencil was written: mass=%v v=%v", i, j, c.Mass(), c.Velocity())
			}
		}
	}
}

// TestP2GStencilClippedAtEdge places a particle in the corner cell; the
// out-of-bounds part of its stencil is dropped silently, so less than the
// full mass lands on the grid and nothing panics.
func TestP2GStencilClippedAtEdge(t *testing.T) {
	k := testConstants()
	g := NewGrid(k.GridDim)

	ps := oneParticle(Vec2{0.5 * k.DX, 0.5 * k.DX}, Vec2{}, MaterialFluid)
	P2G(k, ps, g)

	got := totalGridMass(g)
	if got >= float64(k.PMass) {
		t.Errorf("clipped stencil should lose mass: scattered %v of %v", got, k.PMass)
	}
	if got <= 0 {
		t.Errorf("corner particle should still scatter something, got %v", got)
	}
}

// TestP2GSingleJellyParticle is the end-to-end transfer check: a resting
// jelly particle deposits exactly its mass, its momentum distributes by the
// weights, and its deformation state is untouched.
func TestP2GSingleJellyParticle(t *testing.T) {
	k := testConstants()
	g := NewGrid(k.GridDim)

	vel := Vec2{0.3, -0.2}
	ps := oneParticle(Vec2{0.5, 0.5}, vel, MaterialJelly)

	P2G(k, ps, g)

	mass := totalGridMass(g)
	if math.Abs(mass-float64(k.PMass)) > 1e-9 {
		t.Errorf("total grid mass = %v, want %v", mass, k.PMass)
	}

	// With F = I and C = 0 the affine stress vanishes, so the momentum sum
	// is exactly m*v.
	px, py := totalGridMomentum(g)
	if math.Abs(px-float64(k.PMass*vel.X)) > 1e-10 || math.Abs(py-float64(k.PMass*vel.Y)) > 1e-10 {
		t.Errorf("grid momentum = (%v, %v), want (%v, %v)", px, py, k.PMass*vel.X, k.PMass*vel.Y)
	}

	if err := frob(ps.F[0].Sub(Identity2)); err > 1e-6 {
		t.Errorf("F should be unchanged, error %v: %v", err, ps.F[0])
	}
	if ps.Jp[0] != 1 {
		t.Errorf("Jp should remain 1, got %v", ps.Jp[0])
	}
}
