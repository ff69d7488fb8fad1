package mpm

// P2G scatters mass and momentum for particles in [start, end) onto the
// grid. Invocations over disjoint ranges are independent and may run
// concurrently: particle state at each index is owned by its own range, and
// every grid write goes through an atomic add, so the final grid state is
// the same sum regardless of scheduling (up to float32 rounding).
//
// Besides the scatter, this writes the updated deformation gradient and
// plastic history from the constitutive update back into the store; position,
// velocity and C are left to the grid-to-particle stage.
func P2G(k *Constants, ps *Particles, g *Grid) {
	P2GRange(k, ps, g, 0, ps.Len())
}

// P2GRange is the range-restricted form of P2G used by the worker pool.
func P2GRange(k *Constants, ps *Particles, g *Grid, start, end int) {
	dim := int32(k.GridDim)
	for p := start; p < end; p++ {
		xp := ps.Pos[p]
		vp := ps.Vel[p]
		c := ps.C[p]

		f, jp, affineStress := ConstitutiveUpdate(k, ps.F[p], ps.Jp[p], ps.Mat[p], c)
		ps.F[p] = f
		ps.Jp[p] = jp

		ci, cj := ContainingCell(xp, k.InvDX)
		containingCenter := Vec2{
			X: (float32(ci) + 0.5) * k.DX,
			Y: (float32(cj) + 0.5) * k.DX,
		}

		for _, off := range StencilOffsets {
			gi := ci + off[0]
			gj := cj + off[1]
			if gi < 0 || gj < 0 || gi >= dim || gj >= dim {
				// stencil reaches outside the grid: the
				// contribution is dropped, not an error
				continue
			}
			idx, _ := g.Index(gi, gj)
			cell := g.Cell(idx)

			gridPos := containingCenter.Add(Vec2{
				X: float32(off[0]) * k.DX,
				Y: float32(off[1]) * k.DX,
			})
			// Kernel distance in cell units, so the nine weights
			// sum to one.
			weight := QuadraticWeight2D(xp.Sub(gridPos).Scale(k.InvDX))

			cell.AddMass(weight * k.PMass)
			// Momentum term uses the absolute grid position, kept
			// for compatibility with the reference formulation.
			// TODO: verify against a standard APIC derivation,
			// which uses the particle-relative offset here.
			cell.AddVelocity(vp.Scale(k.PMass).Add(affineStress.MulVec(gridPos)).Scale(weight))
		}
	}
}
