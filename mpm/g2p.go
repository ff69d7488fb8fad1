package mpm

// G2P gathers grid velocities back onto particles in [start, end), rebuilds
// the APIC affine matrix, and advects positions. It must run after GridSolve,
// when cells hold velocity rather than momentum.
//
// Like P2G, ranges are independent; unlike P2G this phase only reads the
// grid, so no atomics are involved.
func G2P(k *Constants, ps *Particles, g *Grid) {
	G2PRange(k, ps, g, 0, ps.Len())
}

// G2PRange is the range-restricted form of G2P used by the worker pool.
func G2PRange(k *Constants, ps *Particles, g *Grid, start, end int) {
	dim := int32(k.GridDim)
	// APIC inertia-tensor inverse for the quadratic kernel: 4/dx^2.
	cScale := 4 * k.InvDX * k.InvDX
	// Particles are kept off the outermost cells so the next step's
	// stencil stays useful.
	posLo := k.DX * float32(k.BoundaryWidth)
	posHi := 1 - posLo

	for p := start; p < end; p++ {
		xp := ps.Pos[p]
		ci, cj := ContainingCell(xp, k.InvDX)
		containingCenter := Vec2{
			X: (float32(ci) + 0.5) * k.DX,
			Y: (float32(cj) + 0.5) * k.DX,
		}

		var vNew Vec2
		var cNew Mat2
		for _, off := range StencilOffsets {
			gi := ci + off[0]
			gj := cj + off[1]
			if gi < 0 || gj < 0 || gi >= dim || gj >= dim {
				continue
			}
			idx, _ := g.Index(gi, gj)
			cell := g.Cell(idx)

			gridPos := containingCenter.Add(Vec2{
				X: float32(off[0]) * k.DX,
				Y: float32(off[1]) * k.DX,
			})
			dpos := gridPos.Sub(xp)
			weight := QuadraticWeight2D(dpos.Scale(k.InvDX))

			gv := cell.Velocity()
			vNew = vNew.Add(gv.Scale(weight))
			cNew = cNew.Add(Outer(gv, dpos).Scale(weight * cScale))
		}

		xp = xp.Add(vNew.Scale(k.DT))
		xp.X = clampf(xp.X, posLo, posHi)
		xp.Y = clampf(xp.Y, posLo, posHi)

		ps.Vel[p] = vNew
		ps.C[p] = cNew
		ps.Pos[p] = xp
	}
}
