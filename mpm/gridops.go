package mpm

// GridSolve turns the scattered momentum into velocity, applies gravity, and
// enforces the box boundary. Runs after P2G and before G2P; each cell is
// touched exactly once, so no atomics are needed.
//
// Boundary handling is a sticky band BoundaryWidth cells wide at each wall:
// the velocity component pointing out of the domain is zeroed.
func GridSolve(k *Constants, g *Grid) {
	dim := int32(k.GridDim)
	bound := int32(k.BoundaryWidth)
	dtg := k.DT * k.Gravity

	for j := int32(0); j < dim; j++ {
		for i := int32(0); i < dim; i++ {
			idx, _ := g.Index(i, j)
			cell := g.Cell(idx)

			m := cell.Mass()
			if m <= 0 {
				continue
			}
			v := cell.Velocity().Scale(1 / m)
			v.Y += dtg // +y is down

			if i < bound && v.X < 0 {
				v.X = 0
			}
			if i >= dim-bound && v.X > 0 {
				v.X = 0
			}
			if j < bound && v.Y < 0 {
				v.Y = 0
			}
			if j >= dim-bound && v.Y > 0 {
				v.Y = 0
			}

			cell.SetVelocity(v)
		}
	}
}
