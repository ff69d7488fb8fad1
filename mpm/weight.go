package mpm

// QuadraticWeight evaluates the quadratic B-spline interpolation kernel at t,
// where t is scaled relative to a unit-sized grid cell.
// "The Material Point Method for Simulating Continuum Materials" Eqn. 123.
func QuadraticWeight(t float32) float32 {
	at := absf(t)
	if at < 0.5 {
		return 0.75 - t*t
	}
	if at < 1.5 {
		d := 1.5 - at
		return 0.5 * d * d
	}
	return 0
}

// QuadraticWeight2D evaluates the 2D kernel at offset fx, the separable
// product of the 1D weight on each axis.
func QuadraticWeight2D(fx Vec2) float32 {
	return QuadraticWeight(fx.X) * QuadraticWeight(fx.Y)
}
