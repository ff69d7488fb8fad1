package mpm

// snowClampLo and snowClampHi bound the principal stretches of snow; volume
// change outside this band is absorbed as plastic flow.
const (
	snowClampLo = 1.0 - 2.5e-2
	snowClampHi = 1.0 + 4.5e-3
)

// ConstitutiveUpdate advances one particle's deformation gradient and
// plastic history and produces the affine stress matrix for the grid
// transfer.
//
// The update has no failure modes: it runs identically for every particle,
// degeneracy is absorbed by the rank-aware SVD, and non-finite input
// propagates to non-finite output instead of raising an error.
func ConstitutiveUpdate(k *Constants, f Mat2, jp float32, material Material, c Mat2) (fNew Mat2, jpNew float32, affineStress Mat2) {
	f = Identity2.Add(c.Mul(f).Scale(k.DT))

	// Hardening from the plastic history accumulated so far: compressed
	// snow stiffens, stretched snow softens.
	h := clampf(expf(10*(1-jp)), 0.1, 5.0)

	var mu, lambda float32
	switch material {
	case MaterialFluid:
		mu, lambda = 0, 0
	case MaterialJelly:
		// soft solid, reduced stiffness
		mu, lambda = 0.3*k.Mu0, 0.3*k.Lambda0
	case MaterialSnow:
		mu, lambda = h*k.Mu0, h*k.Lambda0
	}

	svd := SVD2x2(f)
	sig := [2]float32{svd.S.X, svd.S.Y}

	jTotal := float32(1)
	for d := 0; d < 2; d++ {
		newSig := sig[d]
		if material == MaterialSnow {
			// plasticity: clamp the principal stretch, book the
			// clipped volume into Jp
			newSig = clampf(newSig, snowClampLo, snowClampHi)
		}
		jp *= sig[d] / newSig
		sig[d] = newSig
		jTotal *= newSig
	}

	switch material {
	case MaterialFluid:
		// fluids forget shear entirely; keep only the volume
		f = Identity2.Scale(sqrtf(jTotal))
	case MaterialJelly, MaterialSnow:
		f = svd.U.Mul(Diag(sig[0], sig[1])).Mul(svd.V.Transpose())
	}

	// Corotated stress with R = U*V^T from the SVD.
	r := svd.U.Mul(svd.V.Transpose())
	stress := f.Sub(r).Mul(f.Transpose()).Scale(2 * mu).
		Add(Identity2.Scale(lambda * (jTotal - 1) * jTotal))
	affineStress = stress.Add(c.Scale(k.PMass))

	return f, jp, affineStress
}
