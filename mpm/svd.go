package mpm

// SVD2 holds the decomposition A = U * diag(S.X, S.Y) * V^T with
// S.X >= S.Y >= 0 and U, V orthonormal.
type SVD2 struct {
	U Mat2
	S Vec2
	V Mat2
}

// minPositive32 is the smallest positive normal float32.
const minPositive32 = 1.1754944e-38

// hypot2 is a scale-safe sqrt(x^2 + y^2) in float32: the smaller magnitude
// is divided by the larger before squaring, so intermediate values cannot
// overflow.
func hypot2(x, y float32) float32 {
	ax := absf(x)
	ay := absf(y)
	m, n := ax, ay
	if ay > ax {
		m, n = ay, ax
	}
	if m == 0 {
		return 0
	}
	return m * sqrtf(1+(n/m)*(n/m))
}

// SVD2x2 computes an exact, stable SVD of any real 2x2 matrix, including
// singular, rank-deficient, and ill-conditioned inputs. The route is the
// closed-form eigendecomposition of S = A^T A for the right singular vectors,
// then U = A*V*Sigma^{-1} with a rank-aware fallback for the second column.
func SVD2x2(a Mat2) SVD2 {
	a11 := a.C0.X
	a12 := a.C1.X
	a21 := a.C0.Y
	a22 := a.C1.Y

	// det(A) early: it feeds the stable lambda2 computation below.
	detA := a11*a22 - a12*a21

	// S = A^T A = [[alpha, beta], [beta, gamma]]
	alpha := a11*a11 + a21*a21
	beta := a11*a12 + a21*a22
	gamma := a12*a12 + a22*a22

	// Eigenvalues of S, sorted: lambda1 >= lambda2 >= 0.
	r := hypot2(alpha-gamma, 2*beta)
	lambda1 := maxf(0.5*((alpha+gamma)+r), 0)

	// lambda2 from det(S) = det(A)^2 = lambda1*lambda2. The direct form
	// 0.5*((alpha+gamma)-r) cancels catastrophically when r is close to
	// alpha+gamma. If lambda1 is numerically zero, lambda2 collapses to zero.
	lambda1Safe := maxf(lambda1, minPositive32)
	lambda2 := maxf((detA*detA)/lambda1Safe, 0)

	// Eigenvector for lambda1: two algebraically equivalent formulas; take
	// whichever came out with the larger magnitude.
	x1 := beta
	y1 := lambda1 - alpha
	x2 := lambda1 - gamma
	y2 := beta

	var v0 Vec2
	if absf(x1) > absf(y1) {
		v0 = Vec2{x1, y1}
	} else {
		v0 = Vec2{x2, y2}
	}
	if v0.LengthSq() == 0 {
		// S is already diagonal: align with its larger diagonal entry.
		if alpha >= gamma {
			v0 = Vec2{1, 0}
		} else {
			v0 = Vec2{0, 1}
		}
	} else {
		v0 = v0.Normalize()
	}
	v1 := v0.Perp()
	vMat := Mat2{C0: v0, C1: v1}

	// Make sure column 0 of V pairs with lambda1, by evaluating the diagonal
	// of V^T S V per column.
	c0 := vMat.C0
	c1 := vMat.C1
	d11 := alpha*(c0.X*c0.X) + 2*beta*(c0.X*c0.Y) + gamma*(c0.Y*c0.Y)
	d22 := alpha*(c1.X*c1.X) + 2*beta*(c1.X*c1.Y) + gamma*(c1.Y*c1.Y)
	if d22 > d11 {
		vMat = Mat2{C0: c1, C1: c0}
	}

	s1 := sqrtf(lambda1)
	s2 := sqrtf(lambda2)

	// B = A*V; left singular vectors are B's columns divided by the
	// singular values, with rank-aware handling.
	bMat := a.Mul(vMat)

	u0 := Vec2{1, 0}
	if s1 > 0 {
		u0 = bMat.C0.Scale(1 / s1)
	}

	// Rank-1 guard: if det(A) is exactly zero or s2 is denormal-tiny, never
	// divide noisy B.col1 by ~0; lock s2 to zero and pick the perpendicular.
	s2Tiny := s2 <= minPositive32*8
	var u1 Vec2
	if s2 == 0 || detA == 0 || s2Tiny {
		s2 = 0
		u1 = u0.Perp()
	} else {
		u1 = bMat.C1.Scale(1 / s2)
	}

	// One defensive Gram-Schmidt pass. Harmless when U is already
	// orthonormal; rescues the case s2 << s1 where tiny residuals in
	// V^T S V get magnified.
	u1 = u1.Sub(u0.Scale(u0.Dot(u1))).Normalize()
	u0 = u0.Normalize()

	uMat := Mat2{C0: u0, C1: u1}

	// Enforce det(U) >= 0 by flipping the second columns of U and V
	// together; A = U Sigma V^T and det(U)*det(V) = sign(det(A)) survive.
	if uMat.Det() < 0 {
		uMat.C1 = uMat.C1.Scale(-1)
		vMat.C1 = vMat.C1.Scale(-1)
	}

	return SVD2{U: uMat, S: Vec2{s1, s2}, V: vMat}
}
