package mpm

import "fmt"

// Material selects the constitutive behavior of a particle.
type Material uint8

const (
	MaterialFluid Material = iota // inviscid weakly compressible fluid
	MaterialJelly                 // soft corotated elastic solid
	MaterialSnow                  // elastoplastic with hardening
)

// String returns the material name.
func (m Material) String() string {
	switch m {
	case MaterialFluid:
		return "fluid"
	case MaterialJelly:
		return "jelly"
	case MaterialSnow:
		return "snow"
	}
	return fmt.Sprintf("material(%d)", uint8(m))
}

// ParseMaterial maps a config tag to a Material.
func ParseMaterial(s string) (Material, error) {
	switch s {
	case "fluid":
		return MaterialFluid, nil
	case "jelly":
		return MaterialJelly, nil
	case "snow":
		return MaterialSnow, nil
	}
	return 0, fmt.Errorf("unknown material %q", s)
}

// Particles stores per-particle state as parallel arrays, indexed by
// particle. Each index is exclusively owned by its own transfer task; the
// arrays are allocated once at scene setup and never resized during a run.
type Particles struct {
	Pos []Vec2    // position in the unit square
	Vel []Vec2    // velocity
	C   []Mat2    // APIC affine velocity matrix
	F   []Mat2    // deformation gradient, initially identity
	Jp  []float32 // volume absorbed by plastic flow, initially 1
	Mat []Material
}

// NewParticles allocates storage for n particles with F = identity and
// Jp = 1; everything else is zero until the scene initializer fills it in.
func NewParticles(n int) *Particles {
	p := &Particles{
		Pos: make([]Vec2, n),
		Vel: make([]Vec2, n),
		C:   make([]Mat2, n),
		F:   make([]Mat2, n),
		Jp:  make([]float32, n),
		Mat: make([]Material, n),
	}
	for i := 0; i < n; i++ {
		p.F[i] = Identity2
		p.Jp[i] = 1
	}
	return p
}

// Len returns the particle count.
func (p *Particles) Len() int { return len(p.Pos) }
