package engine

import (
	"fmt"
	"math/rand"

	"github.com/mattjh/slush/config"
	"github.com/mattjh/slush/mpm"
)

// BuildScene allocates and fills the particle store from the configured
// blocks: jittered uniform positions inside each square, zero velocity,
// identity deformation. All precondition checks happen here, so the
// per-particle step can stay free of them.
func BuildScene(cfg *config.Config, rng *rand.Rand) (*mpm.Particles, error) {
	total := 0
	for i, b := range cfg.Scene.Blocks {
		if b.Count <= 0 {
			return nil, fmt.Errorf("scene block %d: count must be positive, got %d", i, b.Count)
		}
		if _, err := mpm.ParseMaterial(b.Material); err != nil {
			return nil, fmt.Errorf("scene block %d: %w", i, err)
		}
		if b.HalfExtent <= 0 {
			return nil, fmt.Errorf("scene block %d: half_extent must be positive, got %g", i, b.HalfExtent)
		}
		margin := float64(cfg.Grid.BoundaryWidth) * float64(cfg.Derived.DX)
		if b.CenterX-b.HalfExtent < margin || b.CenterX+b.HalfExtent > 1-margin ||
			b.CenterY-b.HalfExtent < margin || b.CenterY+b.HalfExtent > 1-margin {
			return nil, fmt.Errorf("scene block %d: extends into the boundary band", i)
		}
		total += b.Count
	}

	ps := mpm.NewParticles(total)

	p := 0
	for _, b := range cfg.Scene.Blocks {
		material, _ := mpm.ParseMaterial(b.Material)
		for i := 0; i < b.Count; i++ {
			ps.Pos[p] = mpm.Vec2{
				X: float32(b.CenterX + (rng.Float64()*2-1)*b.HalfExtent),
				Y: float32(b.CenterY + (rng.Float64()*2-1)*b.HalfExtent),
			}
			ps.Mat[p] = material
			p++
		}
	}

	return ps, nil
}
