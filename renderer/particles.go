package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mattjh/slush/mpm"
)

// Material display colors.
var (
	fluidColor = rl.Color{R: 60, G: 130, B: 240, A: 255}
	jellyColor = rl.Color{R: 235, G: 90, B: 90, A: 255}
	snowColor  = rl.Color{R: 235, G: 235, B: 245, A: 255}
)

// ParticleRenderer renders the particle population.
type ParticleRenderer struct {
	screenW float32
	screenH float32
	radius  float32
}

// NewParticleRenderer creates a particle renderer for the given screen size.
func NewParticleRenderer(screenW, screenH int32) *ParticleRenderer {
	return &ParticleRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		radius:  2,
	}
}

// Draw renders every particle, mapping the unit square onto the screen.
func (r *ParticleRenderer) Draw(ps *mpm.Particles) {
	for p := 0; p < ps.Len(); p++ {
		var color rl.Color
		switch ps.Mat[p] {
		case mpm.MaterialFluid:
			color = fluidColor
		case mpm.MaterialJelly:
			color = jellyColor
		case mpm.MaterialSnow:
			color = snowColor
		}

		pos := ps.Pos[p]
		rl.DrawCircle(int32(pos.X*r.screenW), int32(pos.Y*r.screenH), r.radius, color)
	}
}
