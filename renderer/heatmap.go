// Package renderer draws the simulation state with raylib: the grid-mass
// heatmap behind material-colored particles.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mattjh/slush/mpm"
)

// HeatmapRenderer renders per-cell grid mass as shaded quads.
type HeatmapRenderer struct {
	screenW int32
	screenH int32
	// mass at which a cell saturates to full brightness
	saturation float32
}

// NewHeatmapRenderer creates a heatmap renderer for the given screen size.
// pMass scales the saturation point: a cell saturates when it has collected
// roughly four particles.
func NewHeatmapRenderer(screenW, screenH int32, pMass float32) *HeatmapRenderer {
	return &HeatmapRenderer{
		screenW:    screenW,
		screenH:    screenH,
		saturation: 4 * pMass,
	}
}

// Draw renders the grid. Cells with zero mass are skipped, so the heatmap is
// cheap while most of the grid is empty.
func (r *HeatmapRenderer) Draw(g *mpm.Grid) {
	dim := int32(g.Dim())
	cellW := r.screenW / dim
	cellH := r.screenH / dim
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}

	for j := int32(0); j < dim; j++ {
		for i := int32(0); i < dim; i++ {
			m := g.CellAt(i, j).Mass()
			if m <= 0 {
				continue
			}
			t := m / r.saturation
			if t > 1 {
				t = 1
			}
			shade := uint8(40 + t*160)
			color := rl.Color{R: shade / 3, G: shade / 2, B: shade, A: 255}
			rl.DrawRectangle(i*cellW, j*cellH, cellW, cellH, color)
		}
	}
}
