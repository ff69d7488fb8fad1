package mpm

import (
	"math"
	"sync/atomic"
)

// StencilOffsets enumerates the 3x3 neighborhood around a containing cell.
var StencilOffsets = [9][2]int32{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Cell is one background-grid cell. Mass and velocity are stored as float32
// bit patterns behind atomic words so that many particles can scatter into
// the same cell concurrently. During P2G the velocity field accumulates
// momentum; the grid solve divides by mass in place, after which it holds
// velocity.
type Cell struct {
	mass atomic.Uint32
	vx   atomic.Uint32
	vy   atomic.Uint32
}

// atomicAddFloat32 adds delta to the float32 stored in bits.
// There is no native atomic float add, so this loops compare-and-swap on the
// bit pattern. Addition through here is commutative but not associative:
// totals are order-invariant only up to float32 rounding.
func atomicAddFloat32(bits *atomic.Uint32, delta float32) {
	for {
		old := bits.Load()
		next := math.Float32bits(math.Float32frombits(old) + delta)
		if bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// AddMass atomically accumulates mass into the cell.
func (c *Cell) AddMass(m float32) {
	atomicAddFloat32(&c.mass, m)
}

// AddVelocity atomically accumulates a momentum contribution into the cell.
// Each component is added independently; no combined vector atomic is needed
// because the final value is a plain sum.
func (c *Cell) AddVelocity(v Vec2) {
	atomicAddFloat32(&c.vx, v.X)
	atomicAddFloat32(&c.vy, v.Y)
}

// Mass returns the accumulated cell mass.
func (c *Cell) Mass() float32 {
	return math.Float32frombits(c.mass.Load())
}

// Velocity returns the cell velocity (momentum before the grid solve).
func (c *Cell) Velocity() Vec2 {
	return Vec2{
		X: math.Float32frombits(c.vx.Load()),
		Y: math.Float32frombits(c.vy.Load()),
	}
}

// SetVelocity stores v. Only the grid solve uses this; that phase owns each
// cell exclusively, so plain stores through the atomic words are enough.
func (c *Cell) SetVelocity(v Vec2) {
	c.vx.Store(math.Float32bits(v.X))
	c.vy.Store(math.Float32bits(v.Y))
}

// Grid is the dim x dim background grid, rebuilt from particles every step.
type Grid struct {
	dim   int32
	cells []Cell
}

// NewGrid allocates a dim x dim grid of zeroed cells.
func NewGrid(dim int) *Grid {
	return &Grid{
		dim:   int32(dim),
		cells: make([]Cell, dim*dim),
	}
}

// Dim returns the grid dimension along one axis.
func (g *Grid) Dim() int { return int(g.dim) }

// Clear zeroes every cell. Runs once at the start of each step, before any
// transfer task starts, so plain stores are fine.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].mass.Store(0)
		g.cells[i].vx.Store(0)
		g.cells[i].vy.Store(0)
	}
}

// Index maps integer cell coordinates to a linear index. ok is false when
// the cell lies outside [0, dim) on either axis; there is no wraparound and
// no clamping.
func (g *Grid) Index(i, j int32) (int, bool) {
	if i < 0 || j < 0 || i >= g.dim || j >= g.dim {
		return 0, false
	}
	return int(j*g.dim + i), true
}

// Cell returns the cell at linear index idx.
func (g *Grid) Cell(idx int) *Cell {
	return &g.cells[idx]
}

// CellAt returns the cell at integer coordinates (i, j), or nil when out of
// bounds.
func (g *Grid) CellAt(i, j int32) *Cell {
	idx, ok := g.Index(i, j)
	if !ok {
		return nil
	}
	return &g.cells[idx]
}

// ContainingCell maps a continuous position to the integer coordinates of
// the cell containing it, via floor of pos/dx.
func ContainingCell(pos Vec2, invDX float32) (int32, int32) {
	return int32(floorf(pos.X * invDX)), int32(floorf(pos.Y * invDX))
}
