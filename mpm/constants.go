package mpm

// Constants holds the process-wide simulation constants, loaded once at
// startup and read-only afterward.
type Constants struct {
	DT      float32 // timestep
	DX      float32 // cell spacing
	InvDX   float32 // 1/DX
	PMass   float32 // reference particle mass
	PVol    float32 // reference particle volume
	Mu0     float32 // Lame mu at zero hardening
	Lambda0 float32 // Lame lambda at zero hardening
	Gravity float32 // +y is down

	GridDim       int // cells along one axis
	BoundaryWidth int // sticky wall band, in cells
}
