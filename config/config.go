// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Material  MaterialConfig  `yaml:"material"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds background-grid dimensions.
// The grid spans the unit square; cell spacing is derived as 1/dim.
type GridConfig struct {
	Dim           int `yaml:"dim"`            // cells along one axis
	BoundaryWidth int `yaml:"boundary_width"` // sticky wall band, in cells
}

// PhysicsConfig holds timestep and gravity parameters.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`
	Gravity float64 `yaml:"gravity"` // +y is down (graphics coordinates)
}

// MaterialConfig holds the elastic constants shared by all materials.
type MaterialConfig struct {
	YoungsModulus   float64 `yaml:"youngs_modulus"`
	PoissonRatio    float64 `yaml:"poisson_ratio"`
	ParticleDensity float64 `yaml:"particle_density"`
}

// BlockConfig places one square block of particles of a single material.
// Center and half extent are in unit-square world coordinates.
type BlockConfig struct {
	Material   string  `yaml:"material"` // fluid | jelly | snow
	Count      int     `yaml:"count"`
	CenterX    float64 `yaml:"center_x"`
	CenterY    float64 `yaml:"center_y"`
	HalfExtent float64 `yaml:"half_extent"`
}

// SceneConfig holds the initial particle layout.
type SceneConfig struct {
	Blocks []BlockConfig `yaml:"blocks"`
}

// TelemetryConfig holds stats logging parameters.
type TelemetryConfig struct {
	Interval   int `yaml:"interval"`    // ticks between step rows (0 = disabled)
	PerfWindow int `yaml:"perf_window"` // ticks to average phase timings over
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32 // Physics.DT as float32
	Gravity32    float32 // Physics.Gravity as float32
	DX           float32 // cell spacing, 1/Grid.Dim
	InvDX        float32 // Grid.Dim as float32
	PVol         float32 // particle volume, (dx/2)^2
	PMass        float32 // reference particle mass, PVol * density
	Mu0          float32 // Lame mu from E and nu
	Lambda0      float32 // Lame lambda from E and nu
	NumParticles int     // sum of scene block counts
}

var global *Config

// Init loads the configuration and makes it globally accessible.
// Pass an empty path to use the embedded defaults.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads configuration from the embedded defaults, then overlays the
// file at path if one is given.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the solver cannot run with. Precondition
// checks live here and in the scene builder, never in the per-particle step.
func (c *Config) validate() error {
	if c.Grid.Dim < 4 {
		return fmt.Errorf("grid.dim must be at least 4, got %d", c.Grid.Dim)
	}
	if c.Grid.BoundaryWidth < 0 || c.Grid.BoundaryWidth*2 >= c.Grid.Dim {
		return fmt.Errorf("grid.boundary_width %d does not fit a %d-cell grid", c.Grid.BoundaryWidth, c.Grid.Dim)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %g", c.Physics.DT)
	}
	if c.Material.YoungsModulus <= 0 {
		return fmt.Errorf("material.youngs_modulus must be positive, got %g", c.Material.YoungsModulus)
	}
	nu := c.Material.PoissonRatio
	if nu <= -1 || nu >= 0.5 {
		return fmt.Errorf("material.poisson_ratio must be in (-1, 0.5), got %g", nu)
	}
	if c.Material.ParticleDensity <= 0 {
		return fmt.Errorf("material.particle_density must be positive, got %g", c.Material.ParticleDensity)
	}
	if len(c.Scene.Blocks) == 0 {
		return fmt.Errorf("scene.blocks must not be empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.Gravity32 = float32(c.Physics.Gravity)
	c.Derived.DX = 1.0 / float32(c.Grid.Dim)
	c.Derived.InvDX = float32(c.Grid.Dim)
	c.Derived.PVol = (c.Derived.DX * 0.5) * (c.Derived.DX * 0.5)
	c.Derived.PMass = c.Derived.PVol * float32(c.Material.ParticleDensity)

	e := c.Material.YoungsModulus
	nu := c.Material.PoissonRatio
	c.Derived.Mu0 = float32(e / (2 * (1 + nu)))
	c.Derived.Lambda0 = float32(e * nu / ((1 + nu) * (1 - 2*nu)))

	c.Derived.NumParticles = 0
	for _, b := range c.Scene.Blocks {
		c.Derived.NumParticles += b.Count
	}
}
