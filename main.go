package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mattjh/slush/config"
	"github.com/mattjh/slush/engine"
	"github.com/mattjh/slush/renderer"
	"github.com/mattjh/slush/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerFrame := flag.Int("steps-per-frame", 25, "Simulation steps per rendered frame")
	perfLog := flag.Bool("perf-log", false, "Periodically dump the phase timing breakdown")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to open output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	e, err := engine.New(cfg, rand.New(rand.NewSource(rngSeed)), output)
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		os.Exit(1)
	}
	defer e.Close()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"particles", cfg.Derived.NumParticles,
		"grid_dim", cfg.Grid.Dim,
		"dt", cfg.Physics.DT,
		"headless", *headless,
	)

	if *headless {
		for {
			e.Step()

			if *perfLog && e.Tick()%10000 == 0 {
				e.LogPerfStats()
			}
			if *maxTicks > 0 && e.Tick() >= *maxTicks {
				slog.Info("max ticks reached", "tick", e.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "slush")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	heatmap := renderer.NewHeatmapRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Derived.PMass)
	particles := renderer.NewParticleRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height))

	frames := 0
	for !rl.WindowShouldClose() {
		for s := 0; s < *stepsPerFrame; s++ {
			e.Step()
		}
		e.RecordFrame()
		frames++

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 14, B: 20, A: 255})
		heatmap.Draw(e.Grid())
		particles.Draw(e.Particles())
		rl.DrawText(fmt.Sprintf("tick %d", e.Tick()), 10, 10, 16, rl.RayWhite)
		rl.EndDrawing()

		if *perfLog && frames%120 == 0 {
			e.LogPerfStats()
		}
		if *maxTicks > 0 && e.Tick() >= *maxTicks {
			break
		}
	}
}
