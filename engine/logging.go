package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/mattjh/slush/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogPerfStats dumps the timing breakdown of the last window.
func (e *Engine) LogPerfStats() {
	stats := e.Perf()
	Logf("=== Perf @ Tick %d ===", e.tick)
	Logf("Avg step time: %s (%.0f steps/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond)

	for _, phase := range []string{
		telemetry.PhaseGridClear,
		telemetry.PhaseP2G,
		telemetry.PhaseGridSolve,
		telemetry.PhaseG2P,
		telemetry.PhaseTelemetry,
	} {
		avg, ok := stats.PhaseAvg[phase]
		if !ok {
			continue
		}
		Logf("  %-12s %10s  %5.1f%%", phase, avg.Round(time.Microsecond), stats.PhasePct[phase])
	}
	Logf("")
}
