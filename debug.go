package arbor

import (
	"fmt"
	"time"
)

// globalDebug enables the extra tree checks below. It is off by default and
// turned on by SetDebugMode or a canvas created with Options.DebugMode.
var globalDebug bool

// SetDebugMode enables or disables debug checks for every visual: use of a
// disposed visual panics, and very deep or very wide trees log warnings.
func SetDebugMode(on bool) {
	globalDebug = on
}

// frameStats holds per-frame timing and tree metrics.
// Only populated when the canvas is in debug mode.
type frameStats struct {
	layoutTime  time.Duration
	renderTime  time.Duration
	visualCount int
	measured    int
	arranged    int
}

// countTree accumulates visual count and cumulative layout step counts.
func countTree(v *Visual, stats *frameStats) {
	stats.visualCount++
	stats.measured += v.measureCount
	stats.arranged += v.arrangeCount
	for _, c := range v.children {
		countTree(c, stats)
	}
}

// debugLog writes timing and tree stats at debug level.
func (c *Canvas) debugLog(stats frameStats) {
	logger().Debug("frame",
		"layout", stats.layoutTime,
		"render", stats.renderTime,
		"total", stats.layoutTime+stats.renderTime,
		"visuals", stats.visualCount,
		"measures", stats.measured,
		"arranges", stats.arranged,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed visual
// is used in a tree or layout operation. In release mode callers skip this
// entirely.
func debugCheckDisposed(v *Visual, op string) {
	if v.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed visual %q (ID was %d)", op, v.Name, v.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(v *Visual) {
	depth := 0
	for p := v; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger().Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "visual", v.Name)
	}
}

// debugCheckChildCount warns if a visual has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(v *Visual) {
	if len(v.children) > debugMaxChildCount {
		logger().Warn("child count exceeds threshold",
			"visual", v.Name, "children", len(v.children), "threshold", debugMaxChildCount)
	}
}
