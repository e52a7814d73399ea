package supervisor

import (
	"math"
	"strings"

	"github.com/marmos91/supercore/internal/logger"
)

// NaNVec3 is the sentinel returned for a vector query whose target
// does not carry the requested attribute (e.g. center-of-mass on a
// non-Solid node).
var NaNVec3 = [3]float64{math.NaN(), math.NaN(), math.NaN()}

func isNaNVec3(v [3]float64) bool {
	return math.IsNaN(v[0]) && math.IsNaN(v[1]) && math.IsNaN(v[2])
}

// diagnostic logs a message to standard error for an argument-misuse
// or stale-handle rejection. suppressQuit, when true (the process is
// quitting), silences the log.
func diagnostic(op, reason string, suppressQuit bool) {
	if suppressQuit {
		return
	}
	logger.Warn("supervisor: rejected", "operation", op, "reason", reason)
}

// hasExtension reports whether filename ends in one of exts, matched
// case-insensitively.
func hasExtension(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
