package logger

import (
	"strings"
	"time"
)

// Status collapses an error into the two-valued status attribute used
// across handler and service summaries.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RoundMS normalizes durations to millisecond precision so log lines
// stay comparable; negative durations clamp to zero.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

// SummarizeStrings renders at most limit values as a comma-separated
// preview and reports whether anything was cut off.
func SummarizeStrings(values []string, limit int) (preview string, truncated bool) {
	switch {
	case limit <= 0:
		return "", len(values) > 0
	case len(values) > limit:
		return strings.Join(values[:limit], ", "), true
	default:
		return strings.Join(values, ", "), false
	}
}
