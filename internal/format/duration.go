package format

import (
	"fmt"
	"time"
)

// FormatLatency formats a backend call latency for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than ten seconds, and a rounded duration string
// otherwise. Backend latencies are typically in the hundreds of milliseconds
// to tens of seconds range, so the millisecond form dominates.
func FormatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < 10*time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

// FormatTokenEstimate formats a rough token count for display, switching to
// a "k" suffix beyond a thousand tokens.
func FormatTokenEstimate(tokens int) string {
	if tokens >= 1000 {
		return fmt.Sprintf("%.1fk tok", float64(tokens)/1000)
	}
	return fmt.Sprintf("%d tok", tokens)
}
