package format

import "fmt"

// Binary size units.
const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// FormatBytes renders a byte count using binary units with one decimal.
func FormatBytes(b uint64) string {
	switch {
	case b >= gib:
		return fmt.Sprintf("%.1f GiB", float64(b)/float64(gib))
	case b >= mib:
		return fmt.Sprintf("%.1f MiB", float64(b)/float64(mib))
	case b >= kib:
		return fmt.Sprintf("%.1f KiB", float64(b)/float64(kib))
	}
	return fmt.Sprintf("%d B", b)
}
