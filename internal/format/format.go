// Package format provides shared string formatting for dashboard and
// snapshot output.
package format

import (
	"fmt"
	"time"
)

// Decimal byte units; the dashboard reports memory in MB/GB the way the
// kernel tools users compare against do.
const (
	kilobyte = 1_000
	megabyte = 1_000_000
	gigabyte = 1_000_000_000
)

// Bytes renders a byte count with two decimals in the largest fitting
// decimal unit: "512 B", "1.50 KB", "42.07 MB", "2.10 GB".
func Bytes(n uint64) string {
	switch {
	case n >= gigabyte:
		return fmt.Sprintf("%.2f GB", float64(n)/gigabyte)
	case n >= megabyte:
		return fmt.Sprintf("%.2f MB", float64(n)/megabyte)
	case n >= kilobyte:
		return fmt.Sprintf("%.2f KB", float64(n)/kilobyte)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Percent renders a percentage with two decimals: "5.29%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Duration renders a time.Duration as a concise human-readable string:
// "1s", "5m 30s", "2h 15m".
func Duration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	if d < time.Second {
		return "0s"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// Truncate truncates a string to maxLen runes, appending "..." when the
// string exceeds the limit. Limits under 4 hard-truncate without the
// ellipsis suffix.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen < 4 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
