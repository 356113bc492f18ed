// Package widgets renders the textual building blocks of the dashboard:
// sparklines for trends and gauges for current values.
package widgets

import "github.com/charmbracelet/lipgloss"

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklinePoints is the maximum number of points a dashboard sparkline
// displays.
const SparklinePoints = 50

// SparklineConfig controls the appearance and behavior of a sparkline.
type SparklineConfig struct {
	// Data points to render (most recent last).
	Data []float64
	// MaxPoints caps the number of points; only the most recent are
	// kept. Zero or negative means no cap.
	MaxPoints int
	// Color is the lipgloss color for the sparkline characters.
	Color lipgloss.Color
}

// RenderSparkline renders a sparkline scaled to the min and max of the
// displayed sub-sequence. A flat series (including a single point) maps
// every value to the lowest block. Empty data yields an empty string.
func RenderSparkline(cfg SparklineConfig) string {
	data := cfg.Data
	if len(data) == 0 {
		return ""
	}

	if cfg.MaxPoints > 0 && len(data) > cfg.MaxPoints {
		data = data[len(data)-cfg.MaxPoints:]
	}

	// Local scale: min and max of what is on screen, not of all history.
	minVal := data[0]
	maxVal := data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	runes := make([]rune, 0, len(data))
	span := maxVal - minVal

	for _, v := range data {
		if span == 0 {
			// Flat trend: everything sits on the floor.
			runes = append(runes, sparkBlocks[0])
			continue
		}
		normalized := (v - minVal) / span
		idx := int(normalized * float64(len(sparkBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		runes = append(runes, sparkBlocks[idx])
	}

	sparkStr := string(runes)

	if cfg.Color != "" {
		sparkStr = lipgloss.NewStyle().Foreground(cfg.Color).Render(sparkStr)
	}

	return sparkStr
}

// SparklineLevel returns the 0-based block level a rune represents, or
// -1 for non-sparkline runes.
func SparklineLevel(r rune) int {
	for i, b := range sparkBlocks {
		if r == b {
			return i
		}
	}
	return -1
}
