package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GaugeWidth is the fixed cell width of dashboard progress bars.
const GaugeWidth = 40

// Color bands for gauge fill, selected by value against the metric's
// thresholds.
var (
	colorGaugeLow      = lipgloss.Color("#22C55E")
	colorGaugeModerate = lipgloss.Color("#EAB308")
	colorGaugeHigh     = lipgloss.Color("#EF4444")
)

// GaugeConfig controls a horizontal progress bar.
type GaugeConfig struct {
	// Width is the total character width of the bar.
	Width int
	// Value is the current reading in the metric's own unit.
	Value float64
	// ScaleMax is the value at which the bar saturates.
	ScaleMax float64
	// ThresholdModerate and ThresholdHigh select the color band, in the
	// metric's own unit.
	ThresholdModerate float64
	ThresholdHigh     float64
	// FilledChar and EmptyChar default to "█" and "░".
	FilledChar string
	EmptyChar  string
}

// RenderGauge renders a bar whose filled cell count is
// round(Value/ScaleMax x Width), clamped to [0, Width]. Values beyond
// ScaleMax saturate the bar; the color band still reflects the raw value.
func RenderGauge(cfg GaugeConfig) string {
	width := cfg.Width
	if width <= 0 {
		width = GaugeWidth
	}

	filledChar := cfg.FilledChar
	if filledChar == "" {
		filledChar = "█"
	}
	emptyChar := cfg.EmptyChar
	if emptyChar == "" {
		emptyChar = "░"
	}

	var ratio float64
	if cfg.ScaleMax > 0 {
		ratio = cfg.Value / cfg.ScaleMax
	}

	filled := int(math.Round(ratio * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	color := gaugeColor(cfg.Value, cfg.ThresholdModerate, cfg.ThresholdHigh)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(filledChar, filled))
	emptyStr := strings.Repeat(emptyChar, width-filled)

	return filledStr + emptyStr
}

// gaugeColor picks the band color for a raw value.
func gaugeColor(value, moderate, high float64) lipgloss.Color {
	switch {
	case value >= high:
		return colorGaugeHigh
	case value >= moderate:
		return colorGaugeModerate
	default:
		return colorGaugeLow
	}
}

// CPUGauge renders the fixed-width CPU bar. Scale maximum is 100%;
// bands switch at 50% and 80%.
func CPUGauge(percent float64) string {
	return RenderGauge(GaugeConfig{
		Width:             GaugeWidth,
		Value:             percent,
		ScaleMax:          100,
		ThresholdModerate: 50,
		ThresholdHigh:     80,
	})
}

// Memory band thresholds, in bytes (decimal megabytes).
const (
	memModerateBytes = 500_000_000
	memHighBytes     = 1_000_000_000
)

// MemoryGauge renders the fixed-width memory bar. scaleMaxBytes is the
// configured saturation point; bands switch at 500MB and 1000MB.
func MemoryGauge(bytes uint64, scaleMaxBytes uint64) string {
	return RenderGauge(GaugeConfig{
		Width:             GaugeWidth,
		Value:             float64(bytes),
		ScaleMax:          float64(scaleMaxBytes),
		ThresholdModerate: memModerateBytes,
		ThresholdHigh:     memHighBytes,
	})
}
