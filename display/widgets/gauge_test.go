package widgets

import (
	"strings"
	"testing"
)

// barRunes strips ANSI escapes and returns the gauge's glyphs.
func barRunes(s string) []rune {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return []rune(b.String())
}

func countFilled(s string) int {
	n := 0
	for _, r := range barRunes(s) {
		if r == '█' {
			n++
		}
	}
	return n
}

func TestRenderGauge_FilledCells(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		scaleMax   float64
		wantFilled int
	}{
		{"zero", 0, 100, 0},
		{"half", 50, 100, 20},
		{"rounds to nearest", 51.2, 100, 20},
		{"full", 100, 100, 40},
		{"saturates beyond scale", 250, 100, 40},
		{"negative clamps to empty", -5, 100, 0},
		{"small fraction rounds", 1, 100, 0},
		{"one cell", 2.5, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderGauge(GaugeConfig{
				Width:    GaugeWidth,
				Value:    tt.value,
				ScaleMax: tt.scaleMax,
			})

			if got := countFilled(result); got != tt.wantFilled {
				t.Errorf("filled cells = %d, want %d", got, tt.wantFilled)
			}
			if got := len(barRunes(result)); got != GaugeWidth {
				t.Errorf("total width = %d, want %d", got, GaugeWidth)
			}
		})
	}
}

func TestGaugeColor_CPUBands(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, string(colorGaugeLow)},
		{49.9, string(colorGaugeLow)},
		{50, string(colorGaugeModerate)},
		{79.9, string(colorGaugeModerate)},
		{80, string(colorGaugeHigh)},
		{120, string(colorGaugeHigh)},
	}

	for _, tt := range tests {
		got := gaugeColor(tt.value, 50, 80)
		if string(got) != tt.want {
			t.Errorf("gaugeColor(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestGaugeColor_MemoryBands(t *testing.T) {
	tests := []struct {
		bytes float64
		want  string
	}{
		{100_000_000, string(colorGaugeLow)},
		{499_999_999, string(colorGaugeLow)},
		{500_000_000, string(colorGaugeModerate)},
		{999_999_999, string(colorGaugeModerate)},
		{1_000_000_000, string(colorGaugeHigh)},
		{4_000_000_000, string(colorGaugeHigh)},
	}

	for _, tt := range tests {
		got := gaugeColor(tt.bytes, memModerateBytes, memHighBytes)
		if string(got) != tt.want {
			t.Errorf("gaugeColor(%v bytes) = %s, want %s", tt.bytes, got, tt.want)
		}
	}
}

func TestCPUGauge_Width(t *testing.T) {
	result := CPUGauge(42)
	if got := len(barRunes(result)); got != GaugeWidth {
		t.Errorf("CPU gauge width = %d, want %d", got, GaugeWidth)
	}
}

func TestMemoryGauge_SaturatesAtScaleMax(t *testing.T) {
	// 4GB reading against a 2GB scale: bar is full, not overflowing.
	result := MemoryGauge(4_000_000_000, 2_000_000_000)

	if got := countFilled(result); got != GaugeWidth {
		t.Errorf("filled cells = %d, want %d (saturated)", got, GaugeWidth)
	}
	if got := len(barRunes(result)); got != GaugeWidth {
		t.Errorf("total width = %d, want %d", got, GaugeWidth)
	}
}

func TestMemoryGauge_HalfScale(t *testing.T) {
	result := MemoryGauge(1_000_000_000, 2_000_000_000)

	if got := countFilled(result); got != 20 {
		t.Errorf("filled cells = %d, want 20", got)
	}
}

func TestRenderGauge_ZeroScaleMax(t *testing.T) {
	// Degenerate configuration renders an empty bar rather than dividing
	// by zero.
	result := RenderGauge(GaugeConfig{Width: 10, Value: 50, ScaleMax: 0})

	if got := countFilled(result); got != 0 {
		t.Errorf("filled cells = %d, want 0", got)
	}
}
