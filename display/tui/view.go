package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/port-pulse/display/widgets"
	"gitlab.com/tinyland/lab/port-pulse/internal/format"
)

// View implements tea.Model. It renders the full dashboard frame.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.sampleCount == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			styleBlock.Render("Collecting first sample..."),
			m.renderFooter(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderProcessBlock(),
		m.renderCPUBlock(),
		m.renderMemoryBlock(),
		m.renderFooter(),
	)
}

// renderHeader renders the bordered session title naming the port.
func (m Model) renderHeader() string {
	title := styleTitle.Render("port-pulse")
	return styleHeader.Render(fmt.Sprintf("%s  watching :%d", title, m.port))
}

// renderProcessBlock renders the identity of the watched process.
func (m Model) renderProcessBlock() string {
	latest, _ := m.window.Latest()

	lines := []string{
		styleLabel.Render("Process  ") + fmt.Sprintf("%s (PID %d)", m.processName, m.pid),
		styleLabel.Render("Port     ") + fmt.Sprintf(":%d", m.port),
		styleLabel.Render("Samples  ") + fmt.Sprintf("%d", m.sampleCount),
		styleLabel.Render("Updated  ") + latest.Timestamp.Format("15:04:05"),
	}
	if m.skipped > 0 {
		lines[2] += styleLabel.Render(fmt.Sprintf("  (%d skipped)", m.skipped))
	}

	return styleBlock.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderCPUBlock renders the CPU reading with its gauge and trend.
func (m Model) renderCPUBlock() string {
	latest, _ := m.window.Latest()

	stats := fmt.Sprintf("%s   %s %s   %s %s",
		format.Percent(latest.CPUPercent),
		styleLabel.Render("avg"), format.Percent(m.stats.AverageCPU),
		styleLabel.Render("peak"), format.Percent(m.stats.PeakCPU),
	)

	spark := widgets.RenderSparkline(widgets.SparklineConfig{
		Data:      m.window.CPUSeries(widgets.SparklinePoints),
		MaxPoints: widgets.SparklinePoints,
		Color:     colorSecondary,
	})

	return styleBlock.Render(lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render("CPU"),
		stats,
		widgets.CPUGauge(latest.CPUPercent),
		spark,
	))
}

// renderMemoryBlock renders the memory reading with its gauge and trend.
func (m Model) renderMemoryBlock() string {
	latest, _ := m.window.Latest()

	stats := fmt.Sprintf("%s   %s %s   %s %s",
		format.Bytes(latest.MemoryBytes),
		styleLabel.Render("avg"), format.Bytes(uint64(m.stats.AverageMemory)),
		styleLabel.Render("peak"), format.Bytes(m.stats.PeakMemory),
	)

	spark := widgets.RenderSparkline(widgets.SparklineConfig{
		Data:      m.window.MemorySeries(widgets.SparklinePoints),
		MaxPoints: widgets.SparklinePoints,
		Color:     colorPrimary,
	})

	return styleBlock.Render(lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render("Memory"),
		stats,
		widgets.MemoryGauge(latest.MemoryBytes, m.memoryScale),
		spark,
	))
}

// renderFooter renders the key hints and the sampling cadence.
func (m Model) renderFooter() string {
	return styleFooter.Render(fmt.Sprintf("%s quit · interval %s", keys.Quit.Help().Key, m.interval))
}
