package procstat

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemSnapshot holds host-wide metrics gathered alongside a
// single-snapshot run. It gives the insight step enough context to
// judge whether the monitored process is the problem or the victim.
type SystemSnapshot struct {
	// CPUPercent is global CPU usage over a short measurement window.
	CPUPercent float64 `json:"cpu_percent"`

	// Load1, Load5, Load15 are the standard load averages.
	Load1  float64 `json:"load_avg_1"`
	Load5  float64 `json:"load_avg_5"`
	Load15 float64 `json:"load_avg_15"`

	// MemoryTotal and MemoryAvailable are in bytes.
	MemoryTotal     uint64 `json:"memory_total"`
	MemoryAvailable uint64 `json:"memory_available"`

	// SwapTotal and SwapFree are in bytes.
	SwapTotal uint64 `json:"swap_total"`
	SwapFree  uint64 `json:"swap_free"`

	// CPUCount is the number of logical cores.
	CPUCount int `json:"cpu_count"`

	// ProcessCount is the number of processes visible on the host.
	ProcessCount int `json:"process_count"`
}

// systemCPUWindow is the measurement window for global CPU usage.
const systemCPUWindow = 200 * time.Millisecond

// CollectSystem gathers a best-effort host snapshot. Individual reads
// that fail are reported as warnings rather than aborting the snapshot.
func CollectSystem(ctx context.Context) (*SystemSnapshot, []string) {
	var warnings []string
	snap := &SystemSnapshot{}

	if pcts, err := cpu.PercentWithContext(ctx, systemCPUWindow, false); err != nil || len(pcts) == 0 {
		warnings = append(warnings, fmt.Sprintf("global cpu: %v", err))
	} else {
		snap.CPUPercent = pcts[0]
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		warnings = append(warnings, fmt.Sprintf("load average: %v", err))
	} else {
		snap.Load1 = avg.Load1
		snap.Load5 = avg.Load5
		snap.Load15 = avg.Load15
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		warnings = append(warnings, fmt.Sprintf("virtual memory: %v", err))
	} else {
		snap.MemoryTotal = vm.Total
		snap.MemoryAvailable = vm.Available
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err != nil {
		warnings = append(warnings, fmt.Sprintf("swap: %v", err))
	} else {
		snap.SwapTotal = sw.Total
		snap.SwapFree = sw.Free
	}

	if n, err := cpu.CountsWithContext(ctx, true); err != nil {
		warnings = append(warnings, fmt.Sprintf("cpu count: %v", err))
	} else {
		snap.CPUCount = n
	}

	if pids, err := process.PidsWithContext(ctx); err != nil {
		warnings = append(warnings, fmt.Sprintf("process count: %v", err))
	} else {
		snap.ProcessCount = len(pids)
	}

	return snap, warnings
}
