package history

import "gitlab.com/tinyland/lab/port-pulse/collectors"

// Stats summarizes a sample window. CPU and memory are tracked
// independently; the two scales never mix.
type Stats struct {
	// AverageCPU is the arithmetic mean CPU percentage.
	AverageCPU float64

	// PeakCPU is the highest CPU percentage observed.
	PeakCPU float64

	// AverageMemory is the arithmetic mean resident size, in bytes.
	AverageMemory float64

	// PeakMemory is the highest resident size observed, in bytes.
	PeakMemory uint64
}

// Compute derives Stats from samples in one pass. An empty input yields
// the zero Stats.
func Compute(samples []collectors.Sample) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	var s Stats
	var cpuSum, memSum float64

	for _, smp := range samples {
		cpuSum += smp.CPUPercent
		memSum += float64(smp.MemoryBytes)

		if smp.CPUPercent > s.PeakCPU {
			s.PeakCPU = smp.CPUPercent
		}
		if smp.MemoryBytes > s.PeakMemory {
			s.PeakMemory = smp.MemoryBytes
		}
	}

	n := float64(len(samples))
	s.AverageCPU = cpuSum / n
	s.AverageMemory = memSum / n

	return s
}
