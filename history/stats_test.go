package history

import (
	"testing"

	"gitlab.com/tinyland/lab/port-pulse/collectors"
)

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)

	if s.AverageCPU != 0 || s.PeakCPU != 0 || s.AverageMemory != 0 || s.PeakMemory != 0 {
		t.Errorf("empty window should yield zero stats, got %+v", s)
	}
}

func TestCompute_SingleSample(t *testing.T) {
	s := Compute([]collectors.Sample{
		{CPUPercent: 5.29, MemoryBytes: 42070000},
	})

	if s.AverageCPU != 5.29 {
		t.Errorf("AverageCPU = %v, want 5.29", s.AverageCPU)
	}
	if s.PeakCPU != 5.29 {
		t.Errorf("PeakCPU = %v, want 5.29", s.PeakCPU)
	}
	if s.AverageMemory != 42070000 {
		t.Errorf("AverageMemory = %v, want 42070000", s.AverageMemory)
	}
	if s.PeakMemory != 42070000 {
		t.Errorf("PeakMemory = %v, want 42070000", s.PeakMemory)
	}
}

func TestCompute_AverageAndPeak(t *testing.T) {
	samples := []collectors.Sample{
		{CPUPercent: 10, MemoryBytes: 1000},
		{CPUPercent: 20, MemoryBytes: 3000},
		{CPUPercent: 60, MemoryBytes: 2000},
	}

	s := Compute(samples)

	if s.AverageCPU != 30 {
		t.Errorf("AverageCPU = %v, want 30", s.AverageCPU)
	}
	if s.PeakCPU != 60 {
		t.Errorf("PeakCPU = %v, want 60", s.PeakCPU)
	}
	if s.AverageMemory != 2000 {
		t.Errorf("AverageMemory = %v, want 2000", s.AverageMemory)
	}
	if s.PeakMemory != 3000 {
		t.Errorf("PeakMemory = %v, want 3000", s.PeakMemory)
	}
}

func TestCompute_PeakCoversEveryValue(t *testing.T) {
	samples := []collectors.Sample{
		{CPUPercent: 3.2, MemoryBytes: 500},
		{CPUPercent: 91.5, MemoryBytes: 800},
		{CPUPercent: 44.4, MemoryBytes: 12000},
		{CPUPercent: 0, MemoryBytes: 100},
	}

	s := Compute(samples)

	for i, smp := range samples {
		if smp.CPUPercent > s.PeakCPU {
			t.Errorf("sample %d CPU %v exceeds PeakCPU %v", i, smp.CPUPercent, s.PeakCPU)
		}
		if smp.MemoryBytes > s.PeakMemory {
			t.Errorf("sample %d memory %v exceeds PeakMemory %v", i, smp.MemoryBytes, s.PeakMemory)
		}
	}
}

func TestCompute_ScalesStayIndependent(t *testing.T) {
	// Large memory values must not bleed into CPU statistics.
	s := Compute([]collectors.Sample{
		{CPUPercent: 1, MemoryBytes: 8_000_000_000},
		{CPUPercent: 2, MemoryBytes: 9_000_000_000},
	})

	if s.PeakCPU != 2 {
		t.Errorf("PeakCPU = %v, want 2", s.PeakCPU)
	}
	if s.AverageCPU != 1.5 {
		t.Errorf("AverageCPU = %v, want 1.5", s.AverageCPU)
	}
}
