package history

import (
	"testing"
	"time"

	"gitlab.com/tinyland/lab/port-pulse/collectors"
)

func sampleAt(i int) collectors.Sample {
	return collectors.Sample{
		Timestamp:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Second),
		CPUPercent:  float64(i),
		MemoryBytes: uint64(i) * 1000,
	}
}

func TestWindow_CapacityNeverExceeded(t *testing.T) {
	w := NewWindow(DefaultCapacity)

	for i := 0; i < 200; i++ {
		w.Push(sampleAt(i))
		if w.Len() > DefaultCapacity {
			t.Fatalf("after %d pushes Len() = %d, exceeds capacity %d", i+1, w.Len(), DefaultCapacity)
		}
	}
	if w.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", w.Len(), DefaultCapacity)
	}
}

func TestWindow_EvictsOldest(t *testing.T) {
	w := NewWindow(60)

	// 61 pushes: sample 0 must be gone, samples 1..60 present in order.
	for i := 0; i <= 60; i++ {
		w.Push(sampleAt(i))
	}

	values := w.Values()
	if len(values) != 60 {
		t.Fatalf("len(Values()) = %d, want 60", len(values))
	}
	if values[0].CPUPercent != 1 {
		t.Errorf("oldest sample CPU = %v, want 1 (sample 0 evicted)", values[0].CPUPercent)
	}
	if values[59].CPUPercent != 60 {
		t.Errorf("newest sample CPU = %v, want 60", values[59].CPUPercent)
	}
}

func TestWindow_ValuesChronological(t *testing.T) {
	tests := []struct {
		name   string
		pushes int
	}{
		{"empty", 0},
		{"partial fill", 7},
		{"exactly full", 60},
		{"wrapped twice", 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(60)
			for i := 0; i < tt.pushes; i++ {
				w.Push(sampleAt(i))
			}

			values := w.Values()
			for i := 1; i < len(values); i++ {
				if !values[i].Timestamp.After(values[i-1].Timestamp) {
					t.Fatalf("values out of order at index %d", i)
				}
			}

			want := tt.pushes
			if want > 60 {
				want = 60
			}
			if len(values) != want {
				t.Errorf("len(Values()) = %d, want %d", len(values), want)
			}
		})
	}
}

func TestWindow_ValuesIsACopy(t *testing.T) {
	w := NewWindow(4)
	w.Push(sampleAt(1))

	values := w.Values()
	values[0].CPUPercent = 999

	again := w.Values()
	if again[0].CPUPercent == 999 {
		t.Error("mutating the returned slice leaked into the window")
	}
}

func TestWindow_Latest(t *testing.T) {
	w := NewWindow(3)

	if _, ok := w.Latest(); ok {
		t.Error("Latest() on empty window should report no sample")
	}

	for i := 0; i < 5; i++ {
		w.Push(sampleAt(i))
	}

	latest, ok := w.Latest()
	if !ok {
		t.Fatal("Latest() should report a sample after pushes")
	}
	if latest.CPUPercent != 4 {
		t.Errorf("Latest().CPUPercent = %v, want 4", latest.CPUPercent)
	}
}

func TestWindow_Series(t *testing.T) {
	w := NewWindow(60)
	for i := 0; i < 10; i++ {
		w.Push(sampleAt(i))
	}

	cpu := w.CPUSeries(5)
	if len(cpu) != 5 {
		t.Fatalf("len(CPUSeries(5)) = %d, want 5", len(cpu))
	}
	if cpu[0] != 5 || cpu[4] != 9 {
		t.Errorf("CPUSeries(5) = %v, want last five values 5..9", cpu)
	}

	mem := w.MemorySeries(0)
	if len(mem) != 10 {
		t.Fatalf("len(MemorySeries(0)) = %d, want all 10", len(mem))
	}
	if mem[9] != 9000 {
		t.Errorf("MemorySeries(0)[9] = %v, want 9000", mem[9])
	}
}

func TestNewWindow_DefaultCapacity(t *testing.T) {
	w := NewWindow(0)
	if w.Cap() != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", w.Cap(), DefaultCapacity)
	}
}
