package status

import (
	"sync"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	b := m.Get("x")
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	if _, ok := m.Lookup("y"); ok {
		t.Error("Lookup created a metric")
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}

func TestRegistryConcurrentIncrement(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := r.Ints.Get(CastStarted)
			for j := 0; j < 1000; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Int(CastStarted); got != 8000 {
		t.Errorf("counter = %d, want 8000", got)
	}
}

func TestRegistryLines(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(CastStarted).Store(3)
	r.Strings.Get(CastState).Store("CastingRay")
	r.Floats.Get(ReleaseSpeed).Set(4.5)

	got := r.Lines()
	want := []string{"cast.state=CastingRay", "cast.started=3", "levitate.release_speed=4.50"}
	if len(got) != len(want) {
		t.Fatalf("Lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	s.Store("a label far longer than the hud column")
	if len(s.Load()) != MaxStringLen {
		t.Errorf("len = %d, want %d", len(s.Load()), MaxStringLen)
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	f.Add(1.5)
	if got := f.Add(2); got != 3.5 {
		t.Errorf("Add = %v, want 3.5", got)
	}
}

func TestAtomicFloatStoreMax(t *testing.T) {
	var f AtomicFloat
	for _, v := range []float64{3, 7.5, 2, 7} {
		f.StoreMax(v)
	}
	if got := f.Get(); got != 7.5 {
		t.Errorf("peak = %v, want 7.5", got)
	}
}

func TestRegistryMissingKeys(t *testing.T) {
	r := NewRegistry()
	if r.Int("nope") != 0 || r.Float("nope") != 0 || r.String("nope") != "" {
		t.Error("absent metrics must read as zero")
	}
	if r.TotalCount() != 0 {
		t.Error("reads created metrics")
	}
}
