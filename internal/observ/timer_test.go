package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAddAccumulates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("tokens", time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 1 {
		t.Fatalf("expected one phase, got %d", len(r.Phases))
	}
	p := r.Phases[0]
	if p.Count != 10 || p.DurationMS != 10 {
		t.Fatalf("unexpected phase %+v", p)
	}
	if r.WallMS != 0 {
		t.Fatalf("Add phases must not count towards wall time, got %v", r.WallMS)
	}
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Note != "3 files" || r.Phases[0].Count != 0 {
		t.Fatalf("unexpected report %+v", r)
	}
	s := tm.Summary()
	if !strings.Contains(s, "discover") || !strings.Contains(s, "// 3 files") || !strings.Contains(s, "wall") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.WallMS != 0 {
		t.Fatalf("unexpected %+v", r)
	}
}
