package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForCoversRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSpan = 1 // force splitting even for a small range

	n := 1000
	seen := make([]int32, n)
	For(n, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForSerial(t *testing.T) {
	var calls int64
	For(100, Serial(), func(lo, hi int) {
		atomic.AddInt64(&calls, 1)
		if lo != 0 || hi != 100 {
			t.Errorf("serial chunk = [%d, %d), want [0, 100)", lo, hi)
		}
	})
	if calls != 1 {
		t.Errorf("serial run made %d calls, want 1", calls)
	}
}

func TestForBelowMinSpanRunsInline(t *testing.T) {
	cfg := DefaultConfig()

	var calls int64
	For(cfg.MinSpan-1, cfg, func(lo, hi int) {
		atomic.AddInt64(&calls, 1)
	})
	if calls != 1 {
		t.Errorf("small range made %d calls, want 1 inline call", calls)
	}
}

func TestForEmpty(t *testing.T) {
	For(0, DefaultConfig(), func(lo, hi int) {
		t.Error("empty range must not invoke the body")
	})
	For(-3, DefaultConfig(), func(lo, hi int) {
		t.Error("negative range must not invoke the body")
	})
}

func TestForChunksDisjoint(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 7, MinSpan: 1}

	n := 103 // does not divide evenly
	var total int64
	For(n, cfg, func(lo, hi int) {
		if lo < 0 || hi > n || lo >= hi {
			t.Errorf("bad chunk [%d, %d)", lo, hi)
		}
		atomic.AddInt64(&total, int64(hi-lo))
	})
	if total != int64(n) {
		t.Errorf("chunks cover %d elements, want %d", total, n)
	}
}

func BenchmarkFor(b *testing.B) {
	n := 100000
	body := func(lo, hi int) {
		s := 0
		for i := lo; i < hi; i++ {
			s += i
		}
		_ = s
	}

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		cfg.MinSpan = 1
		for i := 0; i < b.N; i++ {
			For(n, cfg, body)
		}
	})

	b.Run("serial", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			For(n, Serial(), body)
		}
	})
}
