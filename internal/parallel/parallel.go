// Package parallel spreads dense element loops across goroutines.
//
// Kernels hand it a half-open index range and a body that works on
// disjoint chunks; the package decides whether to split. Work stays on
// the calling goroutine when splitting is disabled, the range is small,
// or only one worker is configured, so callers observe strictly
// synchronous completion either way.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how For splits a range.
type Config struct {
	Enabled    bool // Whether goroutine splitting is enabled.
	NumWorkers int  // Number of concurrent chunks to aim for.
	MinSpan    int  // Smallest range worth splitting.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinSpan:    4096, // Below this the goroutine overhead dominates.
	}
}

// Serial returns a config that always runs inline on the caller.
func Serial() Config {
	return Config{Enabled: false, NumWorkers: 1, MinSpan: 1}
}

// For runs fn over [0, n) in contiguous chunks and returns once every
// chunk has finished. Falls back to a single inline call when splitting
// is disabled or n is below MinSpan. fn must be safe to run
// concurrently on disjoint ranges; chunks never overlap.
func For(n int, cfg Config, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := cfg.NumWorkers
	if !cfg.Enabled || workers <= 1 || n < cfg.MinSpan {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
