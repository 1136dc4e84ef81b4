// Package parallel provides chunked fan-out over index ranges.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the item count below which ParallelizeWithThreshold
// stays on the calling goroutine.
const DefaultThreshold = 1000

// Workers returns the number of goroutines Parallelize uses for items.
func Workers(items int) int {
	n := runtime.GOMAXPROCS(0)
	if n > items {
		n = items
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Parallelize splits [0, items) into contiguous chunks, one per worker, and
// calls fn(start, end) for each chunk concurrently. It returns once every
// chunk is done. Chunks never overlap, so fn may write to per-index slots of
// a shared slice without locking.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := Workers(items)
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) sequentially when items does not
// exceed threshold, and delegates to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
