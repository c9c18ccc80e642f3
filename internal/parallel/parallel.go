// SPDX-License-Identifier: MIT
/*
Package parallel provides an order-preserving parallel map over a fixed
number of independent tasks.

Results are never appended: each task receives its index and writes into a
region of a caller-owned, pre-sized buffer that no other task touches. The
output order is therefore the index order regardless of which worker
finishes first, and no synchronization is needed beyond waiting for the
group to drain.
*/
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Map calls fn(i) for every i in [0, n) using at most workers goroutines.
// workers <= 0 selects runtime.GOMAXPROCS(0). Map returns once every call
// has finished.
func Map(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait() // Tasks never fail.
}

// Chunks returns the number of size-length chunks needed to cover n items,
// counting a trailing partial chunk.
func Chunks(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
