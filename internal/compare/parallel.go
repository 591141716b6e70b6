package compare

import "sync"

// rowRange is a half-open [lo, hi) span of grid rows owned by one worker.
type rowRange struct {
	lo, hi int
}

// partitionRows splits rows into n contiguous, near-equal ranges. The
// partition depends only on rows and n, which keeps the merge order, and
// therefore the floating-point result, stable across runs.
func partitionRows(rows, n int) []rowRange {
	if n > rows {
		n = rows
	}
	parts := make([]rowRange, 0, n)
	chunk := rows / n
	extra := rows % n
	lo := 0
	for i := 0; i < n; i++ {
		hi := lo + chunk
		if i < extra {
			hi++
		}
		parts = append(parts, rowRange{lo: lo, hi: hi})
		lo = hi
	}
	return parts
}

// sweepParallel runs the cell sweep across Workers goroutines, each owning a
// disjoint row range with its own accumulator. Partials are merged in
// partition order once all workers finish. Progress and cancellation go
// through a single mutex so the sink sees serialized, strictly increasing
// percentages.
func (c Comparator) sweepParallel(base, comp Input, rows, cols int, sink Sink) (accumulator, error) {
	parts := partitionRows(rows, c.Workers)
	nodata1 := base.Grid.NoData()
	nodata2 := comp.Grid.NoData()

	partials := make([]accumulator, len(parts))
	errs := make([]error, len(parts))

	var (
		mu        sync.Mutex
		done      int
		last      = -1
		cancelled bool
		failed    bool
	)
	// rowDone records one completed row and reports whether the sweep should
	// stop. Progress granularity here is completed rows out of total, which
	// keeps the same strictly-increasing emission contract as the serial path.
	rowDone := func() (stop bool) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if p := 100 * done / rows; p > last {
			last = p
			sink.ReportProgress(p)
		}
		if !cancelled && sink.Cancelled() {
			cancelled = true
		}
		return cancelled || failed
	}

	var wg sync.WaitGroup
	for i, part := range parts {
		wg.Add(1)
		go func(i int, part rowRange) {
			defer wg.Done()
			var acc accumulator
			for row := part.lo; row < part.hi; row++ {
				if err := accumulateRow(base, comp, row, cols, nodata1, nodata2, &acc); err != nil {
					errs[i] = err
					mu.Lock()
					failed = true
					mu.Unlock()
					return
				}
				if rowDone() {
					return
				}
			}
			partials[i] = acc
		}(i, part)
	}
	wg.Wait()

	// Cancellation wins over read errors: the user asked to stop and no
	// report or diagnostic is owed.
	if cancelled {
		return accumulator{}, ErrCancelled
	}
	for i := range parts {
		if errs[i] != nil {
			return accumulator{}, errs[i]
		}
	}

	var total accumulator
	for i := range parts {
		total.merge(partials[i])
	}
	return total, nil
}
