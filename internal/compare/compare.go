// Package compare computes vertical-accuracy statistics (mean error, RMSE,
// 95%-confidence linear accuracy) between two co-registered raster grids.
package compare

import (
	"math"

	"github.com/rasterstat/rasterstat/internal/raster"
)

// confidenceFactor95 converts an RMSE into the linear accuracy figure at the
// 95% confidence level, per the usual geospatial reporting convention.
const confidenceFactor95 = 1.96

// Input pairs a grid with the identifier used in reports and errors.
type Input struct {
	Name string
	Grid raster.Grid
}

// Comparator runs the accuracy comparison. The zero value performs a
// single-threaded row-major sweep.
type Comparator struct {
	// Workers > 1 splits the sweep into contiguous row partitions processed
	// concurrently. Partials are merged in partition order, so results are
	// bit-identical across repeated runs with the same worker count.
	Workers int
}

// Compare streams matching cells of base and comp, skipping any cell that is
// no-data in either grid, and returns the accuracy report.
//
// Both grids must have identical dimensions; a mismatch returns
// *DimensionMismatchError without reading a single cell. Cancellation is
// polled on sink at least once per completed row; once observed, ErrCancelled
// is returned and the partial accumulation is discarded. Progress percentages
// are emitted only when they exceed the last emitted value, and a final
// ReportProgress(0) is issued on every exit path.
func (c Comparator) Compare(base, comp Input, sink Sink) (*Report, error) {
	if sink == nil {
		sink = NopSink{}
	}
	// Reset the progress channel no matter how the pass ends.
	defer sink.ReportProgress(0)

	rows, cols := base.Grid.Rows(), base.Grid.Cols()
	if rows != comp.Grid.Rows() || cols != comp.Grid.Cols() {
		return nil, &DimensionMismatchError{
			BaseRows: rows,
			BaseCols: cols,
			CompRows: comp.Grid.Rows(),
			CompCols: comp.Grid.Cols(),
		}
	}

	var (
		acc accumulator
		err error
	)
	if c.Workers > 1 && rows > 1 {
		acc, err = c.sweepParallel(base, comp, rows, cols, sink)
	} else {
		acc, err = sweepSerial(base, comp, rows, cols, sink)
	}
	if err != nil {
		return nil, err
	}
	if acc.n == 0 {
		return nil, ErrNoValidCells
	}

	rmse := math.Sqrt(acc.sumSq / acc.n)
	return &Report{
		BaseFile:       base.Name,
		ComparisonFile: comp.Name,
		MeanError:      acc.sumDiff / acc.n,
		RMSE:           rmse,
		Accuracy95:     rmse * confidenceFactor95,
	}, nil
}

// accumulator holds the running error sums for one partition of the sweep.
type accumulator struct {
	sumSq   float64
	sumDiff float64
	n       float64
}

func (a *accumulator) add(diff float64) {
	a.sumSq += diff * diff
	a.sumDiff += diff
	a.n++
}

func (a *accumulator) merge(b accumulator) {
	a.sumSq += b.sumSq
	a.sumDiff += b.sumDiff
	a.n += b.n
}

// accumulateRow folds one row of cell pairs into acc, skipping cells that are
// no-data in either grid.
func accumulateRow(base, comp Input, row, cols int, nodata1, nodata2 float64, acc *accumulator) error {
	for col := 0; col < cols; col++ {
		z1, err := base.Grid.Value(row, col)
		if err != nil {
			return &ReadError{File: base.Name, Row: row, Col: col, Err: err}
		}
		z2, err := comp.Grid.Value(row, col)
		if err != nil {
			return &ReadError{File: comp.Name, Row: row, Col: col, Err: err}
		}
		if z1 == nodata1 || z2 == nodata2 {
			continue
		}
		acc.add(z2 - z1)
	}
	return nil
}

func sweepSerial(base, comp Input, rows, cols int, sink Sink) (accumulator, error) {
	var acc accumulator
	nodata1 := base.Grid.NoData()
	nodata2 := comp.Grid.NoData()

	last := -1
	for row := 0; row < rows; row++ {
		if err := accumulateRow(base, comp, row, cols, nodata1, nodata2, &acc); err != nil {
			return accumulator{}, err
		}
		if p := rowPercent(row, rows); p > last {
			last = p
			sink.ReportProgress(p)
		}
		if sink.Cancelled() {
			return accumulator{}, ErrCancelled
		}
	}
	return acc, nil
}

// rowPercent reports sweep completion after finishing the 0-based row.
// A single-row grid jumps straight to 100 instead of dividing by zero.
func rowPercent(row, rows int) int {
	if rows == 1 {
		return 100
	}
	return 100 * row / (rows - 1)
}
