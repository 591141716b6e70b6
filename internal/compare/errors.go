package compare

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when the sink reports cancellation mid-sweep.
	// The pass stops within one row of the request and no report is produced.
	ErrCancelled = errors.New("operation cancelled")

	// ErrNoValidCells is returned when every cell pair has the no-data
	// sentinel in at least one grid, leaving nothing to average.
	ErrNoValidCells = errors.New("no valid cells: every cell is no-data in at least one input")

	// ErrInvalidArgumentCount is returned by entry points invoked with the
	// wrong number of positional arguments.
	ErrInvalidArgumentCount = errors.New("incorrect number of arguments given to tool")
)

// DimensionMismatchError reports input grids whose shapes differ. It is
// returned before any cell is read.
type DimensionMismatchError struct {
	BaseRows, BaseCols int
	CompRows, CompCols int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: base is %dx%d, comparison is %dx%d",
		e.BaseRows, e.BaseCols, e.CompRows, e.CompCols)
}

// ReadError wraps a cell-read failure from one of the input grids.
// Reads are not retried; the first failure aborts the pass.
type ReadError struct {
	File string
	Row  int
	Col  int
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s cell (%d,%d): %v", e.File, e.Row, e.Col, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
