// Package raster provides read-only grid views over single-band raster
// surfaces and a codec for the ESRI ASCII grid format.
package raster

import "fmt"

// Grid is a read-only view of a single-band raster surface.
type Grid interface {
	Rows() int
	Cols() int

	// NoData returns the sentinel value meaning "no measurement at this cell".
	NoData() float64

	// Value returns the cell value at (row, col). Implementations backed by
	// external storage may fail mid-read.
	Value(row, col int) (float64, error)
}

// MemGrid is a dense in-memory Grid stored in row-major order.
type MemGrid struct {
	rows   int
	cols   int
	nodata float64
	data   []float64
}

// NewMemGrid creates a rows x cols grid with every cell set to the no-data
// sentinel.
func NewMemGrid(rows, cols int, nodata float64) *MemGrid {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = nodata
	}
	return &MemGrid{
		rows:   rows,
		cols:   cols,
		nodata: nodata,
		data:   data,
	}
}

// FromRows builds a MemGrid from a rectangular slice of rows.
// All rows must have the same length.
func FromRows(rows [][]float64, nodata float64) *MemGrid {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	g := NewMemGrid(len(rows), cols, nodata)
	for r, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("raster: ragged row %d: %d values, want %d", r, len(row), cols))
		}
		copy(g.data[r*cols:(r+1)*cols], row)
	}
	return g
}

func (g *MemGrid) Rows() int       { return g.rows }
func (g *MemGrid) Cols() int       { return g.cols }
func (g *MemGrid) NoData() float64 { return g.nodata }

// Value returns the cell value at (row, col).
func (g *MemGrid) Value(row, col int) (float64, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, fmt.Errorf("cell (%d,%d) out of bounds for %dx%d grid", row, col, g.rows, g.cols)
	}
	return g.data[row*g.cols+col], nil
}

// Set writes a cell value. Out-of-bounds writes panic; MemGrid is a
// construction-time container, not an external resource.
func (g *MemGrid) Set(row, col int, v float64) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("raster: cell (%d,%d) out of bounds for %dx%d grid", row, col, g.rows, g.cols))
	}
	g.data[row*g.cols+col] = v
}
