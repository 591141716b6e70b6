package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ASCHeader carries the georeferencing fields of an ESRI ASCII grid.
// The cell values themselves live in the MemGrid.
type ASCHeader struct {
	XLLCorner float64
	YLLCorner float64
	CellSize  float64
}

// defaultNoData is used when an .asc file omits the optional
// nodata_value header line.
const defaultNoData = -9999.0

// ReadASC reads an ESRI ASCII grid file into memory.
func ReadASC(path string) (*MemGrid, ASCHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ASCHeader{}, fmt.Errorf("failed to open raster: %w", err)
	}
	defer f.Close()

	g, h, err := DecodeASC(f)
	if err != nil {
		return nil, ASCHeader{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, h, nil
}

// DecodeASC parses an ESRI ASCII grid from r: header key/value lines
// (ncols, nrows, xllcorner, yllcorner, cellsize, optional nodata_value)
// followed by nrows*ncols whitespace-separated values in row-major order.
func DecodeASC(r io.Reader) (*MemGrid, ASCHeader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}

	var (
		rows, cols int
		nodata     = defaultNoData
		header     ASCHeader
		haveRows   bool
		haveCols   bool
	)

	// Header keys arrive in any order; the value block starts at the first
	// token that is not a known key.
	var firstValue string
	for {
		tok, err := next()
		if err != nil {
			return nil, ASCHeader{}, fmt.Errorf("failed to read header: %w", err)
		}

		key := strings.ToLower(tok)
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value":
		default:
			firstValue = tok
		}
		if firstValue != "" {
			break
		}

		val, err := next()
		if err != nil {
			return nil, ASCHeader{}, fmt.Errorf("failed to read header value for %q: %w", key, err)
		}
		switch key {
		case "ncols":
			cols, err = strconv.Atoi(val)
			haveCols = true
		case "nrows":
			rows, err = strconv.Atoi(val)
			haveRows = true
		case "xllcorner":
			header.XLLCorner, err = strconv.ParseFloat(val, 64)
		case "yllcorner":
			header.YLLCorner, err = strconv.ParseFloat(val, 64)
		case "cellsize":
			header.CellSize, err = strconv.ParseFloat(val, 64)
		case "nodata_value":
			nodata, err = strconv.ParseFloat(val, 64)
		}
		if err != nil {
			return nil, ASCHeader{}, fmt.Errorf("invalid header value %q for %q: %w", val, key, err)
		}
	}

	if !haveRows || !haveCols {
		return nil, ASCHeader{}, fmt.Errorf("header is missing nrows/ncols")
	}
	if rows <= 0 || cols <= 0 {
		return nil, ASCHeader{}, fmt.Errorf("invalid grid shape %dx%d", rows, cols)
	}

	g := NewMemGrid(rows, cols, nodata)
	tok := firstValue
	for i := 0; i < rows*cols; i++ {
		if i > 0 {
			var err error
			tok, err = next()
			if err != nil {
				return nil, ASCHeader{}, fmt.Errorf("truncated value block: got %d of %d cells: %w", i, rows*cols, err)
			}
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, ASCHeader{}, fmt.Errorf("invalid cell value %q at index %d: %w", tok, i, err)
		}
		g.data[i] = v
	}

	// Anything left over means the header understated the grid shape.
	if sc.Scan() {
		return nil, ASCHeader{}, fmt.Errorf("unexpected trailing data %q after %d cells", sc.Text(), rows*cols)
	}
	if err := sc.Err(); err != nil {
		return nil, ASCHeader{}, fmt.Errorf("failed to read value block: %w", err)
	}

	return g, header, nil
}

// WriteASC writes g to path as an ESRI ASCII grid.
func WriteASC(path string, g Grid, h ASCHeader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create raster: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := EncodeASC(w, g, h); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// EncodeASC writes g to w in ESRI ASCII grid form, one grid row per line.
func EncodeASC(w io.Writer, g Grid, h ASCHeader) error {
	cellSize := h.CellSize
	if cellSize == 0 {
		cellSize = 1
	}
	_, err := fmt.Fprintf(w, "ncols %d\nnrows %d\nxllcorner %g\nyllcorner %g\ncellsize %g\nnodata_value %g\n",
		g.Cols(), g.Rows(), h.XLLCorner, h.YLLCorner, cellSize, g.NoData())
	if err != nil {
		return err
	}

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			v, err := g.Value(row, col)
			if err != nil {
				return err
			}
			sep := " "
			if col == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "%s%g", sep, v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
