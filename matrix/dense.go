// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewIdentity returns I_n (n×n identity).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}

// NewFromRows builds a Dense from a rectangular slice of rows, copying the
// values so later mutation of rows does not leak into the matrix.
// Stage 1 (Validate): at least one non-empty row, all rows equal length.
// Stage 2 (Execute): copy row by row into the flat slice.
// Errors: ErrInvalidDimensions (empty input), ErrDimensionMismatch (ragged).
// Complexity: O(r*c).
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	for i := range rows {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("NewFromRows: row %d: %w", i, ErrDimensionMismatch)
		}
	}
	d := &Dense{r: r, c: c, data: make([]float64, r*c)}
	for i := range rows {
		copy(d.data[i*c:(i+1)*c], rows[i])
	}

	return d, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}
