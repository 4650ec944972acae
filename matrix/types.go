// SPDX-License-Identifier: MIT

package matrix

// Matrix is a read-only view of a two-dimensional array of float64 values.
// Kernels never mutate their operands and return fresh *Dense results.
//
// Complexity notes: all methods are expected O(1).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrIndexOutOfBounds if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)
}
