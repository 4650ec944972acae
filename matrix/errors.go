// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation
// tag via matrixErrorf) and tests match them with errors.Is. No kernel panics
// on user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." so it stays greppable once
// wrapped by callers.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a ragged row in NewFromRows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when no usable pivot exists during inversion.
	ErrSingular = errors.New("matrix: singular matrix")
)
