// SPDX-License-Identifier: MIT
// Package matrix: linear-algebra kernels (Mul, VecMat, Det, Inverse). All kernels validate first, never mutate their inputs and
// return freshly allocated results.
//
// Notes:
//   - *Dense operands take a flat-slice fast path; any other Matrix is first
//     copied into a Dense through At, so both paths share one kernel body.

package matrix

import (
	"fmt"
	"math"
)

// SingularTol is the relative pivot threshold below which Inverse reports
// ErrSingular: |pivot| ≤ SingularTol·max|a_ij|.
const SingularTol = 1e-12

// Operation name constants for unified error wrapping.
const (
	opMul     = "Mul"
	opVecMat  = "VecMat"
	opDet     = "Det"
	opInverse = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it is a *Dense, otherwise a Dense copy read
// through At in fixed i→j order.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Mul computes the matrix product a·b.
// Implementation:
//   - Stage 1: ValidateNotNil(a,b); require a.Cols == b.Rows.
//   - Stage 2: i→k→j loop over flat storage (row-major friendly).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r·k·c), Space O(r·c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j int
	var aik float64
	for i = 0; i < da.r; i++ {
		for k = 0; k < da.c; k++ {
			aik = da.data[i*da.c+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < db.c; j++ {
				res.data[i*res.c+j] += aik * db.data[k*db.c+j]
			}
		}
	}

	return res, nil
}

// VecMat computes the row-vector product y = x·m.
// A position r (row vector) times a cell whose rows are lattice vectors is
// exactly this product, so it is the natural map between fractional and
// Cartesian coordinates.
// Contract: len(x) == m.Rows().
// Complexity: Time O(r·c), Space O(c).
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	y := make([]float64, d.c)
	for i := 0; i < d.r; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		base := i * d.c
		for j := 0; j < d.c; j++ {
			y[j] += xi * d.data[base+j]
		}
	}

	return y, nil
}

// Det returns the determinant of a square matrix via LU with partial pivoting.
// A matrix whose column is entirely zero yields 0 without error.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(n³), Space O(n²) for the working copy.
func Det(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	n := d.r
	a := make([]float64, len(d.data))
	copy(a, d.data)

	det := 1.0
	for col := 0; col < n; col++ {
		p := pivotRow(a, n, col)
		if a[p*n+col] == 0 {
			return 0, nil
		}
		if p != col {
			swapRows(a, n, p, col)
			det = -det
		}
		pv := a[col*n+col]
		det *= pv
		for i := col + 1; i < n; i++ {
			f := a[i*n+col] / pv
			if f == 0 {
				continue
			}
			for j := col; j < n; j++ {
				a[i*n+j] -= f * a[col*n+j]
			}
		}
	}

	return det, nil
}

// Inverse computes A⁻¹ by Gauss–Jordan elimination with partial pivoting.
// Implementation:
//   - Stage 1: ValidateSquare, ValidateFinite; build the augmented [A | I].
//   - Stage 2: for each column pick the largest |pivot| (ties → lowest row),
//     swap, normalize, eliminate the column from every other row.
//   - Stage 3: copy the right half out as the result.
//
// Behavior highlights:
//   - Cells with a zero leading entry, e.g. [[0,1,0],[1,0,0],[0,0,1]], invert fine.
//   - Deterministic: fixed scan order and tie-breaking.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf.
//   - ErrSingular when |pivot| ≤ SingularTol·max|a_ij|.
//
// Complexity: Time O(n³), Space O(n²).
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := d.r
	w := 2 * n

	// Augmented [A | I] in a flat n×2n slice.
	aug := make([]float64, n*w)
	scale := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := d.data[i*n+j]
			aug[i*w+j] = v
			if av := math.Abs(v); av > scale {
				scale = av
			}
		}
		aug[i*w+n+i] = 1.0
	}
	if scale == 0 {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}
	tol := SingularTol * scale

	for col := 0; col < n; col++ {
		p := pivotRow(aug, w, col)
		if math.Abs(aug[p*w+col]) <= tol {
			return nil, matrixErrorf(opInverse, ErrSingular)
		}
		if p != col {
			swapRows(aug, w, p, col)
		}
		pv := aug[col*w+col]
		for j := 0; j < w; j++ {
			aug[col*w+j] /= pv
		}
		for i := 0; i < n; i++ {
			if i == col {
				continue
			}
			f := aug[i*w+col]
			if f == 0 {
				continue
			}
			for j := 0; j < w; j++ {
				aug[i*w+j] -= f * aug[col*w+j]
			}
		}
	}

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i := 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug[i*w+n:(i+1)*w])
	}

	return inv, nil
}

// pivotRow returns the row index r ≥ col maximizing |a[r][col]| in a flat
// row-major slice with the given stride. Ties resolve to the lowest row.
func pivotRow(a []float64, stride, col int) int {
	rows := len(a) / stride
	best, bestAbs := col, math.Abs(a[col*stride+col])
	for r := col + 1; r < rows; r++ {
		if v := math.Abs(a[r*stride+col]); v > bestAbs {
			best, bestAbs = r, v
		}
	}

	return best
}

// swapRows exchanges rows i and j of a flat row-major slice.
func swapRows(a []float64, stride, i, j int) {
	ri := a[i*stride : (i+1)*stride]
	rj := a[j*stride : (j+1)*stride]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}
