// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for shape/nil/finite checks used by the kernels.
//  - Return sentinels tagged with the validator name so call sites can wrap
//    uniformly and callers can still match with errors.Is.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector is non-nil and has exactly n entries.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite scans every entry and rejects NaN or ±Inf.
// Errors: ErrNilMatrix, ErrNaNInf (tagged with the offending position).
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateFinite", err)
	}
	rows, cols := m.Rows(), m.Cols()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}
