// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra kernel used for
// lattice bookkeeping in nbrlist.
//
// What:
//
//   - Dense: row-major float64 matrix behind the Matrix interface.
//   - Constructors: NewDense, NewIdentity, NewFromRows.
//   - Kernels: Mul, VecMat, Det, Inverse.
//   - Validators: ValidateNotNil, ValidateSquare, ValidateVecLen, ValidateFinite.
//
// Why:
//
//   - A simulation cell is a 3×3 matrix of lattice vectors. Fractional
//     coordinates are r·cell⁻¹ (VecMat), face heights need the determinant,
//     and cell·cell⁻¹ (Mul) is checked against the identity.
//   - Keeping the kernels behind a Matrix interface lets tests feed wrapped
//     (non-*Dense) values and check that the generic path agrees with the
//     flat fast-path.
//
// Errors:
//
//   - ErrInvalidDimensions: non-positive shape on construction.
//   - ErrIndexOutOfBounds: At outside the matrix.
//   - ErrDimensionMismatch: incompatible operand shapes.
//   - ErrNilMatrix: nil receiver or argument.
//   - ErrNaNInf: non-finite entry where finite values are required.
//   - ErrSingular: Inverse on a matrix whose pivot vanishes.
//
// Complexity:
//
//   - At/Rows/Cols: O(1).
//   - Mul: O(r·k·c). Inverse, Det: O(n³).
package matrix
