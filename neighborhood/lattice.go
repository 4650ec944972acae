// SPDX-License-Identifier: MIT

package neighborhood

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/nbrlist/matrix"
)

// lattice is the internal frame a build works in. cell is the completed,
// invertible cell; it differs from the caller's cell only on open axes
// (zero rows replaced) or when nothing is periodic (identity frame).
type lattice struct {
	cell   Cell
	inv    matrix.Matrix // cell⁻¹, so s = r·inv
	height Vec3          // distance between opposite faces along each axis
	pbc    PBC
}

// roundTripTol bounds |cell·inv − I| entrywise. Cells whose computed inverse
// misses it are too ill-conditioned for fractional coordinates to be trusted.
const roundTripTol = 1e-9

// maxImageCount bounds the whole cells a coordinate may be folded across.
// Beyond 2^53 a float64 no longer resolves the fractional part at all.
const maxImageCount = 1 << 53

// newLattice completes cell for the given periodicity and precomputes its
// inverse and face heights.
//
// When no axis is periodic the cell is geometrically irrelevant, so the
// identity frame is used and any caller cell (even a singular one) gives the
// same result.
//
// Errors:
//   - ErrInvalidInputShape: zero lattice vector on a periodic axis.
//   - ErrSingularCell: lattice vectors do not span 3-D, or cell·cell⁻¹
//     misses the identity by more than roundTripTol.
func newLattice(cell Cell, pbc PBC) (*lattice, error) {
	if !pbc.Any() {
		cell = IdentityCell
	}
	completed, err := completeCell(cell, pbc)
	if err != nil {
		return nil, argErrorf("cell", err)
	}

	rows := make([][]float64, 3)
	for k := range completed {
		rows[k] = completed[k][:]
	}
	dense, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, argErrorf("cell", fmt.Errorf("%w: %v", ErrInvalidInputShape, err))
	}
	invM, err := matrix.Inverse(dense)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, argErrorf("cell", ErrSingularCell)
		}
		return nil, argErrorf("cell", fmt.Errorf("%w: %v", ErrInvalidInputShape, err))
	}
	if err = checkRoundTrip(dense, invM); err != nil {
		return nil, argErrorf("cell", err)
	}
	det, err := matrix.Det(dense)
	if err != nil {
		return nil, argErrorf("cell", fmt.Errorf("%w: %v", ErrInvalidInputShape, err))
	}

	l := &lattice{cell: completed, inv: invM, pbc: pbc}
	vol := math.Abs(det)
	for k := 0; k < 3; k++ {
		area := completed[(k+1)%3].Cross(completed[(k+2)%3]).Norm()
		l.height[k] = vol / area
	}

	return l, nil
}

// checkRoundTrip multiplies cell by its inverse and compares against I.
func checkRoundTrip(cell, inv matrix.Matrix) error {
	prod, err := matrix.Mul(cell, inv)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInputShape, err)
	}
	id, err := matrix.NewIdentity(prod.Rows())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInputShape, err)
	}
	for i := 0; i < prod.Rows(); i++ {
		for j := 0; j < prod.Cols(); j++ {
			got, err := prod.At(i, j)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInputShape, err)
			}
			want, err := id.At(i, j)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInputShape, err)
			}
			if math.Abs(got-want) > roundTripTol {
				return fmt.Errorf("%w: cell·cell⁻¹[%d][%d] = %g", ErrSingularCell, i, j, got)
			}
		}
	}

	return nil
}

// completeCell replaces zero lattice vectors on open axes by unit vectors
// orthogonal to the remaining ones. A zero vector on a periodic axis cannot
// be completed.
func completeCell(cell Cell, pbc PBC) (Cell, error) {
	var zero, keep []int
	for k := 0; k < 3; k++ {
		if !cell[k].IsZero() {
			keep = append(keep, k)
			continue
		}
		if pbc[k] {
			return cell, fmt.Errorf("%w: lattice vector %d is zero on a periodic axis", ErrInvalidInputShape, k)
		}
		zero = append(zero, k)
	}

	switch len(zero) {
	case 0:
		return cell, nil
	case 1:
		n := cell[keep[0]].Cross(cell[keep[1]])
		if n.IsZero() {
			return cell, ErrSingularCell
		}
		cell[zero[0]] = n.Scale(1 / n.Norm())
	case 2:
		a := cell[keep[0]]
		u := a.Cross(leastAlignedAxis(a))
		u = u.Scale(1 / u.Norm())
		v := a.Cross(u)
		v = v.Scale(1 / v.Norm())
		cell[zero[0]], cell[zero[1]] = u, v
	default:
		return IdentityCell, nil
	}

	return cell, nil
}

// leastAlignedAxis returns the Cartesian unit vector with the smallest
// |a·e|, ties resolved to the lowest axis.
func leastAlignedAxis(a Vec3) Vec3 {
	best := 0
	for k := 1; k < 3; k++ {
		if math.Abs(a[k]) < math.Abs(a[best]) {
			best = k
		}
	}
	var e Vec3
	e[best] = 1

	return e
}

// fractional returns s = r·cell⁻¹.
func (l *lattice) fractional(r Vec3) (Vec3, error) {
	row, err := matrix.VecMat(r[:], l.inv)
	if err != nil {
		return Vec3{}, err
	}

	return Vec3{row[0], row[1], row[2]}, nil
}

// wrap maps every position to fractional coordinates, folding periodic axes
// into [0,1). image[i] records the whole cells removed, so that
// positions[i] = (frac[i] + image[i])·cell.
//
// Errors: ErrNonFinite when a periodic coordinate lies more than
// maxImageCount cells from the origin.
func (l *lattice) wrap(positions []Vec3) ([]Vec3, []Shift, error) {
	frac := make([]Vec3, len(positions))
	image := make([]Shift, len(positions))
	for i, p := range positions {
		s, err := l.fractional(p)
		if err != nil {
			return nil, nil, argErrorf(fmt.Sprintf("positions[%d]", i), err)
		}
		for k := 0; k < 3; k++ {
			if !l.pbc[k] {
				continue
			}
			m := math.Floor(s[k])
			if math.Abs(m) > maxImageCount {
				return nil, nil, argErrorf(fmt.Sprintf("positions[%d]", i),
					fmt.Errorf("%w: %g cells from the origin on axis %d", ErrNonFinite, m, k))
			}
			image[i][k] = int(m)
			s[k] -= m
		}
		frac[i] = s
	}

	return frac, image, nil
}
