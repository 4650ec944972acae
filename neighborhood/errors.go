// SPDX-License-Identifier: MIT

package neighborhood

import (
	"errors"
	"fmt"
)

// Sentinel errors for neighbor-graph construction. Callers match them with
// errors.Is; the returned error names the argument that failed validation.
var (
	// ErrInvalidInputShape indicates a malformed argument: pbc not length 3,
	// cell not 3×3, a position that is not a 3-D point, or a cell that cannot
	// describe the requested periodicity.
	ErrInvalidInputShape = errors.New("neighborhood: invalid input shape")

	// ErrInvalidCutoff indicates cutoff ≤ 0 or a non-finite cutoff.
	ErrInvalidCutoff = errors.New("neighborhood: cutoff must be finite and > 0")

	// ErrNonFinite indicates a NaN or ±Inf coordinate in positions or cell,
	// or a position too far out along a periodic axis to count its image.
	ErrNonFinite = errors.New("neighborhood: NaN or Inf coordinate")

	// ErrSingularCell indicates lattice vectors that span less than 3-D while
	// at least one axis is periodic. It matches ErrInvalidInputShape as well.
	ErrSingularCell = fmt.Errorf("%w: singular cell", ErrInvalidInputShape)

	// ErrUnknownStrategy indicates a Strategy value outside CellList/BruteForce.
	ErrUnknownStrategy = errors.New("neighborhood: unknown strategy")
)

// argErrorf tags err with the argument it concerns, e.g. "positions[3]: ...".
func argErrorf(arg string, err error) error {
	return fmt.Errorf("%s: %w", arg, err)
}
