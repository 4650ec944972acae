// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/nbrlist/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type, forcing the generic path.
type hide struct{ matrix.Matrix }

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtOutOfBounds ensures At() returns ErrIndexOutOfBounds on invalid access.
func TestAtOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

// TestNewFromRows covers copying semantics and ragged input.
func TestNewFromRows(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	rows[0][0] = 99 // must not leak into m

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	v, err = m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewIdentity checks the diagonal and the zero off-diagonal.
func TestNewIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, err := id.At(i, j)
			require.NoError(t, err)
			if i == j {
				require.Equal(t, 1.0, v)
			} else {
				require.Zero(t, v)
			}
		}
	}

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
