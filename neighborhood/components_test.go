package neighborhood_test

import (
	"testing"

	"github.com/katalvlaran/nbrlist/neighborhood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectedComponents_Chain: two clusters along x plus one isolated atom.
//
//	0 ─ 1 ─ 2       3 ─ 4       5
func TestConnectedComponents_Chain(t *testing.T) {
	pos := []neighborhood.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {5, 0, 0}, {6, 0, 0}, {9, 0, 0}}
	g, err := neighborhood.Build(pos, 1.0)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4}, {5}}, neighborhood.ConnectedComponents(g))
}

// TestConnectedComponents_Periodic: the same atoms joined across the
// boundary once x is periodic.
func TestConnectedComponents_Periodic(t *testing.T) {
	pos := []neighborhood.Vec3{{0.2, 0, 0}, {4.3, 0, 0}, {2.2, 0, 0}}
	cell := neighborhood.Cell{{4.6, 0, 0}, {0, 10, 0}, {0, 0, 10}}

	open, err := neighborhood.Build(pos, 1.0, neighborhood.WithCell(cell))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {1}, {2}}, neighborhood.ConnectedComponents(open))

	periodic, err := neighborhood.Build(pos, 1.0,
		neighborhood.WithCell(cell), neighborhood.WithPBC(neighborhood.PBC{true, false, false}))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2}}, neighborhood.ConnectedComponents(periodic))
}

func TestConnectedComponents_Empty(t *testing.T) {
	g, err := neighborhood.Build(nil, 1.0)
	require.NoError(t, err)
	assert.Empty(t, neighborhood.ConnectedComponents(g))
}
