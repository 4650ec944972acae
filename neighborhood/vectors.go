// SPDX-License-Identifier: MIT

package neighborhood

import "fmt"

// EdgeVectors returns, per edge, the displacement from receiver to sender
// image, (pos[s] − pos[r]) + S·Cell, and its length. positions must be the
// slice the graph was built from.
//
// Errors: ErrInvalidInputShape if len(positions) differs from g.NumAtoms.
func EdgeVectors(positions []Vec3, g *Graph) ([]Vec3, []float64, error) {
	if len(positions) != g.NumAtoms {
		return nil, nil, argErrorf("positions",
			fmt.Errorf("%w: graph has %d atoms, got %d positions", ErrInvalidInputShape, g.NumAtoms, len(positions)))
	}
	vecs := make([]Vec3, len(g.Edges))
	dists := make([]float64, len(g.Edges))
	for k, e := range g.Edges {
		d := positions[e.Sender].Sub(positions[e.Receiver]).Add(g.Cell.Translate(e.Shift))
		vecs[k] = d
		dists[k] = d.Norm()
	}

	return vecs, dists, nil
}
