package neighborhood_test

import (
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/nbrlist/neighborhood"
)

// sortedEdges returns a copy of edges ordered by (receiver, sender, shift).
func sortedEdges(edges []neighborhood.Edge) []neighborhood.Edge {
	out := append([]neighborhood.Edge(nil), edges...)
	sort.Slice(out, func(a, b int) bool {
		ea, eb := out[a], out[b]
		if ea.Receiver != eb.Receiver {
			return ea.Receiver < eb.Receiver
		}
		if ea.Sender != eb.Sender {
			return ea.Sender < eb.Sender
		}
		for k := 0; k < 3; k++ {
			if ea.Shift[k] != eb.Shift[k] {
				return ea.Shift[k] < eb.Shift[k]
			}
		}
		return false
	})

	return out
}

// referenceEdges enumerates shifts in a generous box around the origin on raw
// (unwrapped) positions. It shares no code with the library besides Vec3 and
// Cell arithmetic.
func referenceEdges(positions []neighborhood.Vec3, cell neighborhood.Cell, pbc neighborhood.PBC, cutoff float64, trueSelf bool) []neighborhood.Edge {
	var r [3]int
	if pbc.Any() {
		vol := math.Abs(cell[0].Dot(cell[1].Cross(cell[2])))
		// raw positions may sit several cells away from each other
		var lo, hi neighborhood.Vec3
		for k := 0; k < 3; k++ {
			lo[k], hi[k] = math.Inf(1), math.Inf(-1)
		}
		for _, p := range positions {
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], p[k])
				hi[k] = math.Max(hi[k], p[k])
			}
		}
		spread := hi.Sub(lo).Norm()
		for k := 0; k < 3; k++ {
			if !pbc[k] {
				continue
			}
			h := vol / cell[(k+1)%3].Cross(cell[(k+2)%3]).Norm()
			r[k] = int(math.Ceil((cutoff+spread)/h)) + 1
		}
	}

	var out []neighborhood.Edge
	c2 := cutoff * cutoff
	for i := range positions {
		for j := range positions {
			for x := -r[0]; x <= r[0]; x++ {
				for y := -r[1]; y <= r[1]; y++ {
					for z := -r[2]; z <= r[2]; z++ {
						s := neighborhood.Shift{x, y, z}
						if i == j && s.IsZero() && !trueSelf {
							continue
						}
						d := positions[j].Sub(positions[i]).Add(cell.Translate(s))
						if d.Dot(d) <= c2 {
							out = append(out, neighborhood.Edge{Sender: j, Receiver: i, Shift: s})
						}
					}
				}
			}
		}
	}

	return sortedEdges(out)
}

// system is one randomly generated snapshot.
type system struct {
	positions []neighborhood.Vec3
	cell      neighborhood.Cell
	pbc       neighborhood.PBC
	cutoff    float64
}

// randomSystem draws a triclinic cell with side lengths in [1,4), mild shear,
// mixed periodicity and up to maxAtoms atoms, some of them outside the
// central cell.
func randomSystem(seed int64, maxAtoms int) system {
	rng := rand.New(rand.NewSource(seed))
	var s system
	for k := 0; k < 3; k++ {
		s.cell[k][k] = 1 + 3*rng.Float64()
		for c := 0; c < 3; c++ {
			if c != k {
				s.cell[k][c] = 0.4 * (rng.Float64() - 0.5)
			}
		}
		s.pbc[k] = rng.Intn(3) > 0
	}
	s.cutoff = 0.3 + 2*rng.Float64()
	n := 1 + rng.Intn(maxAtoms)
	s.positions = make([]neighborhood.Vec3, n)
	for i := range s.positions {
		var p neighborhood.Vec3
		for k := 0; k < 3; k++ {
			f := 1.6*rng.Float64() - 0.3
			p = p.Add(s.cell[k].Scale(f))
		}
		s.positions[i] = p
	}

	return s
}

// options converts s into Build options.
func (s system) options(extra ...neighborhood.Option) []neighborhood.Option {
	return append([]neighborhood.Option{
		neighborhood.WithPBC(s.pbc),
		neighborhood.WithCell(s.cell),
	}, extra...)
}

// sortedFloats returns an ascending copy of xs.
func sortedFloats(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)

	return out
}
