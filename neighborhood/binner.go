// SPDX-License-Identifier: MIT

package neighborhood

import "math"

// binSlack inflates the cutoff used to size buckets so that rounding in
// fractional coordinates never puts a pair within cutoff outside the
// searched bucket range.
const binSlack = 1e-9

// Bucket grid budget: at most max(minBinBudget, binsPerAtom·N) buckets, so a
// tiny cutoff in a large cell cannot explode memory.
const (
	minBinBudget = 27
	binsPerAtom  = 4
	maxAxisBins  = 1 << 20
)

// binIndex is the Cell Binner's spatial index: every atom is assigned to one
// bucket of a dims[0]×dims[1]×dims[2] grid laid over fractional coordinates.
// Buckets are stored CSR-style: atoms[start[b]:start[b+1]] lists bucket b in
// ascending atom order. The index is immutable once built and is shared
// read-only by all enumerator workers.
type binIndex struct {
	dims  [3]int
	reach [3]int // bucket offsets to scan per axis; 1 ⇒ the 3×3×3 stencil
	pbc   PBC

	image []Shift  // whole cells folded away per atom (periodic axes only)
	coord [][3]int // bucket coordinates per atom
	start []int
	atoms []int
}

// newBinIndex bins positions for a search radius of cutoff.
//
// Algorithm:
//  1. Fractional coordinates; periodic axes wrapped into [0,1).
//  2. Per axis, bucket count = floor(extent/cutoff) (≥1), where extent is the
//     face height h for periodic axes and span·h over the atoms for open ones.
//  3. Shrink the largest axis until the grid fits the bucket budget.
//  4. reach = ceil(cutoff·dims/extent): 1 whenever a bucket is at least one
//     cutoff wide, larger for cells thinner than the cutoff.
//  5. Count-then-scatter insertion, no locks.
//
// Errors: whatever lattice.wrap reports for out-of-range positions.
//
// Complexity: O(N + buckets) time and memory.
func newBinIndex(positions []Vec3, lat *lattice, cutoff float64) (*binIndex, error) {
	n := len(positions)
	frac, image, err := lat.wrap(positions)
	if err != nil {
		return nil, err
	}
	bc := cutoff * (1 + binSlack)

	b := &binIndex{pbc: lat.pbc, image: image, coord: make([][3]int, n)}

	var lo, span, extent [3]float64
	for k := 0; k < 3; k++ {
		if lat.pbc[k] {
			lo[k], span[k], extent[k] = 0, 1, lat.height[k]
		} else {
			mn, mx := math.Inf(1), math.Inf(-1)
			for i := range frac {
				mn = math.Min(mn, frac[i][k])
				mx = math.Max(mx, frac[i][k])
			}
			lo[k], span[k] = mn, mx-mn
			extent[k] = span[k] * lat.height[k]
		}
		b.dims[k] = axisBins(extent[k], bc)
	}
	b.fitBudget(max(minBinBudget, binsPerAtom*n))

	for k := 0; k < 3; k++ {
		switch {
		case lat.pbc[k]:
			b.reach[k] = int(math.Ceil(bc * float64(b.dims[k]) / extent[k]))
		case b.dims[k] == 1:
			b.reach[k] = 0
		default:
			r := int(math.Ceil(bc * float64(b.dims[k]) / extent[k]))
			b.reach[k] = min(r, b.dims[k]-1)
		}
	}

	for i := range frac {
		for k := 0; k < 3; k++ {
			if span[k] == 0 {
				continue
			}
			c := int(math.Floor((frac[i][k] - lo[k]) / span[k] * float64(b.dims[k])))
			b.coord[i][k] = min(max(c, 0), b.dims[k]-1)
		}
	}

	// Count, prefix-sum, scatter.
	total := b.dims[0] * b.dims[1] * b.dims[2]
	b.start = make([]int, total+1)
	for i := range b.coord {
		b.start[b.flat(b.coord[i])+1]++
	}
	for f := 0; f < total; f++ {
		b.start[f+1] += b.start[f]
	}
	b.atoms = make([]int, n)
	next := make([]int, total)
	copy(next, b.start[:total])
	for i := range b.coord {
		f := b.flat(b.coord[i])
		b.atoms[next[f]] = i
		next[f]++
	}

	return b, nil
}

// axisBins returns how many buckets of width ≥ bc fit in extent (≥1).
func axisBins(extent, bc float64) int {
	if !(extent > bc) {
		return 1
	}

	return int(math.Min(math.Floor(extent/bc), maxAxisBins))
}

// fitBudget halves the largest axis (lowest index on ties) until the grid
// holds at most budget buckets. Fewer, wider buckets keep the search exact.
func (b *binIndex) fitBudget(budget int) {
	for b.dims[0]*b.dims[1]*b.dims[2] > budget {
		k := 0
		for a := 1; a < 3; a++ {
			if b.dims[a] > b.dims[k] {
				k = a
			}
		}
		b.dims[k] = max(1, b.dims[k]/2)
	}
}

// flat maps bucket coordinates to the row-major bucket id.
func (b *binIndex) flat(c [3]int) int {
	return (c[0]*b.dims[1]+c[1])*b.dims[2] + c[2]
}

// bucket returns the atoms in the bucket with coordinates c.
func (b *binIndex) bucket(c [3]int) []int {
	f := b.flat(c)

	return b.atoms[b.start[f]:b.start[f+1]]
}

// axisStep resolves bucket coordinate c on axis k. Periodic axes wrap and
// report how many whole cells were crossed; open axes reject out-of-range
// coordinates.
func (b *binIndex) axisStep(k, c int) (idx, wrap int, ok bool) {
	d := b.dims[k]
	if !b.pbc[k] {
		if c < 0 || c >= d {
			return 0, 0, false
		}
		return c, 0, true
	}
	wrap = floorDiv(c, d)

	return c - wrap*d, wrap, true
}

// floorDiv is integer division rounding toward −∞.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
