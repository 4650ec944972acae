// SPDX-License-Identifier: MIT

package neighborhood

import (
	"fmt"
	"math"
	"time"
)

// Build enumerates every (sender, receiver, shift) triple whose separation,
// over all periodic images, is at most cutoff.
//
// Stage 1 (Validate): cutoff, finite positions and cell, strategy; an
// all-zero cell becomes IdentityCell and is rejected if any axis is periodic.
// Stage 2 (Prepare): lattice frame; for CellList also the bucket index.
// Stage 3 (Execute): per-receiver scan across workers, concatenated in
// receiver order.
//
// Guarantees:
//   - ‖pos[s] + S·cell − pos[r]‖ ≤ cutoff for every edge (boundary inclusive).
//   - (r, s, −S) is present for every (s, r, S).
//   - (i, i, 0) appears only with WithTrueSelfInteraction, then once per atom.
//   - No qualifying pairs ⇒ a valid Graph with zero edges, not an error.
//
// Errors: ErrInvalidCutoff, ErrInvalidInputShape (incl. ErrSingularCell),
// ErrNonFinite (also for a coordinate more than 2^53 cells out on a periodic
// axis), ErrUnknownStrategy; each is tagged with the failing argument.
//
// Complexity: CellList O(N·k) for k atoms per neighborhood; BruteForce
// O(N²·images).
func Build(positions []Vec3, cutoff float64, opts ...Option) (*Graph, error) {
	o := gatherOptions(opts...)

	if math.IsNaN(cutoff) || math.IsInf(cutoff, 0) || cutoff <= 0 {
		return nil, argErrorf("cutoff", fmt.Errorf("%w: got %v", ErrInvalidCutoff, cutoff))
	}
	for i, p := range positions {
		if !finite3(p) {
			return nil, argErrorf(fmt.Sprintf("positions[%d]", i), ErrNonFinite)
		}
	}
	for k := range o.cell {
		if !finite3(o.cell[k]) {
			return nil, argErrorf(fmt.Sprintf("cell[%d]", k), ErrNonFinite)
		}
	}
	if o.strategy != CellList && o.strategy != BruteForce {
		return nil, argErrorf("strategy", fmt.Errorf("%w: %v", ErrUnknownStrategy, o.strategy))
	}

	cell := o.cell
	if cell.IsZero() {
		if o.pbc.Any() {
			return nil, argErrorf("cell", fmt.Errorf("%w: all-zero cell with periodic axes %v", ErrInvalidInputShape, o.pbc))
		}
		cell = IdentityCell
	}
	g := &Graph{Cell: cell, PBC: o.pbc, Cutoff: cutoff, NumAtoms: len(positions)}
	if len(positions) == 0 {
		g.Edges = []Edge{}
		return g, nil
	}

	lat, err := newLattice(cell, o.pbc)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	kernel := &pairKernel{
		positions: positions,
		cell:      lat.cell,
		cutoff2:   cutoff * cutoff,
		trueSelf:  o.trueSelf,
	}
	var scan receiverScan
	switch o.strategy {
	case CellList:
		idx, err := newBinIndex(positions, lat, cutoff)
		if err != nil {
			return nil, err
		}
		kernel.image = idx.image
		scan = cellListScan(idx, kernel)
		o.logger.Debug("neighborhood: binned atoms",
			"atoms", len(positions),
			"buckets", idx.dims,
			"reach", idx.reach,
		)
	case BruteForce:
		if _, kernel.image, err = lat.wrap(positions); err != nil {
			return nil, err
		}
		scan = bruteForceScan(lat, cutoff, kernel)
	}

	g.Edges = enumerate(len(positions), o.workers, scan)
	o.logger.Debug("neighborhood: built graph",
		"strategy", o.strategy.String(),
		"atoms", len(positions),
		"edges", len(g.Edges),
		"cutoff", cutoff,
		"pbc", o.pbc,
		"workers", o.workers,
		"elapsed", time.Since(started),
	)

	return g, nil
}

// BuildFromSlices is the shape-checking boundary for untyped input (decoded
// files, foreign arrays). positions must be N×3, pbc nil or length 3, cell
// nil, empty or 3×3. Explicit pbc/cell arguments override the same options
// in opts.
//
// Errors: ErrInvalidInputShape naming the argument, plus everything Build returns.
func BuildFromSlices(positions [][]float64, cutoff float64, pbc []bool, cell [][]float64, opts ...Option) (*Graph, error) {
	pos, err := PositionsFromSlices(positions)
	if err != nil {
		return nil, err
	}
	if pbc != nil {
		p, err := PBCFromSlice(pbc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithPBC(p))
	}
	if len(cell) > 0 {
		c, err := CellFromSlices(cell)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCell(c))
	}

	return Build(pos, cutoff, opts...)
}

// PositionsFromSlices converts N×3 rows into positions.
func PositionsFromSlices(rows [][]float64) ([]Vec3, error) {
	out := make([]Vec3, len(rows))
	for i, r := range rows {
		if len(r) != 3 {
			return nil, argErrorf(fmt.Sprintf("positions[%d]", i),
				fmt.Errorf("%w: want 3 coordinates, got %d", ErrInvalidInputShape, len(r)))
		}
		out[i] = Vec3{r[0], r[1], r[2]}
	}

	return out, nil
}

// PBCFromSlice converts exactly three flags into a PBC.
func PBCFromSlice(flags []bool) (PBC, error) {
	if len(flags) != 3 {
		return PBC{}, argErrorf("pbc", fmt.Errorf("%w: want 3 flags, got %d", ErrInvalidInputShape, len(flags)))
	}

	return PBC{flags[0], flags[1], flags[2]}, nil
}

// CellFromSlices converts a 3×3 row matrix into a Cell.
func CellFromSlices(rows [][]float64) (Cell, error) {
	if len(rows) != 3 {
		return Cell{}, argErrorf("cell", fmt.Errorf("%w: want 3 rows, got %d", ErrInvalidInputShape, len(rows)))
	}
	var c Cell
	for k, r := range rows {
		if len(r) != 3 {
			return Cell{}, argErrorf(fmt.Sprintf("cell[%d]", k),
				fmt.Errorf("%w: want 3 columns, got %d", ErrInvalidInputShape, len(r)))
		}
		c[k] = Vec3{r[0], r[1], r[2]}
	}

	return c, nil
}

// finite3 reports whether all components of v are finite.
func finite3(v Vec3) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}
