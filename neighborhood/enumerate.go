// SPDX-License-Identifier: MIT

package neighborhood

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker oversubscribes receiver chunks so uneven densities still
// spread across workers.
const chunksPerWorker = 4

// receiverScan appends every edge received by atom i to out.
type receiverScan func(i int, out []Edge) []Edge

// pairKernel is the single place where a candidate (receiver, sender, image)
// triple becomes an edge. Both strategies share it, so they make identical
// floating-point decisions.
type pairKernel struct {
	positions []Vec3
	cell      Cell
	image     []Shift
	cutoff2   float64
	trueSelf  bool
}

// try considers sender j seen from receiver i through the bucket wrap w.
// The shift undoes the per-atom folding: S = w − image[j] + image[i].
// The displacement is (pos[j] − pos[i]) + S·cell, evaluated in that order so
// the reverse candidate yields exactly −d and pair symmetry holds bit-for-bit.
func (k *pairKernel) try(i, j int, w Shift, out []Edge) []Edge {
	mi, mj := k.image[i], k.image[j]
	s := Shift{w[0] - mj[0] + mi[0], w[1] - mj[1] + mi[1], w[2] - mj[2] + mi[2]}
	if i == j && s.IsZero() && !k.trueSelf {
		return out
	}
	d := k.positions[j].Sub(k.positions[i]).Add(k.cell.Translate(s))
	if d.Dot(d) <= k.cutoff2 {
		out = append(out, Edge{Sender: j, Receiver: i, Shift: s})
	}

	return out
}

// cellListScan is the Pair Enumerator over a binIndex: for receiver i it
// visits the (2·reach+1)³ bucket neighborhood, wrapping periodic axes and
// skipping out-of-range buckets on open ones.
func cellListScan(idx *binIndex, k *pairKernel) receiverScan {
	return func(i int, out []Edge) []Edge {
		home := idx.coord[i]
		var c [3]int
		var w Shift
		var ok bool
		for ox := -idx.reach[0]; ox <= idx.reach[0]; ox++ {
			if c[0], w[0], ok = idx.axisStep(0, home[0]+ox); !ok {
				continue
			}
			for oy := -idx.reach[1]; oy <= idx.reach[1]; oy++ {
				if c[1], w[1], ok = idx.axisStep(1, home[1]+oy); !ok {
					continue
				}
				for oz := -idx.reach[2]; oz <= idx.reach[2]; oz++ {
					if c[2], w[2], ok = idx.axisStep(2, home[2]+oz); !ok {
						continue
					}
					for _, j := range idx.bucket(c) {
						out = k.try(i, j, w, out)
					}
				}
			}
		}

		return out
	}
}

// bruteForceScan compares receiver i against every atom and every periodic
// image within range. On wrapped coordinates a pair within cutoff needs at
// most ceil(cutoff/h)+1 whole cells along a periodic axis.
func bruteForceScan(lat *lattice, cutoff float64, k *pairKernel) receiverScan {
	var r [3]int
	for a := 0; a < 3; a++ {
		if lat.pbc[a] {
			r[a] = int(math.Ceil(cutoff*(1+binSlack)/lat.height[a])) + 1
		}
	}
	n := len(k.positions)

	return func(i int, out []Edge) []Edge {
		for j := 0; j < n; j++ {
			for wx := -r[0]; wx <= r[0]; wx++ {
				for wy := -r[1]; wy <= r[1]; wy++ {
					for wz := -r[2]; wz <= r[2]; wz++ {
						out = k.try(i, j, Shift{wx, wy, wz}, out)
					}
				}
			}
		}

		return out
	}
}

// enumerate runs scan for every receiver 0..n-1. Receivers are split into
// contiguous chunks processed by at most workers goroutines; each chunk owns
// its buffer and buffers are concatenated in chunk order, so the result does
// not depend on the worker count or scheduling.
func enumerate(n, workers int, scan receiverScan) []Edge {
	if n == 0 {
		return []Edge{}
	}
	workers = max(1, workers)
	chunks := min(n, workers*chunksPerWorker)
	size := (n + chunks - 1) / chunks
	chunks = (n + size - 1) / size

	parts := make([][]Edge, chunks)
	var g errgroup.Group
	g.SetLimit(workers)
	for c := 0; c < chunks; c++ {
		lo, hi := c*size, min((c+1)*size, n)
		g.Go(func() error {
			var buf []Edge
			for i := lo; i < hi; i++ {
				buf = scan(i, buf)
			}
			parts[c] = buf
			return nil
		})
	}
	_ = g.Wait() // scans never fail

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	edges := make([]Edge, 0, total)
	for _, p := range parts {
		edges = append(edges, p...)
	}

	return edges
}
