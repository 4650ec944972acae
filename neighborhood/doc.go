// SPDX-License-Identifier: MIT

// Package neighborhood builds the neighbor graph of a set of atoms under
// mixed periodic boundary conditions.
//
// What:
//
//   - Build / BuildFromSlices: every directed (sender, receiver, shift)
//     triple whose separation, over all periodic images, is ≤ cutoff.
//   - Cell Binner: a cutoff-sized bucket grid over fractional coordinates,
//     stored CSR-style and shared read-only by workers.
//   - Pair Enumerator: per-receiver scan of the neighboring buckets (or of
//     all atoms and images for BruteForce), parallel over receiver chunks.
//   - EdgeVectors: displacement vectors and lengths for a built graph.
//   - ConnectedComponents: atoms grouped by reachability along edges.
//
// Conventions:
//
//   - Cell rows are lattice vectors; fractional s = r·cell⁻¹.
//   - The receiver sits in the central image; the sender is at
//     positions[Sender] + Shift·Cell.
//   - Edges come in mirrored pairs: (s, r, S) and (r, s, −S), with exactly
//     opposite displacement vectors.
//   - Output order is deterministic: receivers ascending, independent of the
//     worker count.
//   - Cells thinner than the cutoff are fine: several images of the same
//     atom are emitted as distinct edges.
//
// Options:
//
//   - WithPBC, WithCell: periodicity and lattice vectors (default open, no cell).
//   - WithTrueSelfInteraction: keep the (i, i, 0) edge.
//   - WithWorkers: goroutine bound (default GOMAXPROCS).
//   - WithStrategy: CellList (default) or BruteForce.
//   - WithLogger: slog destination for debug diagnostics.
//
// Errors:
//
//   - ErrInvalidCutoff: cutoff ≤ 0, NaN or ±Inf.
//   - ErrInvalidInputShape: malformed positions, pbc or cell; zero cell with
//     periodic axes.
//   - ErrSingularCell: lattice vectors do not span 3-D on a periodic system.
//   - ErrNonFinite: NaN or ±Inf coordinate.
//   - ErrUnknownStrategy: strategy outside CellList/BruteForce.
//
// Complexity:
//
//   - CellList: O(N + buckets) to bin, O(N·k) to enumerate for k atoms per
//     bucket neighborhood.
//   - BruteForce: O(N²·images).
package neighborhood
