// SPDX-License-Identifier: MIT

// Package structure reads atomic structure files and writes neighbor lists.
//
// What:
//
//   - File: one snapshot (positions, optional cell and pbc) plus build
//     parameters (cutoff, self-interaction, strategy).
//   - Load / Decode: YAML, JSON or MessagePack, chosen by extension, then
//     validated.
//   - File.Build: hands the snapshot to neighborhood.BuildFromSlices.
//   - Result / Write: the graph, optional edge vectors and components,
//     encoded as YAML, JSON or MessagePack.
//
// Errors:
//
//   - ErrInvalidFile: the file decoded but failed validation.
//   - ErrUnsupportedFormat: unknown output format.
//
// Neighborhood errors (ErrInvalidCutoff, ErrNonFinite, ...) pass through
// File.Build unchanged.
package structure
