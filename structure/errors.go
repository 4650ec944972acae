// SPDX-License-Identifier: MIT

package structure

import "errors"

var (
	// ErrInvalidFile indicates a structure file that violates its schema.
	ErrInvalidFile = errors.New("structure: invalid file")

	// ErrUnsupportedFormat indicates an unknown encoding name.
	ErrUnsupportedFormat = errors.New("structure: unsupported format")
)
