// SPDX-License-Identifier: MIT

// Functional configuration for Build.
//
// Design goals:
//   - Deterministic behavior: no global state; worker count never changes output.
//   - Safe by construction: option constructors panic only on nonsensical
//     values (programmer error); data-dependent problems surface as errors
//     from Build.

package neighborhood

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Strategy selects the pair-search algorithm.
type Strategy int

const (
	// CellList bins atoms into cutoff-sized buckets and scans neighboring
	// buckets only. Default.
	CellList Strategy = iota

	// BruteForce compares every atom pair against every periodic image in
	// range. O(n²·images); kept as the reference implementation.
	BruteForce
)

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	switch s {
	case CellList:
		return "cell-list"
	case BruteForce:
		return "brute-force"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name back to its value.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "cell-list", "celllist", "":
		return CellList, nil
	case "brute-force", "bruteforce":
		return BruteForce, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
}

// Defaults.
const (
	// DefaultTrueSelfInteraction drops zero-shift self edges.
	DefaultTrueSelfInteraction = false

	// DefaultStrategy is the bucketed search.
	DefaultStrategy = CellList
)

const panicWorkersInvalid = "neighborhood: WithWorkers: n must be ≥ 0"

// Option mutates Options. Safe to apply repeatedly; the last setter wins.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	pbc      PBC
	cell     Cell
	trueSelf bool
	workers  int
	strategy Strategy
	logger   *slog.Logger
}

// DefaultOptions returns open boundaries, no cell, no trivial self edges,
// one worker per GOMAXPROCS and the CellList strategy.
func DefaultOptions() Options {
	return Options{
		trueSelf: DefaultTrueSelfInteraction,
		workers:  runtime.GOMAXPROCS(0),
		strategy: DefaultStrategy,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithPBC sets the per-axis periodic flags.
func WithPBC(p PBC) Option {
	return func(o *Options) { o.pbc = p }
}

// WithCell sets the lattice vectors (rows). An all-zero cell means "no cell"
// and is normalized to IdentityCell; it is rejected when any axis is periodic.
func WithCell(c Cell) Option {
	return func(o *Options) { o.cell = c }
}

// WithTrueSelfInteraction keeps the trivial (i, i, 0) edge of every atom.
func WithTrueSelfInteraction() Option {
	return func(o *Options) { o.trueSelf = true }
}

// WithWorkers bounds the number of goroutines scanning receivers.
// n == 0 restores the default (GOMAXPROCS). Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) {
		o.workers = n
		if n == 0 {
			o.workers = runtime.GOMAXPROCS(0)
		}
	}
}

// WithStrategy selects CellList or BruteForce. Unknown values are reported
// by Build as ErrUnknownStrategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.strategy = s }
}

// WithLogger routes debug diagnostics to l. A nil logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			o.logger = slog.New(slog.DiscardHandler)
			return
		}
		o.logger = l
	}
}

// gatherOptions applies setters over the defaults.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
