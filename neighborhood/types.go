// SPDX-License-Identifier: MIT

package neighborhood

import "math"

// Vec3 is a point or displacement in 3-D Cartesian space.
type Vec3 [3]float64

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]} }

// Sub returns v − u.
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]} }

// Scale returns a·v.
func (v Vec3) Scale(a float64) Vec3 { return Vec3{a * v[0], a * v[1], a * v[2]} }

// Dot returns v·u.
func (v Vec3) Dot(u Vec3) float64 { return v[0]*u[0] + v[1]*u[1] + v[2]*u[2] }

// Cross returns v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool { return v[0] == 0 && v[1] == 0 && v[2] == 0 }

// Cell holds the three lattice vectors of the simulation box as rows:
// Cell[k] is the k-th lattice vector.
type Cell [3]Vec3

// IdentityCell is the unit cube; an all-zero cell is normalized to it.
var IdentityCell = Cell{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// IsZero reports whether every entry of the cell is zero.
func (c Cell) IsZero() bool { return c[0].IsZero() && c[1].IsZero() && c[2].IsZero() }

// Translate returns s·Cell = s0·a0 + s1·a1 + s2·a2, the Cartesian offset of
// a periodic image. The sum is evaluated in fixed order so that
// Translate(−s) == −Translate(s) exactly.
func (c Cell) Translate(s Shift) Vec3 {
	var out Vec3
	for k := 0; k < 3; k++ {
		if s[k] == 0 {
			continue
		}
		f := float64(s[k])
		out[0] += f * c[k][0]
		out[1] += f * c[k][1]
		out[2] += f * c[k][2]
	}

	return out
}

// PBC holds one periodic flag per lattice axis.
type PBC [3]bool

// Any reports whether at least one axis is periodic.
func (p PBC) Any() bool { return p[0] || p[1] || p[2] }

// Shift counts the lattice translations separating a periodic image from
// its canonical position.
type Shift [3]int

// IsZero reports whether s is the null translation.
func (s Shift) IsZero() bool { return s[0] == 0 && s[1] == 0 && s[2] == 0 }

// Neg returns −s.
func (s Shift) Neg() Shift { return Shift{-s[0], -s[1], -s[2]} }

// Edge is a directed neighbor record. Receiver is anchored in the central
// image; the sender's true position is positions[Sender] + Shift·Cell.
type Edge struct {
	Sender   int   `json:"sender" yaml:"sender"`
	Receiver int   `json:"receiver" yaml:"receiver"`
	Shift    Shift `json:"shift" yaml:"shift"`
}

// Reverse returns the mirrored record (Receiver, Sender, −Shift).
func (e Edge) Reverse() Edge {
	return Edge{Sender: e.Receiver, Receiver: e.Sender, Shift: e.Shift.Neg()}
}

// Graph is the neighbor graph of one snapshot. It is immutable once returned
// by Build.
//
// Cell is the cell the edges refer to: the caller's cell, or IdentityCell
// when no cell (or an all-zero cell) was supplied. Periodicity is carried by
// PBC, never by the magnitude of Cell.
type Graph struct {
	Edges    []Edge
	Cell     Cell
	PBC      PBC
	Cutoff   float64
	NumAtoms int
}

// Len returns the number of directed edges.
func (g *Graph) Len() int { return len(g.Edges) }

// EdgeIndex returns the edge list as two parallel rows: senders and receivers.
func (g *Graph) EdgeIndex() [2][]int {
	senders := make([]int, len(g.Edges))
	receivers := make([]int, len(g.Edges))
	for k, e := range g.Edges {
		senders[k] = e.Sender
		receivers[k] = e.Receiver
	}

	return [2][]int{senders, receivers}
}

// Shifts returns the shift list, parallel to EdgeIndex.
func (g *Graph) Shifts() []Shift {
	out := make([]Shift, len(g.Edges))
	for k, e := range g.Edges {
		out[k] = e.Shift
	}

	return out
}

// Degree returns, per atom, the number of edges it receives.
func (g *Graph) Degree() []int {
	deg := make([]int, g.NumAtoms)
	for _, e := range g.Edges {
		deg[e.Receiver]++
	}

	return deg
}
