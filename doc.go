// Package nbrlist builds neighbor lists of atomic structures under periodic
// boundary conditions.
//
// What is nbrlist?
//
//	A pure-Go library and CLI that turns positions, a simulation cell and
//	per-axis periodic flags into the directed edge list a message-passing
//	model consumes:
//		• neighborhood/ : cell binning, parallel pair enumeration, edge vectors,
//		  connected components
//		• matrix/       : the small dense linear algebra behind the lattice frame
//		• structure/    : YAML/JSON structure files and result encoding
//		• cmd/nbrlist/  : command-line front end
//
// Quick example:
//
//	g, err := neighborhood.Build(positions, 5.0,
//		neighborhood.WithPBC(neighborhood.PBC{true, true, true}),
//		neighborhood.WithCell(cell),
//	)
//
// Every edge (sender, receiver, shift) places the sender's image at
// positions[sender] + shift·cell within the cutoff of the receiver, and its
// mirror (receiver, sender, −shift) is always present.
//
//	go get github.com/katalvlaran/nbrlist
package nbrlist
