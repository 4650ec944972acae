package neighborhood_test

import (
	"fmt"

	"github.com/katalvlaran/nbrlist/neighborhood"
)

// ExampleBuild lists the periodic images of a single atom in a simple cubic
// lattice: with cutoff equal to the lattice constant only the six face
// neighbors qualify.
func ExampleBuild() {
	g, err := neighborhood.Build(
		[]neighborhood.Vec3{{0, 0, 0}},
		1.0,
		neighborhood.WithPBC(neighborhood.PBC{true, true, true}),
		neighborhood.WithCell(neighborhood.Cell{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}),
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println("edges:", g.Len())
	for _, e := range g.Edges {
		fmt.Println(e.Sender, e.Receiver, e.Shift)
	}
	// Output:
	// edges: 6
	// 0 0 [-1 0 0]
	// 0 0 [0 -1 0]
	// 0 0 [0 0 -1]
	// 0 0 [0 0 1]
	// 0 0 [0 1 0]
	// 0 0 [1 0 0]
}

// ExampleBuildFromSlices works on plain slices, as decoded from a file.
func ExampleBuildFromSlices() {
	g, err := neighborhood.BuildFromSlices(
		[][]float64{{0, 0, 0}, {0.5, 0, 0}},
		1.0,
		[]bool{false, false, false},
		nil,
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(g.EdgeIndex())
	// Output:
	// [[1 0] [0 1]]
}

// ExampleConnectedComponents groups atoms into clusters.
func ExampleConnectedComponents() {
	g, _ := neighborhood.Build([]neighborhood.Vec3{{0, 0, 0}, {0.9, 0, 0}, {4, 0, 0}}, 1.0)
	fmt.Println(neighborhood.ConnectedComponents(g))
	// Output:
	// [[0 1] [2]]
}
