// SPDX-License-Identifier: MIT

package neighborhood

import "sort"

// ConnectedComponents groups atoms that are linked by at least one edge,
// ignoring direction and shift. Isolated atoms form singleton components.
// Each component is sorted ascending; components are ordered by their
// smallest atom.
//
// Time:   O(N + E).
// Memory: O(N + E) for the adjacency and visited flags.
func ConnectedComponents(g *Graph) [][]int {
	n := g.NumAtoms
	if n == 0 {
		return [][]int{}
	}

	// CSR adjacency, both directions.
	start := make([]int, n+1)
	for _, e := range g.Edges {
		start[e.Sender+1]++
		start[e.Receiver+1]++
	}
	for i := 0; i < n; i++ {
		start[i+1] += start[i]
	}
	adj := make([]int, start[n])
	next := make([]int, n)
	copy(next, start[:n])
	for _, e := range g.Edges {
		adj[next[e.Sender]] = e.Receiver
		next[e.Sender]++
		adj[next[e.Receiver]] = e.Sender
		next[e.Receiver]++
	}

	seen := make([]bool, n)
	var comps [][]int
	for i0 := 0; i0 < n; i0++ {
		if seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, v := range adj[start[u]:start[u+1]] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(queue)
		comps = append(comps, queue)
	}

	return comps
}
