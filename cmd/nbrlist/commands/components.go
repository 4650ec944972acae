// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/nbrlist/neighborhood"
)

// componentsReport is the output of the components command.
type componentsReport struct {
	NumAtoms      int     `yaml:"num_atoms" json:"num_atoms"`
	NumComponents int     `yaml:"num_components" json:"num_components"`
	Components    [][]int `yaml:"components" json:"components"`
}

func newComponentsCmd(g *globalFlags) *cobra.Command {
	var b buildFlags

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List clusters of atoms connected within the cutoff",
		Long: `List clusters of atoms connected within the cutoff.

Two atoms share a component when a chain of edges, across any periodic
image, links them. Isolated atoms form their own component.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, graph, err := b.load(cmd, g.logger(cmd))
			if err != nil {
				return err
			}
			comps := neighborhood.ConnectedComponents(graph)

			return g.emit(cmd, componentsReport{
				NumAtoms:      graph.NumAtoms,
				NumComponents: len(comps),
				Components:    comps,
			})
		},
	}
	b.register(cmd)

	return cmd
}
