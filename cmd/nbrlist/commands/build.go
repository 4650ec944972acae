// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/nbrlist/structure"
)

func newBuildCmd(g *globalFlags) *cobra.Command {
	var (
		b          buildFlags
		vectors    bool
		components bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the neighbor list of a structure file",
		Long: `Build the neighbor list of a structure file.

Every edge is (sender, receiver, shift): the sender's image at
positions[sender] + shift·cell lies within the cutoff of the receiver.

Example:
  nbrlist build -f slab.yaml --cutoff 3.2 --vectors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd)
			f, graph, err := b.load(cmd, logger)
			if err != nil {
				return err
			}

			var opts []structure.ResultOption
			if vectors {
				opts = append(opts, structure.WithVectors())
			}
			if components {
				opts = append(opts, structure.WithComponents())
			}
			pos, err := f.Vectors()
			if err != nil {
				return err
			}
			res, err := structure.NewResult(pos, graph, opts...)
			if err != nil {
				return err
			}

			return g.emit(cmd, res)
		},
	}
	b.register(cmd)
	cmd.Flags().BoolVar(&vectors, "vectors", false, "include edge vectors and distances")
	cmd.Flags().BoolVar(&components, "components", false, "include connected components")

	return cmd
}
