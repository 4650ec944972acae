// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nbrlist/neighborhood"
	"github.com/katalvlaran/nbrlist/structure"
)

// Version is stamped at link time: -ldflags "-X .../commands.Version=v1.2.3".
var Version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
	output    string
	format    string
	json      bool
}

// NewRootCmd assembles the command tree. Each call returns an independent
// tree, so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "nbrlist",
		Short: "Periodic neighbor lists for atomic structures",
		Long: `nbrlist - neighbor lists under periodic boundary conditions.

Reads a structure file (YAML or JSON) with positions, an optional cell and
per-axis periodic flags, and emits every (sender, receiver, shift) triple
within the cutoff.

Examples:
  # Neighbor list as YAML on stdout
  nbrlist build -f water.yaml

  # JSON with edge vectors, written to a file
  nbrlist build -f water.yaml --vectors --json -o edges.json

  # Compact MessagePack for large systems
  nbrlist build -f melt.yaml --format msgpack -o edges.mp

  # Clusters of atoms within 1.6 Å of each other
  nbrlist components -f water.yaml --cutoff 1.6`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&g.logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVarP(&g.output, "output", "o", "", "output file (default stdout)")
	pf.StringVar(&g.format, "format", "yaml", "output format (yaml, json, msgpack)")
	pf.BoolVar(&g.json, "json", false, "shorthand for --format json")

	root.AddCommand(newBuildCmd(g), newComponentsCmd(g), newVersionCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// buildFlags select the input file and override its build parameters.
type buildFlags struct {
	file     string
	cutoff   float64
	strategy string
	workers  int
}

func (b *buildFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&b.file, "file", "f", "", "structure file (YAML or JSON)")
	f.Float64Var(&b.cutoff, "cutoff", 0, "override the file's cutoff radius")
	f.StringVar(&b.strategy, "strategy", "", "override the search strategy (cell-list, brute-force)")
	f.IntVar(&b.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("file")
}

// load reads the structure file, applies flag overrides and builds the graph.
func (b *buildFlags) load(cmd *cobra.Command, logger *slog.Logger) (*structure.File, *neighborhood.Graph, error) {
	f, err := structure.Load(b.file)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("cutoff") {
		f.Cutoff = b.cutoff
	}
	if cmd.Flags().Changed("strategy") {
		f.Strategy = b.strategy
	}
	if b.workers < 0 {
		return nil, nil, fmt.Errorf("--workers must be ≥ 0, got %d", b.workers)
	}

	logger.Info("building neighbor list",
		"file", b.file,
		"atoms", len(f.Positions),
		"cutoff", f.Cutoff,
		"pbc", f.PBC,
	)
	g, err := f.Build(neighborhood.WithWorkers(b.workers), neighborhood.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", b.file, err)
	}
	logger.Info("neighbor list ready", "edges", g.Len())

	return f, g, nil
}

// emit writes v to the configured destination.
func (g *globalFlags) emit(cmd *cobra.Command, v any) error {
	format, err := structure.ParseFormat(g.format)
	if err != nil {
		return err
	}
	if g.json {
		format = structure.FormatJSON
	}

	if g.output == "" {
		return structure.Write(cmd.OutOrStdout(), v, format)
	}
	f, err := os.Create(g.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	return writeAndClose(f, v, format)
}

// writeAndClose writes v to wc and closes it. A write error wins over the
// close error; a close error alone still fails the command.
func writeAndClose(wc io.WriteCloser, v any, format structure.Format) error {
	err := structure.Write(wc, v, format)
	if cerr := wc.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}

	return err
}

// logger builds the command logger on the command's error stream.
func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	return newLogger(g.logLevel, g.logFormat, cmd.ErrOrStderr())
}
