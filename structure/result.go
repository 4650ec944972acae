// SPDX-License-Identifier: MIT

package structure

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nbrlist/neighborhood"
)

// Format names an encoding for structure files and results.
type Format string

const (
	// FormatYAML is the default encoding.
	FormatYAML Format = "yaml"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatMsgpack is MessagePack keyed by the JSON field names; compact
	// output for large graphs.
	FormatMsgpack Format = "msgpack"
)

// ParseFormat maps "yaml", "yml", "json" or "msgpack" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Result is the serializable form of a neighbor graph.
type Result struct {
	NumAtoms   int                 `yaml:"num_atoms" json:"num_atoms"`
	Cutoff     float64             `yaml:"cutoff" json:"cutoff"`
	PBC        neighborhood.PBC    `yaml:"pbc" json:"pbc"`
	Cell       neighborhood.Cell   `yaml:"cell" json:"cell"`
	NumEdges   int                 `yaml:"num_edges" json:"num_edges"`
	Edges      []neighborhood.Edge `yaml:"edges" json:"edges"`
	Vectors    []neighborhood.Vec3 `yaml:"vectors,omitempty" json:"vectors,omitempty"`
	Distances  []float64           `yaml:"distances,omitempty" json:"distances,omitempty"`
	Components [][]int             `yaml:"components,omitempty" json:"components,omitempty"`
}

// ResultOption adds optional sections to a Result.
type ResultOption func(*resultConfig)

type resultConfig struct {
	vectors    bool
	components bool
}

// WithVectors includes per-edge displacement vectors and distances.
func WithVectors() ResultOption {
	return func(c *resultConfig) { c.vectors = true }
}

// WithComponents includes connected components.
func WithComponents() ResultOption {
	return func(c *resultConfig) { c.components = true }
}

// NewResult converts g into a Result. positions are needed only with
// WithVectors and must be the ones g was built from.
func NewResult(positions []neighborhood.Vec3, g *neighborhood.Graph, opts ...ResultOption) (*Result, error) {
	var cfg resultConfig
	for _, fn := range opts {
		fn(&cfg)
	}

	r := &Result{
		NumAtoms: g.NumAtoms,
		Cutoff:   g.Cutoff,
		PBC:      g.PBC,
		Cell:     g.Cell,
		NumEdges: g.Len(),
		Edges:    g.Edges,
	}
	if cfg.vectors {
		vecs, dists, err := neighborhood.EdgeVectors(positions, g)
		if err != nil {
			return nil, err
		}
		r.Vectors, r.Distances = vecs, dists
	}
	if cfg.components {
		r.Components = neighborhood.ConnectedComponents(g)
	}

	return r, nil
}

// Write encodes v to w in the given format.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
