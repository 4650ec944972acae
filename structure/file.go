// SPDX-License-Identifier: MIT

package structure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nbrlist/neighborhood"
)

// File is the on-disk description of one snapshot.
//
// Example (YAML):
//
//	cutoff: 3.2
//	pbc: [true, true, false]
//	cell:
//	  - [4.0, 0.0, 0.0]
//	  - [0.0, 4.0, 0.0]
//	  - [0.0, 0.0, 0.0]
//	positions:
//	  - [0.0, 0.0, 0.0]
//	  - [2.0, 2.0, 1.1]
type File struct {
	Symbols         []string    `yaml:"symbols,omitempty" json:"symbols,omitempty" validate:"omitempty,matchlen=Positions"`
	Positions       [][]float64 `yaml:"positions" json:"positions" validate:"dive,len=3"`
	Cell            [][]float64 `yaml:"cell,omitempty" json:"cell,omitempty" validate:"omitempty,len=3,dive,len=3"`
	PBC             []bool      `yaml:"pbc,omitempty" json:"pbc,omitempty" validate:"omitempty,len=3"`
	Cutoff          float64     `yaml:"cutoff" json:"cutoff" validate:"gt=0"`
	SelfInteraction bool        `yaml:"self_interaction,omitempty" json:"self_interaction,omitempty"`
	Strategy        string      `yaml:"strategy,omitempty" json:"strategy,omitempty" validate:"omitempty,oneof=cell-list brute-force"`
}

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report YAML keys instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// symbols, when present, label every position
	_ = v.RegisterValidation("matchlen", func(fl validator.FieldLevel) bool {
		other := reflect.Indirect(fl.Parent()).FieldByName(fl.Param())
		return other.IsValid() && fl.Field().Len() == other.Len()
	})

	return v
}

// Validate checks f against its schema. Semantic problems the schema cannot
// express (singular cell, NaN coordinates) are left to File.Build.
func (f *File) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil file", ErrInvalidFile)
	}
	if err := validate.Struct(f); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// formatValidationError turns the first validator failure into a short
// "field: reason" message wrapped in ErrInvalidFile.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "File.")
	switch e.Tag() {
	case "len":
		return fmt.Errorf("%w: %s: must have exactly %s entries", ErrInvalidFile, field, e.Param())
	case "gt":
		return fmt.Errorf("%w: %s: must be greater than %s", ErrInvalidFile, field, e.Param())
	case "oneof":
		return fmt.Errorf("%w: %s: must be one of [%s]", ErrInvalidFile, field, e.Param())
	case "matchlen":
		return fmt.Errorf("%w: %s: must have one entry per %s", ErrInvalidFile, field, strings.ToLower(e.Param()))
	default:
		return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalidFile, field, e.Tag())
	}
}

// Load reads path, decodes it by extension (.json, .yaml/.yml, .msgpack/.mp;
// anything else tries YAML then JSON) and validates the result.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	case ".msgpack", ".mp":
		format = FormatMsgpack
	}

	return Decode(data, format)
}

// Decode parses data in the given format and validates it. An empty format
// tries YAML first, then JSON.
func Decode(data []byte, format Format) (*File, error) {
	f := new(File)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("failed to parse MessagePack: %w", err)
		}
	case "":
		if err := yaml.Unmarshal(data, f); err != nil {
			*f = File{}
			if err := json.Unmarshal(data, f); err != nil {
				return nil, fmt.Errorf("failed to parse file (tried YAML and JSON): %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Build runs the neighbor search described by f. opts are applied first, so
// the file's own settings win over them.
func (f *File) Build(opts ...neighborhood.Option) (*neighborhood.Graph, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	strategy, err := neighborhood.ParseStrategy(f.Strategy)
	if err != nil {
		return nil, err
	}
	opts = append(opts, neighborhood.WithStrategy(strategy))
	if f.SelfInteraction {
		opts = append(opts, neighborhood.WithTrueSelfInteraction())
	}

	return neighborhood.BuildFromSlices(f.Positions, f.Cutoff, f.PBC, f.Cell, opts...)
}

// Vectors returns the positions of f as neighborhood vectors.
func (f *File) Vectors() ([]neighborhood.Vec3, error) {
	return neighborhood.PositionsFromSlices(f.Positions)
}
