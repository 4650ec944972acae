package structure_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nbrlist/neighborhood"
	"github.com/katalvlaran/nbrlist/structure"
)

const slabYAML = `
symbols: [Cu, Cu, O]
cutoff: 0.5
pbc: [true, true, false]
cell:
  - [2, 0, 0]
  - [0, 2, 0]
  - [0, 0, 0]
positions:
  - [0.1, 0.1, 0]
  - [1.9, 0.1, 0]
  - [0.1, 0.1, 1.5]
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_YAML(t *testing.T) {
	f, err := structure.Load(writeTemp(t, "slab.yaml", slabYAML))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, f.PBC)
	assert.Len(t, f.Positions, 3)
	assert.Equal(t, 0.5, f.Cutoff)

	g, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, []neighborhood.Edge{
		{Sender: 1, Receiver: 0, Shift: neighborhood.Shift{-1, 0, 0}},
		{Sender: 0, Receiver: 1, Shift: neighborhood.Shift{1, 0, 0}},
	}, g.Edges)
}

func TestLoad_JSONAndUnknownExtension(t *testing.T) {
	doc := `{"cutoff": 1.0, "positions": [[0,0,0],[0.5,0,0]]}`

	for _, name := range []string{"pair.json", "pair.txt"} {
		f, err := structure.Load(writeTemp(t, name, doc))
		require.NoError(t, err, name)
		g, err := f.Build()
		require.NoError(t, err, name)
		assert.Equal(t, 2, g.Len(), name)
		assert.Equal(t, neighborhood.PBC{}, g.PBC, name)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := structure.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]struct {
		doc   string
		field string
	}{
		"short position": {`{"cutoff": 1, "positions": [[0,0,0],[1,2]]}`, "positions[1]"},
		"short pbc":      {`{"cutoff": 1, "pbc": [true], "positions": [[0,0,0]]}`, "pbc"},
		"ragged cell":    {`{"cutoff": 1, "cell": [[1,0,0],[0,1],[0,0,1]], "positions": [[0,0,0]]}`, "cell[1]"},
		"missing cutoff": {`{"positions": [[0,0,0]]}`, "cutoff"},
		"bad strategy":   {`{"cutoff": 1, "strategy": "kd-tree", "positions": [[0,0,0]]}`, "strategy"},
		"symbol count":   {`{"cutoff": 1, "symbols": ["H"], "positions": [[0,0,0],[1,1,1]]}`, "symbols"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := structure.Decode([]byte(tc.doc), structure.FormatJSON)
			require.ErrorIs(t, err, structure.ErrInvalidFile)
			assert.Contains(t, err.Error(), tc.field)
		})
	}

	_, err := structure.Decode([]byte("cutoff: [unterminated"), structure.FormatYAML)
	require.Error(t, err)
	_, err = structure.Decode([]byte("{}"), structure.Format("toml"))
	require.ErrorIs(t, err, structure.ErrUnsupportedFormat)
}

// TestBuild_SemanticErrors: the schema passes but the geometry does not.
func TestBuild_SemanticErrors(t *testing.T) {
	f := &structure.File{
		Positions: [][]float64{{0, 0, 0}},
		Cell:      [][]float64{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}},
		PBC:       []bool{true, true, true},
		Cutoff:    1,
	}
	_, err := f.Build()
	require.ErrorIs(t, err, neighborhood.ErrSingularCell)

	f = &structure.File{Positions: [][]float64{{0, 0, 0}}, PBC: []bool{true, false, false}, Cutoff: 1}
	_, err = f.Build()
	require.ErrorIs(t, err, neighborhood.ErrInvalidInputShape)

	var nilFile *structure.File
	require.ErrorIs(t, nilFile.Validate(), structure.ErrInvalidFile)
}

func TestBuild_FileSettingsWin(t *testing.T) {
	f := &structure.File{
		Positions:       [][]float64{{0, 0, 0}, {0.5, 0, 0}},
		Cutoff:          1,
		SelfInteraction: true,
		Strategy:        "brute-force",
	}
	g, err := f.Build(neighborhood.WithStrategy(neighborhood.CellList), neighborhood.WithWorkers(2))
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
}

func TestResult_Write(t *testing.T) {
	f, err := structure.Decode([]byte(slabYAML), structure.FormatYAML)
	require.NoError(t, err)
	g, err := f.Build()
	require.NoError(t, err)
	pos, err := f.Vectors()
	require.NoError(t, err)

	r, err := structure.NewResult(pos, g, structure.WithVectors(), structure.WithComponents())
	require.NoError(t, err)
	assert.Equal(t, 2, r.NumEdges)
	assert.InDeltaSlice(t, []float64{0.2, 0.2}, r.Distances, 1e-12)
	assert.Equal(t, [][]int{{0, 1}, {2}}, r.Components)

	var buf bytes.Buffer
	require.NoError(t, structure.Write(&buf, r, structure.FormatJSON))
	var back structure.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, r.Edges, back.Edges)
	assert.Equal(t, r.PBC, back.PBC)

	buf.Reset()
	require.NoError(t, structure.Write(&buf, r, structure.FormatYAML))
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 2, doc["num_edges"])
	assert.Contains(t, doc, "edges")

	require.ErrorIs(t, structure.Write(&buf, r, structure.Format("xml")), structure.ErrUnsupportedFormat)
}

func TestNewResult_PlainGraph(t *testing.T) {
	g, err := neighborhood.Build([]neighborhood.Vec3{{0, 0, 0}}, 1)
	require.NoError(t, err)

	r, err := structure.NewResult(nil, g)
	require.NoError(t, err)
	assert.Nil(t, r.Vectors)
	assert.Nil(t, r.Components)
	assert.Equal(t, neighborhood.IdentityCell, r.Cell)

	_, err = structure.NewResult(nil, g, structure.WithVectors())
	require.ErrorIs(t, err, neighborhood.ErrInvalidInputShape)
}

func TestResult_WriteMsgpack(t *testing.T) {
	g, err := neighborhood.Build([]neighborhood.Vec3{{0, 0, 0}, {0.5, 0, 0}}, 1)
	require.NoError(t, err)
	r, err := structure.NewResult(nil, g, structure.WithComponents())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, structure.Write(&buf, r, structure.FormatMsgpack))

	var back structure.Result
	dec := msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	require.NoError(t, dec.Decode(&back))
	assert.Equal(t, *r, back)
}

func TestLoad_Msgpack(t *testing.T) {
	in := structure.File{Positions: [][]float64{{0, 0, 0}, {0.5, 0, 0}}, Cutoff: 1, PBC: []bool{false, false, false}}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	require.NoError(t, enc.Encode(&in))

	f, err := structure.Load(writeTemp(t, "pair.mp", buf.String()))
	require.NoError(t, err)
	assert.Equal(t, in.Positions, f.Positions)
	assert.Equal(t, in.PBC, f.PBC)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]structure.Format{
		"":        structure.FormatYAML,
		"yml":     structure.FormatYAML,
		"json":    structure.FormatJSON,
		"msgpack": structure.FormatMsgpack,
	} {
		got, err := structure.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := structure.ParseFormat("csv")
	require.ErrorIs(t, err, structure.ErrUnsupportedFormat)
}
