package replay

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument wraps every decoding, validation and semantic failure.
var ErrInvalidDocument = errors.New("invalid game history")

//go:embed history.schema.json
var historySchemaSource string

var historySchema = jsonschema.MustCompileString("history.schema.json", historySchemaSource)

// Format is the document syntax of a history file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Compression is the optional outer encoding of a history file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// DetectFormat picks format and compression from the file name, e.g.
// "game.yaml.zst" is zstd-compressed YAML. Unrecognised names are plain JSON.
func DetectFormat(path string) (Format, Compression) {
	name := strings.ToLower(filepath.Base(path))
	comp := CompressionNone
	switch {
	case strings.HasSuffix(name, ".gz"):
		comp = CompressionGzip
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		comp = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML, comp
	}
	return FormatJSON, comp
}

// Load reads and decodes the history file at path.
func Load(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	format, comp := DetectFormat(path)
	var r io.Reader = f
	switch comp {
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip %s: %w", ErrInvalidDocument, path, err)
		}
		defer zr.Close()
		r = zr
	case CompressionZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd %s: %w", ErrInvalidDocument, path, err)
		}
		defer dec.Close()
		r = dec
	}

	g, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

type planetDoc struct {
	ID       int    `json:"id"`
	Position [2]int `json:"position"`
}

type connectionDoc struct {
	IDA int `json:"id_a"`
	IDB int `json:"id_b"`
}

type clusterDoc struct {
	Planets     []planetDoc     `json:"planets"`
	Connections []connectionDoc `json:"connections"`
	Dimensions  *[2]int         `json:"dimensions,omitempty"`
}

type historyDoc struct {
	Cluster        clusterDoc          `json:"cluster"`
	PlanetToOwners map[int]map[int]int `json:"planet_to_owners"`
	NumTurns       int                 `json:"num_turns"`
}

// Decode reads one uncompressed history document.
func Decode(r io.Reader, format Format) (*Game, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrInvalidDocument, err)
	}
	if format == FormatYAML {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrInvalidDocument, err)
		}
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, format, err)
	}
	if err := historySchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var doc historyDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, format, err)
	}

	g, err := Build(doc.options()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return g, nil
}

func (d historyDoc) options() []Option {
	opts := make([]Option, 0, len(d.Cluster.Planets)+len(d.Cluster.Connections)+2)
	for _, p := range d.Cluster.Planets {
		opts = append(opts, WithPlanet(p.ID, p.Position[0], p.Position[1]))
	}
	for _, c := range d.Cluster.Connections {
		opts = append(opts, WithConnection(c.IDA, c.IDB))
	}
	if dim := d.Cluster.Dimensions; dim != nil {
		opts = append(opts, WithDimensions(dim[0], dim[1]))
	}
	for planet, turns := range d.PlanetToOwners {
		for turn, owner := range turns {
			opts = append(opts, WithOwner(planet, turn, owner))
		}
	}
	return append(opts, WithTurns(d.NumTurns))
}

// Encode writes g as an indented JSON history document.
func Encode(w io.Writer, g *Game) error {
	doc := historyDoc{
		PlanetToOwners: make(map[int]map[int]int, len(g.owners.byPlanet)),
		NumTurns:       g.numTurns,
	}
	doc.Cluster.Planets = make([]planetDoc, 0, len(g.cluster.planets))
	for _, p := range g.cluster.planets {
		doc.Cluster.Planets = append(doc.Cluster.Planets, planetDoc{ID: int(p.ID), Position: [2]int{p.Position.X, p.Position.Y}})
	}
	doc.Cluster.Connections = make([]connectionDoc, 0, len(g.cluster.connections))
	for _, c := range g.cluster.connections {
		doc.Cluster.Connections = append(doc.Cluster.Connections, connectionDoc{IDA: int(c.A), IDB: int(c.B)})
	}
	if dim, ok := g.cluster.Dimensions(); ok {
		doc.Cluster.Dimensions = &[2]int{dim.X, dim.Y}
	}
	for planet, turns := range g.owners.byPlanet {
		m := make(map[int]int, len(turns))
		for turn, owner := range turns {
			m[turn] = int(owner)
		}
		doc.PlanetToOwners[int(planet)] = m
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// yamlToJSON re-encodes a YAML document in the JSON data model so it can go
// through the same schema check. Non-string mapping keys become strings.
func yamlToJSON(raw []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(v))
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
