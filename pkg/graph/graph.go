package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rdpishibashi/revision-management/pkg/errors"
	"github.com/rdpishibashi/revision-management/pkg/family"
)

// Graph is the canonical serialization format for revision family graphs.
// Used for CLI output files, API responses, and cached artifacts.
type Graph struct {
	// Columns lists the dynamic attribute columns in display order.
	Columns []string `json:"columns,omitempty" bson:"columns,omitempty"`
	Nodes   []Node   `json:"nodes" bson:"nodes"`
	Edges   []Edge   `json:"edges" bson:"edges"`
}

// Node is one drawing identifier with its derived attributes.
type Node struct {
	ID    string            `json:"id" bson:"id"`
	Root  bool              `json:"root,omitempty" bson:"root,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Edge represents a directed parent→child relation.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// FromFamily converts the engine's output into the serialization format.
// Nodes are sorted lexicographically by their trimmed identifier for
// deterministic output; edge order is preserved.
func FromFamily(details family.Details, roots family.Roots, edges []family.Edge, cols []string) Graph {
	ids := make([]string, 0, len(details))
	for id := range details {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := Graph{
		Columns: cols,
		Nodes:   make([]Node, len(ids)),
		Edges:   make([]Edge, len(edges)),
	}

	for i, id := range ids {
		_, isRoot := roots[id]
		out.Nodes[i] = Node{ID: id, Root: isRoot, Attrs: details[id]}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.Parent, To: e.Child}
	}
	return out
}

// Build runs the construction engine over a row table and returns the
// serialized graph. This is the one-call path used by the pipeline.
func Build(table family.Table) Graph {
	b := family.NewBuilder(table)
	details, roots := b.Build()
	return FromFamily(details, roots, b.Edges(), table.DynamicColumns())
}

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

func writeGraphTo(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
