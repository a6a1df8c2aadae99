package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// document is the JSON wire format of a Graph.
type document struct {
	Nodes []int    `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// MarshalGraph converts a graph to JSON bytes.
// Nodes and edges are sorted for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	doc := document{Nodes: g.Nodes(), Edges: make([][2]int, 0, g.EdgeCount())}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, [2]int{e.U, e.V})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph. The "nodes" field is informational only:
// a node without edges cannot be represented and is dropped.
func ReadGraph(r io.Reader) (*Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	g := New()
	for _, e := range doc.Edges {
		if e[0] <= 0 || e[1] <= 0 {
			return nil, fmt.Errorf("edge %d-%d: %w", e[0], e[1], ErrInvalidNode)
		}
		if e[0] == e[1] {
			return nil, fmt.Errorf("edge %d-%d: %w", e[0], e[1], ErrSelfLoop)
		}
		g.AddEdge(e[0], e[1])
	}
	return g, nil
}
