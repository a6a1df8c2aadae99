// Package graph provides the undirected road-network graph used by the
// planarity engine.
//
// Nodes are positive integer city labels. Every node stored in a [Graph] has
// at least one incident edge: removing the last edge of a node removes the
// node itself, so [Graph.HasNode] reports "has a road", not "was ever seen".
//
// # Core Types
//
//   - [Graph]: adjacency-set graph with symmetric edges and no self-loops
//   - [Edge]: an unordered pair, normalized so that U < V
//
// # Derived Graphs
//
// Cycles, pieces and the interlacement graph of the planarity checker are all
// plain [Graph] values. [Graph.Clone] and [Union] always produce fresh,
// independently owned graphs:
//
//	ring := graph.New()
//	for i := 1; i < n; i++ {
//	    ring.AddEdge(i, i+1)
//	}
//	ring.AddEdge(1, n)
//	withChord := graph.Union(ring, chords)
//
// # Serialization
//
// [MarshalGraph], [WriteGraph] and [ReadGraph] use a small JSON format
// ({"nodes": [...], "edges": [[u, v], ...]}) with nodes and edges sorted for
// deterministic output.
package graph
