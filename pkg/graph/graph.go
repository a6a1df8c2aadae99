package graph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNode is returned by [ReadGraph] when an edge references a
	// non-positive node label.
	ErrInvalidNode = errors.New("node label must be positive")

	// ErrSelfLoop is returned by [ReadGraph] when an edge joins a node to itself.
	ErrSelfLoop = errors.New("self-loop edges are not allowed")
)

// Edge is an undirected edge. Edges returned by this package always have U < V.
type Edge struct {
	U, V int
}

// NewEdge returns the normalized edge between u and v.
func NewEdge(u, v int) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Graph is an undirected simple graph stored as adjacency sets.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	adj   map[int]map[int]struct{}
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[int]map[int]struct{})}
}

// Clone returns a deep copy of g. Mutating the copy never affects g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		adj:   make(map[int]map[int]struct{}, len(g.adj)),
		edges: g.edges,
	}
	for n, nbs := range g.adj {
		c.adj[n] = maps.Clone(nbs)
	}
	return c
}

// Union returns a new graph holding the edges of both a and b.
func Union(a, b *Graph) *Graph {
	u := a.Clone()
	for _, e := range b.Edges() {
		u.AddEdge(e.U, e.V)
	}
	return u
}

// AddEdge inserts the undirected edge u-v, creating both nodes when absent.
// Adding an existing edge is a no-op. Self-loops are ignored: a loop can
// never introduce a crossing, and keeping them out preserves the even
// degree sum that EdgeCount relies on.
func (g *Graph) AddEdge(u, v int) {
	if u == v || g.HasEdge(u, v) {
		return
	}
	g.addNode(u)
	g.addNode(v)
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges++
}

func (g *Graph) addNode(n int) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = make(map[int]struct{})
	}
}

// RemoveEdge removes the edge u-v if present. An endpoint left without
// edges is removed from the graph.
func (g *Graph) RemoveEdge(u, v int) {
	if !g.HasEdge(u, v) || !g.HasEdge(v, u) {
		return
	}
	delete(g.adj[u], v)
	delete(g.adj[v], u)
	g.edges--
	if len(g.adj[u]) == 0 {
		delete(g.adj, u)
	}
	if len(g.adj[v]) == 0 {
		delete(g.adj, v)
	}
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	nbs, ok := g.adj[u]
	if !ok {
		return false
	}
	_, ok = nbs[v]
	return ok
}

// HasNode reports whether n has at least one edge in g.
func (g *Graph) HasNode(n int) bool {
	_, ok := g.adj[n]
	return ok
}

// Adjacent returns the neighbors of n in ascending order, or nil if n is
// not in the graph. The returned slice is a copy.
func (g *Graph) Adjacent(n int) []int {
	nbs, ok := g.adj[n]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(nbs))
}

// Degree returns the number of neighbors of n, or -1 if n is not in the graph.
func (g *Graph) Degree(n int) int {
	nbs, ok := g.adj[n]
	if !ok {
		return -1
	}
	return len(nbs)
}

// Nodes returns all nodes in ascending order.
func (g *Graph) Nodes() []int {
	return slices.Sorted(maps.Keys(g.adj))
}

// Edges returns all edges sorted by (U, V).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, u := range g.Nodes() {
		for v := range g.adj[u] {
			if u < v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if a.U != b.U {
			return a.U - b.U
		}
		return a.V - b.V
	})
	return out
}

// NodeCount returns the number of nodes with at least one edge.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of edges. It always equals half the sum of
// all degrees.
func (g *Graph) EdgeCount() int { return g.edges }

// IsPath reports whether g is a simple path: exactly two nodes of degree 1
// and every other node of degree 2.
func IsPath(g *Graph) bool {
	endpoints := 0
	for _, nbs := range g.adj {
		switch len(nbs) {
		case 1:
			endpoints++
		case 2:
		default:
			return false
		}
	}
	return endpoints == 2
}
