package traversal

import (
	"github.com/matzehuels/highway/pkg/graph"
)

// Traversal runs searches against a single graph.
type Traversal struct {
	g *graph.Graph
}

// New returns a Traversal over g. The graph is read, never modified.
func New(g *graph.Graph) *Traversal {
	return &Traversal{g: g}
}

// frame is one level of an iterative depth-first search.
type frame struct {
	node int
	next []int
	i    int
}

// FindCycle returns a simple cycle of at least three nodes, or nil if the
// graph is acyclic. Candidate start nodes are tried in ascending order; the
// first one that closes a cycle wins.
func (t *Traversal) FindCycle() *graph.Graph {
	for _, target := range t.g.Nodes() {
		if c := t.cycleThrough(target); c != nil {
			return c
		}
	}
	return nil
}

// cycleThrough walks depth-first from target, extending a path one edge at a
// time, and closes the cycle on the first edge back to target once the path
// holds more than two nodes.
func (t *Traversal) cycleThrough(target int) *graph.Graph {
	result := graph.New()
	visited := map[int]bool{target: true}
	stack := []frame{{node: target, next: t.g.Adjacent(target)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i == len(top.next) {
			node := top.node
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				result.RemoveEdge(stack[len(stack)-1].node, node)
			}
			continue
		}

		nb := top.next[top.i]
		top.i++
		if nb == target && result.NodeCount() > 2 {
			result.AddEdge(top.node, nb)
			return result
		}
		if !visited[nb] {
			visited[nb] = true
			result.AddEdge(top.node, nb)
			stack = append(stack, frame{node: nb, next: t.g.Adjacent(nb)})
		}
	}
	return nil
}

// FindPath returns a simple path from start to end that never enters a node
// in prohibited, or nil if none exists. end itself may be prohibited.
func (t *Traversal) FindPath(start, end int, prohibited []int) *graph.Graph {
	if !t.g.HasNode(start) || start == end {
		return nil
	}
	visited := make(map[int]bool, len(prohibited)+1)
	for _, n := range prohibited {
		visited[n] = true
	}
	visited[start] = true

	result := graph.New()
	stack := []frame{{node: start, next: t.g.Adjacent(start)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i == len(top.next) {
			node := top.node
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				result.RemoveEdge(stack[len(stack)-1].node, node)
			}
			continue
		}

		nb := top.next[top.i]
		top.i++
		if nb == end {
			result.AddEdge(top.node, nb)
			return result
		}
		if !visited[nb] {
			visited[nb] = true
			result.AddEdge(top.node, nb)
			stack = append(stack, frame{node: nb, next: t.g.Adjacent(nb)})
		}
	}
	return nil
}

// SplitIntoPieces splits the edges of the graph that are not on cycle into
// pieces. A piece is either a chord (an edge joining two cycle nodes) or a
// connected component of the graph minus the cycle nodes together with all
// of its edges to the cycle. Every non-cycle node belongs to exactly one
// piece. Pieces are returned in discovery order, which follows ascending
// cycle node order.
func (t *Traversal) SplitIntoPieces(cycle *graph.Graph) []*graph.Graph {
	var pieces []*graph.Graph
	done := make(map[int]bool)

	for _, node := range cycle.Nodes() {
		done[node] = true
		for _, nb := range t.g.Adjacent(node) {
			if done[nb] || cycle.HasEdge(node, nb) {
				continue
			}
			piece := graph.New()
			piece.AddEdge(node, nb)
			t.growPiece(cycle, nb, piece, done)
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

// growPiece adds to piece every edge reachable from start without passing
// through a cycle node.
func (t *Traversal) growPiece(cycle *graph.Graph, start int, piece *graph.Graph, done map[int]bool) {
	stack := []int{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cycle.HasNode(n) || done[n] {
			continue
		}
		done[n] = true
		for _, nb := range t.g.Adjacent(n) {
			if !piece.HasEdge(n, nb) {
				piece.AddEdge(n, nb)
				stack = append(stack, nb)
			}
		}
	}
}

// Components returns the connected components of the graph, ordered by
// their smallest node.
func (t *Traversal) Components() []*graph.Graph {
	var comps []*graph.Graph
	seen := make(map[int]bool)
	for _, root := range t.g.Nodes() {
		if seen[root] {
			continue
		}
		comp := graph.New()
		seen[root] = true
		stack := []int{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range t.g.Adjacent(n) {
				comp.AddEdge(n, nb)
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// IsDuplex reports whether the graph is bipartite. Every connected
// component is colored; an empty graph is trivially bipartite.
func (t *Traversal) IsDuplex() bool {
	color := make(map[int]int, t.g.NodeCount())
	for _, root := range t.g.Nodes() {
		if _, ok := color[root]; ok {
			continue
		}
		color[root] = 0
		stack := []int{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range t.g.Adjacent(n) {
				c, ok := color[nb]
				if !ok {
					color[nb] = 1 - color[n]
					stack = append(stack, nb)
					continue
				}
				if c == color[n] {
					return false
				}
			}
		}
	}
	return true
}
