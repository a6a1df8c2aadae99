package traversal

import "github.com/matzehuels/highway/pkg/graph"

// CycleWalker yields the nodes of a cycle graph in adjacency order, starting
// from its smallest node and heading towards that node's smallest neighbor.
// It remembers the previous node so it never steps straight back.
//
// The first NodeCount calls to Next visit every cycle node exactly once.
// Further calls keep going around the cycle.
type CycleWalker struct {
	cycle   *graph.Graph
	prev    int
	next    int
	started bool
}

// Walk returns a fresh walker over the traversal's graph, which must be a
// cycle.
func (t *Traversal) Walk() *CycleWalker {
	return &CycleWalker{cycle: t.g}
}

// Next returns the next cycle node. It returns false only when the cycle is
// empty.
func (w *CycleWalker) Next() (int, bool) {
	if !w.started {
		nodes := w.cycle.Nodes()
		if len(nodes) == 0 {
			return 0, false
		}
		w.prev = nodes[0]
		w.next = w.cycle.Adjacent(w.prev)[0]
		w.started = true
		return w.prev, true
	}
	for _, nb := range w.cycle.Adjacent(w.next) {
		if nb != w.prev {
			w.prev, w.next = w.next, nb
			break
		}
	}
	return w.prev, true
}

// Order returns the nodes of the traversal's cycle graph in walk order.
func (t *Traversal) Order() []int {
	w := t.Walk()
	order := make([]int, 0, t.g.NodeCount())
	for range t.g.NodeCount() {
		n, ok := w.Next()
		if !ok {
			break
		}
		order = append(order, n)
	}
	return order
}
