// Package traversal implements the graph searches used by the planarity
// checker: cycle discovery, constrained path search, splitting a graph into
// pieces along a cycle, walking a cycle in order and 2-coloring.
//
// A [Traversal] is bound to one graph and keeps no search state between
// calls. Every search owns its visited set and runs over an explicit frame
// stack, so search depth is limited by heap memory rather than by the
// goroutine stack.
package traversal
