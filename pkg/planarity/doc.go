// Package planarity decides whether a road network can be drawn in the
// plane without crossings.
//
// The checker follows the piece decomposition method: pick a cycle, split
// the rest of the graph into pieces hanging off it, make sure every piece
// is planar together with the cycle, and then check that the pieces can be
// divided between the inside and the outside of the cycle. Two pieces that
// cannot share a side are "interlaced"; the division exists iff the
// interlacement graph is bipartite.
//
// A piece that is not a simple path is reduced by recursion: the arc of the
// cycle between two consecutive attachment points of the piece is replaced
// by a path through the piece, and the piece merged with the old cycle is
// checked against that new cycle. Each reduction strictly shrinks the
// largest non-path piece, so recursion always terminates; [Checker.MaxDepth]
// still bounds it and turns an overrun into [ErrDepthExceeded] rather than
// a verdict.
//
// # Usage
//
//	c := planarity.NewChecker(planarity.DefaultMaxDepth, logger)
//	res, err := c.Check(g)
//	if errors.Is(err, planarity.ErrDepthExceeded) {
//	    // neither planar nor non-planar: report as indeterminate
//	}
package planarity
