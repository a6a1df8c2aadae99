package network

import (
	"errors"
	"fmt"

	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/graph"
	"github.com/matzehuels/highway/pkg/planarity"
)

// Network is the result of ingesting one island description.
type Network struct {
	// Nodes is the declared city count (the first token), or 0 if absent.
	Nodes int

	// Declared is the declared highway count (the second token).
	Declared int

	// Graph holds the coastal ring plus every valid highway. It is nil when
	// the input is too short or names fewer than three cities.
	Graph *graph.Graph

	// Requested lists valid highways in input order, normalized (U < V).
	Requested []graph.Edge

	// Rejected lists highways with an endpoint outside 1..Nodes, as given.
	Rejected [][2]int

	// Problems describes every reason the input is malformed.
	Problems []string
}

// Malformed reports whether any input problem was recorded.
func (n *Network) Malformed() bool { return len(n.Problems) > 0 }

func (n *Network) problem(format string, args ...any) {
	n.Problems = append(n.Problems, fmt.Sprintf(format, args...))
}

// Build validates tokens and constructs the road network. It never fails;
// problems are recorded on the returned Network.
func Build(tokens []int) *Network {
	n := &Network{}
	if len(tokens) > 0 {
		n.Nodes = tokens[0]
	}
	if len(tokens) > 1 {
		n.Declared = tokens[1]
	}

	switch {
	case len(tokens) == 0:
		n.problem("input is empty")
		return n
	case n.Nodes <= 2:
		n.problem("city count %d must be greater than 2", n.Nodes)
		return n
	case n.Nodes > errs.MaxNodes:
		n.problem("city count %d exceeds the limit of %d", n.Nodes, errs.MaxNodes)
		return n
	case n.Declared < 1 || len(tokens) < 4:
		n.problem("at least one highway is required")
		return n
	}

	n.Graph = Ring(n.Nodes)
	for i := 2; i+1 < len(tokens); i += 2 {
		if (i-2)/2 == errs.MaxHighways {
			n.problem("more than %d highways; the rest were ignored", errs.MaxHighways)
			break
		}
		x, y := tokens[i], tokens[i+1]
		if x < 1 || x > n.Nodes || y < 1 || y > n.Nodes {
			n.Rejected = append(n.Rejected, [2]int{x, y})
			n.problem("highway %d-%d leaves the island (cities 1..%d)", x, y, n.Nodes)
			continue
		}
		n.Graph.AddEdge(x, y)
		n.Requested = append(n.Requested, graph.NewEdge(x, y))
	}

	if want := 2 + 2*n.Declared; len(tokens) != want {
		n.problem("declared %d highways but found %d endpoint values", n.Declared, len(tokens)-2)
	}
	return n
}

// Ring returns the coastal road over cities 1..n.
func Ring(n int) *graph.Graph {
	g := graph.New()
	for i := 1; i < n; i++ {
		g.AddEdge(i, i+1)
	}
	g.AddEdge(1, n)
	return g
}

// Evaluate runs the planarity check and combines it with input validity.
// The check runs whenever a graph was built, even for malformed input, so
// the returned result always describes the ingested roads.
//
// A depth overrun yields StatusIndeterminate together with the checker's
// error; every other outcome has a nil error.
func (n *Network) Evaluate(c *planarity.Checker) (Status, planarity.Result, error) {
	if n.Graph == nil {
		return StatusUnbuildable, planarity.Result{}, nil
	}

	res, err := c.Check(n.Graph)
	switch {
	case errors.Is(err, planarity.ErrDepthExceeded):
		return StatusIndeterminate, res, err
	case err != nil:
		return StatusUnbuildable, res, err
	case !res.Planar || n.Malformed():
		return StatusUnbuildable, res, nil
	default:
		return StatusBuildable, res, nil
	}
}
