package planarity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/highway/pkg/graph"
	"github.com/matzehuels/highway/pkg/traversal"
)

// DefaultMaxDepth is the recursion ceiling used when Checker.MaxDepth is zero.
const DefaultMaxDepth = 4096

var (
	// ErrDepthExceeded is returned when piece reduction recurses deeper than
	// Checker.MaxDepth. The graph is then neither accepted nor rejected.
	ErrDepthExceeded = errors.New("planarity recursion depth exceeded")

	// ErrDetachedPiece is returned when a piece has no route between two of
	// its attachment points. It indicates a corrupted piece split.
	ErrDetachedPiece = errors.New("piece has no path between its attachments")
)

// Step describes one evaluated recursion frame.
type Step struct {
	Depth       int  `json:"depth"`
	CycleLength int  `json:"cycle_length"`
	Pieces      int  `json:"pieces"`
	PathPieces  int  `json:"path_pieces"`
	Conflicts   int  `json:"conflicts"`
	EulerReject bool `json:"euler_reject,omitempty"`
	Planar      bool `json:"planar"`
}

// Result is the outcome of a planarity check.
type Result struct {
	Planar bool `json:"planar"`

	// CycleLength and Pieces describe the root frame: the first cycle found
	// and how many pieces hang off it.
	CycleLength int `json:"cycle_length"`
	Pieces      int `json:"pieces"`

	// Depth is the deepest recursion level reached; Frames counts every
	// evaluated frame.
	Depth  int `json:"depth"`
	Frames int `json:"frames"`

	// EulerReject is set when the verdict came from the edge-count bound
	// |E| <= 3|V| - 6 rather than from interlacement.
	EulerReject bool `json:"euler_reject,omitempty"`
}

// Checker runs the recursive planarity procedure. A Checker holds only
// configuration and may be shared between goroutines; all search state lives
// in the call.
type Checker struct {
	// MaxDepth bounds piece-reduction recursion. Zero means DefaultMaxDepth.
	MaxDepth int

	// Logger receives debug output per frame. Nil means log.Default().
	Logger *log.Logger

	// Trace, when set, is called once for every frame that reaches a verdict.
	Trace func(Step)
}

// NewChecker creates a checker with the given depth ceiling and logger.
func NewChecker(maxDepth int, logger *log.Logger) *Checker {
	return &Checker{MaxDepth: maxDepth, Logger: logger}
}

// Check decides whether g is planar. Each connected component is checked on
// its own; a component without a cycle is a forest and trivially planar.
//
// The only error is ErrDepthExceeded (wrapped); "not planar" is a result,
// not an error.
func (c *Checker) Check(g *graph.Graph) (Result, error) {
	r := &run{checker: c, logger: c.logger()}
	res := Result{Planar: true}

	if n := g.NodeCount(); n >= 3 && exceedsEuler(g) {
		r.logger.Debug("edge bound exceeded", "nodes", n, "edges", g.EdgeCount())
		return Result{EulerReject: true}, nil
	}

	for i, comp := range traversal.New(g).Components() {
		cycle := traversal.New(comp).FindCycle()
		planar, err := r.check(comp, cycle, 0)
		if i == 0 {
			res.CycleLength, res.Pieces, res.EulerReject = r.root.CycleLength, r.root.Pieces, r.root.EulerReject
		}
		res.Depth, res.Frames = r.depth, r.frames
		if err != nil {
			res.Planar = false
			return res, err
		}
		if !planar {
			res.Planar = false
			return res, nil
		}
	}
	return res, nil
}

// CheckWithCycle runs the procedure on g against a caller-chosen cycle.
// cycle must be a cycle subgraph of g; nil means g has no cycle.
func (c *Checker) CheckWithCycle(g, cycle *graph.Graph) (Result, error) {
	r := &run{checker: c, logger: c.logger()}
	planar, err := r.check(g, cycle, 0)
	return Result{
		Planar:      planar && err == nil,
		CycleLength: r.root.CycleLength,
		Pieces:      r.root.Pieces,
		Depth:       r.depth,
		Frames:      r.frames,
		EulerReject: r.root.EulerReject,
	}, err
}

func (c *Checker) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Checker) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// run carries the bookkeeping of a single Check call.
type run struct {
	checker *Checker
	logger  *log.Logger
	root    Step
	depth   int
	frames  int
}

func (r *run) emit(s Step) {
	if s.Depth == 0 {
		r.root = s
	}
	if r.checker.Trace != nil {
		r.checker.Trace(s)
	}
}

func (r *run) check(g, cycle *graph.Graph, depth int) (bool, error) {
	if depth > r.checker.maxDepth() {
		return false, fmt.Errorf("%w (limit %d)", ErrDepthExceeded, r.checker.maxDepth())
	}
	r.depth = max(r.depth, depth)
	r.frames++

	step := Step{Depth: depth}
	if cycle == nil {
		step.Planar = true
		r.emit(step)
		return true, nil
	}
	step.CycleLength = cycle.NodeCount()

	if exceedsEuler(g) {
		step.EulerReject = true
		r.emit(step)
		return false, nil
	}

	pieces := traversal.New(g).SplitIntoPieces(cycle)
	step.Pieces = len(pieces)
	r.logger.Debug("checking frame", "depth", depth, "cycle", step.CycleLength, "pieces", step.Pieces)

	for _, p := range pieces {
		if graph.IsPath(p) {
			step.PathPieces++
			continue
		}
		sub, subCycle, err := reduce(cycle, p)
		if err != nil {
			return false, err
		}
		planar, err := r.check(sub, subCycle, depth+1)
		if err != nil {
			return false, err
		}
		if !planar {
			r.emit(step)
			return false, nil
		}
	}

	conflicts := Interlacement(cycle, pieces)
	step.Conflicts = conflicts.EdgeCount()
	step.Planar = traversal.New(conflicts).IsDuplex()
	r.emit(step)
	return step.Planar, nil
}

// reduce derives the smaller problem that decides whether piece fits with
// cycle. For a piece attached at two or more points it returns cycle merged
// with piece, and a new cycle in which the arc between two consecutive
// attachments is replaced by a path through the piece. A piece attached at a
// single node is independent of the cycle and is checked on its own.
func reduce(cycle, piece *graph.Graph) (*graph.Graph, *graph.Graph, error) {
	order := traversal.New(cycle).Order()
	var attachments []int
	for _, n := range order {
		if piece.HasNode(n) {
			attachments = append(attachments, n)
		}
	}
	if len(attachments) < 2 {
		return piece, traversal.New(piece).FindCycle(), nil
	}

	// Cut the arc between the first two attachments in walk order.
	start, end := attachments[0], attachments[1]
	from, to := slices.Index(order, start), slices.Index(order, end)
	segment := cycle.Clone()
	for k := from; k < to; k++ {
		segment.RemoveEdge(order[k], order[k+1])
	}

	path := traversal.New(piece).FindPath(start, end, cycle.Nodes())
	if path == nil {
		return nil, nil, fmt.Errorf("%w: %d-%d", ErrDetachedPiece, start, end)
	}
	return graph.Union(cycle, piece), graph.Union(segment, path), nil
}

func exceedsEuler(g *graph.Graph) bool {
	return g.EdgeCount() > 3*g.NodeCount()-6
}
