package planarity

import (
	"slices"

	"github.com/matzehuels/highway/pkg/graph"
	"github.com/matzehuels/highway/pkg/traversal"
)

// Rotation letters.
const (
	first  = 't' // attachment of the first piece only
	second = 'c' // attachment of the second piece only
	shared = 'b' // attachment of both pieces
)

// nonInterlaced lists the length-4 rotations of two pieces that share two
// attachments lying on opposite sides of each other's private attachments.
var nonInterlaced = map[string]bool{
	"tbcb": true,
	"btbc": true,
	"bcbt": true,
	"cbtb": true,
}

// Rotation encodes how the attachments of pieces a and b alternate along a
// cycle given in walk order. Runs of private attachments of the same piece
// collapse to one letter, shared attachments are never collapsed, and a
// leading letter repeating the trailing private letter is dropped so the
// string reads the same from any starting point. It also returns the number
// of shared attachments.
func Rotation(order []int, a, b *graph.Graph) (string, int) {
	var r rotation
	for _, n := range order {
		r.add(a.HasNode(n), b.HasNode(n))
	}
	return r.finish()
}

// rotation accumulates a rotation string one cycle position at a time.
type rotation struct {
	rot  []byte
	both int
	last byte
}

func (r *rotation) add(inA, inB bool) {
	switch {
	case inA && inB:
		r.both++
		r.rot = append(r.rot, shared)
		r.last = shared
	case inA && r.last != first:
		r.rot = append(r.rot, first)
		r.last = first
	case inB && r.last != second:
		r.rot = append(r.rot, second)
		r.last = second
	}
}

// finish applies the wraparound fix-up. A single private run keeps its
// letter rather than collapsing to the empty string.
func (r *rotation) finish() (string, int) {
	rot := r.rot
	if (r.last == first || r.last == second) && len(rot) > 1 && rot[0] == r.last {
		rot = rot[1:]
	}
	return string(rot), r.both
}

// mergeRotation computes the same rotation as [Rotation] from the sorted
// cycle positions of each piece's attachments, touching only those
// positions instead of the whole cycle.
func mergeRotation(pa, pb []int) (string, int) {
	var r rotation
	i, j := 0, 0
	for i < len(pa) || j < len(pb) {
		switch {
		case j == len(pb) || (i < len(pa) && pa[i] < pb[j]):
			r.add(true, false)
			i++
		case i == len(pa) || pb[j] < pa[i]:
			r.add(false, true)
			j++
		default:
			r.add(true, true)
			i++
			j++
		}
	}
	return r.finish()
}

// Interlaced reports whether a rotation describes two pieces that cannot be
// drawn on the same side of the cycle.
func Interlaced(rot string, both int) bool {
	switch {
	case len(rot) > 4 || both > 2:
		return true
	case len(rot) == 4:
		return !nonInterlaced[rot]
	default:
		return false
	}
}

// Interlacement builds the conflict graph of pieces against cycle. Its nodes
// are indices into pieces; an edge joins every interlaced pair. Pieces that
// conflict with nothing do not appear.
//
// Each pair costs time proportional to the two pieces' attachment counts,
// not to the cycle length.
func Interlacement(cycle *graph.Graph, pieces []*graph.Graph) *graph.Graph {
	pos := make(map[int]int, cycle.NodeCount())
	for i, n := range traversal.New(cycle).Order() {
		pos[n] = i
	}
	attach := make([][]int, len(pieces))
	for k, p := range pieces {
		for _, n := range p.Nodes() {
			if i, ok := pos[n]; ok {
				attach[k] = append(attach[k], i)
			}
		}
		slices.Sort(attach[k])
	}

	conflicts := graph.New()
	for i := range pieces {
		for j := i + 1; j < len(pieces); j++ {
			if Interlaced(mergeRotation(attach[i], attach[j])) {
				conflicts.AddEdge(i, j)
			}
		}
	}
	return conflicts
}
