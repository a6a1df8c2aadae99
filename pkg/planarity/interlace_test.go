package planarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/highway/pkg/graph"
	"github.com/matzehuels/highway/pkg/traversal"
)

// attached returns a star piece touching the given cycle nodes through a hub
// that never appears on the cycle.
func attached(nodes ...int) *graph.Graph {
	g := graph.New()
	for _, n := range nodes {
		g.AddEdge(100, n)
	}
	return g
}

func TestRotation(t *testing.T) {
	tests := []struct {
		name     string
		order    []int
		a, b     *graph.Graph
		wantRot  string
		wantBoth int
	}{
		{"alternating", []int{1, 2, 3, 4}, attached(1, 3), attached(2, 4), "tctc", 0},
		{"separated", []int{1, 2, 3, 4}, attached(1, 2), attached(3, 4), "tc", 0},
		{"wraparound", []int{1, 2, 3, 4, 5}, attached(1, 5), attached(3), "ct", 0},
		{"shared pair", []int{1, 2, 3, 4}, attached(1, 2, 4), attached(2, 3, 4), "tbcb", 2},
		{"shared never collapses", []int{1, 2, 3}, attached(1, 2), attached(1, 2), "bb", 2},
		{"skips foreign nodes", []int{1, 2, 3, 4, 5, 6}, attached(2), attached(5), "tc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rot, both := Rotation(tt.order, tt.a, tt.b)
			assert.Equal(t, tt.wantRot, rot)
			assert.Equal(t, tt.wantBoth, both)
		})
	}
}

func TestInterlaced(t *testing.T) {
	tests := []struct {
		rot  string
		both int
		want bool
	}{
		{"tc", 0, false},
		{"btc", 1, false},
		{"bb", 2, false},
		{"tctc", 0, true},
		{"tbcb", 2, false},
		{"btbc", 2, false},
		{"bcbt", 2, false},
		{"cbtb", 2, false},
		{"tcbb", 2, true},
		{"btct", 1, true},
		{"bcb", 3, true},
		{"tbctb", 2, true},
	}
	for _, tt := range tests {
		if got := Interlaced(tt.rot, tt.both); got != tt.want {
			t.Errorf("Interlaced(%q, %d) = %v, want %v", tt.rot, tt.both, got, tt.want)
		}
	}
}

func TestInterlacement(t *testing.T) {
	cycle := ring(6)
	pieces := []*graph.Graph{attached(1, 4), attached(2, 5), attached(3, 6), attached(1, 2)}

	conflicts := Interlacement(cycle, pieces)
	assert.True(t, conflicts.HasEdge(0, 1))
	assert.True(t, conflicts.HasEdge(0, 2))
	assert.True(t, conflicts.HasEdge(1, 2))
	assert.False(t, conflicts.HasNode(3), "piece between neighbors conflicts with nothing")
}

func TestRotationSingleRunKeepsLetter(t *testing.T) {
	// Without the length guard the wraparound fix-up would strip "t" to "".
	rot, both := Rotation([]int{1, 2, 3}, attached(1, 2), graph.New())
	assert.Equal(t, "t", rot)
	assert.Zero(t, both)
	assert.False(t, Interlaced(rot, both))
}

func TestInterlacementMatchesPairwiseRotation(t *testing.T) {
	cycle := ring(12)
	order := traversal.New(cycle).Order()

	// Deterministic pseudo-random stars with one to four attachments.
	seed := uint32(7)
	nextNode := func() int {
		seed = seed*1103515245 + 12345
		return int(seed>>16)%12 + 1
	}
	var pieces []*graph.Graph
	for k := 0; k < 40; k++ {
		nodes := make([]int, 1+k%4)
		for i := range nodes {
			nodes[i] = nextNode()
		}
		pieces = append(pieces, attached(nodes...))
	}

	conflicts := Interlacement(cycle, pieces)
	for i := range pieces {
		for j := i + 1; j < len(pieces); j++ {
			want := Interlaced(Rotation(order, pieces[i], pieces[j]))
			assert.Equal(t, want, conflicts.HasEdge(i, j), "pieces %d and %d", i, j)
		}
	}
}

func TestMergeRotation(t *testing.T) {
	tests := []struct {
		pa, pb   []int
		wantRot  string
		wantBoth int
	}{
		{[]int{0, 2}, []int{1, 3}, "tctc", 0},
		{[]int{0, 1, 3}, []int{1, 2, 3}, "tbcb", 2},
		{[]int{0, 4}, []int{2}, "ct", 0},
		{[]int{0, 1}, nil, "t", 0},
		{nil, nil, "", 0},
	}
	for _, tt := range tests {
		rot, both := mergeRotation(tt.pa, tt.pb)
		assert.Equal(t, tt.wantRot, rot, "pa=%v pb=%v", tt.pa, tt.pb)
		assert.Equal(t, tt.wantBoth, both)
	}
}
