package network

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/matzehuels/highway/pkg/graph"
)

var numberRe = regexp.MustCompile(`[0-9]+`)

// ReadTokens reads every unsigned integer from r. Any run of non-digit text
// separates numbers, so "3\n1-2, 2 3" yields [3 1 2 2 3].
func ReadTokens(r io.Reader) ([]int, error) {
	var tokens []int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, m := range numberRe.FindAllString(scanner.Text(), -1) {
			v, err := strconv.Atoi(m)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, m, err)
			}
			tokens = append(tokens, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return tokens, nil
}

// ReadGraphTokens reads a JSON road map, as written by "render -f json", and
// turns it back into an island description. The largest city label is the
// city count; every edge that is not part of the coastal ring is a requested
// highway.
func ReadGraphTokens(r io.Reader) ([]int, error) {
	g, err := graph.ReadGraph(r)
	if err != nil {
		return nil, err
	}
	return GraphTokens(g), nil
}

// GraphTokens converts a road map into tokens "n m x1 y1 ... xm ym".
func GraphTokens(g *graph.Graph) []int {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return []int{0, 0}
	}
	n := nodes[len(nodes)-1]
	var pairs []int
	for _, e := range g.Edges() {
		if e.V == e.U+1 || (e.U == 1 && e.V == n) {
			continue
		}
		pairs = append(pairs, e.U, e.V)
	}
	return append([]int{n, len(pairs) / 2}, pairs...)
}
