package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/highway/pkg/cache"
	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/history"
	"github.com/matzehuels/highway/pkg/network"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	store, err := history.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewRunner(c, nil, store, log.New(io.Discard))
}

// k33 is the ring of six with the three long diagonals.
var k33 = []int{6, 3, 1, 4, 2, 5, 3, 6}

func TestExecute(t *testing.T) {
	tests := []struct {
		name   string
		tokens []int
		want   network.Status
	}{
		{"chord", []int{5, 1, 2, 5}, network.StatusBuildable},
		{"k33", k33, network.StatusUnbuildable},
		{"malformed", []int{4, 1, 1, 9}, network.StatusUnbuildable},
		{"too few cities", []int{2, 1, 1, 2}, network.StatusUnbuildable},
	}

	r := newTestRunner(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Execute(context.Background(), Options{Tokens: tt.tokens})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if res.Report.Status != tt.want {
				t.Errorf("Status = %v, want %v", res.Report.Status, tt.want)
			}
			if res.Cached {
				t.Error("first run should not be cached")
			}
		})
	}
}

func TestExecuteUsesCache(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	first, err := r.Execute(ctx, Options{Tokens: k33})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := r.Execute(ctx, Options{Tokens: k33})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.Cached {
		t.Error("second run should hit the cache")
	}
	if second.Report.Result != first.Report.Result || second.Report.Status != first.Report.Status {
		t.Errorf("cached verdict differs: %+v vs %+v", second.Report, first.Report)
	}
	if second.Report.ID == first.Report.ID {
		t.Error("each run gets its own report id")
	}

	refreshed, err := r.Execute(ctx, Options{Tokens: k33, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if refreshed.Cached {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteTrace(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{Tokens: k33, Trace: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	steps := res.Report.Steps
	if len(steps) == 0 {
		t.Fatal("trace should record steps")
	}
	root := steps[len(steps)-1]
	if root.Depth != 0 || root.Planar {
		t.Errorf("last step should be the failing root frame: %+v", root)
	}

	// An untraced run must not reuse the traced cache entry and vice versa.
	plain, err := r.Execute(context.Background(), Options{Tokens: k33})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if plain.Cached || len(plain.Report.Steps) != 0 {
		t.Errorf("untraced run: cached %v, steps %d", plain.Cached, len(plain.Report.Steps))
	}
}

func TestExecuteDepthExceeded(t *testing.T) {
	octahedron := []int{6, 6, 1, 3, 1, 5, 2, 4, 2, 6, 3, 5, 4, 6}
	r := newTestRunner(t)

	res, err := r.Execute(context.Background(), Options{Tokens: octahedron, MaxDepth: 1})
	if !errs.Is(err, errs.ErrCodeDepthExceeded) {
		t.Fatalf("error = %v, want DEPTH_EXCEEDED", err)
	}
	if res == nil || res.Report.Status != network.StatusIndeterminate {
		t.Fatalf("expected indeterminate report, got %+v", res)
	}

	stored, err := r.Report(context.Background(), res.Report.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if stored.Status != network.StatusIndeterminate || stored.Error == "" {
		t.Errorf("stored report = %+v", stored)
	}
}

func TestExecuteStoresHistory(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	res, err := r.Execute(ctx, Options{Tokens: []int{5, 1, 2, 5}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got, err := r.Report(ctx, res.Report.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got.Status != network.StatusBuildable || got.Nodes != 5 || got.Highways != 1 {
		t.Errorf("stored report = %+v", got)
	}

	list, err := r.Reports(ctx, 10)
	if err != nil || len(list) != 1 {
		t.Errorf("Reports = %d, %v", len(list), err)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil, log.New(io.Discard))
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{Tokens: []int{5, 1, -2, 5}}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("negative token error = %v", err)
	}
	if _, err := r.Execute(context.Background(), Options{Tokens: []int{5, 1, 2, 5}, MaxDepth: -1}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("negative depth error = %v", err)
	}
}

func TestExecuteEmptyInput(t *testing.T) {
	r := NewRunner(nil, nil, nil, log.New(io.Discard))
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Report.Status != network.StatusUnbuildable || len(res.Report.Problems) == 0 {
		t.Errorf("report = %+v, want malformed", res.Report)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil, log.New(io.Discard))
	if _, err := r.Execute(ctx, Options{Tokens: []int{5, 1, 2, 5}}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	net := network.Build([]int{5, 1, 2, 5})

	dot, err := Render(ctx, net, "DOT", "5 cities: buildable")
	if err != nil {
		t.Fatalf("Render dot: %v", err)
	}
	if !strings.Contains(string(dot), "2 -- 5") || !strings.Contains(string(dot), "5 cities: buildable") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}

	data, err := Render(ctx, net, FormatJSON, "")
	if err != nil {
		t.Fatalf("Render json: %v", err)
	}
	var doc struct {
		Nodes []int    `json:"nodes"`
		Edges [][2]int `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Nodes) != 5 || len(doc.Edges) != 6 {
		t.Errorf("json graph: %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}

	if _, err := Render(ctx, net, "png", ""); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("png error = %v", err)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(6, network.StatusUnbuildable); got != "6 cities: unbuildable" {
		t.Errorf("Title = %q", got)
	}
}
