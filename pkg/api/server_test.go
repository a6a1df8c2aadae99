package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/history"
	"github.com/matzehuels/highway/pkg/network"
	"github.com/matzehuels/highway/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := history.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(nil, nil, store, logger), logger)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) history.Report {
	t.Helper()
	var r history.Report
	if err := json.NewDecoder(rec.Body).Decode(&r); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	return r
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("missing request id: %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid request id should be replaced")
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		body string
		want network.Status
	}{
		{"tokens", `{"tokens":[5,1,2,5]}`, network.StatusBuildable},
		{"structured", `{"nodes":6,"edges":[[1,4],[2,5],[3,6]]}`, network.StatusUnbuildable},
		{"k4", `{"nodes":4,"edges":[[1,3],[2,4]]}`, network.StatusBuildable},
		{"out of range", `{"nodes":4,"edges":[[1,7]]}`, network.StatusUnbuildable},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/check", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
			}
			if r := decodeReport(t, rec); r.Status != tt.want {
				t.Errorf("report status = %v, want %v", r.Status, tt.want)
			}
		})
	}
}

func TestCheckDepthExceeded(t *testing.T) {
	body := `{"tokens":[6,6,1,3,1,5,2,4,2,6,3,5,4,6],"max_depth":1}`
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/check", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if r := decodeReport(t, rec); r.Status != network.StatusIndeterminate || r.ID == "" {
		t.Errorf("report = %+v", r)
	}
}

func TestCheckBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errs.Code
	}{
		{"not json", `{`, errs.ErrCodeInvalidFormat},
		{"unknown field", `{"tokenz":[1]}`, errs.ErrCodeInvalidFormat},
		{"empty", `{}`, errs.ErrCodeInvalidInput},
		{"both forms", `{"tokens":[5,1,2,5],"nodes":5}`, errs.ErrCodeInvalidInput},
		{"negative", `{"tokens":[5,1,-2,5]}`, errs.ErrCodeInvalidInput},
		{"billion cities", `{"tokens":[1000000000,1,1,2]}`, errs.ErrCodeInvalidInput},
		{"billion cities as edges", `{"nodes":1000000000,"edges":[[1,2]]}`, errs.ErrCodeInvalidInput},
		{"too many highways", `{"tokens":[5,5000,1,3]}`, errs.ErrCodeInvalidInput},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/check", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
			}
			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tt.code || body.Error.RequestID == "" {
				t.Errorf("error = %+v, want code %s", body.Error, tt.code)
			}
		})
	}
}

func TestRenderRejectsHugeIsland(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/render?format=dot", `{"tokens":[1000000000,1,1,2]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestReports(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/check", `{"tokens":[5,1,2,5]}`)
	created := decodeReport(t, rec)

	rec = do(t, s, http.MethodGet, "/v1/reports/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := decodeReport(t, rec); got.ID != created.ID || got.Status != network.StatusBuildable {
		t.Errorf("report = %+v", got)
	}

	rec = do(t, s, http.MethodGet, "/v1/reports/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/v1/reports/nope", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/v1/reports?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Reports []history.Report `json:"reports"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Reports) != 1 || list.Reports[0].ID != created.ID {
		t.Errorf("list = %+v", list.Reports)
	}

	rec = do(t, s, http.MethodGet, "/v1/reports?limit=x", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", rec.Code)
	}
}

func TestRenderDOT(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/render?format=dot", `{"tokens":[5,1,2,5]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Header().Get("X-Report-ID") == "" {
		t.Error("missing X-Report-ID")
	}
	if !strings.Contains(rec.Body.String(), "2 -- 5") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestRenderBadFormat(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/render?format=gif", `{"tokens":[5,1,2,5]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestTokenList(t *testing.T) {
	tokens, err := CheckRequest{Nodes: 5, Edges: [][2]int{{2, 5}, {1, 3}}}.TokenList()
	if err != nil {
		t.Fatalf("TokenList: %v", err)
	}
	want := []int{5, 2, 2, 5, 1, 3}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("tokens = %v, want %v", tokens, want)
		}
	}
}
