package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/highway/pkg/buildinfo"
	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/pipeline"
)

// CheckRequest is the body of /v1/check and /v1/render.
type CheckRequest struct {
	Tokens []int    `json:"tokens,omitempty"`
	Nodes  int      `json:"nodes,omitempty"`
	Edges  [][2]int `json:"edges,omitempty"`

	MaxDepth int  `json:"max_depth,omitempty"`
	Refresh  bool `json:"refresh,omitempty"`
	Trace    bool `json:"trace,omitempty"`
}

// TokenList returns the request as a flat island description.
func (c CheckRequest) TokenList() ([]int, error) {
	switch {
	case len(c.Tokens) > 0 && (c.Nodes != 0 || len(c.Edges) > 0):
		return nil, errs.New(errs.ErrCodeInvalidInput, "send either tokens or nodes/edges, not both")
	case len(c.Tokens) > 0:
		return c.Tokens, nil
	case c.Nodes != 0 || len(c.Edges) > 0:
		tokens := make([]int, 0, 2+2*len(c.Edges))
		tokens = append(tokens, c.Nodes, len(c.Edges))
		for _, e := range c.Edges {
			tokens = append(tokens, e[0], e[1])
		}
		return tokens, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "request has no tokens and no nodes")
	}
}

type errorBody struct {
	Error struct {
		Code      errs.Code `json:"code"`
		Message   string    `json:"message"`
		RequestID string    `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, tokens, ok := s.decodeCheck(w, r)
	if !ok {
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Tokens:   tokens,
		MaxDepth: req.MaxDepth,
		Refresh:  req.Refresh,
		Trace:    req.Trace,
	})
	switch {
	case errs.Is(err, errs.ErrCodeDepthExceeded) && res != nil:
		// Indeterminate verdicts still carry a stored report.
		writeJSON(w, errs.HTTPStatus(err), res.Report)
	case err != nil:
		s.writeError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, res.Report)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errs.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	req, tokens, ok := s.decodeCheck(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Execute(r.Context(), pipeline.Options{Tokens: tokens, MaxDepth: req.MaxDepth})
	if err != nil && res == nil {
		s.writeError(w, r, err)
		return
	}

	data, err := pipeline.Render(r.Context(), res.Network, format, pipeline.Title(res.Report.Nodes, res.Report.Status))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Report-ID", res.Report.ID)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errs.ValidateReportID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.runner.Report(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	reports, err := s.runner.Reports(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) decodeCheck(w http.ResponseWriter, r *http.Request) (CheckRequest, []int, bool) {
	var req CheckRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request body"))
		return req, nil, false
	}
	tokens, err := req.TokenList()
	if err != nil {
		s.writeError(w, r, err)
		return req, nil, false
	}
	return req, tokens, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = code
	body.Error.RequestID = RequestIDFromContext(r.Context())
	var coded *errs.Error
	if status == http.StatusInternalServerError && !errors.As(err, &coded) {
		body.Error.Message = "internal error"
	} else {
		body.Error.Message = errs.UserMessage(err)
	}

	if status >= 500 {
		s.logger.Error("request failed", "id", body.Error.RequestID, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz"
	}
}
