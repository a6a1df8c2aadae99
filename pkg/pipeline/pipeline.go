// Package pipeline runs highway checks end to end.
//
// The CLI and the API server both go through a [Runner], which:
//
//  1. Validates the raw tokens and builds the road network
//  2. Looks the verdict up in the cache, or runs the planarity check
//  3. Stores a report in the history store
//  4. Optionally renders the network (DOT, SVG or JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Tokens: tokens})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Report.Status)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/history"
	"github.com/matzehuels/highway/pkg/network"
	"github.com/matzehuels/highway/pkg/planarity"
)

// Format constants for render output.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Options configures one check.
type Options struct {
	// Tokens is the island description: n m x1 y1 ... xm ym.
	Tokens []int `json:"tokens"`

	// MaxDepth bounds the planarity recursion. Zero means
	// planarity.DefaultMaxDepth.
	MaxDepth int `json:"max_depth,omitempty"`

	// Refresh skips the cache lookup. The fresh verdict is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Trace records one step per recursion frame in the report.
	Trace bool `json:"trace,omitempty"`

	// Logger overrides the runner's logger for this check.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the tokens and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errs.ValidateTokens(o.Tokens); err != nil {
		return err
	}
	if o.MaxDepth < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max depth must not be negative")
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = planarity.DefaultMaxDepth
	}
	return nil
}

// Result contains the outputs of a check.
type Result struct {
	// Report is the stored summary of the check.
	Report *history.Report

	// Network is the ingested road network.
	Network *network.Network

	// Cached is true when the verdict came from the cache.
	Cached bool

	// Duration covers building, checking and storing.
	Duration time.Duration
}

// verdict is the cached part of a report.
type verdict struct {
	Status network.Status   `json:"status"`
	Result planarity.Result `json:"result"`
	Steps  []planarity.Step `json:"steps,omitempty"`
	Error  string           `json:"error,omitempty"`
}
