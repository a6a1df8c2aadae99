package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/highway/pkg/cache"
	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/history"
	"github.com/matzehuels/highway/pkg/network"
	"github.com/matzehuels/highway/pkg/observability"
	"github.com/matzehuels/highway/pkg/planarity"
)

const keyTypeVerdict = "verdict"

// Runner encapsulates check execution with caching and history.
// Both CLI and API use it so verdicts are computed and stored the same way.
//
// The Runner holds no per-check state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	History history.Store
	Logger  *log.Logger

	// TTL is how long verdicts stay cached. Zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If store is nil, a NullStore is used (history disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, store history.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if store == nil {
		store = history.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		History: store,
		Logger:  logger,
	}
}

// Execute builds the network, decides the verdict and stores a report.
//
// Malformed input and non-planar networks are verdicts, not errors. An
// indeterminate verdict (recursion ceiling hit) is returned together with an
// error coded DEPTH_EXCEEDED; the report is stored in both cases.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	start := time.Now()

	net := network.Build(opts.Tokens)
	if net.Malformed() {
		logger.Warn("malformed input", "problems", len(net.Problems), "first", net.Problems[0])
	}

	v, cached, err := r.verdict(ctx, net, opts)
	if err != nil {
		return nil, err
	}

	report := &history.Report{
		ID:        history.NewID(),
		CreatedAt: start.UTC(),
		Tokens:    opts.Tokens,
		Nodes:     net.Nodes,
		Highways:  len(net.Requested),
		Status:    v.Status,
		Problems:  net.Problems,
		Rejected:  net.Rejected,
		Result:    v.Result,
		Steps:     v.Steps,
		Error:     v.Error,
		Cached:    cached,
	}
	report.Duration = time.Since(start)

	if err := r.History.Save(ctx, report); err != nil {
		logger.Warn("failed to save report", "id", report.ID, "error", err)
	}

	logger.Info("checked network",
		"id", report.ID,
		"nodes", net.Nodes,
		"highways", report.Highways,
		"status", v.Status,
		"cached", cached,
		"duration", report.Duration)

	res := &Result{Report: report, Network: net, Cached: cached, Duration: report.Duration}
	if v.Status == network.StatusIndeterminate {
		return res, errs.New(errs.ErrCodeDepthExceeded, "%s", v.Error)
	}
	return res, nil
}

// verdict returns the cached verdict for net or computes and caches it.
func (r *Runner) verdict(ctx context.Context, net *network.Network, opts Options) (verdict, bool, error) {
	key := r.Keyer.VerdictKey(opts.Tokens, cache.VerdictKeyOpts{MaxDepth: opts.MaxDepth, Trace: opts.Trace})
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var v verdict
			if err := json.Unmarshal(data, &v); err == nil {
				hooks.OnCacheHit(ctx, keyTypeVerdict)
				return v, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.logger(opts).Debug("cache lookup failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, keyTypeVerdict)
	}

	if err := ctx.Err(); err != nil {
		return verdict{}, false, err
	}

	v, err := r.check(ctx, net, opts)
	if err != nil {
		return verdict{}, false, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err == nil {
			hooks.OnCacheSet(ctx, keyTypeVerdict, len(data))
		}
	}
	return v, false, nil
}

func (r *Runner) check(ctx context.Context, net *network.Network, opts Options) (verdict, error) {
	hooks := observability.Pipeline()
	hooks.OnCheckStart(ctx, net.Nodes, len(net.Requested))
	start := time.Now()

	var v verdict
	checker := planarity.NewChecker(opts.MaxDepth, r.logger(opts))
	if opts.Trace {
		checker.Trace = func(s planarity.Step) { v.Steps = append(v.Steps, s) }
	}

	status, res, err := net.Evaluate(checker)
	hooks.OnCheckComplete(ctx, int(status), res.Frames, time.Since(start), err)

	switch {
	case errors.Is(err, planarity.ErrDepthExceeded):
		v.Error = err.Error()
	case err != nil:
		return verdict{}, errs.Wrap(errs.ErrCodeInternal, err, "planarity check")
	}
	v.Status, v.Result = status, res
	return v, nil
}

// Report fetches a stored report.
func (r *Runner) Report(ctx context.Context, id string) (*history.Report, error) {
	return r.History.Get(ctx, id)
}

// Reports lists stored reports, newest first.
func (r *Runner) Reports(ctx context.Context, limit int) ([]*history.Report, error) {
	return r.History.List(ctx, limit)
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	return errors.Join(r.Cache.Close(), r.History.Close())
}

func (r *Runner) ttl() time.Duration {
	if r.TTL <= 0 {
		return cache.DefaultTTL
	}
	return r.TTL
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
