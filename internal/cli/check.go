package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/history"
	"github.com/matzehuels/highway/pkg/network"
	"github.com/matzehuels/highway/pkg/pipeline"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	maxDepth int  // recursion ceiling (0 = config value)
	noCache  bool // disable the verdict cache
	refresh  bool // recompute even if cached
	trace    bool // print one row per recursion frame
	jsonOut  bool // print the report as JSON
	quiet    bool // print only the numeric status
	graph    bool // input is a JSON road map
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Decide whether the requested highways can be built",
		Long: `Check reads an island description and reports whether the requested
highways, together with the coastal ring road, can be built without crossings.

The input is a list of integers "n m x1 y1 ... xm ym": n cities, m highways and
one pair of city numbers per highway. Any non-digit text separates numbers.
With no file, or with "-", the description is read from stdin.
With --graph the input is a JSON road map as written by "render -f json".

Status codes: 1 buildable, 0 unbuildable or malformed, -1 indeterminate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runCheck(cmd.Context(), cmd, path, opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "recursion ceiling (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the verdict cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a verdict is cached")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "show every recursion frame")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the numeric status")
	cmd.Flags().BoolVar(&opts.graph, "graph", false, "read a JSON road map instead of integers")
	cmd.MarkFlagsMutuallyExclusive("json", "quiet")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, cmd *cobra.Command, path string, opts checkOpts) error {
	tokens, err := readInput(cmd.InOrStdin(), path, opts.graph)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(loggerFromContext(ctx))

	interactive := !opts.jsonOut && !opts.quiet
	stop := startSpinner(ctx, cmd.ErrOrStderr(), interactive, "Checking highways...")
	res, err := runner.Execute(ctx, pipeline.Options{
		Tokens:   tokens,
		MaxDepth: c.maxDepth(opts.maxDepth),
		Refresh:  opts.refresh,
		Trace:    opts.trace,
	})
	stop()
	if res == nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d cities", res.Report.Nodes))

	out := cmd.OutOrStdout()
	switch {
	case opts.jsonOut:
		if err := writeReportJSON(out, res.Report); err != nil {
			return err
		}
	case opts.quiet:
		fmt.Fprintln(out, int(res.Report.Status))
	default:
		printReport(res.Report, opts.trace)
		if res.Report.Nodes > 2 {
			printNextStep("Draw it", fmt.Sprintf("highway render %s", displayPath(path)))
		}
	}
	return err
}

// maxDepth resolves the recursion ceiling: flag, then config.
func (c *CLI) maxDepth(flag int) int {
	if flag > 0 {
		return flag
	}
	return c.Config.Check.MaxDepth
}

// readInput reads tokens from path, or from stdin when path is "" or "-".
// With asGraph the input is decoded as a JSON road map.
func readInput(stdin io.Reader, path string, asGraph bool) ([]int, error) {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read input")
		}
		defer f.Close()
		r = f
	}

	read := network.ReadTokens
	if asGraph {
		read = network.ReadGraphTokens
	}
	tokens, err := read(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read input")
	}
	return tokens, nil
}

func displayPath(path string) string {
	if path == "" {
		return "-"
	}
	return path
}

// printReport prints a human-readable report.
func printReport(r *history.Report, trace bool) {
	printStatus(r.Status)
	printStats(r.Nodes, r.Highways, r.Cached)

	for _, p := range r.Problems {
		printWarning("%s", p)
	}
	if r.Error != "" {
		printWarning("%s", r.Error)
	}

	res := r.Result
	switch {
	case res.EulerReject:
		printDetail("more highways than any crossing-free map allows (|E| > 3|V|-6)")
	case res.CycleLength > 0:
		printDetail("root cycle of %d cities, %d pieces, depth %d, %d frames",
			res.CycleLength, res.Pieces, res.Depth, res.Frames)
	}

	if trace && len(r.Steps) > 0 {
		fmt.Println(traceTable(r.Steps))
	}
	printKeyValue("report", StyleHighlight.Render(r.ID))
}

func writeReportJSON(w io.Writer, r *history.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
