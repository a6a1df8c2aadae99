package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path ("-" for stdout)
	format   string // svg, dot or json (default from output extension)
	title    string // diagram title (default: city count and status)
	maxDepth int    // recursion ceiling used to compute the status
	noCache  bool   // disable the verdict cache
	graph    bool   // input is a JSON road map
}

// renderCommand creates the render command for drawing a road network.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the road network as SVG, DOT or JSON",
		Long: `Render draws the coastal ring road and the requested highways.

The format follows the output extension (.svg, .dot, .json) unless --format is
given. Without --output, SVG is written next to the input file and DOT or JSON
go to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runRender(cmd.Context(), cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (\"-\" for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot, json")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "recursion ceiling (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the verdict cache")
	cmd.Flags().BoolVar(&opts.graph, "graph", false, "read a JSON road map instead of integers")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(errs.RenderFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, path string, opts renderOpts) error {
	format, output, err := resolveRenderTarget(path, opts.output, opts.format)
	if err != nil {
		return err
	}

	tokens, err := readInput(cmd.InOrStdin(), path, opts.graph)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	stop := startSpinner(ctx, cmd.ErrOrStderr(), output != "-", "Rendering network...")
	res, err := runner.Execute(ctx, pipeline.Options{Tokens: tokens, MaxDepth: c.maxDepth(opts.maxDepth)})
	if res == nil {
		stop()
		return err
	}

	title := opts.title
	if title == "" {
		title = pipeline.Title(res.Report.Nodes, res.Report.Status)
	}
	data, err := pipeline.Render(ctx, res.Network, format, title)
	stop()
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered %s", res.Report.Status)
	printFile(output)
	return nil
}

// resolveRenderTarget picks the output format and destination.
func resolveRenderTarget(input, output, format string) (string, string, error) {
	format = strings.ToLower(format)
	if format == "" {
		switch ext := strings.TrimPrefix(filepath.Ext(output), "."); ext {
		case "":
			format = pipeline.FormatSVG
		default:
			format = strings.ToLower(ext)
		}
	}
	if err := errs.ValidateFormat(format); err != nil {
		return "", "", err
	}

	if output == "" {
		if format != pipeline.FormatSVG || input == "" || input == "-" {
			return format, "-", nil
		}
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	return format, output, nil
}
