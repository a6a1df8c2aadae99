package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/history"
)

// historyCommand creates the history command for browsing stored reports.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored check reports",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyPathCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			reports, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				printInfo("No reports yet")
				return nil
			}
			for _, r := range reports {
				printReportLine(r)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "maximum number of reports")
	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	var jsonOut, trace bool

	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show one report",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeReportIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.loadReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeReportJSON(cmd.OutOrStdout(), r)
			}
			fmt.Println(StyleTitle.Render("Report " + r.ID))
			printKeyValue("created", r.CreatedAt.Local().Format(time.DateTime))
			printKeyValue("input", fmt.Sprint(r.Tokens))
			printReport(r, trace)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&trace, "trace", false, "show recorded recursion frames")
	return cmd
}

// historyPathCommand creates the "history path" subcommand.
func (c *CLI) historyPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the report directory (file backend only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			fs, ok := store.(*history.FileStore)
			if !ok {
				printWarning("History backend %q has no directory", c.Config.History.Backend)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), fs.Path())
			return nil
		},
	}
}

// completeReportIDs offers the IDs of recent reports.
func (c *CLI) completeReportIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := c.newHistory(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer store.Close()

	reports, err := store.List(ctx, history.DefaultListLimit)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, fmt.Sprintf("%s\t%d cities, %s", r.ID, r.Nodes, r.Status))
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func (c *CLI) loadReport(ctx context.Context, id string) (*history.Report, error) {
	if err := errs.ValidateReportID(id); err != nil {
		return nil, err
	}
	store, err := c.newHistory(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Get(ctx, id)
}

// printReportLine prints a one-line report summary.
func printReportLine(r *history.Report) {
	style, icon := statusStyle(r.Status)
	fmt.Printf("%s %s  %s  %s\n",
		style.Render(icon),
		StyleValue.Render(r.ID),
		StyleDim.Render(r.CreatedAt.Local().Format(time.DateTime)),
		StyleDim.Render(fmt.Sprintf("%d cities · %d highways · %s", r.Nodes, r.Highways, r.Status)))
}
