package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/attach"
	"github.com/rustyeddy/tradejournal/chart"
	"github.com/rustyeddy/tradejournal/journal"
)

func newListCmd(rc *RootConfig) *cobra.Command {
	var (
		rf  rangeFlags
		org bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades, optionally within a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.Range()
			if err != nil {
				return err
			}
			l, closeFn, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeFn()

			v := l.View(r)
			out := cmd.OutOrStdout()
			if org {
				fmt.Fprint(out, journal.FormatTradesOrg(v.Records))
				return nil
			}
			fmt.Fprintln(out, renderTable(v.Records))
			fmt.Fprintln(out, renderSummary(v))
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&org, "org", false, "Print org-mode entries instead of a table")
	return cmd
}

func newStatsCmd(rc *RootConfig) *cobra.Command {
	var (
		rf  rangeFlags
		org bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals, average gain and risk/reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.Range()
			if err != nil {
				return err
			}
			l, closeFn, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeFn()

			v := l.View(r)
			out := cmd.OutOrStdout()
			if org {
				s, err := journal.FormatViewOrg(v)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
				return nil
			}
			fmt.Fprintln(out, renderSummary(v))
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&org, "org", false, "Print an org-mode summary")
	return cmd
}

func newChartCmd(rc *RootConfig) *cobra.Command {
	var (
		rf         rangeFlags
		width      int
		height     int
		cumulative bool
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Plot profit/loss per trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.Range()
			if err != nil {
				return err
			}

			c := chart.New(chart.Size{Width: rc.cfg.Chart.Width, Height: rc.cfg.Chart.Height})
			w, h := c.Size().Width, c.Size().Height
			if cmd.Flags().Changed("width") {
				w = width
			}
			if cmd.Flags().Changed("height") {
				h = height
			}
			if err := c.Resize(w, h); err != nil {
				return err
			}

			l, closeFn, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeFn()

			v := l.View(r)
			points := v.Series
			if cumulative || (rc.cfg.Chart.Cumulative && !cmd.Flags().Changed("cumulative")) {
				points = journal.Cumulative(v.Records)
				c.Title = "Cumulative Profit/Loss"
			}
			c.Draw(points)
			fmt.Fprintln(cmd.OutOrStdout(), c.Render())
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVar(&width, "width", chart.DefaultWidth, "Chart width in columns")
	cmd.Flags().IntVar(&height, "height", chart.DefaultHeight, "Chart height in rows")
	cmd.Flags().BoolVar(&cumulative, "cumulative", false, "Plot the running total")
	return cmd
}

func newShowCmd(rc *RootConfig) *cobra.Command {
	var shotOut string

	cmd := &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade in org-mode format",
		Long: `Show one trade. The id may be the full id or the short id printed by
list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeFn, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeFn()

			rec, err := findTrade(l, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))

			if shotOut == "" {
				return nil
			}
			if !rec.HasScreenshot() {
				return fmt.Errorf("trade %s has no screenshot", rec.ID)
			}
			path, err := writeScreenshot(rec, shotOut)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Screenshot written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&shotOut, "screenshot-out", "", "Write the embedded screenshot to this path (extension added if missing)")
	return cmd
}

// findTrade resolves a full id, or a unique short id as printed by list
// and in org headings.
func findTrade(l *journal.Ledger, ref string) (journal.TradeRecord, error) {
	if rec, err := l.Get(ref); err == nil {
		return rec, nil
	}
	ref = strings.ToUpper(ref)
	var matches []journal.TradeRecord
	for _, t := range l.Records() {
		if t.ID != "" && strings.HasSuffix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return journal.TradeRecord{}, fmt.Errorf("trade %q: %w", ref, journal.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return journal.TradeRecord{}, fmt.Errorf("trade %q is ambiguous: %d matches", ref, len(matches))
}

func writeScreenshot(rec journal.TradeRecord, path string) (string, error) {
	mediaType, data, err := attach.ParseDataURL(rec.Screenshot)
	if err != nil {
		return "", fmt.Errorf("trade %s screenshot: %w", rec.ID, err)
	}
	if filepath.Ext(path) == "" {
		path += attach.Extension(mediaType)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}
