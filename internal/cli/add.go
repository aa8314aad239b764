package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/collect"
	"github.com/rustyeddy/tradejournal/journal"
)

func newAddCmd(rc *RootConfig) *cobra.Command {
	var (
		form        collect.Form
		date        string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trade",
		Long: `Record a trade from flags or, with -i, from interactive prompts.

A screenshot is read and embedded before the trade is saved; if it cannot
be read nothing is recorded.

Examples:
  tradejournal add --pl 125.50 --strategy breakout --risk 50
  tradejournal add --pl -40 --emotion anxious --screenshot chart.png
  tradejournal add -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if err := askForm(&form); err != nil {
					return err
				}
			}

			when := time.Now()
			if date != "" {
				start, _, err := parseBound(time.Local, date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				when = start
			}

			draft, err := form.Draft(when)
			if err != nil {
				return err
			}

			l, closeFn, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeFn()

			rec, err := collect.Submit(cmd.Context(), l, draft, rc.decoder())
			if err != nil {
				return fmt.Errorf("add trade: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded trade %s (%s)\n", rec.ID, rec.ProfitLoss.Fixed())
			fmt.Fprintln(out, renderSummary(l.View(journal.All)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.ProfitLoss, "pl", "", "Profit or loss of the trade (required)")
	f.StringVar(&form.DailyGain, "daily-gain", "", "Daily gain in percent")
	f.StringVar(&form.Strategy, "strategy", "", "Strategy name")
	f.StringVar(&form.Risk, "risk", "", "Amount risked")
	f.StringVar(&form.Platform, "platform", "", "Trading platform")
	f.StringVar(&form.Confidence, "confidence", "", "Confidence 1-10")
	f.StringVar(&form.Emotion, "emotion", "", "Emotion (calm, confident, anxious, fearful, greedy, frustrated, euphoric)")
	f.StringVar(&form.Screenshot, "screenshot", "", "Path to a screenshot image")
	f.StringVar(&date, "date", "", "Trade date (YYYY-MM-DD or RFC3339); defaults to now")
	f.BoolVarP(&interactive, "interactive", "i", false, "Prompt for each field")

	return cmd
}
