package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

func newClearCmd(rc *RootConfig) *cobra.Command {
	var (
		rf  rangeFlags
		all bool
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all trades, or the trades within a date range",
		Long: `Delete trades.

With --all every trade is deleted after confirmation (or --yes). With
--from and/or --to only the trades inside that inclusive range are
deleted; list with the same flags shows exactly what will go.

Examples:
  tradejournal clear --all
  tradejournal clear --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.Range()
			if err != nil {
				return err
			}
			if all && r.Bounded() {
				return errors.New("--all cannot be combined with --from/--to")
			}
			if !all && !r.Bounded() {
				return fmt.Errorf("%w (or pass --all)", journal.ErrNoBound)
			}

			l, closeFn, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			before := l.Len()

			if all {
				var promptErr error
				confirm := journal.Always
				if !yes {
					confirm = journal.ConfirmFunc(func(prompt string) bool {
						ok, err := rc.confirm(prompt)
						promptErr = err
						return ok
					})
				}
				err := l.ClearAll(confirm)
				if promptErr != nil {
					return promptErr
				}
				if errors.Is(err, journal.ErrNotConfirmed) {
					fmt.Fprintln(out, "Nothing cleared.")
					return nil
				}
				if err != nil {
					return err
				}
			} else if err := l.ClearRange(r); err != nil {
				return err
			}

			fmt.Fprintf(out, "Cleared %d trade(s), %d remaining.\n", before-l.Len(), l.Len())
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Delete every trade")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
