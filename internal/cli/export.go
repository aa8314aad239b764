package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

func newExportCmd(rc *RootConfig) *cobra.Command {
	var (
		rf     rangeFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades as csv, org or json",
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
			if output == "" {
				err = export(cmd.OutOrStdout(), format, v)
			} else {
				var f *os.File
				f, err = os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				err = exportTo(f, output, format, v)
			}
			if err != nil {
				return err
			}
			rc.log.WithField("format", format).WithField("trades", len(v.Records)).Info("exported")
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv|org|json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// exportTo writes v to wc and closes it, returning the close error.
func exportTo(wc io.WriteCloser, name, format string, v journal.View) error {
	if err := export(wc, format, v); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func export(w io.Writer, format string, v journal.View) error {
	switch format {
	case "csv":
		return journal.WriteCSV(w, v.Records)
	case "org":
		s, err := journal.FormatViewOrg(v)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v.Records)
	}
	return fmt.Errorf("unknown format %q (want csv, org or json)", format)
}

func newImportCmd(rc *RootConfig) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append trades from a csv or json export",
		Long: `Append trades from a file written by export. The format is taken from
the file extension unless --format is given. Trades whose id is already in
the journal are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(path), ".")
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := readRecords(f, format)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}

			l, closeFn, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeFn()

			added, skipped := 0, 0
			for _, rec := range records {
				if rec.ID != "" {
					if _, err := l.Get(rec.ID); err == nil {
						skipped++
						continue
					}
				}
				if err := l.Append(rec); err != nil {
					return fmt.Errorf("import %s: %d added before: %w", path, added, err)
				}
				added++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d trade(s), skipped %d.\n", added, skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: csv|json")
	return cmd
}

func readRecords(r io.Reader, format string) ([]journal.TradeRecord, error) {
	switch format {
	case "csv":
		return journal.ReadCSV(r)
	case "json":
		var list []journal.TradeRecord
		if err := json.NewDecoder(r).Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("unknown format %q (want csv or json)", format)
}
