package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVHeader is the column order written by WriteCSV and expected by ReadCSV.
var CSVHeader = []string{
	"id", "date", "profit_loss", "daily_gain", "strategy", "risk",
	"platform", "confidence", "emotion", "risk_reward", "screenshot",
}

// WriteCSV exports records, one row each, after a header row. The
// screenshot column only flags whether an image is attached.
func WriteCSV(w io.Writer, records []TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range records {
		rr := ""
		if v, ok := t.RiskReward(); ok {
			rr = Fixed(v)
		}
		risk := ""
		if t.Risk != nil {
			risk = t.Risk.String()
		}
		shot := ""
		if t.HasScreenshot() {
			shot = "yes"
		}
		if err := cw.Write([]string{
			t.ID,
			t.Date.UTC().Format(time.RFC3339),
			t.ProfitLoss.String(),
			t.DailyGain.String(),
			t.Strategy,
			risk,
			t.Platform,
			optInt(t.Confidence),
			optInt(t.Emotion),
			rr,
			shot,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV imports records written by WriteCSV. Malformed numeric cells
// degrade the same way stored JSON does; a row with an unreadable date
// is an error since the date is the record's identity in time.
func ReadCSV(r io.Reader) ([]TradeRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	if _, ok := col["date"]; !ok {
		return nil, fmt.Errorf("missing date column")
	}
	if _, ok := col["profit_loss"]; !ok {
		return nil, fmt.Errorf("missing profit_loss column")
	}

	var out []TradeRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		date := parseDate([]byte(strconv.Quote(cell("date"))))
		if date.IsZero() {
			return nil, fmt.Errorf("line %d: bad date %q", line, cell("date"))
		}
		t := TradeRecord{
			ID:       cell("id"),
			Date:     date,
			Strategy: cell("strategy"),
			Platform: cell("platform"),
		}
		t.ProfitLoss, _ = ParseAmount(cell("profit_loss"))
		t.DailyGain, _ = ParseAmount(cell("daily_gain"))
		if s := cell("risk"); s != "" {
			a, _ := ParseAmount(s)
			t.Risk = &a
		}
		t.Confidence = lenientInt([]byte(strconv.Quote(cell("confidence"))))
		t.Emotion = lenientInt([]byte(strconv.Quote(cell("emotion"))))
		out = append(out, t)
	}
	return out, nil
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
