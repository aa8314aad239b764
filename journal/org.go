package journal

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block suitable for
// pasting into a journal. Structured facts live in the PROPERTIES drawer;
// the Thesis/Execution/Review headings are left for notes.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s (%s)", orDash(t.Strategy), ShortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":PROFIT_LOSS: %s\n", t.ProfitLoss.Fixed())
	fmt.Fprintf(&b, ":DAILY_GAIN: %s\n", t.DailyGain.Fixed())
	fmt.Fprintf(&b, ":STRATEGY: %s\n", t.Strategy)
	fmt.Fprintf(&b, ":PLATFORM: %s\n", t.Platform)
	if t.Risk != nil {
		fmt.Fprintf(&b, ":RISK: %s\n", t.Risk.Fixed())
	}
	if rr, ok := t.RiskReward(); ok {
		fmt.Fprintf(&b, ":RISK_REWARD: %s\n", Fixed(rr))
	}
	if t.Confidence != nil {
		fmt.Fprintf(&b, ":CONFIDENCE: %d\n", *t.Confidence)
	}
	if t.Emotion != nil {
		fmt.Fprintf(&b, ":EMOTION: %s\n", EmotionName(*t.Emotion))
	}
	if t.HasScreenshot() {
		b.WriteString(":SCREENSHOT: attached\n")
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// ShortID is the last eight characters of an id. A ULID's leading
// characters are its timestamp, shared by trades entered close together,
// so the tail is what tells them apart.
func ShortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var summaryOrgFuncs = template.FuncMap{
	"fixed": Fixed,
	"orTime": func(t time.Time) string {
		if t.IsZero() {
			return "*"
		}
		return t.Format("2006-01-02")
	},
	"neg": func(d decimal.Decimal) bool { return d.IsNegative() },
}

var summaryOrg = template.Must(template.New("summary").Funcs(summaryOrgFuncs).Parse(SummaryOrgTemplate))

// FormatViewOrg renders a View as an Org-mode report: a summary heading
// with the statistics drawer followed by one block per trade.
func FormatViewOrg(v View) (string, error) {
	buf := new(bytes.Buffer)
	if err := summaryOrg.Execute(buf, v); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	if len(v.Records) > 0 {
		buf.WriteString("\n")
		buf.WriteString(FormatTradesOrg(v.Records))
	}
	return buf.String(), nil
}

const SummaryOrgTemplate = `* JOURNAL: {{orTime .Filter.Start}} .. {{orTime .Filter.End}}
:PROPERTIES:
:TRADES:      {{.Summary.Count}}
:WINS:        {{.Summary.Wins}}
:LOSSES:      {{.Summary.Losses}}
:WIN_RATE:    {{fixed .Summary.WinRate}}
:TOTAL_GAIN:  {{fixed .Summary.TotalGain}}
:AVG_GAIN:    {{fixed .Summary.AverageGain}}
:RISK_REWARD: {{fixed .Summary.RiskReward}}
:END:

** Performance Summary
- Total Gain:   *{{fixed .Summary.TotalGain}}*{{if neg .Summary.TotalGain}} (loss){{end}}
- Average Gain: *{{fixed .Summary.AverageGain}}*
- Risk/Reward:  *{{fixed .Summary.RiskReward}}*
- Best Trade:   *{{fixed .Summary.Best}}*
- Worst Trade:  *{{fixed .Summary.Worst}}*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Summary.Wins}} |
| Losses  | {{.Summary.Losses}} |
| Total   | {{.Summary.Count}} |
`
