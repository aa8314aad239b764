package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rustyeddy/tradejournal/journal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	profitStyle = cellStyle.Foreground(lipgloss.Color("#10B981"))
	lossStyle   = cellStyle.Foreground(lipgloss.Color("#EF4444"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	summaryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().Bold(true).Width(14)
)

var tableHeaders = []string{
	"#", "ID", "Date", "P/L", "Daily %", "Strategy", "Risk", "R:R", "Platform", "Conf", "Emotion", "Shot",
}

// plColumn is the index of the profit/loss column.
const plColumn = 3

// renderTable draws records as a table, one row per trade in ledger order.
func renderTable(records []journal.TradeRecord) string {
	if len(records) == 0 {
		return mutedStyle.Render("No trades recorded.")
	}

	rows := make([][]string, len(records))
	for i, t := range records {
		rows[i] = tableRow(i+1, t)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == plColumn && row >= 0 && row < len(records) {
				pl := records[row].ProfitLoss
				switch {
				case pl.IsPositive():
					return profitStyle
				case pl.IsNegative():
					return lossStyle
				}
			}
			return cellStyle
		})

	return tbl.String()
}

func tableRow(n int, t journal.TradeRecord) []string {
	rr := "-"
	if ratio, ok := journal.PerTradeRiskReward(t); ok {
		rr = journal.Fixed(ratio)
	}
	risk := "-"
	if t.Risk != nil {
		risk = t.Risk.Fixed()
	}
	conf := "-"
	if t.Confidence != nil {
		conf = strconv.Itoa(*t.Confidence)
	}
	emotion := "-"
	if t.Emotion != nil {
		emotion = journal.EmotionName(*t.Emotion)
	}
	shot := ""
	if t.HasScreenshot() {
		shot = "yes"
	}
	return []string{
		strconv.Itoa(n),
		dash(journal.ShortID(t.ID)),
		formatDate(t),
		t.ProfitLoss.Fixed(),
		t.DailyGain.Fixed(),
		dash(t.Strategy),
		risk,
		rr,
		dash(t.Platform),
		conf,
		emotion,
		shot,
	}
}

// renderSummary draws the statistics panel.
func renderSummary(v journal.View) string {
	s := v.Summary

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	if v.Filtered() {
		line("Range", v.Filter.String())
	}
	line("Trades", strconv.Itoa(s.Count))
	line("Total gain", signed(journal.Fixed(s.TotalGain), s.TotalGain.Sign()))
	line("Average gain", signed(journal.Fixed(s.AverageGain), s.AverageGain.Sign()))
	line("Risk/Reward", journal.Fixed(s.RiskReward))
	line("Win rate", journal.Fixed(s.WinRate)+"%")
	line("Wins/Losses", fmt.Sprintf("%d/%d", s.Wins, s.Losses))
	line("Best", journal.Fixed(s.Best))
	line("Worst", journal.Fixed(s.Worst))

	return summaryStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func signed(s string, sign int) string {
	switch {
	case sign > 0:
		return profitStyle.UnsetPadding().Render(s)
	case sign < 0:
		return lossStyle.UnsetPadding().Render(s)
	}
	return s
}

func formatDate(t journal.TradeRecord) string {
	if t.Date.IsZero() {
		return "-"
	}
	return t.Date.Local().Format("2006-01-02 15:04")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
