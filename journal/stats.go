package journal

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalCount is the number of trades in list.
func TotalCount(list []TradeRecord) int {
	return len(list)
}

// TotalGain sums profit/loss over list.
func TotalGain(list []TradeRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range list {
		sum = sum.Add(t.ProfitLoss.Decimal)
	}
	return sum
}

// TotalRisk sums risk over list; absent risk counts as zero.
func TotalRisk(list []TradeRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range list {
		sum = sum.Add(t.RiskAmount())
	}
	return sum
}

// AverageGain is TotalGain / TotalCount, zero for an empty list.
func AverageGain(list []TradeRecord) decimal.Decimal {
	if len(list) == 0 {
		return decimal.Zero
	}
	return TotalGain(list).Div(decimal.NewFromInt(int64(len(list))))
}

// AggregateRiskReward is TotalGain / TotalRisk, zero when there is no risk.
func AggregateRiskReward(list []TradeRecord) decimal.Decimal {
	risk := TotalRisk(list)
	if risk.IsZero() {
		return decimal.Zero
	}
	return TotalGain(list).Div(risk)
}

// PerTradeRiskReward is profit/loss over risk for one trade. ok is false
// when the trade carries no risk, which is distinct from a ratio of zero.
func PerTradeRiskReward(t TradeRecord) (decimal.Decimal, bool) {
	risk := t.RiskAmount()
	if risk.IsZero() {
		return decimal.Zero, false
	}
	return t.ProfitLoss.Div(risk), true
}

// Summary is the set of statistics shown next to the trade table. Values
// are kept at full precision; round with Fixed at display time only.
type Summary struct {
	Count       int
	Wins        int
	Losses      int
	TotalGain   decimal.Decimal
	AverageGain decimal.Decimal
	TotalRisk   decimal.Decimal
	RiskReward  decimal.Decimal
	WinRate     decimal.Decimal // percent
	Best        decimal.Decimal
	Worst       decimal.Decimal
}

// Summarize computes a Summary over list in a single pass.
func Summarize(list []TradeRecord) Summary {
	s := Summary{
		Count:       len(list),
		TotalGain:   decimal.Zero,
		AverageGain: decimal.Zero,
		TotalRisk:   decimal.Zero,
		RiskReward:  decimal.Zero,
		WinRate:     decimal.Zero,
		Best:        decimal.Zero,
		Worst:       decimal.Zero,
	}

	for i, t := range list {
		pl := t.ProfitLoss.Decimal
		s.TotalGain = s.TotalGain.Add(pl)
		s.TotalRisk = s.TotalRisk.Add(t.RiskAmount())

		switch {
		case pl.IsPositive():
			s.Wins++
		case pl.IsNegative():
			s.Losses++
		}

		if i == 0 || pl.GreaterThan(s.Best) {
			s.Best = pl
		}
		if i == 0 || pl.LessThan(s.Worst) {
			s.Worst = pl
		}
	}

	if s.Count > 0 {
		n := decimal.NewFromInt(int64(s.Count))
		s.AverageGain = s.TotalGain.Div(n)
		s.WinRate = decimal.NewFromInt(int64(s.Wins)).Mul(hundred).Div(n)
	}
	if !s.TotalRisk.IsZero() {
		s.RiskReward = s.TotalGain.Div(s.TotalRisk)
	}
	return s
}

// Fixed rounds d to two decimals for display.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
