package journal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Point is one chart sample.
type Point struct {
	Label string
	Value decimal.Decimal
}

// Float returns the value for plotting.
func (p Point) Float() float64 {
	f, _ := p.Value.Float64()
	return f
}

// Series maps list to chart points labelled "Trade 1", "Trade 2", ... in
// ledger order, valued at each trade's profit/loss.
func Series(list []TradeRecord) []Point {
	out := make([]Point, len(list))
	for i, t := range list {
		out[i] = Point{
			Label: fmt.Sprintf("Trade %d", i+1),
			Value: t.ProfitLoss.Decimal,
		}
	}
	return out
}

// Cumulative maps list to running totals of profit/loss, labelled like
// Series.
func Cumulative(list []TradeRecord) []Point {
	out := make([]Point, len(list))
	sum := decimal.Zero
	for i, t := range list {
		sum = sum.Add(t.ProfitLoss.Decimal)
		out[i] = Point{
			Label: fmt.Sprintf("Trade %d", i+1),
			Value: sum,
		}
	}
	return out
}
