package journal

// View is the state handed to the presentation layer after every
// mutation: the visible records, their statistics and the chart series.
type View struct {
	Filter  Range
	Records []TradeRecord
	Summary Summary
	Series  []Point
}

// NewView builds the View for records already filtered by r.
func NewView(r Range, records []TradeRecord) View {
	return View{
		Filter:  r,
		Records: records,
		Summary: Summarize(records),
		Series:  Series(records),
	}
}

// Filtered reports whether the view hides part of the ledger.
func (v View) Filtered() bool {
	return v.Filter.Bounded()
}
