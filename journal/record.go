package journal

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is one logged trade. The JSON field names are the
// persisted layout and must not change.
type TradeRecord struct {
	ID         string    `json:"id,omitempty"`
	Date       time.Time `json:"date"`
	ProfitLoss Amount    `json:"profitLoss"`
	DailyGain  Amount    `json:"dailyGain"`
	Strategy   string    `json:"strategy"`
	Risk       *Amount   `json:"risk,omitempty"`
	Platform   string    `json:"platform"`
	Confidence *int      `json:"confidence,omitempty"`
	Emotion    *int      `json:"emotion,omitempty"`
	Screenshot string    `json:"screenshot,omitempty"`
}

// RiskAmount returns the record's risk, zero when absent.
func (t TradeRecord) RiskAmount() decimal.Decimal {
	if t.Risk == nil {
		return decimal.Zero
	}
	return t.Risk.Decimal
}

// RiskReward is profit/loss over risk. ok is false when risk is absent
// or zero; a real ratio of zero comes back with ok set.
func (t TradeRecord) RiskReward() (ratio decimal.Decimal, ok bool) {
	return PerTradeRiskReward(t)
}

// Profitable reports whether the trade closed at or above zero.
func (t TradeRecord) Profitable() bool {
	return !t.ProfitLoss.IsNegative()
}

// HasScreenshot reports whether an image is embedded.
func (t TradeRecord) HasScreenshot() bool {
	return t.Screenshot != ""
}

// Equal compares two records by value. Decimals compare numerically and
// dates by instant, so a record equals its own JSON round trip.
func (t TradeRecord) Equal(o TradeRecord) bool {
	return t.ID == o.ID &&
		t.Date.Equal(o.Date) &&
		t.ProfitLoss.Equal(o.ProfitLoss.Decimal) &&
		t.DailyGain.Equal(o.DailyGain.Decimal) &&
		t.Strategy == o.Strategy &&
		equalAmountPtr(t.Risk, o.Risk) &&
		t.Platform == o.Platform &&
		equalIntPtr(t.Confidence, o.Confidence) &&
		equalIntPtr(t.Emotion, o.Emotion) &&
		t.Screenshot == o.Screenshot
}

func equalAmountPtr(a, b *Amount) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Decimal)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// UnmarshalJSON decodes a record without ever failing on a malformed
// field: bad numbers degrade to zero, bad integers to absent and an
// unreadable date to the zero time. Only structurally invalid JSON
// is an error.
func (t *TradeRecord) UnmarshalJSON(b []byte) error {
	type plain TradeRecord
	aux := struct {
		*plain
		ID         json.RawMessage `json:"id"`
		Date       json.RawMessage `json:"date"`
		Risk       json.RawMessage `json:"risk"`
		Confidence json.RawMessage `json:"confidence"`
		Emotion    json.RawMessage `json:"emotion"`
		Strategy   json.RawMessage `json:"strategy"`
		Platform   json.RawMessage `json:"platform"`
		Screenshot json.RawMessage `json:"screenshot"`
	}{plain: (*plain)(t)}

	*t = TradeRecord{}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	t.ID = lenientString(aux.ID)
	t.Date = parseDate(aux.Date)
	if s, ok := unquote(aux.Risk); ok && strings.TrimSpace(s) != "" {
		a, _ := ParseAmount(s)
		t.Risk = &a
	}
	t.Confidence = lenientInt(aux.Confidence)
	t.Emotion = lenientInt(aux.Emotion)
	t.Strategy = lenientString(aux.Strategy)
	t.Platform = lenientString(aux.Platform)
	t.Screenshot = lenientString(aux.Screenshot)
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate accepts RFC3339 strings, bare dates and epoch milliseconds.
func parseDate(b json.RawMessage) time.Time {
	s, ok := unquote(b)
	if !ok {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// lenientString keeps strings and renders scalar numbers and booleans as
// text; anything else is empty.
func lenientString(b json.RawMessage) string {
	s, ok := unquote(b)
	if !ok || len(s) == 0 {
		return ""
	}
	switch s[0] {
	case '{', '[':
		if len(b) > 0 && b[0] != '"' {
			return ""
		}
	}
	return s
}
