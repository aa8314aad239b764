package journal

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value kept at full precision. It marshals as a bare
// JSON number and unmarshals leniently: numbers and numeric strings are
// accepted, anything else (null, "", "abc", objects) decodes as zero.
type Amount struct {
	decimal.Decimal
}

// Zero is the zero Amount.
var Zero = Amount{}

// NewAmount returns an Amount for f.
func NewAmount(f float64) Amount {
	return Amount{decimal.NewFromFloat(f)}
}

// AmountOf wraps an existing decimal.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{d}
}

// ParseAmount parses s. ok is false when s is blank or not a number, in
// which case the returned Amount is zero.
func ParseAmount(s string) (a Amount, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, false
	}
	return Amount{d}, true
}

// Fixed renders the amount rounded to two decimals.
func (a Amount) Fixed() string {
	return a.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = lenientAmount(b)
	return nil
}

func lenientAmount(b []byte) Amount {
	s, ok := unquote(b)
	if !ok {
		return Zero
	}
	a, _ := ParseAmount(s)
	return a
}

// lenientInt decodes an optional integer field. Numbers are truncated
// toward zero, numeric strings are parsed the same way, and anything
// else is treated as absent.
func lenientInt(b []byte) *int {
	s, ok := unquote(b)
	if !ok {
		return nil
	}
	a, ok := ParseAmount(s)
	if !ok {
		return nil
	}
	n := int(a.IntPart())
	return &n
}

// unquote returns the scalar text of a raw JSON value. ok is false for
// null, empty input and quoted strings that fail to unquote.
func unquote(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", false
	}
	s := string(b)
	if b[0] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return "", false
		}
		s = u
	}
	return s, true
}
