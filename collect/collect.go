// Package collect turns user-entered trade fields into ledger records.
//
// Building a record is two-phase: Form.Draft parses the fields into a
// Draft, and Draft.Finalize waits for the screenshot (if any) to be
// decoded before handing back the finished record. A draft whose
// screenshot fails to decode never becomes a record.
package collect

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

const (
	MinConfidence = 1
	MaxConfidence = 10
)

// ErrProfitLossRequired is returned when the profit/loss field is blank.
var ErrProfitLossRequired = errors.New("profit/loss is required")

// Form holds the raw field values as typed.
type Form struct {
	ProfitLoss string
	DailyGain  string
	Strategy   string
	Risk       string
	Platform   string
	Confidence string
	Emotion    string
	Screenshot string // path to an image file, optional
}

// Draft is a parsed record still waiting on its attachment.
type Draft struct {
	Record     journal.TradeRecord
	Attachment string
}

// Draft parses the form. Only a blank profit/loss is rejected; every
// other malformed value degrades: amounts to zero, confidence outside
// 1-10 and unknown emotions to absent.
func (f Form) Draft(now time.Time) (Draft, error) {
	if strings.TrimSpace(f.ProfitLoss) == "" {
		return Draft{}, ErrProfitLossRequired
	}

	rec := journal.TradeRecord{
		ID:       id.At(now),
		Date:     now.UTC(),
		Strategy: strings.TrimSpace(f.Strategy),
		Platform: strings.TrimSpace(f.Platform),
	}
	rec.ProfitLoss, _ = journal.ParseAmount(f.ProfitLoss)
	rec.DailyGain, _ = journal.ParseAmount(f.DailyGain)

	if strings.TrimSpace(f.Risk) != "" {
		risk, _ := journal.ParseAmount(f.Risk)
		if risk.IsNegative() {
			risk = journal.Zero
		}
		rec.Risk = &risk
	}
	if c, ok := ParseConfidence(f.Confidence); ok {
		rec.Confidence = &c
	}
	if e, ok := journal.ParseEmotion(f.Emotion); ok {
		rec.Emotion = &e
	}

	return Draft{Record: rec, Attachment: strings.TrimSpace(f.Screenshot)}, nil
}

// ParseConfidence parses a 1-10 rating.
func ParseConfidence(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < MinConfidence || n > MaxConfidence {
		return 0, false
	}
	return n, true
}

// Decoder turns an attachment path into an embeddable payload.
type Decoder interface {
	Decode(ctx context.Context, path string) (string, error)
}

// Finalize completes the draft. With an attachment it blocks until dec
// has finished; without one it returns immediately.
func (d Draft) Finalize(ctx context.Context, dec Decoder) (journal.TradeRecord, error) {
	rec := d.Record
	if d.Attachment == "" {
		rec.Screenshot = ""
		return rec, nil
	}
	if dec == nil {
		return journal.TradeRecord{}, fmt.Errorf("screenshot %s: no decoder", d.Attachment)
	}
	url, err := dec.Decode(ctx, d.Attachment)
	if err != nil {
		return journal.TradeRecord{}, fmt.Errorf("screenshot %s: %w", d.Attachment, err)
	}
	rec.Screenshot = url
	return rec, nil
}

// Appender receives finished records; *journal.Ledger is one.
type Appender interface {
	Append(journal.TradeRecord) error
}

// Submit finalizes d and appends the result. Nothing is appended when
// the attachment cannot be decoded.
func Submit(ctx context.Context, to Appender, d Draft, dec Decoder) (journal.TradeRecord, error) {
	rec, err := d.Finalize(ctx, dec)
	if err != nil {
		return journal.TradeRecord{}, err
	}
	if err := to.Append(rec); err != nil {
		return journal.TradeRecord{}, err
	}
	return rec, nil
}
