package journal

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

const clearAllPrompt = "Are you sure you want to clear all trades?"

// Ledger is the authoritative in-memory list of trades. It is loaded once
// from its Storage and written through on every mutation: the next state
// is saved first and only committed in memory once the save succeeded.
//
// A Ledger has a single writer and no locking.
type Ledger struct {
	storage Storage
	records []TradeRecord
	log     logrus.FieldLogger
	now     func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for mutation traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(lg *Ledger) {
		if l != nil {
			lg.log = l
		}
	}
}

// WithClock overrides the clock used to stamp undated records.
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) {
		if now != nil {
			lg.now = now
		}
	}
}

// Open loads the ledger from s.
func Open(s Storage, opts ...Option) *Ledger {
	l := &Ledger{
		storage: s,
		log:     discardLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.records = s.Load()
	l.log.WithField("trades", len(l.records)).Debug("ledger loaded")
	return l
}

func discardLogger() logrus.FieldLogger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	return lg
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of every record in display order.
func (l *Ledger) Records() []TradeRecord {
	return slices.Clone(l.records)
}

// Get returns the record with the given id.
func (l *Ledger) Get(tradeID string) (TradeRecord, error) {
	for _, t := range l.records {
		if t.ID == tradeID {
			return t, nil
		}
	}
	return TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
}

// Append adds rec at the end of the ledger and persists it. An undated
// record is stamped with the current time and a record without an id
// gets one derived from its date.
func (l *Ledger) Append(rec TradeRecord) error {
	if rec.Date.IsZero() {
		rec.Date = l.now().UTC()
	}
	if rec.ID == "" {
		rec.ID = id.At(rec.Date)
	}

	next := append(slices.Clone(l.records), rec)
	if err := l.commit("append", next); err != nil {
		return err
	}
	l.log.WithFields(logrus.Fields{
		"id":         rec.ID,
		"profitLoss": rec.ProfitLoss.String(),
	}).Info("trade recorded")
	return nil
}

// ClearAll empties the ledger once c approves. Without approval it
// returns ErrNotConfirmed and nothing changes.
func (l *Ledger) ClearAll(c Confirmer) error {
	if c == nil || !c.Confirm(clearAllPrompt) {
		return ErrNotConfirmed
	}
	removed := len(l.records)
	if err := l.commit("clear all", []TradeRecord{}); err != nil {
		return err
	}
	l.log.WithField("removed", removed).Info("ledger cleared")
	return nil
}

// ClearRange removes every record inside r and keeps the rest. r must
// have at least one bound; otherwise ErrNoBound is returned and the
// ledger is unchanged.
func (l *Ledger) ClearRange(r Range) error {
	if !r.Bounded() {
		return ErrNoBound
	}
	next := Filter(l.records, func(t TradeRecord) bool { return !r.Contains(t.Date) })
	removed := len(l.records) - len(next)
	if err := l.commit("clear range", next); err != nil {
		return err
	}
	l.log.WithFields(logrus.Fields{
		"range":   r.String(),
		"removed": removed,
	}).Info("range cleared")
	return nil
}

// QueryRange returns the records inside r in ledger order. The unbounded
// range returns the whole ledger.
func (l *Ledger) QueryRange(r Range) []TradeRecord {
	return Filter(l.records, func(t TradeRecord) bool { return r.Contains(t.Date) })
}

// View returns what the presentation layer shows for r.
func (l *Ledger) View(r Range) View {
	return NewView(r, l.QueryRange(r))
}

func (l *Ledger) commit(op string, next []TradeRecord) error {
	if err := l.storage.Save(next); err != nil {
		l.log.WithError(err).WithField("op", op).Warn("ledger not saved")
		return fmt.Errorf("%s: save ledger: %w", op, err)
	}
	l.records = next
	return nil
}
