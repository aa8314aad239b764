// Package journal holds the trade ledger: the records, the range
// operations over them and the statistics shown alongside.
package journal

import "errors"

var (
	// ErrNoBound rejects a range clear with neither start nor end set.
	ErrNoBound = errors.New("select a start and/or end date")

	// ErrNotConfirmed is returned when a clear-all was not approved.
	ErrNotConfirmed = errors.New("clear all was not confirmed")

	// ErrNotFound is returned by Get for an unknown id.
	ErrNotFound = errors.New("trade not found")
)

// Storage persists the full ledger. Load never fails: missing or
// unreadable state comes back as an empty ledger. Save replaces the
// stored ledger as a whole.
type Storage interface {
	Load() []TradeRecord
	Save([]TradeRecord) error
}

// Confirmer approves destructive operations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	if f == nil {
		return false
	}
	return f(prompt)
}

// Always approves every prompt; for scripted use with --yes.
var Always Confirmer = ConfirmFunc(func(string) bool { return true })
