// Package store persists the trade ledger as a single JSON blob under one
// key of a synchronous key-value store.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradejournal/journal"
)

// DefaultKey is the entry the ledger is stored under.
const DefaultKey = "trades"

// KV is a synchronous key-value store.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set replaces the value for key.
	Set(key string, value []byte) error
	Close() error
}

// Kind names a KV backend.
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
)

// Kinds lists the supported backends.
var Kinds = []Kind{KindMemory, KindFile, KindSQLite}

// ErrUnknownKind is returned by Open for an unsupported backend.
var ErrUnknownKind = errors.New("unknown store kind")

// Adapter loads and saves the ledger under one key. It satisfies
// journal.Storage.
type Adapter struct {
	kv  KV
	key string
	log logrus.FieldLogger
}

var _ journal.Storage = (*Adapter)(nil)

// NewAdapter wraps kv. An empty key means DefaultKey; a nil logger
// discards.
func NewAdapter(kv KV, key string, log logrus.FieldLogger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Adapter{kv: kv, key: key, log: log.WithField("key", key)}
}

// Key returns the entry the ledger is stored under.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the ledger. A missing, unreadable or corrupt entry is not an
// error: it is logged and an empty ledger is returned.
func (a *Adapter) Load() []journal.TradeRecord {
	data, ok, err := a.kv.Get(a.key)
	if err != nil {
		a.log.WithError(err).Warn("ledger unreadable, starting empty")
		return []journal.TradeRecord{}
	}
	if !ok {
		a.log.Debug("no stored ledger, starting empty")
		return []journal.TradeRecord{}
	}

	var list []journal.TradeRecord
	if err := json.Unmarshal(data, &list); err != nil {
		a.log.WithError(err).Warn("stored ledger is corrupt, starting empty")
		return []journal.TradeRecord{}
	}
	if list == nil {
		list = []journal.TradeRecord{}
	}
	return list
}

// Save serialises the whole ledger and replaces the stored entry.
func (a *Adapter) Save(list []journal.TradeRecord) error {
	if list == nil {
		list = []journal.TradeRecord{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := a.kv.Set(a.key, data); err != nil {
		return fmt.Errorf("write %q: %w", a.key, err)
	}
	a.log.WithField("trades", len(list)).Debug("ledger saved")
	return nil
}

// Close releases the underlying store.
func (a *Adapter) Close() error {
	return a.kv.Close()
}

// Open builds an Adapter over the backend named by kind. path is the
// directory for KindFile and the database file for KindSQLite.
func Open(kind Kind, path, key string, log logrus.FieldLogger) (*Adapter, error) {
	var (
		kv  KV
		err error
	)
	switch kind {
	case KindMemory:
		kv = NewMemory()
	case KindFile:
		kv, err = NewFile(path)
	case KindSQLite:
		kv, err = NewSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", kind, err)
	}
	return NewAdapter(kv, key, log), nil
}
