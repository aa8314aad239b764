package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// memStorage is an in-package Storage that can be told to fail.
type memStorage struct {
	saved   []TradeRecord
	saves   int
	failing bool
}

var errDiskFull = errors.New("disk full")

func (m *memStorage) Load() []TradeRecord {
	return append([]TradeRecord(nil), m.saved...)
}

func (m *memStorage) Save(list []TradeRecord) error {
	if m.failing {
		return errDiskFull
	}
	m.saves++
	m.saved = append([]TradeRecord(nil), list...)
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(f float64) *Amount {
	a := NewAmount(f)
	return &a
}

func intp(n int) *int {
	return &n
}

func trade(date time.Time, pl float64) TradeRecord {
	return TradeRecord{Date: date, ProfitLoss: NewAmount(pl)}
}

func assertRecordsEqual(t *testing.T, want, got []TradeRecord) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "record %d differs:\nwant %+v\ngot  %+v", i, want[i], got[i])
	}
}
