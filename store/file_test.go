package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)

	_, ok, err := s.Get("trades")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("trades", []byte(`[]`)))
	require.NoError(t, s.Set("trades", []byte(`[{"profitLoss":1}]`)))

	v, ok, err := s.Get("trades")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"profitLoss":1}]`, string(v))

	data, err := os.ReadFile(filepath.Join(dir, "trades.json"))
	require.NoError(t, err)
	assert.Equal(t, string(v), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "journal")
	s, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("trades", []byte(`[]`)))

	_, err = os.Stat(filepath.Join(dir, "trades.json"))
	assert.NoError(t, err)
}

func TestFileRejectsBadKeys(t *testing.T) {
	t.Parallel()

	s, err := NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../escape", `a\b`} {
		assert.Error(t, s.Set(key, []byte("x")), key)
		_, _, err := s.Get(key)
		assert.Error(t, err, key)
	}
}

func TestMemoryCopies(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	in := []byte("abc")
	require.NoError(t, m.Set("k", in))
	in[0] = 'X'

	out, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", string(out))

	out[0] = 'Y'
	again, _, _ := m.Get("k")
	assert.Equal(t, "abc", string(again))
}
