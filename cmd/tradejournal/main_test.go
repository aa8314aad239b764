//go:build blackbox

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var journalBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "tradejournal-blackbox-*")
	if err != nil {
		panic(err)
	}

	journalBin = filepath.Join(tmp, "tradejournal")

	// Build the binary once for all tests.
	cmd := exec.Command("go", "build", "-o", journalBin, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmp)
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

func run(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(journalBin, append([]string{"--store", "sqlite", "--path", filepath.Join(dir, "j.sqlite"), "--no-color", "--log-level", "error"}, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		// CombinedOutput merges stdout/stderr; still useful in failures.
		t.Fatalf("command failed: %v\nargs: %v\noutput:\n%s", err, args, string(out))
	}
	return string(out)
}

func TestBinaryRoundTrip(t *testing.T) {
	dir := t.TempDir()

	run(t, dir, "add", "--pl", "100", "--risk", "50", "--date", "2024-01-02")
	run(t, dir, "add", "--pl", "-25", "--date", "2024-01-20")

	out := run(t, dir, "stats")
	assert.Contains(t, out, "75.00")
	assert.Contains(t, out, "1.50")

	out = run(t, dir, "clear", "--to", "2024-01-10")
	assert.Contains(t, out, "Cleared 1 trade(s), 1 remaining.")

	out = run(t, dir, "export", "-f", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "-25")
}

func TestBinaryFailsWithoutProfitLoss(t *testing.T) {
	dir := t.TempDir()
	cmd := exec.Command(journalBin, "--store", "memory", "add")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "profit/loss is required")
}
