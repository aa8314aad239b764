package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/collect"
	"github.com/rustyeddy/tradejournal/journal"
)

// journalDir is a file-store journal shared by several invocations.
type journalDir struct {
	t       *testing.T
	dir     string
	store   string
	confirm func(string) (bool, error)
}

func newJournal(t *testing.T) *journalDir {
	return &journalDir{t: t, dir: t.TempDir(), store: "file"}
}

func (j *journalDir) run(args ...string) (string, error) {
	rc := &RootConfig{
		EnvFiles: []string{filepath.Join(j.dir, "none.env")},
		Confirm:  j.confirm,
	}
	cmd := newRootCmd(rc)

	path := filepath.Join(j.dir, "data")
	if j.store == "sqlite" {
		path = filepath.Join(j.dir, "journal.sqlite")
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--store", j.store, "--path", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (j *journalDir) mustRun(args ...string) string {
	j.t.Helper()
	out, err := j.run(args...)
	require.NoError(j.t, err, "tradejournal %s", strings.Join(args, " "))
	return out
}

var recordedRE = regexp.MustCompile(`Recorded trade ([0-9A-Z]{26})`)

func recordedID(t *testing.T, out string) string {
	t.Helper()
	m := recordedRE.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestAddAndList(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	j.mustRun("add", "--pl", "100", "--risk", "50", "--strategy", "breakout", "--emotion", "calm", "--confidence", "7")
	j.mustRun("add", "--pl", "-20", "--platform", "mt5")

	out := j.mustRun("list")
	assert.Contains(t, out, "breakout")
	assert.Contains(t, out, "mt5")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "-20.00")
	assert.Contains(t, out, "2.00", "per-trade risk/reward")
	assert.Contains(t, out, "calm")
	assert.Contains(t, out, "80.00", "total gain")
	assert.Contains(t, out, "40.00", "average gain")
	assert.Contains(t, out, "1.60", "aggregate risk/reward")
}

func TestAddRequiresProfitLoss(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	_, err := j.run("add", "--strategy", "breakout")
	assert.ErrorIs(t, err, collect.ErrProfitLossRequired)

	out := j.mustRun("list")
	assert.Contains(t, out, "No trades recorded.")
}

func TestAddRejectsNonImageScreenshot(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	txt := filepath.Join(j.dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just text"), 0644))

	_, err := j.run("add", "--pl", "5", "--screenshot", txt)
	assert.Error(t, err)
	assert.Contains(t, j.mustRun("list"), "No trades recorded.")
}

func TestStatsRange(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	j.mustRun("add", "--date", "2024-01-01", "--pl", "10")
	j.mustRun("add", "--date", "2024-01-15", "--pl", "20", "--risk", "10")
	j.mustRun("add", "--date", "2024-02-01", "--pl", "40")

	out := j.mustRun("stats", "--from", "2024-01-01", "--to", "2024-01-15")
	assert.Contains(t, out, "30.00")
	assert.Contains(t, out, "15.00")
	assert.Contains(t, out, "3.00")

	org := j.mustRun("stats", "--org", "--to", "2024-01-31")
	assert.Contains(t, org, "* JOURNAL: * .. 2024-01-31")
	assert.Contains(t, org, ":TRADES:      2")
	assert.Contains(t, org, ":TOTAL_GAIN:  30.00")
}

func TestClearRangeIsComplementOfList(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	j.mustRun("add", "--date", "2024-01-01", "--pl", "10")
	j.mustRun("add", "--date", "2024-01-15", "--pl", "20")
	j.mustRun("add", "--date", "2024-02-01", "--pl", "40")

	out := j.mustRun("export", "-f", "json", "--from", "2024-01-10", "--to", "2024-01-31")
	var inside []journal.TradeRecord
	require.NoError(t, json.Unmarshal([]byte(out), &inside))
	require.Len(t, inside, 1)

	out = j.mustRun("clear", "--from", "2024-01-10", "--to", "2024-01-31")
	assert.Contains(t, out, "Cleared 1 trade(s), 2 remaining.")

	out = j.mustRun("export", "-f", "json")
	var rest []journal.TradeRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rest))
	require.Len(t, rest, 2)
	for _, r := range rest {
		assert.NotEqual(t, inside[0].ID, r.ID)
	}
}

func TestClearNeedsBoundOrAll(t *testing.T) {
	t.Parallel()
	j := newJournal(t)
	j.mustRun("add", "--pl", "1")

	_, err := j.run("clear")
	assert.ErrorIs(t, err, journal.ErrNoBound)

	_, err = j.run("clear", "--all", "--from", "2024-01-01")
	assert.Error(t, err)

	_, err = j.run("clear", "--from", "2024-02-01", "--to", "2024-01-01")
	assert.Error(t, err)
}

func TestClearAllConfirmation(t *testing.T) {
	t.Parallel()
	j := newJournal(t)
	j.mustRun("add", "--pl", "1")
	j.mustRun("add", "--pl", "2")

	var asked string
	j.confirm = func(prompt string) (bool, error) {
		asked = prompt
		return false, nil
	}
	out := j.mustRun("clear", "--all")
	assert.Contains(t, out, "Nothing cleared.")
	assert.Equal(t, "Are you sure you want to clear all trades?", asked)
	assert.NotContains(t, j.mustRun("list"), "No trades recorded.")

	j.confirm = func(string) (bool, error) { return true, nil }
	out = j.mustRun("clear", "--all")
	assert.Contains(t, out, "Cleared 2 trade(s), 0 remaining.")

	j.mustRun("add", "--pl", "3")
	j.confirm = func(string) (bool, error) {
		t.Error("--yes must not prompt")
		return false, nil
	}
	out = j.mustRun("clear", "--all", "--yes")
	assert.Contains(t, out, "Cleared 1 trade(s), 0 remaining.")
}

func TestShowAndScreenshot(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	png := filepath.Join(j.dir, "shot.png")
	pngBytes := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(png, pngBytes, 0644))

	id := recordedID(t, j.mustRun("add", "--pl", "12.5", "--strategy", "pullback", "--screenshot", png))
	j.mustRun("add", "--pl", "1")

	out := j.mustRun("show", id)
	assert.Contains(t, out, "pullback")
	assert.Contains(t, out, ":PROFIT_LOSS: 12.50")

	dest := filepath.Join(j.dir, "restored")
	out = j.mustRun("show", strings.ToLower(id[len(id)-8:]), "--screenshot-out", dest)
	assert.Contains(t, out, "restored.png")
	got, err := os.ReadFile(dest + ".png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)

	_, err = j.run("show", "NOSUCHID")
	assert.ErrorIs(t, err, journal.ErrNotFound)
}

var orgHeadingRE = regexp.MustCompile(`\*\* Trade: \S+ \(([0-9A-Z]{8})\)`)

func TestShowAcceptsIDFromOrgHeading(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	// Same day, so both ids share their timestamp head.
	first := recordedID(t, j.mustRun("add", "--date", "2024-04-01", "--pl", "1", "--strategy", "alpha"))
	second := recordedID(t, j.mustRun("add", "--date", "2024-04-01", "--pl", "2", "--strategy", "beta"))

	heads := orgHeadingRE.FindAllStringSubmatch(j.mustRun("list", "--org"), -1)
	require.Len(t, heads, 2)

	for i, want := range []string{first, second} {
		out := j.mustRun("show", heads[i][1])
		assert.Contains(t, out, ":ID: "+want)
	}
}

func TestExportImport(t *testing.T) {
	t.Parallel()
	src := newJournal(t)
	src.mustRun("add", "--pl", "100", "--risk", "25", "--strategy", "breakout")
	src.mustRun("add", "--pl", "-30")

	csvOut := src.mustRun("export")
	assert.True(t, strings.HasPrefix(csvOut, "id,date,profit_loss,"))

	file := filepath.Join(src.dir, "trades.json")
	src.mustRun("export", "-f", "json", "-o", file)

	dst := newJournal(t)
	dst.store = "sqlite"
	assert.Contains(t, dst.mustRun("import", file), "Imported 2 trade(s), skipped 0.")
	assert.Contains(t, dst.mustRun("import", file), "Imported 0 trade(s), skipped 2.")

	out := dst.mustRun("stats")
	assert.Contains(t, out, "70.00")
	assert.Contains(t, out, "2.80")

	_, err := src.run("export", "-f", "xml")
	assert.Error(t, err)
}

func TestChart(t *testing.T) {
	t.Parallel()
	j := newJournal(t)
	j.mustRun("add", "--pl", "100")
	j.mustRun("add", "--pl", "-20")
	j.mustRun("add", "--pl", "40")

	out := j.mustRun("chart", "--width", "40", "--height", "8")
	assert.Contains(t, out, "Profit/Loss")
	assert.Contains(t, out, "Trade 1")
	assert.Contains(t, out, "Trade 3")

	out = j.mustRun("chart", "--cumulative")
	assert.Contains(t, out, "Cumulative Profit/Loss")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "Trade 1 .. Trade 3")

	_, err := j.run("chart", "--width", "5")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	path := filepath.Join(j.dir, "tj.yaml")
	assert.Contains(t, j.mustRun("config", "init", path), "Wrote")
	_, err := j.run("config", "init", path)
	assert.Error(t, err, "refuses to overwrite")
	j.mustRun("config", "init", path, "--force")

	assert.Contains(t, j.mustRun("config", "validate", path), "is valid")

	bad := filepath.Join(j.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("chart:\n  width: 3\n"), 0644))
	_, err = j.run("config", "validate", bad)
	assert.ErrorContains(t, err, "chart.width")
}

func TestVersion(t *testing.T) {
	t.Parallel()
	j := newJournal(t)
	assert.Contains(t, j.mustRun("version"), "tradejournal (dev)")
}

func TestRangeFlags(t *testing.T) {
	t.Parallel()

	rf := rangeFlags{from: "2024-03-01", to: "2024-03-02"}
	r, err := rf.Range()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), r.Start)
	assert.True(t, r.Contains(time.Date(2024, 3, 2, 23, 59, 59, 0, time.Local)), "--to covers the whole day")
	assert.False(t, r.Contains(time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local)))

	rf = rangeFlags{to: "2024-03-02T10:00:00Z"}
	r, err = rf.Range()
	require.NoError(t, err)
	assert.True(t, r.Start.IsZero())
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), r.End.UTC())

	r, err = (&rangeFlags{}).Range()
	require.NoError(t, err)
	assert.False(t, r.Bounded())

	_, err = (&rangeFlags{from: "March"}).Range()
	assert.Error(t, err)
}
