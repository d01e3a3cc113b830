package activity

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeLog(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestScanLogs(t *testing.T) {
	dir := t.TempDir()

	writeLog(t, dir, "a.log",
		"2026-08-01 10:00:00.123 - Thread:   5 ->  World request received: Alice\n"+
			"garbage line that matches nothing\n"+
			"2026-08-01 11:30:00.456 - User left Bob\r\n")
	writeLog(t, dir, "b.log",
		"2026-08-02 09:00:00.000 - Thread:   7 ->  World request received: Alice\n")
	writeLog(t, dir, "notes.txt", "2026-08-03 09:00:00.000 - World request received: Carol\n")

	seen, err := ScanLogs(dir, discardLogger())
	require.NoError(t, err)

	// Later files win; non-.log files are ignored.
	require.Len(t, seen, 2)
	assert.Equal(t, time.Date(2026, 8, 2, 9, 0, 0, 0, time.Local), seen["Alice"])
	assert.Equal(t, time.Date(2026, 8, 1, 11, 30, 0, 456000000, time.Local), seen["Bob"])
	assert.NotContains(t, seen, "Carol")
}

func TestScanLogs_BadTimestampIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "a.log",
		"not a date - User left Mallory\n"+
			"2026-08-01 10:00:00.1 - User left Eve\n")

	seen, err := ScanLogs(dir, discardLogger())
	require.NoError(t, err)

	assert.NotContains(t, seen, "Mallory")
	assert.Contains(t, seen, "Eve")
}

func TestScanLogs_MissingDirectoryIsFatal(t *testing.T) {
	_, err := ScanLogs(filepath.Join(t.TempDir(), "nope"), discardLogger())
	require.Error(t, err)
}

func TestOracle(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	seen := map[string]time.Time{
		"Alice": now.Add(-10 * 24 * time.Hour),
		"Bob":   now.Add(-45 * 24 * time.Hour),
	}

	o := NewOracle(seen, 30*24*time.Hour, func() time.Time { return now })

	assert.True(t, o.IsActive("Alice"))
	assert.False(t, o.IsActive("Bob"), "seen outside the window")
	assert.False(t, o.IsActive("Carol"), "never seen")
}

func TestOracle_DisabledWindow(t *testing.T) {
	o := NewOracle(nil, 0, nil)

	assert.True(t, o.IsActive("anyone"))
}
