// Package activity derives player activity from dedicated server log files.
// Each "world request received" and "user left" line contributes one
// last-seen timestamp per player; the Oracle turns the resulting table into
// the isActive predicate the decision engine consumes.
package activity

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

// The timestamp group stops at the first " -" separator; the dashes inside
// the date itself are followed by digits, not spaces, so they pass.
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^((?:[^-]|-[^ ])+) -.*World request received: ([^\r]*)\r?$`),
	regexp.MustCompile(`^((?:[^-]|-[^ ])+) -.User left ([^\r]*)\r?$`),
}

const seenTimeLayout = "2006-01-02 15:04:05.999999999"

// ScanLogs reads every .log file in dir, in name order, and returns the
// latest-wins map from player name to last-seen timestamp. Lines that match
// no pattern, or whose timestamp does not parse, are skipped and counted.
func ScanLogs(dir string, logger *slog.Logger) (map[string]time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	seen := make(map[string]time.Time)
	skipped := 0

	for i, file := range files {
		logger.Info("parsing log file", "file", file, "index", i+1, "total", len(files))

		if err := scanFile(file, seen, &skipped); err != nil {
			return nil, err
		}
	}

	if skipped > 0 {
		logger.Debug("skipped malformed log lines", "count", skipped)
	}

	return seen, nil
}

func scanFile(file string, seen map[string]time.Time, skipped *int) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		for _, pattern := range linePatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			ts, err := time.ParseInLocation(seenTimeLayout, m[1], time.Local)
			if err != nil {
				*skipped++
				continue
			}

			seen[m[2]] = ts
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", file, err)
	}

	return nil
}
