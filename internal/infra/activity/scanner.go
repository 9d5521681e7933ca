// Package activity reads assistant activity logs from disk.
package activity

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// maxLineBytes caps a single JSONL line. Activity entries can embed full
// conversation payloads, so the default scanner buffer is not enough.
const maxLineBytes = 10 * 1024 * 1024

// Scanner reads activity records from the assistant's project logs:
// <dir>/projects/*/*.jsonl, one JSON object per line with a "timestamp"
// field. Everything else on the line is ignored.
type Scanner struct {
	dir string
}

// NewScanner creates a Scanner rooted at the assistant's activity directory.
func NewScanner(dir string) *Scanner {
	return &Scanner{dir: domain.ExpandHome(dir)}
}

type logLine struct {
	Timestamp string `json:"timestamp"`
}

// Records scans all project logs and returns every parseable record.
// Best-effort by design: unreadable files and malformed lines are skipped
// so one corrupt log cannot take down session tracking.
func (s *Scanner) Records() []domain.ActivityRecord {
	pattern := filepath.Join(s.dir, "projects", "*", "*.jsonl")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}

	var records []domain.ActivityRecord
	for _, path := range paths {
		records = append(records, scanFile(path)...)
	}
	return records
}

func scanFile(path string) []domain.ActivityRecord {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var records []domain.ActivityRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry logLine
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.Timestamp == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil {
			continue
		}
		records = append(records, domain.ActivityRecord{
			Timestamp: ts,
			Source:    path,
		})
	}
	return records
}
