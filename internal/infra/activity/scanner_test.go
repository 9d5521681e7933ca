package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, dir, project, name, content string) {
	t.Helper()
	projectDir := filepath.Join(dir, "projects", project)
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, name), []byte(content), 0o644))
}

func TestScanner_Records(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "proj-a", "log.jsonl",
		`{"timestamp":"2024-01-02T10:00:00Z","type":"user"}
{"timestamp":"2024-01-02T10:05:00.123Z","type":"assistant"}
`)
	writeLog(t, dir, "proj-b", "log.jsonl",
		`{"timestamp":"2024-01-02T11:00:00+09:00"}
`)

	records := NewScanner(dir).Records()
	require.Len(t, records, 3)

	var stamps []time.Time
	for _, r := range records {
		stamps = append(stamps, r.Timestamp)
		assert.NotEmpty(t, r.Source)
	}
	assert.Contains(t, stamps, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
}

func TestScanner_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "proj", "log.jsonl",
		`not json at all
{"timestamp":"also not a timestamp"}
{"no_timestamp_field":true}
{"timestamp":"2024-01-02T10:00:00Z"}

{"timestamp":"2024-13-99T10:00:00Z"}
`)

	records := NewScanner(dir).Records()
	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), records[0].Timestamp)
}

func TestScanner_MissingDirectory(t *testing.T) {
	scanner := NewScanner(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, scanner.Records())
}

func TestScanner_IgnoresNonJSONLFiles(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "proj", "notes.txt", `{"timestamp":"2024-01-02T10:00:00Z"}`)
	assert.Empty(t, NewScanner(dir).Records())
}
