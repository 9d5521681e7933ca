// Package logging provides file-based logging for the orchestrator.
// It outputs logs to both a global log file (logs/orchestra.log) and
// repository-scoped log files (logs/repo-<name>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog levels with file-based output.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile *os.File
	repoFiles  map[string]*os.File
	configDir  string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a Logger that writes under the config directory's logs/.
// If configDir is empty, logging is disabled (returns a no-op logger).
func New(configDir string, level slog.Level) *Logger {
	return &Logger{
		configDir: configDir,
		level:     level,
		repoFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(domain.LogsDir(l.configDir), 0o750)
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GlobalLogPath(l.configDir)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// ensureRepoFile opens or returns a repository log file.
func (l *Logger) ensureRepoFile(repoName string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.repoFiles[repoName]; ok {
		return f, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.RepoLogPath(l.configDir, repoName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open repo log file: %w", err)
	}
	l.repoFiles[repoName] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for name, f := range l.repoFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.repoFiles, name)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [repo-name] [category] message
func formatLog(t time.Time, level slog.Level, repoName, category, msg string) string {
	scope := "global"
	if repoName != "" {
		scope = repoName
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to the appropriate files based on repoName.
// An empty repoName logs only to the global log; otherwise the entry goes
// to both the global and the repo-specific log.
func (l *Logger) log(level slog.Level, repoName, category, msg string) {
	if l.configDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return
	}

	entry := formatLog(time.Now(), level, repoName, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if repoName != "" {
		if rf, err := l.ensureRepoFile(repoName); err == nil {
			_, _ = io.WriteString(rf, entry)
		}
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(repoName, category, msg string) {
	l.log(slog.LevelDebug, repoName, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(repoName, category, msg string) {
	l.log(slog.LevelInfo, repoName, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(repoName, category, msg string) {
	l.log(slog.LevelWarn, repoName, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(repoName, category, msg string) {
	l.log(slog.LevelError, repoName, category, msg)
}
