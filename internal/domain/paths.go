package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir returns the orchestrator's config directory
// (~/.config/orchestra), overridable via the --config flag.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".orchestra"
	}
	return filepath.Join(home, ".config", "orchestra")
}

// TasksPath returns the scheduled-tasks store path under the config dir.
func TasksPath(configDir string) string {
	return filepath.Join(configDir, "scheduled_tasks.json")
}

// ReposPath returns the repository list document path.
func ReposPath(configDir string) string {
	return filepath.Join(configDir, "repos.yaml")
}

// SettingsPath returns the settings document path.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, "settings.yaml")
}

// LogsDir returns the log directory under the config dir.
func LogsDir(configDir string) string {
	return filepath.Join(configDir, "logs")
}

// GlobalLogPath returns the path of the global orchestrator log.
func GlobalLogPath(configDir string) string {
	return filepath.Join(LogsDir(configDir), "orchestra.log")
}

// RepoLogPath returns the path of a repository-scoped log file.
func RepoLogPath(configDir, repoName string) string {
	return filepath.Join(LogsDir(configDir), "repo-"+repoName+".log")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
