// Package config loads the orchestrator's configuration documents.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader reads repos.yaml and settings.yaml from the config directory.
type Loader struct {
	configDir string
}

// NewLoader creates a Loader rooted at the given config directory.
func NewLoader(configDir string) *Loader {
	return &Loader{configDir: configDir}
}

// reposDocument is the on-disk shape of repos.yaml.
type reposDocument struct {
	Repositories []domain.RepoConfig `yaml:"repositories"`
}

// Load reads both documents. It never fails hard: a missing or malformed
// document degrades to defaults with the problem recorded as a warning, so
// one bad file cannot stop the hourly cycle.
func (l *Loader) Load() *domain.Config {
	cfg := &domain.Config{Settings: domain.DefaultSettings()}

	l.loadRepos(cfg)
	l.loadSettings(cfg)
	return cfg
}

func (l *Loader) loadRepos(cfg *domain.Config) {
	path := domain.ReposPath(l.configDir)
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("read %s: %v", path, err))
		}
		return
	}

	var doc reposDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("parse %s: %v", path, err))
		return
	}

	for _, repo := range doc.Repositories {
		if repo.Name == "" {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: repository without a name skipped", path))
			continue
		}
		if repo.Path == "" {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: repository %q has no path, skipped", path, repo.Name))
			continue
		}
		repo.Path = domain.ExpandHome(repo.Path)
		if repo.Priority == "" {
			repo.Priority = domain.PriorityMedium
		}
		if !repo.Priority.IsValid() {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: repository %q has unknown priority %q, using medium", path, repo.Name, repo.Priority))
			repo.Priority = domain.PriorityMedium
		}
		cfg.Repos = append(cfg.Repos, repo)
	}
}

func (l *Loader) loadSettings(cfg *domain.Config) {
	v := viper.New()
	v.SetConfigFile(domain.SettingsPath(l.configDir))
	v.SetConfigType("yaml")

	defaults := domain.DefaultSettings()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("assistant_command", defaults.AssistantCommand)
	v.SetDefault("activity_dir", defaults.ActivityDir)
	v.SetDefault("max_daily_tokens", defaults.MaxDailyTokens)
	v.SetDefault("max_daily_requests", defaults.MaxDailyRequests)
	v.SetDefault("workday_max_repos", defaults.WorkdayMaxRepos)
	v.SetDefault("assistant_enabled", defaults.AssistantEnabled)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("read settings: %v", err))
		}
		// Defaults stay in effect either way.
	}

	cfg.Settings = domain.Settings{
		LogLevel:         v.GetString("log_level"),
		AssistantCommand: v.GetString("assistant_command"),
		ActivityDir:      v.GetString("activity_dir"),
		MaxDailyTokens:   v.GetInt("max_daily_tokens"),
		MaxDailyRequests: v.GetInt("max_daily_requests"),
		WorkdayMaxRepos:  v.GetInt("workday_max_repos"),
		AssistantEnabled: v.GetBool("assistant_enabled"),
	}
}
