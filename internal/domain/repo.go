package domain

// RepoConfig describes one watched repository, loaded from repos.yaml.
// Read-only to the core.
type RepoConfig struct {
	Name          string   `yaml:"name"`
	Path          string   `yaml:"path"`
	Priority      Priority `yaml:"priority"`
	WatchBranches []string `yaml:"watch_branches"`
}

// Settings are the orchestrator's tunables, loaded from settings.yaml with
// hard-coded defaults when the file is absent or unparsable.
type Settings struct {
	LogLevel         string
	AssistantCommand string
	ActivityDir      string
	MaxDailyTokens   int
	MaxDailyRequests int
	WorkdayMaxRepos  int
	AssistantEnabled bool
}

// DefaultSettings returns the documented fallback settings.
func DefaultSettings() Settings {
	return Settings{
		MaxDailyTokens:   800000,
		MaxDailyRequests: 8000,
		WorkdayMaxRepos:  3,
		LogLevel:         "info",
		AssistantEnabled: true,
		AssistantCommand: "claude",
		ActivityDir:      "~/.claude",
	}
}

// Config is the merged startup configuration.
type Config struct {
	Repos    []RepoConfig
	Warnings []string
	Settings Settings
}
