// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/executor"
)

// RunCycleInput contains the parameters for running one automation cycle.
type RunCycleInput struct {
	DisableAssistant bool // If true, build prompts but never invoke the assistant
}

// RunCycleOutput is the structured cycle report. It is always produced:
// an off-hours cycle and a failed cycle both yield a result, never an error.
type RunCycleOutput struct {
	Timestamp       time.Time            `json:"timestamp"`
	Mode            domain.WorkMode      `json:"mode"`
	UsageStatus     domain.SessionStatus `json:"usage_status"`
	DurationSeconds float64              `json:"duration_seconds"`
	Result          *executor.Result     `json:"execution"`
}

// RunCycle is the use case for one orchestration cycle: classify the
// current time, run the mode's executor, and dispatch prompts to the
// assistant where the mode allows it.
type RunCycle struct {
	repos     []domain.RepoConfig
	settings  domain.Settings
	deps      executor.Deps
	assistant domain.Assistant
	clock     domain.Clock
	logger    domain.Logger
}

// NewRunCycle creates a new RunCycle use case.
func NewRunCycle(cfg *domain.Config, deps executor.Deps, assistant domain.Assistant, logger domain.Logger) *RunCycle {
	return &RunCycle{
		repos:     cfg.Repos,
		settings:  cfg.Settings,
		deps:      deps,
		assistant: assistant,
		clock:     deps.Clock,
		logger:    logger,
	}
}

// Execute runs one cycle. Errors inside the cycle become part of the
// output; the returned error is reserved for programming mistakes.
func (uc *RunCycle) Execute(ctx context.Context, in RunCycleInput) (*RunCycleOutput, error) {
	now := uc.clock.Now()
	mode := domain.GetWorkMode(now)
	out := &RunCycleOutput{
		Timestamp:   now,
		Mode:        mode,
		UsageStatus: uc.deps.Session.CheckStatus(),
	}
	defer func() { out.DurationSeconds = uc.clock.Now().Sub(now).Seconds() }()

	uc.logger.Info("", "cycle", fmt.Sprintf("starting cycle in %s mode", mode))

	if mode == domain.ModeOff {
		uc.logger.Info("", "cycle", "outside work hours, nothing to do")
		out.Result = &executor.Result{Status: executor.StatusSkipped, Reason: "outside_work_hours"}
		return out, nil
	}

	exec, err := executor.ForMode(mode, uc.deps)
	if err != nil {
		uc.logger.Error("", "cycle", err.Error())
		out.Result = &executor.Result{Status: executor.StatusError, Reason: err.Error()}
		return out, nil
	}

	result := exec.Execute(ctx, uc.repos)

	if uc.shouldDispatch(in, result) {
		uc.dispatch(ctx, mode, result)
	}

	out.Result = result
	uc.logger.Info("", "cycle", fmt.Sprintf("cycle finished: %s", result.Status))
	return out, nil
}

func (uc *RunCycle) shouldDispatch(in RunCycleInput, result *executor.Result) bool {
	return uc.assistant != nil &&
		uc.settings.AssistantEnabled &&
		!in.DisableAssistant &&
		result.Status == executor.StatusCompleted
}

// dispatch sends the cycle's prompts to the assistant. Workday dispatches
// one call per planned task; worknight one call per repo. Weekend prompts
// are review material for the operator and are never dispatched.
func (uc *RunCycle) dispatch(ctx context.Context, mode domain.WorkMode, result *executor.Result) {
	if mode == domain.ModeWeekend {
		return
	}

	paths := make(map[string]string, len(uc.repos))
	for _, repo := range uc.repos {
		paths[repo.Name] = repo.Path
	}

	for repoName, repoResult := range result.Repos {
		path := paths[repoName]

		switch mode {
		case domain.ModeWorkday:
			for i := range repoResult.Tasks {
				task := &repoResult.Tasks[i]
				output, err := uc.assistant.Invoke(ctx, task.Prompt, path)
				if err != nil {
					uc.logger.Error(repoName, "assistant", fmt.Sprintf("%s: %v", task.Type, err))
					task.Result = fmt.Sprintf("error: %v", err)
					continue
				}
				task.Result = output
			}

		case domain.ModeWorknight:
			if repoResult.Status != executor.StatusReady || repoResult.Prompt == "" {
				continue
			}
			output, err := uc.assistant.Invoke(ctx, repoResult.Prompt, path)
			if err != nil {
				uc.logger.Error(repoName, "assistant", err.Error())
				repoResult.AssistantOutput = fmt.Sprintf("error: %v", err)
				continue
			}
			repoResult.AssistantOutput = output
		}
	}
}
