// Package assistant dispatches prompts to the external coding assistant.
package assistant

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// DefaultTimeout bounds a single assistant invocation. Prompts describe up
// to a full repo's worth of work, so the ceiling is generous.
const DefaultTimeout = 30 * time.Minute

// Ensure CLI implements domain.Assistant.
var _ domain.Assistant = (*CLI)(nil)

// CLI invokes the assistant binary in print mode, one synchronous call per
// prompt. The prompt goes in over stdin so its size is not limited by the
// argv ceiling.
type CLI struct {
	command string
	timeout time.Duration
}

// New creates a CLI assistant using the given command (e.g. "claude").
func New(command string) *CLI {
	return &CLI{command: command, timeout: DefaultTimeout}
}

// NewWithTimeout creates a CLI assistant with a custom invocation timeout.
func NewWithTimeout(command string, timeout time.Duration) *CLI {
	return &CLI{command: command, timeout: timeout}
}

// Invoke runs the assistant with the prompt and returns its output.
// workingDir becomes the assistant's cwd so repo-relative instructions
// resolve correctly.
func (c *CLI) Invoke(ctx context.Context, prompt, workingDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// #nosec G204 - the command comes from operator-owned settings
	cmd := exec.CommandContext(ctx, c.command, "-p")
	cmd.Dir = workingDir
	cmd.Stdin = strings.NewReader(prompt)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("assistant timed out after %s", c.timeout)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("assistant failed: %w: %s", err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("assistant failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
