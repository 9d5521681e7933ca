package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orchestra-automation/orchestra/internal/app"
	"github.com/orchestra-automation/orchestra/internal/usecase"
)

func newRunCommand(c *app.Container) *cobra.Command {
	var (
		daemon   bool
		testMode bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one automation cycle (or loop hourly with --daemon)",
		Long: `Run classifies the current time into a work mode, gathers repository
state, and builds prompts for the assistant. The cycle result is printed
as JSON and the command exits 0 even when parts of the cycle failed:
failures are data in the result, not process errors.

With --daemon the command runs one cycle at the top of every hour until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.RunCycleUseCase()
			in := usecase.RunCycleInput{DisableAssistant: testMode}

			if !daemon {
				return runOnce(cmd, uc, in)
			}

			for {
				if err := runOnce(cmd, uc, in); err != nil {
					return err
				}
				select {
				case <-cmd.Context().Done():
					return nil
				case <-time.After(untilNextHour(c.Clock.Now())):
				}
			}
		},
	}

	cmd.Flags().BoolVar(&daemon, "daemon", false, "Run a cycle at the top of every hour")
	cmd.Flags().BoolVar(&testMode, "test", false, "Build prompts but never invoke the assistant")

	return cmd
}

func runOnce(cmd *cobra.Command, uc *usecase.RunCycle, in usecase.RunCycleInput) error {
	out, err := uc.Execute(cmd.Context(), in)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

// untilNextHour returns the wait until the next top of the hour.
func untilNextHour(now time.Time) time.Duration {
	next := now.Truncate(time.Hour).Add(time.Hour)
	return next.Sub(now)
}
