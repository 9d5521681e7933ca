package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestra-automation/orchestra/internal/app"
)

func TestRootCommand_Help(t *testing.T) {
	c := newTestContainer(t)

	out, err := runCommand(t, c, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "orchestra")
	assert.Contains(t, out, "Automation:")
	assert.Contains(t, out, "Task Management:")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "task")
	assert.Contains(t, out, "board")
}

func TestRootCommand_Version(t *testing.T) {
	c := newTestContainer(t)

	out, err := runCommand(t, c, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestStatusCommand(t *testing.T) {
	c := newTestContainer(t)

	out, err := runCommand(t, c, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Work Mode")
	assert.Contains(t, out, "Usage Session")
	assert.Contains(t, out, "Scheduled Tasks")
}

func TestStatusCommand_JSON(t *testing.T) {
	c := newTestContainer(t)

	out, err := runCommand(t, c, "status", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"session"`)
	assert.Contains(t, out, `"tasks"`)
	assert.Contains(t, out, `"mode"`)
}

func TestBoardCommand_LaunchesTUI(t *testing.T) {
	c := newTestContainer(t)

	original := launchBoardFunc
	called := false
	launchBoardFunc = func(*app.Container) error {
		called = true
		return nil
	}
	t.Cleanup(func() { launchBoardFunc = original })

	_, err := runCommand(t, c, "board")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestUntilNextHour(t *testing.T) {
	cases := []struct {
		minute, second int
		wantMinutes    float64
	}{
		{0, 0, 60},
		{30, 0, 30},
		{59, 30, 0.5},
	}
	for _, tc := range cases {
		now := time.Date(2024, 3, 12, 14, tc.minute, tc.second, 0, time.UTC)
		got := untilNextHour(now).Minutes()
		assert.InDelta(t, tc.wantMinutes, got, 0.01)
	}
}
