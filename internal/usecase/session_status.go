package usecase

import (
	"context"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// SessionStatusOutput is the combined session and work-mode report used
// by the status command.
type SessionStatusOutput struct {
	Session        domain.SessionSummary `json:"session"`
	Status         domain.SessionStatus  `json:"status"`
	Mode           domain.WorkMode       `json:"mode"`
	NextWorkPeriod time.Time             `json:"next_work_period"`
}

// SessionStatus is the use case for reporting the current usage session
// and automation mode.
type SessionStatus struct {
	monitor domain.SessionMonitor
	clock   domain.Clock
}

// NewSessionStatus creates a new SessionStatus use case.
func NewSessionStatus(monitor domain.SessionMonitor, clock domain.Clock) *SessionStatus {
	return &SessionStatus{monitor: monitor, clock: clock}
}

// Execute builds the status report.
func (uc *SessionStatus) Execute(_ context.Context) (*SessionStatusOutput, error) {
	now := uc.clock.Now()
	return &SessionStatusOutput{
		Session:        uc.monitor.Summary(),
		Status:         uc.monitor.CheckStatus(),
		Mode:           domain.GetWorkMode(now),
		NextWorkPeriod: domain.NextWorkPeriod(now),
	}, nil
}
