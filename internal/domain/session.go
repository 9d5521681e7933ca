package domain

import "time"

// Session timing constants. A usage session has a fixed 5-hour budget; the
// final 15 minutes are the "maximize usage" window.
const (
	SessionDuration   = 5 * time.Hour
	FinalWindowLength = 15 * time.Minute
)

// SessionStatus describes where a usage session is in its lifecycle.
type SessionStatus string

const (
	SessionNone     SessionStatus = "no_session"
	SessionNormal   SessionStatus = "normal"
	SessionMaximize SessionStatus = "maximize_usage"
	SessionExpired  SessionStatus = "session_expired"
)

// ActivityRecord is a single timestamped entry reconstructed from the
// assistant's activity logs. Records are read-only inputs; the session
// tracker never writes them.
type ActivityRecord struct {
	Timestamp time.Time // When the activity happened
	Source    string    // Log file the record came from
}

// SessionInfo is the derived, ephemeral view of the current usage session.
// A zero Start means no session; Active mirrors that.
type SessionInfo struct {
	Start  time.Time
	Active bool
}

// Elapsed returns how long the session has been running at now.
// Returns 0 when no session is active.
func (s SessionInfo) Elapsed(now time.Time) time.Duration {
	if !s.Active {
		return 0
	}
	return now.Sub(s.Start)
}

// Remaining returns the time left in the session budget, floored at zero.
func (s SessionInfo) Remaining(now time.Time) time.Duration {
	remaining := SessionDuration - s.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// InFinalWindow reports whether the session is within its last window of
// the budget (15 minutes by default).
func (s SessionInfo) InFinalWindow(now time.Time, window time.Duration) bool {
	return s.Remaining(now) <= window
}

// Expired reports whether the session has used up its full budget.
func (s SessionInfo) Expired(now time.Time) bool {
	return s.Elapsed(now) >= SessionDuration
}
