// Package session reconstructs usage sessions from activity timestamps.
//
// There is no session API to query: a session is inferred purely from
// timing. Activity after a gap of more than the session budget starts a
// new session; the session then runs for a fixed 5 hours from its first
// record regardless of further activity.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// minWindowRecords is the activity floor for an active session. A single
// stray record inside the window does not count as a session.
const minWindowRecords = 2

// identicalRecordLimit guards against degenerate logs where many records
// carry the same timestamp (clock problems, replayed files). Above this
// count with zero spread the window is treated as no session.
const identicalRecordLimit = 5

// FindSessionStart derives the start of the current usage session from raw
// activity records. Returns nil when no session is active.
//
// Only records inside the session-length look-back window qualify. The
// start is the oldest in-window record; an activity chain that continues
// past the window does not drag the start with it, the older records
// simply fall outside the session.
func FindSessionStart(records []domain.ActivityRecord, now time.Time) *time.Time {
	var recent []time.Time
	for _, r := range records {
		if r.Timestamp.After(now) {
			continue
		}
		if now.Sub(r.Timestamp) <= domain.SessionDuration {
			recent = append(recent, r.Timestamp)
		}
	}

	if len(recent) < minWindowRecords {
		return nil
	}

	sort.Slice(recent, func(i, j int) bool { return recent[i].After(recent[j]) })
	if recent[0].Equal(recent[len(recent)-1]) && len(recent) > identicalRecordLimit {
		return nil
	}

	start := recent[len(recent)-1]
	return &start
}

// Tracker monitors the current usage session. Safe for concurrent use.
// Fields are ordered to minimize memory padding.
type Tracker struct {
	source domain.ActivitySource
	clock  domain.Clock
	cached *domain.SessionInfo
	mu     sync.Mutex
}

// NewTracker creates a Tracker over the given activity source.
func NewTracker(source domain.ActivitySource, clock domain.Clock) *Tracker {
	return &Tracker{source: source, clock: clock}
}

// current returns the session at now, rescanning activity only when the
// cached session is missing or has run out its budget. A live session is
// immutable once started, so re-reading the logs mid-session is wasted work.
func (t *Tracker) current(now time.Time) domain.SessionInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cached != nil && !t.cached.Expired(now) {
		return *t.cached
	}

	start := FindSessionStart(t.source.Records(), now)
	if start == nil {
		t.cached = nil
		return domain.SessionInfo{}
	}

	info := domain.SessionInfo{Start: *start, Active: true}
	if info.Expired(now) {
		// Do not cache an already-expired session; the next activity
		// burst should be picked up immediately.
		t.cached = nil
	} else {
		t.cached = &info
	}
	return info
}

// CheckStatus classifies the current session by timing alone.
func (t *Tracker) CheckStatus() domain.SessionStatus {
	now := t.clock.Now()
	info := t.current(now)

	switch {
	case !info.Active:
		return domain.SessionNone
	case info.Expired(now):
		return domain.SessionExpired
	case info.InFinalWindow(now, domain.FinalWindowLength):
		return domain.SessionMaximize
	default:
		return domain.SessionNormal
	}
}

// Summary returns the structured session report. Timing fields are only
// populated while a session is active.
func (t *Tracker) Summary() domain.SessionSummary {
	now := t.clock.Now()
	info := t.current(now)

	summary := domain.SessionSummary{Timestamp: now, Active: info.Active}
	if !info.Active {
		return summary
	}

	elapsed := int(info.Elapsed(now).Minutes())
	remaining := int(info.Remaining(now).Minutes())
	finalWindow := info.InFinalWindow(now, domain.FinalWindowLength)
	expired := info.Expired(now)
	start := info.Start

	summary.SessionStart = &start
	summary.ElapsedMinutes = &elapsed
	summary.RemainingMinutes = &remaining
	summary.IsFinalWindow = &finalWindow
	summary.SessionExpired = &expired
	return summary
}
