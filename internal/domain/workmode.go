package domain

import "time"

// WorkMode is a calendar-time bucket that gates what kind of automation
// is appropriate to run.
type WorkMode string

const (
	ModeWorkday   WorkMode = "workday"   // Mon-Fri 08:00-18:00, planning only
	ModeWorknight WorkMode = "worknight" // Mon-Thu evenings until 04:00, active development
	ModeWeekend   WorkMode = "weekend"   // Fri 18:00 - Mon 08:00, maintenance
	ModeOff       WorkMode = "off"       // No automation
)

// AllWorkModes returns all valid work mode values.
func AllWorkModes() []WorkMode {
	return []WorkMode{ModeWorkday, ModeWorknight, ModeWeekend, ModeOff}
}

// GetWorkMode classifies a timestamp into a work mode. Evaluation order
// matters: weekend wins over workday, workday over worknight.
//
// The worknight rule keys on the timestamp's own weekday, so Friday
// 00:00-03:59 is off rather than a continuation of Thursday night. The
// same asymmetry leaves Mon-Fri 04:00-08:00 unclassified (off).
func GetWorkMode(t time.Time) WorkMode {
	wd := t.Weekday()
	h := t.Hour()

	// Weekend: Friday 18:00 - Monday 08:00
	if wd == time.Saturday || wd == time.Sunday ||
		(wd == time.Monday && h < 8) ||
		(wd == time.Friday && h >= 18) {
		return ModeWeekend
	}

	// Workday: Monday-Friday 08:00-18:00
	if wd >= time.Monday && wd <= time.Friday && h >= 8 && h < 18 {
		return ModeWorkday
	}

	// Worknight: Monday-Thursday 18:00-04:00 (next day)
	if wd >= time.Monday && wd <= time.Thursday && (h >= 18 || h < 4) {
		return ModeWorknight
	}

	return ModeOff
}

// ShouldRunAutomation reports whether any automation should run at t.
func ShouldRunAutomation(t time.Time) bool {
	return GetWorkMode(t) != ModeOff
}

// IsWorkHours reports whether t falls into any active mode.
func IsWorkHours(t time.Time) bool {
	return GetWorkMode(t) != ModeOff
}

// NextWorkPeriod returns the start of the next active period at or after t.
func NextWorkPeriod(t time.Time) time.Time {
	if IsWorkHours(t) {
		return t
	}

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := t.Weekday()
	h := t.Hour()

	// Early-morning off hours (Mon-Fri 00:00-08:00 gaps) resolve to the
	// same day's workday start.
	if wd >= time.Monday && wd <= time.Friday && h < 8 {
		return midnight.Add(8 * time.Hour)
	}

	// Anything else: next weekday at 08:00.
	next := midnight.AddDate(0, 0, 1).Add(8 * time.Hour)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
