package employee

import (
	"time"
)

type Employee struct {
	ID           string
	Code         string
	FullName     string
	Active       bool
	NonBioExempt bool // policy-flagged as exempt from punching; counted present
	ShiftID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Shift describes a working window. Start and End carry only the
// time-of-day component; the date part is ignored.
type Shift struct {
	ID                 string
	Name               string
	StartTime          time.Time
	EndTime            time.Time
	GracePeriodMinutes int
}

// DefaultShift is applied when an employee has no shift assignment.
func DefaultShift() Shift {
	return Shift{
		Name:               "default",
		StartTime:          time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:            time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		GracePeriodMinutes: 30,
	}
}

// StartOn anchors the shift start to the given calendar date.
func (s Shift) StartOn(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0, date.Location())
}

// EndOn anchors the shift end to the given calendar date.
func (s Shift) EndOn(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.EndTime.Hour(), s.EndTime.Minute(), 0, 0, date.Location())
}

// Grace returns the grace period as a duration.
func (s Shift) Grace() time.Duration {
	return time.Duration(s.GracePeriodMinutes) * time.Minute
}
