package attendance

import (
	"time"
)

// Record is the canonical per-(employee, calendar date) attendance row.
// Exactly one exists per key; it may summarize zero, one, or many raw
// punches. The Version column backs the optimistic write check.
type Record struct {
	ID           string
	EmployeeCode string
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	TotalHours   float64
	Status       Status
	CheckInLabel *string // classifier label of the canonical check-in
	Completed    bool
	Late         bool
	Notes        string
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

// Open reports whether the record has a check-in but no check-out yet.
func (r Record) Open() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// ElapsedHours is the raw, uncapped time since check-in.
func (r Record) ElapsedHours(now time.Time) float64 {
	if r.CheckIn == nil {
		return 0
	}
	return now.Sub(*r.CheckIn).Hours()
}
