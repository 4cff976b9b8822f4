package metrics

import (
	"time"
)

// WeekdayStats holds the trailing-window unique-attendance statistics for
// one weekday. Average is the mean of the daily distinct check-in counts,
// Maximum the highest observed.
type WeekdayStats struct {
	Average float64 `json:"average"`
	Maximum int     `json:"maximum"`
}

// HeadcountBaseline is the derived, time-decaying expected-headcount
// snapshot, one WeekdayStats per weekday. It is recomputed on demand and
// never persisted as authoritative.
type HeadcountBaseline struct {
	ByWeekday  [7]WeekdayStats `json:"by_weekday"` // indexed by time.Weekday
	WindowDays int             `json:"window_days"`
	ComputedAt time.Time       `json:"computed_at"`
}

// Expected returns the expected headcount for the given date. The baseline
// always uses the historical maximum, never the average, so days with
// above-average attendance are not systematically flagged as absentee-heavy.
func (b HeadcountBaseline) Expected(date time.Time) int {
	return b.ByWeekday[date.Weekday()].Maximum
}

// Absentees returns how many expected employees did not check in. Never
// negative.
func (b HeadcountBaseline) Absentees(date time.Time, uniqueCheckIns int) int {
	absent := b.Expected(date) - uniqueCheckIns
	if absent < 0 {
		return 0
	}
	return absent
}

type SystemHealth string

const (
	HealthHealthy  SystemHealth = "healthy"
	HealthWarning  SystemHealth = "warning"
	HealthCritical SystemHealth = "critical"
)

// HealthFor derives the dashboard traffic light from the attendance rate.
// Presentation convenience only, never a control signal.
func HealthFor(attendanceRate float64) SystemHealth {
	switch {
	case attendanceRate < 0.5:
		return HealthCritical
	case attendanceRate < 0.8:
		return HealthWarning
	default:
		return HealthHealthy
	}
}

// DailySnapshot is the aggregate view of one date consumed by dashboards
// and payroll reporting. Computation is idempotent for identical inputs.
type DailySnapshot struct {
	Date                 string       `json:"date"`
	TotalActiveEmployees int          `json:"totalActiveEmployees"`
	NonBioExempt         int          `json:"nonBioExempt"`
	TotalPunchIn         int          `json:"totalPunchIn"`
	TotalPunchOut        int          `json:"totalPunchOut"`
	ExpectedHeadcount    int          `json:"expectedHeadcount"`
	PresentToday         int          `json:"presentToday"`
	AbsentToday          int          `json:"absentToday"`
	Absentees            int          `json:"absentees"`
	CompletedToday       int          `json:"completedToday"`
	IncompleteToday      int          `json:"incompleteToday"`
	LateArrivals         int          `json:"lateArrivals"`
	AttendanceRate       float64      `json:"attendanceRate"`
	SystemHealth         SystemHealth `json:"systemHealth"`
	CalculatedAt         time.Time    `json:"calculatedAt"`
}
