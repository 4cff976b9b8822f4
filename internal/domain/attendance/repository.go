package attendance

import (
	"context"
	"time"
)

// OpenCursor is a keyset position in the (date, employee_code) ordering of
// open records. The zero value starts from the beginning.
type OpenCursor struct {
	Date         time.Time
	EmployeeCode string
}

type Repository interface {
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*Record, error)
	// Upsert inserts or replaces the record for its (employee, date) key.
	// Rebuilds are idempotent: identical input produces an identical row.
	Upsert(ctx context.Context, record Record) (Record, error)
	// Update writes the record back only if Version still matches, returning
	// ErrVersionConflict otherwise.
	Update(ctx context.Context, record Record) (Record, error)
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)
	// ListOpen returns records with a check-in and no check-out for
	// from <= date <= to, ordered by (date, employee_code), at most limit
	// rows strictly after the cursor position.
	ListOpen(ctx context.Context, from, to time.Time, after OpenCursor, limit int) ([]Record, error)
	GetDayStats(ctx context.Context, date time.Time) (DayStats, error)
	// ListDailyCheckInCounts returns the distinct check-in headcount per date
	// over from <= date <= to. Dates with no check-ins are omitted.
	ListDailyCheckInCounts(ctx context.Context, from, to time.Time) ([]DailyCheckInCount, error)
}
