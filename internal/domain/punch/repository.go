package punch

import (
	"context"
	"time"
)

// Repository reads the raw punch store written by the ingestion pipeline.
// The engine treats it as append-only and may re-read any range at any time.
type Repository interface {
	// ListByDateRange returns all events with from <= punch_time < to,
	// ordered by employee code then punch time.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]RawEvent, error)
	// ListByEmployeeAndDate returns one employee's events for a calendar day.
	ListByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) ([]RawEvent, error)
}
