package metrics

import (
	"context"
	"time"
)

type Service interface {
	// GetDailyMetrics returns the snapshot for a date, served from the TTL
	// cache when fresh.
	GetDailyMetrics(ctx context.Context, date time.Time) (*DailySnapshot, error)
	// GetTEE returns the expected headcount for the date's weekday.
	GetTEE(ctx context.Context, date time.Time) (int, error)
	// GetBaseline returns the full per-weekday baseline.
	GetBaseline(ctx context.Context, asOf time.Time) (HeadcountBaseline, error)
}
