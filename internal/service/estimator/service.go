package estimator

import (
	"context"
	"fmt"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/metrics"
)

// Service computes the expected-headcount baseline: for each weekday, the
// average and maximum count of distinct employees who checked in, over a
// trailing window of historical records.
type Service struct {
	attendanceRepo attendance.Repository
	windowDays     int
	now            func() time.Time
}

func NewService(attendanceRepo attendance.Repository, windowDays int, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		attendanceRepo: attendanceRepo,
		windowDays:     windowDays,
		now:            now,
	}
}

// Baseline computes the per-weekday statistics over the trailing window
// ending the day before asOf. The day itself is excluded: its check-ins are
// still accruing and would drag the averages down.
func (s *Service) Baseline(ctx context.Context, asOf time.Time) (metrics.HeadcountBaseline, error) {
	to := dateOnly(asOf).AddDate(0, 0, -1)
	from := dateOnly(asOf).AddDate(0, 0, -s.windowDays)

	counts, err := s.attendanceRepo.ListDailyCheckInCounts(ctx, from, to)
	if err != nil {
		return metrics.HeadcountBaseline{}, fmt.Errorf("failed to read daily check-in counts: %w", err)
	}

	return BuildBaseline(counts, s.windowDays, s.now()), nil
}

// Expected returns the expected headcount for the date's weekday. Always the
// historical maximum, never the average: using the average would
// systematically over-flag absenteeism on days with above-average turnout.
func (s *Service) Expected(ctx context.Context, date time.Time) (int, error) {
	baseline, err := s.Baseline(ctx, date)
	if err != nil {
		return 0, err
	}
	return baseline.Expected(date), nil
}

// BuildBaseline folds daily distinct check-in counts into per-weekday
// average/maximum statistics. Weekdays with no history get zero for both.
func BuildBaseline(counts []attendance.DailyCheckInCount, windowDays int, computedAt time.Time) metrics.HeadcountBaseline {
	var sums, days [7]int
	baseline := metrics.HeadcountBaseline{
		WindowDays: windowDays,
		ComputedAt: computedAt,
	}

	for _, c := range counts {
		wd := c.Date.Weekday()
		sums[wd] += c.Count
		days[wd]++
		if c.Count > baseline.ByWeekday[wd].Maximum {
			baseline.ByWeekday[wd].Maximum = c.Count
		}
	}

	for wd := range baseline.ByWeekday {
		if days[wd] > 0 {
			baseline.ByWeekday[wd].Average = float64(sums[wd]) / float64(days[wd])
		}
	}

	return baseline
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
