package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/metrics"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/cache"
	"github.com/biotrack-io/attendance-engine-go/internal/service/estimator"
	"golang.org/x/sync/errgroup"
)

// SnapshotInputs are everything BuildSnapshot needs. Collecting them first
// keeps the snapshot math pure and idempotent.
type SnapshotInputs struct {
	Date         time.Time
	TotalActive  int
	NonBioExempt int
	Stats        attendance.DayStats
	Baseline     metrics.HeadcountBaseline
	Now          time.Time
}

type CalculatorImpl struct {
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	estimator      *estimator.Service
	cache          *cache.Cache
	// biometricCapacity derives the punch-exempt count when no employees
	// carry the exemption flag: enrollment beyond terminal capacity is
	// exempt by policy. Zero disables the derivation.
	biometricCapacity int
	now               func() time.Time
}

func NewCalculator(
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	estimator *estimator.Service,
	snapshotCache *cache.Cache,
	biometricCapacity int,
	now func() time.Time,
) metrics.Service {
	if now == nil {
		now = time.Now
	}
	return &CalculatorImpl{
		employeeRepo:      employeeRepo,
		attendanceRepo:    attendanceRepo,
		estimator:         estimator,
		cache:             snapshotCache,
		biometricCapacity: biometricCapacity,
		now:               now,
	}
}

// GetDailyMetrics implements metrics.Service. Fresh snapshots come from the
// cache; on a computation failure a stale snapshot is served rather than an
// error, and the failure is logged.
func (c *CalculatorImpl) GetDailyMetrics(ctx context.Context, date time.Time) (*metrics.DailySnapshot, error) {
	date = dateOnly(date)
	key := "daily:" + date.Format("2006-01-02")

	if cached, stale, ok := c.cache.Get(key); ok && !stale {
		return cached.(*metrics.DailySnapshot), nil
	}

	snapshot, err := c.compute(ctx, date)
	if err != nil {
		if cached, _, ok := c.cache.Get(key); ok {
			slog.Warn("serving stale metrics snapshot after computation failure",
				"date", date.Format("2006-01-02"), "error", err)
			return cached.(*metrics.DailySnapshot), nil
		}
		return nil, err
	}

	c.cache.Set(key, snapshot)
	return snapshot, nil
}

// GetTEE implements metrics.Service.
func (c *CalculatorImpl) GetTEE(ctx context.Context, date time.Time) (int, error) {
	return c.estimator.Expected(ctx, date)
}

// GetBaseline implements metrics.Service.
func (c *CalculatorImpl) GetBaseline(ctx context.Context, asOf time.Time) (metrics.HeadcountBaseline, error) {
	return c.estimator.Baseline(ctx, asOf)
}

// compute gathers the independent inputs in parallel, one goroutine per
// repository read, then folds them through the pure snapshot math.
func (c *CalculatorImpl) compute(ctx context.Context, date time.Time) (*metrics.DailySnapshot, error) {
	inputs := SnapshotInputs{Date: date, Now: c.now()}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := c.employeeRepo.CountActive(gCtx)
		if err != nil {
			return err
		}
		inputs.TotalActive = total
		return nil
	})

	g.Go(func() error {
		exempt, err := c.employeeRepo.CountNonBioExempt(gCtx)
		if err != nil {
			return err
		}
		inputs.NonBioExempt = exempt
		return nil
	})

	g.Go(func() error {
		stats, err := c.attendanceRepo.GetDayStats(gCtx, date)
		if err != nil {
			return err
		}
		inputs.Stats = stats
		return nil
	})

	g.Go(func() error {
		baseline, err := c.estimator.Baseline(gCtx, date)
		if err != nil {
			return err
		}
		inputs.Baseline = baseline
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute daily metrics: %w", err)
	}

	if inputs.NonBioExempt == 0 && c.biometricCapacity > 0 && inputs.TotalActive > c.biometricCapacity {
		inputs.NonBioExempt = inputs.TotalActive - c.biometricCapacity
	}

	snapshot := BuildSnapshot(inputs)
	return &snapshot, nil
}

// BuildSnapshot is the pure snapshot computation. Identical inputs yield an
// identical snapshot apart from CalculatedAt, which is taken from the inputs.
func BuildSnapshot(in SnapshotInputs) metrics.DailySnapshot {
	totalAttendance := in.Stats.UniqueCheckIns + in.NonBioExempt

	present := in.Stats.UniqueCheckIns - in.Stats.UniqueCheckOuts
	if present < 0 {
		present = 0
	}

	absent := in.TotalActive - totalAttendance
	if absent < 0 {
		absent = 0
	}

	var rate float64
	if in.TotalActive > 0 {
		rate = float64(totalAttendance) / float64(in.TotalActive)
		if rate > 1 {
			rate = 1
		}
	}

	return metrics.DailySnapshot{
		Date:                 in.Date.Format("2006-01-02"),
		TotalActiveEmployees: in.TotalActive,
		NonBioExempt:         in.NonBioExempt,
		TotalPunchIn:         in.Stats.UniqueCheckIns,
		TotalPunchOut:        in.Stats.UniqueCheckOuts,
		ExpectedHeadcount:    in.Baseline.Expected(in.Date),
		PresentToday:         present,
		AbsentToday:          absent,
		Absentees:            in.Baseline.Absentees(in.Date, in.Stats.UniqueCheckIns),
		CompletedToday:       in.Stats.Completed,
		IncompleteToday:      in.Stats.Incomplete,
		LateArrivals:         in.Stats.Late,
		AttendanceRate:       rate,
		SystemHealth:         metrics.HealthFor(rate),
		CalculatedAt:         in.Now,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
