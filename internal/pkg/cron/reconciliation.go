package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/service/aggregator"
)

// DayRebuilder recomputes the canonical records for one calendar date.
type DayRebuilder interface {
	RebuildDate(ctx context.Context, date time.Time) (aggregator.RebuildSummary, error)
}

// OpenResolver corrects the current day's records with a missing punch-out.
type OpenResolver interface {
	ResolveToday(ctx context.Context) error
}

// ReconciliationJobs wires the engine's two background triggers: the
// near-real-time open punch-out scan and the nightly rebuild of the previous
// day's records.
type ReconciliationJobs struct {
	aggregatorSvc DayRebuilder
	resolverSvc   OpenResolver
	now           func() time.Time
}

func NewReconciliationJobs(aggregatorSvc DayRebuilder, resolverSvc OpenResolver, now func() time.Time) *ReconciliationJobs {
	if now == nil {
		now = time.Now
	}
	return &ReconciliationJobs{
		aggregatorSvc: aggregatorSvc,
		resolverSvc:   resolverSvc,
		now:           now,
	}
}

func (j *ReconciliationJobs) RegisterJobs(scheduler *Scheduler, resolverInterval time.Duration) {
	scheduler.AddJob("resolve_open_punchouts", resolverInterval, j.ResolveOpenPunchOuts)
	scheduler.AddJob("nightly_reconciliation", 1*time.Hour, j.NightlyReconciliation)
}

// ResolveOpenPunchOuts bounds overbilling in near-real-time by rescanning
// the current day's open records on every tick.
func (j *ReconciliationJobs) ResolveOpenPunchOuts(ctx context.Context) error {
	return j.resolverSvc.ResolveToday(ctx)
}

// NightlyReconciliation rebuilds yesterday's canonical records from the raw
// punch store once the day is complete. The job ticks hourly and acts only
// in the 00:00-00:59 UTC window.
func (j *ReconciliationJobs) NightlyReconciliation(ctx context.Context) error {
	now := j.now().UTC()
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)
	summary, err := j.aggregatorSvc.RebuildDate(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("nightly reconciliation completed",
		"date", yesterday.Format("2006-01-02"),
		"punches_read", summary.PunchesRead,
		"punches_skipped", summary.PunchesSkipped,
		"records_written", summary.RecordsWritten,
		"records_failed", summary.RecordsFailed)
	return nil
}
