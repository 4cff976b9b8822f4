package cron

import (
	"context"
	"testing"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/service/aggregator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRebuilder struct {
	dates []time.Time
}

func (f *fakeRebuilder) RebuildDate(_ context.Context, date time.Time) (aggregator.RebuildSummary, error) {
	f.dates = append(f.dates, date)
	return aggregator.RebuildSummary{Dates: 1}, nil
}

type fakeResolver struct {
	calls int
}

func (f *fakeResolver) ResolveToday(_ context.Context) error {
	f.calls++
	return nil
}

func clockAt(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 3, hour, 15, 0, 0, time.UTC)
	}
}

func TestNightlyReconciliation_OnlyActsInMidnightWindow(t *testing.T) {
	rebuilder := &fakeRebuilder{}

	for hour := 1; hour < 24; hour++ {
		jobs := NewReconciliationJobs(rebuilder, &fakeResolver{}, clockAt(hour))
		require.NoError(t, jobs.NightlyReconciliation(context.Background()))
	}

	assert.Empty(t, rebuilder.dates)
}

func TestNightlyReconciliation_RebuildsYesterday(t *testing.T) {
	rebuilder := &fakeRebuilder{}
	jobs := NewReconciliationJobs(rebuilder, &fakeResolver{}, clockAt(0))

	require.NoError(t, jobs.NightlyReconciliation(context.Background()))

	require.Len(t, rebuilder.dates, 1)
	assert.Equal(t, "2025-06-02", rebuilder.dates[0].Format("2006-01-02"))
}

func TestResolveOpenPunchOuts_DelegatesToResolver(t *testing.T) {
	resolver := &fakeResolver{}
	jobs := NewReconciliationJobs(&fakeRebuilder{}, resolver, clockAt(12))

	require.NoError(t, jobs.ResolveOpenPunchOuts(context.Background()))
	assert.Equal(t, 1, resolver.calls)
}

func TestRegisterJobs(t *testing.T) {
	s := NewScheduler()
	jobs := NewReconciliationJobs(&fakeRebuilder{}, &fakeResolver{}, clockAt(12))

	jobs.RegisterJobs(s, 5*time.Minute)

	require.Len(t, s.jobs, 2)
	assert.Equal(t, "resolve_open_punchouts", s.jobs[0].Name)
	assert.Equal(t, 5*time.Minute, s.jobs[0].Interval)
	assert.Equal(t, "nightly_reconciliation", s.jobs[1].Name)
	assert.Equal(t, time.Hour, s.jobs[1].Interval)
}
