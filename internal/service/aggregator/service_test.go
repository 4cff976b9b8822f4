package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func testService() *Service {
	return NewService(nil, nil, nil, nil, nil, nil, NewPolicy("09:30", 100))
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func labeled(id string, t time.Time, state punch.State, label punch.Label) punch.Labeled {
	return punch.Labeled{
		Event: punch.RawEvent{
			ID:           id,
			EmployeeCode: "EMP-001",
			PunchTime:    t,
			State:        state,
		},
		Label: label,
	}
}

func TestBuildRecord_CanonicalPairIsEarliestInLatestOut(t *testing.T) {
	s := testService()

	record := s.BuildRecord("EMP-001", testDate, []punch.Labeled{
		labeled("p2", at(12, 0), punch.StateCheckIn, punch.LabelInterimCheckin),
		labeled("p1", at(8, 55), punch.StateCheckIn, punch.LabelStandardCheckin),
		labeled("p3", at(12, 30), punch.StateCheckOut, punch.LabelEarlyCheckout),
		labeled("p4", at(17, 5), punch.StateCheckOut, punch.LabelStandardCheckout),
	})

	require.NotNil(t, record.CheckIn)
	require.NotNil(t, record.CheckOut)
	assert.Equal(t, at(8, 55), *record.CheckIn)
	assert.Equal(t, at(17, 5), *record.CheckOut)
	assert.True(t, record.Completed)
	assert.InDelta(t, 8.17, record.TotalHours, 0.01)
	assert.Equal(t, attendance.StatusPresent, record.Status)
	assert.False(t, record.Late)
	require.NotNil(t, record.CheckInLabel)
	assert.Equal(t, string(punch.LabelStandardCheckin), *record.CheckInLabel)
}

func TestBuildRecord_CheckInOnlyIsIncomplete(t *testing.T) {
	s := testService()

	record := s.BuildRecord("EMP-001", testDate, []punch.Labeled{
		labeled("p1", at(9, 0), punch.StateCheckIn, punch.LabelStandardCheckin),
	})

	require.NotNil(t, record.CheckIn)
	assert.Nil(t, record.CheckOut)
	assert.False(t, record.Completed)
	assert.Zero(t, record.TotalHours)
	assert.True(t, record.Open())
}

func TestBuildRecord_SpanOverTwelveHoursIsIncomplete(t *testing.T) {
	s := testService()

	record := s.BuildRecord("EMP-001", testDate, []punch.Labeled{
		labeled("p1", at(6, 0), punch.StateCheckIn, punch.LabelEarlyCheckin),
		labeled("p2", at(21, 30), punch.StateCheckOut, punch.LabelLateCheckout),
	})

	assert.False(t, record.Completed)
	assert.Zero(t, record.TotalHours)
}

func TestBuildRecord_CheckOutBeforeCheckInIsIncomplete(t *testing.T) {
	s := testService()

	record := s.BuildRecord("EMP-001", testDate, []punch.Labeled{
		labeled("p1", at(14, 0), punch.StateCheckIn, punch.LabelStandardCheckin),
		labeled("p2", at(7, 0), punch.StateCheckOut, punch.LabelEarlyCheckout),
	})

	assert.False(t, record.Completed)
	assert.Zero(t, record.TotalHours)
}

func TestBuildRecord_LatenessCutoff(t *testing.T) {
	s := testService()

	cases := []struct {
		name     string
		checkIn  time.Time
		wantLate bool
	}{
		{"before cutoff", at(9, 29), false},
		{"at cutoff", at(9, 30), false},
		{"after cutoff", at(9, 31), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := s.BuildRecord("EMP-001", testDate, []punch.Labeled{
				labeled("p1", tc.checkIn, punch.StateCheckIn, punch.LabelStandardCheckin),
			})

			assert.Equal(t, tc.wantLate, record.Late)
			if tc.wantLate {
				assert.Equal(t, attendance.StatusLate, record.Status)
			} else {
				assert.Equal(t, attendance.StatusPresent, record.Status)
			}
		})
	}
}

func TestBuildRecord_DuplicatePunchesCollapse(t *testing.T) {
	s := testService()

	events := []punch.Labeled{
		labeled("p1", at(9, 0), punch.StateCheckIn, punch.LabelStandardCheckin),
		labeled("p1", at(9, 0), punch.StateCheckIn, punch.LabelStandardCheckin),
		labeled("p2", at(17, 0), punch.StateCheckOut, punch.LabelStandardCheckout),
	}

	record := s.BuildRecord("EMP-001", testDate, events)
	assert.Equal(t, at(9, 0), *record.CheckIn)
	assert.Equal(t, at(17, 0), *record.CheckOut)
	assert.InDelta(t, 8.0, record.TotalHours, 0.001)
}

func TestRebuildRange_RejectsInvertedRange(t *testing.T) {
	s := testService()

	_, err := s.RebuildRange(context.Background(), testDate.AddDate(0, 0, 1), testDate)
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
}

func TestBuildRecord_Idempotent(t *testing.T) {
	s := testService()

	events := []punch.Labeled{
		labeled("p1", at(8, 45), punch.StateCheckIn, punch.LabelStandardCheckin),
		labeled("p2", at(17, 10), punch.StateCheckOut, punch.LabelStandardCheckout),
	}

	first := s.BuildRecord("EMP-001", testDate, events)
	second := s.BuildRecord("EMP-001", testDate, events)
	assert.Equal(t, first, second)
}
