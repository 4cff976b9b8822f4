package classifier

import (
	"testing"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday

func testShift() employee.Shift {
	return employee.Shift{
		Name:               "day",
		StartTime:          time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:            time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		GracePeriodMinutes: 30,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func event(id string, t time.Time, state punch.State) punch.RawEvent {
	return punch.RawEvent{
		ID:           id,
		EmployeeCode: "EMP-001",
		PunchTime:    t,
		State:        state,
		TerminalID:   "T1",
	}
}

func TestClassify_CheckInWindows(t *testing.T) {
	c := New(NewPolicy(30, 60))

	cases := []struct {
		name string
		at   time.Time
		want punch.Label
	}{
		{"ten minutes early is standard", at(8, 50), punch.LabelStandardCheckin},
		{"forty minutes early is early", at(8, 20), punch.LabelEarlyCheckin},
		{"exactly at grace boundary is standard", at(8, 30), punch.LabelStandardCheckin},
		{"on time is standard", at(9, 0), punch.LabelStandardCheckin},
		{"late arrival is still standard", at(10, 15), punch.LabelStandardCheckin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			labeled := c.Classify(testDate, []punch.RawEvent{
				event("p1", tc.at, punch.StateCheckIn),
			}, testShift())

			require.Len(t, labeled, 1)
			assert.Equal(t, tc.want, labeled[0].Label)
		})
	}
}

func TestClassify_CheckOutWindows(t *testing.T) {
	c := New(NewPolicy(30, 60))

	cases := []struct {
		name string
		at   time.Time
		want punch.Label
	}{
		{"before end minus grace is early", at(16, 0), punch.LabelEarlyCheckout},
		{"within grace of end is standard", at(16, 45), punch.LabelStandardCheckout},
		{"at end is standard", at(17, 0), punch.LabelStandardCheckout},
		{"within late threshold is standard", at(17, 45), punch.LabelStandardCheckout},
		{"past late threshold is late", at(18, 30), punch.LabelLateCheckout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			labeled := c.Classify(testDate, []punch.RawEvent{
				event("p1", tc.at, punch.StateCheckOut),
			}, testShift())

			require.Len(t, labeled, 1)
			assert.Equal(t, tc.want, labeled[0].Label)
		})
	}
}

func TestClassify_AtMostOneStandardPerDay(t *testing.T) {
	c := New(NewPolicy(30, 60))

	events := []punch.RawEvent{
		event("p1", at(8, 50), punch.StateCheckIn),
		event("p2", at(12, 0), punch.StateCheckIn),
		event("p3", at(12, 30), punch.StateCheckOut),
		event("p4", at(17, 5), punch.StateCheckOut),
		event("p5", at(17, 10), punch.StateCheckOut),
	}

	labeled := c.Classify(testDate, events, testShift())
	require.Len(t, labeled, 5)

	var standardIns, standardOuts int
	for _, lp := range labeled {
		switch lp.Label {
		case punch.LabelStandardCheckin:
			standardIns++
		case punch.LabelStandardCheckout:
			standardOuts++
		}
	}
	assert.Equal(t, 1, standardIns)
	assert.Equal(t, 1, standardOuts)

	assert.Equal(t, punch.LabelInterimCheckin, labeled[1].Label)
	assert.Equal(t, punch.LabelEarlyCheckout, labeled[2].Label)
	assert.Equal(t, punch.LabelStandardCheckout, labeled[3].Label)
	assert.Equal(t, punch.LabelInterimCheckout, labeled[4].Label)
}

func TestClassify_EarlyCheckinDoesNotConsumeStandardSlot(t *testing.T) {
	c := New(NewPolicy(30, 60))

	events := []punch.RawEvent{
		event("p1", at(8, 20), punch.StateCheckIn), // 40 min early
		event("p2", at(9, 5), punch.StateCheckIn),
	}

	labeled := c.Classify(testDate, events, testShift())
	require.Len(t, labeled, 2)
	assert.Equal(t, punch.LabelEarlyCheckin, labeled[0].Label)
	assert.Equal(t, punch.LabelStandardCheckin, labeled[1].Label)
}

func TestClassify_SortsOutOfOrderEvents(t *testing.T) {
	c := New(NewPolicy(30, 60))

	events := []punch.RawEvent{
		event("p2", at(12, 0), punch.StateCheckIn),
		event("p1", at(8, 55), punch.StateCheckIn),
	}

	labeled := c.Classify(testDate, events, testShift())
	require.Len(t, labeled, 2)
	assert.Equal(t, "p1", labeled[0].Event.ID)
	assert.Equal(t, punch.LabelStandardCheckin, labeled[0].Label)
	assert.Equal(t, punch.LabelInterimCheckin, labeled[1].Label)
}

func TestClassify_UnknownStateFallsBackToStandardCheckout(t *testing.T) {
	c := New(NewPolicy(30, 60))

	events := []punch.RawEvent{
		event("p1", at(10, 0), punch.State("255")),
		event("p2", at(11, 0), punch.State("255")),
	}

	labeled := c.Classify(testDate, events, testShift())
	require.Len(t, labeled, 2)
	assert.Equal(t, punch.LabelStandardCheckout, labeled[0].Label)
	assert.Equal(t, punch.LabelInterimCheckout, labeled[1].Label)
}

func TestClassify_ZeroShiftGraceUsesPolicyGrace(t *testing.T) {
	c := New(NewPolicy(30, 60))
	shift := testShift()
	shift.GracePeriodMinutes = 0

	labeled := c.Classify(testDate, []punch.RawEvent{
		event("p1", at(8, 50), punch.StateCheckIn),
	}, shift)

	require.Len(t, labeled, 1)
	assert.Equal(t, punch.LabelStandardCheckin, labeled[0].Label)
}
