package classifier

import (
	"log/slog"
	"sort"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/punch"
)

// Policy carries the classification thresholds. Both come from configuration.
type Policy struct {
	GracePeriod           time.Duration // around shift start, and before shift end
	LateCheckoutThreshold time.Duration // past shift end
}

func NewPolicy(graceMinutes, lateCheckoutMinutes int) Policy {
	return Policy{
		GracePeriod:           time.Duration(graceMinutes) * time.Minute,
		LateCheckoutThreshold: time.Duration(lateCheckoutMinutes) * time.Minute,
	}
}

type Classifier struct {
	policy Policy
}

func New(policy Policy) *Classifier {
	return &Classifier{policy: policy}
}

// Classify labels one employee's punches for one calendar date against the
// shift boundaries. Rules:
//
//   - First check-in within ±grace of shift start, or after it, is
//     standard_checkin; earlier than start−grace is early_checkin. Late
//     arrival stays standard_checkin; lateness is a separate flag on the
//     record, not a punch type.
//   - Once a standard_checkin exists, further check-ins are interim_checkin.
//   - Check-outs before end−grace are early_checkout, after
//     end+lateThreshold late_checkout, otherwise standard_checkout. Only a
//     standard_checkout closes the slot; check-outs after it are
//     interim_checkout.
//   - A punch with an unknown state defaults to standard_checkout. This is
//     the documented fallback, not an error.
//
// At most one punch per day is labeled standard_checkin and at most one
// standard_checkout.
func (c *Classifier) Classify(date time.Time, events []punch.RawEvent, shift employee.Shift) []punch.Labeled {
	sorted := make([]punch.RawEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PunchTime.Equal(sorted[j].PunchTime) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].PunchTime.Before(sorted[j].PunchTime)
	})

	shiftStart := shift.StartOn(date)
	shiftEnd := shift.EndOn(date)
	grace := shift.Grace()
	if grace == 0 {
		grace = c.policy.GracePeriod
	}

	labeled := make([]punch.Labeled, 0, len(sorted))
	var hasStandardIn, hasStandardOut bool

	for _, ev := range sorted {
		var label punch.Label

		switch ev.State {
		case punch.StateCheckIn:
			switch {
			case hasStandardIn:
				label = punch.LabelInterimCheckin
			case ev.PunchTime.Before(shiftStart.Add(-grace)):
				label = punch.LabelEarlyCheckin
			default:
				label = punch.LabelStandardCheckin
				hasStandardIn = true
			}

		case punch.StateCheckOut:
			switch {
			case hasStandardOut:
				label = punch.LabelInterimCheckout
			case ev.PunchTime.Before(shiftEnd.Add(-grace)):
				label = punch.LabelEarlyCheckout
			case ev.PunchTime.After(shiftEnd.Add(c.policy.LateCheckoutThreshold)):
				label = punch.LabelLateCheckout
			default:
				label = punch.LabelStandardCheckout
				hasStandardOut = true
			}

		default:
			slog.Warn("unclassifiable punch state, applying checkout fallback",
				"employee_code", ev.EmployeeCode,
				"punch_state", ev.State,
				"punch_time", ev.PunchTime)
			if hasStandardOut {
				label = punch.LabelInterimCheckout
			} else {
				label = punch.LabelStandardCheckout
				hasStandardOut = true
			}
		}

		labeled = append(labeled, punch.Labeled{Event: ev, Label: label})
	}

	return labeled
}
