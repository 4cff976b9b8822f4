package punch

import (
	"time"
)

// State is the coarse punch direction reported by the biometric terminal.
type State string

const (
	StateCheckIn  State = "check_in"
	StateCheckOut State = "check_out"
)

// RawEvent is one punch as deposited by the ingestion pipeline. The store is
// append-only; events may arrive duplicated or out of order.
type RawEvent struct {
	ID           string
	EmployeeCode string
	PunchTime    time.Time
	State        State
	TerminalID   string
	CreatedAt    time.Time
}

// Valid reports whether the event carries the fields the engine requires.
// Invalid events are skipped and logged, never fatal to a batch.
func (e RawEvent) Valid() bool {
	return e.EmployeeCode != "" && !e.PunchTime.IsZero()
}

// Label is the fine-grained classification of a punch against the
// employee's shift boundaries.
type Label string

const (
	LabelStandardCheckin  Label = "standard_checkin"
	LabelEarlyCheckin     Label = "early_checkin"
	LabelInterimCheckin   Label = "interim_checkin"
	LabelStandardCheckout Label = "standard_checkout"
	LabelEarlyCheckout    Label = "early_checkout"
	LabelLateCheckout     Label = "late_checkout"
	LabelInterimCheckout  Label = "interim_checkout"
)

// Labeled pairs a raw event with its classification.
type Labeled struct {
	Event RawEvent
	Label Label
}
