package attendance

import (
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/pkg/validator"
)

// DayStats are the per-date aggregate counts the metrics calculator reads.
type DayStats struct {
	UniqueCheckIns  int
	UniqueCheckOuts int
	Completed       int
	Incomplete      int
	Late            int
}

// DailyCheckInCount is one day's distinct check-in headcount, consumed by
// the expected-headcount estimator.
type DailyCheckInCount struct {
	Date  time.Time
	Count int
}

// ResolutionSummary reports one missing punch-out resolution pass.
type ResolutionSummary struct {
	ProcessedRecords int     `json:"processedRecords"`
	AdjustmentsMade  int     `json:"adjustmentsMade"`
	HoursSaved       float64 `json:"hoursSaved"`
	SkippedRecords   int     `json:"skippedRecords"`
	FailedRecords    int     `json:"failedRecords"`
}

type ResolutionRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *ResolutionRequest) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed [start, end] dates. Validate must pass first.
func (r *ResolutionRequest) Range() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return start, end
}

type RecordResponse struct {
	ID           string   `json:"id"`
	EmployeeCode string   `json:"employee_code"`
	Date         string   `json:"date"`
	CheckIn      *string  `json:"check_in,omitempty"`
	CheckOut     *string  `json:"check_out,omitempty"`
	TotalHours   float64  `json:"total_hours"`
	Status       string   `json:"status"`
	CheckInLabel *string  `json:"check_in_label,omitempty"`
	Completed    bool     `json:"completed"`
	Late         bool     `json:"late"`
	Notes        string   `json:"notes,omitempty"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EmployeeCode: r.EmployeeCode,
		Date:         r.Date.Format("2006-01-02"),
		CheckIn:      timePtrToString(r.CheckIn),
		CheckOut:     timePtrToString(r.CheckOut),
		TotalHours:   r.TotalHours,
		Status:       string(r.Status),
		CheckInLabel: r.CheckInLabel,
		Completed:    r.Completed,
		Late:         r.Late,
		Notes:        r.Notes,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}
