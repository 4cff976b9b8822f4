package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/keylock"
)

// Policy carries the anti-overbilling parameters.
type Policy struct {
	CreditHours float64 // hours credited to a record with an unmatched punch-in
	ChunkSize   int
}

// Adjustment is the outcome of evaluating one open record.
type Adjustment struct {
	Adjusted   bool
	CheckOut   time.Time
	Hours      float64
	HoursSaved float64
}

// Evaluate applies the capped-credit heuristic to an open record. When the
// raw elapsed time since check-in exceeds the credit, hours are capped at
// the credit and the overshoot is reported as saved; otherwise the record is
// left for a real punch-out to close it.
func Evaluate(record attendance.Record, now time.Time, creditHours float64) Adjustment {
	if !record.Open() {
		return Adjustment{}
	}

	raw := record.ElapsedHours(now)
	if raw <= creditHours {
		return Adjustment{}
	}

	return Adjustment{
		Adjusted:   true,
		CheckOut:   record.CheckIn.Add(time.Duration(creditHours * float64(time.Hour))),
		Hours:      creditHours,
		HoursSaved: raw - creditHours,
	}
}

// Service scans for records with an open check-in and no check-out and
// writes back capped corrections so an unmatched punch cannot accrue
// unbounded hours.
type Service struct {
	attendanceRepo attendance.Repository
	locks          *keylock.KeyLock
	policy         Policy
	now            func() time.Time
}

func NewService(attendanceRepo attendance.Repository, locks *keylock.KeyLock, policy Policy, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		attendanceRepo: attendanceRepo,
		locks:          locks,
		policy:         policy,
		now:            now,
	}
}

// ResolveRange processes all open records in [from, to]. Failures are
// per-record: a record that cannot be corrected is logged and left untouched
// for the next pass, and the rest of the batch continues.
func (s *Service) ResolveRange(ctx context.Context, from, to time.Time) (attendance.ResolutionSummary, error) {
	var summary attendance.ResolutionSummary
	if to.Before(from) {
		return summary, attendance.ErrInvalidDateRange
	}

	// Keyset pagination. The cursor advances past every fetched record
	// whatever its outcome, so records that stay open (below the credit, or a
	// failed write) cannot pin the head of the listing and starve the chunks
	// behind them.
	var cursor attendance.OpenCursor
	for {
		records, err := s.attendanceRepo.ListOpen(ctx, from, to, cursor, s.policy.ChunkSize)
		if err != nil {
			return summary, fmt.Errorf("failed to list open records: %w", err)
		}
		if len(records) == 0 {
			break
		}

		for _, rec := range records {
			summary.ProcessedRecords++
			adj := s.resolveRecord(ctx, rec)
			switch {
			case adj == nil:
				summary.FailedRecords++
			case adj.Adjusted:
				summary.AdjustmentsMade++
				summary.HoursSaved += adj.HoursSaved
			default:
				summary.SkippedRecords++
			}
		}

		last := records[len(records)-1]
		cursor = attendance.OpenCursor{Date: last.Date, EmployeeCode: last.EmployeeCode}
		if len(records) < s.policy.ChunkSize {
			break
		}
	}

	return summary, nil
}

// ResolveToday bounds overbilling in near-real-time by scanning the current
// day's open records. Run on the resolver interval by the scheduler.
func (s *Service) ResolveToday(ctx context.Context) error {
	today := dateOnly(s.now())
	summary, err := s.ResolveRange(ctx, today, today)
	if err != nil {
		return err
	}

	if summary.AdjustmentsMade > 0 {
		slog.Info("resolved missing punch-outs",
			"processed", summary.ProcessedRecords,
			"adjusted", summary.AdjustmentsMade,
			"hours_saved", summary.HoursSaved,
			"failed", summary.FailedRecords)
	}
	return nil
}

// resolveRecord returns nil when the write-back failed.
func (s *Service) resolveRecord(ctx context.Context, rec attendance.Record) *Adjustment {
	key := rec.EmployeeCode + "|" + rec.Date.Format("2006-01-02")
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	now := s.now()
	adj := Evaluate(rec, now, s.policy.CreditHours)
	if !adj.Adjusted {
		return &adj
	}

	checkOut := adj.CheckOut
	rec.CheckOut = &checkOut
	rec.TotalHours = adj.Hours
	rec.Notes = appendNote(rec.Notes, fmt.Sprintf(
		"[%s] auto-adjusted: missing punch-out, capped at %.2fh credit (raw %.2fh, saved %.2fh)",
		now.UTC().Format(time.RFC3339), adj.Hours, adj.Hours+adj.HoursSaved, adj.HoursSaved,
	))

	if _, err := s.attendanceRepo.Update(ctx, rec); err != nil {
		// Version conflicts and storage failures alike: leave the record
		// unmodified for the next scheduled pass.
		slog.Warn("failed to write punch-out correction",
			"record_id", rec.ID,
			"employee_code", rec.EmployeeCode,
			"date", rec.Date.Format("2006-01-02"),
			"error", err)
		return nil
	}

	return &adj
}

// appendNote adds to the audit trail without overwriting prior notes.
func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
