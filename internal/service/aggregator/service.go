package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/punch"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/database"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/keylock"
	"github.com/biotrack-io/attendance-engine-go/internal/repository/postgresql"
	"github.com/biotrack-io/attendance-engine-go/internal/service/classifier"
)

// Policy carries the aggregation thresholds, all configuration-driven.
type Policy struct {
	LatenessCutoff string        // HH:MM; check-ins after this are flagged late
	MaxShiftSpan   time.Duration // beyond this a check-in/out pair is incomplete
	ChunkSize      int
}

func NewPolicy(latenessCutoff string, chunkSize int) Policy {
	return Policy{
		LatenessCutoff: latenessCutoff,
		MaxShiftSpan:   12 * time.Hour,
		ChunkSize:      chunkSize,
	}
}

// RebuildSummary reports one aggregation pass over a date range.
type RebuildSummary struct {
	Dates          int `json:"dates"`
	PunchesRead    int `json:"punchesRead"`
	PunchesSkipped int `json:"punchesSkipped"`
	RecordsWritten int `json:"recordsWritten"`
	RecordsFailed  int `json:"recordsFailed"`
}

type Service struct {
	db             *database.DB
	punchRepo      punch.Repository
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	classifier     *classifier.Classifier
	locks          *keylock.KeyLock
	policy         Policy
}

func NewService(
	db *database.DB,
	punchRepo punch.Repository,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
	classifier *classifier.Classifier,
	locks *keylock.KeyLock,
	policy Policy,
) *Service {
	return &Service{
		db:             db,
		punchRepo:      punchRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		classifier:     classifier,
		locks:          locks,
		policy:         policy,
	}
}

// RebuildRange recomputes one canonical record per (employee, date) from the
// raw punch store. Recomputation is idempotent: unchanged raw data produces
// identical records.
func (s *Service) RebuildRange(ctx context.Context, from, to time.Time) (RebuildSummary, error) {
	var summary RebuildSummary
	if to.Before(from) {
		return summary, attendance.ErrInvalidDateRange
	}

	for date := dateOnly(from); !date.After(dateOnly(to)); date = date.AddDate(0, 0, 1) {
		daySummary, err := s.RebuildDate(ctx, date)
		if err != nil {
			return summary, fmt.Errorf("rebuild %s: %w", date.Format("2006-01-02"), err)
		}
		summary.Dates++
		summary.PunchesRead += daySummary.PunchesRead
		summary.PunchesSkipped += daySummary.PunchesSkipped
		summary.RecordsWritten += daySummary.RecordsWritten
		summary.RecordsFailed += daySummary.RecordsFailed
	}

	return summary, nil
}

// RebuildDate recomputes all records for one calendar date.
func (s *Service) RebuildDate(ctx context.Context, date time.Time) (RebuildSummary, error) {
	date = dateOnly(date)
	summary := RebuildSummary{Dates: 1}

	events, err := s.punchRepo.ListByDateRange(ctx, date, date.AddDate(0, 0, 1))
	if err != nil {
		return summary, fmt.Errorf("failed to read punch events: %w", err)
	}
	summary.PunchesRead = len(events)

	byEmployee := make(map[string][]punch.RawEvent)
	var codes []string
	for _, ev := range events {
		if !ev.Valid() {
			summary.PunchesSkipped++
			slog.Warn("skipping punch event with missing fields",
				"punch_id", ev.ID,
				"employee_code", ev.EmployeeCode,
				"terminal_id", ev.TerminalID)
			continue
		}
		if _, seen := byEmployee[ev.EmployeeCode]; !seen {
			codes = append(codes, ev.EmployeeCode)
		}
		byEmployee[ev.EmployeeCode] = append(byEmployee[ev.EmployeeCode], ev)
	}
	sort.Strings(codes)

	// Chunked so one day's batch bounds memory and database load.
	for start := 0; start < len(codes); start += s.policy.ChunkSize {
		end := start + s.policy.ChunkSize
		if end > len(codes) {
			end = len(codes)
		}
		for _, code := range codes[start:end] {
			if err := s.rebuildEmployeeDay(ctx, code, date, byEmployee[code]); err != nil {
				summary.RecordsFailed++
				slog.Error("failed to rebuild attendance record",
					"employee_code", code,
					"date", date.Format("2006-01-02"),
					"error", err)
				continue
			}
			summary.RecordsWritten++
		}
	}

	return summary, nil
}

func (s *Service) rebuildEmployeeDay(ctx context.Context, code string, date time.Time, events []punch.RawEvent) error {
	shift, err := s.employeeRepo.GetShiftByEmployeeCode(ctx, code)
	if err != nil {
		if !errors.Is(err, employee.ErrShiftNotFound) {
			return err
		}
		shift = employee.DefaultShift()
		slog.Warn("no shift assigned, using default", "employee_code", code)
	}

	labeled := s.classifier.Classify(date, events, shift)
	record := s.BuildRecord(code, date, labeled)

	key := code + "|" + date.Format("2006-01-02")
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	// One transaction covers the upsert and its unchanged-row re-select, so
	// the fallback read sees the row the insert conflicted with.
	return postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		_, err := s.attendanceRepo.Upsert(ctx, record)
		return err
	})
}

// BuildRecord derives the canonical record from labeled punches. The
// chronological rule is authoritative for hours: canonical check-in is the
// earliest check-in-shaped punch and canonical check-out the latest
// check-out-shaped punch, regardless of labels. Labels ride along as
// annotations.
func (s *Service) BuildRecord(code string, date time.Time, labeled []punch.Labeled) attendance.Record {
	record := attendance.Record{
		EmployeeCode: code,
		Date:         date,
		Status:       attendance.StatusPresent,
	}

	var checkInLabel punch.Label
	for _, lp := range labeled {
		ev := lp.Event
		switch ev.State {
		case punch.StateCheckIn:
			if record.CheckIn == nil || ev.PunchTime.Before(*record.CheckIn) {
				t := ev.PunchTime
				record.CheckIn = &t
				checkInLabel = lp.Label
			}
		default:
			// Check-out-shaped, including the unclassifiable fallback.
			if record.CheckOut == nil || ev.PunchTime.After(*record.CheckOut) {
				t := ev.PunchTime
				record.CheckOut = &t
			}
		}
	}

	if checkInLabel != "" {
		label := string(checkInLabel)
		record.CheckInLabel = &label
	}

	if record.CheckIn != nil && record.CheckOut != nil {
		span := record.CheckOut.Sub(*record.CheckIn)
		if span > 0 && span <= s.policy.MaxShiftSpan {
			record.Completed = true
			record.TotalHours = span.Hours()
		}
	}

	if record.CheckIn != nil && record.CheckIn.After(s.latenessCutoffOn(date)) {
		record.Late = true
		record.Status = attendance.StatusLate
	}

	return record
}

func (s *Service) latenessCutoffOn(date time.Time) time.Time {
	cutoff, err := time.Parse("15:04", s.policy.LatenessCutoff)
	if err != nil {
		cutoff = time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		cutoff.Hour(), cutoff.Minute(), 0, 0, date.Location())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
