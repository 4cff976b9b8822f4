package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/punch"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.Repository {
	return &punchRepository{db: db}
}

// ListByDateRange implements punch.Repository.
func (r *punchRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]punch.RawEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, punch_time, punch_state, terminal_id, created_at
		FROM raw_punch_events
		WHERE punch_time >= $1 AND punch_time < $2
		ORDER BY employee_code, punch_time
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	var events []punch.RawEvent
	for rows.Next() {
		var ev punch.RawEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeCode, &ev.PunchTime, &ev.State, &ev.TerminalID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punch events: %w", err)
	}

	return events, nil
}

// ListByEmployeeAndDate implements punch.Repository.
func (r *punchRepository) ListByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) ([]punch.RawEvent, error) {
	q := GetQuerier(ctx, r.db)

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT id, employee_code, punch_time, punch_state, terminal_id, created_at
		FROM raw_punch_events
		WHERE employee_code = $1
		  AND punch_time >= $2 AND punch_time < $3
		ORDER BY punch_time
	`

	rows, err := q.Query(ctx, query, employeeCode, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events for employee: %w", err)
	}
	defer rows.Close()

	var events []punch.RawEvent
	for rows.Next() {
		var ev punch.RawEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeCode, &ev.PunchTime, &ev.State, &ev.TerminalID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punch events: %w", err)
	}

	return events, nil
}
