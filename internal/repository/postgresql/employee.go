package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// GetByCode implements employee.Repository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, full_name, active, non_bio_exempt, shift_id, created_at, updated_at
		FROM employees
		WHERE code = $1
		LIMIT 1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, code).Scan(
		&emp.ID, &emp.Code, &emp.FullName, &emp.Active, &emp.NonBioExempt,
		&emp.ShiftID, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.Repository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, full_name, active, non_bio_exempt, shift_id, created_at, updated_at
		FROM employees
		WHERE active
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Code, &emp.FullName, &emp.Active, &emp.NonBioExempt,
			&emp.ShiftID, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// CountActive implements employee.Repository.
func (r *employeeRepository) CountActive(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}

// CountNonBioExempt implements employee.Repository.
func (r *employeeRepository) CountNonBioExempt(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE active AND non_bio_exempt`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count non-bio-exempt employees: %w", err)
	}
	return count, nil
}

// GetShiftByEmployeeCode implements employee.Repository.
func (r *employeeRepository) GetShiftByEmployeeCode(ctx context.Context, code string) (employee.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.name, s.start_time, s.end_time, s.grace_period_minutes
		FROM employees e
		JOIN shifts s ON s.id = e.shift_id
		WHERE e.code = $1
		LIMIT 1
	`

	var shift employee.Shift
	err := q.QueryRow(ctx, query, code).Scan(
		&shift.ID, &shift.Name, &shift.StartTime, &shift.EndTime, &shift.GracePeriodMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Shift{}, employee.ErrShiftNotFound
		}
		return employee.Shift{}, fmt.Errorf("failed to get shift for employee: %w", err)
	}

	return shift, nil
}
