package report

import (
	"context"
	"fmt"
	"time"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/metrics"
	"github.com/xuri/excelize/v2"
)

// Service renders daily metrics into spreadsheet workbooks for the
// reporting collaborators. Delivery (email, chat) is out of scope; this
// only produces the file.
type Service struct {
	metricsService metrics.Service
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
}

func NewService(metricsService metrics.Service, attendanceRepo attendance.Repository, employeeRepo employee.Repository) *Service {
	return &Service{
		metricsService: metricsService,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// BuildDailyWorkbook produces a two-sheet workbook: the snapshot summary and
// the per-employee records behind it.
func (s *Service) BuildDailyWorkbook(ctx context.Context, date time.Time) (*excelize.File, error) {
	snapshot, err := s.metricsService.GetDailyMetrics(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily metrics: %w", err)
	}

	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	roster, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	f := excelize.NewFile()

	if err := writeSummarySheet(f, snapshot); err != nil {
		return nil, err
	}
	if err := writeRecordsSheet(f, records, roster); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSummarySheet(f *excelize.File, snap *metrics.DailySnapshot) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Date", snap.Date},
		{"Total Active Employees", snap.TotalActiveEmployees},
		{"Punch-Exempt Employees", snap.NonBioExempt},
		{"Unique Check-Ins", snap.TotalPunchIn},
		{"Unique Check-Outs", snap.TotalPunchOut},
		{"Expected Headcount", snap.ExpectedHeadcount},
		{"Present", snap.PresentToday},
		{"Absent", snap.AbsentToday},
		{"Absentees vs Expected", snap.Absentees},
		{"Completed Shifts", snap.CompletedToday},
		{"Incomplete Shifts", snap.IncompleteToday},
		{"Late Arrivals", snap.LateArrivals},
		{"Attendance Rate", fmt.Sprintf("%.1f%%", snap.AttendanceRate*100)},
		{"System Health", string(snap.SystemHealth)},
		{"Calculated At", snap.CalculatedAt.Format(time.RFC3339)},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to build summary cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return nil
}

// writeRecordsSheet lists the day's records followed by active roster
// employees with no record at all, so payroll sees absences explicitly
// instead of inferring them from missing rows.
func writeRecordsSheet(f *excelize.File, records []attendance.Record, roster []employee.Employee) error {
	const sheet = "Records"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create records sheet: %w", err)
	}

	header := []interface{}{
		"Employee Code", "Check-In", "Check-Out", "Total Hours",
		"Status", "Check-In Label", "Completed", "Late", "Notes",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write records header: %w", err)
	}

	hasRecord := make(map[string]bool, len(records))
	rowNum := 2
	writeRow := func(row []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to build records cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write records row: %w", err)
		}
		rowNum++
		return nil
	}

	for _, rec := range records {
		hasRecord[rec.EmployeeCode] = true
		row := []interface{}{
			rec.EmployeeCode,
			formatTimePtr(rec.CheckIn),
			formatTimePtr(rec.CheckOut),
			rec.TotalHours,
			string(rec.Status),
			stringPtrOrEmpty(rec.CheckInLabel),
			rec.Completed,
			rec.Late,
			rec.Notes,
		}
		if err := writeRow(row); err != nil {
			return err
		}
	}

	for _, emp := range roster {
		if hasRecord[emp.Code] {
			continue
		}
		status := string(attendance.StatusAbsent)
		if emp.NonBioExempt {
			status = string(attendance.StatusPresent)
		}
		row := []interface{}{
			emp.Code, "", "", 0.0, status, "", false, false,
			exemptNote(emp.NonBioExempt),
		}
		if err := writeRow(row); err != nil {
			return err
		}
	}

	return nil
}

func exemptNote(exempt bool) string {
	if exempt {
		return "exempt from punching"
	}
	return ""
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func stringPtrOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
