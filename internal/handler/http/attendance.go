package http

import (
	"encoding/json"
	"net/http"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/punch"
	"github.com/biotrack-io/attendance-engine-go/internal/handler/http/response"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/validator"
	"github.com/biotrack-io/attendance-engine-go/internal/service/aggregator"
	"github.com/biotrack-io/attendance-engine-go/internal/service/resolver"
)

type AttendanceHandler interface {
	// ListRecords returns the canonical records for a date
	ListRecords(w http.ResponseWriter, r *http.Request)
	// ListPunches returns one employee's raw punch trail for a date
	ListPunches(w http.ResponseWriter, r *http.Request)
	// RunResolution runs the missing punch-out resolver over a range
	RunResolution(w http.ResponseWriter, r *http.Request)
	// RunRebuild recomputes canonical records over a range
	RunRebuild(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceRepo attendance.Repository
	punchRepo      punch.Repository
	employeeRepo   employee.Repository
	resolverSvc    *resolver.Service
	aggregatorSvc  *aggregator.Service
}

func NewAttendanceHandler(
	attendanceRepo attendance.Repository,
	punchRepo punch.Repository,
	employeeRepo employee.Repository,
	resolverSvc *resolver.Service,
	aggregatorSvc *aggregator.Service,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceRepo: attendanceRepo,
		punchRepo:      punchRepo,
		employeeRepo:   employeeRepo,
		resolverSvc:    resolverSvc,
		aggregatorSvc:  aggregatorSvc,
	}
}

// ListRecords handles GET /attendance/records
func (h *attendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date") // format: YYYY-MM-DD, default: today

	records, err := h.attendanceRepo.ListByDate(r.Context(), parseDate(date))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, attendance.NewRecordResponse(rec))
	}

	response.Success(w, result)
}

// ListPunches handles GET /attendance/punches
func (h *attendanceHandlerImpl) ListPunches(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("employee_code")
	if !validator.IsValidEmployeeCode(code) {
		response.BadRequest(w, "Invalid employee code", nil)
		return
	}

	if _, err := h.employeeRepo.GetByCode(r.Context(), code); err != nil {
		response.HandleError(w, err)
		return
	}

	date := r.URL.Query().Get("date") // format: YYYY-MM-DD, default: today
	events, err := h.punchRepo.ListByEmployeeAndDate(r.Context(), code, parseDate(date))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]punch.EventResponse, 0, len(events))
	for _, ev := range events {
		result = append(result, punch.NewEventResponse(ev))
	}

	response.Success(w, result)
}

// RunResolution handles POST /attendance/resolve-missing-punchouts
func (h *attendanceHandlerImpl) RunResolution(w http.ResponseWriter, r *http.Request) {
	var req attendance.ResolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	from, to := req.Range()
	summary, err := h.resolverSvc.ResolveRange(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// RunRebuild handles POST /attendance/rebuild
func (h *attendanceHandlerImpl) RunRebuild(w http.ResponseWriter, r *http.Request) {
	var req attendance.ResolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	from, to := req.Range()
	summary, err := h.aggregatorSvc.RebuildRange(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
