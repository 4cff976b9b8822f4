package response

import (
	"errors"
	"net/http"

	"github.com/biotrack-io/attendance-engine-go/internal/domain/attendance"
	"github.com/biotrack-io/attendance-engine-go/internal/domain/employee"
	"github.com/biotrack-io/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Internal failures never
// surface raw to the caller; the requester sees an explicit computation
// failed signal.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, attendance.ErrVersionConflict):
		Conflict(w, "Attendance record was modified concurrently")

	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		InternalServerError(w, "Metrics computation failed")
	}
}
