package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/report"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Check in before checking out", nil)
	case errors.Is(err, attendance.ErrNoEmployeeProfile):
		Forbidden(w, "No employee profile for this session")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance entry not found")
	case errors.Is(err, attendance.ErrAttendanceAlreadyProcessed):
		Conflict(w, "Attendance entry already processed")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrEmployeeProfileNotFound):
		Forbidden(w, "Employee profile not found")

	// Report errors
	case errors.Is(err, report.ErrReportGenerationFailed):
		slog.Error("Report generation failed", "error", err)
		InternalServerError(w, "Failed to generate report")

	// Access errors
	case errors.Is(err, user.ErrTeamAccessRequired),
		errors.Is(err, user.ErrEmployeeAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrAccessRestricted):
		Forbidden(w, err.Error())

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
