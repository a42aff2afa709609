package leave

import (
	"strings"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/validator"
)

// LeaveRequestFilter selects one category tab and an optional name search.
// An empty Category lists every category.
type LeaveRequestFilter struct {
	Category string `json:"category"`
	Query    string `json:"q"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Category != "" && !validator.IsInSlice(f.Category, []string{string(LeaveCategoryPaid), string(LeaveCategorySick)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: paid, sick",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (f LeaveRequestFilter) Matches(r LeaveRequest) bool {
	if f.Category != "" && string(r.Category) != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" || strings.Contains(strings.ToLower(r.EmployeeName), q)
}

type LeaveRequestResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id,omitempty"`
	EmployeeName  string `json:"employee_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalDays     int    `json:"total_days"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Status        string `json:"status"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		StartDate:     r.StartDate.String(),
		EndDate:       r.EndDate.String(),
		TotalDays:     r.Days(),
		Category:      string(r.Category),
		CategoryLabel: r.Category.Label(),
		Status:        string(r.Status),
	}
}

type ListLeaveRequestResponse struct {
	TotalCount    int64                  `json:"total_count"`
	PendingCount  int64                  `json:"pending_count"`
	LeaveRequests []LeaveRequestResponse `json:"leave_requests"`
}

// ApplyLeaveRequest is an employee's leave application. Dates are inclusive.
type ApplyLeaveRequest struct {
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	startDate attendance.Date
	endDate   attendance.Date
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Category, []string{string(LeaveCategoryPaid), string(LeaveCategorySick)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: paid, sick",
		})
	}

	start, err := attendance.ParseDate(r.StartDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, err := attendance.ParseDate(r.EndDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if start.After(end) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}

	r.startDate, r.endDate = start, end
	return nil
}

// Dates returns the range parsed by Validate
func (r ApplyLeaveRequest) Dates() (start, end attendance.Date) {
	return r.startDate, r.endDate
}
