package leave

import (
	"strings"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
)

type LeaveCategory string

const (
	LeaveCategoryPaid LeaveCategory = "paid"
	LeaveCategorySick LeaveCategory = "sick"
)

// Label is the display name of the category
func (c LeaveCategory) Label() string {
	switch c {
	case LeaveCategoryPaid:
		return "Paid Time Off"
	case LeaveCategorySick:
		return "Sick Time Off"
	default:
		return string(c)
	}
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string

	StartDate attendance.Date
	EndDate   attendance.Date

	Category LeaveCategory      // 'paid', 'sick'
	Status   LeaveRequestStatus // 'pending', 'approved', 'rejected'
}

// IsPending reports whether the request can still be approved or rejected
func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}

// BelongsTo matches the request against an employee ID, falling back to the
// display name for requests filed without one.
func (r LeaveRequest) BelongsTo(employeeID, name string) bool {
	if employeeID != "" && r.EmployeeID != "" {
		return r.EmployeeID == employeeID
	}
	return name != "" && strings.EqualFold(strings.TrimSpace(r.EmployeeName), strings.TrimSpace(name))
}

// Days counts calendar days in the inclusive range
func (r LeaveRequest) Days() int {
	days := 0
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDays(1) {
		days++
	}
	return days
}
