package fixtures

import (
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/leave"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func date(year int, month time.Month, day int) attendance.Date {
	return attendance.Date{Year: year, Month: month, Day: day}
}

func clock(hour, minute int) *attendance.TimeOfDay {
	t := attendance.Clock(hour, minute)
	return &t
}

// ==========================================
// EMPLOYEE DIRECTORY
// ==========================================

// Employees returns the demo directory. Index follows directory order.
func Employees() []employee.Employee {
	list := []employee.Employee{
		{ID: "EMP001", Name: "Rajesh Kumar Singh", Department: "Engineering", Location: "Bangalore"},
		{ID: "EMP002", Name: "Priya Sharma", Department: "HR", Location: "Delhi"},
		{ID: "EMP003", Name: "Amit Verma", Department: "Finance", Location: "Mumbai"},
		{ID: "EMP004", Name: "Neha Gupta", Department: "Design", Location: "Pune"},
		{ID: "EMP005", Name: "Karan Mehta"},
		{ID: "EMP006", Name: "Sara Khan", Department: "Operations", Location: "Hyderabad"},
		{ID: "EMP007", Name: "Vikram Joshi"},
		{ID: "EMP008", Name: "Ananya Iyer"},
	}
	for i := range list {
		list[i].Index = i
	}
	return list
}

// ==========================================
// APPROVAL QUEUES
// ==========================================

// LeaveRequests returns the demo leave approval queue
func LeaveRequests() []leave.LeaveRequest {
	return []leave.LeaveRequest{
		{ID: "LVR-1001", EmployeeID: "EMP001", EmployeeName: "Rajesh Kumar Singh", StartDate: date(2026, 1, 4), EndDate: date(2026, 1, 5), Category: leave.LeaveCategoryPaid, Status: leave.LeaveRequestStatusPending},
		{ID: "LVR-1002", EmployeeID: "EMP002", EmployeeName: "Priya Sharma", StartDate: date(2026, 1, 10), EndDate: date(2026, 1, 10), Category: leave.LeaveCategorySick, Status: leave.LeaveRequestStatusPending},
		{ID: "LVR-1003", EmployeeID: "EMP003", EmployeeName: "Amit Verma", StartDate: date(2026, 1, 14), EndDate: date(2026, 1, 16), Category: leave.LeaveCategoryPaid, Status: leave.LeaveRequestStatusApproved},
		{ID: "LVR-1004", EmployeeID: "EMP004", EmployeeName: "Neha Gupta", StartDate: date(2026, 1, 7), EndDate: date(2026, 1, 7), Category: leave.LeaveCategorySick, Status: leave.LeaveRequestStatusRejected},
		{ID: "LVR-1005", EmployeeID: "EMP005", EmployeeName: "Karan Mehta", StartDate: date(2026, 1, 21), EndDate: date(2026, 1, 22), Category: leave.LeaveCategoryPaid, Status: leave.LeaveRequestStatusPending},
		{ID: "LVR-1006", EmployeeID: "EMP006", EmployeeName: "Sara Khan", StartDate: date(2026, 1, 11), EndDate: date(2026, 1, 12), Category: leave.LeaveCategorySick, Status: leave.LeaveRequestStatusPending},
	}
}

// AttendanceApprovals returns the demo attendance approval queue
func AttendanceApprovals() []attendance.ApprovalEntry {
	return []attendance.ApprovalEntry{
		{ID: "ATD-2001", EmployeeName: "Rajesh Kumar Singh", Date: date(2026, 1, 2), InTime: clock(9, 18), OutTime: clock(18, 12), WorkMinutes: 534, Status: attendance.StatusPending},
		{ID: "ATD-2002", EmployeeName: "Priya Sharma", Date: date(2026, 1, 2), InTime: clock(9, 5), OutTime: clock(18, 1), WorkMinutes: 536, Status: attendance.StatusApproved},
		{ID: "ATD-2003", EmployeeName: "Amit Verma", Date: date(2026, 1, 1), InTime: clock(10, 2), OutTime: clock(16, 40), WorkMinutes: 398, Status: attendance.StatusPending},
		{ID: "ATD-2004", EmployeeName: "Neha Gupta", Date: date(2026, 1, 1), Status: attendance.StatusRejected},
		{ID: "ATD-2005", EmployeeName: "Karan Mehta", Date: date(2026, 1, 2), InTime: clock(9, 41), OutTime: clock(17, 9), WorkMinutes: 448, Status: attendance.StatusPending},
		{ID: "ATD-2006", EmployeeName: "Sara Khan", Date: date(2026, 1, 3), InTime: clock(9, 12), OutTime: clock(18, 22), WorkMinutes: 550, Status: attendance.StatusPending},
	}
}
