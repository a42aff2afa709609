package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"

	// Leave
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveApply   Permission = "leave.apply"

	// Employees
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeViewOwn Permission = "employee.view_own"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions. Guests have none.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionEmployeeViewAll,
		PermissionReportsView,
	},
	RoleHR: {
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionEmployeeViewAll,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveApply,
		PermissionEmployeeViewOwn,
	},
}

func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
