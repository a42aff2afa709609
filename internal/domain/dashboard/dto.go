package dashboard

// DashboardResponse is the combined response for the team dashboard endpoint
type DashboardResponse struct {
	Date                       string                  `json:"date"`
	TotalEmployees             int                     `json:"total_employees"`
	AttendanceStats            AttendanceStatsResponse `json:"attendance_stats"`
	PendingLeaveRequests       int64                   `json:"pending_leave_requests"`
	PendingAttendanceApprovals int                     `json:"pending_attendance_approvals"`
}

// AttendanceStatsResponse represents today's attendance across the directory
type AttendanceStatsResponse struct {
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	OnLeave        int     `json:"on_leave"`
	Off            int     `json:"off"` // weekend, not counted as absent
	Total          int     `json:"total"`
	PresentPercent float64 `json:"present_percent"`
}
