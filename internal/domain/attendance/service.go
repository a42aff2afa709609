package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// GetTeamDay returns one synthesized row per employee for a single date (admin/hr)
	GetTeamDay(ctx context.Context, filter TeamDayFilter) (TeamDayResponse, error)

	// GetTeamMonth returns month totals per employee (admin/hr)
	GetTeamMonth(ctx context.Context, filter TeamMonthFilter) (TeamMonthResponse, error)

	// GetMyMonth returns the authenticated employee's month rows and summary
	GetMyMonth(ctx context.Context, filter MyMonthFilter) (MyMonthResponse, error)

	// GetToday returns the authenticated employee's today state and indicator
	GetToday(ctx context.Context) (TodayResponse, error)

	// CheckIn records today's check-in time. Rejects a second check-in.
	CheckIn(ctx context.Context) (TodayResponse, error)

	// CheckOut records today's check-out time. Requires a prior check-in.
	CheckOut(ctx context.Context) (TodayResponse, error)

	// ListApprovals returns the attendance approval queue (admin/hr)
	ListApprovals(ctx context.Context, filter ApprovalFilter) ([]ApprovalResponse, error)

	// ApproveEntry approves a pending approval entry
	ApproveEntry(ctx context.Context, id string) (ApprovalResponse, error)

	// RejectEntry rejects a pending approval entry
	RejectEntry(ctx context.Context, id string) (ApprovalResponse, error)
}
