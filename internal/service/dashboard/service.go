package dashboard

import (
	"context"
	"math"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/dashboard"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/leave"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
}

func NewDashboardService(attendanceService attendance.AttendanceService, leaveService leave.LeaveService) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceService: attendanceService,
		leaveService:      leaveService,
	}
}

// GetDashboard collects the three sources in parallel
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	var (
		teamDay   attendance.TeamDayResponse
		leaves    leave.ListLeaveRequestResponse
		approvals []attendance.ApprovalResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		teamDay, err = s.attendanceService.GetTeamDay(gCtx, attendance.TeamDayFilter{})
		return err
	})

	g.Go(func() error {
		var err error
		leaves, err = s.leaveService.ListLeaveRequest(gCtx, leave.LeaveRequestFilter{})
		return err
	})

	g.Go(func() error {
		var err error
		approvals, err = s.attendanceService.ListApprovals(gCtx, attendance.ApprovalFilter{})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pendingApprovals := 0
	for _, a := range approvals {
		if a.Status == attendance.StatusPending {
			pendingApprovals++
		}
	}

	return &dashboard.DashboardResponse{
		Date:                       teamDay.Date,
		TotalEmployees:             len(teamDay.Rows),
		AttendanceStats:            attendanceStats(teamDay.Rows),
		PendingLeaveRequests:       leaves.PendingCount,
		PendingAttendanceApprovals: pendingApprovals,
	}, nil
}

func attendanceStats(rows []attendance.TeamDayRow) dashboard.AttendanceStatsResponse {
	var stats dashboard.AttendanceStatsResponse
	for _, row := range rows {
		switch row.Status {
		case attendance.KindPresent:
			stats.Present++
		case attendance.KindAbsent:
			stats.Absent++
		case attendance.KindLeave:
			stats.OnLeave++
		case attendance.KindWeekend:
			stats.Off++
		}
	}
	stats.Total = len(rows)
	if stats.Total > 0 {
		stats.PresentPercent = math.Round(float64(stats.Present)/float64(stats.Total)*1000) / 10
	}
	return stats
}
