package leave

import (
	"context"
	"testing"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/fixtures"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/validator"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *LeaveServiceImpl {
	return NewLeaveService(memory.NewLeaveRequestRepository(fixtures.LeaveRequests()), memory.NewEmployeeRepository(fixtures.Employees()))
}

func TestListLeaveRequest(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name        string
		filter      leave.LeaveRequestFilter
		wantTotal   int64
		wantPending int64
	}{
		{"all categories", leave.LeaveRequestFilter{}, 6, 4},
		{"paid tab", leave.LeaveRequestFilter{Category: "paid"}, 3, 2},
		{"sick tab", leave.LeaveRequestFilter{Category: "sick"}, 3, 2},
		{"search within tab", leave.LeaveRequestFilter{Category: "sick", Query: "SARA"}, 1, 1},
		{"no match", leave.LeaveRequestFilter{Query: "nobody"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.ListLeaveRequest(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, resp.TotalCount)
			assert.Equal(t, tt.wantPending, resp.PendingCount)
			assert.Len(t, resp.LeaveRequests, int(tt.wantTotal))
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.ListLeaveRequest(ctx, leave.LeaveRequestFilter{Category: "unpaid"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestGetLeaveRequest(t *testing.T) {
	svc := newTestService()

	resp, err := svc.GetLeaveRequest(context.Background(), "LVR-1003")
	require.NoError(t, err)
	assert.Equal(t, "Amit Verma", resp.EmployeeName)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, "Paid Time Off", resp.CategoryLabel)

	_, err = svc.GetLeaveRequest(context.Background(), "LVR-0000")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestApproveRejectLeaveRequest(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	resp, err := svc.ApproveLeaveRequest(ctx, "LVR-1001")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	_, err = svc.RejectLeaveRequest(ctx, "LVR-1001")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	resp, err = svc.RejectLeaveRequest(ctx, "LVR-1002")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	_, err = svc.ApproveLeaveRequest(ctx, "LVR-1004")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = svc.ApproveLeaveRequest(ctx, "LVR-9999")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	list, err := svc.ListLeaveRequest(ctx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.PendingCount)
}

func employeeCtx(employeeID, name string) context.Context {
	return user.WithIdentity(context.Background(), user.Identity{
		UserID:     "u-" + employeeID,
		Name:       name,
		Role:       user.RoleEmployee,
		EmployeeID: employeeID,
	})
}

func TestApplyLeave(t *testing.T) {
	svc := newTestService()
	ctx := employeeCtx("EMP003", "Amit")

	// Act
	resp, err := svc.ApplyLeave(ctx, leave.ApplyLeaveRequest{Category: "sick", StartDate: "2026-01-20", EndDate: "2026-01-21"})

	// Assert: pending, named from the directory, next queue id
	require.NoError(t, err)
	assert.Equal(t, "LVR-1007", resp.ID)
	assert.Equal(t, "EMP003", resp.EmployeeID)
	assert.Equal(t, "Amit Verma", resp.EmployeeName)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 2, resp.TotalDays)

	list, err := svc.ListLeaveRequest(context.Background(), leave.LeaveRequestFilter{Category: "sick"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), list.TotalCount)
	assert.Equal(t, int64(3), list.PendingCount)

	// the team can act on it like any other request
	approved, err := svc.ApproveLeaveRequest(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
}

func TestApplyLeave_Rejections(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name      string
		ctx       context.Context
		req       leave.ApplyLeaveRequest
		wantField string
		wantErr   error
	}{
		{"unknown category", employeeCtx("EMP003", "Amit Verma"), leave.ApplyLeaveRequest{Category: "unpaid", StartDate: "2026-01-20", EndDate: "2026-01-20"}, "category", nil},
		{"missing category", employeeCtx("EMP003", "Amit Verma"), leave.ApplyLeaveRequest{StartDate: "2026-01-20", EndDate: "2026-01-20"}, "category", nil},
		{"bad start date", employeeCtx("EMP003", "Amit Verma"), leave.ApplyLeaveRequest{Category: "paid", StartDate: "20/01/2026", EndDate: "2026-01-20"}, "start_date", nil},
		{"end before start", employeeCtx("EMP003", "Amit Verma"), leave.ApplyLeaveRequest{Category: "paid", StartDate: "2026-01-21", EndDate: "2026-01-20"}, "end_date", nil},
		{"no employee id", employeeCtx("", "Amit Verma"), leave.ApplyLeaveRequest{Category: "paid", StartDate: "2026-01-20", EndDate: "2026-01-20"}, "", leave.ErrEmployeeProfileNotFound},
		{"not in directory", employeeCtx("EMP404", "Ghost"), leave.ApplyLeaveRequest{Category: "paid", StartDate: "2026-01-20", EndDate: "2026-01-20"}, "", leave.ErrEmployeeProfileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApplyLeave(tt.ctx, tt.req)
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.wantField)
		})
	}

	list, err := svc.ListLeaveRequest(context.Background(), leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), list.TotalCount)
}

func TestListMyLeaveRequests(t *testing.T) {
	svc := newTestService()
	ctx := employeeCtx("EMP003", "Amit Verma")

	_, err := svc.ApplyLeave(ctx, leave.ApplyLeaveRequest{Category: "paid", StartDate: "2026-01-02", EndDate: "2026-01-02"})
	require.NoError(t, err)
	_, err = svc.ApplyLeave(ctx, leave.ApplyLeaveRequest{Category: "sick", StartDate: "2026-02-09", EndDate: "2026-02-10"})
	require.NoError(t, err)

	resp, err := svc.ListMyLeaveRequests(ctx)
	require.NoError(t, err)
	require.Len(t, resp.LeaveRequests, 3)
	assert.Equal(t, int64(2), resp.PendingCount)

	var starts []string
	for _, r := range resp.LeaveRequests {
		assert.Equal(t, "EMP003", r.EmployeeID)
		starts = append(starts, r.StartDate)
	}
	assert.Equal(t, []string{"2026-02-09", "2026-01-14", "2026-01-02"}, starts)

	t.Run("name fallback without an employee id", func(t *testing.T) {
		resp, err := svc.ListMyLeaveRequests(employeeCtx("", "priya sharma"))
		require.NoError(t, err)
		require.Len(t, resp.LeaveRequests, 1)
		assert.Equal(t, "LVR-1002", resp.LeaveRequests[0].ID)
	})

	t.Run("someone else's name does not leak through the id", func(t *testing.T) {
		resp, err := svc.ListMyLeaveRequests(employeeCtx("EMP002", "Amit Verma"))
		require.NoError(t, err)
		require.Len(t, resp.LeaveRequests, 1)
		assert.Equal(t, "LVR-1002", resp.LeaveRequests[0].ID)
	})

	t.Run("nobody", func(t *testing.T) {
		resp, err := svc.ListMyLeaveRequests(employeeCtx("EMP008", "Ananya Iyer"))
		require.NoError(t, err)
		assert.Empty(t, resp.LeaveRequests)
		assert.Equal(t, int64(0), resp.TotalCount)
	})
}
