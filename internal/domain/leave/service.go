package leave

import (
	"context"
)

type LeaveService interface {
	ListLeaveRequest(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)

	// Self-service
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context) (ListLeaveRequestResponse, error)
}
