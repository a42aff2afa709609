package leave

import (
	"context"
)

// LeaveRequestRepository - interface for the leave request queue
type LeaveRequestRepository interface {
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// Create assigns the next LVR- id when request.ID is empty
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
}
