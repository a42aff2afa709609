package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/leave"
)

const (
	leaveRequestIDPrefix = "LVR-"
	firstLeaveRequestID  = 1001
)

type leaveRequestRepositoryImpl struct {
	mu       sync.RWMutex
	requests []leave.LeaveRequest
	nextID   int
}

func NewLeaveRequestRepository(seed []leave.LeaveRequest) leave.LeaveRequestRepository {
	list := make([]leave.LeaveRequest, len(seed))
	copy(list, seed)

	next := firstLeaveRequestID
	for _, req := range list {
		n, err := strconv.Atoi(strings.TrimPrefix(req.ID, leaveRequestIDPrefix))
		if err == nil && n >= next {
			next = n + 1
		}
	}
	return &leaveRequestRepositoryImpl{requests: list, nextID: next}
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]leave.LeaveRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.Matches(req) {
			result = append(result, req)
		}
	}
	return result, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.requests {
		if r.requests[i].ID == request.ID {
			r.requests[i] = request
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID == "" {
		request.ID = fmt.Sprintf("%s%d", leaveRequestIDPrefix, r.nextID)
		r.nextID++
	}
	for _, req := range r.requests {
		if req.ID == request.ID {
			return leave.LeaveRequest{}, fmt.Errorf("leave request %s already exists", request.ID)
		}
	}

	r.requests = append(r.requests, request)
	return request, nil
}
