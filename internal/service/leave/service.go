package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository

	// approve and reject are read-modify-write on the queue
	mu sync.Mutex
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		employeeRepo:           employeeRepo,
	}
}

// ListLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequest(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to get leave requests: %w", err)
	}

	return newListResponse(requests), nil
}

// ListMyLeaveRequests implements leave.LeaveService. Newest leave first.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context) (leave.ListLeaveRequestResponse, error) {
	identity := user.FromContext(ctx)

	requests, err := l.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{})
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to get leave requests: %w", err)
	}

	own := make([]leave.LeaveRequest, 0, len(requests))
	for _, req := range requests {
		if req.BelongsTo(identity.EmployeeID, identity.Name) {
			own = append(own, req)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].StartDate.After(own[j].StartDate)
	})

	return newListResponse(own), nil
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	identity := user.FromContext(ctx)
	if identity.EmployeeID == "" {
		return leave.LeaveRequestResponse{}, leave.ErrEmployeeProfileNotFound
	}

	emp, err := l.employeeRepo.GetByID(ctx, identity.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrEmployeeProfileNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start, end := req.Dates()
	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		StartDate:    start,
		EndDate:      end,
		Category:     leave.LeaveCategory(req.Category),
		Status:       leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request submitted", "id", created.ID, "employee_id", emp.ID, "category", created.Category)
	return leave.NewLeaveRequestResponse(created), nil
}

func newListResponse(requests []leave.LeaveRequest) leave.ListLeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	var pending int64
	for _, req := range requests {
		if req.IsPending() {
			pending++
		}
		responses = append(responses, leave.NewLeaveRequestResponse(req))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount:    int64(len(responses)),
		PendingCount:  pending,
		LeaveRequests: responses,
	}
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.getByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return l.process(ctx, requestID, leave.LeaveRequestStatusApproved)
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return l.process(ctx, requestID, leave.LeaveRequestStatusRejected)
}

func (l *LeaveServiceImpl) process(ctx context.Context, requestID string, status leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	request, err := l.getByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !request.IsPending() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	request.Status = status
	if err := l.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	slog.Info("Leave request processed", "id", requestID, "status", status, "by", user.FromContext(ctx).UserID)
	return leave.NewLeaveRequestResponse(request), nil
}

func (l *LeaveServiceImpl) getByID(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}
