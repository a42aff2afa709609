package memory

import (
	"context"
	"sync"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
)

type approvalRepositoryImpl struct {
	mu      sync.RWMutex
	entries []attendance.ApprovalEntry
}

func NewApprovalRepository(seed []attendance.ApprovalEntry) attendance.ApprovalRepository {
	list := make([]attendance.ApprovalEntry, len(seed))
	copy(list, seed)
	return &approvalRepositoryImpl{entries: list}
}

// List implements attendance.ApprovalRepository.
func (r *approvalRepositoryImpl) List(ctx context.Context, filter attendance.ApprovalFilter) ([]attendance.ApprovalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]attendance.ApprovalEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

// GetByID implements attendance.ApprovalRepository.
func (r *approvalRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.ApprovalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return attendance.ApprovalEntry{}, attendance.ErrAttendanceNotFound
}

// Update implements attendance.ApprovalRepository.
func (r *approvalRepositoryImpl) Update(ctx context.Context, entry attendance.ApprovalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == entry.ID {
			r.entries[i] = entry
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}
