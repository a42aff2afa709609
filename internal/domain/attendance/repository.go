package attendance

import (
	"context"
)

// KeyValueStore is the string key-value storage behind the today state.
// Implementations exist for memory, PostgreSQL and Redis.
type KeyValueStore interface {
	// Get returns ErrStateNotFound when the key does not exist
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value stored at key
	Set(ctx context.Context, key, value string) error

	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// TodayStateRepository persists one TodayState per owner.
type TodayStateRepository interface {
	// Load returns the owner's state for today. Missing, stale or malformed
	// entries come back as an empty state for today.
	Load(ctx context.Context, owner string, today Date) TodayState

	// Save overwrites the owner's state. Last write wins.
	Save(ctx context.Context, owner string, state TodayState) error

	// Prune removes entries whose date is not today and returns how many went.
	Prune(ctx context.Context, today Date) (int, error)
}

// ApprovalRepository provides access to the attendance approval queue.
type ApprovalRepository interface {
	// List returns entries matching the filter in queue order
	List(ctx context.Context, filter ApprovalFilter) ([]ApprovalEntry, error)

	// GetByID returns ErrAttendanceNotFound for unknown IDs
	GetByID(ctx context.Context, id string) (ApprovalEntry, error)

	Update(ctx context.Context, entry ApprovalEntry) error
}
