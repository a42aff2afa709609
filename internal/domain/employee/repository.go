package employee

import "context"

// EmployeeRepository defines read access to the employee directory.
type EmployeeRepository interface {
	// List returns employees matching the filter in directory order
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// GetByID returns ErrEmployeeNotFound for unknown IDs
	GetByID(ctx context.Context, id string) (Employee, error)
}
