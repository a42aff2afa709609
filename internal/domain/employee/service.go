package employee

import "context"

type EmployeeService interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	// GetMyProfile resolves the caller's employee_id claim
	GetMyProfile(ctx context.Context) (EmployeeResponse, error)
}
