package memory

import (
	"context"
	"sync"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	mu        sync.RWMutex
	employees []employee.Employee
}

// NewEmployeeRepository serves a fixed directory. Each employee's Index is
// set to its position in seed.
func NewEmployeeRepository(seed []employee.Employee) employee.EmployeeRepository {
	list := make([]employee.Employee, len(seed))
	copy(list, seed)
	for i := range list {
		list[i].Index = i
	}
	return &employeeRepositoryImpl{employees: list}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
