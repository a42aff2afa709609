package employee

import "strings"

// EmployeeFilter narrows the directory by a case-insensitive match on name or ID.
type EmployeeFilter struct {
	Query string `json:"q"`
}

func (f EmployeeFilter) Matches(e Employee) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.ID), q)
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
	Location   *string `json:"location"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Department: optional(e.Department),
		Location:   optional(e.Location),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Employees  []EmployeeResponse `json:"employees"`
}
