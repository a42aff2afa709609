package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns today's headline numbers for admin/hr
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
