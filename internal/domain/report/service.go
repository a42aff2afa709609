package report

import (
	"context"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
)

type ReportService interface {
	ExportTeamMonth(ctx context.Context, filter attendance.TeamMonthFilter) (FileExport, error)
}
