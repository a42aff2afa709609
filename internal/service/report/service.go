package report

import (
	"context"
	"fmt"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const teamMonthSheet = "Attendance"

var teamMonthHeaders = []string{
	"Employee ID",
	"Employee Name",
	"Present",
	"Absent",
	"Leave",
	"Working Days",
	"Worked Hours",
	"Extra Hours",
}

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
}

func NewReportService(attendanceService attendance.AttendanceService) report.ReportService {
	return &ReportServiceImpl{
		attendanceService: attendanceService,
	}
}

// ExportTeamMonth renders the team month totals as a single-sheet workbook
func (s *ReportServiceImpl) ExportTeamMonth(ctx context.Context, filter attendance.TeamMonthFilter) (report.FileExport, error) {
	month, err := s.attendanceService.GetTeamMonth(ctx, filter)
	if err != nil {
		return report.FileExport{}, err
	}

	data, err := renderTeamMonth(month)
	if err != nil {
		return report.FileExport{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.FileExport{
		FileName:    fmt.Sprintf("attendance-%s.xlsx", month.Month),
		ContentType: report.XLSXContentType,
		Data:        data,
	}, nil
}

func renderTeamMonth(month attendance.TeamMonthResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", teamMonthSheet); err != nil {
		return nil, err
	}

	for i, header := range teamMonthHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(teamMonthSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(teamMonthHeaders), 1)
	if err := f.SetCellStyle(teamMonthSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range month.Rows {
		values := []interface{}{
			row.EmployeeID,
			row.EmployeeName,
			row.Summary.Present,
			row.Summary.Absent,
			row.Summary.Leave,
			row.Summary.WorkingDays,
			row.WorkHours,
			row.ExtraHours,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(teamMonthSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(teamMonthSheet, "B", "B", 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
