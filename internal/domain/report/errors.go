package report

import "errors"

var (
	ErrReportGenerationFailed = errors.New("Failed to generate report")
)
