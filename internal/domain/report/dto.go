package report

// XLSXContentType is the MIME type of every workbook export
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileExport is a rendered report ready to be streamed as a download
type FileExport struct {
	FileName    string
	ContentType string
	Data        []byte
}
