package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/report"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/sse"
)

const streamKeepalive = 30 * time.Second

type AttendanceHandler interface {
	// Team views (admin/hr)
	TeamDay(w http.ResponseWriter, r *http.Request)
	TeamMonth(w http.ResponseWriter, r *http.Request)
	ExportTeamMonth(w http.ResponseWriter, r *http.Request)
	ListApprovals(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)

	// Self-service (employee)
	MyMonth(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
	jwtService        jwt.Service
	hub               *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, reportService report.ReportService, jwtService jwt.Service, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		reportService:     reportService,
		jwtService:        jwtService,
		hub:               hub,
	}
}

// TeamDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) TeamDay(w http.ResponseWriter, r *http.Request) {
	filter := attendance.TeamDayFilter{
		Date:  r.URL.Query().Get("date"),
		Query: r.URL.Query().Get("q"),
	}

	resp, err := h.attendanceService.GetTeamDay(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// TeamMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) TeamMonth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetTeamMonth(r.Context(), teamMonthFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ExportTeamMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportTeamMonth(w http.ResponseWriter, r *http.Request) {
	export, err := h.reportService.ExportTeamMonth(r.Context(), teamMonthFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, export.FileName, export.ContentType, export.Data)
}

func teamMonthFilter(r *http.Request) attendance.TeamMonthFilter {
	return attendance.TeamMonthFilter{
		Month: r.URL.Query().Get("month"),
		Query: r.URL.Query().Get("q"),
	}
}

// ListApprovals implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListApprovals(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ApprovalFilter{
		Date:  r.URL.Query().Get("date"),
		Query: r.URL.Query().Get("q"),
	}

	entries, err := h.attendanceService.ListApprovals(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Approve implements AttendanceHandler.
func (h *attendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := queueID(w, r)
	if !ok {
		return
	}

	entry, err := h.attendanceService.ApproveEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance entry approved", entry)
}

// Reject implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := queueID(w, r)
	if !ok {
		return
	}

	entry, err := h.attendanceService.RejectEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance entry rejected", entry)
}

// MyMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyMonth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetMyMonth(r.Context(), attendance.MyMonthFilter{
		Month: r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in", resp)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", resp)
}

// StreamToken implements AttendanceHandler.
func (h *attendanceHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	owner := user.FromContext(r.Context()).Owner()
	if owner == "" {
		response.HandleError(w, attendance.ErrNoEmployeeProfile)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(owner)
	if err != nil {
		slog.Error("Failed to generate SSE token", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, attendance.StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes today-state changes for the token's owner as server-sent
// events. EventSource cannot send headers, so the token travels in the query.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	owner, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, unsubscribe := h.hub.Subscribe(owner)
	defer unsubscribe()
	slog.Debug("Attendance stream opened", "owner", owner, "owner_streams", h.hub.SubscriberCount(owner), "total_streams", h.hub.TotalSubscribers())

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("Dropping unencodable stream event", "event", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
