package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/report"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/fixtures"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/sse"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/repository/memory"
	attendanceService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/attendance"
	dashboardService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/dashboard"
	employeeService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/employee"
	leaveService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/leave"
	reportService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var (
	adminIdentity    = user.Identity{UserID: "u-admin", Name: "Meera Nair", Role: user.RoleAdmin}
	employeeIdentity = user.Identity{UserID: "u3", Name: "Amit Verma", Role: user.RoleEmployee, EmployeeID: "EMP003"}
)

type testApp struct {
	router *chi.Mux
	jwt    *jwt.JWTService
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	ist := time.FixedZone("IST", 5*60*60+30*60)
	now := time.Date(2026, time.January, 15, 10, 0, 0, 0, ist)

	hub := sse.NewHub()
	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour)

	employees := memory.NewEmployeeRepository(fixtures.Employees())
	attendanceSvc := attendanceService.NewAttendanceService(
		employees,
		memory.NewApprovalRepository(fixtures.AttendanceApprovals()),
		attendanceService.NewTodayStateRepository(memory.NewKeyValueStore(), "employeeAttendance"),
		attendanceService.NewAggregator(attendanceService.NewSynthesizer(attendance.StandardProfile()), 14),
		hub,
		attendanceService.Options{Location: ist, DefaultSubjectSeed: 7, Now: func() time.Time { return now }},
	)
	leaveSvc := leaveService.NewLeaveService(memory.NewLeaveRequestRepository(fixtures.LeaveRequests()), employees)
	reportSvc := reportService.NewReportService(attendanceSvc)

	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, Env: "test", Version: "test"},
		jwtSvc,
		NewAttendanceHandler(attendanceSvc, reportSvc, jwtSvc, hub),
		NewLeaveHandler(leaveSvc),
		NewEmployeeHandler(employeeService.NewEmployeeService(employees)),
		NewDashboardHandler(dashboardService.NewDashboardService(attendanceSvc, leaveSvc)),
	)
	return testApp{router: router, jwt: jwtSvc}
}

func (a testApp) token(t *testing.T, id user.Identity) string {
	t.Helper()
	token, _, err := a.jwt.GenerateAccessToken(id)
	require.NoError(t, err)
	return token
}

func (a testApp) do(t *testing.T, method, path string, id *user.Identity) *httptest.ResponseRecorder {
	t.Helper()
	return a.doJSON(t, method, path, id, "")
}

func (a testApp) doJSON(t *testing.T, method, path string, id *user.Identity, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if id != nil {
		req.Header.Set("Authorization", "Bearer "+a.token(t, *id))
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRouter_VisibilityGating(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name     string
		method   string
		path     string
		identity *user.Identity
		wantCode int
	}{
		{"guest on team day", http.MethodGet, "/api/v1/attendance/day", nil, http.StatusForbidden},
		{"employee on team day", http.MethodGet, "/api/v1/attendance/day", &employeeIdentity, http.StatusForbidden},
		{"admin on team day", http.MethodGet, "/api/v1/attendance/day", &adminIdentity, http.StatusOK},
		{"admin on self-service", http.MethodGet, "/api/v1/attendance/me/today", &adminIdentity, http.StatusForbidden},
		{"guest on self-service", http.MethodPost, "/api/v1/attendance/me/check-in", nil, http.StatusForbidden},
		{"employee on leave queue", http.MethodGet, "/api/v1/leave-requests", &employeeIdentity, http.StatusForbidden},
		{"employee on dashboard", http.MethodGet, "/api/v1/dashboard", &employeeIdentity, http.StatusForbidden},
		{"employee on own leave", http.MethodGet, "/api/v1/leave-requests/me", &employeeIdentity, http.StatusOK},
		{"admin on own leave", http.MethodGet, "/api/v1/leave-requests/me", &adminIdentity, http.StatusForbidden},
		{"admin applying leave", http.MethodPost, "/api/v1/leave-requests", &adminIdentity, http.StatusForbidden},
		{"employee on directory", http.MethodGet, "/api/v1/employees", &employeeIdentity, http.StatusForbidden},
		{"guest on own profile", http.MethodGet, "/api/v1/employees/me", nil, http.StatusForbidden},
		{"hr on dashboard", http.MethodGet, "/api/v1/dashboard", &user.Identity{UserID: "u-hr", Role: user.RoleHR}, http.StatusOK},
		{"health check", http.MethodGet, "/health", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.identity)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRouter_TeamViews(t *testing.T) {
	app := newTestApp(t)

	t.Run("day view with invalid date falls back to today", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/attendance/day?date=yesterday", &adminIdentity)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "2026-01-15", data["date"])
		assert.Len(t, data["rows"], 8)
	})

	t.Run("month view search", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/attendance/month?month=2025-11&q=priya", &adminIdentity)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "November 2025", data["label"])
		assert.Len(t, data["rows"], 1)
	})

	t.Run("month export", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/attendance/month/export?month=2025-11", &adminIdentity)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, report.XLSXContentType, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-2025-11.xlsx")
		// xlsx workbooks are zip archives
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
	})
}

func TestRouter_Approvals(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/attendance/approvals?date=01-02-2026", &adminIdentity)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/attendance/approvals/ATD-2001/approve", &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "approved", data["status"])

	rec = app.do(t, http.MethodPost, "/api/v1/attendance/approvals/ATD-2001/reject", &adminIdentity)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/attendance/approvals/ATD-9999/reject", &adminIdentity)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/attendance/approvals/2001/approve", &adminIdentity)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LeaveRequests(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/leave-requests?category=sick", &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total_count"])

	rec = app.do(t, http.MethodGet, "/api/v1/leave-requests?category=vacation", &adminIdentity)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/leave-requests/LVR-1002/reject", &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/leave-requests/LVR-1002/approve", &adminIdentity)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/leave-requests/lvr-1002", &adminIdentity)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LeaveSelfService(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodPost, "/api/v1/leave-requests", &employeeIdentity,
		`{"category":"sick","start_date":"2026-01-20","end_date":"2026-01-21"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "LVR-1007", data["id"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "Amit Verma", data["employee_name"])

	rec = app.doJSON(t, http.MethodPost, "/api/v1/leave-requests", &employeeIdentity,
		`{"category":"sick","start_date":"2026-01-22","end_date":"2026-01-21"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = app.doJSON(t, http.MethodPost, "/api/v1/leave-requests", &employeeIdentity, `{"category":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	noProfile := user.Identity{UserID: "u99", Name: "Temp", Role: user.RoleEmployee}
	rec = app.doJSON(t, http.MethodPost, "/api/v1/leave-requests", &noProfile,
		`{"category":"paid","start_date":"2026-01-22","end_date":"2026-01-22"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/leave-requests/me", &employeeIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_count"])
	assert.Equal(t, float64(1), data["pending_count"])

	// the new request shows up in the team queue
	rec = app.do(t, http.MethodGet, "/api/v1/leave-requests/LVR-1007", &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodPost, "/api/v1/leave-requests/LVR-1007/approve", &adminIdentity)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Employees(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/v1/employees?q=iyer", &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_count"])

	rec = app.do(t, http.MethodGet, "/api/v1/employees/EMP004", &adminIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Neha Gupta", data["name"])

	rec = app.do(t, http.MethodGet, "/api/v1/employees/EMP404", &adminIdentity)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/employees/me", &employeeIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "EMP003", data["id"])

	noProfile := user.Identity{UserID: "u99", Role: user.RoleEmployee}
	rec = app.do(t, http.MethodGet, "/api/v1/employees/me", &noProfile)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SelfServiceCheckInOut(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/attendance/me/check-out", &employeeIdentity)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/v1/attendance/me/check-in", &employeeIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "10:00 AM", data["check_in"])

	rec = app.do(t, http.MethodPost, "/api/v1/attendance/me/check-in", &employeeIdentity)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/attendance/me/month", &employeeIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeBody(t, rec)["data"].(map[string]interface{})
	action := data["today_action"].(map[string]interface{})
	assert.Equal(t, "Check Out", action["label"])
}

func TestRouter_StreamDeliversTodayUpdates(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	rec := app.do(t, http.MethodGet, "/api/v1/attendance/me/stream-token", &employeeIdentity)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["data"].(map[string]interface{})["token"].(string)

	t.Run("rejects a missing token", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/attendance/me/stream")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/attendance/me/stream?token="+token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	waitFor := func(prefix string) string {
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		t.Fatalf("stream ended before %q", prefix)
		return ""
	}

	waitFor("event: connected")

	rec = app.do(t, http.MethodPost, "/api/v1/attendance/me/check-in", &employeeIdentity)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "event: today", waitFor("event: today"))
	data := strings.TrimPrefix(waitFor("data: "), "data: ")

	var today attendance.TodayResponse
	require.NoError(t, json.Unmarshal([]byte(data), &today))
	assert.Equal(t, "Checked in", today.Indicator.Label)
}
