package http

import (
	"log/slog"
	"os"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler, leaveHandler LeaveHandler, employeeHandler EmployeeHandler, dashboardHandler DashboardHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dayflow"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		// EventSource carries its own short-lived token
		r.Get("/attendance/me/stream", attendanceHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.Identify)

			r.Route("/attendance", func(r chi.Router) {

				// Admin / HR
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireTeamAccess)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/day", attendanceHandler.TeamDay)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/month", attendanceHandler.TeamMonth)
					r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/month/export", attendanceHandler.ExportTeamMonth)

					r.Route("/approvals", func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionAttendanceApprove))
						r.Get("/", attendanceHandler.ListApprovals)
						r.Post("/{id}/approve", attendanceHandler.Approve)
						r.Post("/{id}/reject", attendanceHandler.Reject)
					})
				})

				// Employee self-service
				r.Route("/me", func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/month", attendanceHandler.MyMonth)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/today", attendanceHandler.Today)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-in", attendanceHandler.CheckIn)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-out", attendanceHandler.CheckOut)
					r.Get("/stream-token", attendanceHandler.StreamToken)
				})
			})

			r.With(middleware.RequireTeamAccess, middleware.RequirePermission(user.PermissionReportsView)).Get("/dashboard", dashboardHandler.GetDashboard)

			r.Route("/leave-requests", func(r chi.Router) {

				// Employee self-service
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.With(middleware.RequirePermission(user.PermissionLeaveApply)).Post("/", leaveHandler.ApplyRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/me", leaveHandler.ListMyRequests)
				})

				// Admin / HR
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireTeamAccess)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", leaveHandler.ListRequests)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/{id}", leaveHandler.GetRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Post("/{id}/reject", leaveHandler.RejectRequest)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequireEmployee, middleware.RequirePermission(user.PermissionEmployeeViewOwn)).Get("/me", employeeHandler.GetMyProfile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireTeamAccess, middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", employeeHandler.ListEmployees)
					r.Get("/{id}", employeeHandler.GetEmployee)
				})
			})
		})
	})

	return r
}
