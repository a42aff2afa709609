package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/config"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/fixtures"
	appHTTP "github.com/dayflow-hrms/dayflow-backend-go/internal/handler/http"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/cron"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/sse"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/repository/memory"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/repository/postgresql"
	redisRepo "github.com/dayflow-hrms/dayflow-backend-go/internal/repository/redis"
	attendanceService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/attendance"
	dashboardService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/dashboard"
	employeeService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/employee"
	leaveService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/leave"
	reportService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/report"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	profile, err := attendance.ProfileByName(cfg.Attendance.Profile)
	if err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("attendance profile %q: %w", profile.Name, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStateStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	employeeRepo := memory.NewEmployeeRepository(fixtures.Employees())
	leaveRequestRepo := memory.NewLeaveRequestRepository(fixtures.LeaveRequests())
	approvalRepo := memory.NewApprovalRepository(fixtures.AttendanceApprovals())
	todayStateRepo := attendanceService.NewTodayStateRepository(store, cfg.State.KeyPrefix)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	aggregator := attendanceService.NewAggregator(attendanceService.NewSynthesizer(profile), cfg.Attendance.AbsentCutoffHour)
	attendanceSvc := attendanceService.NewAttendanceService(
		employeeRepo,
		approvalRepo,
		todayStateRepo,
		aggregator,
		hub,
		attendanceService.Options{
			Location:           location,
			DefaultSubjectSeed: cfg.Attendance.DefaultSubjectSeed,
		},
	)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo)
	reportSvc := reportService.NewReportService(attendanceSvc)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, leaveSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(todayStateRepo, location).RegisterJobs(scheduler, cfg.State.PruneInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc, JWTService, hub),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// cancelled on shutdown so open event streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running",
			"addr", server.Addr,
			"profile", profile.Name,
			"state_store", cfg.State.Store,
			"timezone", location.String(),
		)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newStateStore builds the key-value store behind today's check-in state
func newStateStore(ctx context.Context, cfg *config.Config) (attendance.KeyValueStore, func(), error) {
	switch cfg.State.Store {
	case config.StateStorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("error connecting to database: %w", err)
		}
		if err := postgresql.EnsureKeyValueSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgresql.NewKeyValueStore(db), db.Close, nil

	case config.StateStoreRedis:
		client, err := database.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return redisRepo.NewKeyValueStore(client), func() { _ = client.Close() }, nil

	default:
		return memory.NewKeyValueStore(), func() {}, nil
	}
}
