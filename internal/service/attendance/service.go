package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/sse"
)

// EventToday is published to an owner's streams after every check-in or check-out.
const EventToday = "today"

// Options tunes the attendance service.
type Options struct {
	// Location defines "today" and the wall-clock check-in times.
	Location *time.Location
	// DefaultSubjectSeed seeds the self-service view when the caller has no
	// directory entry.
	DefaultSubjectSeed int
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

type AttendanceServiceImpl struct {
	employees   employee.EmployeeRepository
	approvals   attendance.ApprovalRepository
	todayStates attendance.TodayStateRepository
	aggregator  *Aggregator
	hub         *sse.Hub

	location    *time.Location
	defaultSeed int
	now         func() time.Time

	// serializes check-in/out read-modify-write cycles within this process
	mu sync.Mutex
}

func NewAttendanceService(
	employeeRepo employee.EmployeeRepository,
	approvalRepo attendance.ApprovalRepository,
	todayStates attendance.TodayStateRepository,
	aggregator *Aggregator,
	hub *sse.Hub,
	opts Options,
) *AttendanceServiceImpl {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AttendanceServiceImpl{
		employees:   employeeRepo,
		approvals:   approvalRepo,
		todayStates: todayStates,
		aggregator:  aggregator,
		hub:         hub,
		location:    opts.Location,
		defaultSeed: opts.DefaultSubjectSeed,
		now:         opts.Now,
	}
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

func (a *AttendanceServiceImpl) localNow() time.Time {
	return a.now().In(a.location)
}

// resolveMonth parses YYYY-MM and falls back to the current month.
func resolveMonth(raw string, now time.Time) (int, time.Month) {
	if raw != "" {
		if year, month, err := attendance.ParseMonth(raw); err == nil {
			return year, month
		}
		slog.Debug("Ignoring invalid month parameter", "month", raw)
	}
	return now.Year(), now.Month()
}

// GetTeamDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTeamDay(ctx context.Context, filter attendance.TeamDayFilter) (attendance.TeamDayResponse, error) {
	now := a.localNow()
	today := attendance.DateOf(now)
	date := filter.ResolveDate(today)

	employees, err := a.employees.List(ctx, employee.EmployeeFilter{Query: filter.Query})
	if err != nil {
		return attendance.TeamDayResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([]attendance.TeamDayRow, 0, len(employees))
	for _, emp := range employees {
		rec := a.aggregator.Day(emp.Index, date, now, nil)
		rows = append(rows, mapTeamDayRow(emp, rec.Outcome))
	}

	return attendance.TeamDayResponse{
		Date:    date.String(),
		Label:   attendance.DayLabel(date),
		IsToday: date == today,
		Rows:    rows,
	}, nil
}

func mapTeamDayRow(emp employee.Employee, outcome attendance.Outcome) attendance.TeamDayRow {
	row := attendance.TeamDayRow{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Status:       outcome.Kind,
		WorkHours:    attendance.FormatMinutes(0),
		ExtraHours:   attendance.FormatMinutes(0),
	}
	if p := outcome.Presence; outcome.IsPresent() {
		row.CheckIn = attendance.FormatTime(&p.CheckIn)
		row.CheckOut = attendance.FormatTime(p.CheckOut)
		row.WorkMinutes = p.WorkMinutes
		row.ExtraMinutes = p.ExtraMinutes
		row.WorkHours = attendance.FormatMinutes(p.WorkMinutes)
		row.ExtraHours = attendance.FormatMinutes(p.ExtraMinutes)
		row.Partial = p.Partial
	}
	return row
}

// GetTeamMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTeamMonth(ctx context.Context, filter attendance.TeamMonthFilter) (attendance.TeamMonthResponse, error) {
	now := a.localNow()
	year, month := resolveMonth(filter.Month, now)

	employees, err := a.employees.List(ctx, employee.EmployeeFilter{Query: filter.Query})
	if err != nil {
		return attendance.TeamMonthResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([]attendance.TeamMonthRow, 0, len(employees))
	for _, emp := range employees {
		result := a.aggregator.Month(MonthInput{
			SubjectSeed: emp.Index,
			Year:        year,
			Month:       month,
			Now:         now,
		})
		rows = append(rows, attendance.TeamMonthRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Summary:      result.Summary,
			WorkHours:    attendance.FormatMinutes(result.Summary.WorkMinutes),
			ExtraHours:   attendance.FormatMinutes(result.Summary.ExtraMinutes),
		})
	}

	return attendance.TeamMonthResponse{
		Month: fmt.Sprintf("%04d-%02d", year, int(month)),
		Label: attendance.MonthLabel(year, month),
		Rows:  rows,
	}, nil
}

// subjectSeed returns the directory index of the caller, or the default seed.
func (a *AttendanceServiceImpl) subjectSeed(ctx context.Context, id user.Identity) int {
	if id.EmployeeID == "" {
		return a.defaultSeed
	}
	emp, err := a.employees.GetByID(ctx, id.EmployeeID)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Warn("Failed to look up employee, using default seed", "employee_id", id.EmployeeID, "error", err)
		}
		return a.defaultSeed
	}
	return emp.Index
}

func ownerOf(id user.Identity) (string, error) {
	owner := id.Owner()
	if owner == "" {
		return "", attendance.ErrNoEmployeeProfile
	}
	return owner, nil
}

// GetMyMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyMonth(ctx context.Context, filter attendance.MyMonthFilter) (attendance.MyMonthResponse, error) {
	id := user.FromContext(ctx)
	owner, err := ownerOf(id)
	if err != nil {
		return attendance.MyMonthResponse{}, err
	}

	now := a.localNow()
	today := attendance.DateOf(now)
	year, month := resolveMonth(filter.Month, now)
	state := a.todayStates.Load(ctx, owner, today)

	result := a.aggregator.Month(MonthInput{
		SubjectSeed: a.subjectSeed(ctx, id),
		Year:        year,
		Month:       month,
		Now:         now,
		Today:       &state,
	})

	resp := attendance.MyMonthResponse{
		Month:        fmt.Sprintf("%04d-%02d", year, int(month)),
		Label:        attendance.MonthLabel(year, month),
		EmployeeName: id.Name,
		Days:         result.Days,
		Summary:      result.Summary,
	}
	if year == today.Year && month == today.Month {
		action := TodayAction(state)
		resp.TodayAction = &action
	}
	return resp, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	owner, err := ownerOf(user.FromContext(ctx))
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	now := a.localNow()
	state := a.todayStates.Load(ctx, owner, attendance.DateOf(now))
	return a.todayResponse(state, now), nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.TodayResponse, error) {
	return a.transition(ctx, func(state *attendance.TodayState, at attendance.TimeOfDay) error {
		if state.HasCheckedIn() {
			return attendance.ErrAlreadyCheckedIn
		}
		state.CheckIn = at.String()
		return nil
	})
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.TodayResponse, error) {
	return a.transition(ctx, func(state *attendance.TodayState, at attendance.TimeOfDay) error {
		if !state.HasCheckedIn() {
			return attendance.ErrNotCheckedIn
		}
		if state.HasCheckedOut() {
			return attendance.ErrAlreadyCheckedOut
		}
		state.CheckOut = at.String()
		return nil
	})
}

// transition loads today's state, applies fn at the current time, saves the
// result and notifies the owner's open streams.
func (a *AttendanceServiceImpl) transition(ctx context.Context, fn func(state *attendance.TodayState, at attendance.TimeOfDay) error) (attendance.TodayResponse, error) {
	owner, err := ownerOf(user.FromContext(ctx))
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.localNow()
	state := a.todayStates.Load(ctx, owner, attendance.DateOf(now))
	if err := fn(&state, attendance.TimeOfDayOf(now)); err != nil {
		return attendance.TodayResponse{}, err
	}

	if err := a.todayStates.Save(ctx, owner, state); err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := a.todayResponse(state, now)
	if a.hub != nil {
		a.hub.Publish(owner, EventToday, resp)
	}
	return resp, nil
}

func (a *AttendanceServiceImpl) todayResponse(state attendance.TodayState, now time.Time) attendance.TodayResponse {
	resp := attendance.TodayResponse{
		Date:      state.Date,
		Indicator: a.aggregator.Indicator(state, now),
		Action:    TodayAction(state),
		State:     state,
	}
	if state.HasCheckedIn() {
		resp.CheckIn = &state.CheckIn
	}
	if state.HasCheckedOut() {
		resp.CheckOut = &state.CheckOut
	}
	return resp
}

// ListApprovals implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListApprovals(ctx context.Context, filter attendance.ApprovalFilter) ([]attendance.ApprovalResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := a.approvals.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance approvals: %w", err)
	}

	resp := make([]attendance.ApprovalResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, attendance.NewApprovalResponse(e))
	}
	return resp, nil
}

// ApproveEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ApproveEntry(ctx context.Context, id string) (attendance.ApprovalResponse, error) {
	return a.setApprovalStatus(ctx, id, attendance.StatusApproved)
}

// RejectEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RejectEntry(ctx context.Context, id string) (attendance.ApprovalResponse, error) {
	return a.setApprovalStatus(ctx, id, attendance.StatusRejected)
}

func (a *AttendanceServiceImpl) setApprovalStatus(ctx context.Context, id, status string) (attendance.ApprovalResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, err := a.approvals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ApprovalResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.ApprovalResponse{}, fmt.Errorf("failed to get attendance approval: %w", err)
	}

	if entry.Status != attendance.StatusPending {
		return attendance.ApprovalResponse{}, attendance.ErrAttendanceAlreadyProcessed
	}

	entry.Status = status
	if err := a.approvals.Update(ctx, entry); err != nil {
		return attendance.ApprovalResponse{}, fmt.Errorf("failed to update attendance approval: %w", err)
	}

	slog.Info("Attendance approval processed", "id", id, "status", status, "by", user.FromContext(ctx).UserID)
	return attendance.NewApprovalResponse(entry), nil
}
