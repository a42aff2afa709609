package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/validator"
)

// ========================================
// TEAM VIEW DTOs
// ========================================

// TeamDayFilter selects the date and employees of the team day view.
// An empty or unparsable Date means today.
type TeamDayFilter struct {
	Date  string `json:"date"`
	Query string `json:"q"`
}

// ResolveDate returns the requested date, falling back to today.
func (f TeamDayFilter) ResolveDate(today Date) Date {
	if f.Date == "" {
		return today
	}
	d, err := ParseDate(f.Date)
	if err != nil {
		return today
	}
	return d
}

type TeamDayRow struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Status       Kind    `json:"status"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	WorkMinutes  int     `json:"work_minutes"`
	ExtraMinutes int     `json:"extra_minutes"`
	WorkHours    string  `json:"work_hours"`
	ExtraHours   string  `json:"extra_hours"`
	Partial      bool    `json:"partial"`
}

type TeamDayResponse struct {
	Date    string       `json:"date"`
	Label   string       `json:"label"`
	IsToday bool         `json:"is_today"`
	Rows    []TeamDayRow `json:"rows"`
}

// TeamMonthFilter selects the month of the team month view.
// An empty or unparsable Month means the current month.
type TeamMonthFilter struct {
	Month string `json:"month"`
	Query string `json:"q"`
}

type TeamMonthRow struct {
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Summary      MonthSummary `json:"summary"`
	WorkHours    string       `json:"work_hours"`
	ExtraHours   string       `json:"extra_hours"`
}

type TeamMonthResponse struct {
	Month string         `json:"month"`
	Label string         `json:"label"`
	Rows  []TeamMonthRow `json:"rows"`
}

// ========================================
// SELF-SERVICE DTOs
// ========================================

type MyMonthFilter struct {
	Month string `json:"month"`
}

type MyMonthResponse struct {
	Month        string       `json:"month"`
	Label        string       `json:"label"`
	EmployeeName string       `json:"employee_name"`
	Days         []DayRecord  `json:"days"`
	Summary      MonthSummary `json:"summary"`
	// TodayAction is only set when the month contains today.
	TodayAction *Action `json:"today_action,omitempty"`
}

type TodayResponse struct {
	Date      string     `json:"date"`
	CheckIn   *string    `json:"check_in"`
	CheckOut  *string    `json:"check_out"`
	Indicator Indicator  `json:"indicator"`
	Action    Action     `json:"action"`
	State     TodayState `json:"state"`
}

// ========================================
// APPROVAL QUEUE DTOs
// ========================================

type ApprovalFilter struct {
	Date  string `json:"date"`
	Query string `json:"q"`
}

func (f *ApprovalFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Matches reports whether entry passes the filter.
func (f ApprovalFilter) Matches(entry ApprovalEntry) bool {
	if f.Date != "" && entry.Date.String() != f.Date {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" || strings.Contains(strings.ToLower(entry.EmployeeName), q)
}

type ApprovalResponse struct {
	ID           string  `json:"id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	InTime       *string `json:"in_time"`
	OutTime      *string `json:"out_time"`
	WorkMinutes  int     `json:"work_minutes"`
	WorkHours    string  `json:"work_hours"`
	Status       string  `json:"status"`
}

func NewApprovalResponse(e ApprovalEntry) ApprovalResponse {
	return ApprovalResponse{
		ID:           e.ID,
		EmployeeName: e.EmployeeName,
		Date:         e.Date.String(),
		InTime:       FormatTime(e.InTime),
		OutTime:      FormatTime(e.OutTime),
		WorkMinutes:  e.WorkMinutes,
		WorkHours:    FormatMinutes(e.WorkMinutes),
		Status:       e.Status,
	}
}

// ========================================
// FORMATTING
// ========================================

// FormatMinutes renders a duration as "7h 05m".
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// FormatTime renders an optional time, nil when unset.
func FormatTime(t *TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

// DayLabel renders "Mon, 05 Jan 2026".
func DayLabel(d Date) string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("Mon, 02 Jan 2006")
}

// MonthLabel renders "January 2026".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// StreamTokenResponse carries the short-lived token for the live today stream
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
