package attendance

import (
	"strings"
)

// Kind tags a day's attendance outcome. Exactly one kind applies per day.
type Kind string

const (
	KindWeekend Kind = "weekend"
	KindAbsent  Kind = "absent"
	KindLeave   Kind = "leave"
	KindPresent Kind = "present"
	KindFuture  Kind = "future"
	KindPending Kind = "pending"
)

// Presence carries the details of a present day.
type Presence struct {
	CheckIn      TimeOfDay  `json:"check_in"`
	CheckOut     *TimeOfDay `json:"check_out"`
	WorkMinutes  int        `json:"work_minutes"`
	ExtraMinutes int        `json:"extra_minutes"`
	Partial      bool       `json:"partial"`
}

// Outcome is the attendance classification of one subject on one date.
// Presence is set if and only if Kind is KindPresent.
type Outcome struct {
	Kind     Kind      `json:"kind"`
	Presence *Presence `json:"presence,omitempty"`
}

func Weekend() Outcome { return Outcome{Kind: KindWeekend} }
func Absent() Outcome  { return Outcome{Kind: KindAbsent} }
func Leave() Outcome   { return Outcome{Kind: KindLeave} }
func Future() Outcome  { return Outcome{Kind: KindFuture} }
func Pending() Outcome { return Outcome{Kind: KindPending} }

func Present(p Presence) Outcome {
	return Outcome{Kind: KindPresent, Presence: &p}
}

func (o Outcome) IsPresent() bool {
	return o.Kind == KindPresent && o.Presence != nil
}

// DayRecord is one row of a month view.
type DayRecord struct {
	Date    Date    `json:"date"`
	Weekend bool    `json:"weekend"`
	IsToday bool    `json:"is_today"`
	Outcome Outcome `json:"outcome"`
}

// MonthSummary is a reduction over the DayRecords of one month.
// Weekend dates never contribute to the day counts.
type MonthSummary struct {
	Present      int `json:"present"`
	Absent       int `json:"absent"`
	Leave        int `json:"leave"`
	WorkingDays  int `json:"working_days"`
	WorkMinutes  int `json:"work_minutes"`
	ExtraMinutes int `json:"extra_minutes"`
}

// TodayState is the persisted check-in record for the current day.
// The JSON shape is shared with the browser client and must not change.
type TodayState struct {
	Date     string `json:"date"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// EmptyTodayState returns a fresh state for d.
func EmptyTodayState(d Date) TodayState {
	return TodayState{Date: d.String()}
}

func (s TodayState) HasCheckedIn() bool {
	return strings.TrimSpace(s.CheckIn) != ""
}

func (s TodayState) HasCheckedOut() bool {
	return strings.TrimSpace(s.CheckOut) != ""
}

// Indicator is the navbar status derived from the today state.
type Indicator struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

const (
	IndicatorOnline  = "online"
	IndicatorAway    = "away"
	IndicatorOffline = "offline"
)

// Action is the self-service button state for today.
type Action struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// Approval statuses shared by attendance approval entries.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ApprovalEntry is a manually submitted attendance record awaiting review.
type ApprovalEntry struct {
	ID           string
	EmployeeName string
	Date         Date
	InTime       *TimeOfDay
	OutTime      *TimeOfDay
	WorkMinutes  int
	Status       string
}
