package attendance

import (
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
)

// Aggregator builds month views on top of the Synthesizer.
type Aggregator struct {
	synth        *Synthesizer
	absentCutoff attendance.TimeOfDay
}

// NewAggregator creates an aggregator that marks today absent once the
// clock reaches cutoffHour without a check-in.
func NewAggregator(synth *Synthesizer, cutoffHour int) *Aggregator {
	return &Aggregator{
		synth:        synth,
		absentCutoff: attendance.Clock(cutoffHour, 0),
	}
}

type MonthInput struct {
	SubjectSeed int
	Year        int
	Month       time.Month
	// Now must already be in the configured location.
	Now time.Time
	// Today overrides the synthesizer for the current date when set.
	Today *attendance.TodayState
}

type MonthResult struct {
	Days    []attendance.DayRecord
	Summary attendance.MonthSummary
}

// Month returns one record per calendar day and their summary.
func (a *Aggregator) Month(in MonthInput) MonthResult {
	total := attendance.DaysIn(in.Year, in.Month)
	days := make([]attendance.DayRecord, 0, total)
	for day := 1; day <= total; day++ {
		date := attendance.Date{Year: in.Year, Month: in.Month, Day: day}
		days = append(days, a.Day(in.SubjectSeed, date, in.Now, in.Today))
	}
	return MonthResult{Days: days, Summary: Summarize(days)}
}

// Day classifies a single date relative to now.
func (a *Aggregator) Day(subjectSeed int, date attendance.Date, now time.Time, today *attendance.TodayState) attendance.DayRecord {
	current := attendance.DateOf(now)
	rec := attendance.DayRecord{
		Date:    date,
		Weekend: date.IsWeekend(),
		IsToday: date == current,
	}

	switch {
	case date.After(current):
		rec.Outcome = attendance.Future()
	case rec.IsToday && today != nil:
		rec.Outcome = a.todayOutcome(*today, now)
	default:
		rec.Outcome = a.synth.Synthesize(subjectSeed, date)
	}
	return rec
}

func (a *Aggregator) todayOutcome(state attendance.TodayState, now time.Time) attendance.Outcome {
	if checkIn, ok := parseStoredTime(state.CheckIn); ok {
		var checkOut *attendance.TimeOfDay
		if out, ok := parseStoredTime(state.CheckOut); ok {
			checkOut = &out
		}
		return attendance.Present(a.synth.Credit(checkIn, checkOut))
	}
	if a.pastCutoff(now) {
		return attendance.Absent()
	}
	return attendance.Pending()
}

func (a *Aggregator) pastCutoff(now time.Time) bool {
	return attendance.TimeOfDayOf(now) >= a.absentCutoff
}

// Summarize reduces day records to month totals. Weekend dates are skipped
// for the day counts; worked minutes include any worked weekend.
func Summarize(days []attendance.DayRecord) attendance.MonthSummary {
	var s attendance.MonthSummary
	for _, d := range days {
		if d.Outcome.IsPresent() {
			s.WorkMinutes += d.Outcome.Presence.WorkMinutes
			s.ExtraMinutes += d.Outcome.Presence.ExtraMinutes
		}
		if d.Weekend {
			continue
		}
		s.WorkingDays++
		switch d.Outcome.Kind {
		case attendance.KindPresent:
			s.Present++
		case attendance.KindAbsent:
			s.Absent++
		case attendance.KindLeave:
			s.Leave++
		}
	}
	return s
}

// Indicator derives the navbar status for the today state at now.
func (a *Aggregator) Indicator(state attendance.TodayState, now time.Time) attendance.Indicator {
	switch {
	case state.HasCheckedIn() && state.HasCheckedOut():
		return attendance.Indicator{Status: attendance.IndicatorOnline, Label: "Checked out"}
	case state.HasCheckedIn():
		return attendance.Indicator{Status: attendance.IndicatorOnline, Label: "Checked in"}
	case a.pastCutoff(now):
		return attendance.Indicator{Status: attendance.IndicatorAway, Label: "Absent"}
	default:
		return attendance.Indicator{Status: attendance.IndicatorOffline, Label: "Not checked in"}
	}
}

// TodayAction returns the self-service button for the today state.
func TodayAction(state attendance.TodayState) attendance.Action {
	switch {
	case !state.HasCheckedIn():
		return attendance.Action{Label: "Check In", Enabled: true}
	case !state.HasCheckedOut():
		return attendance.Action{Label: "Check Out", Enabled: true}
	default:
		return attendance.Action{Label: "Checked Out", Enabled: false}
	}
}

func parseStoredTime(s string) (attendance.TimeOfDay, bool) {
	if s == "" {
		return 0, false
	}
	t, err := attendance.ParseTimeOfDay(s)
	if err != nil {
		return 0, false
	}
	return t, true
}
