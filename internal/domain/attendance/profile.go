package attendance

import (
	"errors"
	"fmt"
	"strings"
)

// Band is a half-open integer interval [From, To). An empty band matches nothing.
type Band struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (b Band) Contains(v int) bool {
	return v >= b.From && v < b.To
}

func (b Band) Width() int {
	if b.To <= b.From {
		return 0
	}
	return b.To - b.From
}

// Pick maps seed onto the band deterministically.
func (b Band) Pick(seed int) int {
	return b.From + seed%b.Width()
}

// Window is an inclusive range of wall-clock times.
type Window struct {
	Earliest TimeOfDay `json:"earliest"`
	Latest   TimeOfDay `json:"latest"`
}

func (w Window) Pick(seed int) TimeOfDay {
	return w.Earliest + TimeOfDay(seed%(int(w.Latest-w.Earliest)+1))
}

// Profile holds every threshold of the attendance synthesizer.
type Profile struct {
	Name string `json:"name"`

	SubjectMultiplier int `json:"subject_multiplier"`
	DayMultiplier     int `json:"day_multiplier"`
	MonthMultiplier   int `json:"month_multiplier"`

	// WeekendAbsenceProbability is the percentage of weekend dates that are
	// days off. The remainder synthesize as worked weekends.
	WeekendAbsenceProbability int  `json:"weekend_absence_probability"`
	LeaveBand                 Band `json:"leave_band"`
	WorkdayAbsenceBand        Band `json:"workday_absence_band"`
	// EdgeWeekdayAbsenceBias widens the absence band on Mondays and Fridays.
	EdgeWeekdayAbsenceBias int `json:"edge_weekday_absence_bias"`

	ShortDayBand   Band `json:"short_day_band"`
	ShortWorkRange Band `json:"short_work_range"`
	FullWorkRange  Band `json:"full_work_range"`

	PartialWorkBand    Band   `json:"partial_work_band"`
	CheckInWindow      Window `json:"check_in_window"`
	StandardDayMinutes int    `json:"standard_day_minutes"`
}

const (
	ProfileStandard    = "standard"
	ProfileTeam        = "team"
	ProfileSelfService = "self_service"
)

func baseProfile() Profile {
	return Profile{
		SubjectMultiplier:  97,
		DayMultiplier:      13,
		MonthMultiplier:    31,
		ShortWorkRange:     Band{From: 360, To: 450},
		FullWorkRange:      Band{From: 450, To: 600},
		PartialWorkBand:    Band{From: 360, To: 480},
		CheckInWindow:      Window{Earliest: Clock(9, 5), Latest: Clock(10, 15)},
		StandardDayMinutes: 480,
	}
}

// TeamProfile matches the admin day and month pages: most weekends off,
// a flat absence band, no leave and a short-day band.
func TeamProfile() Profile {
	p := baseProfile()
	p.Name = ProfileTeam
	p.WeekendAbsenceProbability = 65
	p.WorkdayAbsenceBand = Band{From: 0, To: 12}
	p.ShortDayBand = Band{From: 12, To: 20}
	return p
}

// SelfServiceProfile matches the employee self-service page: weekends are
// always off, leave is evaluated before absence and Mondays and Fridays see
// more absences. The page multiplies its seed base directly while subject
// seeds are offset by one, so the page's base b is subject seed b-1.
func SelfServiceProfile() Profile {
	p := baseProfile()
	p.Name = ProfileSelfService
	p.WeekendAbsenceProbability = 100
	p.LeaveBand = Band{From: 8, To: 12}
	p.WorkdayAbsenceBand = Band{From: 0, To: 10}
	p.EdgeWeekdayAbsenceBias = 10
	return p
}

// StandardProfile combines both pages: the self-service leave and absence
// bands with the team page's weekend rate and short-day band.
func StandardProfile() Profile {
	p := SelfServiceProfile()
	p.Name = ProfileStandard
	p.WeekendAbsenceProbability = 65
	p.ShortDayBand = Band{From: 12, To: 20}
	return p
}

// ProfileByName resolves a preset. An empty name selects the standard profile.
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProfileStandard:
		return StandardProfile(), nil
	case ProfileTeam:
		return TeamProfile(), nil
	case ProfileSelfService, "self-service":
		return SelfServiceProfile(), nil
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
}

func (p Profile) Validate() error {
	var errs []error
	if p.SubjectMultiplier <= 0 || p.DayMultiplier <= 0 || p.MonthMultiplier <= 0 {
		errs = append(errs, errors.New("seed multipliers must be positive"))
	}
	if p.WeekendAbsenceProbability < 0 || p.WeekendAbsenceProbability > 100 {
		errs = append(errs, errors.New("weekend absence probability must be between 0 and 100"))
	}
	if p.ShortWorkRange.Width() == 0 {
		errs = append(errs, errors.New("short work range is empty"))
	}
	if p.FullWorkRange.Width() == 0 {
		errs = append(errs, errors.New("full work range is empty"))
	}
	if p.CheckInWindow.Latest < p.CheckInWindow.Earliest {
		errs = append(errs, errors.New("check-in window is inverted"))
	}
	if p.StandardDayMinutes <= 0 {
		errs = append(errs, errors.New("standard day minutes must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(errs...))
	}
	return nil
}
