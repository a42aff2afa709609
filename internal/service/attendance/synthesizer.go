package attendance

import (
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
)

// Synthesizer derives a stable attendance outcome for a subject and date.
// It holds no mutable state and is safe for concurrent use.
type Synthesizer struct {
	profile attendance.Profile
}

func NewSynthesizer(profile attendance.Profile) *Synthesizer {
	return &Synthesizer{profile: profile}
}

func (s *Synthesizer) Profile() attendance.Profile {
	return s.profile
}

// Seed returns the raw seed and its bucket in [0, 100).
func (s *Synthesizer) Seed(subjectSeed int, date attendance.Date) (seed, mod int) {
	p := s.profile
	seed = (subjectSeed+1)*p.SubjectMultiplier + date.Day*p.DayMultiplier + int(date.Month)*p.MonthMultiplier
	if seed < 0 {
		seed = -seed
	}
	return seed, seed % 100
}

// Synthesize returns Weekend, Absent, Leave or Present for the subject on date.
func (s *Synthesizer) Synthesize(subjectSeed int, date attendance.Date) attendance.Outcome {
	p := s.profile
	seed, mod := s.Seed(subjectSeed, date)
	weekend := date.IsWeekend()

	if weekend {
		if mod < p.WeekendAbsenceProbability {
			return attendance.Weekend()
		}
	} else {
		// leave wins over absence where the bands overlap
		if p.LeaveBand.Contains(mod) {
			return attendance.Leave()
		}
		if s.absenceBand(date.Weekday()).Contains(mod) {
			return attendance.Absent()
		}
	}

	work := p.FullWorkRange.Pick(seed)
	if !weekend && p.ShortDayBand.Contains(mod) {
		work = p.ShortWorkRange.Pick(seed)
	}
	return attendance.Present(s.presence(p.CheckInWindow.Pick(seed), work))
}

// Credit builds the presence for a recorded check-in. A completed day is
// credited with exactly one standard day and no extra time.
func (s *Synthesizer) Credit(checkIn attendance.TimeOfDay, checkOut *attendance.TimeOfDay) attendance.Presence {
	p := attendance.Presence{CheckIn: checkIn, CheckOut: checkOut}
	if checkOut != nil {
		p.WorkMinutes = s.profile.StandardDayMinutes
	}
	p.Partial = s.profile.PartialWorkBand.Contains(p.WorkMinutes)
	return p
}

func (s *Synthesizer) presence(checkIn attendance.TimeOfDay, work int) attendance.Presence {
	checkOut := checkIn + attendance.TimeOfDay(work)
	extra := work - s.profile.StandardDayMinutes
	if extra < 0 {
		extra = 0
	}
	return attendance.Presence{
		CheckIn:      checkIn,
		CheckOut:     &checkOut,
		WorkMinutes:  work,
		ExtraMinutes: extra,
		Partial:      s.profile.PartialWorkBand.Contains(work),
	}
}

func (s *Synthesizer) absenceBand(wd time.Weekday) attendance.Band {
	band := s.profile.WorkdayAbsenceBand
	if wd == time.Monday || wd == time.Friday {
		band.To += s.profile.EdgeWeekdayAbsenceBias
	}
	return band
}
