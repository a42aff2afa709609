package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	todayStates attendance.TodayStateRepository
	location    *time.Location
	now         func() time.Time
}

func NewAttendanceJobs(todayStates attendance.TodayStateRepository, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		todayStates: todayStates,
		location:    location,
		now:         time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("prune_stale_today_states", interval, j.PruneStaleTodayStates)
}

// PruneStaleTodayStates deletes check-in records left over from previous days
func (j *AttendanceJobs) PruneStaleTodayStates(ctx context.Context) error {
	today := attendance.DateOf(j.now().In(j.location))

	removed, err := j.todayStates.Prune(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to prune today states: %w", err)
	}

	if removed > 0 {
		slog.Info("Cron: Pruned stale today attendance states", "count", removed, "today", today.String())
	}
	return nil
}
