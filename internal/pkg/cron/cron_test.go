package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/repository/memory"
	attendanceService "github.com/dayflow-hrms/dayflow-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneStaleTodayStates(t *testing.T) {
	ctx := context.Background()
	ist := time.FixedZone("IST", 5*60*60+30*60)

	store := memory.NewKeyValueStore()
	repo := attendanceService.NewTodayStateRepository(store, "employeeAttendance")
	require.NoError(t, repo.Save(ctx, "u1", attendance.TodayState{Date: "2026-01-14", CheckIn: "09:30 AM", CheckOut: "06:30 PM"}))
	require.NoError(t, repo.Save(ctx, "u2", attendance.TodayState{Date: "2026-01-15", CheckIn: "09:45 AM"}))

	jobs := NewAttendanceJobs(repo, ist)
	// 20:00 UTC on the 14th is already the 15th in IST
	jobs.now = func() time.Time { return time.Date(2026, time.January, 14, 20, 0, 0, 0, time.UTC) }

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler, time.Hour)
	require.NoError(t, scheduler.RunOnce(ctx))

	keys, err := store.Keys(ctx, "employeeAttendance:")
	require.NoError(t, err)
	assert.Equal(t, []string{"employeeAttendance:u2"}, keys)
}

func TestScheduler_RunOnceJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	var ran atomic.Int32

	scheduler := NewScheduler()
	scheduler.AddJob("fails", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return boom
	})
	scheduler.AddJob("succeeds", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	err := scheduler.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fails")
	assert.Equal(t, int32(2), ran.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	runs := make(chan struct{}, 10)

	scheduler := NewScheduler()
	scheduler.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case runs <- struct{}{}:
		default:
		}
		return nil
	})

	scheduler.Start(context.Background())

	for i := 0; i < 2; i++ {
		select {
		case <-runs:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}

	scheduler.Stop()
	// drain anything that raced with Stop, then make sure nothing else arrives
	for len(runs) > 0 {
		<-runs
	}
	select {
	case <-runs:
		t.Fatal("job ran after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}
