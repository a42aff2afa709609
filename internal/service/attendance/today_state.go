package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
)

type todayStateRepository struct {
	store  attendance.KeyValueStore
	prefix string
}

// NewTodayStateRepository stores one JSON document per owner under
// "<prefix>:<owner>".
func NewTodayStateRepository(store attendance.KeyValueStore, prefix string) attendance.TodayStateRepository {
	return &todayStateRepository{store: store, prefix: prefix}
}

func (r *todayStateRepository) key(owner string) string {
	return r.prefix + ":" + owner
}

// Load implements attendance.TodayStateRepository.
func (r *todayStateRepository) Load(ctx context.Context, owner string, today attendance.Date) attendance.TodayState {
	raw, err := r.store.Get(ctx, r.key(owner))
	if err != nil {
		if !errors.Is(err, attendance.ErrStateNotFound) {
			slog.Warn("Failed to read today attendance state, starting fresh", "owner", owner, "error", err)
		}
		return attendance.EmptyTodayState(today)
	}

	state, err := decodeTodayState(raw)
	if err != nil {
		slog.Debug("Discarding malformed today attendance state", "owner", owner, "error", err)
		return attendance.EmptyTodayState(today)
	}
	if state.Date != today.String() {
		return attendance.EmptyTodayState(today)
	}
	return state
}

// Save implements attendance.TodayStateRepository.
func (r *todayStateRepository) Save(ctx context.Context, owner string, state attendance.TodayState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode today attendance state: %w", err)
	}
	if err := r.store.Set(ctx, r.key(owner), string(raw)); err != nil {
		return fmt.Errorf("failed to save today attendance state: %w", err)
	}
	return nil
}

// Prune implements attendance.TodayStateRepository.
func (r *todayStateRepository) Prune(ctx context.Context, today attendance.Date) (int, error) {
	keys, err := r.store.Keys(ctx, r.prefix+":")
	if err != nil {
		return 0, fmt.Errorf("failed to list today attendance states: %w", err)
	}

	removed := 0
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if errors.Is(err, attendance.ErrStateNotFound) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if state, err := decodeTodayState(raw); err == nil && state.Date == today.String() {
			continue
		}
		if err := r.store.Delete(ctx, key); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}

func decodeTodayState(raw string) (attendance.TodayState, error) {
	var state attendance.TodayState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return attendance.TodayState{}, fmt.Errorf("%w: %w", attendance.ErrMalformedState, err)
	}
	if _, err := attendance.ParseDate(state.Date); err != nil {
		return attendance.TodayState{}, fmt.Errorf("%w: %w", attendance.ErrMalformedState, err)
	}
	state.CheckIn = strings.TrimSpace(state.CheckIn)
	state.CheckOut = strings.TrimSpace(state.CheckOut)
	if state.CheckIn != "" {
		if _, err := attendance.ParseTimeOfDay(state.CheckIn); err != nil {
			return attendance.TodayState{}, fmt.Errorf("%w: %w", attendance.ErrMalformedState, err)
		}
	}
	if state.CheckOut != "" {
		if state.CheckIn == "" {
			return attendance.TodayState{}, fmt.Errorf("%w: check-out without check-in", attendance.ErrMalformedState)
		}
		if _, err := attendance.ParseTimeOfDay(state.CheckOut); err != nil {
			return attendance.TodayState{}, fmt.Errorf("%w: %w", attendance.ErrMalformedState, err)
		}
	}
	return state, nil
}
