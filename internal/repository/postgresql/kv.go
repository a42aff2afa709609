package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type keyValueStoreImpl struct {
	db *database.DB
}

// NewKeyValueStore stores values in the attendance_state table.
func NewKeyValueStore(db *database.DB) attendance.KeyValueStore {
	return &keyValueStoreImpl{db: db}
}

// EnsureKeyValueSchema creates the attendance_state table if it is missing.
func EnsureKeyValueSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		if _, err := q.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS attendance_state (
				key        TEXT PRIMARY KEY,
				value      TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`); err != nil {
			return fmt.Errorf("create attendance_state: %w", err)
		}
		if _, err := q.Exec(ctx, `
			CREATE INDEX IF NOT EXISTS attendance_state_key_prefix_idx
			ON attendance_state (key text_pattern_ops)
		`); err != nil {
			return fmt.Errorf("create attendance_state index: %w", err)
		}
		return nil
	})
}

func (r *keyValueStoreImpl) Get(ctx context.Context, key string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM attendance_state WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", attendance.ErrStateNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (r *keyValueStoreImpl) Set(ctx context.Context, key, value string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *keyValueStoreImpl) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM attendance_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (r *keyValueStoreImpl) Keys(ctx context.Context, prefix string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key FROM attendance_state WHERE key LIKE $1 ESCAPE '\' ORDER BY key`, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
