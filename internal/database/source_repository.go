package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goleads/internal/domain"
)

// SourceState is the persisted harvest bookkeeping for one portal.
type SourceState struct {
	Name         string    `json:"name" db:"name"`
	Kind         string    `json:"kind" db:"kind"`
	Enabled      bool      `json:"enabled" db:"enabled"`
	LastRunAt    time.Time `json:"last_run_at" db:"last_run_at"`
	LastError    string    `json:"last_error" db:"last_error"`
	TotalFetched int64     `json:"total_fetched" db:"total_fetched"`
	TotalNew     int64     `json:"total_new" db:"total_new"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SourceRepository tracks per-portal harvest state.
type SourceRepository struct {
	db *sqlx.DB
}

func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// Sync records the registered portals so the directory survives restarts
// and reflects configuration toggles.
func (r *SourceRepository) Sync(ctx context.Context, name string, kind domain.SignalType, enabled bool) error {
	query := `
		INSERT INTO portal_sources (name, kind, enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET kind = EXCLUDED.kind, enabled = EXCLUDED.enabled, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, name, kind, enabled); err != nil {
		return fmt.Errorf("failed to sync source %s: %w", name, err)
	}
	return nil
}

// RecordRun accumulates one harvest run's outcome onto the portal row.
func (r *SourceRepository) RecordRun(ctx context.Context, name string, fetched, created int, runErr error) error {
	lastError := ""
	if runErr != nil {
		lastError = runErr.Error()
	}

	query := `
		UPDATE portal_sources
		SET last_run_at = NOW(),
		    last_error = $2,
		    total_fetched = total_fetched + $3,
		    total_new = total_new + $4,
		    updated_at = NOW()
		WHERE name = $1`

	if _, err := r.db.ExecContext(ctx, query, name, lastError, fetched, created); err != nil {
		return fmt.Errorf("failed to record run for source %s: %w", name, err)
	}
	return nil
}

// List returns the portal directory ordered by name.
func (r *SourceRepository) List(ctx context.Context) ([]SourceState, error) {
	query := `
		SELECT name, kind, enabled, last_run_at, last_error, total_fetched, total_new, updated_at
		FROM portal_sources
		ORDER BY name`

	var states []SourceState
	if err := r.db.SelectContext(ctx, &states, query); err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	return states, nil
}
