package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goleads/internal/domain"
)

// ErrSignalNotFound is returned when a signal lookup matches no row.
// Callers should check with errors.Is().
var ErrSignalNotFound = errors.New("signal not found")

const (
	defaultSignalLimit = 50
	maxSignalLimit     = 500

	// signalSelectColumns lists columns for SELECT queries on signals.
	signalSelectColumns = `id, source_name, external_id, type, industry, score,
		title, description, url, location, value_czk,
		company_name, contact_email, contact_phone, ico,
		deadline, published_at, harvested_at`
)

// SignalRepository handles database operations for harvested signals.
type SignalRepository struct {
	db *sqlx.DB
}

// NewSignalRepository creates a new signal repository.
func NewSignalRepository(db *sqlx.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// UpsertBatch inserts signals, skipping rows whose (source_name, external_id)
// already exists. Returns the subset that was actually inserted.
func (r *SignalRepository) UpsertBatch(ctx context.Context, signals []domain.Signal) ([]domain.Signal, error) {
	if len(signals) == 0 {
		return nil, nil
	}

	query := `
		INSERT INTO signals (source_name, external_id, type, industry, score,
			title, description, url, location, value_czk,
			company_name, contact_email, contact_phone, ico,
			deadline, published_at, harvested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (source_name, external_id) DO NOTHING
		RETURNING id
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin upsert transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var inserted []domain.Signal
	for i := range signals {
		s := &signals[i]
		var id string
		scanErr := tx.QueryRowContext(
			ctx, query,
			s.SourceName, s.ExternalID, s.Type, s.Industry, s.Score,
			s.Title, s.Description, s.URL, s.Location, s.ValueCZK,
			s.CompanyName, s.ContactEmail, s.ContactPhone, s.ICO,
			s.Deadline, s.PublishedAt, s.HarvestedAt,
		).Scan(&id)
		if errors.Is(scanErr, sql.ErrNoRows) {
			// Conflict with an existing row, nothing inserted.
			continue
		}
		if scanErr != nil {
			return nil, fmt.Errorf("failed to insert signal %s: %w", s.DedupKey(), scanErr)
		}
		s.ID = id
		inserted = append(inserted, *s)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, fmt.Errorf("failed to commit upsert transaction: %w", commitErr)
	}

	return inserted, nil
}

// GetByID fetches one signal by its ID.
func (r *SignalRepository) GetByID(ctx context.Context, id string) (*domain.Signal, error) {
	query := `SELECT ` + signalSelectColumns + ` FROM signals WHERE id = $1`

	var signal domain.Signal
	err := r.db.GetContext(ctx, &signal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSignalNotFound
		}
		return nil, fmt.Errorf("failed to get signal: %w", err)
	}

	return &signal, nil
}

// SignalFilter narrows List results. Zero values mean "no filter".
type SignalFilter struct {
	Source   string
	Type     domain.SignalType
	Industry domain.Industry
	MinScore float64
	// Search substring-matches title and description, case-insensitive.
	Search string
	// Since keeps only signals harvested at or after the given time.
	Since  time.Time
	Limit  int
	Offset int
}

// List returns signals matching the filter, newest harvest first.
func (r *SignalRepository) List(ctx context.Context, filter SignalFilter) ([]domain.Signal, error) {
	var (
		conditions []string
		args       []any
	)

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.Source != "" {
		addCondition("source_name = ", filter.Source)
	}
	if filter.Type != "" {
		addCondition("type = ", filter.Type)
	}
	if filter.Industry != "" {
		addCondition("industry = ", filter.Industry)
	}
	if filter.MinScore > 0 {
		addCondition("score >= ", filter.MinScore)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(title ILIKE $"+n+" OR description ILIKE $"+n+")")
	}
	if !filter.Since.IsZero() {
		addCondition("harvested_at >= ", filter.Since)
	}

	query := `SELECT ` + signalSelectColumns + ` FROM signals`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY harvested_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSignalLimit
	}
	if limit > maxSignalLimit {
		limit = maxSignalLimit
	}
	args = append(args, limit)
	query += " LIMIT $" + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	var signals []domain.Signal
	if err := r.db.SelectContext(ctx, &signals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}

	return signals, nil
}

// CountBySource returns harvested signal counts per source.
func (r *SignalRepository) CountBySource(ctx context.Context) (map[string]int, error) {
	query := `SELECT source_name, COUNT(*) AS cnt FROM signals GROUP BY source_name`

	rows := []struct {
		SourceName string `db:"source_name"`
		Count      int    `db:"cnt"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count signals: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.SourceName] = row.Count
	}
	return counts, nil
}
