package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goleads/internal/domain"
)

// ErrLeadNotFound is returned when a lead lookup matches no row.
// Callers should check with errors.Is().
var ErrLeadNotFound = errors.New("lead not found")

const (
	defaultLeadLimit = 50

	// leadSelectColumns lists columns for SELECT queries on leads.
	leadSelectColumns = `id, COALESCE(signal_id::text, '') AS signal_id, state,
		company_name, website, email, phone, ico, note, profile,
		created_at, updated_at`
)

// leadRow mirrors the leads table row, with the JSONB profile column raw.
type leadRow struct {
	ID          string           `db:"id"`
	SignalID    string           `db:"signal_id"`
	State       domain.LeadState `db:"state"`
	CompanyName string           `db:"company_name"`
	Website     string           `db:"website"`
	Email       string           `db:"email"`
	Phone       string           `db:"phone"`
	ICO         string           `db:"ico"`
	Note        string           `db:"note"`
	Profile     []byte           `db:"profile"`
	CreatedAt   sql.NullTime     `db:"created_at"`
	UpdatedAt   sql.NullTime     `db:"updated_at"`
}

func (row *leadRow) toDomain() (*domain.Lead, error) {
	lead := &domain.Lead{
		ID:          row.ID,
		SignalID:    row.SignalID,
		State:       row.State,
		CompanyName: row.CompanyName,
		Website:     row.Website,
		Email:       row.Email,
		Phone:       row.Phone,
		ICO:         row.ICO,
		Note:        row.Note,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
	if len(row.Profile) > 0 {
		var profile domain.SiteProfile
		if err := json.Unmarshal(row.Profile, &profile); err != nil {
			return nil, fmt.Errorf("failed to decode lead profile: %w", err)
		}
		lead.Profile = &profile
	}
	return lead, nil
}

// LeadRepository handles database operations for leads.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository creates a new lead repository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead. A missing ID or state is filled in.
func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.State == "" {
		lead.State = domain.LeadNew
	}

	query := `
		INSERT INTO leads (id, signal_id, state, company_name, website, email, phone, ico, note)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		lead.ID, lead.SignalID, lead.State,
		lead.CompanyName, lead.Website, lead.Email, lead.Phone, lead.ICO, lead.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// GetByID fetches one lead by its ID.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `SELECT ` + leadSelectColumns + ` FROM leads WHERE id = $1`

	var row leadRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return row.toDomain()
}

// List returns leads, optionally filtered by state, newest first.
func (r *LeadRepository) List(ctx context.Context, state domain.LeadState, limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = defaultLeadLimit
	}

	var (
		rows []leadRow
		err  error
	)
	if state != "" {
		query := `SELECT ` + leadSelectColumns + ` FROM leads WHERE state = $1 ORDER BY created_at DESC LIMIT $2`
		err = r.db.SelectContext(ctx, &rows, query, state, limit)
	} else {
		query := `SELECT ` + leadSelectColumns + ` FROM leads ORDER BY created_at DESC LIMIT $1`
		err = r.db.SelectContext(ctx, &rows, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	leads := make([]domain.Lead, 0, len(rows))
	for i := range rows {
		lead, convErr := rows[i].toDomain()
		if convErr != nil {
			return nil, convErr
		}
		leads = append(leads, *lead)
	}
	return leads, nil
}

// UpdateState moves a lead through its lifecycle. The transition is
// validated against the current state inside a transaction.
func (r *LeadRepository) UpdateState(ctx context.Context, id string, to domain.LeadState) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin state transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var current domain.LeadState
	selectQuery := `SELECT state FROM leads WHERE id = $1 FOR UPDATE`
	if getErr := tx.GetContext(ctx, &current, selectQuery, id); getErr != nil {
		if errors.Is(getErr, sql.ErrNoRows) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to get lead state: %w", getErr)
	}

	next, transErr := domain.Transition(current, to)
	if transErr != nil {
		return transErr
	}

	updateQuery := `UPDATE leads SET state = $2, updated_at = NOW() WHERE id = $1`
	result, execErr := tx.ExecContext(ctx, updateQuery, id, next)
	if reqErr := execRequireRows(result, execErr, ErrLeadNotFound); reqErr != nil {
		return fmt.Errorf("failed to update lead state: %w", reqErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("failed to commit state transaction: %w", commitErr)
	}

	return nil
}

// AttachProfile stores a website analysis result on the lead.
func (r *LeadRepository) AttachProfile(ctx context.Context, id string, profile *domain.SiteProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode lead profile: %w", err)
	}

	query := `UPDATE leads SET profile = $2, updated_at = NOW() WHERE id = $1`
	result, execErr := r.db.ExecContext(ctx, query, id, payload)
	if reqErr := execRequireRows(result, execErr, ErrLeadNotFound); reqErr != nil {
		return fmt.Errorf("failed to attach lead profile: %w", reqErr)
	}

	return nil
}

// ExistsByICO reports whether a lead with the given company identifier
// already exists. Used by bulk import to skip duplicates.
func (r *LeadRepository) ExistsByICO(ctx context.Context, ico string) (bool, error) {
	if ico == "" {
		return false, nil
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM leads WHERE ico = $1)`
	if err := r.db.GetContext(ctx, &exists, query, ico); err != nil {
		return false, fmt.Errorf("failed to check lead existence: %w", err)
	}
	return exists, nil
}
