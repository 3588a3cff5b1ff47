package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goleads/internal/domain"
)

// ErrCampaignNotFound is returned when a campaign lookup matches no row.
// Callers should check with errors.Is().
var ErrCampaignNotFound = errors.New("campaign not found")

// campaignSelectColumns lists columns for SELECT queries on campaigns.
const campaignSelectColumns = `id, name, subject, body, created_at`

// CampaignRepository handles database operations for outreach campaigns.
type CampaignRepository struct {
	db *sqlx.DB
}

// NewCampaignRepository creates a new campaign repository.
func NewCampaignRepository(db *sqlx.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create inserts a new campaign. A missing ID is filled in.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `INSERT INTO campaigns (id, name, subject, body) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Subject, c.Body)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// GetByName fetches one campaign by its unique name.
func (r *CampaignRepository) GetByName(ctx context.Context, name string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignSelectColumns + ` FROM campaigns WHERE name = $1`

	var campaign domain.Campaign
	err := r.db.GetContext(ctx, &campaign, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

// List returns all campaigns, newest first.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignSelectColumns + ` FROM campaigns ORDER BY created_at DESC`

	var campaigns []domain.Campaign
	if err := r.db.SelectContext(ctx, &campaigns, query); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}
