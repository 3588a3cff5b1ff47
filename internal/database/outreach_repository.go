package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goleads/internal/domain"
)

// outreachSelectColumns lists columns for SELECT queries on outreach_log.
const outreachSelectColumns = `id, campaign_id, lead_id, email, subject, status, error, created_at, sent_at`

// OutreachRepository handles database operations for the outreach log.
type OutreachRepository struct {
	db *sqlx.DB
}

// NewOutreachRepository creates a new outreach repository.
func NewOutreachRepository(db *sqlx.DB) *OutreachRepository {
	return &OutreachRepository{db: db}
}

// Append records a new outreach entry. A missing ID or status is filled in.
func (r *OutreachRepository) Append(ctx context.Context, entry *domain.OutreachEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = domain.OutreachQueued
	}

	query := `
		INSERT INTO outreach_log (id, campaign_id, lead_id, email, subject, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(
		ctx, query,
		entry.ID, entry.CampaignID, entry.LeadID, entry.Email, entry.Subject, entry.Status, entry.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to append outreach entry: %w", err)
	}

	return nil
}

// MarkSent flips an entry to sent with its delivery time.
func (r *OutreachRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	query := `UPDATE outreach_log SET status = $2, sent_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, domain.OutreachSent, sentAt)
	if reqErr := execRequireRows(result, err, fmt.Errorf("outreach entry %s not found", id)); reqErr != nil {
		return fmt.Errorf("failed to mark outreach sent: %w", reqErr)
	}
	return nil
}

// MarkFailed flips an entry to failed with the delivery error.
func (r *OutreachRepository) MarkFailed(ctx context.Context, id, deliveryErr string) error {
	query := `UPDATE outreach_log SET status = $2, error = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, domain.OutreachFailed, deliveryErr)
	if reqErr := execRequireRows(result, err, fmt.Errorf("outreach entry %s not found", id)); reqErr != nil {
		return fmt.Errorf("failed to mark outreach failed: %w", reqErr)
	}
	return nil
}

// SentEmails returns every address that already received a message.
// Outreach never emails the same address twice, across all campaigns.
func (r *OutreachRepository) SentEmails(ctx context.Context) (map[string]bool, error) {
	query := `SELECT DISTINCT email FROM outreach_log WHERE status = $1`

	var emails []string
	if err := r.db.SelectContext(ctx, &emails, query, domain.OutreachSent); err != nil {
		return nil, fmt.Errorf("failed to list sent emails: %w", err)
	}

	sent := make(map[string]bool, len(emails))
	for _, email := range emails {
		sent[email] = true
	}
	return sent, nil
}

// ListByCampaign returns the outreach log for one campaign, oldest first.
func (r *OutreachRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.OutreachEntry, error) {
	query := `SELECT ` + outreachSelectColumns + ` FROM outreach_log WHERE campaign_id = $1 ORDER BY created_at ASC`

	var entries []domain.OutreachEntry
	if err := r.db.SelectContext(ctx, &entries, query, campaignID); err != nil {
		return nil, fmt.Errorf("failed to list outreach entries: %w", err)
	}

	return entries, nil
}
