package outreach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

// Log records outreach attempts and answers dedup queries.
type Log interface {
	Append(ctx context.Context, entry *domain.OutreachEntry) error
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	MarkFailed(ctx context.Context, id, deliveryErr string) error
	SentEmails(ctx context.Context) (map[string]bool, error)
}

// Report summarizes one campaign run.
type Report struct {
	Sent    int
	Failed  int
	Skipped int
}

// Runner sends one campaign to a set of leads.
type Runner struct {
	sender Sender
	log    Log
	logger logger.Logger
}

// NewRunner creates a campaign runner.
func NewRunner(sender Sender, outreachLog Log, log logger.Logger) *Runner {
	return &Runner{
		sender: sender,
		log:    outreachLog,
		logger: log,
	}
}

// Run emails every lead that has an address and was never contacted
// before. Addresses are compared case-insensitively; each delivery is
// logged whether it succeeds or not.
func (r *Runner) Run(ctx context.Context, campaign *domain.Campaign, leads []domain.Lead) (*Report, error) {
	contacted, err := r.log.SentEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contacted addresses: %w", err)
	}

	report := &Report{}
	for i := range leads {
		lead := &leads[i]
		addr := strings.ToLower(strings.TrimSpace(lead.Email))
		if addr == "" || contacted[addr] {
			report.Skipped++
			continue
		}

		subject, body := Render(campaign, lead)
		entry := &domain.OutreachEntry{
			CampaignID: campaign.ID,
			LeadID:     lead.ID,
			Email:      addr,
			Subject:    subject,
			Status:     domain.OutreachQueued,
		}
		if appendErr := r.log.Append(ctx, entry); appendErr != nil {
			return report, fmt.Errorf("append outreach entry: %w", appendErr)
		}

		sendErr := r.sender.Send(ctx, Message{To: addr, Subject: subject, Body: body})
		if sendErr != nil {
			report.Failed++
			r.logger.Warn("outreach delivery failed",
				logger.String("email", addr),
				logger.Error(sendErr),
			)
			if markErr := r.log.MarkFailed(ctx, entry.ID, sendErr.Error()); markErr != nil {
				return report, markErr
			}
			continue
		}

		report.Sent++
		contacted[addr] = true
		if markErr := r.log.MarkSent(ctx, entry.ID, time.Now()); markErr != nil {
			return report, markErr
		}
	}

	r.logger.Info("campaign finished",
		logger.String("campaign", campaign.Name),
		logger.Int("sent", report.Sent),
		logger.Int("failed", report.Failed),
		logger.Int("skipped", report.Skipped),
	)
	return report, nil
}

// Render substitutes campaign placeholders with lead facts.
// Supported: {{company}}, {{contact}}, {{signal_title}}.
func Render(campaign *domain.Campaign, lead *domain.Lead) (subject, body string) {
	company := lead.CompanyName
	if company == "" {
		company = "vaše firma"
	}

	replacer := strings.NewReplacer(
		"{{company}}", company,
		"{{contact}}", lead.Email,
		"{{signal_title}}", lead.Note,
	)
	return replacer.Replace(campaign.Subject), replacer.Replace(campaign.Body)
}
