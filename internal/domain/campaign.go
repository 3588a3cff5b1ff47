package domain

import (
	"time"
)

// Campaign groups outreach messages under one subject/body template.
// Templates use {{company}}, {{contact}} and {{signal_title}} placeholders.
type Campaign struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Subject   string    `json:"subject" db:"subject"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OutreachStatus is the delivery status of one outreach entry.
type OutreachStatus string

const (
	OutreachQueued OutreachStatus = "queued"
	OutreachSent   OutreachStatus = "sent"
	OutreachFailed OutreachStatus = "failed"
)

// OutreachEntry records a single email sent (or attempted) to a lead.
type OutreachEntry struct {
	ID         string         `json:"id" db:"id"`
	CampaignID string         `json:"campaign_id" db:"campaign_id"`
	LeadID     string         `json:"lead_id" db:"lead_id"`
	Email      string         `json:"email" db:"email"`
	Subject    string         `json:"subject" db:"subject"`
	Status     OutreachStatus `json:"status" db:"status"`
	Error      string         `json:"error,omitempty" db:"error"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	SentAt     *time.Time     `json:"sent_at,omitempty" db:"sent_at"`
}

// Proposal is a deterministic offer draft composed from a lead, its signal
// and the website analysis.
type Proposal struct {
	LeadID    string    `json:"lead_id"`
	Subject   string    `json:"subject"`
	Greeting  string    `json:"greeting"`
	Lines     []string  `json:"lines"`
	Closing   string    `json:"closing"`
	CreatedAt time.Time `json:"created_at"`
}

// Text renders the proposal as a plain-text email body.
func (p *Proposal) Text() string {
	out := p.Greeting + "\n\n"
	for _, line := range p.Lines {
		out += line + "\n"
	}
	out += "\n" + p.Closing + "\n"
	return out
}
