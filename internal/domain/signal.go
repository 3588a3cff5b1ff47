package domain

import (
	"time"
)

// Signal is a normalized demand signal harvested from an external portal.
type Signal struct {
	ID         string     `json:"id" db:"id"`
	SourceName string     `json:"source_name" db:"source_name"`
	ExternalID string     `json:"external_id" db:"external_id"`
	Type       SignalType `json:"type" db:"type"`
	Industry   Industry   `json:"industry" db:"industry"`
	Score      float64    `json:"score" db:"score"`

	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	URL         string `json:"url" db:"url"`
	Location    string `json:"location" db:"location"`

	// ValueCZK is the listed contract or budget value in CZK, 0 when unknown.
	ValueCZK int64 `json:"value_czk" db:"value_czk"`

	CompanyName  string `json:"company_name" db:"company_name"`
	ContactEmail string `json:"contact_email" db:"contact_email"`
	ContactPhone string `json:"contact_phone" db:"contact_phone"`
	ICO          string `json:"ico" db:"ico"`

	Deadline    time.Time `json:"deadline" db:"deadline"`
	PublishedAt time.Time `json:"published_at" db:"published_at"`
	HarvestedAt time.Time `json:"harvested_at" db:"harvested_at"`
}

// DedupKey identifies a signal across harvest runs.
// Two records with the same key are the same portal listing.
func (s *Signal) DedupKey() string {
	return s.SourceName + ":" + s.ExternalID
}
