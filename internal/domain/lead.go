package domain

import (
	"errors"
	"fmt"
	"time"
)

// LeadState is the lifecycle state of a lead.
type LeadState string

const (
	LeadNew       LeadState = "new"
	LeadQualified LeadState = "qualified"
	LeadContacted LeadState = "contacted"
	LeadWon       LeadState = "won"
	LeadLost      LeadState = "lost"
	LeadDiscarded LeadState = "discarded"
)

// ErrInvalidTransition is returned when a lead state change is not allowed.
var ErrInvalidTransition = errors.New("invalid lead state transition")

// leadTransitions maps each state to the states it may move to.
// Discarding is allowed from any state, closed deals included.
var leadTransitions = map[LeadState][]LeadState{
	LeadNew:       {LeadQualified, LeadDiscarded},
	LeadQualified: {LeadContacted, LeadDiscarded},
	LeadContacted: {LeadWon, LeadLost, LeadDiscarded},
	LeadWon:       {LeadDiscarded},
	LeadLost:      {LeadDiscarded},
}

// CanTransition reports whether a lead may move from one state to another.
func CanTransition(from, to LeadState) bool {
	for _, allowed := range leadTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates and returns the new state.
func Transition(from, to LeadState) (LeadState, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

// Lead is a business prospect, created from a harvested signal or entered
// manually.
type Lead struct {
	ID       string    `json:"id" db:"id"`
	SignalID string    `json:"signal_id,omitempty" db:"signal_id"`
	State    LeadState `json:"state" db:"state"`

	CompanyName string `json:"company_name" db:"company_name"`
	Website     string `json:"website" db:"website"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	ICO         string `json:"ico" db:"ico"`
	Note        string `json:"note" db:"note"`

	// Profile is the website analysis result, nil until analyzed.
	Profile *SiteProfile `json:"profile,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Technology is a detected website technology.
type Technology struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// SiteProfile is the contact/technology profile extracted from a lead's
// website.
type SiteProfile struct {
	URL          string       `json:"url"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	CompanyName  string       `json:"company_name"`
	Emails       []string     `json:"emails"`
	Phones       []string     `json:"phones"`
	ICO          string       `json:"ico"`
	Technologies []Technology `json:"technologies"`
	HasEshop     bool         `json:"has_eshop"`
	AnalyzedAt   time.Time    `json:"analyzed_at"`
	Error        string       `json:"error,omitempty"`
}
