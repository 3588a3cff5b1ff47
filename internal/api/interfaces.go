package api

import (
	"context"
	"io"

	"github.com/jonesrussell/goleads/internal/database"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/harvest"
	"github.com/jonesrussell/goleads/internal/importer"
	"github.com/jonesrussell/goleads/internal/outreach"
	"github.com/jonesrussell/goleads/internal/sources"
)

// SourceDirectory lists the registered portals.
type SourceDirectory interface {
	List() []sources.Source
	IsEnabled(name string) bool
}

// SignalStore is the subset of the signal repository the handlers need.
type SignalStore interface {
	GetByID(ctx context.Context, id string) (*domain.Signal, error)
	List(ctx context.Context, filter database.SignalFilter) ([]domain.Signal, error)
	CountBySource(ctx context.Context) (map[string]int, error)
}

// SignalSearcher runs full-text queries against the signal index.
// A nil searcher means search is disabled.
type SignalSearcher interface {
	Enabled() bool
	SearchSignals(ctx context.Context, text string, size int) ([]domain.Signal, error)
}

// LeadStore is the subset of the lead repository the handlers need.
type LeadStore interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, state domain.LeadState, limit int) ([]domain.Lead, error)
	UpdateState(ctx context.Context, id string, to domain.LeadState) error
	AttachProfile(ctx context.Context, id string, profile *domain.SiteProfile) error
}

// CampaignStore is the subset of the campaign repository the handlers need.
type CampaignStore interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByName(ctx context.Context, name string) (*domain.Campaign, error)
	List(ctx context.Context) ([]domain.Campaign, error)
}

// SiteAnalyzer crawls a lead's website into a profile.
type SiteAnalyzer interface {
	Analyze(ctx context.Context, rawURL string) *domain.SiteProfile
}

// LeadImporter ingests leads from an uploaded spreadsheet.
type LeadImporter interface {
	Import(ctx context.Context, r io.Reader) (*importer.Report, error)
}

// HarvestRunner runs harvests across all enabled sources or one source
// by name.
type HarvestRunner interface {
	Run(ctx context.Context) *harvest.Report
	RunSource(ctx context.Context, name string) (harvest.SourceReport, error)
}

// OutreachRunner sends one campaign to a set of leads.
type OutreachRunner interface {
	Run(ctx context.Context, campaign *domain.Campaign, leads []domain.Lead) (*outreach.Report, error)
}
