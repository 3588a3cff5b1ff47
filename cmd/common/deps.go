// Package common wires the shared dependencies the goleads commands run on.
package common

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonesrussell/goleads/internal/analyzer"
	"github.com/jonesrussell/goleads/internal/classify"
	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/database"
	"github.com/jonesrussell/goleads/internal/harvest"
	"github.com/jonesrussell/goleads/internal/importer"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/outreach"
	"github.com/jonesrussell/goleads/internal/search"
	"github.com/jonesrussell/goleads/internal/sources"
	"github.com/jonesrussell/goleads/internal/sources/portals"
)

const sourceSyncTimeout = 10 * time.Second

// BaseDeps holds config and logger, enough for commands that never touch
// the database.
type BaseDeps struct {
	Config *config.Config
	Logger logger.Logger
}

// NewBaseDeps loads configuration and builds the logger.
func NewBaseDeps() (*BaseDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Development: cfg.Logger.Development,
		Encoding:    cfg.Logger.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &BaseDeps{Config: cfg, Logger: log}, nil
}

// NewFetcher builds the shared rate-limited HTTP fetcher.
func (d *BaseDeps) NewFetcher() *sources.Fetcher {
	return sources.NewFetcher(sources.FetcherConfig{
		Timeout:   d.Config.Harvest.RequestTimeout,
		RateLimit: d.Config.Sources.RateLimit,
		UserAgent: d.Config.Harvest.UserAgent,
	}, d.Logger)
}

// Deps holds the full dependency graph for commands that run the pipeline.
type Deps struct {
	*BaseDeps

	DB        *sqlx.DB
	Signals   *database.SignalRepository
	Leads     *database.LeadRepository
	Campaigns *database.CampaignRepository
	Outreach  *database.OutreachRepository
	Sources   *database.SourceRepository

	Fetcher    *sources.Fetcher
	Registry   *sources.Registry
	Classifier *classify.Classifier
	Analyzer   *analyzer.Analyzer
	Importer   *importer.Importer
	Search     *search.Index
	Seen       harvest.SeenCache
	Metrics    *harvest.Metrics
	Gatherer   prometheus.Gatherer
	Harvester  *harvest.Harvester
	Runner     *outreach.Runner
}

// NewCommandDeps wires everything: database with migrations, portal
// registry, classifier, search index, seen cache and the harvester.
func NewCommandDeps() (*Deps, error) {
	base, err := NewBaseDeps()
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgresConnection(base.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db, base.Logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	deps := &Deps{
		BaseDeps:  base,
		DB:        db,
		Signals:   database.NewSignalRepository(db),
		Leads:     database.NewLeadRepository(db),
		Campaigns: database.NewCampaignRepository(db),
		Outreach:  database.NewOutreachRepository(db),
		Sources:   database.NewSourceRepository(db),
	}

	deps.Fetcher = base.NewFetcher()
	deps.Classifier = classify.New(base.Logger)
	deps.Analyzer = analyzer.New(deps.Fetcher, base.Logger)
	deps.Importer = importer.New(deps.Leads, base.Logger)

	deps.Registry, err = buildRegistry(deps.Fetcher, base)
	if err != nil {
		db.Close()
		return nil, err
	}

	deps.Search, err = search.New(base.Config.Elastic, base.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	deps.Seen = harvest.NewSeenCache(base.Config.Redis, base.Logger)

	promRegistry := prometheus.NewRegistry()
	deps.Metrics = harvest.NewMetrics(promRegistry)
	deps.Gatherer = promRegistry

	deps.Harvester = harvest.New(
		deps.Registry,
		deps.Classifier,
		deps.Signals,
		deps.Leads,
		deps.Search,
		deps.Seen,
		deps.Metrics,
		harvest.Config{
			Parallelism:  base.Config.Harvest.Parallelism,
			LeadMinScore: base.Config.Harvest.LeadMinScore,
		},
		base.Logger,
	)

	deps.Harvester.SetStateStore(deps.Sources)
	syncSourceDirectory(deps)

	sender := outreach.NewSender(base.Config.SMTP, base.Logger)
	deps.Runner = outreach.NewRunner(sender, deps.Outreach, base.Logger)

	return deps, nil
}

// syncSourceDirectory mirrors the registry into the portal_sources table.
// Directory sync is bookkeeping; failures are logged, never fatal.
func syncSourceDirectory(deps *Deps) {
	ctx, cancel := context.WithTimeout(context.Background(), sourceSyncTimeout)
	defer cancel()

	for _, src := range deps.Registry.List() {
		enabled := deps.Registry.IsEnabled(src.Name())
		if err := deps.Sources.Sync(ctx, src.Name(), src.Kind(), enabled); err != nil {
			deps.Logger.Warn("failed to sync source directory",
				logger.String("source", src.Name()),
				logger.Error(err),
			)
		}
	}
}

// Close releases the connections the dependency graph holds.
func (d *Deps) Close() {
	if d.Seen != nil {
		if err := d.Seen.Close(); err != nil {
			d.Logger.Warn("failed to close seen cache", logger.Error(err))
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Logger.Warn("failed to close database", logger.Error(err))
		}
	}
	_ = d.Logger.Sync()
}

// buildRegistry registers every portal and applies the configured disables.
func buildRegistry(fetcher *sources.Fetcher, base *BaseDeps) (*sources.Registry, error) {
	registry := sources.NewRegistry(base.Logger)

	portalSources := []sources.Source{
		portals.NewEpoptavka(fetcher, base.Logger),
		portals.NewAaapoptavka(fetcher, base.Logger),
		portals.NewNenZakazky(fetcher, base.Logger),
		portals.NewVestnik(fetcher, base.Logger),
		portals.NewPraceJobs(fetcher, base.Logger),
		portals.NewStartupJobs(fetcher, base.Logger),
	}
	for _, src := range portalSources {
		if err := registry.Register(src); err != nil {
			return nil, fmt.Errorf("failed to register source %s: %w", src.Name(), err)
		}
	}

	for _, name := range base.Config.Sources.Disabled {
		registry.Disable(name)
	}

	return registry, nil
}
