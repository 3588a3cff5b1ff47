// Package harvest runs the fetch, classify, dedup, persist pipeline over
// the registered portal sources.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/goleads/internal/classify"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const defaultParallelism = 3

// ErrUnknownSource is returned when a named source is not registered.
var ErrUnknownSource = errors.New("unknown source")

// SignalStore persists harvested signals.
type SignalStore interface {
	UpsertBatch(ctx context.Context, signals []domain.Signal) ([]domain.Signal, error)
}

// LeadStore creates leads from qualifying signals.
type LeadStore interface {
	Create(ctx context.Context, lead *domain.Lead) error
}

// SignalIndexer mirrors new signals into the search index.
type SignalIndexer interface {
	Enabled() bool
	IndexSignals(ctx context.Context, signals []domain.Signal) error
}

// Config holds the harvest pipeline settings.
type Config struct {
	// Parallelism bounds how many sources are harvested at once.
	Parallelism int
	// LeadMinScore is the classification score at which a new signal
	// auto-creates a lead. Zero disables auto-creation.
	LeadMinScore float64
}

// SourceReport summarizes one source's harvest.
type SourceReport struct {
	Fetched   int
	New       int
	Duplicate int
	Err       error
}

// Report aggregates a whole harvest run.
type Report struct {
	PerSource map[string]SourceReport
	Duration  time.Duration
}

// Failed returns the names of sources whose harvest errored.
func (r *Report) Failed() []string {
	var failed []string
	for name, sr := range r.PerSource {
		if sr.Err != nil {
			failed = append(failed, name)
		}
	}
	return failed
}

// SourceStateStore persists per-source run bookkeeping. Optional.
type SourceStateStore interface {
	RecordRun(ctx context.Context, name string, fetched, created int, runErr error) error
}

// Harvester drives the signal pipeline across all enabled sources.
type Harvester struct {
	registry   *sources.Registry
	classifier *classify.Classifier
	signals    SignalStore
	leads      LeadStore
	index      SignalIndexer
	seen       SeenCache
	metrics    *Metrics
	states     SourceStateStore
	cfg        Config
	logger     logger.Logger
}

// New creates a harvester. The indexer and lead store may be nil.
func New(
	registry *sources.Registry,
	classifier *classify.Classifier,
	signalStore SignalStore,
	leadStore LeadStore,
	index SignalIndexer,
	seen SeenCache,
	metrics *Metrics,
	cfg Config,
	log logger.Logger,
) *Harvester {
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = defaultParallelism
	}
	return &Harvester{
		registry:   registry,
		classifier: classifier,
		signals:    signalStore,
		leads:      leadStore,
		index:      index,
		seen:       seen,
		metrics:    metrics,
		cfg:        cfg,
		logger:     log,
	}
}

// SetStateStore enables portal-directory bookkeeping after each source run.
func (h *Harvester) SetStateStore(states SourceStateStore) {
	h.states = states
}

// RunSource harvests one source by name regardless of the enabled flag.
func (h *Harvester) RunSource(ctx context.Context, name string) (SourceReport, error) {
	src, ok := h.registry.Get(name)
	if !ok {
		return SourceReport{}, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}

	sr := h.harvestSource(ctx, src)
	h.recordRun(ctx, name, sr)
	return sr, sr.Err
}

// Run harvests every enabled source with bounded concurrency. A failing
// source is reported, never fatal.
func (h *Harvester) Run(ctx context.Context) *Report {
	start := time.Now()
	enabled := h.registry.Enabled()

	report := &Report{PerSource: make(map[string]SourceReport, len(enabled))}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, h.cfg.Parallelism)
	)

	for _, src := range enabled {
		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			sr := h.harvestSource(ctx, src)
			h.recordRun(ctx, src.Name(), sr)

			mu.Lock()
			report.PerSource[src.Name()] = sr
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	report.Duration = time.Since(start)
	h.logger.Info("harvest finished",
		logger.Int("sources", len(enabled)),
		logger.Strings("failed", report.Failed()),
		logger.Duration("duration", report.Duration),
	)
	return report
}

// recordRun updates the portal directory. Bookkeeping failures never fail
// the harvest.
func (h *Harvester) recordRun(ctx context.Context, name string, sr SourceReport) {
	if h.states == nil {
		return
	}
	if err := h.states.RecordRun(ctx, name, sr.Fetched, sr.New, sr.Err); err != nil {
		h.logger.Warn("source bookkeeping failed", logger.String("source", name), logger.Error(err))
	}
}

func (h *Harvester) harvestSource(ctx context.Context, src sources.Source) SourceReport {
	name := src.Name()
	start := time.Now()
	defer func() {
		h.metrics.DurationSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	fetched, err := src.Fetch(ctx)
	if err != nil {
		h.metrics.ErrorsTotal.WithLabelValues(name).Inc()
		h.logger.Error("source fetch failed", logger.String("source", name), logger.Error(err))
		return SourceReport{Err: err}
	}
	h.metrics.SignalsFetchedTotal.WithLabelValues(name).Add(float64(len(fetched)))

	sr := SourceReport{Fetched: len(fetched)}

	// Advisory cache pass. The unique constraint below still catches keys
	// the cache missed.
	fresh := make([]domain.Signal, 0, len(fetched))
	for i := range fetched {
		sig := &fetched[i]
		h.classifier.Apply(sig)

		if normalized, normErr := sources.NormalizeURL(sig.URL); normErr == nil {
			sig.URL = normalized
		}

		if h.seen.Seen(ctx, sig.DedupKey()) {
			sr.Duplicate++
			continue
		}
		fresh = append(fresh, *sig)
	}

	inserted, err := h.signals.UpsertBatch(ctx, fresh)
	if err != nil {
		h.metrics.ErrorsTotal.WithLabelValues(name).Inc()
		h.logger.Error("signal persist failed", logger.String("source", name), logger.Error(err))
		sr.Err = err
		return sr
	}
	sr.New = len(inserted)
	sr.Duplicate += len(fresh) - len(inserted)

	h.metrics.SignalsNewTotal.WithLabelValues(name).Add(float64(sr.New))
	h.metrics.SignalsDuplicateTotal.WithLabelValues(name).Add(float64(sr.Duplicate))

	keys := make([]string, 0, len(fresh))
	for i := range fresh {
		keys = append(keys, fresh[i].DedupKey())
	}
	h.seen.MarkSeen(ctx, keys)

	h.indexSignals(ctx, name, inserted)
	h.createLeads(ctx, name, inserted)

	h.logger.Info("source harvested",
		logger.String("source", name),
		logger.Int("fetched", sr.Fetched),
		logger.Int("new", sr.New),
		logger.Int("duplicate", sr.Duplicate),
	)
	return sr
}

// indexSignals mirrors new signals into the search index. Index failures
// are logged, signals are already safe in Postgres.
func (h *Harvester) indexSignals(ctx context.Context, name string, inserted []domain.Signal) {
	if h.index == nil || !h.index.Enabled() || len(inserted) == 0 {
		return
	}
	if err := h.index.IndexSignals(ctx, inserted); err != nil {
		h.logger.Warn("signal indexing failed", logger.String("source", name), logger.Error(err))
	}
}

// createLeads opens a lead for each new signal scoring at or above the
// configured threshold.
func (h *Harvester) createLeads(ctx context.Context, name string, inserted []domain.Signal) {
	if h.leads == nil || h.cfg.LeadMinScore <= 0 {
		return
	}

	for i := range inserted {
		sig := &inserted[i]
		if sig.Score < h.cfg.LeadMinScore {
			continue
		}

		lead := &domain.Lead{
			SignalID:    sig.ID,
			State:       domain.LeadNew,
			CompanyName: sig.CompanyName,
			Email:       sig.ContactEmail,
			Phone:       sig.ContactPhone,
			ICO:         sig.ICO,
			Note:        sig.Title,
		}
		if err := h.leads.Create(ctx, lead); err != nil {
			h.logger.Warn("lead creation failed",
				logger.String("source", name),
				logger.String("signal", sig.DedupKey()),
				logger.Error(err),
			)
			continue
		}
		h.metrics.LeadsCreatedTotal.Inc()
	}
}
