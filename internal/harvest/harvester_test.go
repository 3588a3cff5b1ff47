package harvest

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/classify"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

type stubSource struct {
	name    string
	signals []domain.Signal
	err     error
}

func (s *stubSource) Name() string                { return s.name }
func (s *stubSource) Kind() domain.SignalType     { return domain.SignalRFP }
func (s *stubSource) Fetch(context.Context) ([]domain.Signal, error) {
	return s.signals, s.err
}

type stubSignalStore struct {
	upserted []domain.Signal
	err      error
}

func (s *stubSignalStore) UpsertBatch(_ context.Context, signals []domain.Signal) ([]domain.Signal, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.upserted = append(s.upserted, signals...)
	return signals, nil
}

type stubLeadStore struct {
	created []domain.Lead
}

func (s *stubLeadStore) Create(_ context.Context, lead *domain.Lead) error {
	s.created = append(s.created, *lead)
	return nil
}

func newTestHarvester(t *testing.T, reg *sources.Registry, store SignalStore, leads LeadStore, cfg Config) *Harvester {
	t.Helper()

	log := logger.NewNopLogger()
	return New(
		reg,
		classify.New(log),
		store,
		leads,
		nil,
		newMemorySeenCache(),
		NewMetrics(prometheus.NewRegistry()),
		cfg,
		log,
	)
}

func TestHarvesterRun_PersistsAndReports(t *testing.T) {
	reg := sources.NewRegistry(logger.NewNopLogger())
	require.NoError(t, reg.Register(&stubSource{
		name: "alpha",
		signals: []domain.Signal{
			{SourceName: "alpha", ExternalID: "1", Type: domain.SignalRFP, Title: "Tvorba webu pro firmu"},
			{SourceName: "alpha", ExternalID: "2", Type: domain.SignalRFP, Title: "Stavba plotu"},
		},
	}))

	store := &stubSignalStore{}
	h := newTestHarvester(t, reg, store, nil, Config{Parallelism: 2})

	report := h.Run(context.Background())

	require.Contains(t, report.PerSource, "alpha")
	sr := report.PerSource["alpha"]
	assert.NoError(t, sr.Err)
	assert.Equal(t, 2, sr.Fetched)
	assert.Equal(t, 2, sr.New)
	assert.Equal(t, 0, sr.Duplicate)
	assert.Len(t, store.upserted, 2)
	assert.Empty(t, report.Failed())

	// Classification ran before persistence.
	assert.Equal(t, domain.IndustryWebDevelopment, store.upserted[0].Industry)
}

func TestHarvesterRun_SeenCacheSkipsDuplicates(t *testing.T) {
	src := &stubSource{
		name: "alpha",
		signals: []domain.Signal{
			{SourceName: "alpha", ExternalID: "1", Type: domain.SignalRFP, Title: "Tvorba webu"},
		},
	}
	reg := sources.NewRegistry(logger.NewNopLogger())
	require.NoError(t, reg.Register(src))

	store := &stubSignalStore{}
	h := newTestHarvester(t, reg, store, nil, Config{})

	first := h.Run(context.Background())
	assert.Equal(t, 1, first.PerSource["alpha"].New)

	second := h.Run(context.Background())
	assert.Equal(t, 0, second.PerSource["alpha"].New)
	assert.Equal(t, 1, second.PerSource["alpha"].Duplicate)
	assert.Len(t, store.upserted, 1)
}

func TestHarvesterRun_SourceFailureIsIsolated(t *testing.T) {
	reg := sources.NewRegistry(logger.NewNopLogger())
	require.NoError(t, reg.Register(&stubSource{name: "broken", err: errors.New("portal down")}))
	require.NoError(t, reg.Register(&stubSource{
		name:    "healthy",
		signals: []domain.Signal{{SourceName: "healthy", ExternalID: "9", Type: domain.SignalRFP, Title: "Poptávka"}},
	}))

	store := &stubSignalStore{}
	h := newTestHarvester(t, reg, store, nil, Config{})

	report := h.Run(context.Background())

	assert.Error(t, report.PerSource["broken"].Err)
	assert.NoError(t, report.PerSource["healthy"].Err)
	assert.Equal(t, 1, report.PerSource["healthy"].New)
	assert.Equal(t, []string{"broken"}, report.Failed())
}

func TestHarvesterRun_AutoCreatesLeads(t *testing.T) {
	reg := sources.NewRegistry(logger.NewNopLogger())
	require.NoError(t, reg.Register(&stubSource{
		name: "alpha",
		signals: []domain.Signal{
			{
				SourceName:   "alpha",
				ExternalID:   "1",
				Type:         domain.SignalRFP,
				Title:        "Tvorba e-shopu",
				Description:  "Kompletní e-shop na míru, online prodej a eshop integrace.",
				CompanyName:  "Moda Praha",
				ContactEmail: "obchod@modapraha.cz",
			},
			{SourceName: "alpha", ExternalID: "2", Type: domain.SignalRFP, Title: "Sekání trávy"},
		},
	}))

	store := &stubSignalStore{}
	leads := &stubLeadStore{}
	h := newTestHarvester(t, reg, store, leads, Config{LeadMinScore: 0.2})

	h.Run(context.Background())

	require.Len(t, leads.created, 1)
	assert.Equal(t, "Moda Praha", leads.created[0].CompanyName)
	assert.Equal(t, "obchod@modapraha.cz", leads.created[0].Email)
	assert.Equal(t, domain.LeadNew, leads.created[0].State)
}

type stubStateStore struct {
	runs map[string]int
}

func (s *stubStateStore) RecordRun(_ context.Context, name string, fetched, _ int, _ error) error {
	if s.runs == nil {
		s.runs = make(map[string]int)
	}
	s.runs[name] = fetched
	return nil
}

func TestHarvesterRunSource(t *testing.T) {
	reg := sources.NewRegistry(logger.NewNopLogger())
	require.NoError(t, reg.Register(&stubSource{
		name: "alpha",
		signals: []domain.Signal{
			{SourceName: "alpha", ExternalID: "1", Type: domain.SignalRFP, Title: "Tvorba webu pro firmu"},
		},
	}))
	reg.Disable("alpha")

	store := &stubSignalStore{}
	states := &stubStateStore{}
	h := newTestHarvester(t, reg, store, nil, Config{})
	h.SetStateStore(states)

	// Disabled sources can still be harvested by name.
	sr, err := h.RunSource(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, 1, sr.Fetched)
	assert.Equal(t, 1, sr.New)
	assert.Equal(t, 1, states.runs["alpha"])

	_, err = h.RunSource(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownSource)
}
