package portals

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const (
	startupJobsName    = "startupjobs"
	startupJobsBaseURL = "https://www.startupjobs.cz"
)

// startupJobsResponse mirrors the startupjobs.cz offer API payload.
type startupJobsResponse struct {
	Resultset []startupJobsOffer `json:"resultSet"`
}

type startupJobsOffer struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	CompanyName string   `json:"companyName"`
	City        string   `json:"city"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Published   string   `json:"publishedAt"`
}

// StartupJobs polls the startupjobs.cz JSON API. Technology tags from the
// posting flow into the signal description so the classifier sees them.
type StartupJobs struct {
	fetcher *sources.Fetcher
	baseURL string
	logger  logger.Logger
}

// NewStartupJobs creates the startupjobs.cz source.
func NewStartupJobs(f *sources.Fetcher, log logger.Logger) *StartupJobs {
	return &StartupJobs{
		fetcher: f,
		baseURL: startupJobsBaseURL,
		logger:  log.With(logger.String("source", startupJobsName)),
	}
}

// Name implements sources.Source.
func (s *StartupJobs) Name() string { return startupJobsName }

// Kind implements sources.Source.
func (s *StartupJobs) Kind() domain.SignalType { return domain.SignalHiring }

// Fetch implements sources.Source.
func (s *StartupJobs) Fetch(ctx context.Context) ([]domain.Signal, error) {
	body, err := s.fetcher.Get(ctx, s.baseURL+"/api/offers?area=vyvoj")
	if err != nil {
		return nil, err
	}
	return s.parseResponse(body)
}

// parseResponse decodes the offer payload into hiring signals.
func (s *StartupJobs) parseResponse(body []byte) ([]domain.Signal, error) {
	var resp startupJobsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}

	out := make([]domain.Signal, 0, len(resp.Resultset))
	for _, offer := range resp.Resultset {
		if offer.ID == 0 || offer.Name == "" {
			s.logger.Debug("skipping offer without id")
			continue
		}

		description := ""
		if len(offer.Tags) > 0 {
			description = "Technologie: " + strings.Join(offer.Tags, ", ")
		}

		offerURL := offer.URL
		if offerURL == "" {
			offerURL = sources.ResolveURL(s.baseURL, "/nabidka/"+strconv.Itoa(offer.ID))
		}

		out = append(out, domain.Signal{
			SourceName:  startupJobsName,
			ExternalID:  strconv.Itoa(offer.ID),
			Type:        domain.SignalHiring,
			Title:       sources.CleanSpace(offer.Name),
			Description: description,
			URL:         offerURL,
			Location:    sources.CleanSpace(offer.City),
			CompanyName: sources.CleanSpace(offer.CompanyName),
			PublishedAt: sources.ParseCzechDate(offer.Published),
			HarvestedAt: time.Now(),
		})
	}

	return out, nil
}
