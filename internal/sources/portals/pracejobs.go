package portals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const (
	praceName    = "pracejobs"
	praceBaseURL = "https://www.prace.cz"
)

// praceSearchPaths are the listing queries worth watching: companies hiring
// for these roles usually need the services we sell.
var praceSearchPaths = []string{
	"/nabidky/?searchForm%5Bprofessions%5D%5B%5D=web-developer",
	"/nabidky/?searchForm%5Bprofessions%5D%5B%5D=marketing",
}

// PraceJobs scrapes prace.cz job listings as hiring signals.
type PraceJobs struct {
	fetcher *sources.Fetcher
	baseURL string
	logger  logger.Logger
}

// NewPraceJobs creates the prace.cz source.
func NewPraceJobs(f *sources.Fetcher, log logger.Logger) *PraceJobs {
	return &PraceJobs{
		fetcher: f,
		baseURL: praceBaseURL,
		logger:  log.With(logger.String("source", praceName)),
	}
}

// Name implements sources.Source.
func (p *PraceJobs) Name() string { return praceName }

// Kind implements sources.Source.
func (p *PraceJobs) Kind() domain.SignalType { return domain.SignalHiring }

// Fetch implements sources.Source.
func (p *PraceJobs) Fetch(ctx context.Context) ([]domain.Signal, error) {
	var out []domain.Signal
	for _, path := range praceSearchPaths {
		body, err := p.fetcher.Get(ctx, p.baseURL+path)
		if err != nil {
			// One failing search query should not lose the others.
			p.logger.Warn("search page fetch failed",
				logger.String("path", path),
				logger.Error(err),
			)
			continue
		}

		signals, parseErr := p.parseListing(body)
		if parseErr != nil {
			p.logger.Warn("search page unparseable",
				logger.String("path", path),
				logger.Error(parseErr),
			)
			continue
		}
		out = append(out, signals...)
	}
	return out, nil
}

// parseListing extracts job postings from one search result page.
func (p *PraceJobs) parseListing(body []byte) ([]domain.Signal, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []domain.Signal
	doc.Find("li.search-result__advert").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.link").First()
		href, _ := link.Attr("href")
		title := sources.CleanSpace(link.Text())
		externalID := externalIDFromPath(href)

		if title == "" || externalID == "" {
			p.logger.Debug("skipping malformed advert row")
			return
		}

		out = append(out, domain.Signal{
			SourceName:  praceName,
			ExternalID:  externalID,
			Type:        domain.SignalHiring,
			Title:       title,
			URL:         sources.ResolveURL(p.baseURL, href),
			CompanyName: sources.CleanSpace(s.Find("div.search-result__advert__box__item--company").Text()),
			Location:    sources.CleanSpace(s.Find("div.search-result__advert__box__item--location").Text()),
			ValueCZK:    sources.ParseCZK(s.Find("span.salary").Text()),
			HarvestedAt: time.Now(),
		})
	})

	return out, nil
}
