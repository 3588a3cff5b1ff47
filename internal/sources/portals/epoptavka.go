// Package portals implements one scraper per external Czech B2B portal.
// Each scraper keeps its parsing separate from fetching so listings can be
// parsed from fixtures in tests.
package portals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const (
	epoptavkaName    = "epoptavka"
	epoptavkaBaseURL = "https://www.epoptavka.cz"

	// epoptavkaMaxPages caps pagination so one harvest never walks the
	// whole archive.
	epoptavkaMaxPages = 5

	epoptavkaRateLimit = 2 * time.Second
)

// Epoptavka scrapes the epoptavka.cz demand listing. Listings paginate, so
// this scraper runs a small colly collector over the listing pages and
// parses each page body.
type Epoptavka struct {
	baseURL   string
	userAgent string
	logger    logger.Logger
}

// NewEpoptavka creates the epoptavka.cz source.
func NewEpoptavka(f *sources.Fetcher, log logger.Logger) *Epoptavka {
	return &Epoptavka{
		baseURL:   epoptavkaBaseURL,
		userAgent: f.UserAgent(),
		logger:    log.With(logger.String("source", epoptavkaName)),
	}
}

// Name implements sources.Source.
func (e *Epoptavka) Name() string { return epoptavkaName }

// Kind implements sources.Source.
func (e *Epoptavka) Kind() domain.SignalType { return domain.SignalRFP }

// Fetch implements sources.Source.
func (e *Epoptavka) Fetch(ctx context.Context) ([]domain.Signal, error) {
	var (
		signals []domain.Signal
		pages   int
	)

	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(e.userAgent),
		colly.AllowedDomains(domainOf(e.baseURL)),
	)
	if err := c.Limit(&colly.LimitRule{
		DomainGlob: "*",
		Delay:      epoptavkaRateLimit,
	}); err != nil {
		return nil, fmt.Errorf("set rate limit: %w", err)
	}

	c.OnResponse(func(r *colly.Response) {
		pages++
		parsed, err := e.parseListing(r.Body)
		if err != nil {
			e.logger.Warn("listing page unparseable",
				logger.String("url", r.Request.URL.String()),
				logger.Error(err),
			)
			return
		}
		signals = append(signals, parsed...)
	})

	c.OnHTML("a.pagination-next, a[rel=next]", func(el *colly.HTMLElement) {
		if pages >= epoptavkaMaxPages {
			return
		}
		if err := el.Request.Visit(el.Attr("href")); err != nil {
			e.logger.Debug("pagination stopped", logger.Error(err))
		}
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetch %s: %w", r.Request.URL, err)
	})

	if err := c.Visit(e.baseURL + "/poptavky"); err != nil {
		return nil, fmt.Errorf("visit listing: %w", err)
	}
	c.Wait()

	if len(signals) == 0 && fetchErr != nil {
		return nil, fetchErr
	}

	e.logger.Info("listing harvested",
		logger.Int("pages", pages),
		logger.Int("signals", len(signals)),
	)
	return signals, nil
}

// parseListing extracts demand records from one listing page.
// Malformed rows are skipped, never fatal.
func (e *Epoptavka) parseListing(body []byte) ([]domain.Signal, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []domain.Signal
	doc.Find("div.demand-item").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("h2 a, h3 a").First()
		href, _ := link.Attr("href")
		title := sources.CleanSpace(link.Text())
		externalID := externalIDFromPath(href)

		if title == "" || externalID == "" {
			e.logger.Debug("skipping malformed listing row")
			return
		}

		sig := domain.Signal{
			SourceName:  epoptavkaName,
			ExternalID:  externalID,
			Type:        domain.SignalRFP,
			Title:       title,
			Description: sources.CleanSpace(s.Find("p.demand-description").Text()),
			URL:         sources.ResolveURL(e.baseURL, href),
			Location:    sources.CleanSpace(s.Find("span.demand-region").Text()),
			ValueCZK:    sources.ParseCZK(s.Find("span.demand-budget").Text()),
			Deadline:    sources.ParseCzechDate(s.Find("span.demand-deadline").Text()),
			HarvestedAt: time.Now(),
		}
		out = append(out, sig)
	})

	return out, nil
}
