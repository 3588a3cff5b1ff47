package portals

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/extract"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const (
	aaapoptavkaName    = "aaapoptavka"
	aaapoptavkaBaseURL = "https://www.aaapoptavka.cz"

	// aaaDetailLimit caps how many detail pages one harvest fetches for
	// contact enrichment.
	aaaDetailLimit = 10
)

var (
	aaaBudgetRe   = regexp.MustCompile(`(?i)(?:rozpočet|budget|cena)\s*:?\s*([^<\n]+)`)
	aaaDeadlineRe = regexp.MustCompile(`(?i)(?:termín|lhůta|deadline)[^:]*:\s*([^<\n]+)`)
)

// Aaapoptavka scrapes the aaapoptavka.cz demand aggregator. The listing
// page gives title/region; budget, deadline and contact facts come from
// detail pages parsed with regex heuristics.
type Aaapoptavka struct {
	fetcher *sources.Fetcher
	baseURL string
	logger  logger.Logger
}

// NewAaapoptavka creates the aaapoptavka.cz source.
func NewAaapoptavka(f *sources.Fetcher, log logger.Logger) *Aaapoptavka {
	return &Aaapoptavka{
		fetcher: f,
		baseURL: aaapoptavkaBaseURL,
		logger:  log.With(logger.String("source", aaapoptavkaName)),
	}
}

// Name implements sources.Source.
func (a *Aaapoptavka) Name() string { return aaapoptavkaName }

// Kind implements sources.Source.
func (a *Aaapoptavka) Kind() domain.SignalType { return domain.SignalRFP }

// Fetch implements sources.Source.
func (a *Aaapoptavka) Fetch(ctx context.Context) ([]domain.Signal, error) {
	body, err := a.fetcher.Get(ctx, a.baseURL+"/poptavky")
	if err != nil {
		return nil, err
	}

	signals, err := a.parseListing(body)
	if err != nil {
		return nil, err
	}

	// Enrich the newest listings from their detail pages. A failed detail
	// fetch degrades the signal, it does not fail the harvest.
	for i := range signals {
		if i >= aaaDetailLimit {
			break
		}
		detail, detailErr := a.fetcher.Get(ctx, signals[i].URL)
		if detailErr != nil {
			a.logger.Warn("detail fetch failed",
				logger.String("url", signals[i].URL),
				logger.Error(detailErr),
			)
			continue
		}
		a.enrichFromDetail(&signals[i], detail)
	}

	return signals, nil
}

// parseListing extracts demand rows from the listing page.
func (a *Aaapoptavka) parseListing(body []byte) ([]domain.Signal, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []domain.Signal
	doc.Find("li.poptavka-row").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.poptavka-title").First()
		href, _ := link.Attr("href")
		title := sources.CleanSpace(link.Text())
		externalID := externalIDFromPath(href)

		if title == "" || externalID == "" {
			a.logger.Debug("skipping malformed listing row")
			return
		}

		out = append(out, domain.Signal{
			SourceName:  aaapoptavkaName,
			ExternalID:  externalID,
			Type:        domain.SignalRFP,
			Title:       title,
			URL:         sources.ResolveURL(a.baseURL, href),
			Location:    sources.CleanSpace(s.Find("span.region").Text()),
			HarvestedAt: time.Now(),
		})
	})

	return out, nil
}

// enrichFromDetail fills budget, deadline, description and contact facts
// from a detail page body.
func (a *Aaapoptavka) enrichFromDetail(sig *domain.Signal, body []byte) {
	html := string(body)

	if m := aaaBudgetRe.FindStringSubmatch(html); m != nil {
		sig.ValueCZK = sources.ParseCZK(m[1])
	}
	if m := aaaDeadlineRe.FindStringSubmatch(html); m != nil {
		sig.Deadline = sources.ParseCzechDate(m[1])
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		sig.Description = sources.CleanSpace(doc.Find("div.poptavka-text").Text())
		if sig.CompanyName == "" {
			sig.CompanyName = sources.CleanSpace(doc.Find("span.zadavatel").Text())
		}
	}

	if emails := extract.Emails(html); len(emails) > 0 {
		sig.ContactEmail = emails[0]
	}
	if phones := extract.Phones(html); len(phones) > 0 {
		sig.ContactPhone = phones[0]
	}
	if icos := extract.ICOs(html); len(icos) > 0 {
		sig.ICO = icos[0]
	}
}
