package portals

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/antchfx/htmlquery"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const (
	vestnikName    = "vestnik"
	vestnikBaseURL = "https://vestnikverejnychzakazek.cz"
)

// Vestnik scrapes the public procurement bulletin's notice table. The
// bulletin renders server-side HTML tables, which XPath handles better
// than CSS selectors.
type Vestnik struct {
	fetcher *sources.Fetcher
	baseURL string
	logger  logger.Logger
}

// NewVestnik creates the vestnikverejnychzakazek.cz source.
func NewVestnik(f *sources.Fetcher, log logger.Logger) *Vestnik {
	return &Vestnik{
		fetcher: f,
		baseURL: vestnikBaseURL,
		logger:  log.With(logger.String("source", vestnikName)),
	}
}

// Name implements sources.Source.
func (v *Vestnik) Name() string { return vestnikName }

// Kind implements sources.Source.
func (v *Vestnik) Kind() domain.SignalType { return domain.SignalTender }

// Fetch implements sources.Source.
func (v *Vestnik) Fetch(ctx context.Context) ([]domain.Signal, error) {
	body, err := v.fetcher.Get(ctx, v.baseURL+"/SearchForm/Search?announcementType=contract-notice")
	if err != nil {
		return nil, err
	}
	return v.parseTable(body)
}

// parseTable extracts contract notices from the search result table.
// Expected columns: notice number, name (link), authority, value, deadline.
func (v *Vestnik) parseTable(body []byte) ([]domain.Signal, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	rows, err := htmlquery.QueryAll(doc, `//table[@id="SearchGrid"]//tbody/tr`)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}

	var out []domain.Signal
	for _, row := range rows {
		cells, cellErr := htmlquery.QueryAll(row, `./td`)
		if cellErr != nil || len(cells) < 5 {
			v.logger.Debug("skipping malformed notice row")
			continue
		}

		noticeNumber := sources.CleanSpace(htmlquery.InnerText(cells[0]))
		title := sources.CleanSpace(htmlquery.InnerText(cells[1]))
		if noticeNumber == "" || title == "" {
			v.logger.Debug("skipping notice without number or name")
			continue
		}

		detailURL := ""
		if link, linkErr := htmlquery.Query(cells[1], `.//a/@href`); linkErr == nil && link != nil {
			detailURL = sources.ResolveURL(v.baseURL, htmlquery.InnerText(link))
		}

		out = append(out, domain.Signal{
			SourceName:  vestnikName,
			ExternalID:  noticeNumber,
			Type:        domain.SignalTender,
			Title:       title,
			URL:         detailURL,
			CompanyName: sources.CleanSpace(htmlquery.InnerText(cells[2])),
			ValueCZK:    sources.ParseCZK(htmlquery.InnerText(cells[3])),
			Deadline:    sources.ParseCzechDate(htmlquery.InnerText(cells[4])),
			HarvestedAt: time.Now(),
		})
	}

	return out, nil
}
