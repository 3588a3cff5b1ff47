package portals

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const (
	nenName    = "nenzakazky"
	nenBaseURL = "https://nen.nipez.cz"

	nenPageSize = 50
)

// nenResponse mirrors the NEN public contract listing API payload.
type nenResponse struct {
	Data []nenContract `json:"data"`
}

type nenContract struct {
	SystemNumber  string `json:"systemNumber"`
	ContractName  string `json:"contractName"`
	Description   string `json:"description"`
	ContractType  string `json:"contractType"`
	EstimatedCZK  string `json:"estimatedValue"`
	Authority     string `json:"contractingAuthority"`
	AuthorityICO  string `json:"authorityIco"`
	Region        string `json:"region"`
	BidDeadline   string `json:"bidDeadline"`
	PublishedDate string `json:"publishedDate"`
	DetailURL     string `json:"detailUrl"`
}

// NenZakazky polls the NEN public procurement platform's JSON listing.
type NenZakazky struct {
	fetcher *sources.Fetcher
	baseURL string
	logger  logger.Logger
}

// NewNenZakazky creates the nen.nipez.cz source.
func NewNenZakazky(f *sources.Fetcher, log logger.Logger) *NenZakazky {
	return &NenZakazky{
		fetcher: f,
		baseURL: nenBaseURL,
		logger:  log.With(logger.String("source", nenName)),
	}
}

// Name implements sources.Source.
func (n *NenZakazky) Name() string { return nenName }

// Kind implements sources.Source.
func (n *NenZakazky) Kind() domain.SignalType { return domain.SignalTender }

// Fetch implements sources.Source.
func (n *NenZakazky) Fetch(ctx context.Context) ([]domain.Signal, error) {
	url := fmt.Sprintf("%s/api/public/contracts?state=open&pageSize=%d", n.baseURL, nenPageSize)
	body, err := n.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return n.parseResponse(body)
}

// parseResponse decodes the listing payload into signals. Records without
// a system number are skipped.
func (n *NenZakazky) parseResponse(body []byte) ([]domain.Signal, error) {
	var resp nenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	out := make([]domain.Signal, 0, len(resp.Data))
	for _, c := range resp.Data {
		if c.SystemNumber == "" || c.ContractName == "" {
			n.logger.Debug("skipping contract without system number")
			continue
		}

		detailURL := c.DetailURL
		if detailURL == "" {
			detailURL = sources.ResolveURL(n.baseURL, "/verejne-zakazky/"+c.SystemNumber)
		}

		out = append(out, domain.Signal{
			SourceName:  nenName,
			ExternalID:  c.SystemNumber,
			Type:        domain.SignalTender,
			Title:       sources.CleanSpace(c.ContractName),
			Description: sources.CleanSpace(c.Description),
			URL:         detailURL,
			Location:    sources.CleanSpace(c.Region),
			ValueCZK:    sources.ParseCZK(c.EstimatedCZK),
			CompanyName: sources.CleanSpace(c.Authority),
			ICO:         validICOOrEmpty(c.AuthorityICO),
			Deadline:    sources.ParseCzechDate(c.BidDeadline),
			PublishedAt: sources.ParseCzechDate(c.PublishedDate),
			HarvestedAt: time.Now(),
		})
	}

	return out, nil
}
