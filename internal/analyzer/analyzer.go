// Package analyzer builds contact and technology profiles of lead websites.
package analyzer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/extract"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/sources"
)

const (
	analyzerMaxDepth = 2
	analyzerMaxPages = 8

	analyzerDelay = 1 * time.Second
)

// contactPathHints mark links worth following: contact and about pages
// carry most of the facts we extract.
var contactPathHints = []string{
	"kontakt", "contact", "o-nas", "onas", "o-spolecnosti", "about",
}

// Analyzer crawls a lead's website and condenses it into a SiteProfile.
type Analyzer struct {
	userAgent string
	logger    logger.Logger
}

// New creates a website analyzer.
func New(f *sources.Fetcher, log logger.Logger) *Analyzer {
	return &Analyzer{
		userAgent: f.UserAgent(),
		logger:    log,
	}
}

// Analyze crawls the site at rawURL, depth-limited and same-domain only.
// The returned profile always carries AnalyzedAt; crawl failures land in
// profile.Error rather than an error return, so a broken website still
// produces a storable result.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) *domain.SiteProfile {
	profile := &domain.SiteProfile{URL: rawURL, AnalyzedAt: time.Now()}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		profile.Error = fmt.Sprintf("invalid url: %s", rawURL)
		return profile
	}

	host := strings.TrimPrefix(parsed.Host, "www.")
	builder := newProfileBuilder(profile)

	pages := 0
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(a.userAgent),
		colly.AllowedDomains(host, "www."+host),
		colly.MaxDepth(analyzerMaxDepth),
	)
	if limitErr := c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: analyzerDelay}); limitErr != nil {
		profile.Error = fmt.Sprintf("set rate limit: %v", limitErr)
		return profile
	}

	c.OnResponse(func(r *colly.Response) {
		pages++
		builder.absorb(string(r.Body), pages == 1)
	})

	c.OnHTML("a[href]", func(el *colly.HTMLElement) {
		if pages >= analyzerMaxPages {
			return
		}
		href := el.Attr("href")
		if !isContactLink(href) {
			return
		}
		if visitErr := el.Request.Visit(href); visitErr != nil {
			a.logger.Debug("analyzer link skipped", logger.Error(visitErr))
		}
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		if fetchErr == nil {
			fetchErr = err
		}
	})

	if visitErr := c.Visit(rawURL); visitErr != nil {
		profile.Error = fmt.Sprintf("visit %s: %v", rawURL, visitErr)
		return profile
	}
	c.Wait()

	if pages == 0 && fetchErr != nil {
		profile.Error = fetchErr.Error()
		return profile
	}

	a.logger.Info("website analyzed",
		logger.String("url", rawURL),
		logger.Int("pages", pages),
		logger.Int("emails", len(profile.Emails)),
		logger.Int("technologies", len(profile.Technologies)),
	)
	return profile
}

// isContactLink reports whether a link looks like a contact or about page.
func isContactLink(href string) bool {
	href = strings.ToLower(href)
	for _, hint := range contactPathHints {
		if strings.Contains(href, hint) {
			return true
		}
	}
	return false
}

// profileBuilder accumulates extracted facts across crawled pages.
type profileBuilder struct {
	profile    *domain.SiteProfile
	seenEmails map[string]bool
	seenPhones map[string]bool
	seenTechs  map[string]bool
}

func newProfileBuilder(profile *domain.SiteProfile) *profileBuilder {
	return &profileBuilder{
		profile:    profile,
		seenEmails: make(map[string]bool),
		seenPhones: make(map[string]bool),
		seenTechs:  make(map[string]bool),
	}
}

// absorb folds one page's HTML into the profile. The root page supplies
// title, description and company name.
func (b *profileBuilder) absorb(html string, isRoot bool) {
	p := b.profile

	for _, email := range extract.Emails(html) {
		if !b.seenEmails[email] {
			b.seenEmails[email] = true
			p.Emails = append(p.Emails, email)
		}
	}
	for _, phone := range extract.Phones(html) {
		if !b.seenPhones[phone] {
			b.seenPhones[phone] = true
			p.Phones = append(p.Phones, phone)
		}
	}
	if p.ICO == "" {
		if icos := extract.ICOs(html); len(icos) > 0 {
			p.ICO = icos[0]
		}
	}

	techs := extract.Technologies(html)
	for _, tech := range techs {
		if !b.seenTechs[tech.Name] {
			b.seenTechs[tech.Name] = true
			p.Technologies = append(p.Technologies, tech)
		}
	}
	if !p.HasEshop && extract.HasEcommerce(html, techs) {
		p.HasEshop = true
	}

	if isRoot {
		b.absorbMetadata(html)
	}
}

// absorbMetadata pulls title, meta description and company name from the
// landing page.
func (b *profileBuilder) absorbMetadata(html string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return
	}

	p := b.profile
	p.Title = sources.CleanSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		p.Description = sources.CleanSpace(desc)
	}
	p.CompanyName = extract.CompanyName(doc)
}
