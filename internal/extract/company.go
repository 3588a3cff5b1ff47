package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// legalFormRe matches a company name ending in a Czech legal form suffix.
var legalFormRe = regexp.MustCompile(`(?i)([\p{L}0-9][\p{L}0-9 .&\-]{1,60}?(?:s\.\s?r\.\s?o\.|a\.\s?s\.|spol\.\s?s\s?r\.\s?o\.|z\.\s?s\.|v\.\s?o\.\s?s\.))`)

// titleSeparators splits <title> content like "Firma XY | Úvod".
var titleSeparators = []string{" | ", " – ", " - ", " :: ", " • "}

// CompanyName extracts the most likely company name from an HTML document.
// Priority: og:site_name meta, legal-form match in title or headings,
// <title> stripped of separator noise. Returns "" when nothing plausible is
// found.
func CompanyName(doc *goquery.Document) string {
	if name, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			return trimmed
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if m := legalFormRe.FindString(title); m != "" {
		return strings.TrimSpace(m)
	}

	var fromHeading string
	doc.Find("h1, h2, footer").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := legalFormRe.FindString(s.Text()); m != "" {
			fromHeading = strings.TrimSpace(m)
			return false
		}
		return true
	})
	if fromHeading != "" {
		return fromHeading
	}

	return firstTitleSegment(title)
}

// firstTitleSegment returns the first segment of a separator-joined title.
func firstTitleSegment(title string) string {
	for _, sep := range titleSeparators {
		if idx := strings.Index(title, sep); idx > 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return title
}

// CompanyNameFromHTML is a convenience wrapper over CompanyName for raw
// markup.
func CompanyNameFromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return CompanyName(doc)
}
