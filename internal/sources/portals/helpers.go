package portals

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jonesrussell/goleads/internal/extract"
)

// idFromPathRe pulls the trailing numeric ID out of listing detail paths
// like /poptavka/123456-tvorba-webu.
var idFromPathRe = regexp.MustCompile(`(\d{4,})`)

// externalIDFromPath extracts a stable external ID from a detail href.
// Falls back to the last path segment when no numeric ID is present.
func externalIDFromPath(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if m := idFromPathRe.FindString(href); m != "" {
		return m
	}
	segments := strings.Split(strings.Trim(href, "/"), "/")
	return segments[len(segments)-1]
}

// validICOOrEmpty keeps an IČO only when its checksum holds. Portals
// occasionally publish truncated or mistyped identifiers.
func validICOOrEmpty(ico string) string {
	ico = strings.TrimSpace(ico)
	if extract.ValidICO(ico) {
		return ico
	}
	return ""
}

// domainOf returns the host of a base URL for colly domain allow-lists.
func domainOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return u.Host
}
