package sources

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
)

// trackingParams are advertising and analytics query parameters stripped
// during normalization. They never change the listing a URL points at.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"fbclid":       {},
	"gclid":        {},
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

var errInvalidURL = errors.New("url missing scheme or host")

// NormalizeURL canonicalizes a listing or company URL so the same page
// expressed differently stores as one string: lowercased scheme and host,
// default ports and fragments removed, tracking parameters stripped, the
// remaining query sorted and dot-segments in the path resolved.
func NormalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("normalize url: %w", errInvalidURL)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("normalize url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("normalize url: %w", errInvalidURL)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = normalizeHost(parsed)
	parsed.Fragment = ""
	parsed.RawQuery = cleanQuery(parsed.Query())
	parsed.Path = normalizePath(parsed.Path)

	return parsed.String(), nil
}

func normalizeHost(u *url.URL) string {
	hostname := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" || defaultPorts[u.Scheme] == port {
		return hostname
	}
	return hostname + ":" + port
}

// cleanQuery drops tracking parameters and re-encodes the rest with sorted
// keys. Returns an empty string when nothing remains.
func cleanQuery(values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if _, tracking := trackingParams[key]; !tracking {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		for j, val := range values[key] {
			if j > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}

// normalizePath resolves dot-segments and trims trailing slashes while
// preserving the root "/".
func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	return strings.TrimRight(path.Clean(p), "/")
}
