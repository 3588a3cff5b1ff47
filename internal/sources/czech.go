package sources

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	czkDigitsRe = regexp.MustCompile(`(\d[\d \x{00a0}.]*\d|\d)`)

	czechDateRe = regexp.MustCompile(`(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{4})`)

	isoDateRe = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

	millionRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*mil`)
)

// pragueTZ is where all portal deadlines are published.
var pragueTZ = mustLoadLocation("Europe/Prague")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseCZK parses a Czech money string into whole CZK. Handles thousand
// separators (spaces, non-breaking spaces, dots), the ",-" suffix and
// "X mil. Kč" shorthand. Returns 0 when no amount is found.
func ParseCZK(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if m := millionRe.FindStringSubmatch(s); m != nil {
		val, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil {
			return int64(val * 1_000_000)
		}
	}

	// Cut the decimal/",-" tail before collecting digits.
	if idx := strings.Index(s, ",-"); idx >= 0 {
		s = s[:idx]
	} else if idx := strings.LastIndex(s, ","); idx >= 0 {
		s = s[:idx]
	}

	m := czkDigitsRe.FindString(s)
	if m == "" {
		return 0
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, m)

	val, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// ParseCzechDate parses "31. 12. 2026", "31.12.2026" or ISO "2026-12-31"
// into a Prague-local midnight time. Returns the zero time when nothing
// parses.
func ParseCzechDate(s string) time.Time {
	if m := czechDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, pragueTZ)
		}
	}
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, pragueTZ)
		}
	}
	return time.Time{}
}

func validDate(year, month, day int) bool {
	return year >= 2000 && year <= 2100 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// CleanSpace collapses runs of whitespace (including non-breaking spaces)
// into single spaces and trims the result.
func CleanSpace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveURL joins a possibly relative href against the portal base URL.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}
