package extract

import (
	"regexp"
)

var (
	// icoMarkedRe matches 8-digit candidates next to an IČO/IČ label.
	icoMarkedRe = regexp.MustCompile(`(?i)I(?:Č|C)O?:?\s*(\d{8})`)

	// icoBareRe matches standalone 8-digit runs; these only count when the
	// checksum holds.
	icoBareRe = regexp.MustCompile(`\b(\d{8})\b`)

	icoWeights = []int{8, 7, 6, 5, 4, 3, 2}
)

// ValidICO reports whether ico is a syntactically valid Czech company
// identifier: exactly 8 digits with a correct modulo-11 check digit.
func ValidICO(ico string) bool {
	if len(ico) != 8 {
		return false
	}
	sum := 0
	for i := 0; i < 7; i++ {
		d := ico[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += int(d-'0') * icoWeights[i]
	}
	last := ico[7]
	if last < '0' || last > '9' {
		return false
	}
	check := (11 - sum%11) % 10
	return int(last-'0') == check
}

// ICOs returns all checksum-valid IČO identifiers found in the HTML,
// deduplicated in order of first occurrence. Labeled candidates are tried
// first, then bare 8-digit runs.
func ICOs(html string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(candidate string) {
		if seen[candidate] || !ValidICO(candidate) {
			return
		}
		seen[candidate] = true
		out = append(out, candidate)
	}

	for _, m := range icoMarkedRe.FindAllStringSubmatch(html, -1) {
		add(m[1])
	}
	for _, m := range icoBareRe.FindAllStringSubmatch(html, -1) {
		add(m[1])
	}

	return out
}
