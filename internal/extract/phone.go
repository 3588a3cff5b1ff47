package extract

import (
	"regexp"
	"strings"
)

// phoneRe matches Czech phone numbers: optional +420/00420 prefix followed
// by nine digits in arbitrary grouping.
var phoneRe = regexp.MustCompile(`(?:\+420|00420)?[ \t]*(\d[ \t.]?\d[ \t.]?\d)[ \t.]?(\d[ \t.]?\d[ \t.]?\d)[ \t.]?(\d[ \t.]?\d[ \t.]?\d)`)

var phoneDigitStripper = strings.NewReplacer(" ", "", "\t", "", ".", "")

// Phones returns Czech phone numbers found in the HTML, normalized to
// +420XXXXXXXXX and deduplicated in order of first occurrence.
func Phones(html string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, m := range phoneRe.FindAllStringSubmatch(html, -1) {
		digits := phoneDigitStripper.Replace(m[1] + m[2] + m[3])
		if len(digits) != 9 {
			continue
		}
		if !validLeadingDigit(digits[0]) {
			continue
		}
		normalized := "+420" + digits
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}

	return out
}

// validLeadingDigit restricts matches to Czech landline (2,3,5) and mobile
// (6,7) number ranges, which cuts most false positives from prices and IDs.
func validLeadingDigit(d byte) bool {
	switch d {
	case '2', '3', '5', '6', '7':
		return true
	}
	return false
}
