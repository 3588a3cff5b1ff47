// Package extract parses structured contact and company facts out of raw
// HTML using prioritized heuristics with Czech-specific validation.
package extract

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	mailtoRe = regexp.MustCompile(`(?i)mailto:([^"'?\s>]+)`)

	spaceBeforeAtRe = regexp.MustCompile(`([a-zA-Z0-9._%+\-])\s+@`)
	spaceAfterAtRe  = regexp.MustCompile(`@\s+([a-zA-Z0-9])`)

	// assetExtensions filters matches that are file references, not addresses
	// (e.g. logo@2x.png from srcset attributes).
	assetExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".css", ".js"}
)

// obfuscationReplacer rewrites common Czech anti-spam obfuscations into
// plain addresses before matching.
var obfuscationReplacer = strings.NewReplacer(
	"(at)", "@", "[at]", "@", "{at}", "@",
	"(AT)", "@", "[AT]", "@",
	"(zavináč)", "@", "[zavináč]", "@",
	"(zavinac)", "@", "[zavinac]", "@",
	"(dot)", ".", "[dot]", ".",
	"(tečka)", ".", "[tečka]", ".",
	"(tecka)", ".", "[tecka]", ".",
)

// Emails returns all email addresses found in the HTML, lowercased and
// deduplicated in order of first occurrence. Handles mailto: links and
// common textual obfuscations.
func Emails(html string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(candidate string) {
		addr := strings.ToLower(strings.TrimSpace(candidate))
		if addr == "" || seen[addr] {
			return
		}
		if isAssetReference(addr) {
			return
		}
		seen[addr] = true
		out = append(out, addr)
	}

	// mailto: hrefs first, they are the strongest signal
	for _, m := range mailtoRe.FindAllStringSubmatch(html, -1) {
		if emailRe.MatchString(m[1]) {
			add(emailRe.FindString(m[1]))
		}
	}

	deobfuscated := obfuscationReplacer.Replace(html)
	// Obfuscated addresses are often spaced around the marker ("info (at) firma.cz").
	deobfuscated = spaceBeforeAtRe.ReplaceAllString(deobfuscated, "$1@")
	deobfuscated = spaceAfterAtRe.ReplaceAllString(deobfuscated, "@$1")

	for _, m := range emailRe.FindAllString(deobfuscated, -1) {
		add(m)
	}

	return out
}

func isAssetReference(addr string) bool {
	for _, ext := range assetExtensions {
		if strings.HasSuffix(addr, ext) {
			return true
		}
	}
	return false
}
