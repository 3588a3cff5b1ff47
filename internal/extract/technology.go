package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/goleads/internal/domain"
)

// techRule detects one technology. Rules are evaluated in order; the first
// matching rule for a name wins, so put the most specific pattern first.
type techRule struct {
	name      string
	pattern   *regexp.Regexp
	versionRe *regexp.Regexp
	ecommerce bool
}

var techRules = []techRule{
	{
		name:      "WooCommerce",
		pattern:   regexp.MustCompile(`(?i)woocommerce`),
		ecommerce: true,
	},
	{
		name:      "WordPress",
		pattern:   regexp.MustCompile(`(?i)wp-content|wp-includes|wordpress`),
		versionRe: regexp.MustCompile(`(?i)wordpress\s*([0-9.]+)`),
	},
	{
		name:      "Shoptet",
		pattern:   regexp.MustCompile(`(?i)shoptet|cdn\.myshoptet\.com`),
		ecommerce: true,
	},
	{
		name:      "PrestaShop",
		pattern:   regexp.MustCompile(`(?i)prestashop`),
		ecommerce: true,
	},
	{
		name:    "Joomla",
		pattern: regexp.MustCompile(`(?i)joomla`),
	},
	{
		name:    "Drupal",
		pattern: regexp.MustCompile(`(?i)drupal`),
	},
	{
		name:    "React",
		pattern: regexp.MustCompile(`(?i)data-reactroot|react(?:\.production)?(?:\.min)?\.js|__NEXT_DATA__`),
	},
	{
		name:      "Vue.js",
		pattern:   regexp.MustCompile(`(?i)\bvue(?:\.runtime)?(?:\.min)?\.js|data-v-app`),
		versionRe: regexp.MustCompile(`(?i)vue@([0-9.]+)`),
	},
	{
		name:      "jQuery",
		pattern:   regexp.MustCompile(`(?i)jquery[.\-]`),
		versionRe: regexp.MustCompile(`(?i)jquery[.\-]([0-9.]+?)(?:\.min)?\.js`),
	},
	{
		name:      "Bootstrap",
		pattern:   regexp.MustCompile(`(?i)bootstrap(?:\.min)?\.(?:css|js)`),
		versionRe: regexp.MustCompile(`(?i)bootstrap@([0-9.]+)`),
	},
	{
		name:    "Google Tag Manager",
		pattern: regexp.MustCompile(`googletagmanager\.com`),
	},
	{
		name:    "Google Analytics",
		pattern: regexp.MustCompile(`google-analytics\.com|gtag\(`),
	},
	{
		name:    "Facebook Pixel",
		pattern: regexp.MustCompile(`connect\.facebook\.net|fbq\(`),
	},
}

// generatorVersionRe splits "WordPress 6.4.2" style generator metas.
var generatorVersionRe = regexp.MustCompile(`^\s*([^0-9]+?)\s+([0-9][0-9.]*)\s*$`)

// Technologies detects website technologies from meta generator tags and
// script/link/body markers. Each technology is reported once.
func Technologies(html string) []domain.Technology {
	var out []domain.Technology
	seen := make(map[string]bool)

	add := func(name, version string) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, domain.Technology{Name: name, Version: version})
	}

	// Meta generator carries both name and version when present.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find(`meta[name="generator"]`).Each(func(_ int, s *goquery.Selection) {
			content, _ := s.Attr("content")
			content = strings.TrimSpace(content)
			if content == "" {
				return
			}
			if m := generatorVersionRe.FindStringSubmatch(content); m != nil {
				add(canonicalTechName(m[1]), m[2])
			} else {
				add(canonicalTechName(content), "")
			}
		})
	}

	for _, rule := range techRules {
		if !rule.pattern.MatchString(html) {
			continue
		}
		version := ""
		if rule.versionRe != nil {
			if m := rule.versionRe.FindStringSubmatch(html); m != nil {
				version = m[1]
			}
		}
		add(rule.name, version)
	}

	return out
}

// HasEcommerce reports whether any detected technology is an e-shop
// platform, or whether the page carries cart/checkout markers.
func HasEcommerce(html string, techs []domain.Technology) bool {
	for _, t := range techs {
		for _, rule := range techRules {
			if rule.name == t.Name && rule.ecommerce {
				return true
			}
		}
	}
	lower := strings.ToLower(html)
	markers := []string{"add-to-cart", "kosik", "košík", "checkout", "objednávka", "do košíku"}
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// canonicalTechName maps generator strings onto rule names so the two
// detection paths agree.
func canonicalTechName(name string) string {
	name = strings.TrimSpace(name)
	for _, rule := range techRules {
		if strings.EqualFold(rule.name, name) {
			return rule.name
		}
	}
	return name
}
