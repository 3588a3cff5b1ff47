package classify

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/goleads/internal/logger"
)

// Scoring weights: log-scaled term frequency rewards repetition, coverage
// rewards breadth across a rule's keyword set.
const (
	tfNormalizationFactor = 3.0
	tfWeight              = 0.4
	coverageWeight        = 0.6
)

// Engine matches rules against text in a single Aho-Corasick pass.
type Engine struct {
	mu        sync.RWMutex
	matcher   *ahocorasick.Matcher
	rules     []*Rule
	keywords  []string
	kwToRules map[string][]*ruleMapping
	logger    logger.Logger
}

type ruleMapping struct {
	rule         *Rule
	keywordIndex int
}

type matchAccumulator struct {
	rule            *Rule
	matchedKeywords map[int]bool
	keywordTexts    []string
	totalHits       int
}

// NewEngine builds the automaton from enabled rules.
func NewEngine(rules []Rule, log logger.Logger) *Engine {
	e := &Engine{
		kwToRules: make(map[string][]*ruleMapping),
		logger:    log,
	}
	e.setRules(rules)

	e.logger.Info("rule engine initialized",
		logger.Int("rules", len(e.rules)),
		logger.Int("keywords", len(e.keywords)),
	)
	return e
}

// UpdateRules hot-reloads rules and rebuilds the automaton atomically.
func (e *Engine) UpdateRules(rules []Rule) {
	e.setRules(rules)
	e.mu.RLock()
	keywordCount := len(e.keywords)
	ruleCount := len(e.rules)
	e.mu.RUnlock()

	e.logger.Info("rule engine updated",
		logger.Int("rules", ruleCount),
		logger.Int("keywords", keywordCount),
	)
}

func (e *Engine) setRules(rules []Rule) {
	enabled := make([]*Rule, 0, len(rules))
	for i := range rules {
		if rules[i].Enabled {
			enabled = append(enabled, &rules[i])
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rules = enabled
	e.keywords = e.keywords[:0]
	e.kwToRules = make(map[string][]*ruleMapping)

	for _, rule := range e.rules {
		for idx, kw := range rule.Keywords {
			normalized := normalizeKeyword(kw)
			if normalized == "" {
				continue
			}
			e.keywords = append(e.keywords, normalized)
			e.kwToRules[normalized] = append(e.kwToRules[normalized], &ruleMapping{
				rule:         rule,
				keywordIndex: idx,
			})
		}
	}

	if len(e.keywords) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.keywords)
	} else {
		e.matcher = nil
	}
}

// Match finds all matching rules in one pass through the text.
// Results are sorted by priority desc, then score desc.
func (e *Engine) Match(title, body string) []RuleMatch {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return nil
	}

	text := normalizeText(title + " " + body)
	hits := e.matcher.Match([]byte(text))

	accum := make(map[int]*matchAccumulator)
	for _, hitIndex := range hits {
		if hitIndex >= len(e.keywords) {
			continue
		}
		keyword := e.keywords[hitIndex]
		for _, m := range e.kwToRules[keyword] {
			acc, exists := accum[m.rule.ID]
			if !exists {
				acc = &matchAccumulator{
					rule:            m.rule,
					matchedKeywords: make(map[int]bool),
				}
				accum[m.rule.ID] = acc
			}
			if !acc.matchedKeywords[m.keywordIndex] {
				acc.keywordTexts = append(acc.keywordTexts, keyword)
			}
			acc.matchedKeywords[m.keywordIndex] = true
			acc.totalHits++
		}
	}

	results := make([]RuleMatch, 0, len(accum))
	for _, acc := range accum {
		totalKeywords := len(acc.rule.Keywords)
		if totalKeywords == 0 {
			continue
		}

		uniqueMatched := len(acc.matchedKeywords)
		coverage := float64(uniqueMatched) / float64(totalKeywords)
		logTF := math.Min(1.0, math.Log1p(float64(acc.totalHits))/tfNormalizationFactor)
		score := (logTF * tfWeight) + (coverage * coverageWeight)

		if score >= acc.rule.MinConfidence {
			results = append(results, RuleMatch{
				Rule:            acc.rule,
				MatchCount:      acc.totalHits,
				UniqueMatches:   uniqueMatched,
				Coverage:        coverage,
				Score:           score,
				MatchedKeywords: acc.keywordTexts,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Rule.Priority != results[j].Rule.Priority {
			return results[i].Rule.Priority > results[j].Rule.Priority
		}
		return results[i].Score > results[j].Score
	})

	return results
}

// RuleCount returns the number of enabled rules.
func (e *Engine) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// normalizeKeyword applies the same normalization as normalizeText so
// keywords with punctuation ("e-shop") still match normalized input.
func normalizeKeyword(kw string) string {
	return strings.Join(strings.Fields(normalizeText(kw)), " ")
}

// normalizeText lowercases and replaces non-alphanumerics with spaces so
// keyword hits respect word boundaries.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte(' ')
		}
	}
	return result.String()
}
