// Package classify assigns harvested signals to the fixed industry/type
// taxonomy with an Aho-Corasick keyword rule engine.
package classify

import (
	"github.com/jonesrussell/goleads/internal/domain"
)

// Rule is one keyword rule mapping text onto an industry.
type Rule struct {
	ID            int
	Industry      domain.Industry
	Keywords      []string
	Priority      int
	MinConfidence float64
	Enabled       bool
}

// RuleMatch is a matched rule with scoring details.
type RuleMatch struct {
	Rule            *Rule
	MatchCount      int      // total keyword hits
	UniqueMatches   int      // unique keywords matched
	Coverage        float64  // UniqueMatches / len(Rule.Keywords)
	Score           float64  // final computed score
	MatchedKeywords []string // which keywords matched
}
