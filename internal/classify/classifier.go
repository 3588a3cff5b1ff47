package classify

import (
	"strings"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

// tenderUpgradeThreshold is how many distinct procurement phrases must be
// present before an RFP signal is reclassified as a tender.
const tenderUpgradeThreshold = 2

// Classifier assigns signals to the taxonomy.
type Classifier struct {
	engine *Engine
	logger logger.Logger
}

// New creates a Classifier with the built-in rule set.
func New(log logger.Logger) *Classifier {
	return &Classifier{
		engine: NewEngine(BuiltinRules(), log),
		logger: log,
	}
}

// NewWithRules creates a Classifier with a custom rule set.
func NewWithRules(rules []Rule, log logger.Logger) *Classifier {
	return &Classifier{
		engine: NewEngine(rules, log),
		logger: log,
	}
}

// UpdateRules hot-reloads the rule set.
func (c *Classifier) UpdateRules(rules []Rule) {
	c.engine.UpdateRules(rules)
}

// Classify returns the industry classification for a signal's text.
// When no rule matches, the signal lands in IndustryOther with zero score.
func (c *Classifier) Classify(title, body string) domain.Classification {
	matches := c.engine.Match(title, body)
	if len(matches) == 0 {
		return domain.Classification{Industry: domain.IndustryOther}
	}

	best := matches[0]
	return domain.Classification{
		Industry: best.Rule.Industry,
		Score:    best.Score,
		Keywords: best.MatchedKeywords,
	}
}

// ResolveType returns the final signal type. The source's hint wins, except
// that RFP signals dominated by procurement vocabulary are upgraded to
// tenders.
func (c *Classifier) ResolveType(hint domain.SignalType, title, body string) domain.SignalType {
	if hint != domain.SignalRFP {
		return hint
	}

	text := normalizeText(title + " " + body)
	distinct := 0
	for _, kw := range tenderKeywords {
		if strings.Contains(text, normalizeText(kw)) {
			distinct++
		}
	}
	if distinct >= tenderUpgradeThreshold {
		c.logger.Debug("rfp upgraded to tender",
			logger.String("title", title),
			logger.Int("procurement_phrases", distinct),
		)
		return domain.SignalTender
	}
	return hint
}

// Apply classifies a signal in place: industry, score and resolved type.
func (c *Classifier) Apply(sig *domain.Signal) {
	cls := c.Classify(sig.Title, sig.Description)
	sig.Industry = cls.Industry
	sig.Score = cls.Score
	sig.Type = c.ResolveType(sig.Type, sig.Title, sig.Description)
}
