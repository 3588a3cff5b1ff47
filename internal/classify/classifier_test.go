package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return New(logger.NewNopLogger())
}

func TestClassifyIndustry(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name  string
		title string
		body  string
		want  domain.Industry
	}{
		{
			name:  "web development czech",
			title: "Poptávka: tvorba webu pro rodinnou firmu",
			body:  "Hledáme dodavatele na nový web s redakčním systémem WordPress.",
			want:  domain.IndustryWebDevelopment,
		},
		{
			name:  "ecommerce",
			title: "Nový e-shop na platformě Shoptet",
			body:  "Rozšíření internetového obchodu, napojení na objednávkový systém.",
			want:  domain.IndustryEcommerce,
		},
		{
			name:  "construction vertical",
			title: "Rekonstrukce bytového domu",
			body:  "Stavební práce včetně zateplení fasády a projektové dokumentace.",
			want:  domain.IndustryConstruction,
		},
		{
			name:  "no match falls back to other",
			title: "Prodej štěňat",
			body:  "Čistokrevná štěňata s průkazem původu.",
			want:  domain.IndustryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.title, tt.body)
			assert.Equal(t, tt.want, got.Industry)
			if tt.want != domain.IndustryOther {
				assert.Positive(t, got.Score)
				assert.NotEmpty(t, got.Keywords)
			} else {
				assert.Zero(t, got.Score)
			}
		})
	}
}

func TestServicePriorityBeatsVertical(t *testing.T) {
	c := newTestClassifier(t)

	// Both construction and web-development vocabulary present; the service
	// rule has higher priority and must win.
	got := c.Classify(
		"Webové stránky pro stavební firmu",
		"Tvorba webu, reference ze staveb a rekonstrukcí.",
	)
	assert.Equal(t, domain.IndustryWebDevelopment, got.Industry)
}

func TestResolveType(t *testing.T) {
	c := newTestClassifier(t)

	t.Run("hiring hint untouched", func(t *testing.T) {
		got := c.ResolveType(domain.SignalHiring, "Hledáme programátora", "veřejná zakázka zadavatel")
		assert.Equal(t, domain.SignalHiring, got)
	})

	t.Run("rfp stays rfp without procurement vocabulary", func(t *testing.T) {
		got := c.ResolveType(domain.SignalRFP, "Poptávka po novém webu", "Rozpočet do 100 000 Kč.")
		assert.Equal(t, domain.SignalRFP, got)
	})

	t.Run("rfp upgraded to tender", func(t *testing.T) {
		got := c.ResolveType(domain.SignalRFP,
			"Veřejná zakázka: dodávka informačního systému",
			"Zadavatel požaduje nabídkovou cenu dle zadávací dokumentace.")
		assert.Equal(t, domain.SignalTender, got)
	})
}

func TestUpdateRules(t *testing.T) {
	c := newTestClassifier(t)

	custom := []Rule{
		{
			ID:            100,
			Industry:      domain.IndustryFinance,
			Keywords:      []string{"krypto"},
			Priority:      1,
			MinConfidence: 0.01,
			Enabled:       true,
		},
	}
	c.UpdateRules(custom)

	got := c.Classify("Krypto směnárna", "krypto krypto")
	require.Equal(t, domain.IndustryFinance, got.Industry)

	// Old rules are gone after reload.
	got = c.Classify("Tvorba webu", "nový web wordpress")
	assert.Equal(t, domain.IndustryOther, got.Industry)
}

func TestDisabledRulesIgnored(t *testing.T) {
	rules := []Rule{
		{
			ID:            1,
			Industry:      domain.IndustryMarketing,
			Keywords:      []string{"ppc"},
			Priority:      1,
			MinConfidence: 0.01,
			Enabled:       false,
		},
	}
	c := NewWithRules(rules, logger.NewNopLogger())
	assert.Zero(t, c.engine.RuleCount())

	got := c.Classify("PPC kampaň", "ppc reklama")
	assert.Equal(t, domain.IndustryOther, got.Industry)
}
