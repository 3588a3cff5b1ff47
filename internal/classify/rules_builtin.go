package classify

import (
	"github.com/jonesrussell/goleads/internal/domain"
)

// Default rule tuning. Priorities keep the service industries (the ones we
// sell into) above the generic verticals when both match.
const (
	priorityService  = 10
	priorityVertical = 5

	defaultMinConfidence = 0.05
)

// BuiltinRules returns the default Czech/English industry rule set.
func BuiltinRules() []Rule {
	return []Rule{
		{
			ID:       1,
			Industry: domain.IndustryWebDevelopment,
			Keywords: []string{
				"webové stránky", "webova stranka", "tvorba webu", "nový web",
				"redesign webu", "webdesign", "web development", "webová aplikace",
				"frontend", "backend", "wordpress", "redakční systém", "cms",
			},
			Priority:      priorityService,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
		{
			ID:       2,
			Industry: domain.IndustryEcommerce,
			Keywords: []string{
				"eshop", "e-shop", "internetový obchod", "online obchod",
				"shoptet", "woocommerce", "prestashop", "košík", "objednávkový systém",
				"b2b portál", "marketplace",
			},
			Priority:      priorityService,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
		{
			ID:       3,
			Industry: domain.IndustryMarketing,
			Keywords: []string{
				"marketing", "ppc", "seo", "kampaň", "reklama", "social media",
				"sociální sítě", "copywriting", "branding", "google ads", "sklik",
			},
			Priority:      priorityService,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
		{
			ID:       4,
			Industry: domain.IndustryITServices,
			Keywords: []string{
				"informační systém", "vývoj software", "softwarový vývoj",
				"programátor", "it podpora", "správa sítě", "cloud", "devops",
				"integrace", "api", "mobilní aplikace", "docker", "kubernetes",
			},
			Priority:      priorityService,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
		{
			ID:       5,
			Industry: domain.IndustryConstruction,
			Keywords: []string{
				"stavba", "stavební práce", "rekonstrukce", "zateplení",
				"výstavba", "demolice", "projektová dokumentace", "inženýrské sítě",
			},
			Priority:      priorityVertical,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
		{
			ID:       6,
			Industry: domain.IndustryManufacturing,
			Keywords: []string{
				"výroba", "obrábění", "cnc", "svařování", "lisování",
				"strojírenství", "montáž", "výrobní linka",
			},
			Priority:      priorityVertical,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
		{
			ID:       7,
			Industry: domain.IndustryLogistics,
			Keywords: []string{
				"doprava", "přeprava", "logistika", "skladování", "spedice",
				"zásilky", "kamionová doprava",
			},
			Priority:      priorityVertical,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
		{
			ID:       8,
			Industry: domain.IndustryFinance,
			Keywords: []string{
				"účetnictví", "daňové poradenství", "audit", "pojištění",
				"úvěr", "leasing", "faktoring", "mzdy",
			},
			Priority:      priorityVertical,
			MinConfidence: defaultMinConfidence,
			Enabled:       true,
		},
	}
}

// tenderKeywords flag procurement vocabulary; when these dominate an RFP
// signal it is upgraded to a tender.
var tenderKeywords = []string{
	"veřejná zakázka", "verejna zakazka", "zadávací řízení", "zadavatel",
	"nabídková cena", "zadávací dokumentace", "rámcová dohoda",
	"public procurement", "contract notice",
}
