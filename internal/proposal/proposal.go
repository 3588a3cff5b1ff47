// Package proposal composes deterministic Czech offer drafts from a lead,
// its originating signal and the website analysis.
package proposal

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonesrussell/goleads/internal/domain"
)

// industryPitches map each industry to its service pitch line.
var industryPitches = map[domain.Industry]string{
	domain.IndustryWebDevelopment: "Specializujeme se na vývoj moderních webových stránek a aplikací na míru.",
	domain.IndustryEcommerce:      "Stavíme a rozvíjíme e-shopy, od návrhu po napojení na sklad a platby.",
	domain.IndustryMarketing:      "Pomáháme firmám růst přes výkonnostní marketing, SEO a správu kampaní.",
	domain.IndustryITServices:     "Dodáváme vývoj software, integrace a dlouhodobou IT podporu.",
	domain.IndustryConstruction:   "Pro stavební firmy připravujeme weby s referencemi a poptávkovými formuláři.",
	domain.IndustryManufacturing:  "Výrobním firmám stavíme prezentace produktů a B2B objednávkové portály.",
	domain.IndustryLogistics:      "Pro dopravce a logistiku řešíme weby se sledováním zásilek a poptávkami.",
	domain.IndustryFinance:        "Finančním službám dodáváme důvěryhodné weby a klientské zóny.",
}

const defaultPitch = "Pomáháme firmám s online prezentací a digitálními nástroji na míru."

// legacyTechnologies are detections that open a modernization angle.
var legacyTechnologies = map[string]string{
	"jQuery":    "starší JavaScriptové knihovně jQuery",
	"Bootstrap": "starší šabloně postavené na Bootstrapu",
}

// Draft composes a proposal. The same inputs always produce the same
// output; signal and profile may be nil.
func Draft(lead *domain.Lead, signal *domain.Signal, profile *domain.SiteProfile) *domain.Proposal {
	p := &domain.Proposal{
		LeadID:    lead.ID,
		Subject:   subjectFor(lead, signal),
		Greeting:  greetingFor(lead),
		Closing:   "Rádi připravíme nezávaznou konzultaci zdarma.\n\nS pozdravem,\nobchodní tým",
		CreatedAt: time.Now(),
	}

	industry := domain.IndustryOther
	if signal != nil {
		industry = signal.Industry
	}
	pitch, ok := industryPitches[industry]
	if !ok {
		pitch = defaultPitch
	}
	p.Lines = append(p.Lines, pitch)

	if signal != nil {
		p.Lines = append(p.Lines, signalLines(signal)...)
	}
	if profile != nil {
		p.Lines = append(p.Lines, profileLines(profile)...)
	}

	return p
}

func subjectFor(lead *domain.Lead, signal *domain.Signal) string {
	if signal != nil && signal.Title != "" {
		return "Nabídka spolupráce: " + signal.Title
	}
	if lead.CompanyName != "" {
		return "Nabídka spolupráce pro " + lead.CompanyName
	}
	return "Nabídka spolupráce"
}

func greetingFor(lead *domain.Lead) string {
	if lead.CompanyName != "" {
		return fmt.Sprintf("Dobrý den, tým %s,", lead.CompanyName)
	}
	return "Dobrý den,"
}

// signalLines turn signal facts into proposal lines.
func signalLines(signal *domain.Signal) []string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Zaujala nás vaše poptávka „%s“.", signal.Title))

	if signal.ValueCZK > 0 {
		lines = append(lines, fmt.Sprintf("Uvedený rozpočet %s Kč odpovídá rozsahu projektů, které běžně realizujeme.", formatCZK(signal.ValueCZK)))
	}
	if !signal.Deadline.IsZero() {
		lines = append(lines, fmt.Sprintf("Termín %s jsme schopni dodržet.", signal.Deadline.Format("2.1.2006")))
	}

	return lines
}

// profileLines turn website analysis facts into modernization angles.
func profileLines(profile *domain.SiteProfile) []string {
	var lines []string

	for _, tech := range profile.Technologies {
		angle, ok := legacyTechnologies[tech.Name]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("Všimli jsme si, že váš web běží na %s; rádi navrhneme modernizaci.", angle))
		break
	}

	if profile.HasEshop {
		lines = append(lines, "Váš e-shop můžeme doplnit o měření konverzí a napojení na srovnávače zboží.")
	}

	return lines
}

// formatCZK renders an amount with Czech thousand separators.
func formatCZK(amount int64) string {
	digits := fmt.Sprintf("%d", amount)

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return strings.Join(groups, " ")
}
