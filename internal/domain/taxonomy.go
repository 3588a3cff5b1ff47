// Package domain provides domain models used across the application.
package domain

// SignalType is the demand-signal category a portal record falls into.
type SignalType string

const (
	// SignalRFP is a private-sector request for proposal or demand listing.
	SignalRFP SignalType = "rfp"
	// SignalTender is a public procurement contract notice.
	SignalTender SignalType = "tender"
	// SignalHiring is a job posting that implies demand for services.
	SignalHiring SignalType = "hiring"
)

// Valid reports whether t is a known signal type.
func (t SignalType) Valid() bool {
	switch t {
	case SignalRFP, SignalTender, SignalHiring:
		return true
	}
	return false
}

// Industry is the fixed industry taxonomy signals are classified into.
type Industry string

const (
	IndustryWebDevelopment Industry = "web_development"
	IndustryEcommerce      Industry = "ecommerce"
	IndustryMarketing      Industry = "marketing"
	IndustryITServices     Industry = "it_services"
	IndustryConstruction   Industry = "construction"
	IndustryManufacturing  Industry = "manufacturing"
	IndustryLogistics      Industry = "logistics"
	IndustryFinance        Industry = "finance"
	IndustryOther          Industry = "other"
)

// Industries lists every taxonomy value in stable order.
func Industries() []Industry {
	return []Industry{
		IndustryWebDevelopment,
		IndustryEcommerce,
		IndustryMarketing,
		IndustryITServices,
		IndustryConstruction,
		IndustryManufacturing,
		IndustryLogistics,
		IndustryFinance,
		IndustryOther,
	}
}

// Valid reports whether i is a known industry.
func (i Industry) Valid() bool {
	for _, known := range Industries() {
		if i == known {
			return true
		}
	}
	return false
}

// Classification is the taxonomy result attached to a signal.
type Classification struct {
	Industry Industry `json:"industry"`
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords,omitempty"`
}
