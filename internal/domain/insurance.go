package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsuranceEstimate holds annual premium estimates in US dollars for the perils
// that are insured separately from a standard homeowner policy. A nil premium
// means the peril's risk is too low for dedicated coverage to be expected.
type InsuranceEstimate struct {
	Flood      *decimal.Decimal `json:"flood,omitempty"`
	Hurricane  *decimal.Decimal `json:"hurricane,omitempty"`
	Earthquake *decimal.Decimal `json:"earthquake,omitempty"`
	Wildfire   *decimal.Decimal `json:"wildfire,omitempty"`
	Total      decimal.Decimal  `json:"total"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// premiumBand is a linear premium rule: base + (score - from) * perPoint for
// scores at or above from.
type premiumBand struct {
	from     int64
	base     int64
	perPoint int64
}

// premiumRules lists bands in descending order of from; the first matching band
// applies. Perils without an entry carry no premium.
var premiumRules = map[HazardCategory][]premiumBand{
	Flood:      {{from: 50, base: 1200, perPoint: 80}, {from: 20, base: 450, perPoint: 15}},
	Hurricane:  {{from: 60, base: 2000, perPoint: 100}, {from: 30, base: 800, perPoint: 25}},
	Earthquake: {{from: 30, base: 400, perPoint: 30}},
	Wildfire:   {{from: 40, base: 300, perPoint: 40}},
}

func premium(c HazardCategory, raw float64) *decimal.Decimal {
	score := decimal.NewFromFloat(raw)
	for _, b := range premiumRules[c] {
		from := decimal.NewFromInt(b.from)
		if score.LessThan(from) {
			continue
		}
		p := decimal.NewFromInt(b.base).
			Add(score.Sub(from).Mul(decimal.NewFromInt(b.perPoint))).
			Round(2)
		return &p
	}
	return nil
}

// EstimateInsurance prices each insurable peril from its raw score.
func EstimateInsurance(scores []CategoryScore) InsuranceEstimate {
	est := InsuranceEstimate{Total: decimal.Zero}
	for _, s := range scores {
		if _, insurable := premiumRules[s.Category]; !insurable {
			continue
		}
		p := premium(s.Category, s.RawScore)
		switch s.Category {
		case Flood:
			est.Flood = p
		case Hurricane:
			est.Hurricane = p
		case Earthquake:
			est.Earthquake = p
		case Wildfire:
			est.Wildfire = p
		}
		if p != nil {
			est.Total = est.Total.Add(*p)
		}
		if s.RawScore >= veryHighThreshold {
			est.Warnings = append(est.Warnings, fmt.Sprintf(
				"%s: standard carriers may decline coverage at this risk level; expect surplus-lines or state pool placement",
				s.Category.Label()))
		}
	}
	return est
}
