package domain

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// WaterRiskSummary combines flood and hurricane, the two perils that share
// coastal exposure and are priced outside a standard homeowner policy.
type WaterRiskSummary struct {
	Score             int                `json:"score"`
	Tier              RiskTier           `json:"tier"`
	PrimaryThreat     HazardCategory     `json:"primary_threat"`
	FloodScore        float64            `json:"flood_score"`
	HurricaneScore    float64            `json:"hurricane_score"`
	Recommendations   []string           `json:"recommendations"`
	MitigationActions []MitigationAction `json:"mitigation_actions"`
	AnnualInsurance   decimal.Decimal    `json:"annual_insurance"`
}

var waterCategories = []HazardCategory{Flood, Hurricane}

// SummarizeWaterRisk blends the flood and hurricane rows of a ranked breakdown by
// their relative weights. With both weights at zero the two scores are averaged.
func SummarizeWaterRisk(input RiskInput, scores []CategoryScore, est InsuranceEstimate) WaterRiskSummary {
	water := make([]CategoryScore, 0, len(waterCategories))
	for _, c := range waterCategories {
		if i := slices.IndexFunc(scores, func(s CategoryScore) bool { return s.Category == c }); i >= 0 {
			water = append(water, scores[i])
		} else {
			raw := NormalizeScore(c, input.Get(c))
			water = append(water, CategoryScore{Category: c, RawScore: raw, RiskTier: categoryTier(raw)})
		}
	}

	var total, weightSum, plain float64
	for _, s := range water {
		total += s.RawScore * s.Weight
		weightSum += s.Weight
		plain += s.RawScore
	}
	combined := plain / float64(len(water))
	if weightSum > 0 {
		combined = total / weightSum
	}
	score := int(math.Round(clampScore(combined)))

	// Flood wins ties as the earlier category.
	byRaw := slices.Clone(water)
	slices.SortStableFunc(byRaw, func(a, b CategoryScore) int {
		return cmp.Compare(b.RawScore, a.RawScore)
	})

	insurance := decimal.Zero
	for _, p := range []*decimal.Decimal{est.Flood, est.Hurricane} {
		if p != nil {
			insurance = insurance.Add(*p)
		}
	}

	return WaterRiskSummary{
		Score:             score,
		Tier:              categoryTier(float64(score)),
		PrimaryThreat:     byRaw[0].Category,
		FloodScore:        water[0].RawScore,
		HurricaneScore:    water[1].RawScore,
		Recommendations:   recommendations(byRaw),
		MitigationActions: mitigationActions(input, byRaw),
		AnnualInsurance:   insurance,
	}
}
