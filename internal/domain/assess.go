package domain

import "time"

// RiskAssessment is the complete result for one parcel.
type RiskAssessment struct {
	Jurisdiction      string             `json:"jurisdiction"`
	Region            string             `json:"region"`
	OverallRiskTier   RiskTier           `json:"overall_risk_tier"`
	OverallRiskScore  int                `json:"overall_risk_score"`
	Confidence        int                `json:"confidence"`
	Input             RiskInput          `json:"analyses"`
	CategoryScores    []CategoryScore    `json:"category_scores"`
	Weights           RiskWeights        `json:"weights"`
	WeightAdjustments []WeightAdjustment `json:"weight_adjustments,omitempty"`
	Insurance         InsuranceEstimate  `json:"insurance_estimate"`
	WaterRisk         WaterRiskSummary   `json:"water_risk"`
	Recommendations   []string           `json:"recommendations"`
	MitigationActions []MitigationAction `json:"mitigation_actions"`
	Warnings          []string           `json:"warnings"`
	TopRiskFactors    []string           `json:"top_risk_factors"`
	PositiveFactors   []string           `json:"positive_factors"`
	AssessedAt        time.Time          `json:"assessed_at"`
}

// Assessor runs assessments against a fixed region catalog.
type Assessor struct {
	catalog *Catalog
}

// NewAssessor binds an assessor to catalog. A nil catalog selects the embedded one.
func NewAssessor(catalog *Catalog) *Assessor {
	if catalog == nil {
		catalog = defaultCatalog
	}
	return &Assessor{catalog: catalog}
}

// Catalog returns the region catalog in use.
func (a *Assessor) Catalog() *Catalog {
	return a.catalog
}

// Assess aggregates input under the jurisdiction's regional weights. Override
// entries and location boosts are applied before normalization. It never fails:
// missing analyses fall back to defaults and lower the confidence.
func (a *Assessor) Assess(input RiskInput, jurisdiction string, override RiskWeights) RiskAssessment {
	adapted, adjustments := AdaptWeights(a.catalog.RegionWeights(jurisdiction).WithOverride(override), override, input)
	weights := adapted.Normalize()
	agg := Aggregate(input, weights)
	n := BuildNarrative(input, agg.CategoryScores, agg.Confidence)
	insurance := EstimateInsurance(agg.CategoryScores)

	return RiskAssessment{
		Jurisdiction:      jurisdiction,
		Region:            a.catalog.RegionOf(jurisdiction),
		OverallRiskTier:   OverallTier(agg.OverallScore),
		OverallRiskScore:  agg.OverallScore,
		Confidence:        agg.Confidence,
		Input:             input,
		CategoryScores:    agg.CategoryScores,
		Weights:           weights,
		WeightAdjustments: adjustments,
		Insurance:         insurance,
		WaterRisk:         SummarizeWaterRisk(input, agg.CategoryScores, insurance),
		Recommendations:   n.Recommendations,
		MitigationActions: n.MitigationActions,
		Warnings:          n.Warnings,
		TopRiskFactors:    n.TopRiskFactors,
		PositiveFactors:   n.PositiveFactors,
		AssessedAt:        clock.Now().UTC(),
	}
}

// AggregateRisk assesses input against the embedded region catalog.
func AggregateRisk(input RiskInput, jurisdiction string, override RiskWeights) RiskAssessment {
	return NewAssessor(nil).Assess(input, jurisdiction, override)
}

// ResolveWeights returns the normalized weights for a jurisdiction from the
// embedded catalog.
func ResolveWeights(jurisdiction string, override RiskWeights) RiskWeights {
	return defaultCatalog.ResolveWeights(jurisdiction, override)
}

// RegionOf names the embedded-catalog region for a jurisdiction.
func RegionOf(jurisdiction string) string {
	return defaultCatalog.RegionOf(jurisdiction)
}
