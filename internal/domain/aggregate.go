package domain

import (
	"cmp"
	"math"
	"slices"
)

// CategoryScore is one category's contribution to an assessment.
type CategoryScore struct {
	Category         HazardCategory   `json:"category"`
	RawScore         float64          `json:"raw_score"`
	Weight           float64          `json:"weight"`
	WeightedScore    float64          `json:"weighted_score"`
	RiskTier         RiskTier         `json:"risk_tier"`
	DataAvailability DataAvailability `json:"data_availability"`
}

// Aggregation is the numeric part of an assessment.
type Aggregation struct {
	OverallScore   int             `json:"overall_score"`
	CategoryScores []CategoryScore `json:"category_scores"`
	Confidence     int             `json:"confidence"`
}

// NormalizeScore returns the raw 0-100 score for one category. A nil analysis
// yields the category default.
func NormalizeScore(c HazardCategory, a Analysis) float64 {
	if a == nil {
		return c.DefaultScore()
	}
	return clampScore(a.Score())
}

// Aggregate scores every category, weights it, and ranks the results by weighted
// score descending. Equal weighted scores keep enumeration order.
func Aggregate(input RiskInput, weights RiskWeights) Aggregation {
	scores := make([]CategoryScore, 0, len(Categories))
	var total, weightSum, proxySum, proxyPlain float64

	for _, c := range Categories {
		a := input.Get(c)
		raw := NormalizeScore(c, a)
		w := weights[c]
		avail := availabilityOf(a)

		scores = append(scores, CategoryScore{
			Category:         c,
			RawScore:         raw,
			Weight:           w,
			WeightedScore:    raw * w,
			RiskTier:         categoryTier(raw),
			DataAvailability: avail,
		})
		total += raw * w
		weightSum += w
		proxySum += w * avail.confidenceProxy()
		proxyPlain += avail.confidenceProxy()
	}

	slices.SortStableFunc(scores, func(a, b CategoryScore) int {
		return cmp.Compare(b.WeightedScore, a.WeightedScore)
	})

	confidence := proxyPlain / float64(len(Categories))
	if weightSum > 0 {
		confidence = proxySum / weightSum
	}

	return Aggregation{
		OverallScore:   int(math.Round(clampScore(total))),
		CategoryScores: scores,
		Confidence:     int(math.Round(confidence)),
	}
}

// availabilityOf grades the evidence behind an analysis. A present analysis that
// does not report a confidence is treated as partial.
func availabilityOf(a Analysis) DataAvailability {
	if a == nil {
		return AvailabilityNone
	}
	conf, ok := a.ReportedConfidence()
	switch {
	case !ok:
		return AvailabilityPartial
	case conf >= 80:
		return AvailabilityFull
	case conf >= 50:
		return AvailabilityPartial
	default:
		return AvailabilityNone
	}
}
