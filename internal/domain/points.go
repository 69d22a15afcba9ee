package domain

import (
	"fmt"
	"math"
)

// MaxRiskPoints is the size of the risk slice of the 125-point property score.
const MaxRiskPoints = 25

// Band is the qualitative reading of a point total.
type Band string

const (
	BandExcellent  Band = "excellent"
	BandGood       Band = "good"
	BandModerate   Band = "moderate"
	BandConcerning Band = "concerning"
	BandPoor       Band = "poor"
)

// RiskCategoryScoring projects an assessment onto the 0-25 point scale, where
// more points mean less risk.
type RiskCategoryScoring struct {
	Points      float64                    `json:"points"`
	MaxPoints   int                        `json:"max_points"`
	Grade       string                     `json:"grade"`
	Band        Band                       `json:"band"`
	SubScores   map[HazardCategory]float64 `json:"sub_scores"`
	Explanation string                     `json:"explanation"`
	KeyFactors  []string                   `json:"key_factors"`
}

// ToPointScore converts a completed assessment. Sub-scores use each category's
// own weight and raw score, so their sum tracks Points only approximately when
// some categories fall back to defaults; the two are not reconciled.
func ToPointScore(a RiskAssessment) RiskCategoryScoring {
	points := pointsFor(a.OverallRiskScore)
	pct := points / MaxRiskPoints * 100

	sub := make(map[HazardCategory]float64, len(a.CategoryScores))
	for _, s := range a.CategoryScores {
		sub[s.Category] = roundTo(MaxRiskPoints*s.Weight*(1-s.RawScore/100), 1)
	}

	band := bandFor(pct)
	explanation := fmt.Sprintf("Risk profile is %s (%.1f/%d).", band, points, MaxRiskPoints)
	if len(a.CategoryScores) > 0 {
		top := a.CategoryScores[0]
		explanation = fmt.Sprintf("Risk profile is %s (%.1f/%d); the largest contributor is %s at %.0f/100.",
			band, points, MaxRiskPoints, top.Category.Label(), top.RawScore)
	}

	keyFactors := make([]string, 0, 3)
	keyFactors = append(keyFactors, a.TopRiskFactors[:min(2, len(a.TopRiskFactors))]...)
	keyFactors = append(keyFactors, a.PositiveFactors[:min(1, len(a.PositiveFactors))]...)

	return RiskCategoryScoring{
		Points:      points,
		MaxPoints:   MaxRiskPoints,
		Grade:       gradeFor(pct),
		Band:        band,
		SubScores:   sub,
		Explanation: explanation,
		KeyFactors:  keyFactors,
	}
}

// pointsFor is strictly decreasing in overall. Each risk point costs exactly 0.25
// and quarter values round half away from zero, so distinct scores never
// collapse onto the same point total.
func pointsFor(overall int) float64 {
	p := float64(100-overall) * MaxRiskPoints / 100
	return math.Max(0, math.Min(MaxRiskPoints, roundTo(p, 1)))
}

func bandFor(pct float64) Band {
	switch {
	case pct >= 90:
		return BandExcellent
	case pct >= 75:
		return BandGood
	case pct >= 50:
		return BandModerate
	case pct >= 25:
		return BandConcerning
	default:
		return BandPoor
	}
}

func gradeFor(pct float64) string {
	switch {
	case pct >= 80:
		return "A"
	case pct >= 60:
		return "B"
	case pct >= 40:
		return "C"
	case pct >= 20:
		return "D"
	default:
		return "F"
	}
}
