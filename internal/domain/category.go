package domain

import (
	"fmt"
	"math"
	"strings"
)

// HazardCategory identifies one of the fixed hazard domains scored per parcel.
type HazardCategory string

const (
	Flood         HazardCategory = "flood"
	Hurricane     HazardCategory = "hurricane"
	Earthquake    HazardCategory = "earthquake"
	Sinkhole      HazardCategory = "sinkhole"
	Wildfire      HazardCategory = "wildfire"
	Environmental HazardCategory = "environmental"
	Radon         HazardCategory = "radon"
	Slope         HazardCategory = "slope"
)

// Categories lists every hazard category in enumeration order. Ranking ties and
// all map iteration follow this order.
var Categories = [...]HazardCategory{
	Flood,
	Hurricane,
	Earthquake,
	Sinkhole,
	Wildfire,
	Environmental,
	Radon,
	Slope,
}

// ParseCategory converts a case-insensitive tag into a HazardCategory.
func ParseCategory(s string) (HazardCategory, error) {
	c := HazardCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown hazard category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the eight known categories.
func (c HazardCategory) Valid() bool {
	_, ok := categorySpecs[c]
	return ok
}

// Label returns the human-readable category name used in narratives.
func (c HazardCategory) Label() string {
	if spec, ok := categorySpecs[c]; ok {
		return spec.label
	}
	return string(c)
}

// DefaultScore is the raw score used when no analysis is available.
func (c HazardCategory) DefaultScore() float64 {
	return categorySpecs[c].defaultScore
}

// categorySpec holds the static per-category configuration. Every category in
// Categories must have exactly one entry; TestCategorySpecsComplete enforces it.
type categorySpec struct {
	label          string
	defaultScore   float64
	recommendation string
	mitigations    []mitigationTemplate
	newAnalysis    func() Analysis
}

var categorySpecs = map[HazardCategory]categorySpec{
	Flood: {
		label:          "Flood",
		defaultScore:   35,
		recommendation: "Obtain an elevation certificate and a flood insurance quote before bidding; price NFIP or private flood coverage into holding costs.",
		mitigations:    floodMitigations,
		newAnalysis:    func() Analysis { return &FloodAnalysis{} },
	},
	Hurricane: {
		label:          "Hurricane",
		defaultScore:   35,
		recommendation: "Commission a wind mitigation inspection; roof age, opening protection and roof-to-wall connections drive windstorm premiums.",
		mitigations:    hurricaneMitigations,
		newAnalysis:    func() Analysis { return &HurricaneAnalysis{} },
	},
	Earthquake: {
		label:          "Earthquake",
		defaultScore:   20,
		recommendation: "Have a structural engineer check foundation anchorage and cripple walls; budget for a seismic retrofit on pre-1980 construction.",
		mitigations:    earthquakeMitigations,
		newAnalysis:    func() Analysis { return &EarthquakeAnalysis{} },
	},
	Sinkhole: {
		label:          "Sinkhole",
		defaultScore:   15,
		recommendation: "Order a geological survey or ground-penetrating radar scan and check state sinkhole reports before closing.",
		mitigations:    sinkholeMitigations,
		newAnalysis:    func() Analysis { return &SinkholeAnalysis{} },
	},
	Wildfire: {
		label:          "Wildfire",
		defaultScore:   25,
		recommendation: "Confirm wildfire insurability early and plan defensible-space clearing plus ember-resistant venting.",
		mitigations:    wildfireMitigations,
		newAnalysis:    func() Analysis { return &WildfireAnalysis{} },
	},
	Environmental: {
		label:          "Environmental",
		defaultScore:   20,
		recommendation: "Order a Phase I Environmental Site Assessment; nearby contamination can follow the title and block financing.",
		mitigations:    environmentalMitigations,
		newAnalysis:    func() Analysis { return &EnvironmentalAnalysis{} },
	},
	Radon: {
		label:          "Radon",
		defaultScore:   35,
		recommendation: "Run a short-term radon test after acquisition and budget for a sub-slab depressurization system if results exceed 4 pCi/L.",
		mitigations:    radonMitigations,
		newAnalysis:    func() Analysis { return &RadonAnalysis{} },
	},
	Slope: {
		label:          "Slope",
		defaultScore:   20,
		recommendation: "Get a geotechnical evaluation of slope stability and drainage before planning improvements.",
		mitigations:    slopeMitigations,
		newAnalysis:    func() Analysis { return &SlopeAnalysis{} },
	},
}

// RiskTier is an ordinal severity label shared by category scores and the
// overall assessment.
type RiskTier string

const (
	TierMinimal  RiskTier = "minimal"
	TierLow      RiskTier = "low"
	TierModerate RiskTier = "moderate"
	TierHigh     RiskTier = "high"
	TierVeryHigh RiskTier = "very_high"
)

// Label returns the tier with underscores replaced, e.g. "very high".
func (t RiskTier) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// tierBase maps the shared minimal..very_high ladder to base scores. Unknown
// tiers are reported as absent so callers can fall back to the category default.
func tierBase(t RiskTier) (float64, bool) {
	switch t {
	case TierMinimal:
		return 5, true
	case TierLow:
		return 20, true
	case TierModerate:
		return 40, true
	case TierHigh:
		return 60, true
	case TierVeryHigh:
		return 80, true
	default:
		return 0, false
	}
}

// categoryTier classifies a raw category score.
func categoryTier(score float64) RiskTier {
	switch {
	case score >= 80:
		return TierVeryHigh
	case score >= 60:
		return TierHigh
	case score >= 40:
		return TierModerate
	case score >= 20:
		return TierLow
	default:
		return TierMinimal
	}
}

// OverallTier classifies an overall 0-100 risk score.
func OverallTier(score int) RiskTier {
	switch {
	case score >= 70:
		return TierVeryHigh
	case score >= 50:
		return TierHigh
	case score >= 30:
		return TierModerate
	case score >= 15:
		return TierLow
	default:
		return TierMinimal
	}
}

// DataAvailability describes how much evidence backed a category score.
type DataAvailability string

const (
	AvailabilityFull    DataAvailability = "full"
	AvailabilityPartial DataAvailability = "partial"
	AvailabilityNone    DataAvailability = "none"
)

// confidenceProxy is the per-availability contribution to overall confidence.
func (d DataAvailability) confidenceProxy() float64 {
	switch d {
	case AvailabilityFull:
		return 100
	case AvailabilityPartial:
		return 60
	default:
		return 20
	}
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
