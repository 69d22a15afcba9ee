package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Analysis is the normalized finding for a single hazard category, produced by
// an upstream lookup. Implementations never fail: an unknown tier falls back to
// the category default and malformed secondary signals contribute nothing.
type Analysis interface {
	Category() HazardCategory
	// Score returns the raw 0-100 risk score: tier base plus bounded adjustments.
	Score() float64
	// ReportedConfidence returns the upstream's own 0-100 confidence, if any.
	ReportedConfidence() (float64, bool)
	// Advisories returns regulatory or inspection flags worth surfacing as warnings.
	Advisories() []string
	// Suggestions returns free-text mitigation ideas supplied by the upstream.
	Suggestions() []string
}

// AnalysisMeta carries the fields every upstream analysis may report.
type AnalysisMeta struct {
	Confidence  *float64 `json:"confidence,omitempty"`
	Source      string   `json:"source,omitempty"`
	Mitigations []string `json:"mitigations,omitempty"`
}

// ReportedConfidence returns the self-reported confidence when present.
func (m AnalysisMeta) ReportedConfidence() (float64, bool) {
	if m.Confidence == nil || math.IsNaN(*m.Confidence) {
		return 0, false
	}
	return *m.Confidence, true
}

// Suggestions returns the upstream mitigation text verbatim.
func (m AnalysisMeta) Suggestions() []string {
	return m.Mitigations
}

// DecodeAnalysis unmarshals a category-specific JSON payload.
func DecodeAnalysis(c HazardCategory, data []byte) (Analysis, error) {
	spec, ok := categorySpecs[c]
	if !ok {
		return nil, fmt.Errorf("decode analysis: unknown category %q", c)
	}
	a := spec.newAnalysis()
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("decode %s analysis: %w", c, err)
	}
	return a, nil
}

// --- flood ---

// FloodAnalysis is derived from the FEMA National Flood Hazard Layer.
type FloodAnalysis struct {
	Zone              string `json:"zone"` // FEMA zone: VE, V, AE, A, AH, AO, AR, A99, D, X500, B, X, C
	InFloodway        bool   `json:"in_floodway"`
	PriorClaims       int    `json:"prior_claims"`
	InsuranceRequired bool   `json:"insurance_required"`
	AnalysisMeta
}

func (a *FloodAnalysis) Category() HazardCategory { return Flood }

func (a *FloodAnalysis) Score() float64 {
	base, ok := floodZoneBase(a.Zone)
	if !ok {
		base = Flood.DefaultScore()
	}
	adj := countAdjustment(a.PriorClaims, 2, 10)
	if a.InFloodway {
		adj += 10
	}
	return clampScore(base + adj)
}

func (a *FloodAnalysis) Advisories() []string {
	var out []string
	if a.InsuranceRequired {
		out = append(out, fmt.Sprintf("Flood insurance is mandatory for federally backed mortgages in FEMA zone %s", strings.ToUpper(a.Zone)))
	}
	if a.InFloodway {
		out = append(out, "Parcel lies in a regulatory floodway; new construction and substantial improvements are restricted")
	}
	return out
}

func floodZoneBase(zone string) (float64, bool) {
	switch strings.ToUpper(strings.TrimSpace(zone)) {
	case "V", "VE":
		return 80, true
	case "A", "AE", "AH", "AO", "AR":
		return 60, true
	case "A99":
		return 50, true
	case "D":
		return 35, true
	case "X500", "B", "SHADED X":
		return 25, true
	case "X", "C":
		return 5, true
	default:
		return 0, false
	}
}

// --- hurricane ---

// WindZone is the design wind-speed zone, zone_4 being the most exposed.
type WindZone string

const (
	WindZoneNone WindZone = "none"
	WindZone1    WindZone = "zone_1"
	WindZone2    WindZone = "zone_2"
	WindZone3    WindZone = "zone_3"
	WindZone4    WindZone = "zone_4"
)

// HurricaneAnalysis is derived from NOAA historical storm tracks and wind zones.
type HurricaneAnalysis struct {
	WindZone             WindZone `json:"wind_zone"`
	HistoricalStorms     int      `json:"historical_storms"` // hurricanes within 50 miles since 1950
	DistanceToCoastMiles *float64 `json:"distance_to_coast_miles,omitempty"`
	InStormSurgeZone     bool     `json:"in_storm_surge_zone"`
	AnalysisMeta
}

func (a *HurricaneAnalysis) Category() HazardCategory { return Hurricane }

func (a *HurricaneAnalysis) Score() float64 {
	var base float64
	switch WindZone(normalizeLabel(string(a.WindZone))) {
	case WindZoneNone:
		base = 5
	case WindZone1:
		base = 20
	case WindZone2:
		base = 40
	case WindZone3:
		base = 60
	case WindZone4:
		base = 80
	default:
		base = Hurricane.DefaultScore()
	}
	adj := countAdjustment(a.HistoricalStorms, 1, 8)
	adj += distanceAdjustment(a.DistanceToCoastMiles, []distanceBand{{1, 8}, {5, 5}, {25, 2}})
	if a.InStormSurgeZone {
		adj += 4
	}
	return clampScore(base + adj)
}

func (a *HurricaneAnalysis) Advisories() []string {
	if a.InStormSurgeZone {
		return []string{"Parcel is inside a storm-surge evacuation zone"}
	}
	return nil
}

// --- earthquake ---

// EarthquakeAnalysis is derived from the USGS seismic hazard model.
type EarthquakeAnalysis struct {
	HazardLevel            RiskTier `json:"hazard_level"`
	SeismicZone            string   `json:"seismic_zone,omitempty"` // california, pacific_northwest, new_madrid, intermountain, stable
	PeakGroundAcceleration float64  `json:"pga_g"`                  // 2% in 50 years
	FaultDistanceMiles     *float64 `json:"fault_distance_miles,omitempty"`
	SignificantQuakes      int      `json:"significant_quakes"` // M5+ within 50 miles
	RetrofitRecommended    bool     `json:"retrofit_recommended"`
	AnalysisMeta
}

func (a *EarthquakeAnalysis) Category() HazardCategory { return Earthquake }

func (a *EarthquakeAnalysis) Score() float64 {
	base := ladderBase(a.HazardLevel, Earthquake)
	var adj float64
	if a.PeakGroundAcceleration > 0 {
		adj += math.Min(a.PeakGroundAcceleration*16, 8)
	}
	adj += distanceAdjustment(a.FaultDistanceMiles, []distanceBand{{5, 6}, {25, 3}})
	adj += countAdjustment(a.SignificantQuakes, 2, 6)
	return clampScore(base + adj)
}

func (a *EarthquakeAnalysis) Advisories() []string {
	if a.RetrofitRecommended {
		return []string{"Seismic retrofit recommended for this construction type"}
	}
	return nil
}

// --- sinkhole ---

// SinkholeAnalysis is derived from state karst and sinkhole inventories.
type SinkholeAnalysis struct {
	KarstRisk             RiskTier `json:"karst_risk"`
	InKarstRegion         bool     `json:"in_karst_region"`
	SinkholesWithinMile   int      `json:"sinkholes_within_mile"`
	NearestSinkholeMiles  *float64 `json:"nearest_sinkhole_miles,omitempty"`
	AssessmentRecommended bool     `json:"assessment_recommended"`
	AnalysisMeta
}

func (a *SinkholeAnalysis) Category() HazardCategory { return Sinkhole }

func (a *SinkholeAnalysis) Score() float64 {
	base := ladderBase(a.KarstRisk, Sinkhole)
	adj := countAdjustment(a.SinkholesWithinMile, 2, 8)
	adj += distanceAdjustment(a.NearestSinkholeMiles, []distanceBand{{0.25, 8}, {1, 4}})
	if a.InKarstRegion {
		adj += 4
	}
	return clampScore(base + adj)
}

func (a *SinkholeAnalysis) Advisories() []string {
	if a.AssessmentRecommended {
		return []string{"Geological sinkhole assessment recommended before purchase"}
	}
	return nil
}

// --- wildfire ---

// WildfireAnalysis is derived from NASA FIRMS detections and WUI mapping.
type WildfireAnalysis struct {
	RiskLevel               RiskTier `json:"risk_level"`
	InWUI                   bool     `json:"in_wui"`          // wildland-urban interface
	FireDetections          int      `json:"fire_detections"` // within 10 miles, past year
	NearestFireMiles        *float64 `json:"nearest_fire_miles,omitempty"`
	DefensibleSpaceRequired bool     `json:"defensible_space_required"`
	AnalysisMeta
}

func (a *WildfireAnalysis) Category() HazardCategory { return Wildfire }

func (a *WildfireAnalysis) Score() float64 {
	base := ladderBase(a.RiskLevel, Wildfire)
	adj := countAdjustment(a.FireDetections, 2, 6)
	adj += distanceAdjustment(a.NearestFireMiles, []distanceBand{{1, 6}, {5, 3}})
	if a.InWUI {
		adj += 8
	}
	return clampScore(base + adj)
}

func (a *WildfireAnalysis) Advisories() []string {
	var out []string
	if a.InWUI {
		out = append(out, "Parcel is in the wildland-urban interface")
	}
	if a.DefensibleSpaceRequired {
		out = append(out, "Local code requires defensible space clearance around structures")
	}
	return out
}

// --- environmental ---

// EnvironmentalAnalysis is derived from EPA Envirofacts site registries.
type EnvironmentalAnalysis struct {
	RiskLevel              RiskTier `json:"risk_level"`
	SuperfundSites         int      `json:"superfund_sites"`
	BrownfieldSites        int      `json:"brownfield_sites"`
	StorageTankSites       int      `json:"storage_tank_sites"`       // leaking underground storage tanks
	ToxicReleaseFacilities int      `json:"toxic_release_facilities"` // TRI reporters
	NearestSiteMiles       *float64 `json:"nearest_site_miles,omitempty"`
	PhaseIRecommended      bool     `json:"phase_i_recommended"`
	AnalysisMeta
}

func (a *EnvironmentalAnalysis) Category() HazardCategory { return Environmental }

func (a *EnvironmentalAnalysis) Score() float64 {
	base := ladderBase(a.RiskLevel, Environmental)
	adj := countAdjustment(a.SuperfundSites, 5, 10)
	adj += countAdjustment(a.BrownfieldSites, 2, 4)
	adj += countAdjustment(a.StorageTankSites, 1, 2)
	adj += countAdjustment(a.ToxicReleaseFacilities, 1, 2)
	adj += distanceAdjustment(a.NearestSiteMiles, []distanceBand{{0.25, 2}, {1, 1}})
	return clampScore(base + adj)
}

func (a *EnvironmentalAnalysis) Advisories() []string {
	var out []string
	if a.SuperfundSites > 0 {
		out = append(out, fmt.Sprintf("%d Superfund site(s) within one mile", a.SuperfundSites))
	}
	if a.PhaseIRecommended {
		out = append(out, "Phase I Environmental Site Assessment recommended")
	}
	return out
}

// --- radon ---

// RadonAnalysis is derived from EPA radon zone maps and state test data.
type RadonAnalysis struct {
	EPAZone            int      `json:"epa_zone"` // 1 high, 2 moderate, 3 low
	AverageIndoorPCiL  *float64 `json:"average_indoor_pci_l,omitempty"`
	TestingRecommended bool     `json:"testing_recommended"`
	AnalysisMeta
}

func (a *RadonAnalysis) Category() HazardCategory { return Radon }

func (a *RadonAnalysis) Score() float64 {
	var base float64
	switch a.EPAZone {
	case 1:
		base = 60
	case 2:
		base = 35
	case 3:
		base = 15
	default:
		base = Radon.DefaultScore()
	}
	var adj float64
	if a.AverageIndoorPCiL != nil {
		switch level := *a.AverageIndoorPCiL; {
		case level >= 4:
			adj = 20
		case level >= 2:
			adj = 10
		}
	}
	return clampScore(base + adj)
}

func (a *RadonAnalysis) Advisories() []string {
	if a.TestingRecommended {
		return []string{"Radon testing recommended; EPA action level is 4 pCi/L"}
	}
	return nil
}

// --- slope ---

// SlopeAnalysis is derived from elevation models and landslide inventories.
type SlopeAnalysis struct {
	Susceptibility          RiskTier `json:"susceptibility"`
	SlopePercent            float64  `json:"slope_percent"`
	HistoricalLandslides    int      `json:"historical_landslides"`
	ExpansiveSoil           bool     `json:"expansive_soil"`
	GeotechnicalRecommended bool     `json:"geotechnical_recommended"`
	AnalysisMeta
}

func (a *SlopeAnalysis) Category() HazardCategory { return Slope }

func (a *SlopeAnalysis) Score() float64 {
	base := ladderBase(a.Susceptibility, Slope)
	var adj float64
	switch {
	case a.SlopePercent >= 30:
		adj += 8
	case a.SlopePercent >= 15:
		adj += 4
	case a.SlopePercent >= 8:
		adj += 2
	}
	adj += countAdjustment(a.HistoricalLandslides, 2, 6)
	if a.ExpansiveSoil {
		adj += 6
	}
	return clampScore(base + adj)
}

func (a *SlopeAnalysis) Advisories() []string {
	if a.GeotechnicalRecommended {
		return []string{"Geotechnical slope stability survey recommended"}
	}
	return nil
}

// --- helpers ---

// ladderBase resolves a shared-ladder tier, falling back to the category default.
func ladderBase(t RiskTier, c HazardCategory) float64 {
	if base, ok := tierBase(RiskTier(normalizeLabel(string(t)))); ok {
		return base
	}
	return c.DefaultScore()
}

// normalizeLabel lower-cases an enumeration value and maps spaces and hyphens to
// underscores, so "Very High" and "very-high" both read as "very_high". The
// ladder's out-of-vocabulary ends fold onto minimal and very_high.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "very_low":
		return string(TierMinimal)
	case "extreme", "severe":
		return string(TierVeryHigh)
	}
	return s
}

// countAdjustment adds per points for each event, capped at limit.
func countAdjustment(n int, per, limit float64) float64 {
	if n <= 0 {
		return 0
	}
	return math.Min(float64(n)*per, limit)
}

type distanceBand struct {
	within float64 // miles, exclusive
	points float64
}

// distanceAdjustment returns the points of the first band the distance falls
// inside. Bands must be ordered by ascending distance.
func distanceAdjustment(miles *float64, bands []distanceBand) float64 {
	if miles == nil || !(*miles >= 0) {
		return 0
	}
	for _, b := range bands {
		if *miles < b.within {
			return b.points
		}
	}
	return 0
}
