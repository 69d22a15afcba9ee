package domain

import (
	"io"
	"log/slog"
	"math"
)

func ptr[T any](v T) *T { return &v }

func nan() float64 { return math.NaN() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// severeInput returns every category at its most severe tier with every
// secondary signal at or past its cap.
func severeInput() RiskInput {
	return RiskInput{
		Flood: &FloodAnalysis{Zone: "VE", InFloodway: true, PriorClaims: 9, InsuranceRequired: true},
		Hurricane: &HurricaneAnalysis{
			WindZone: WindZone4, HistoricalStorms: 14, DistanceToCoastMiles: ptr(0.4), InStormSurgeZone: true,
		},
		Earthquake: &EarthquakeAnalysis{
			HazardLevel: TierVeryHigh, PeakGroundAcceleration: 0.9, FaultDistanceMiles: ptr(1.0), SignificantQuakes: 6,
			RetrofitRecommended: true,
		},
		Sinkhole: &SinkholeAnalysis{
			KarstRisk: TierVeryHigh, InKarstRegion: true, SinkholesWithinMile: 7, NearestSinkholeMiles: ptr(0.1),
			AssessmentRecommended: true,
		},
		Wildfire: &WildfireAnalysis{
			RiskLevel: TierVeryHigh, InWUI: true, FireDetections: 5, NearestFireMiles: ptr(0.3), DefensibleSpaceRequired: true,
		},
		Environmental: &EnvironmentalAnalysis{
			RiskLevel: TierVeryHigh, SuperfundSites: 3, BrownfieldSites: 4, StorageTankSites: 5, ToxicReleaseFacilities: 3,
			NearestSiteMiles: ptr(0.1), PhaseIRecommended: true,
		},
		Radon: &RadonAnalysis{EPAZone: 1, AverageIndoorPCiL: ptr(9.5), TestingRecommended: true},
		Slope: &SlopeAnalysis{
			Susceptibility: TierVeryHigh, SlopePercent: 42, HistoricalLandslides: 5, ExpansiveSoil: true,
			GeotechnicalRecommended: true,
		},
	}
}

// benignInput returns every category at its lowest tier with full confidence.
func benignInput() RiskInput {
	conf := AnalysisMeta{Confidence: ptr(95.0)}
	return RiskInput{
		Flood:         &FloodAnalysis{Zone: "X", AnalysisMeta: conf},
		Hurricane:     &HurricaneAnalysis{WindZone: WindZoneNone, AnalysisMeta: conf},
		Earthquake:    &EarthquakeAnalysis{HazardLevel: TierMinimal, AnalysisMeta: conf},
		Sinkhole:      &SinkholeAnalysis{KarstRisk: TierMinimal, AnalysisMeta: conf},
		Wildfire:      &WildfireAnalysis{RiskLevel: TierMinimal, AnalysisMeta: conf},
		Environmental: &EnvironmentalAnalysis{RiskLevel: TierMinimal, AnalysisMeta: conf},
		Radon:         &RadonAnalysis{EPAZone: 3, AnalysisMeta: conf},
		Slope:         &SlopeAnalysis{Susceptibility: TierMinimal, AnalysisMeta: conf},
	}
}
