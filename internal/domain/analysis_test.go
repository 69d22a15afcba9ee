package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScore_NilUsesDefault(t *testing.T) {
	want := map[HazardCategory]float64{
		Flood:         35,
		Hurricane:     35,
		Earthquake:    20,
		Sinkhole:      15,
		Wildfire:      25,
		Environmental: 20,
		Radon:         35,
		Slope:         20,
	}
	for _, c := range Categories {
		assert.Equal(t, want[c], NormalizeScore(c, nil), string(c))
	}
}

func TestNormalizeScore_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a    Analysis
		want float64
	}{
		{"flood AE", &FloodAnalysis{Zone: "AE"}, 60},
		{"flood AE floodway and claims", &FloodAnalysis{Zone: "AE", InFloodway: true, PriorClaims: 2}, 74},
		{"flood lower-case x", &FloodAnalysis{Zone: "x"}, 5},
		{"flood shaded X", &FloodAnalysis{Zone: "Shaded X"}, 25},
		{"flood unknown zone", &FloodAnalysis{Zone: "ZZ"}, 35},
		{"flood negative claims", &FloodAnalysis{Zone: "A99", PriorClaims: -3}, 50},
		{"hurricane zone 3", &HurricaneAnalysis{WindZone: WindZone3, HistoricalStorms: 3, DistanceToCoastMiles: ptr(3.0)}, 68},
		{"hurricane unknown zone", &HurricaneAnalysis{WindZone: "cat5"}, 35},
		{"hurricane NaN distance", &HurricaneAnalysis{WindZone: WindZone1, DistanceToCoastMiles: ptr(nan())}, 20},
		{"earthquake high", &EarthquakeAnalysis{HazardLevel: TierHigh, PeakGroundAcceleration: 0.25, FaultDistanceMiles: ptr(10.0)}, 67},
		{"earthquake very-low alias", &EarthquakeAnalysis{HazardLevel: "very-low"}, 5},
		{"sinkhole moderate near", &SinkholeAnalysis{KarstRisk: TierModerate, NearestSinkholeMiles: ptr(0.5)}, 44},
		{"sinkhole negative distance", &SinkholeAnalysis{KarstRisk: TierLow, NearestSinkholeMiles: ptr(-1.0)}, 20},
		{"wildfire capitalized tier", &WildfireAnalysis{RiskLevel: "High", InWUI: true}, 68},
		{"environmental low", &EnvironmentalAnalysis{
			RiskLevel: TierLow, BrownfieldSites: 1, StorageTankSites: 1, NearestSiteMiles: ptr(0.8),
		}, 24},
		{"radon zone 2 elevated", &RadonAnalysis{EPAZone: 2, AverageIndoorPCiL: ptr(2.5)}, 45},
		{"radon zone 1 untested", &RadonAnalysis{EPAZone: 1}, 60},
		{"radon unknown zone", &RadonAnalysis{}, 35},
		{"slope spaced tier", &SlopeAnalysis{Susceptibility: "very high", SlopePercent: 20}, 84},
		{"wildfire extreme", &WildfireAnalysis{RiskLevel: "extreme"}, 80},
		{"earthquake severe", &EarthquakeAnalysis{HazardLevel: "Severe"}, 80},
		{"sinkhole upper-case extreme", &SinkholeAnalysis{KarstRisk: "EXTREME"}, 80},
		{"environmental extreme", &EnvironmentalAnalysis{RiskLevel: "extreme"}, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeScore(tt.a.Category(), tt.a), 1e-9)
		})
	}
}

// Each category's adjustments are capped so the most severe input lands exactly
// on its ceiling rather than being clamped from above.
func TestNormalizeScore_SevereCeilings(t *testing.T) {
	in := severeInput()
	for _, c := range Categories {
		want := 100.0
		if c == Radon {
			want = 80
		}
		assert.Equal(t, want, in.Get(c).Score(), string(c))
	}
}

func TestNormalizeScore_Bounds(t *testing.T) {
	inputs := []RiskInput{{}, severeInput(), benignInput()}
	odd := RiskInput{
		Flood:         &FloodAnalysis{Zone: "", PriorClaims: -100},
		Hurricane:     &HurricaneAnalysis{HistoricalStorms: 1 << 30, DistanceToCoastMiles: ptr(-5.0)},
		Earthquake:    &EarthquakeAnalysis{PeakGroundAcceleration: nan(), SignificantQuakes: -2},
		Sinkhole:      &SinkholeAnalysis{KarstRisk: "bogus"},
		Wildfire:      &WildfireAnalysis{NearestFireMiles: ptr(nan())},
		Environmental: &EnvironmentalAnalysis{SuperfundSites: 1000},
		Radon:         &RadonAnalysis{EPAZone: -7, AverageIndoorPCiL: ptr(-1.0)},
		Slope:         &SlopeAnalysis{SlopePercent: -40},
	}
	inputs = append(inputs, odd)

	for _, in := range inputs {
		for _, c := range Categories {
			s := NormalizeScore(c, in.Get(c))
			assert.GreaterOrEqual(t, s, 0.0, string(c))
			assert.LessOrEqual(t, s, 100.0, string(c))
		}
	}
}

// Raising one severity signal with everything else fixed never lowers the
// category score, nor the overall score.
func TestNormalizeScore_Monotonic(t *testing.T) {
	ladder := []RiskTier{TierMinimal, TierLow, TierModerate, TierHigh, TierVeryHigh}

	sequences := map[string][]Analysis{
		"flood zone": {
			&FloodAnalysis{Zone: "X"}, &FloodAnalysis{Zone: "X500"}, &FloodAnalysis{Zone: "D"},
			&FloodAnalysis{Zone: "A99"}, &FloodAnalysis{Zone: "AE"}, &FloodAnalysis{Zone: "VE"},
		},
		"flood claims": {
			&FloodAnalysis{Zone: "AE"}, &FloodAnalysis{Zone: "AE", PriorClaims: 1},
			&FloodAnalysis{Zone: "AE", PriorClaims: 5}, &FloodAnalysis{Zone: "AE", PriorClaims: 50},
		},
		"hurricane coast": {
			&HurricaneAnalysis{WindZone: WindZone2, DistanceToCoastMiles: ptr(60.0)},
			&HurricaneAnalysis{WindZone: WindZone2, DistanceToCoastMiles: ptr(20.0)},
			&HurricaneAnalysis{WindZone: WindZone2, DistanceToCoastMiles: ptr(4.0)},
			&HurricaneAnalysis{WindZone: WindZone2, DistanceToCoastMiles: ptr(0.2)},
		},
		"earthquake pga": {
			&EarthquakeAnalysis{HazardLevel: TierModerate, PeakGroundAcceleration: 0.05},
			&EarthquakeAnalysis{HazardLevel: TierModerate, PeakGroundAcceleration: 0.2},
			&EarthquakeAnalysis{HazardLevel: TierModerate, PeakGroundAcceleration: 0.6},
			&EarthquakeAnalysis{HazardLevel: TierModerate, PeakGroundAcceleration: 1.2},
		},
		"sinkhole count": {
			&SinkholeAnalysis{KarstRisk: TierLow}, &SinkholeAnalysis{KarstRisk: TierLow, SinkholesWithinMile: 2},
			&SinkholeAnalysis{KarstRisk: TierLow, SinkholesWithinMile: 9},
		},
		"wildfire detections": {
			&WildfireAnalysis{RiskLevel: TierHigh}, &WildfireAnalysis{RiskLevel: TierHigh, FireDetections: 1},
			&WildfireAnalysis{RiskLevel: TierHigh, FireDetections: 20},
		},
		"environmental superfund": {
			&EnvironmentalAnalysis{RiskLevel: TierModerate}, &EnvironmentalAnalysis{RiskLevel: TierModerate, SuperfundSites: 1},
			&EnvironmentalAnalysis{RiskLevel: TierModerate, SuperfundSites: 4},
		},
		"radon level": {
			&RadonAnalysis{EPAZone: 2, AverageIndoorPCiL: ptr(0.5)}, &RadonAnalysis{EPAZone: 2, AverageIndoorPCiL: ptr(2.0)},
			&RadonAnalysis{EPAZone: 2, AverageIndoorPCiL: ptr(4.0)}, &RadonAnalysis{EPAZone: 2, AverageIndoorPCiL: ptr(12.0)},
		},
		"radon zone": {
			&RadonAnalysis{EPAZone: 3}, &RadonAnalysis{EPAZone: 2}, &RadonAnalysis{EPAZone: 1},
		},
		"flood floodway": {
			&FloodAnalysis{Zone: "AE"}, &FloodAnalysis{Zone: "AE", InFloodway: true},
		},
		"hurricane wind zone": {
			&HurricaneAnalysis{WindZone: WindZoneNone}, &HurricaneAnalysis{WindZone: WindZone1},
			&HurricaneAnalysis{WindZone: WindZone2}, &HurricaneAnalysis{WindZone: WindZone3},
			&HurricaneAnalysis{WindZone: WindZone4},
		},
		"earthquake fault distance": {
			&EarthquakeAnalysis{HazardLevel: TierModerate, FaultDistanceMiles: ptr(60.0)},
			&EarthquakeAnalysis{HazardLevel: TierModerate, FaultDistanceMiles: ptr(20.0)},
			&EarthquakeAnalysis{HazardLevel: TierModerate, FaultDistanceMiles: ptr(3.0)},
		},
		"sinkhole nearest": {
			&SinkholeAnalysis{KarstRisk: TierModerate, NearestSinkholeMiles: ptr(5.0)},
			&SinkholeAnalysis{KarstRisk: TierModerate, NearestSinkholeMiles: ptr(0.8)},
			&SinkholeAnalysis{KarstRisk: TierModerate, NearestSinkholeMiles: ptr(0.1)},
		},
		"wildfire nearest": {
			&WildfireAnalysis{RiskLevel: TierModerate, NearestFireMiles: ptr(10.0)},
			&WildfireAnalysis{RiskLevel: TierModerate, NearestFireMiles: ptr(3.0)},
			&WildfireAnalysis{RiskLevel: TierModerate, NearestFireMiles: ptr(0.5)},
		},
		"environmental nearest": {
			&EnvironmentalAnalysis{RiskLevel: TierModerate, NearestSiteMiles: ptr(3.0)},
			&EnvironmentalAnalysis{RiskLevel: TierModerate, NearestSiteMiles: ptr(0.5)},
			&EnvironmentalAnalysis{RiskLevel: TierModerate, NearestSiteMiles: ptr(0.1)},
		},
		"slope percent": {
			&SlopeAnalysis{Susceptibility: TierLow, SlopePercent: 3}, &SlopeAnalysis{Susceptibility: TierLow, SlopePercent: 9},
			&SlopeAnalysis{Susceptibility: TierLow, SlopePercent: 16}, &SlopeAnalysis{Susceptibility: TierLow, SlopePercent: 31},
		},
	}
	for _, tier := range append(ladder, "extreme") {
		sequences["earthquake ladder"] = append(sequences["earthquake ladder"], &EarthquakeAnalysis{HazardLevel: tier})
		sequences["sinkhole ladder"] = append(sequences["sinkhole ladder"], &SinkholeAnalysis{KarstRisk: tier})
		sequences["wildfire ladder"] = append(sequences["wildfire ladder"], &WildfireAnalysis{RiskLevel: tier})
		sequences["environmental ladder"] = append(sequences["environmental ladder"], &EnvironmentalAnalysis{RiskLevel: tier})
		sequences["slope ladder"] = append(sequences["slope ladder"], &SlopeAnalysis{Susceptibility: tier})
	}

	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			c := seq[0].Category()
			prevRaw := -1.0
			prevOverall := -1
			for i, a := range seq {
				raw := NormalizeScore(c, a)
				assert.GreaterOrEqual(t, raw, prevRaw, "step %d", i)
				prevRaw = raw

				var in RiskInput
				in.Set(c, a)
				overall := AggregateRisk(in, "FL", nil).OverallRiskScore
				assert.GreaterOrEqual(t, overall, prevOverall, "step %d", i)
				prevOverall = overall
			}
		})
	}
}

func TestDecodeAnalysis(t *testing.T) {
	a, err := DecodeAnalysis(Flood, []byte(`{"zone":"AE","in_floodway":true,"confidence":90,"mitigations":["Raise the slab"]}`))
	require.NoError(t, err)

	flood, ok := a.(*FloodAnalysis)
	require.True(t, ok)
	assert.Equal(t, "AE", flood.Zone)
	assert.True(t, flood.InFloodway)
	conf, ok := flood.ReportedConfidence()
	assert.True(t, ok)
	assert.Equal(t, 90.0, conf)
	assert.Equal(t, []string{"Raise the slab"}, flood.Suggestions())

	_, err = DecodeAnalysis(Radon, []byte(`{not json`))
	require.Error(t, err)

	_, err = DecodeAnalysis("drought", []byte(`{}`))
	require.Error(t, err)
}

func TestAdvisories(t *testing.T) {
	in := severeInput()
	for _, c := range Categories {
		assert.NotEmpty(t, in.Get(c).Advisories(), string(c))
	}
	for _, c := range Categories {
		assert.Empty(t, benignInput().Get(c).Advisories(), string(c))
	}
}
