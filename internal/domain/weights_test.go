package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskInput_GetReturnsUntypedNil(t *testing.T) {
	var in RiskInput
	for _, c := range Categories {
		assert.True(t, in.Get(c) == nil, string(c))
	}
	assert.Nil(t, in.Get("drought"))
}

func TestRiskInput_SetAndGet(t *testing.T) {
	var in RiskInput
	flood := &FloodAnalysis{Zone: "AE"}
	in.Set(Flood, flood)
	assert.Same(t, flood, in.Get(Flood))

	// Mismatched concrete type is ignored.
	in.Set(Radon, flood)
	assert.Nil(t, in.Get(Radon))
	in.Set(Flood, &HurricaneAnalysis{WindZone: WindZone4})
	assert.Same(t, flood, in.Get(Flood), "existing analysis must survive a mismatched Set")

	in.Set(Flood, nil)
	assert.Nil(t, in.Get(Flood))
}

func TestRiskInput_Missing(t *testing.T) {
	in := RiskInput{Hurricane: &HurricaneAnalysis{}, Slope: &SlopeAnalysis{}}
	assert.Equal(t, []HazardCategory{Flood, Earthquake, Sinkhole, Wildfire, Environmental, Radon}, in.Missing())
	assert.Empty(t, severeInput().Missing())
}

func TestRiskWeights_SumAndValid(t *testing.T) {
	w := RiskWeights{Flood: 0.5, Radon: 0.495}
	assert.InDelta(t, 0.995, w.Sum(), 1e-12)
	assert.True(t, w.IsValid())

	w[Slope] = 0.2
	assert.False(t, w.IsValid())
}

func TestRiskWeights_Normalize(t *testing.T) {
	t.Run("scales to one", func(t *testing.T) {
		w := RiskWeights{Flood: 2, Hurricane: 1, Radon: 1}
		n := w.Normalize()
		assert.InDelta(t, 1.0, n.Sum(), 1e-12)
		assert.InDelta(t, 0.5, n[Flood], 1e-12)
		assert.InDelta(t, 0.25, n[Radon], 1e-12)
		assert.Equal(t, 2.0, w[Flood], "input must not be mutated")
	})

	t.Run("zero sum returned unchanged", func(t *testing.T) {
		n := RiskWeights{}.Normalize()
		assert.Zero(t, n.Sum())
		assert.Len(t, n, len(Categories))
	})
}

func TestRiskWeights_WithOverride(t *testing.T) {
	base := DefaultCatalog().ResolveWeights("FL", nil)
	out := base.WithOverride(RiskWeights{Flood: 0.9, Radon: -1})

	assert.Equal(t, 0.9, out[Flood])
	assert.Equal(t, 0.0, out[Radon])
	assert.Equal(t, base[Hurricane], out[Hurricane])
	assert.InDelta(t, 0.25, base[Flood], 1e-9, "base must not be mutated")
}

func TestRiskWeights_Largest(t *testing.T) {
	assert.Equal(t, Hurricane, RiskWeights{Flood: 0.2, Hurricane: 0.3, Radon: 0.3}.Largest())
	assert.Equal(t, Flood, RiskWeights{}.Largest())
}

func TestRiskWeights_UnmarshalJSON(t *testing.T) {
	var w RiskWeights
	require.NoError(t, json.Unmarshal([]byte(`{"Flood":0.9,"radon":0.1}`), &w))
	assert.Equal(t, RiskWeights{Flood: 0.9, Radon: 0.1}, w)

	err := json.Unmarshal([]byte(`{"drought":0.2}`), &w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drought")

	var empty RiskWeights
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.Nil(t, empty)

	var partial RiskWeights
	require.NoError(t, json.Unmarshal([]byte(`{"flood":null,"wildfire":0.4}`), &partial))
	assert.Equal(t, RiskWeights{Wildfire: 0.4}, partial)
	resolved := ResolveWeights("FL", partial)
	assert.Greater(t, resolved[Flood], 0.0, "a null entry must not zero the category")
}
