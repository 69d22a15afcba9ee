package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testParcelID = "12086-0142-001"

func TestParseRequest(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		data := []byte(`{
			"parcel_id": "12086-0142-001",
			"jurisdiction": "FL-12086",
			"latitude": 25.7617,
			"longitude": -80.1918,
			"analyses": {
				"flood": {"zone": "AE", "confidence": 92},
				"radon": {"epa_zone": 3}
			},
			"weight_override": {"flood": 0.4}
		}`)
		req, err := ParseRequest(RawEvent{Value: data})
		require.NoError(t, err)

		assert.Equal(t, testParcelID, req.ParcelID)
		assert.Equal(t, "FL-12086", req.Jurisdiction)
		assert.Equal(t, 25.7617, req.Lat)
		assert.Equal(t, -80.1918, req.Lon)
		require.NotNil(t, req.Analyses.Flood)
		assert.Equal(t, "AE", req.Analyses.Flood.Zone)
		require.NotNil(t, req.Analyses.Radon)
		assert.Nil(t, req.Analyses.Hurricane)
		assert.Equal(t, RiskWeights{Flood: 0.4}, req.WeightOverride)
		assert.True(t, req.HasLocation())
	})

	t.Run("parcel id from message key", func(t *testing.T) {
		req, err := ParseRequest(RawEvent{Key: []byte("p-1"), Value: []byte(`{"jurisdiction":"CA"}`)})
		require.NoError(t, err)
		assert.Equal(t, "p-1", req.ParcelID)
		assert.False(t, req.HasLocation())
	})

	errorCases := map[string]string{
		"invalid JSON":           `{invalid json`,
		"missing parcel id":      `{"jurisdiction":"FL"}`,
		"missing jurisdiction":   `{"parcel_id":"p-1"}`,
		"latitude out of range":  `{"parcel_id":"p-1","jurisdiction":"FL","latitude":95}`,
		"longitude out of range": `{"parcel_id":"p-1","jurisdiction":"FL","longitude":-181}`,
		"unknown override":       `{"parcel_id":"p-1","jurisdiction":"FL","weight_override":{"drought":1}}`,
		"bad analysis shape":     `{"parcel_id":"p-1","jurisdiction":"FL","analyses":{"flood":"AE"}}`,
	}
	for name, body := range errorCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRequest(RawEvent{Value: []byte(body)})
			require.Error(t, err)
		})
	}
}

func TestSerializeAssessment(t *testing.T) {
	now := freezeClock(t)

	a := AggregateRisk(RiskInput{}, "FL", nil)
	ev := AssessmentEvent{ParcelID: testParcelID, Assessment: a, Scoring: ToPointScore(a)}

	out, err := SerializeAssessment(ev)
	require.NoError(t, err)

	assert.Equal(t, []byte(testParcelID), out.Key)
	assert.Equal(t, "COASTAL_HURRICANE", out.Headers["region"])
	assert.Equal(t, "low", out.Headers["risk_tier"])
	assert.Equal(t, now.Format("2006-01-02T15:04:05Z07:00"), out.Headers["assessed_at"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Value, &decoded))
	assert.Equal(t, testParcelID, decoded["parcel_id"])
	assessment, ok := decoded["assessment"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 29, assessment["overall_risk_score"])
	scoring, ok := decoded["scoring"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 17.8, scoring["points"])
}
