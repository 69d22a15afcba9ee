package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// weightTolerance is the allowed drift of a weight vector's sum from 1.0.
const weightTolerance = 0.01

// RiskWeights maps each hazard category to a non-negative weight. Vectors in use
// sum to 1.0 within weightTolerance.
type RiskWeights map[HazardCategory]float64

// Sum adds the weights in enumeration order so the result is reproducible.
func (w RiskWeights) Sum() float64 {
	var sum float64
	for _, c := range Categories {
		sum += w[c]
	}
	return sum
}

// IsValid reports whether the weights sum to 1.0 within tolerance.
func (w RiskWeights) IsValid() bool {
	return math.Abs(w.Sum()-1) <= weightTolerance
}

// Normalize returns a copy scaled to sum to 1.0. A zero sum cannot be scaled and
// is returned as an unchanged copy.
func (w RiskWeights) Normalize() RiskWeights {
	sum := w.Sum()
	out := make(RiskWeights, len(Categories))
	for _, c := range Categories {
		if sum == 0 {
			out[c] = w[c]
			continue
		}
		out[c] = w[c] / sum
	}
	return out
}

// WithOverride returns a copy of w whose entries are replaced by any present in
// override. Negative overrides are treated as zero. The result is not normalized.
func (w RiskWeights) WithOverride(override RiskWeights) RiskWeights {
	out := make(RiskWeights, len(Categories))
	for _, c := range Categories {
		out[c] = w[c]
		if v, ok := override[c]; ok && !math.IsNaN(v) {
			out[c] = math.Max(0, v)
		}
	}
	return out
}

// Largest returns the category with the highest weight; ties go to the earlier
// category in enumeration order.
func (w RiskWeights) Largest() HazardCategory {
	best := Categories[0]
	for _, c := range Categories[1:] {
		if w[c] > w[best] {
			best = c
		}
	}
	return best
}

// UnmarshalJSON decodes a possibly partial weight map such as {"flood":0.9}.
// Category keys are case-insensitive; unknown categories are rejected. A null
// entry is left out, so it does not override anything.
func (w *RiskWeights) UnmarshalJSON(data []byte) error {
	var raw map[string]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode weights: %w", err)
	}
	if raw == nil {
		*w = nil
		return nil
	}
	out := make(RiskWeights, len(raw))
	for k, v := range raw {
		c, err := ParseCategory(k)
		if err != nil {
			return fmt.Errorf("decode weights: %w", err)
		}
		if v == nil {
			continue
		}
		out[c] = *v
	}
	*w = out
	return nil
}
