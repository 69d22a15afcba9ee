package domain

import "math"

// locationBoost raises the weight of a group of categories when a location signal
// in the input marks the parcel as unusually exposed to them.
type locationBoost struct {
	name       string
	categories []HazardCategory
	factor     func(RiskInput) (float64, string)
}

var locationBoosts = []locationBoost{
	{name: "coastal", categories: []HazardCategory{Flood, Hurricane}, factor: coastalFactor},
	{name: "seismic", categories: []HazardCategory{Earthquake}, factor: seismicFactor},
	{name: "wildland", categories: []HazardCategory{Wildfire}, factor: wildlandFactor},
}

func coastalFactor(in RiskInput) (float64, string) {
	if in.Hurricane == nil || in.Hurricane.DistanceToCoastMiles == nil {
		return 1, ""
	}
	d := *in.Hurricane.DistanceToCoastMiles
	switch {
	case math.IsNaN(d) || d < 0:
		return 1, ""
	case d <= 1:
		return 1.5, "within 1 mile of the coast"
	case d <= 5:
		return 1.3, "within 5 miles of the coast"
	case d <= 25:
		return 1.15, "within 25 miles of the coast"
	}
	return 1, ""
}

func seismicFactor(in RiskInput) (float64, string) {
	if in.Earthquake == nil {
		return 1, ""
	}
	switch zone := normalizeLabel(in.Earthquake.SeismicZone); zone {
	case "california", "pacific_northwest":
		return 1.5, zone + " seismic zone"
	case "new_madrid":
		return 1.3, zone + " seismic zone"
	case "intermountain":
		return 1.15, zone + " seismic zone"
	}
	return 1, ""
}

func wildlandFactor(in RiskInput) (float64, string) {
	if in.Wildfire == nil || !in.Wildfire.InWUI {
		return 1, ""
	}
	return 1.3, "wildland-urban interface"
}

// WeightAdjustment records a location boost applied to an assessment's weights.
type WeightAdjustment struct {
	Categories []HazardCategory `json:"categories"`
	Factor     float64          `json:"factor"`
	Reason     string           `json:"reason"`
}

// AdaptWeights applies location boosts to w, a regional vector with any override
// already applied. Overridden categories are never boosted. Every combination of
// applicable boosts is tried and the one yielding the highest overall score
// wins, with the unboosted vector winning ties. Boosting a group can therefore
// only raise the overall score, and the score stays monotonic in every signal.
// The result is not normalized.
func AdaptWeights(w RiskWeights, override RiskWeights, input RiskInput) (RiskWeights, []WeightAdjustment) {
	type candidate struct {
		categories []HazardCategory
		factor     float64
		reason     string
	}
	var candidates []candidate
	for _, b := range locationBoosts {
		k, reason := b.factor(input)
		if k <= 1 {
			continue
		}
		var cats []HazardCategory
		for _, c := range b.categories {
			if _, pinned := override[c]; !pinned && w[c] > 0 {
				cats = append(cats, c)
			}
		}
		if len(cats) > 0 {
			candidates = append(candidates, candidate{categories: cats, factor: k, reason: b.name + ": " + reason})
		}
	}

	out := w.WithOverride(nil)
	if len(candidates) == 0 || w.Sum() == 0 {
		return out, nil
	}

	raw := make(map[HazardCategory]float64, len(Categories))
	for _, c := range Categories {
		raw[c] = NormalizeScore(c, input.Get(c))
	}

	apply := func(mask int) RiskWeights {
		ww := w.WithOverride(nil)
		for i, cand := range candidates {
			if mask&(1<<i) == 0 {
				continue
			}
			for _, c := range cand.categories {
				ww[c] *= cand.factor
			}
		}
		return ww
	}

	best, bestScore := 0, weightedMean(out, raw)
	for mask := 1; mask < 1<<len(candidates); mask++ {
		if s := weightedMean(apply(mask), raw); s > bestScore {
			best, bestScore = mask, s
		}
	}
	if best == 0 {
		return out, nil
	}

	var applied []WeightAdjustment
	for i, cand := range candidates {
		if best&(1<<i) != 0 {
			applied = append(applied, WeightAdjustment{
				Categories: cand.categories,
				Factor:     cand.factor,
				Reason:     cand.reason,
			})
		}
	}
	return apply(best), applied
}

func weightedMean(w RiskWeights, raw map[HazardCategory]float64) float64 {
	var total float64
	for _, c := range Categories {
		total += w[c] * raw[c]
	}
	return total / w.Sum()
}
