// Package domain scores the natural and environmental hazard exposure of a
// real-property parcel.
//
// # Inputs
//
// Up to eight hazard analyses arrive per parcel, one per [HazardCategory]:
// flood, hurricane, earthquake, sinkhole, wildfire, environmental, radon and
// slope. Each is produced upstream (FEMA flood maps, NOAA storm history, USGS
// seismic models, state karst surveys, NASA FIRMS fire detections, EPA site
// registries, EPA radon zones, elevation models) and may be missing. A missing
// analysis is not an error: the category falls back to a moderate default and
// the assessment confidence drops.
//
// # Category scores
//
// Every analysis maps its own enumeration (FEMA zone letter, wind zone, EPA
// radon zone, or the shared minimal..very_high ladder) onto a tier base score
// and adds bounded adjustments for secondary signals such as distance to a
// hazard site or historical event counts:
//
//	ladder:  minimal 5 | low 20 | moderate 40 | high 60 | very_high 80
//	flood:   V/VE 80 | A/AE/AH/AO/AR 60 | A99 50 | D 35 | X500/B 25 | X/C 5
//	radon:   zone 1 60 | zone 2 35 | zone 3 15
//
// The adjustment caps of each category never add up to more than the headroom
// above its highest tier base, so a well-formed analysis never needs the final
// clamp to [0, 100]. Higher always means more risk.
//
// # Regional weights
//
// Jurisdictions (state codes) map to named regions whose weight vectors live in
// regions.yaml, embedded at build time and validated at start-up. Every vector
// sums to 1.0 within 0.01. Unknown jurisdictions use DEFAULT.
//
// # Aggregation
//
// The overall risk score is the rounded sum of raw score × weight. Category
// scores are ranked by weighted contribution, ties keeping enumeration order.
// Overall tiers:
//
//	>=70 very_high | >=50 high | >=30 moderate | >=15 low | else minimal
//
// # Point scale
//
// [ToPointScore] projects an assessment onto the 0-25 risk category of the
// 125-point property score: points = 25 × (1 − overall/100). Per-category
// sub-scores use each category's own weight and raw score and therefore only
// approximately add up to the headline points.
package domain
