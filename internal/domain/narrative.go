package domain

import (
	"cmp"
	"fmt"
	"slices"
)

const (
	maxTopFactors      = 3
	maxPositiveFactors = 2
	maxWarnings        = 5
	maxRecommendations = 3

	topFactorThreshold      = 50
	positiveFactorThreshold = 30
	mitigationThreshold     = 40
	highWarningThreshold    = 60
	veryHighThreshold       = 80
	limitedDataConfidence   = 50
)

// Narrative is the explanatory text derived from a ranked breakdown.
type Narrative struct {
	TopRiskFactors    []string           `json:"top_risk_factors"`
	PositiveFactors   []string           `json:"positive_factors"`
	Warnings          []string           `json:"warnings"`
	Recommendations   []string           `json:"recommendations"`
	MitigationActions []MitigationAction `json:"mitigation_actions"`
}

// BuildNarrative derives factors, warnings, recommendations and mitigation
// actions. scores must be in ranked order as returned by Aggregate.
func BuildNarrative(input RiskInput, scores []CategoryScore, confidence int) Narrative {
	byRaw := slices.Clone(scores)
	slices.SortStableFunc(byRaw, func(a, b CategoryScore) int {
		return cmp.Compare(b.RawScore, a.RawScore)
	})

	return Narrative{
		TopRiskFactors:    topRiskFactors(scores),
		PositiveFactors:   positiveFactors(scores),
		Warnings:          warnings(input, scores, confidence),
		Recommendations:   recommendations(byRaw),
		MitigationActions: mitigationActions(input, byRaw),
	}
}

func factorText(s CategoryScore) string {
	return fmt.Sprintf("%s: %s risk (%.0f/100)", s.Category.Label(), s.RiskTier.Label(), s.RawScore)
}

func topRiskFactors(ranked []CategoryScore) []string {
	out := []string{}
	for _, s := range ranked {
		if len(out) == maxTopFactors {
			break
		}
		if s.RawScore >= topFactorThreshold {
			out = append(out, factorText(s))
		}
	}
	return out
}

func positiveFactors(ranked []CategoryScore) []string {
	low := slices.Clone(ranked)
	slices.SortStableFunc(low, func(a, b CategoryScore) int {
		return cmp.Compare(a.RawScore, b.RawScore)
	})
	out := []string{}
	for _, s := range low {
		if len(out) == maxPositiveFactors || s.RawScore >= positiveFactorThreshold {
			break
		}
		out = append(out, factorText(s))
	}
	return out
}

type severity int

const (
	severityInfo severity = iota
	severityAdvisory
	severityHigh
	severityVeryHigh
)

type warning struct {
	severity severity
	text     string
}

func warnings(input RiskInput, ranked []CategoryScore, confidence int) []string {
	var all []warning
	for _, s := range ranked {
		switch {
		case s.RawScore >= veryHighThreshold:
			all = append(all, warning{severityVeryHigh,
				fmt.Sprintf("%s risk is very high (%.0f/100)", s.Category.Label(), s.RawScore)})
		case s.RawScore >= highWarningThreshold:
			all = append(all, warning{severityHigh,
				fmt.Sprintf("%s risk is high (%.0f/100)", s.Category.Label(), s.RawScore)})
		}
		if a := input.Get(s.Category); a != nil {
			for _, text := range a.Advisories() {
				all = append(all, warning{severityAdvisory, text})
			}
		}
	}
	if confidence < limitedDataConfidence {
		all = append(all, warning{severityInfo,
			fmt.Sprintf("Limited hazard data available (confidence %d/100); scores lean on regional defaults", confidence)})
	}

	// Stable sort keeps rank order inside a severity.
	slices.SortStableFunc(all, func(a, b warning) int {
		return cmp.Compare(b.severity, a.severity)
	})

	out := make([]string, 0, min(len(all), maxWarnings))
	for _, w := range all[:min(len(all), maxWarnings)] {
		out = append(out, w.text)
	}
	return out
}

func recommendations(byRaw []CategoryScore) []string {
	out := []string{}
	for _, s := range byRaw {
		if len(out) == maxRecommendations || s.RawScore < topFactorThreshold {
			break
		}
		out = append(out, categorySpecs[s.Category].recommendation)
	}
	return out
}

func mitigationActions(input RiskInput, byRaw []CategoryScore) []MitigationAction {
	out := []MitigationAction{}
	add := func(m MitigationAction) bool {
		if len(out) == maxMitigations {
			return false
		}
		m.Priority = len(out) + 1
		out = append(out, m)
		return true
	}

	for _, s := range byRaw {
		if s.RawScore < mitigationThreshold {
			break
		}
		for _, t := range categorySpecs[s.Category].mitigations {
			if !add(t.toAction(s.Category)) {
				return out
			}
		}
		a := input.Get(s.Category)
		if a == nil {
			continue
		}
		for _, text := range a.Suggestions() {
			if !add(MitigationAction{Category: s.Category, Action: text}) {
				return out
			}
		}
	}
	return out
}
