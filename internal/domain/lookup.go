package domain

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// HazardLookup fetches one category's analysis for a parcel from an upstream
// provider. It returns (nil, nil) when the provider has no data.
type HazardLookup interface {
	LookupHazard(ctx context.Context, category HazardCategory, parcel ParcelRequest) (Analysis, error)
}

// GatherReport summarizes a GatherAnalyses call.
type GatherReport struct {
	Requested []HazardCategory
	Found     []HazardCategory
	Failed    []HazardCategory
}

// GatherAnalyses looks up every category missing from req.Analyses concurrently,
// at most limit at a time, and returns the completed input. Analyses already on
// the request are kept. A failed lookup is logged and leaves its category nil,
// so the caller can always go on to assess (graceful degradation).
func GatherAnalyses(ctx context.Context, req ParcelRequest, lookup HazardLookup, limit int, logger *slog.Logger) (RiskInput, GatherReport) {
	input := req.Analyses
	missing := input.Missing()
	report := GatherReport{Requested: missing}
	if lookup == nil || len(missing) == 0 || !req.HasLocation() {
		return input, report
	}

	results := make([]Analysis, len(missing))
	errs := make([]error, len(missing))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, c := range missing {
		g.Go(func() error {
			results[i], errs[i] = lookup.LookupHazard(ctx, c, req)
			return nil
		})
	}
	_ = g.Wait()

	for i, c := range missing {
		if errs[i] != nil {
			logger.Warn("hazard lookup failed",
				"parcel_id", req.ParcelID,
				"category", c,
				"error", errs[i],
			)
			report.Failed = append(report.Failed, c)
			continue
		}
		if results[i] == nil || results[i].Category() != c {
			continue
		}
		input.Set(c, results[i])
		report.Found = append(report.Found, c)
	}
	return input, report
}
