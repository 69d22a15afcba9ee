package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/parcel-risk-service/internal/domain"
	"github.com/couchcryptid/parcel-risk-service/internal/observability"
)

// AssessmentTransformer implements Transformer by parsing a parcel request,
// filling missing analyses from an optional hazard lookup, and scoring it.
type AssessmentTransformer struct {
	assessor    *domain.Assessor
	lookup      domain.HazardLookup
	concurrency int
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewTransformer creates an AssessmentTransformer. Pass a nil lookup to score
// only what the request carries.
func NewTransformer(assessor *domain.Assessor, lookup domain.HazardLookup, concurrency int, metrics *observability.Metrics, logger *slog.Logger) *AssessmentTransformer {
	if assessor == nil {
		assessor = domain.NewAssessor(nil)
	}
	return &AssessmentTransformer{
		assessor:    assessor,
		lookup:      lookup,
		concurrency: concurrency,
		metrics:     metrics,
		logger:      logger,
	}
}

func (t *AssessmentTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	return domain.SerializeAssessment(t.AssessRequest(ctx, req))
}

// AssessRequest scores a validated request. It never fails; lookup errors only
// lower the confidence of the result.
func (t *AssessmentTransformer) AssessRequest(ctx context.Context, req domain.ParcelRequest) domain.AssessmentEvent {
	input, report := domain.GatherAnalyses(ctx, req, t.lookup, t.concurrency, t.logger)
	if len(report.Found) > 0 || len(report.Failed) > 0 {
		t.logger.Debug("gathered hazard analyses",
			"parcel_id", req.ParcelID,
			"requested", len(report.Requested),
			"found", len(report.Found),
			"failed", len(report.Failed),
		)
	}

	assessment := t.assessor.Assess(input, req.Jurisdiction, req.WeightOverride)

	t.metrics.Assessments.WithLabelValues(assessment.Region, string(assessment.OverallRiskTier)).Inc()
	t.metrics.OverallScore.Observe(float64(assessment.OverallRiskScore))
	t.metrics.AssessmentConfidence.Observe(float64(assessment.Confidence))

	t.logger.Debug("parcel assessed",
		"parcel_id", req.ParcelID,
		"region", assessment.Region,
		"score", assessment.OverallRiskScore,
		"tier", assessment.OverallRiskTier,
	)

	return domain.AssessmentEvent{
		ParcelID:   req.ParcelID,
		Assessment: assessment,
		Scoring:    domain.ToPointScore(assessment),
	}
}

// Catalog exposes the region catalog the transformer scores against.
func (t *AssessmentTransformer) Catalog() *domain.Catalog {
	return t.assessor.Catalog()
}
