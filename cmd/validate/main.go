// Command validate performs integrity checks on the region catalog and the
// parcel request fixtures. It re-runs the real scorer over every fixture and
// verifies score bounds, ordering, tier and point relationships, determinism,
// and optionally that the output matches a golden assessment file.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -requests data/mock/parcel_requests.json \
//	  [-catalog regions.yaml] \
//	  [-golden data/mock/parcel_assessments_golden.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/couchcryptid/parcel-risk-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

// assessedAt matches genmock so golden files compare byte for byte.
var assessedAt = time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)

const weightTolerance = 0.01

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	requestsPath := flag.String("requests", "", "path to parcel request JSON fixture")
	catalogPath := flag.String("catalog", "", "optional region catalog YAML (defaults to the embedded catalog)")
	goldenPath := flag.String("golden", "", "optional golden assessment JSON produced by genmock")
	flag.Parse()

	if *requestsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*requestsPath, *catalogPath, *goldenPath); code != 0 {
		os.Exit(code)
	}
}

func run(requestsPath, catalogPath, goldenPath string) int {
	domain.SetClock(clockwork.NewFakeClockAt(assessedAt))
	defer domain.SetClock(nil)

	fmt.Println("=== Parcel Risk Integrity Validation ===")
	fmt.Println()

	catalog := domain.DefaultCatalog()
	if catalogPath != "" {
		c, err := domain.LoadCatalogFile(catalogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load catalog: %v\n", err)
			return 1
		}
		catalog = c
	}

	raws, err := loadJSON[json.RawMessage](requestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load requests: %v\n", err)
		return 1
	}

	requestPhase, requests := validateRequests(raws)
	assessor := domain.NewAssessor(catalog)
	events := assessAll(assessor, requests)

	phases := []*phase{
		validateCatalog(catalog),
		requestPhase,
		validateAssessments(events),
		validateDeterminism(assessor, requests, events),
		validatePoints(events),
	}
	if goldenPath != "" {
		phases = append(phases, validateGolden(goldenPath, events))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d regions, %d requests, %d assessments\n",
		len(catalog.Regions()), len(raws), len(events))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func assessAll(assessor *domain.Assessor, requests []domain.ParcelRequest) []domain.AssessmentEvent {
	events := make([]domain.AssessmentEvent, 0, len(requests))
	for _, req := range requests {
		a := assessor.Assess(req.Analyses, req.Jurisdiction, req.WeightOverride)
		events = append(events, domain.AssessmentEvent{
			ParcelID:   req.ParcelID,
			Assessment: a,
			Scoring:    domain.ToPointScore(a),
		})
	}
	return events
}

// ── Phase 1: Region Catalog ──

func validateCatalog(catalog *domain.Catalog) *phase {
	p := &phase{name: "Phase 1: Region Catalog"}

	if _, ok := catalog.Region(domain.DefaultRegion); !ok {
		p.errorf("no %s region", domain.DefaultRegion)
	}
	for _, r := range catalog.Regions() {
		if sum := r.Weights.Sum(); math.Abs(sum-1) > weightTolerance {
			p.errorf("%s: weights sum to %.4f", r.Name, sum)
		}
		for _, c := range domain.Categories {
			w, ok := r.Weights[c]
			switch {
			case !ok:
				p.errorf("%s: missing %s weight", r.Name, c)
			case w < 0:
				p.errorf("%s: %s weight %v is negative", r.Name, c, w)
			}
		}
		for _, j := range r.Jurisdictions {
			if got := catalog.RegionOf(j); got != r.Name {
				p.errorf("%s: jurisdiction %s resolves to %s", r.Name, j, got)
			}
		}
	}
	return p
}

// ── Phase 2: Request Fixtures ──

func validateRequests(raws []json.RawMessage) (*phase, []domain.ParcelRequest) {
	p := &phase{name: "Phase 2: Request Fixtures"}

	seen := make(map[string]bool, len(raws))
	requests := make([]domain.ParcelRequest, 0, len(raws))
	for i, raw := range raws {
		req, err := domain.ParseRequest(domain.RawEvent{Value: raw})
		if err != nil {
			p.errorf("request %d: %v", i, err)
			continue
		}
		if seen[req.ParcelID] {
			p.errorf("request %d: duplicate parcel_id %s", i, req.ParcelID)
		}
		seen[req.ParcelID] = true
		requests = append(requests, req)
	}
	return p, requests
}

// ── Phase 3: Assessment Invariants ──

func validateAssessments(events []domain.AssessmentEvent) *phase {
	p := &phase{name: "Phase 3: Assessment Invariants"}

	for i := range events {
		id := events[i].ParcelID
		a := &events[i].Assessment

		if a.OverallRiskScore < 0 || a.OverallRiskScore > 100 {
			p.errorf("%s: overall score %d out of range", id, a.OverallRiskScore)
		}
		if a.Confidence < 0 || a.Confidence > 100 {
			p.errorf("%s: confidence %d out of range", id, a.Confidence)
		}
		if want := domain.OverallTier(a.OverallRiskScore); a.OverallRiskTier != want {
			p.errorf("%s: tier %s, want %s", id, a.OverallRiskTier, want)
		}
		if len(a.CategoryScores) != len(domain.Categories) {
			p.errorf("%s: %d category scores", id, len(a.CategoryScores))
		}
		if sum := a.Weights.Sum(); math.Abs(sum-1) > weightTolerance {
			p.errorf("%s: weights sum to %.4f", id, sum)
		}
		checkCategoryScores(p, id, a.CategoryScores)
		checkNarrative(p, id, a)
		checkInsurance(p, id, a.Insurance)
		checkWaterRisk(p, id, a)
	}
	return p
}

func checkWaterRisk(p *phase, id string, a *domain.RiskAssessment) {
	w := a.WaterRisk
	lo, hi := math.Min(w.FloodScore, w.HurricaneScore), math.Max(w.FloodScore, w.HurricaneScore)
	if float64(w.Score) < math.Floor(lo) || float64(w.Score) > math.Ceil(hi) {
		p.errorf("%s: water score %d outside [%.0f, %.0f]", id, w.Score, lo, hi)
	}
	want := decimal.Zero
	for _, part := range []*decimal.Decimal{a.Insurance.Flood, a.Insurance.Hurricane} {
		if part != nil {
			want = want.Add(*part)
		}
	}
	if !w.AnnualInsurance.Equal(want) {
		p.errorf("%s: water insurance %s, want %s", id, w.AnnualInsurance, want)
	}
}

func checkCategoryScores(p *phase, id string, scores []domain.CategoryScore) {
	for i, s := range scores {
		if s.RawScore < 0 || s.RawScore > 100 {
			p.errorf("%s: %s raw score %.2f out of range", id, s.Category, s.RawScore)
		}
		if i > 0 && scores[i-1].WeightedScore < s.WeightedScore {
			p.errorf("%s: category scores not sorted at %s", id, s.Category)
		}
	}
}

func checkNarrative(p *phase, id string, a *domain.RiskAssessment) {
	if len(a.TopRiskFactors) > 3 {
		p.errorf("%s: %d top risk factors", id, len(a.TopRiskFactors))
	}
	if len(a.PositiveFactors) > 2 {
		p.errorf("%s: %d positive factors", id, len(a.PositiveFactors))
	}
	if len(a.Warnings) > 5 {
		p.errorf("%s: %d warnings", id, len(a.Warnings))
	}
	if len(a.MitigationActions) > 8 {
		p.errorf("%s: %d mitigation actions", id, len(a.MitigationActions))
	}
	for i, m := range a.MitigationActions {
		if m.Priority != i+1 {
			p.errorf("%s: mitigation %d has priority %d", id, i, m.Priority)
		}
	}
}

func checkInsurance(p *phase, id string, est domain.InsuranceEstimate) {
	sum := decimal.Zero
	for _, part := range []*decimal.Decimal{est.Flood, est.Hurricane, est.Earthquake, est.Wildfire} {
		if part != nil {
			sum = sum.Add(*part)
		}
	}
	if !sum.Equal(est.Total) {
		p.errorf("%s: premium total %s, components sum to %s", id, est.Total, sum)
	}
}

// ── Phase 4: Determinism ──

func validateDeterminism(assessor *domain.Assessor, requests []domain.ParcelRequest, first []domain.AssessmentEvent) *phase {
	p := &phase{name: "Phase 4: Determinism (frozen clock)"}

	second := assessAll(assessor, requests)
	for i := range first {
		a, errA := json.Marshal(first[i])
		b, errB := json.Marshal(second[i])
		if errA != nil || errB != nil {
			p.errorf("%s: marshal: %v %v", first[i].ParcelID, errA, errB)
			continue
		}
		if string(a) != string(b) {
			p.errorf("%s: repeated assessment differs", first[i].ParcelID)
		}
	}

	empty := assessor.Assess(domain.RiskInput{}, "FL", nil)
	if empty.Confidence != 20 {
		p.errorf("all-null input: confidence %d, want 20", empty.Confidence)
	}
	return p
}

// ── Phase 5: Point Conversion ──

func validatePoints(events []domain.AssessmentEvent) *phase {
	p := &phase{name: "Phase 5: Point Conversion"}

	sorted := make([]domain.AssessmentEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Assessment.OverallRiskScore < sorted[j].Assessment.OverallRiskScore
	})

	for i := range sorted {
		s := sorted[i].Scoring
		if s.Points < 0 || s.Points > float64(domain.MaxRiskPoints) {
			p.errorf("%s: %.2f points out of range", sorted[i].ParcelID, s.Points)
		}
		if i == 0 {
			continue
		}
		prev, cur := sorted[i-1], sorted[i]
		switch {
		case cur.Assessment.OverallRiskScore > prev.Assessment.OverallRiskScore && cur.Scoring.Points >= prev.Scoring.Points:
			p.errorf("%s: score %d earns %.2f points, %s scores %d and earns %.2f",
				cur.ParcelID, cur.Assessment.OverallRiskScore, cur.Scoring.Points,
				prev.ParcelID, prev.Assessment.OverallRiskScore, prev.Scoring.Points)
		case cur.Assessment.OverallRiskScore == prev.Assessment.OverallRiskScore && cur.Scoring.Points != prev.Scoring.Points:
			p.errorf("%s: equal scores earn different points", cur.ParcelID)
		}
	}
	return p
}

// ── Phase 6: Golden Assessments ──

func validateGolden(path string, events []domain.AssessmentEvent) *phase {
	p := &phase{name: "Phase 6: Golden Assessments"}

	golden, err := loadJSON[domain.AssessmentEvent](path)
	if err != nil {
		p.errorf("load golden file: %v", err)
		return p
	}
	if len(golden) != len(events) {
		p.errorf("golden file has %d assessments, fixtures produce %d", len(golden), len(events))
		return p
	}
	for i := range events {
		if diff := cmp.Diff(golden[i], events[i], cmpopts.EquateEmpty()); diff != "" {
			p.errorf("%s: mismatch (-golden +got):\n%s", events[i].ParcelID, diff)
		}
	}
	return p
}
