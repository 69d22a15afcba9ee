// Command genmock reads a parcel findings CSV and generates mock data fixtures
// for the scoring service: the request payloads published to the source topic
// and the golden assessments the service produces for them. It runs the real
// domain package so the golden output matches pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/mock/parcels.csv \
//	  -requests-out data/mock/parcel_requests_generated.json \
//	  -assessments-out data/mock/parcel_assessments_golden.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/parcel-risk-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// assessedAt is the frozen timestamp stamped on every golden assessment.
var assessedAt = time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "parcel findings CSV")
	requestsOut := flag.String("requests-out", "", "output path for the request fixture")
	assessmentsOut := flag.String("assessments-out", "", "output path for the golden assessment fixture")
	catalogPath := flag.String("catalog", "", "optional region catalog YAML (defaults to the embedded catalog)")
	flag.Parse()

	if *csvPath == "" || *requestsOut == "" || *assessmentsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -requests-out, -assessments-out")
	}

	catalog := domain.DefaultCatalog()
	if *catalogPath != "" {
		c, err := domain.LoadCatalogFile(*catalogPath)
		if err != nil {
			return err
		}
		catalog = c
	}

	domain.SetClock(clockwork.NewFakeClockAt(assessedAt))
	defer domain.SetClock(nil)

	requests, err := readParcels(*csvPath)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("parcels: %d", len(requests))

	assessor := domain.NewAssessor(catalog)
	events := make([]domain.AssessmentEvent, 0, len(requests))
	for _, req := range requests {
		if err := req.Validate(); err != nil {
			return fmt.Errorf("parcel %s: %w", req.ParcelID, err)
		}
		a := assessor.Assess(req.Analyses, req.Jurisdiction, req.WeightOverride)
		events = append(events, domain.AssessmentEvent{
			ParcelID:   req.ParcelID,
			Assessment: a,
			Scoring:    domain.ToPointScore(a),
		})
	}

	if err := writeJSON(*requestsOut, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s", *requestsOut)

	if err := writeJSON(*assessmentsOut, events); err != nil {
		return fmt.Errorf("writing assessment fixture: %w", err)
	}
	log.Printf("wrote assessment fixture: %s", *assessmentsOut)

	printStats(events)
	return nil
}

func readParcels(path string) ([]domain.ParcelRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}

	requests := make([]domain.ParcelRequest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := rowReader{row: row, idx: colIdx}
		requests = append(requests, domain.ParcelRequest{
			ParcelID:     r.str("parcel_id"),
			Jurisdiction: r.str("jurisdiction"),
			Address:      r.str("address"),
			Geo:          domain.Geo{Lat: r.float("latitude"), Lon: r.float("longitude")},
			Analyses:     r.analyses(),
		})
	}
	return requests, nil
}

type rowReader struct {
	row []string
	idx map[string]int
}

func (r rowReader) str(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func (r rowReader) has(col string) bool { return r.str(col) != "" }

func (r rowReader) float(col string) float64 {
	v, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		return 0
	}
	return v
}

func (r rowReader) floatPtr(col string) *float64 {
	if !r.has(col) {
		return nil
	}
	v := r.float(col)
	return &v
}

func (r rowReader) integer(col string) int {
	v, err := strconv.Atoi(r.str(col))
	if err != nil {
		return 0
	}
	return v
}

func (r rowReader) boolean(col string) bool {
	v, _ := strconv.ParseBool(r.str(col))
	return v
}

// analyses builds one analysis per category whose lead column is filled in;
// the others stay nil so the scorer falls back to regional defaults.
func (r rowReader) analyses() domain.RiskInput {
	var in domain.RiskInput
	if r.has("flood_zone") {
		in.Flood = &domain.FloodAnalysis{
			Zone:              r.str("flood_zone"),
			PriorClaims:       r.integer("flood_claims"),
			InsuranceRequired: strings.HasPrefix(strings.ToUpper(r.str("flood_zone")), "A") || strings.HasPrefix(strings.ToUpper(r.str("flood_zone")), "V"),
		}
	}
	if r.has("wind_zone") {
		in.Hurricane = &domain.HurricaneAnalysis{
			WindZone:             domain.WindZone(r.str("wind_zone")),
			HistoricalStorms:     r.integer("historical_storms"),
			DistanceToCoastMiles: r.floatPtr("coast_miles"),
			InStormSurgeZone:     r.boolean("surge_zone"),
		}
	}
	if r.has("seismic_level") {
		in.Earthquake = &domain.EarthquakeAnalysis{
			HazardLevel:            domain.RiskTier(r.str("seismic_level")),
			PeakGroundAcceleration: r.float("pga_g"),
			FaultDistanceMiles:     r.floatPtr("fault_miles"),
		}
	}
	if r.has("karst_risk") {
		in.Sinkhole = &domain.SinkholeAnalysis{
			KarstRisk:           domain.RiskTier(r.str("karst_risk")),
			InKarstRegion:       r.integer("sinkholes") > 0,
			SinkholesWithinMile: r.integer("sinkholes"),
		}
	}
	if r.has("wildfire_level") {
		in.Wildfire = &domain.WildfireAnalysis{
			RiskLevel:      domain.RiskTier(r.str("wildfire_level")),
			InWUI:          r.boolean("in_wui"),
			FireDetections: r.integer("fire_detections"),
		}
	}
	if r.has("env_level") {
		in.Environmental = &domain.EnvironmentalAnalysis{
			RiskLevel:      domain.RiskTier(r.str("env_level")),
			SuperfundSites: r.integer("superfund_sites"),
		}
	}
	if r.has("radon_zone") {
		in.Radon = &domain.RadonAnalysis{
			EPAZone:           r.integer("radon_zone"),
			AverageIndoorPCiL: r.floatPtr("radon_pcil"),
		}
	}
	if r.has("slope_level") {
		in.Slope = &domain.SlopeAnalysis{
			Susceptibility: domain.RiskTier(r.str("slope_level")),
			SlopePercent:   r.float("slope_percent"),
		}
	}
	return in
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(events []domain.AssessmentEvent) {
	tiers := map[string]int{}
	regions := map[string]int{}
	var scoreSum, confSum int
	for i := range events {
		a := &events[i].Assessment
		tiers[string(a.OverallRiskTier)]++
		regions[a.Region]++
		scoreSum += a.OverallRiskScore
		confSum += a.Confidence
	}

	fmt.Println("\n=== Assessment Stats ===")
	printCounts("tier", tiers)
	printCounts("region", regions)
	if n := len(events); n > 0 {
		fmt.Printf("mean score: %.1f  mean confidence: %.1f\n",
			float64(scoreSum)/float64(n), float64(confSum)/float64(n))
	}
}

func printCounts(label string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-8s %-20s %d\n", label, k, counts[k])
	}
}
