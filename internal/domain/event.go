package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// ParcelRequest asks for a parcel to be assessed. Analyses may be partial; the
// service can look up missing categories before scoring.
type ParcelRequest struct {
	Geo
	ParcelID       string      `json:"parcel_id"`
	Jurisdiction   string      `json:"jurisdiction"`
	Address        string      `json:"address,omitempty"`
	Analyses       RiskInput   `json:"analyses"`
	WeightOverride RiskWeights `json:"weight_override,omitempty"`
}

// HasLocation reports whether the request carries usable coordinates.
func (r ParcelRequest) HasLocation() bool {
	return r.Lat != 0 || r.Lon != 0
}

// Validate checks the fields the scorer depends on.
func (r ParcelRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.ParcelID) == "" {
		errs = append(errs, errors.New("parcel_id is required"))
	}
	if strings.TrimSpace(r.Jurisdiction) == "" {
		errs = append(errs, errors.New("jurisdiction is required"))
	}
	if math.IsNaN(r.Lat) || r.Lat < -90 || r.Lat > 90 {
		errs = append(errs, fmt.Errorf("latitude %v out of range", r.Lat))
	}
	if math.IsNaN(r.Lon) || r.Lon < -180 || r.Lon > 180 {
		errs = append(errs, fmt.Errorf("longitude %v out of range", r.Lon))
	}
	return errors.Join(errs...)
}

// ParseRequest deserializes and validates a RawEvent's value.
func ParseRequest(raw RawEvent) (ParcelRequest, error) {
	var req ParcelRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ParcelRequest{}, fmt.Errorf("parse parcel request: %w", err)
	}
	if req.ParcelID == "" && len(raw.Key) > 0 {
		req.ParcelID = string(raw.Key)
	}
	if err := req.Validate(); err != nil {
		return ParcelRequest{}, fmt.Errorf("invalid parcel request: %w", err)
	}
	return req, nil
}

// AssessmentEvent is the record published for every scored parcel.
type AssessmentEvent struct {
	ParcelID   string              `json:"parcel_id"`
	Assessment RiskAssessment      `json:"assessment"`
	Scoring    RiskCategoryScoring `json:"scoring"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeAssessment encodes an assessment event keyed by parcel id, with the
// region, tier and timestamp copied into headers for consumers that route on them.
func SerializeAssessment(ev AssessmentEvent) (OutputEvent, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("marshal assessment: %w", err)
	}
	return OutputEvent{
		Key:   []byte(ev.ParcelID),
		Value: value,
		Headers: map[string]string{
			"region":      ev.Assessment.Region,
			"risk_tier":   string(ev.Assessment.OverallRiskTier),
			"assessed_at": ev.Assessment.AssessedAt.Format(time.RFC3339),
		},
	}, nil
}
