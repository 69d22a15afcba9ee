package hazardapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/parcel-risk-service/internal/domain"
	"github.com/couchcryptid/parcel-risk-service/internal/observability"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// Client implements domain.HazardLookup against the hazard-analysis HTTP API.
// Each category is served from GET {base}/v1/hazards/{category}.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a hazard API client.
func NewClient(baseURL, token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// LookupHazard fetches one category's analysis for a parcel. A 404 means the
// provider has no coverage and yields (nil, nil).
func (c *Client) LookupHazard(ctx context.Context, category domain.HazardCategory, parcel domain.ParcelRequest) (domain.Analysis, error) {
	params := url.Values{
		"lat":          {strconv.FormatFloat(parcel.Lat, 'f', 6, 64)},
		"lon":          {strconv.FormatFloat(parcel.Lon, 'f', 6, 64)},
		"jurisdiction": {parcel.Jurisdiction},
	}
	u := fmt.Sprintf("%s/v1/hazards/%s?%s", c.baseURL, url.PathEscape(string(category)), params.Encode())

	start := time.Now()
	a, outcome, err := c.doRequest(ctx, category, u)
	c.metrics.HazardAPIDuration.WithLabelValues(string(category)).Observe(time.Since(start).Seconds())
	c.metrics.HazardRequests.WithLabelValues(string(category), outcome).Inc()
	return a, err
}

func (c *Client) doRequest(ctx context.Context, category domain.HazardCategory, fullURL string) (domain.Analysis, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "error", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "error", fmt.Errorf("%s hazard request: %w", category, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		c.logger.Debug("no hazard coverage", "category", category)
		return nil, "empty", nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "error", fmt.Errorf("hazard API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "error", fmt.Errorf("read %s response: %w", category, err)
	}
	a, err := domain.DecodeAnalysis(category, body)
	if err != nil {
		return nil, "error", err
	}
	return a, "success", nil
}
