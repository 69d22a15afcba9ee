package httpadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/parcel-risk-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestBytes = 1 << 20
)

// AssessmentService scores parcel requests synchronously.
type AssessmentService interface {
	AssessRequest(ctx context.Context, req domain.ParcelRequest) domain.AssessmentEvent
	Catalog() *domain.Catalog
}

// Server exposes health, readiness, metrics and assessment HTTP endpoints.
type Server struct {
	httpServer *http.Server
	service    AssessmentService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /v1 assessment routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, service AssessmentService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/assessments", s.handleAssess)
	mux.HandleFunc("GET /v1/regions", s.handleListRegions)
	mux.HandleFunc("GET /v1/regions/{jurisdiction}", s.handleRegion)

	s.httpServer.Handler = s.withRequestID(mux)
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// withRequestID echoes the caller's X-Request-ID or assigns a fresh one.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
		return
	}

	req, err := domain.ParseRequest(domain.RawEvent{Value: body})
	if err != nil {
		s.logger.Info("rejected assessment request", "request_id", requestID(r.Context()), "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev := s.service.AssessRequest(r.Context(), req)
	s.logger.Debug("assessment served",
		"request_id", requestID(r.Context()),
		"parcel_id", ev.ParcelID,
		"tier", ev.Assessment.OverallRiskTier,
	)
	sharedobs.WriteJSON(w, http.StatusOK, ev)
}

type regionResponse struct {
	Jurisdiction string             `json:"jurisdiction,omitempty"`
	Region       string             `json:"region"`
	Description  string             `json:"description,omitempty"`
	Weights      domain.RiskWeights `json:"weights"`
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	jurisdiction := r.PathValue("jurisdiction")
	catalog := s.service.Catalog()

	name := catalog.RegionOf(jurisdiction)
	region, _ := catalog.Region(name)
	sharedobs.WriteJSON(w, http.StatusOK, regionResponse{
		Jurisdiction: jurisdiction,
		Region:       name,
		Description:  region.Description,
		Weights:      catalog.ResolveWeights(jurisdiction, nil),
	})
}

func (s *Server) handleListRegions(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"regions": s.service.Catalog().Regions()})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
