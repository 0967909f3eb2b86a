package chi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	domdoc "github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/document"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/domain/query"
	healthuc "github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/health"
	"github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/livequery"
)

// DefaultKeepalive is the comment interval on idle live query streams.
const DefaultKeepalive = 15 * time.Second

// DocumentService handles document writes.
type DocumentService interface {
	Put(ctx context.Context, id string, fields map[string]any) (domdoc.Document, bool, error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (domdoc.Document, error)
}

// LiveQueryService opens live query subscriptions.
type LiveQueryService interface {
	Subscribe(ctx context.Context, spec query.Spec) (<-chan livequery.Update, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the document list HTTP API.
type Server struct {
	documents  DocumentService
	live       LiveQueryService
	health     HealthChecker
	logger     *zap.Logger
	keepalive  time.Duration
	apiVersion string
}

// NewServer creates an HTTP API server.
func NewServer(documents DocumentService, live LiveQueryService, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{
		documents:  documents,
		live:       live,
		health:     health,
		logger:     logger,
		keepalive:  DefaultKeepalive,
		apiVersion: query.DefaultAPIVersion,
	}
}

// WithKeepalive sets the idle stream keep-alive interval.
func (s *Server) WithKeepalive(d time.Duration) *Server {
	if d > 0 {
		s.keepalive = d
	}
	return s
}

// WithDefaultAPIVersion sets the version used by requests that do not pin one.
func (s *Server) WithDefaultAPIVersion(v string) *Server {
	if v != "" {
		s.apiVersion = v
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/live", s.LiveQuery)
		r.Route("/documents/{id}", func(r chi.Router) {
			r.Get("/", s.GetDocument)
			r.Put("/", s.PutDocument)
			r.Delete("/", s.DeleteDocument)
			r.Post("/publish", s.PublishDocument)
		})
	})
}

// PutDocument handles PUT /v1/documents/{id}.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Request body must be a JSON object")
		return
	}

	doc, created, err := s.documents.Put(r.Context(), id, body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/v1/documents/%s", doc.ID()))
	}
	writeJSON(w, status, doc.Fields())
}

// GetDocument handles GET /v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Fields())
}

// DeleteDocument handles DELETE /v1/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishDocument handles POST /v1/documents/{id}/publish.
func (s *Server) PublishDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Fields())
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}
