// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/successionai/talentd/internal/adapters/repository"
	"github.com/successionai/talentd/internal/domain/dedupe"
	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/grid"
	"github.com/successionai/talentd/internal/domain/mentor"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/plan"
	"github.com/successionai/talentd/internal/domain/readiness"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// EnqueueAnalysis pushes an analysis request for async processing.
	// Returns false on backpressure.
	EnqueueAnalysis(ctx context.Context, req model.AnalysisRequest) bool

	// Segmentation operations.
	Segment(ctx context.Context, emp model.Employee) (grid.Segmentation, error)
	SegmentBatch(ctx context.Context, emps []model.Employee) ([]grid.Segmentation, map[string]int, error)

	// Employee and role records.
	SaveEmployee(ctx context.Context, emp model.Employee) (model.Employee, error)
	Employee(ctx context.Context, id string) (model.Employee, error)
	SaveRole(ctx context.Context, role model.RoleRequirement) error
	Roles(ctx context.Context) ([]model.RoleRequirement, error)
	Candidates(ctx context.Context, roleName string, minMatch int) ([]gap.Candidate, error)

	// Analysis operations.
	AnalyzeGap(ctx context.Context, employeeID, targetRole string) (repository.AnalysisRecord, error)
	Analysis(ctx context.Context, employeeID string) (repository.AnalysisRecord, error)

	// Readiness, mentorship, and development planning.
	PredictReadiness(ctx context.Context, employeeID string) (readiness.Prediction, error)
	PredictReadinessFeatures(ctx context.Context, features readiness.FeatureVector) (readiness.Prediction, error)
	FindMentors(ctx context.Context, employeeID string, limit int) ([]mentor.Profile, error)
	GeneratePlan(ctx context.Context, employeeID string) (plan.DevelopmentPlan, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	segmentHandler   *SegmentHandler
	employeesHandler *EmployeesHandler
	rolesHandler     *RolesHandler
	analysisHandler  *AnalysisHandler
	readinessHandler *ReadinessHandler
	mentorsHandler   *MentorsHandler
	idpHandler       *IDPHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		segmentHandler:   NewSegmentHandler(deps),
		employeesHandler: NewEmployeesHandler(deps),
		rolesHandler:     NewRolesHandler(deps),
		analysisHandler:  NewAnalysisHandler(deps),
		readinessHandler: NewReadinessHandler(deps),
		mentorsHandler:   NewMentorsHandler(deps),
		idpHandler:       NewIDPHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/segment/batch", MetricsMiddleware(s.segmentHandler.HandleSegmentBatch, "segment_batch"))
	mux.HandleFunc("/segment", MetricsMiddleware(s.segmentHandler.HandleSegment, "segment"))
	mux.HandleFunc("/employees/", MetricsMiddleware(s.employeesHandler.HandleGetEmployee, "employee"))
	mux.HandleFunc("/employees", MetricsMiddleware(s.employeesHandler.HandlePostEmployee, "employees"))
	mux.HandleFunc("/roles", MetricsMiddleware(s.rolesHandler.HandleRoles, "roles"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.rolesHandler.HandleCandidates, "candidates"))
	mux.HandleFunc("/gap-analysis", MetricsMiddleware(s.analysisHandler.HandleGapAnalysis, "gap_analysis"))
	mux.HandleFunc("/analyses/", MetricsMiddleware(s.analysisHandler.HandleGetAnalysis, "analysis"))
	mux.HandleFunc("/analyses", MetricsMiddleware(s.analysisHandler.HandlePostAnalyses, "analyses"))
	mux.HandleFunc("/readiness", MetricsMiddleware(s.readinessHandler.HandleReadiness, "readiness"))
	mux.HandleFunc("/mentors/", MetricsMiddleware(s.mentorsHandler.HandleGetMentors, "mentors"))
	mux.HandleFunc("/idp/", MetricsMiddleware(s.idpHandler.HandlePostIDP, "idp"))
}

type ackResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain sentinel errors to their HTTP
// status; anything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrMissingField), errors.Is(err, model.ErrInvalidField):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, grid.ErrInvalidThresholds):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidID):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, readiness.ErrModelNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "model_not_loaded", Wrap(op, err))
	case errors.Is(err, plan.ErrIncompleteInput):
		writeError(w, http.StatusUnprocessableEntity, "incomplete_input", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
