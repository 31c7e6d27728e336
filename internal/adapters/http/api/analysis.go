// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/successionai/talentd/internal/adapters/repository"
	"github.com/successionai/talentd/internal/domain/dedupe"
	"github.com/successionai/talentd/internal/domain/model"
)

// AnalysisDependencies defines the interface for gap-analysis operations.
type AnalysisDependencies interface {
	dedupe.Deduper
	EnqueueAnalysis(ctx context.Context, req model.AnalysisRequest) bool
	AnalyzeGap(ctx context.Context, employeeID, targetRole string) (repository.AnalysisRecord, error)
	Analysis(ctx context.Context, employeeID string) (repository.AnalysisRecord, error)
}

// AnalysisHandler handles synchronous and asynchronous gap analysis.
type AnalysisHandler struct {
	deps AnalysisDependencies
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps AnalysisDependencies) *AnalysisHandler {
	return &AnalysisHandler{deps: deps}
}

// gapAnalysisRequest mirrors the OpenAPI schema for POST /gap-analysis.
type gapAnalysisRequest struct {
	EmployeeID string `json:"employee_id"`
	TargetRole string `json:"target_role,omitempty"`
}

func (g gapAnalysisRequest) validate() error {
	if strings.TrimSpace(g.EmployeeID) == "" {
		return errors.New("missing employee_id")
	}
	return nil
}

// HandleGapAnalysis handles POST /gap-analysis requests.
func (h *AnalysisHandler) HandleGapAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.gap_analysis"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req gapAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rec, err := h.deps.AnalyzeGap(r.Context(), req.EmployeeID, req.TargetRole)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandlePostAnalyses handles POST /analyses requests. A request without
// an ID gets one assigned; the ID is the idempotency key.
func (h *AnalysisHandler) HandlePostAnalyses(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_analyses"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req model.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.EmployeeID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing employee_id")))
		return
	}
	if strings.TrimSpace(req.RequestID) == "" {
		req.RequestID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.RequestID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", RequestID: req.RequestID, Duplicate: true})
		return
	}

	// Try to enqueue for async processing
	if ok := h.deps.EnqueueAnalysis(r.Context(), req); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.RequestID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", RequestID: req.RequestID, Duplicate: false})
}

// HandleGetAnalysis handles GET /analyses/{employee_id} requests.
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_analysis"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /analyses/
	id := strings.TrimPrefix(r.URL.Path, "/analyses/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	rec, err := h.deps.Analysis(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
