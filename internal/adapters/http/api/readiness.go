// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/successionai/talentd/internal/domain/readiness"
)

// ReadinessDependencies defines the interface for readiness predictions.
type ReadinessDependencies interface {
	PredictReadiness(ctx context.Context, employeeID string) (readiness.Prediction, error)
	PredictReadinessFeatures(ctx context.Context, features readiness.FeatureVector) (readiness.Prediction, error)
}

// ReadinessHandler handles readiness prediction requests.
type ReadinessHandler struct {
	deps ReadinessDependencies
}

// NewReadinessHandler creates a new readiness handler.
func NewReadinessHandler(deps ReadinessDependencies) *ReadinessHandler {
	return &ReadinessHandler{deps: deps}
}

// readinessRequest mirrors the OpenAPI schema for POST /readiness.
// Either a stored employee ID or an explicit feature vector is accepted.
type readinessRequest struct {
	EmployeeID string                   `json:"employee_id,omitempty"`
	Features   *readiness.FeatureVector `json:"features,omitempty"`
}

func (rr readinessRequest) validate() error {
	if strings.TrimSpace(rr.EmployeeID) == "" && rr.Features == nil {
		return errors.New("either employee_id or features is required")
	}
	return nil
}

// HandleReadiness handles POST /readiness requests.
func (h *ReadinessHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	const op = "api.readiness"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req readinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		pred readiness.Prediction
		err  error
	)
	if req.Features != nil {
		pred, err = h.deps.PredictReadinessFeatures(r.Context(), *req.Features)
	} else {
		pred, err = h.deps.PredictReadiness(r.Context(), req.EmployeeID)
	}
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}
