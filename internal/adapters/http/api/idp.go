// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/successionai/talentd/internal/domain/plan"
)

// IDPDependencies defines the interface for development plan generation.
type IDPDependencies interface {
	GeneratePlan(ctx context.Context, employeeID string) (plan.DevelopmentPlan, error)
}

// IDPHandler handles individual development plan requests.
type IDPHandler struct {
	deps IDPDependencies
}

// NewIDPHandler creates a new development plan handler.
func NewIDPHandler(deps IDPDependencies) *IDPHandler {
	return &IDPHandler{deps: deps}
}

// HandlePostIDP handles POST /idp/{employee_id} requests. A stored plan
// is returned as-is; otherwise a fresh one is assembled and persisted.
func (h *IDPHandler) HandlePostIDP(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_idp"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /idp/
	id := strings.TrimPrefix(r.URL.Path, "/idp/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	p, err := h.deps.GeneratePlan(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
