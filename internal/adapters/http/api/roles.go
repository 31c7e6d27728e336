// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/model"
)

// Default minimum skill match for candidate queries.
const defaultMinMatch = 50

// RoleDependencies defines the interface for success-role operations.
type RoleDependencies interface {
	SaveRole(ctx context.Context, role model.RoleRequirement) error
	Roles(ctx context.Context) ([]model.RoleRequirement, error)
	Candidates(ctx context.Context, roleName string, minMatch int) ([]gap.Candidate, error)
}

// RolesHandler handles success-role requests.
type RolesHandler struct {
	deps RoleDependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RoleDependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

// HandleRoles handles GET /roles and POST /roles requests.
func (h *RolesHandler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	const op = "api.roles"
	switch r.Method {
	case http.MethodGet:
		roles, err := h.deps.Roles(r.Context())
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, roles)
	case http.MethodPost:
		var payload model.RolePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		role, err := model.ParseRole(payload)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		if err := h.deps.SaveRole(r.Context(), role); err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, role)
	default:
		http.NotFound(w, r)
	}
}

// HandleCandidates handles GET /candidates?role=NAME&min_match=N requests.
func (h *RolesHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.candidates"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	roleName := strings.TrimSpace(r.URL.Query().Get("role"))
	if roleName == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	minMatch := defaultMinMatch
	if raw := r.URL.Query().Get("min_match"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		minMatch = n
	}
	candidates, err := h.deps.Candidates(r.Context(), roleName, minMatch)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
