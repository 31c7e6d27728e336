// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/successionai/talentd/internal/domain/mentor"
)

// MentorDependencies defines the interface for mentor lookups.
type MentorDependencies interface {
	FindMentors(ctx context.Context, employeeID string, limit int) ([]mentor.Profile, error)
}

// MentorsHandler handles mentor suggestion requests.
type MentorsHandler struct {
	deps MentorDependencies
}

// NewMentorsHandler creates a new mentors handler.
func NewMentorsHandler(deps MentorDependencies) *MentorsHandler {
	return &MentorsHandler{deps: deps}
}

// HandleGetMentors handles GET /mentors/{employee_id}?limit=N requests.
func (h *MentorsHandler) HandleGetMentors(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_mentors"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /mentors/
	id := strings.TrimPrefix(r.URL.Path, "/mentors/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	limit := mentor.DefaultMaxResults
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	profiles, err := h.deps.FindMentors(r.Context(), id, limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}
