// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/successionai/talentd/internal/domain/model"
)

// EmployeeDependencies defines the interface for employee record operations.
type EmployeeDependencies interface {
	SaveEmployee(ctx context.Context, emp model.Employee) (model.Employee, error)
	Employee(ctx context.Context, id string) (model.Employee, error)
}

// EmployeesHandler handles employee record requests.
type EmployeesHandler struct {
	deps EmployeeDependencies
}

// NewEmployeesHandler creates a new employees handler.
func NewEmployeesHandler(deps EmployeeDependencies) *EmployeesHandler {
	return &EmployeesHandler{deps: deps}
}

// HandlePostEmployee handles POST /employees requests. A payload without
// an ID gets one assigned; resubmitting an ID upserts the record.
func (h *EmployeesHandler) HandlePostEmployee(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_employee"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var payload model.EmployeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	emp, err := model.ParseEmployee(payload)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	stored, err := h.deps.SaveEmployee(r.Context(), emp)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// HandleGetEmployee handles GET /employees/{id} requests.
func (h *EmployeesHandler) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_employee"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /employees/
	id := strings.TrimPrefix(r.URL.Path, "/employees/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	emp, err := h.deps.Employee(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}
