// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/successionai/talentd/internal/domain/grid"
	"github.com/successionai/talentd/internal/domain/model"
)

// SegmentDependencies defines the interface for segmentation operations.
type SegmentDependencies interface {
	Segment(ctx context.Context, emp model.Employee) (grid.Segmentation, error)
	SegmentBatch(ctx context.Context, emps []model.Employee) ([]grid.Segmentation, map[string]int, error)
}

// SegmentHandler handles nine-box segmentation requests.
type SegmentHandler struct {
	deps SegmentDependencies
}

// NewSegmentHandler creates a new segmentation handler.
func NewSegmentHandler(deps SegmentDependencies) *SegmentHandler {
	return &SegmentHandler{deps: deps}
}

// HandleSegment handles POST /segment requests.
func (h *SegmentHandler) HandleSegment(w http.ResponseWriter, r *http.Request) {
	const op = "api.segment"
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
	seg, err := h.deps.Segment(r.Context(), emp)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

// batchSegmentResponse mirrors the OpenAPI schema for POST /segment/batch.
type batchSegmentResponse struct {
	Segments []grid.Segmentation `json:"segments"`
	Summary  map[string]int      `json:"summary"`
}

// HandleSegmentBatch handles POST /segment/batch requests.
func (h *SegmentHandler) HandleSegmentBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.segment_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var payloads []model.EmployeePayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	emps := make([]model.Employee, 0, len(payloads))
	for _, payload := range payloads {
		emp, err := model.ParseEmployee(payload)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		emps = append(emps, emp)
	}
	segments, summary, err := h.deps.SegmentBatch(r.Context(), emps)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, batchSegmentResponse{Segments: segments, Summary: summary})
}
