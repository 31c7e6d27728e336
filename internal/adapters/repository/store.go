// Package repository defines the succession document store interface
// and errors.
package repository

import (
	"context"
	"time"

	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/plan"
)

// AnalysisRecord is the persisted outcome of one gap analysis. One
// active record per employee; updates are last-write-wins.
type AnalysisRecord struct {
	EmployeeID  string     `json:"employee_id"`
	TargetRole  string     `json:"target_role"`
	GeneratedAt time.Time  `json:"generated_at"`
	Gap         gap.Result `json:"gap_analysis"`
	Readiness   string     `json:"readiness,omitempty"`
}

// Store provides read/write access to employee, role, analysis, and
// plan documents.
type Store interface {
	// PutEmployee upserts an employee record keyed by ID.
	PutEmployee(ctx context.Context, emp model.Employee) error
	// GetEmployee returns the employee with the given ID.
	// Returns ErrNotFound if the employee is unknown.
	GetEmployee(ctx context.Context, id string) (model.Employee, error)
	// ListEmployees returns all employees ordered by ID.
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	// DeleteEmployee removes an employee and its dependent analysis and
	// plan records. Deleting an unknown ID is not an error.
	DeleteEmployee(ctx context.Context, id string) error

	// PutRole upserts a success-role requirement keyed by role name.
	PutRole(ctx context.Context, role model.RoleRequirement) error
	// GetRole returns the requirement for a role name.
	// Returns ErrNotFound if the role is unknown.
	GetRole(ctx context.Context, name string) (model.RoleRequirement, error)
	// ListRoles returns all role requirements ordered by name.
	ListRoles(ctx context.Context) ([]model.RoleRequirement, error)

	// PutAnalysis replaces the employee's active analysis record.
	PutAnalysis(ctx context.Context, rec AnalysisRecord) error
	// GetAnalysis returns the employee's active analysis record.
	// Returns ErrNotFound when none was stored.
	GetAnalysis(ctx context.Context, employeeID string) (AnalysisRecord, error)

	// PutPlan replaces the employee's active development plan.
	PutPlan(ctx context.Context, p plan.DevelopmentPlan) error
	// GetPlan returns the employee's active development plan.
	// Returns ErrNotFound when none was stored.
	GetPlan(ctx context.Context, employeeID string) (plan.DevelopmentPlan, error)

	// Count returns the number of employee records tracked.
	Count(ctx context.Context) int
}
