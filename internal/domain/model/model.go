// Package model contains domain models passed between layers.
package model

// Employee is a read-only snapshot of an employee record. The core never
// mutates it; computed results (segment, readiness) are written back as
// new records for the store.
type Employee struct {
	ID                string             `json:"id"` // opaque store identifier
	Name              string             `json:"name"`
	Role              string             `json:"role"` // current role title
	Department        string             `json:"department"`
	Skills            []string           `json:"skills"`             // compared case-insensitively
	AssessmentScores  map[string]float64 `json:"assessment_scores"`  // dimension -> score, 0-100
	PerformanceRating float64            `json:"performance_rating"` // 0.0-5.0
	PotentialRating   float64            `json:"potential_rating"`   // 0.0-5.0
	ExperienceYears   int                `json:"experience_years"`
	TargetRole        string             `json:"target_role,omitempty"` // optional succession target
	Segment           string             `json:"segment,omitempty"`     // last computed segment label, if any
	Readiness         string             `json:"readiness,omitempty"`   // last computed readiness label, if any
}

// RoleRequirement describes what a success role demands of a candidate.
type RoleRequirement struct {
	Role                 string             `json:"role"`
	RequiredSkills       []string           `json:"required_skills"`
	RequiredExperience   int                `json:"required_experience"`
	MinPerformanceRating float64            `json:"min_performance_rating"`
	MinPotentialRating   float64            `json:"min_potential_rating"`
	RequiredScores       map[string]float64 `json:"required_scores"` // dimension -> minimum score
}

// RoleSuggestions maps a current role to a plausible next role, used when
// an employee record carries no target role.
var RoleSuggestions = map[string]string{
	"Research Associate": "Senior Developer",
	"Software Engineer":  "Technical Lead",
	"Data Analyst":       "Data Science Manager",
	"Project Manager":    "Product Manager",
	"HR Specialist":      "HR Manager",
	"Quality Analyst":    "Quality Assurance Lead",
}

// DefaultTargetRole is suggested when the current role is unknown.
const DefaultTargetRole = "Senior Developer"

// AnalysisRequest is an asynchronous gap-analysis job submission. The
// request ID is the idempotency key for batch submissions.
type AnalysisRequest struct {
	RequestID  string `json:"request_id"`
	EmployeeID string `json:"employee_id"`
	TargetRole string `json:"target_role,omitempty"` // empty means suggest from the employee record
}

// Readiness labels shared by the gap fallback and the readiness model.
const (
	ReadinessReady      = "Ready"
	ReadinessDeveloping = "Developing"
	ReadinessNotReady   = "Not Ready"
)

// SuggestTargetRole resolves the target role for an employee, falling back
// to the per-role suggestion table when the record has none.
func SuggestTargetRole(e Employee) string {
	if e.TargetRole != "" {
		return e.TargetRole
	}
	if suggested, ok := RoleSuggestions[e.Role]; ok {
		return suggested
	}
	return DefaultTargetRole
}
