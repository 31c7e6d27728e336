package model

import (
	"fmt"
	"strings"
)

// EmployeePayload mirrors the JSON schema accepted at the boundary.
// Ratings are pointers so an absent field is distinguishable from zero;
// parsing is the single validation step for untyped inbound data.
type EmployeePayload struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Role              string             `json:"role"`
	Department        string             `json:"department"`
	Skills            []string           `json:"skills"`
	AssessmentScores  map[string]float64 `json:"assessment_scores"`
	PerformanceRating *float64           `json:"performance_rating"`
	PotentialRating   *float64           `json:"potential_rating"`
	ExperienceYears   int                `json:"experience_years"`
	TargetRole        string             `json:"target_role"`
}

// RolePayload mirrors the JSON schema for success-role records.
type RolePayload struct {
	Role                 string             `json:"role"`
	RequiredSkills       []string           `json:"required_skills"`
	RequiredExperience   int                `json:"required_experience"`
	MinPerformanceRating float64            `json:"min_performance_rating"`
	MinPotentialRating   float64            `json:"min_potential_rating"`
	RequiredScores       map[string]float64 `json:"required_scores"`
}

// ParseEmployee validates an inbound payload and produces a typed Employee.
// Missing required fields surface as ErrMissingField; validation failures
// are caller bugs and are never defaulted away.
func ParseEmployee(p EmployeePayload) (Employee, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Employee{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if p.PerformanceRating == nil {
		return Employee{}, fmt.Errorf("%w: performance_rating", ErrMissingField)
	}
	if p.PotentialRating == nil {
		return Employee{}, fmt.Errorf("%w: potential_rating", ErrMissingField)
	}
	if p.ExperienceYears < 0 {
		return Employee{}, fmt.Errorf("%w: experience_years must be non-negative", ErrInvalidField)
	}

	scores := make(map[string]float64, len(p.AssessmentScores))
	for dim, score := range p.AssessmentScores {
		scores[dim] = score
	}

	return Employee{
		ID:                p.ID,
		Name:              p.Name,
		Role:              p.Role,
		Department:        p.Department,
		Skills:            append([]string(nil), p.Skills...),
		AssessmentScores:  scores,
		PerformanceRating: *p.PerformanceRating,
		PotentialRating:   *p.PotentialRating,
		ExperienceYears:   p.ExperienceYears,
		TargetRole:        p.TargetRole,
	}, nil
}

// ParseRole validates an inbound role payload.
func ParseRole(p RolePayload) (RoleRequirement, error) {
	if strings.TrimSpace(p.Role) == "" {
		return RoleRequirement{}, fmt.Errorf("%w: role", ErrMissingField)
	}

	scores := make(map[string]float64, len(p.RequiredScores))
	for dim, score := range p.RequiredScores {
		scores[dim] = score
	}

	return RoleRequirement{
		Role:                 p.Role,
		RequiredSkills:       append([]string(nil), p.RequiredSkills...),
		RequiredExperience:   p.RequiredExperience,
		MinPerformanceRating: p.MinPerformanceRating,
		MinPotentialRating:   p.MinPotentialRating,
		RequiredScores:       scores,
	}, nil
}
