// Package plan assembles individual development plans from the scoring
// components' outputs: gap analysis, readiness, mentors, and externally
// sourced learning resources.
package plan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/mentor"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/pkg/metrics"
)

// Skill recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Milestone horizons in months.
const (
	nearTermMonth = 3
	midTermMonth  = 6
	longTermMonth = 12
)

// SkillRecommendation is one development item in a plan.
type SkillRecommendation struct {
	Skill    string `json:"skill"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
	Timeline string `json:"timeline"`
}

// LearningResource is an externally sourced course or reference.
type LearningResource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Provider    string `json:"provider"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Milestone is one time-boxed checkpoint in a plan.
type Milestone struct {
	Month int      `json:"month"`
	Focus []string `json:"focus"`
	Goal  string   `json:"goal"`
}

// DevelopmentPlan is the assembled IDP for one employee.
type DevelopmentPlan struct {
	EmployeeID           string                `json:"employee_id"`
	EmployeeName         string                `json:"employee_name"`
	CurrentRole          string                `json:"current_role"`
	TargetRole           string                `json:"target_role"`
	Readiness            string                `json:"readiness"`
	SkillRecommendations []SkillRecommendation `json:"skill_recommendations"`
	LearningResources    []LearningResource    `json:"learning_resources"`
	Mentors              []mentor.Profile      `json:"mentors"`
	Milestones           []Milestone           `json:"milestones"`
	GeneratedAt          time.Time             `json:"generated_at"`
}

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// Assembler composes development plans. Assembly is pure apart from the
// generation timestamp.
type Assembler struct {
	now func() time.Time
}

// NewAssembler creates a plan assembler with configuration options.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds a development plan from the upstream results. The
// target role is the one the gap analysis was run against; when empty,
// the career-ladder suggestion stands in. The resource and mentor
// collaborators may legitimately have produced nothing; the employee
// identity and readiness verdict may not.
func (a *Assembler) Assemble(emp model.Employee, targetRole, readinessLabel string, recs []SkillRecommendation, resources []LearningResource, mentors []mentor.Profile) (DevelopmentPlan, error) {
	if strings.TrimSpace(emp.Name) == "" {
		return DevelopmentPlan{}, fmt.Errorf("%w: employee name", ErrIncompleteInput)
	}
	if strings.TrimSpace(readinessLabel) == "" {
		return DevelopmentPlan{}, fmt.Errorf("%w: readiness", ErrIncompleteInput)
	}
	if strings.TrimSpace(targetRole) == "" {
		targetRole = model.SuggestTargetRole(emp)
	}

	p := DevelopmentPlan{
		EmployeeID:           emp.ID,
		EmployeeName:         emp.Name,
		CurrentRole:          emp.Role,
		TargetRole:           targetRole,
		Readiness:            readinessLabel,
		SkillRecommendations: append([]SkillRecommendation(nil), recs...),
		LearningResources:    append([]LearningResource(nil), resources...),
		Mentors:              append([]mentor.Profile(nil), mentors...),
		Milestones:           milestones(recs),
		GeneratedAt:          a.now(),
	}

	metrics.RecordPlanGenerated()
	return p, nil
}

// milestones groups skills into the three fixed checkpoints: near term
// works on high-priority skills only, the later two cover everything.
func milestones(recs []SkillRecommendation) []Milestone {
	all := make([]string, 0, len(recs))
	high := make([]string, 0, len(recs))
	for _, rec := range recs {
		all = append(all, rec.Skill)
		if rec.Priority == PriorityHigh {
			high = append(high, rec.Skill)
		}
	}

	return []Milestone{
		{Month: nearTermMonth, Focus: high, Goal: "Complete initial courses"},
		{Month: midTermMonth, Focus: all, Goal: "Apply learned skills"},
		{Month: longTermMonth, Focus: all, Goal: "Evaluate readiness for next role"},
	}
}

// FallbackRecommendations derives skill recommendations from a gap
// analysis when no external recommender is available. Missing skills
// come first as high priority, then assessment deficits in sorted
// dimension order.
func FallbackRecommendations(role model.RoleRequirement, result gap.Result) []SkillRecommendation {
	recs := make([]SkillRecommendation, 0, len(result.MissingSkills)+len(result.ScoreGaps))

	for _, skill := range result.MissingSkills {
		recs = append(recs, SkillRecommendation{
			Skill:    skill,
			Priority: PriorityHigh,
			Reason:   fmt.Sprintf("Required for %s but not yet held", role.Role),
			Timeline: "3-6 months",
		})
	}

	dims := make([]string, 0, len(result.ScoreGaps))
	for dim := range result.ScoreGaps {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		detail := result.ScoreGaps[dim]
		if detail.Status == gap.StatusEligible {
			continue
		}
		recs = append(recs, SkillRecommendation{
			Skill:    capitalize(dim),
			Priority: PriorityMedium,
			Reason:   fmt.Sprintf("Assessment score below the %s requirement", role.Role),
			Timeline: "6-12 months",
		})
	}

	return recs
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
