package ai

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/pkg/logger"
)

//go:embed gap_prompt.md
var gapPromptTemplate string

// contentGenerator abstracts the Gemini client for testing.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GapScorer implements gap.ExternalScorer on top of a content
// generator. Every failure mode returns an error; the gap engine owns
// the fallback.
type GapScorer struct {
	generator contentGenerator
	log       logger.Logger
	timeout   time.Duration
}

// NewGapScorer creates an LLM-backed gap scorer. Each model call is
// bounded by the configured timeout; a hung model surfaces as an error
// the gap engine converts into its deterministic fallback.
func NewGapScorer(generator contentGenerator, opts ...Option) *GapScorer {
	cfg := newSettings(opts...)
	return &GapScorer{
		generator: generator,
		log:       cfg.log,
		timeout:   cfg.timeout,
	}
}

// employeePrompt mirrors what the model needs to see; store-internal
// fields like the last computed segment stay out of the prompt.
type employeePrompt struct {
	Name              string             `json:"name"`
	Role              string             `json:"role"`
	Skills            []string           `json:"skills"`
	AssessmentScores  map[string]float64 `json:"assessment_scores"`
	PerformanceRating float64            `json:"performance_rating"`
	PotentialRating   float64            `json:"potential_rating"`
	ExperienceYears   int                `json:"experience_years"`
}

type rolePrompt struct {
	Role                 string             `json:"role"`
	RequiredSkills       []string           `json:"required_skills"`
	RequiredExperience   int                `json:"required_experience"`
	MinPerformanceRating float64            `json:"min_performance_rating"`
	MinPotentialRating   float64            `json:"min_potential_rating"`
	RequiredScores       map[string]float64 `json:"required_scores"`
}

// ScoreGap asks the model for a gap analysis and parses its JSON reply.
func (s *GapScorer) ScoreGap(ctx context.Context, emp model.Employee, role model.RoleRequirement) (gap.Result, error) {
	empJSON, err := json.Marshal(employeePrompt{
		Name:              emp.Name,
		Role:              emp.Role,
		Skills:            emp.Skills,
		AssessmentScores:  emp.AssessmentScores,
		PerformanceRating: emp.PerformanceRating,
		PotentialRating:   emp.PotentialRating,
		ExperienceYears:   emp.ExperienceYears,
	})
	if err != nil {
		return gap.Result{}, fmt.Errorf("marshal employee payload: %w", err)
	}

	roleJSON, err := json.Marshal(rolePrompt{
		Role:                 role.Role,
		RequiredSkills:       role.RequiredSkills,
		RequiredExperience:   role.RequiredExperience,
		MinPerformanceRating: role.MinPerformanceRating,
		MinPotentialRating:   role.MinPotentialRating,
		RequiredScores:       role.RequiredScores,
	})
	if err != nil {
		return gap.Result{}, fmt.Errorf("marshal role payload: %w", err)
	}

	prompt := strings.ReplaceAll(gapPromptTemplate, "{{EMPLOYEE_JSON}}", string(empJSON))
	prompt = strings.ReplaceAll(prompt, "{{ROLE_JSON}}", string(roleJSON))

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		return gap.Result{}, err
	}

	s.log.Debug(ctx, "gap scorer response received",
		logger.String("employee", emp.Name),
		logger.String("role", role.Role),
		logger.Int("response_length", len(raw)))

	result, err := parseGapResult(raw)
	if err != nil {
		return gap.Result{}, err
	}
	return result, nil
}

// parseGapResult decodes the model reply and rejects structurally
// incomplete results so the caller falls back instead of persisting
// half an analysis.
func parseGapResult(raw string) (gap.Result, error) {
	var result gap.Result
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return gap.Result{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	switch result.ReadinessLevel {
	case model.ReadinessReady, model.ReadinessDeveloping, model.ReadinessNotReady:
	default:
		return gap.Result{}, fmt.Errorf("%w: unknown readiness level %q", ErrMalformedResponse, result.ReadinessLevel)
	}
	if strings.TrimSpace(result.OverallSkillMatch) == "" {
		return gap.Result{}, fmt.Errorf("%w: missing overall_skill_match", ErrMalformedResponse)
	}
	if len(result.Recommendations) == 0 {
		return gap.Result{}, fmt.Errorf("%w: missing recommendations", ErrMalformedResponse)
	}

	return result, nil
}

// extractJSON strips markdown code fences some models wrap around JSON.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
