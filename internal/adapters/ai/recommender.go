package ai

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/plan"
	"github.com/successionai/talentd/pkg/logger"
)

//go:embed recs_prompt.md
var recsPromptTemplate string

//go:embed resources_prompt.md
var resourcesPromptTemplate string

// Recommender asks the model for development-plan enrichments: skill
// recommendations and learning resources. Both calls return errors for
// the caller to absorb; the plan assembler works with whatever subset
// succeeded.
type Recommender struct {
	generator contentGenerator
	log       logger.Logger
	timeout   time.Duration
}

// NewRecommender creates an LLM-backed plan enricher. Each model call
// is bounded by the configured timeout.
func NewRecommender(generator contentGenerator, opts ...Option) *Recommender {
	cfg := newSettings(opts...)
	return &Recommender{
		generator: generator,
		log:       cfg.log,
		timeout:   cfg.timeout,
	}
}

// SkillRecommendations proposes development items from the employee
// profile and its gap analysis.
func (r *Recommender) SkillRecommendations(ctx context.Context, emp model.Employee, gapResult gap.Result) ([]plan.SkillRecommendation, error) {
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
		return nil, fmt.Errorf("marshal employee payload: %w", err)
	}
	gapJSON, err := json.Marshal(gapResult)
	if err != nil {
		return nil, fmt.Errorf("marshal gap payload: %w", err)
	}

	prompt := strings.ReplaceAll(recsPromptTemplate, "{{EMPLOYEE_JSON}}", string(empJSON))
	prompt = strings.ReplaceAll(prompt, "{{GAP_JSON}}", string(gapJSON))

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Skills []plan.SkillRecommendation `json:"skills"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(parsed.Skills) == 0 {
		return nil, fmt.Errorf("%w: no skills", ErrMalformedResponse)
	}

	r.log.Debug(ctx, "skill recommendations received",
		logger.String("employee", emp.Name),
		logger.Int("count", len(parsed.Skills)))
	return parsed.Skills, nil
}

// LearningResources finds external courses and references for the given
// skills and target role.
func (r *Recommender) LearningResources(ctx context.Context, skills []string, targetRole string, maxResults int) ([]plan.LearningResource, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	prompt := strings.ReplaceAll(resourcesPromptTemplate, "{{MAX_RESULTS}}", strconv.Itoa(maxResults))
	prompt = strings.ReplaceAll(prompt, "{{TARGET_ROLE}}", targetRole)
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", strings.Join(skills, ", "))

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Resources []plan.LearningResource `json:"resources"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(parsed.Resources) > maxResults {
		parsed.Resources = parsed.Resources[:maxResults]
	}
	return parsed.Resources, nil
}
