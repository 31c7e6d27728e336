// Package gap compares an employee profile against a success-role
// requirement and quantifies what is missing: skills, assessment score
// deficits, rating deficits, and a readiness verdict.
//
// An optional external scorer may be consulted first; any failure there
// falls back to the deterministic rule engine, so Score never errors.
package gap

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/pkg/logger"
	"github.com/successionai/talentd/pkg/metrics"
)

// Gap statuses.
const (
	StatusEligible = "Eligible"
)

// MaxSkillsPerRecommendation caps how many missing skills one
// recommendation line names.
const MaxSkillsPerRecommendation = 3

// GapDetail records one dimension's employee-versus-required comparison.
type GapDetail struct {
	Employee float64 `json:"employee"`
	Required float64 `json:"required"`
	Status   string  `json:"status"`
}

// Result is the canonical gap-analysis outcome. It always carries
// rating gaps alongside score gaps.
type Result struct {
	MatchedSkills     []string             `json:"matched_skills"`
	MissingSkills     []string             `json:"missing_skills"`
	ScoreGaps         map[string]GapDetail `json:"score_gaps"`
	RatingGaps        map[string]GapDetail `json:"rating_gaps"`
	OverallSkillMatch string               `json:"overall_skill_match"`
	Recommendations   []string             `json:"recommendations"`
	ReadinessLevel    string               `json:"readiness_level"`
}

// ExternalScorer is an optional LLM-backed collaborator. It may fail in
// any way; the caller treats every error as a cue to fall back.
type ExternalScorer interface {
	ScoreGap(ctx context.Context, emp model.Employee, role model.RoleRequirement) (Result, error)
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithExternalScorer wires an LLM-backed scorer to be tried first.
func WithExternalScorer(ext ExternalScorer) Option {
	return func(s *Scorer) {
		s.external = ext
	}
}

// WithSynonyms installs a synonym table for skill matching. Keys are
// required-skill names, values are employee-skill names treated as
// equivalent. Matching is case-insensitive on both sides.
func WithSynonyms(synonyms map[string][]string) Option {
	return func(s *Scorer) {
		s.synonyms = make(map[string][]string, len(synonyms))
		for skill, equivalents := range synonyms {
			lowered := make([]string, 0, len(equivalents))
			for _, eq := range equivalents {
				lowered = append(lowered, strings.ToLower(eq))
			}
			s.synonyms[strings.ToLower(skill)] = lowered
		}
	}
}

// WithLogger overrides the default named logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Scorer) {
		s.log = log
	}
}

// Scorer performs gap analysis. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	external ExternalScorer
	synonyms map[string][]string
	log      logger.Logger
}

// NewScorer creates a gap scorer with configuration options. Logging is
// off unless a logger is injected, so construction needs no logging setup.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score analyzes the employee against the role. The external scorer, if
// configured, is tried first; on any error the deterministic engine
// produces the result instead. Score never returns an error.
func (s *Scorer) Score(ctx context.Context, emp model.Employee, role model.RoleRequirement) Result {
	if s.external != nil {
		result, err := s.external.ScoreGap(ctx, emp, role)
		if err == nil {
			return result
		}
		s.log.Warn(ctx, "external gap scorer failed, using deterministic fallback",
			logger.String("employee_id", emp.ID),
			logger.String("role", role.Role),
			logger.Error(err))
		metrics.RecordLLMFallback("gap_scorer")
	}
	return s.Deterministic(emp, role)
}

// Deterministic runs the rule-based gap analysis. The same inputs always
// produce the same result.
func (s *Scorer) Deterministic(emp model.Employee, role model.RoleRequirement) Result {
	matched, missing := s.matchSkills(emp.Skills, role.RequiredSkills)

	scoreGaps := make(map[string]GapDetail, len(role.RequiredScores))
	for dim, required := range role.RequiredScores {
		scoreGaps[dim] = compareScore(emp.AssessmentScores[dim], required)
	}

	ratingGaps := map[string]GapDetail{
		"performance": compareRating(emp.PerformanceRating, role.MinPerformanceRating),
		"potential":   compareRating(emp.PotentialRating, role.MinPotentialRating),
	}

	recs := recommendations(emp, role, missing, scoreGaps, ratingGaps)

	// The readiness verdict counts genuine gaps, so it is taken before the
	// no-gap placeholder is substituted in.
	readiness := readinessFromCount(len(recs))
	if len(recs) == 0 {
		recs = []string{"Continue current development"}
	}

	return Result{
		MatchedSkills:     matched,
		MissingSkills:     missing,
		ScoreGaps:         scoreGaps,
		RatingGaps:        ratingGaps,
		OverallSkillMatch: matchPercentage(len(matched), len(role.RequiredSkills)),
		Recommendations:   recs,
		ReadinessLevel:    readiness,
	}
}

// Candidate pairs an employee with its rounded skill match against a
// role requirement.
type Candidate struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	MatchPercent int    `json:"match_percent"`
}

// Candidates returns the employees whose skill match against the role
// meets minPercent, sorted descending by match. Ties keep input order.
func (s *Scorer) Candidates(emps []model.Employee, role model.RoleRequirement, minPercent int) []Candidate {
	out := make([]Candidate, 0, len(emps))
	for _, emp := range emps {
		matched, _ := s.matchSkills(emp.Skills, role.RequiredSkills)
		pct := matchPercent(len(matched), len(role.RequiredSkills))
		if pct < minPercent {
			continue
		}
		out = append(out, Candidate{
			EmployeeID:   emp.ID,
			Name:         emp.Name,
			Role:         emp.Role,
			Department:   emp.Department,
			MatchPercent: pct,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercent > out[j].MatchPercent
	})
	return out
}

// matchSkills partitions required skills into matched and missing,
// preserving the required list's order and casing. Matching is a
// case-insensitive set lookup, optionally widened by the synonym table.
func (s *Scorer) matchSkills(employeeSkills, requiredSkills []string) (matched, missing []string) {
	have := make(map[string]bool, len(employeeSkills))
	for _, skill := range employeeSkills {
		have[strings.ToLower(skill)] = true
	}

	matched = make([]string, 0, len(requiredSkills))
	missing = make([]string, 0, len(requiredSkills))
	for _, skill := range requiredSkills {
		if s.hasSkill(have, strings.ToLower(skill)) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

func (s *Scorer) hasSkill(have map[string]bool, required string) bool {
	if have[required] {
		return true
	}
	for _, equivalent := range s.synonyms[required] {
		if have[equivalent] {
			return true
		}
	}
	return false
}

// matchPercentage rounds the matched share to the nearest 5%. An empty
// requirement set counts as a full match.
func matchPercentage(matched, required int) string {
	return strconv.Itoa(matchPercent(matched, required)) + "%"
}

// matchPercent rounds the skill match ratio to the nearest 5 percent.
// No required skills counts as a full match.
func matchPercent(matched, required int) int {
	if required == 0 {
		return 100
	}
	pct := float64(matched) / float64(required) * 100
	return int(math.Round(pct/5)) * 5
}

func compareScore(employee, required float64) GapDetail {
	detail := GapDetail{Employee: employee, Required: required, Status: StatusEligible}
	if employee < required {
		detail.Status = "Gap (-" + formatNumber(required-employee) + ")"
	}
	return detail
}

func compareRating(employee, required float64) GapDetail {
	detail := GapDetail{Employee: employee, Required: required, Status: StatusEligible}
	if employee < required {
		detail.Status = fmt.Sprintf("Gap (-%.1f)", required-employee)
	}
	return detail
}

// formatNumber renders a score difference without a trailing ".0" so
// integer-valued inputs read as integers.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recommendations builds the ordered development list: missing skills
// first, then score gaps in sorted dimension order, then rating gaps
// (performance before potential), then experience shortfall.
func recommendations(emp model.Employee, role model.RoleRequirement, missing []string, scoreGaps, ratingGaps map[string]GapDetail) []string {
	var recs []string

	if len(missing) > 0 {
		head := missing
		if len(head) > MaxSkillsPerRecommendation {
			head = head[:MaxSkillsPerRecommendation]
		}
		recs = append(recs, "Develop skills: "+strings.Join(head, ", "))
	}

	dims := make([]string, 0, len(scoreGaps))
	for dim := range scoreGaps {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		detail := scoreGaps[dim]
		if detail.Status != StatusEligible {
			recs = append(recs, fmt.Sprintf("Improve %s assessment score by %s points", dim, formatNumber(detail.Required-detail.Employee)))
		}
	}

	for _, axis := range []string{"performance", "potential"} {
		detail := ratingGaps[axis]
		if detail.Status != StatusEligible {
			recs = append(recs, fmt.Sprintf("Improve %s rating by %.1f points", axis, detail.Required-detail.Employee))
		}
	}

	if emp.ExperienceYears < role.RequiredExperience {
		recs = append(recs, fmt.Sprintf("Gain %d more years of relevant experience", role.RequiredExperience-emp.ExperienceYears))
	}

	return recs
}

func readinessFromCount(gaps int) string {
	switch {
	case gaps == 0:
		return model.ReadinessReady
	case gaps <= 2:
		return model.ReadinessDeveloping
	default:
		return model.ReadinessNotReady
	}
}
