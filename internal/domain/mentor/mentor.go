// Package mentor ranks senior employees as mentor candidates for a
// given employee, by department alignment and skill complementarity.
package mentor

import (
	"math"
	"sort"
	"strings"

	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/pkg/metrics"
)

// DefaultMaxResults caps the ranked list when the caller passes no
// explicit limit.
const DefaultMaxResults = 3

// Scoring weights: department alignment dominates, skill complement
// fills in the rest.
const (
	departmentWeight = 0.6
	skillWeight      = 0.4
)

// seniorKeywords mark a role title as mentor-eligible, matched as
// case-insensitive substrings.
var seniorKeywords = []string{"senior", "lead", "principal", "manager", "director"}

// Profile is one ranked mentor candidate. MatchingSkills lists what the
// mentor could teach: their skills the employee does not yet hold.
type Profile struct {
	EmployeeID      string   `json:"employee_id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Department      string   `json:"department"`
	Skills          []string `json:"skills"`
	SimilarityScore float64  `json:"similarity_score"`
	MatchingSkills  []string `json:"matching_skills"`
}

// Rank scores the candidate pool and returns the top maxResults
// mentors, best first. The employee itself is never a candidate, only
// senior roles qualify, and ties keep the pool's original order. A
// non-positive maxResults falls back to DefaultMaxResults.
//
// Rank is fail-soft: it never errors, at worst it returns an empty
// list.
func Rank(emp model.Employee, pool []model.Employee, maxResults int) []Profile {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	empDept := strings.ToLower(strings.TrimSpace(emp.Department))
	empSkills := make(map[string]bool, len(emp.Skills))
	for _, skill := range emp.Skills {
		empSkills[strings.ToLower(skill)] = true
	}

	profiles := make([]Profile, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == emp.ID {
			continue
		}
		if !isSenior(candidate.Role) {
			continue
		}

		var matching []string
		for _, skill := range candidate.Skills {
			if skill != "" && !empSkills[strings.ToLower(skill)] {
				matching = append(matching, skill)
			}
		}

		skillScore := 0.0
		if len(candidate.Skills) > 0 {
			skillScore = float64(len(matching)) / float64(len(candidate.Skills))
		}

		score := skillWeight * skillScore
		if empDept != "" && strings.ToLower(strings.TrimSpace(candidate.Department)) == empDept {
			score += departmentWeight
		}
		score = round3(min(1.0, score))

		profiles = append(profiles, Profile{
			EmployeeID:      candidate.ID,
			Name:            candidate.Name,
			Role:            candidate.Role,
			Department:      candidate.Department,
			Skills:          append([]string(nil), candidate.Skills...),
			SimilarityScore: score,
			MatchingSkills:  matching,
		})
	}

	// Stable sort keeps insertion order between equal scores.
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].SimilarityScore > profiles[j].SimilarityScore
	})

	if len(profiles) > maxResults {
		profiles = profiles[:maxResults]
	}

	metrics.RecordMentorLookup()
	return profiles
}

func isSenior(role string) bool {
	lowered := strings.ToLower(role)
	for _, keyword := range seniorKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
