package seed

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"strconv"

	"github.com/successionai/talentd/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 8
	ratingPrecision    = 10
)

// Constants for rating generation ranges.
const (
	solidMin      = 3.0
	solidRange    = 1.0
	starMin       = 4.0
	starRange     = 1.0
	strugglerMin  = 1.0
	strugglerMax  = 5.0
	strugglerSpan = 2.5
	wideMin       = 1.0
	wideSpan      = 4.0
)

// Constants for performance profile cases.
const (
	caseSolidPerformer = 0
	caseStarPerformer  = 1
	caseStruggler      = 2
	caseHighPotential  = 3
	caseWorkhorse      = 4
	caseWideRange      = 5
	caseNewHire        = 6
	caseVeteran        = 7
)

// Experience ranges per profile.
const (
	newHireMaxYears = 2
	veteranMinYears = 10
	veteranYearSpan = 10
	defaultYearSpan = 8
)

// roleCatalog is the fixed set of success roles posted before employees.
// Each current role in the employee pool has a suggested next role here so
// analyses with an omitted target still resolve.
var roleCatalog = []RoleDoc{
	{
		Role:                 "Technical Lead",
		RequiredSkills:       []string{"Go", "SQL", "Kubernetes", "Mentoring", "System Design"},
		RequiredExperience:   5,
		MinPerformanceRating: 4.0,
		MinPotentialRating:   3.5,
		RequiredScores:       map[string]float64{"technical": 80, "communication": 75, "leadership": 75},
	},
	{
		Role:                 "Senior Developer",
		RequiredSkills:       []string{"Go", "SQL", "Testing", "Code Review"},
		RequiredExperience:   4,
		MinPerformanceRating: 3.5,
		MinPotentialRating:   3.0,
		RequiredScores:       map[string]float64{"technical": 78, "communication": 70},
	},
	{
		Role:                 "Data Science Manager",
		RequiredSkills:       []string{"Python", "Machine Learning", "Statistics", "Mentoring"},
		RequiredExperience:   6,
		MinPerformanceRating: 4.0,
		MinPotentialRating:   4.0,
		RequiredScores:       map[string]float64{"technical": 80, "leadership": 78},
	},
	{
		Role:                 "Product Manager",
		RequiredSkills:       []string{"Roadmapping", "Stakeholder Management", "Analytics"},
		RequiredExperience:   5,
		MinPerformanceRating: 3.5,
		MinPotentialRating:   4.0,
		RequiredScores:       map[string]float64{"communication": 82, "leadership": 75},
	},
	{
		Role:                 "HR Manager",
		RequiredSkills:       []string{"Recruiting", "Employee Relations", "Coaching"},
		RequiredExperience:   5,
		MinPerformanceRating: 3.5,
		MinPotentialRating:   3.5,
		RequiredScores:       map[string]float64{"communication": 80, "leadership": 75},
	},
}

// currentRoles are the roles employees are generated into, with the skill
// pools they draw from.
var currentRoles = []struct {
	role       string
	department string
	skills     []string
}{
	{"Software Engineer", "Engineering", []string{"Go", "SQL", "Kubernetes", "Testing", "System Design", "Code Review"}},
	{"Data Analyst", "Data", []string{"Python", "SQL", "Statistics", "Machine Learning", "Visualization"}},
	{"Project Manager", "Product", []string{"Roadmapping", "Stakeholder Management", "Analytics", "Agile"}},
	{"HR Specialist", "People", []string{"Recruiting", "Employee Relations", "Coaching", "Onboarding"}},
	{"Quality Analyst", "Engineering", []string{"Testing", "Automation", "SQL", "Code Review"}},
}

var firstNames = []string{
	"Alice", "Bruno", "Carmen", "Dev", "Elena", "Farid", "Grace", "Hiro",
	"Imani", "Jonas", "Kira", "Luca", "Mara", "Noel", "Omar", "Priya",
	"Quinn", "Rosa", "Sven", "Tara",
}

var lastNames = []string{
	"Chen", "Dubois", "Eriksson", "Flores", "Gupta", "Hassan", "Ivanov",
	"Jensen", "Kowalski", "Lopez", "Moreau", "Nakamura", "Okafor", "Park",
	"Quispe", "Rossi", "Silva", "Tanaka",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pickIndex returns a random index in [0, n) using crypto/rand.
func pickIndex(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateDataset creates the role catalog plus the requested number of
// synthetic employees spread across performance profiles.
func generateDataset(ctx context.Context, config *Config, stats *Stats) (*Dataset, error) {
	logger.Get().Info(ctx, "generating seed dataset", logger.Int("numEmployees", config.NumEmployees))

	employees := make([]EmployeeDoc, config.NumEmployees)
	for i := 0; i < config.NumEmployees; i++ {
		employees[i] = generateEmployee(i)
	}

	stats.EmployeesGenerated = len(employees)
	logger.Get().Info(ctx, "generated employees", logger.Int("count", len(employees)))

	return &Dataset{Roles: roleCatalog, Employees: employees}, nil
}

// generateEmployee creates a single synthetic employee record.
func generateEmployee(index int) EmployeeDoc {
	base := currentRoles[pickIndex(len(currentRoles))]
	perf, pot, years := generateRatings()

	// Subset of the role's skill pool, at least two skills.
	skillCount := 2 + pickIndex(len(base.skills)-1)
	skills := make([]string, 0, skillCount)
	for _, s := range base.skills {
		if len(skills) >= skillCount {
			break
		}
		skills = append(skills, s)
	}

	name := firstNames[pickIndex(len(firstNames))] + " " + lastNames[pickIndex(len(lastNames))]

	return EmployeeDoc{
		ID:                "seed-" + strconv.Itoa(index),
		Name:              name,
		Role:              base.role,
		Department:        base.department,
		Skills:            skills,
		AssessmentScores:  generateScores(perf),
		PerformanceRating: &perf,
		PotentialRating:   &pot,
		ExperienceYears:   years,
	}
}

// generateRatings produces a performance/potential pair plus experience
// years with a varied distribution across nine-box segments.
func generateRatings() (performance, potential float64, years int) {
	profile, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))
	switch profile.Int64() {
	case caseSolidPerformer:
		// Middle of the grid, the most common shape
		performance = solidMin + getRandomFloat()*solidRange
		potential = solidMin + getRandomFloat()*solidRange
		years = 2 + pickIndex(defaultYearSpan)
	case caseStarPerformer:
		// High on both axes
		performance = starMin + getRandomFloat()*starRange
		potential = starMin + getRandomFloat()*starRange
		years = 3 + pickIndex(defaultYearSpan)
	case caseStruggler:
		// Low on both axes
		performance = strugglerMin + getRandomFloat()*strugglerSpan
		potential = strugglerMin + getRandomFloat()*strugglerSpan
		years = pickIndex(defaultYearSpan)
	case caseHighPotential:
		// Low performance today, high ceiling
		performance = strugglerMin + getRandomFloat()*strugglerSpan
		potential = starMin + getRandomFloat()*starRange
		years = pickIndex(newHireMaxYears + 2)
	case caseWorkhorse:
		// Strong output, limited growth signal
		performance = starMin + getRandomFloat()*starRange
		potential = strugglerMin + getRandomFloat()*strugglerSpan
		years = 4 + pickIndex(defaultYearSpan)
	case caseNewHire:
		performance = wideMin + getRandomFloat()*wideSpan
		potential = wideMin + getRandomFloat()*wideSpan
		years = pickIndex(newHireMaxYears + 1)
	case caseVeteran:
		performance = wideMin + getRandomFloat()*wideSpan
		potential = wideMin + getRandomFloat()*wideSpan
		years = veteranMinYears + pickIndex(veteranYearSpan)
	default:
		performance = wideMin + getRandomFloat()*wideSpan
		potential = wideMin + getRandomFloat()*wideSpan
		years = pickIndex(veteranMinYears)
	}

	performance = roundRating(performance)
	potential = roundRating(potential)
	return performance, potential, years
}

// roundRating rounds a rating to one decimal place within [1.0, 5.0].
func roundRating(r float64) float64 {
	r = math.Round(r*ratingPrecision) / ratingPrecision
	if r < strugglerMin {
		return strugglerMin
	}
	if r > strugglerMax {
		return strugglerMax
	}
	return r
}

// generateScores derives assessment scores loosely correlated with the
// performance rating.
func generateScores(performance float64) map[string]float64 {
	base := 40 + performance*10
	jitter := func() float64 { return getRandomFloat()*10 - 5 }
	return map[string]float64{
		"technical":     math.Round(base + jitter()),
		"communication": math.Round(base + jitter()),
		"leadership":    math.Round(base - 5 + jitter()),
	}
}
