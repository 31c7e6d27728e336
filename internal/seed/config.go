package seed

import "time"

// Config holds configuration for the seed run
type Config struct {
	BaseURL      string        // Base URL of the service
	NumEmployees int           // Number of employees to generate
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	DatasetFile  string        // Optional JSON dataset to load instead of generating
	OutputFile   string        // Output file for the generated dataset
	LogFile      string        // Log file for seed output
	Analyze      bool          // Enqueue a gap analysis per employee and verify results
	Verbose      bool          // Enable verbose logging
}

// EmployeeDoc mirrors the employee JSON accepted by POST /employees.
type EmployeeDoc struct {
	ID                string             `json:"id,omitempty"`
	Name              string             `json:"name"`
	Role              string             `json:"role"`
	Department        string             `json:"department"`
	Skills            []string           `json:"skills"`
	AssessmentScores  map[string]float64 `json:"assessment_scores"`
	PerformanceRating *float64           `json:"performance_rating"`
	PotentialRating   *float64           `json:"potential_rating"`
	ExperienceYears   int                `json:"experience_years"`
	TargetRole        string             `json:"target_role,omitempty"`
	Segment           string             `json:"segment,omitempty"`
	Readiness         string             `json:"readiness,omitempty"`
}

// RoleDoc mirrors the role JSON accepted by POST /roles.
type RoleDoc struct {
	Role                 string             `json:"role"`
	RequiredSkills       []string           `json:"required_skills"`
	RequiredExperience   int                `json:"required_experience"`
	MinPerformanceRating float64            `json:"min_performance_rating"`
	MinPotentialRating   float64            `json:"min_potential_rating"`
	RequiredScores       map[string]float64 `json:"required_scores"`
}

// Dataset is the on-disk shape of a seed dataset.
type Dataset struct {
	Roles     []RoleDoc     `json:"roles"`
	Employees []EmployeeDoc `json:"employees"`
}

// AnalysisAck is the response from POST /analyses.
type AnalysisAck struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Duplicate bool   `json:"duplicate"`
}

// GapSummary is the slice of the stored analysis the verifier cares about.
type GapSummary struct {
	OverallSkillMatch string   `json:"overall_skill_match"`
	MissingSkills     []string `json:"missing_skills"`
	ReadinessLevel    string   `json:"readiness_level"`
}

// AnalysisDoc is the record returned by GET /analyses/{employee_id}.
type AnalysisDoc struct {
	EmployeeID string     `json:"employee_id"`
	TargetRole string     `json:"target_role"`
	Gap        GapSummary `json:"gap_analysis"`
	Readiness  string     `json:"readiness"`
}

// Stats holds seed run statistics
type Stats struct {
	RolesSubmitted      int
	EmployeesGenerated  int
	EmployeesSubmitted  int
	EmployeesSuccessful int
	EmployeesFailed     int
	AnalysesEnqueued    int
	AnalysesDuplicate   int
	AnalysesRejected    int
	AnalysesRetrieved   int
	AnalysesMissing     int
	SegmentsSeen        map[string]int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
