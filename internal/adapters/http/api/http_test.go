package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	api "github.com/successionai/talentd/internal/adapters/http/api"
	"github.com/successionai/talentd/internal/adapters/repository"
	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/grid"
	"github.com/successionai/talentd/internal/domain/mentor"
	model "github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/plan"
	"github.com/successionai/talentd/internal/domain/readiness"
	logging "github.com/successionai/talentd/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies for handler tests.
type mockDeps struct {
	mu            sync.Mutex
	seen          map[string]bool
	employees     map[string]model.Employee
	roles         map[string]model.RoleRequirement
	analyses      map[string]repository.AnalysisRecord
	plans         map[string]plan.DevelopmentPlan
	enqueued      []model.AnalysisRequest
	queueFull     bool
	modelMissing  bool
	segmentEngine *grid.Engine
	scorer        *gap.Scorer
}

var _ api.Dependencies = (*mockDeps)(nil)

func newMockDeps() *mockDeps {
	return &mockDeps{
		seen:          make(map[string]bool),
		employees:     make(map[string]model.Employee),
		roles:         make(map[string]model.RoleRequirement),
		analyses:      make(map[string]repository.AnalysisRecord),
		plans:         make(map[string]plan.DevelopmentPlan),
		segmentEngine: grid.NewEngine(),
		scorer:        gap.NewScorer(),
	}
}

func (m *mockDeps) SeenAndRecord(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDeps) Unrecord(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, id)
}

func (m *mockDeps) Size() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.seen))
}

func (m *mockDeps) EnqueueAnalysis(ctx context.Context, req model.AnalysisRequest) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queueFull {
		return false
	}
	m.enqueued = append(m.enqueued, req)
	return true
}

func (m *mockDeps) Segment(ctx context.Context, emp model.Employee) (grid.Segmentation, error) {
	return m.segmentEngine.Segment(emp)
}

func (m *mockDeps) SegmentBatch(ctx context.Context, emps []model.Employee) ([]grid.Segmentation, map[string]int, error) {
	segments, err := m.segmentEngine.SegmentAll(emps)
	if err != nil {
		return nil, nil, err
	}
	return segments, grid.Summarize(segments), nil
}

func (m *mockDeps) SaveEmployee(ctx context.Context, emp model.Employee) (model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if emp.ID == "" {
		emp.ID = "generated-id"
	}
	m.employees[emp.ID] = emp
	return emp, nil
}

func (m *mockDeps) Employee(ctx context.Context, id string) (model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.employees[id]
	if !ok {
		return model.Employee{}, repository.ErrNotFound
	}
	return emp, nil
}

func (m *mockDeps) SaveRole(ctx context.Context, role model.RoleRequirement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[role.Role] = role
	return nil
}

func (m *mockDeps) Roles(ctx context.Context) ([]model.RoleRequirement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.RoleRequirement, 0, len(m.roles))
	for _, role := range m.roles {
		out = append(out, role)
	}
	return out, nil
}

func (m *mockDeps) Candidates(ctx context.Context, roleName string, minMatch int) ([]gap.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	role, ok := m.roles[roleName]
	if !ok {
		return nil, repository.ErrNotFound
	}
	emps := make([]model.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		emps = append(emps, emp)
	}
	return m.scorer.Candidates(emps, role, minMatch), nil
}

func (m *mockDeps) AnalyzeGap(ctx context.Context, employeeID, targetRole string) (repository.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.employees[employeeID]
	if !ok {
		return repository.AnalysisRecord{}, repository.ErrNotFound
	}
	if targetRole == "" {
		targetRole = model.SuggestTargetRole(emp)
	}
	role, ok := m.roles[targetRole]
	if !ok {
		return repository.AnalysisRecord{}, repository.ErrNotFound
	}
	rec := repository.AnalysisRecord{
		EmployeeID: employeeID,
		TargetRole: targetRole,
		Gap:        m.scorer.Deterministic(emp, role),
	}
	m.analyses[employeeID] = rec
	return rec, nil
}

func (m *mockDeps) Analysis(ctx context.Context, employeeID string) (repository.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.analyses[employeeID]
	if !ok {
		return repository.AnalysisRecord{}, repository.ErrNotFound
	}
	return rec, nil
}

func (m *mockDeps) PredictReadiness(ctx context.Context, employeeID string) (readiness.Prediction, error) {
	m.mu.Lock()
	missing := m.modelMissing
	_, ok := m.employees[employeeID]
	m.mu.Unlock()
	if !ok {
		return readiness.Prediction{}, repository.ErrNotFound
	}
	if missing {
		return readiness.Prediction{}, readiness.ErrModelNotLoaded
	}
	return readiness.Prediction{EmployeeID: employeeID, Label: model.ReadinessReady, Confidence: 0.8}, nil
}

func (m *mockDeps) PredictReadinessFeatures(ctx context.Context, features readiness.FeatureVector) (readiness.Prediction, error) {
	m.mu.Lock()
	missing := m.modelMissing
	m.mu.Unlock()
	if missing {
		return readiness.Prediction{}, readiness.ErrModelNotLoaded
	}
	return readiness.Prediction{Label: model.ReadinessDeveloping, Confidence: 0.6}, nil
}

func (m *mockDeps) FindMentors(ctx context.Context, employeeID string, limit int) ([]mentor.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[employeeID]; !ok {
		return nil, repository.ErrNotFound
	}
	return []mentor.Profile{}, nil
}

func (m *mockDeps) GeneratePlan(ctx context.Context, employeeID string) (plan.DevelopmentPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.employees[employeeID]
	if !ok {
		return plan.DevelopmentPlan{}, repository.ErrNotFound
	}
	if emp.Readiness == "" {
		return plan.DevelopmentPlan{}, plan.ErrIncompleteInput
	}
	p := plan.DevelopmentPlan{EmployeeID: employeeID, EmployeeName: emp.Name, Readiness: emp.Readiness}
	m.plans[employeeID] = p
	return p, nil
}

func (m *mockDeps) GetStats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]interface{}{
		"total_employees": len(m.employees),
		"total_roles":     len(m.roles),
	}
}

func newTestServer(deps *mockDeps) *httptest.Server {
	_ = logging.Init()
	mux := http.NewServeMux()
	server := api.NewServer(deps, deps)
	server.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func employeePayload(id, name string) map[string]any {
	return map[string]any{
		"id":                 id,
		"name":               name,
		"role":               "Software Engineer",
		"department":         "Engineering",
		"skills":             []string{"Go", "SQL"},
		"assessment_scores":  map[string]float64{"technical": 82, "leadership": 71, "communication": 76},
		"performance_rating": 4.2,
		"potential_rating":   4.1,
		"experience_years":   6,
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestSegmentEndpoints(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		deps := newMockDeps()
		ts := newTestServer(deps)
		defer ts.Close()

		convey.Convey("When posting a valid employee to /segment", func() {
			resp := postJSON(t, ts.URL+"/segment", employeePayload("emp-1", "Alice Chen"))
			defer resp.Body.Close()

			convey.Convey("Then it should return the segmentation", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var seg grid.Segmentation
				convey.So(json.NewDecoder(resp.Body).Decode(&seg), convey.ShouldBeNil)
				convey.So(seg.Segment, convey.ShouldEqual, "Star")
			})
		})

		convey.Convey("When posting an employee without ratings", func() {
			payload := employeePayload("emp-2", "Bob Osei")
			delete(payload, "performance_rating")
			resp := postJSON(t, ts.URL+"/segment", payload)
			defer resp.Body.Close()

			convey.Convey("Then it should return 400", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When posting a batch to /segment/batch", func() {
			batch := []map[string]any{
				employeePayload("emp-1", "Alice Chen"),
				employeePayload("emp-2", "Bob Osei"),
			}
			resp := postJSON(t, ts.URL+"/segment/batch", batch)
			defer resp.Body.Close()

			convey.Convey("Then it should return segments and a summary", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var out struct {
					Segments []grid.Segmentation `json:"segments"`
					Summary  map[string]int      `json:"summary"`
				}
				convey.So(json.NewDecoder(resp.Body).Decode(&out), convey.ShouldBeNil)
				convey.So(len(out.Segments), convey.ShouldEqual, 2)
				convey.So(out.Summary["Star"], convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When using the wrong method", func() {
			resp, err := http.Get(ts.URL + "/segment")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return 404", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestEmployeeEndpoints(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		deps := newMockDeps()
		ts := newTestServer(deps)
		defer ts.Close()

		convey.Convey("When creating an employee", func() {
			resp := postJSON(t, ts.URL+"/employees", employeePayload("", "Alice Chen"))
			defer resp.Body.Close()

			convey.Convey("Then it should return 201 with an assigned ID", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusCreated)

				var emp model.Employee
				convey.So(json.NewDecoder(resp.Body).Decode(&emp), convey.ShouldBeNil)
				convey.So(emp.ID, convey.ShouldNotBeBlank)
			})
		})

		convey.Convey("When fetching a stored employee", func() {
			deps.employees["emp-9"] = model.Employee{ID: "emp-9", Name: "Dana Flores"}

			resp, err := http.Get(ts.URL + "/employees/emp-9")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return the record", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When fetching an unknown employee", func() {
			resp, err := http.Get(ts.URL + "/employees/ghost")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return 404", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRoleAndCandidateEndpoints(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		deps := newMockDeps()
		ts := newTestServer(deps)
		defer ts.Close()

		convey.Convey("When posting a role", func() {
			resp := postJSON(t, ts.URL+"/roles", map[string]any{
				"role":            "Technical Lead",
				"required_skills": []string{"Go", "SQL", "Kubernetes", "Mentoring"},
			})
			defer resp.Body.Close()

			convey.Convey("Then it should return 201", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusCreated)
			})

			convey.Convey("And listing roles should include it", func() {
				listResp, err := http.Get(ts.URL + "/roles")
				convey.So(err, convey.ShouldBeNil)
				defer listResp.Body.Close()

				var roles []model.RoleRequirement
				convey.So(json.NewDecoder(listResp.Body).Decode(&roles), convey.ShouldBeNil)
				convey.So(len(roles), convey.ShouldEqual, 1)
				convey.So(roles[0].Role, convey.ShouldEqual, "Technical Lead")
			})
		})

		convey.Convey("When querying candidates for a role", func() {
			deps.roles["Technical Lead"] = model.RoleRequirement{
				Role:           "Technical Lead",
				RequiredSkills: []string{"Go", "SQL", "Kubernetes", "Mentoring"},
			}
			deps.employees["emp-1"] = model.Employee{ID: "emp-1", Name: "Alice Chen", Skills: []string{"Go", "SQL"}}
			deps.employees["emp-2"] = model.Employee{ID: "emp-2", Name: "Bob Osei", Skills: []string{"Excel"}}

			resp, err := http.Get(ts.URL + "/candidates?role=Technical+Lead&min_match=50")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then only qualifying employees are returned", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var candidates []gap.Candidate
				convey.So(json.NewDecoder(resp.Body).Decode(&candidates), convey.ShouldBeNil)
				convey.So(len(candidates), convey.ShouldEqual, 1)
				convey.So(candidates[0].EmployeeID, convey.ShouldEqual, "emp-1")
				convey.So(candidates[0].MatchPercent, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When querying candidates without a role", func() {
			resp, err := http.Get(ts.URL + "/candidates")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return 400", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestAnalysisEndpoints(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		deps := newMockDeps()
		ts := newTestServer(deps)
		defer ts.Close()

		deps.employees["emp-1"] = model.Employee{
			ID:                "emp-1",
			Name:              "Alice Chen",
			Role:              "Software Engineer",
			Skills:            []string{"Go", "SQL"},
			PerformanceRating: 4.2,
			PotentialRating:   4.1,
			ExperienceYears:   6,
		}
		deps.roles["Technical Lead"] = model.RoleRequirement{
			Role:           "Technical Lead",
			RequiredSkills: []string{"Go", "SQL", "Kubernetes"},
		}

		convey.Convey("When posting a synchronous gap analysis", func() {
			resp := postJSON(t, ts.URL+"/gap-analysis", map[string]any{
				"employee_id": "emp-1",
				"target_role": "Technical Lead",
			})
			defer resp.Body.Close()

			convey.Convey("Then it should return the analysis record", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var rec repository.AnalysisRecord
				convey.So(json.NewDecoder(resp.Body).Decode(&rec), convey.ShouldBeNil)
				convey.So(rec.Gap.MissingSkills, convey.ShouldResemble, []string{"Kubernetes"})
			})
		})

		convey.Convey("When the employee is unknown", func() {
			resp := postJSON(t, ts.URL+"/gap-analysis", map[string]any{"employee_id": "ghost"})
			defer resp.Body.Close()

			convey.Convey("Then it should return 404", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
			})
		})

		convey.Convey("When enqueueing an async analysis", func() {
			resp := postJSON(t, ts.URL+"/analyses", map[string]any{
				"request_id":  "req-1",
				"employee_id": "emp-1",
			})
			defer resp.Body.Close()

			convey.Convey("Then it should be accepted", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusAccepted)

				var ack struct {
					Status    string `json:"status"`
					RequestID string `json:"request_id"`
					Duplicate bool   `json:"duplicate"`
				}
				convey.So(json.NewDecoder(resp.Body).Decode(&ack), convey.ShouldBeNil)
				convey.So(ack.Status, convey.ShouldEqual, "accepted")
				convey.So(ack.Duplicate, convey.ShouldBeFalse)
			})

			convey.Convey("And resubmitting the same request ID reports a duplicate", func() {
				dupResp := postJSON(t, ts.URL+"/analyses", map[string]any{
					"request_id":  "req-1",
					"employee_id": "emp-1",
				})
				defer dupResp.Body.Close()

				convey.So(dupResp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var ack struct {
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
				}
				convey.So(json.NewDecoder(dupResp.Body).Decode(&ack), convey.ShouldBeNil)
				convey.So(ack.Duplicate, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the queue is saturated", func() {
			deps.queueFull = true

			resp := postJSON(t, ts.URL+"/analyses", map[string]any{
				"request_id":  "req-2",
				"employee_id": "emp-1",
			})
			defer resp.Body.Close()

			convey.Convey("Then it should return 429", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusTooManyRequests)
			})

			convey.Convey("And the request ID can be retried later", func() {
				deps.mu.Lock()
				recorded := deps.seen["req-2"]
				deps.mu.Unlock()
				convey.So(recorded, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When submitting without an employee ID", func() {
			resp := postJSON(t, ts.URL+"/analyses", map[string]any{"request_id": "req-3"})
			defer resp.Body.Close()

			convey.Convey("Then it should return 400", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When fetching a stored analysis", func() {
			deps.analyses["emp-1"] = repository.AnalysisRecord{EmployeeID: "emp-1", TargetRole: "Technical Lead"}

			resp, err := http.Get(ts.URL + "/analyses/emp-1")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return the record", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When fetching an analysis that does not exist", func() {
			resp, err := http.Get(ts.URL + "/analyses/ghost")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return 404", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestReadinessEndpoint(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		deps := newMockDeps()
		ts := newTestServer(deps)
		defer ts.Close()

		deps.employees["emp-1"] = model.Employee{ID: "emp-1", Name: "Alice Chen"}

		convey.Convey("When predicting by employee ID", func() {
			resp := postJSON(t, ts.URL+"/readiness", map[string]any{"employee_id": "emp-1"})
			defer resp.Body.Close()

			convey.Convey("Then it should return a prediction", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var pred readiness.Prediction
				convey.So(json.NewDecoder(resp.Body).Decode(&pred), convey.ShouldBeNil)
				convey.So(pred.Label, convey.ShouldEqual, model.ReadinessReady)
			})
		})

		convey.Convey("When predicting from an explicit feature vector", func() {
			resp := postJSON(t, ts.URL+"/readiness", map[string]any{
				"features": map[string]any{
					"performance_rating":   4.0,
					"potential_rating":     3.8,
					"leadership_score":     70,
					"missing_skills_count": 2,
					"technical_score":      78,
					"communication_score":  74,
					"experience_years":     5,
				},
			})
			defer resp.Body.Close()

			convey.Convey("Then it should return a prediction", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When neither employee_id nor features is given", func() {
			resp := postJSON(t, ts.URL+"/readiness", map[string]any{})
			defer resp.Body.Close()

			convey.Convey("Then it should return 400", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When the model artifact is missing", func() {
			deps.modelMissing = true

			resp := postJSON(t, ts.URL+"/readiness", map[string]any{"employee_id": "emp-1"})
			defer resp.Body.Close()

			convey.Convey("Then it should return 503", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}

func TestMentorAndIDPEndpoints(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		deps := newMockDeps()
		ts := newTestServer(deps)
		defer ts.Close()

		deps.employees["emp-1"] = model.Employee{ID: "emp-1", Name: "Alice Chen", Readiness: model.ReadinessReady}
		deps.employees["emp-2"] = model.Employee{ID: "emp-2", Name: "Bob Osei"}

		convey.Convey("When fetching mentors for a stored employee", func() {
			resp, err := http.Get(ts.URL + "/mentors/emp-1?limit=2")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return a list", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the mentor limit is invalid", func() {
			resp, err := http.Get(ts.URL + "/mentors/emp-1?limit=zero")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return 400", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When generating a development plan", func() {
			resp := postJSON(t, ts.URL+"/idp/emp-1", nil)
			defer resp.Body.Close()

			convey.Convey("Then it should return the plan", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var p plan.DevelopmentPlan
				convey.So(json.NewDecoder(resp.Body).Decode(&p), convey.ShouldBeNil)
				convey.So(p.EmployeeID, convey.ShouldEqual, "emp-1")
			})
		})

		convey.Convey("When the plan input is incomplete", func() {
			resp := postJSON(t, ts.URL+"/idp/emp-2", nil)
			defer resp.Body.Close()

			convey.Convey("Then it should return 422", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusUnprocessableEntity)
			})
		})

		convey.Convey("When the employee is unknown", func() {
			resp := postJSON(t, ts.URL+"/idp/ghost", nil)
			defer resp.Body.Close()

			convey.Convey("Then it should return 404", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	convey.Convey("Given a running API server", t, func() {
		deps := newMockDeps()
		ts := newTestServer(deps)
		defer ts.Close()

		deps.employees["emp-1"] = model.Employee{ID: "emp-1", Name: "Alice Chen"}

		convey.Convey("When fetching /stats", func() {
			resp, err := http.Get(ts.URL + "/stats")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then it should return service statistics", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				var stats map[string]any
				convey.So(json.NewDecoder(resp.Body).Decode(&stats), convey.ShouldBeNil)
				convey.So(stats["total_employees"], convey.ShouldEqual, 1)
			})
		})
	})
}
