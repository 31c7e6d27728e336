package plan_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/mentor"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/plan"
)

func TestAssemble(t *testing.T) {
	Convey("Given a plan assembler with a fixed clock", t, func() {
		fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		assembler := plan.NewAssembler(plan.WithClock(func() time.Time { return fixed }))

		emp := model.Employee{
			ID:         "emp-1",
			Name:       "Riya Patel",
			Role:       "Data Analyst",
			Department: "Data Science",
			TargetRole: "Data Scientist",
		}
		recs := []plan.SkillRecommendation{
			{Skill: "Machine Learning", Priority: plan.PriorityHigh, Timeline: "3-6 months"},
			{Skill: "Statistics", Priority: plan.PriorityMedium, Timeline: "6-12 months"},
		}
		resources := []plan.LearningResource{
			{Title: "ML Specialization", URL: "https://example.com/ml", Provider: "Coursera", Type: "course"},
		}
		mentors := []mentor.Profile{
			{EmployeeID: "emp-9", Name: "Kavya Nair", SimilarityScore: 0.8},
		}

		Convey("When all upstream results are present", func() {
			p, err := assembler.Assemble(emp, "Data Scientist", model.ReadinessDeveloping, recs, resources, mentors)

			Convey("Then the plan carries every section", func() {
				So(err, ShouldBeNil)
				So(p.EmployeeName, ShouldEqual, "Riya Patel")
				So(p.TargetRole, ShouldEqual, "Data Scientist")
				So(p.Readiness, ShouldEqual, model.ReadinessDeveloping)
				So(len(p.SkillRecommendations), ShouldEqual, 2)
				So(len(p.LearningResources), ShouldEqual, 1)
				So(len(p.Mentors), ShouldEqual, 1)
				So(p.GeneratedAt, ShouldEqual, fixed)
			})

			Convey("Then milestones sit at months three, six, and twelve", func() {
				So(len(p.Milestones), ShouldEqual, 3)
				So(p.Milestones[0].Month, ShouldEqual, 3)
				So(p.Milestones[1].Month, ShouldEqual, 6)
				So(p.Milestones[2].Month, ShouldEqual, 12)
			})

			Convey("Then the near-term milestone focuses on high-priority skills only", func() {
				So(p.Milestones[0].Focus, ShouldResemble, []string{"Machine Learning"})
				So(p.Milestones[1].Focus, ShouldResemble, []string{"Machine Learning", "Statistics"})
				So(p.Milestones[2].Focus, ShouldResemble, []string{"Machine Learning", "Statistics"})
			})
		})

		Convey("When the analysis targeted a role off the career ladder", func() {
			p, err := assembler.Assemble(emp, "Engineering Manager", model.ReadinessReady, nil, nil, nil)

			Convey("Then that role labels the plan, not the suggestion", func() {
				So(err, ShouldBeNil)
				So(p.TargetRole, ShouldEqual, "Engineering Manager")
			})
		})

		Convey("When the optional collaborators produced nothing", func() {
			p, err := assembler.Assemble(emp, "", model.ReadinessReady, nil, nil, nil)

			Convey("Then a sparse but valid plan is produced", func() {
				So(err, ShouldBeNil)
				So(p.SkillRecommendations, ShouldBeEmpty)
				So(p.LearningResources, ShouldBeEmpty)
				So(p.Mentors, ShouldBeEmpty)
				So(len(p.Milestones), ShouldEqual, 3)
			})
		})

		Convey("When the employee has no target role", func() {
			emp.TargetRole = ""
			p, err := assembler.Assemble(emp, "", model.ReadinessReady, nil, nil, nil)

			Convey("Then the suggestion table fills it in", func() {
				So(err, ShouldBeNil)
				So(p.TargetRole, ShouldEqual, "Data Science Manager")
			})
		})

		Convey("When the employee name is missing", func() {
			emp.Name = " "
			_, err := assembler.Assemble(emp, "", model.ReadinessReady, nil, nil, nil)

			Convey("Then assembly fails with an incomplete-input error", func() {
				So(errors.Is(err, plan.ErrIncompleteInput), ShouldBeTrue)
			})
		})

		Convey("When the readiness verdict is missing", func() {
			_, err := assembler.Assemble(emp, "Data Scientist", "", nil, nil, nil)

			Convey("Then assembly fails with an incomplete-input error", func() {
				So(errors.Is(err, plan.ErrIncompleteInput), ShouldBeTrue)
			})
		})

		Convey("When assembling twice with identical inputs", func() {
			first, err := assembler.Assemble(emp, "Data Scientist", model.ReadinessReady, recs, resources, mentors)
			So(err, ShouldBeNil)
			second, err := assembler.Assemble(emp, "Data Scientist", model.ReadinessReady, recs, resources, mentors)
			So(err, ShouldBeNil)

			Convey("Then the plans are identical under the fixed clock", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestFallbackRecommendations(t *testing.T) {
	Convey("Given a gap result with missing skills and score deficits", t, func() {
		role := model.RoleRequirement{Role: "Technical Lead"}
		result := gap.Result{
			MissingSkills: []string{"Go", "Kubernetes"},
			ScoreGaps: map[string]gap.GapDetail{
				"technical":     {Employee: 60, Required: 85, Status: "Gap (-25)"},
				"communication": {Employee: 80, Required: 75, Status: gap.StatusEligible},
				"leadership":    {Employee: 50, Required: 70, Status: "Gap (-20)"},
			},
		}

		Convey("When deriving fallback recommendations", func() {
			recs := plan.FallbackRecommendations(role, result)

			Convey("Then missing skills lead as high priority", func() {
				So(len(recs), ShouldEqual, 4)
				So(recs[0].Skill, ShouldEqual, "Go")
				So(recs[0].Priority, ShouldEqual, plan.PriorityHigh)
				So(recs[1].Skill, ShouldEqual, "Kubernetes")
			})

			Convey("Then only deficient dimensions follow, in sorted order", func() {
				So(recs[2].Skill, ShouldEqual, "Leadership")
				So(recs[2].Priority, ShouldEqual, plan.PriorityMedium)
				So(recs[3].Skill, ShouldEqual, "Technical")
			})
		})

		Convey("When the gap result is clean", func() {
			So(plan.FallbackRecommendations(role, gap.Result{}), ShouldBeEmpty)
		})
	})
}
