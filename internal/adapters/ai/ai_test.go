package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/model"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

// deadlineGenerator records whether the call context carried a deadline.
type deadlineGenerator struct {
	response    string
	sawDeadline bool
}

func (d *deadlineGenerator) GenerateContent(ctx context.Context, _ string) (string, error) {
	_, d.sawDeadline = ctx.Deadline()
	return d.response, nil
}

// blockingGenerator hangs until the call context expires.
type blockingGenerator struct{}

func (blockingGenerator) GenerateContent(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

const validGapJSON = `{
	"matched_skills": ["Python"],
	"missing_skills": ["Leadership"],
	"score_gaps": {"technical": {"employee": 80, "required": 85, "status": "Gap (-5)"}},
	"rating_gaps": {
		"performance": {"employee": 4.2, "required": 4.0, "status": "Eligible"},
		"potential": {"employee": 3.8, "required": 3.5, "status": "Eligible"}
	},
	"overall_skill_match": "50%",
	"recommendations": ["Develop skills: Leadership"],
	"readiness_level": "Developing"
}`

func TestScoreGap(t *testing.T) {
	Convey("Given an LLM-backed gap scorer", t, func() {
		ctx := context.Background()
		emp := model.Employee{Name: "Amit Sharma", Skills: []string{"Python"}}
		role := model.RoleRequirement{Role: "Technical Lead", RequiredSkills: []string{"Python", "Leadership"}}

		Convey("When the model returns clean JSON", func() {
			gen := &fakeGenerator{response: validGapJSON}
			scorer := NewGapScorer(gen)

			result, err := scorer.ScoreGap(ctx, emp, role)

			Convey("Then the result parses into the canonical shape", func() {
				So(err, ShouldBeNil)
				So(result.OverallSkillMatch, ShouldEqual, "50%")
				So(result.ReadinessLevel, ShouldEqual, model.ReadinessDeveloping)
				So(result.RatingGaps, ShouldContainKey, "performance")
			})

			Convey("Then the prompt embeds both profiles", func() {
				So(len(gen.prompts), ShouldEqual, 1)
				So(gen.prompts[0], ShouldContainSubstring, "Amit Sharma")
				So(gen.prompts[0], ShouldContainSubstring, "Technical Lead")
			})
		})

		Convey("When the model wraps JSON in a code fence", func() {
			gen := &fakeGenerator{response: "```json\n" + validGapJSON + "\n```"}
			result, err := NewGapScorer(gen).ScoreGap(ctx, emp, role)

			Convey("Then the fence is stripped before parsing", func() {
				So(err, ShouldBeNil)
				So(result.OverallSkillMatch, ShouldEqual, "50%")
			})
		})

		Convey("When the model returns prose", func() {
			gen := &fakeGenerator{response: "I think the employee is doing great!"}
			_, err := NewGapScorer(gen).ScoreGap(ctx, emp, role)

			Convey("Then a malformed-response error surfaces", func() {
				So(errors.Is(err, ErrMalformedResponse), ShouldBeTrue)
			})
		})

		Convey("When the readiness label is not one of the fixed set", func() {
			gen := &fakeGenerator{response: `{
				"overall_skill_match": "50%",
				"recommendations": ["x"],
				"readiness_level": "Almost Ready"
			}`}
			_, err := NewGapScorer(gen).ScoreGap(ctx, emp, role)

			So(errors.Is(err, ErrMalformedResponse), ShouldBeTrue)
		})

		Convey("When the generator itself fails", func() {
			gen := &fakeGenerator{err: errors.New("deadline exceeded")}
			_, err := NewGapScorer(gen).ScoreGap(ctx, emp, role)

			Convey("Then the error propagates for the caller's fallback", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRecommender(t *testing.T) {
	Convey("Given an LLM-backed recommender", t, func() {
		ctx := context.Background()
		emp := model.Employee{Name: "Riya Patel", Role: "Data Analyst"}

		Convey("When the model returns skill recommendations", func() {
			gen := &fakeGenerator{response: `{
				"skills": [
					{"skill": "Machine Learning", "priority": "high", "timeline": "3-6 months", "reason": "core for target role"},
					{"skill": "Statistics", "priority": "medium", "timeline": "6-12 months", "reason": "strengthen foundations"}
				]
			}`}

			recs, err := NewRecommender(gen).SkillRecommendations(ctx, emp, validGapResult())

			Convey("Then the recommendations parse in order", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
				So(recs[0].Skill, ShouldEqual, "Machine Learning")
				So(recs[0].Priority, ShouldEqual, "high")
			})
		})

		Convey("When the model returns an empty skill list", func() {
			gen := &fakeGenerator{response: `{"skills": []}`}
			_, err := NewRecommender(gen).SkillRecommendations(ctx, emp, validGapResult())

			So(errors.Is(err, ErrMalformedResponse), ShouldBeTrue)
		})

		Convey("When the model returns more resources than requested", func() {
			gen := &fakeGenerator{response: `{
				"resources": [
					{"title": "A", "url": "https://a", "provider": "Coursera", "type": "course"},
					{"title": "B", "url": "https://b", "provider": "edX", "type": "course"},
					{"title": "C", "url": "https://c", "provider": "Udemy", "type": "course"}
				]
			}`}

			resources, err := NewRecommender(gen).LearningResources(ctx, []string{"ML"}, "Data Scientist", 2)

			Convey("Then the list is truncated to the limit", func() {
				So(err, ShouldBeNil)
				So(len(resources), ShouldEqual, 2)
				So(resources[0].Title, ShouldEqual, "A")
			})
		})

		Convey("When the resource payload is malformed", func() {
			gen := &fakeGenerator{response: `not json`}
			_, err := NewRecommender(gen).LearningResources(ctx, []string{"ML"}, "Data Scientist", 5)

			So(errors.Is(err, ErrMalformedResponse), ShouldBeTrue)
		})
	})
}

func TestCollaboratorsNeedNoLoggingSetup(t *testing.T) {
	Convey("Given a process that never configured logging", t, func() {
		ctx := context.Background()
		emp := model.Employee{Name: "Amit Sharma", Role: "Software Engineer"}
		role := model.RoleRequirement{Role: "Technical Lead"}

		Convey("Then construction and calls work without injection", func() {
			So(func() {
				scorer := NewGapScorer(&fakeGenerator{response: validGapJSON})
				_, _ = scorer.ScoreGap(ctx, emp, role)

				rec := NewRecommender(&fakeGenerator{err: errors.New("unavailable")})
				_, _ = rec.LearningResources(ctx, []string{"Go"}, "Technical Lead", 3)
			}, ShouldNotPanic)
		})
	})
}

func TestCallDeadlines(t *testing.T) {
	Convey("Given LLM collaborators", t, func() {
		ctx := context.Background()
		emp := model.Employee{Name: "Amit Sharma", Role: "Software Engineer"}
		role := model.RoleRequirement{Role: "Technical Lead"}

		Convey("When no timeout option is set", func() {
			gen := &deadlineGenerator{response: validGapJSON}
			_, err := NewGapScorer(gen).ScoreGap(ctx, emp, role)

			Convey("Then each model call still carries a deadline", func() {
				So(err, ShouldBeNil)
				So(gen.sawDeadline, ShouldBeTrue)
			})
		})

		Convey("When the model hangs past a short timeout", func() {
			scorer := NewGapScorer(blockingGenerator{}, WithCallTimeout(20*time.Millisecond))
			start := time.Now()
			_, err := scorer.ScoreGap(ctx, emp, role)

			Convey("Then the call is cut off with a deadline error", func() {
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
				So(time.Since(start), ShouldBeLessThan, 5*time.Second)
			})
		})

		Convey("When the recommender's model hangs past a short timeout", func() {
			rec := NewRecommender(blockingGenerator{}, WithCallTimeout(20*time.Millisecond))
			_, err := rec.LearningResources(ctx, []string{"Go"}, "Technical Lead", 3)

			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}

func validGapResult() gap.Result {
	return gap.Result{
		MissingSkills:     []string{"Leadership"},
		OverallSkillMatch: "50%",
		Recommendations:   []string{"Develop skills: Leadership"},
		ReadinessLevel:    model.ReadinessDeveloping,
	}
}
