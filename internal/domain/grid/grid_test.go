package grid_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/successionai/talentd/internal/domain/grid"
	"github.com/successionai/talentd/internal/domain/model"
)

func TestClassify(t *testing.T) {
	Convey("Given the default thresholds 3.5/4.0", t, func() {
		low, high := 3.5, 4.0

		Convey("When classifying values across the range", func() {
			Convey("Then values below the low cutoff are Low", func() {
				level, err := grid.Classify(3.49, low, high)
				So(err, ShouldBeNil)
				So(level, ShouldEqual, grid.Low)
			})

			Convey("Then the low cutoff itself is Medium", func() {
				level, err := grid.Classify(3.5, low, high)
				So(err, ShouldBeNil)
				So(level, ShouldEqual, grid.Medium)
			})

			Convey("Then the high cutoff itself is High", func() {
				level, err := grid.Classify(4.0, low, high)
				So(err, ShouldBeNil)
				So(level, ShouldEqual, grid.High)
			})

			Convey("Then values above the high cutoff are High", func() {
				level, err := grid.Classify(5.0, low, high)
				So(err, ShouldBeNil)
				So(level, ShouldEqual, grid.High)
			})
		})

		Convey("When the thresholds are inverted", func() {
			_, err := grid.Classify(4.0, 4.5, 3.0)

			Convey("Then an invalid-thresholds error should surface", func() {
				So(errors.Is(err, grid.ErrInvalidThresholds), ShouldBeTrue)
			})
		})

		Convey("When sweeping increasing values", func() {
			rank := map[grid.Level]int{grid.Low: 0, grid.Medium: 1, grid.High: 2}

			Convey("Then classification is monotonic non-decreasing", func() {
				prev := -1
				for v := 0.0; v <= 5.0; v += 0.1 {
					level, err := grid.Classify(v, low, high)
					So(err, ShouldBeNil)
					So(rank[level], ShouldBeGreaterThanOrEqualTo, prev)
					prev = rank[level]
				}
			})
		})
	})
}

func TestSegment(t *testing.T) {
	Convey("Given a segmentation engine with default thresholds", t, func() {
		engine := grid.NewEngine()

		Convey("When segmenting a strong performer with medium potential", func() {
			seg, err := engine.Segment(model.Employee{
				ID:                "emp-1",
				Name:              "Priya Patel",
				PerformanceRating: 4.2,
				PotentialRating:   3.8,
			})

			Convey("Then the employee lands in Consistent Performer", func() {
				So(err, ShouldBeNil)
				So(seg.PerformanceLevel, ShouldEqual, grid.High)
				So(seg.PotentialLevel, ShouldEqual, grid.Medium)
				So(seg.Segment, ShouldEqual, "Consistent Performer")
				So(seg.Description, ShouldNotBeEmpty)
			})
		})

		Convey("When segmenting one employee per grid cell", func() {
			// One representative rating per level: 3.0 low, 3.7 medium, 4.5 high.
			ratings := []float64{3.0, 3.7, 4.5}
			var emps []model.Employee
			for _, perf := range ratings {
				for _, pot := range ratings {
					emps = append(emps, model.Employee{PerformanceRating: perf, PotentialRating: pot})
				}
			}

			segs, err := engine.SegmentAll(emps)
			So(err, ShouldBeNil)

			Convey("Then all nine labels are reachable and distinct", func() {
				seen := make(map[string]bool)
				for _, seg := range segs {
					seen[seg.Segment] = true
				}
				So(len(seen), ShouldEqual, 9)
				So(seen["Star"], ShouldBeTrue)
				So(seen["Risk Zone"], ShouldBeTrue)
				So(seen["Enigma"], ShouldBeTrue)
			})
		})

		Convey("When segmenting a batch", func() {
			emps := []model.Employee{
				{ID: "a", PerformanceRating: 4.5, PotentialRating: 4.5},
				{ID: "b", PerformanceRating: 3.0, PotentialRating: 3.0},
				{ID: "c", PerformanceRating: 3.8, PotentialRating: 3.8},
			}

			segs, err := engine.SegmentAll(emps)

			Convey("Then output order mirrors input order", func() {
				So(err, ShouldBeNil)
				So(segs[0].EmployeeID, ShouldEqual, "a")
				So(segs[0].Segment, ShouldEqual, "Star")
				So(segs[1].EmployeeID, ShouldEqual, "b")
				So(segs[1].Segment, ShouldEqual, "Risk Zone")
				So(segs[2].EmployeeID, ShouldEqual, "c")
				So(segs[2].Segment, ShouldEqual, "Core Contributor")
			})
		})
	})

	Convey("Given an engine with custom thresholds", t, func() {
		engine := grid.NewEngine(grid.WithThresholds(grid.Thresholds{
			PerformanceLow:  2.0,
			PerformanceHigh: 4.5,
			PotentialLow:    2.0,
			PotentialHigh:   4.5,
		}))

		Convey("When segmenting an employee in the widened medium band", func() {
			seg, err := engine.Segment(model.Employee{PerformanceRating: 4.2, PotentialRating: 3.8})

			Convey("Then both axes classify as Medium", func() {
				So(err, ShouldBeNil)
				So(seg.Segment, ShouldEqual, "Core Contributor")
			})
		})

		Convey("When thresholds are inverted", func() {
			bad := grid.NewEngine(grid.WithThresholds(grid.Thresholds{
				PerformanceLow:  4.0,
				PerformanceHigh: 3.0,
				PotentialLow:    3.5,
				PotentialHigh:   4.0,
			}))

			_, err := bad.Segment(model.Employee{PerformanceRating: 3.5, PotentialRating: 3.5})

			Convey("Then the classification error propagates", func() {
				So(errors.Is(err, grid.ErrInvalidThresholds), ShouldBeTrue)
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a list of segmentations", t, func() {
		segs := []grid.Segmentation{
			{Segment: "Star"},
			{Segment: "Star"},
			{Segment: "Risk Zone"},
		}

		Convey("When summarizing", func() {
			summary := grid.Summarize(segs)

			Convey("Then counts aggregate per label", func() {
				So(summary["Star"], ShouldEqual, 2)
				So(summary["Risk Zone"], ShouldEqual, 1)
				So(len(summary), ShouldEqual, 2)
			})
		})

		Convey("When summarizing an empty list", func() {
			So(grid.Summarize(nil), ShouldBeEmpty)
		})
	})
}
