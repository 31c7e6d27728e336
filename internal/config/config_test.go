package config_test

import (
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/successionai/talentd/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.AnalysisQueueSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.MaxMentorResults, convey.ShouldEqual, 3)
		})

		convey.Convey("Then nine-box thresholds should match the defaults", func() {
			convey.So(cfg.PerformanceLowThreshold, convey.ShouldEqual, 3.5)
			convey.So(cfg.PerformanceHighThreshold, convey.ShouldEqual, 4.0)
			convey.So(cfg.PotentialLowThreshold, convey.ShouldEqual, 3.5)
			convey.So(cfg.PotentialHighThreshold, convey.ShouldEqual, 4.0)
		})

		convey.Convey("Then default required scores should be populated", func() {
			convey.So(cfg.DefaultRequiredScores["technical"], convey.ShouldEqual, 75)
			convey.So(cfg.DefaultRequiredScores["communication"], convey.ShouldEqual, 75)
			convey.So(cfg.DefaultRequiredScores["leadership"], convey.ShouldEqual, 70)
		})
	})
}
