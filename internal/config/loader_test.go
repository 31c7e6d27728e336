package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/successionai/talentd/internal/config"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"TALENTD_CONFIG",
		"TALENTD_ADDR",
		"TALENTD_QUEUE_SIZE",
		"TALENTD_WORKER_COUNT",
		"TALENTD_DEDUPE_SIZE",
		"TALENTD_PERFORMANCE_LOW_THRESHOLD",
		"TALENTD_PERFORMANCE_HIGH_THRESHOLD",
		"TALENTD_POTENTIAL_LOW_THRESHOLD",
		"TALENTD_POTENTIAL_HIGH_THRESHOLD",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.AnalysisQueueSize, convey.ShouldEqual, 50_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TALENTD_ADDR", ":8080")
			_ = os.Setenv("TALENTD_QUEUE_SIZE", "10000")
			_ = os.Setenv("TALENTD_WORKER_COUNT", "16")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.AnalysisQueueSize, convey.ShouldEqual, 10000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
			})
		})

		convey.Convey("When thresholds are out of order", func() {
			_ = os.Setenv("TALENTD_PERFORMANCE_LOW_THRESHOLD", "4.5")
			_ = os.Setenv("TALENTD_PERFORMANCE_HIGH_THRESHOLD", "4.0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail with an invalid-config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
