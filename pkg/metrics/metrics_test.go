package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be preserved", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "talentd")
				So(manager.subsystem, ShouldEqual, "succession")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording business metrics", func() {
			Convey("Then segmentation and analysis counters should not panic", func() {
				So(func() {
					RecordSegmentation()
					RecordAnalysisProcessed()
					RecordAnalysisDuplicate()
					RecordGapScoringLatency(42.0)
					RecordReadinessPrediction()
					RecordPlanGenerated()
					RecordMentorLookup()
					RecordLLMFallback("gap_scorer")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording operational metrics", func() {
			Convey("Then gauges should accept updates", func() {
				So(func() {
					UpdateQueueSize(100)
					UpdateQueueCapacity(1000)
					UpdateQueueUtilization(0.1)
					UpdateWorkerCount(8)
					UpdateWorkerActiveCount(4)
					UpdateWorkerIdleCount(4)
					UpdateTotalEmployees(250)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then vector metrics should accept labels", func() {
				So(func() {
					RecordHTTPRequest("segment", "POST", "200")
					RecordHTTPRequestDuration("segment", "POST", "200", 12.5)
					RecordErrorByComponent("gap_scorer", "external_failure")
					RecordErrorByType("client_error", "warning")
					RecordErrorByEndpoint("readiness", "POST", "server_error")
					RecordErrorLatency("http", "server_error", 5.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording repository and system metrics", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					UpdateRepositoryShardCount(8)
					UpdateRepositoryRecordsTotal(500)
					RecordRepositoryUpdateLatency(1.2)
					RecordRepositoryQueryLatency(0.4)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(42)
					RecordSystemGCPauseTime(0.8)
				}, ShouldNotPanic)
			})
		})

		Convey("When asking for the registry", func() {
			Convey("Then the custom registry should be returned", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
