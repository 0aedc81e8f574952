package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(registry),
			WithNamespace("test"),
			WithSubsystem("run"),
			WithCustomLabels(map[string]string{"env": "test"}),
		)

		Convey("When recording a local run", func() {
			m.RecordRun("local", 3, 2, 1)
			m.RecordRuleHit("exact-code")
			m.RecordRuleHit("exact-code")
			m.RecordRuleHit("lecture-theatre")

			Convey("Then the counters reflect the partition", func() {
				So(testutil.ToFloat64(m.venuesAttempted.WithLabelValues("local")), ShouldEqual, 3)
				So(testutil.ToFloat64(m.venuesMatched.WithLabelValues("local")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.venuesUnmatched.WithLabelValues("local")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.ruleHits.WithLabelValues("exact-code")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.ruleHits.WithLabelValues("lecture-theatre")), ShouldEqual, 1)
			})
		})

		Convey("When recording remote outcomes", func() {
			m.RecordGeocodeCandidate(OutcomeAccepted)
			m.RecordGeocodeCandidate(OutcomeRejected)
			m.RecordEnrichment(LookupFailed)
			m.RecordGeocodeBatch(120 * time.Millisecond)

			Convey("Then each outcome is labelled", func() {
				So(testutil.ToFloat64(m.geocodeCandidates.WithLabelValues(OutcomeAccepted)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.geocodeCandidates.WithLabelValues(OutcomeRejected)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.enrichmentLookups.WithLabelValues(LookupFailed)), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.geocodeBatchLatency), ShouldEqual, 1)
			})
		})

		Convey("When updating state gauges and failures", func() {
			m.UpdateState(10, 4)
			m.RecordPersistenceFailure("final")

			So(testutil.ToFloat64(m.stateMatched), ShouldEqual, 10)
			So(testutil.ToFloat64(m.stateUnmatched), ShouldEqual, 4)
			So(testutil.ToFloat64(m.persistenceFailures.WithLabelValues("final")), ShouldEqual, 1)
		})

		Convey("When metrics are disabled", func() {
			off := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
			off.RecordRun("remote", 5, 5, 0)

			Convey("Then nothing is counted", func() {
				So(testutil.ToFloat64(off.venuesAttempted.WithLabelValues("remote")), ShouldEqual, 0)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given the global registry has samples", t, func() {
		RecordRun("local", 1, 1, 0)
		RecordRunDuration(time.Second)
		path := filepath.Join(t.TempDir(), "venuematch.prom")

		Convey("When writing the textfile", func() {
			err := WriteTextfile(path)

			Convey("Then the file holds the exposition format", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "venuematch_reconcile_venues_attempted_total")
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))

			So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
		})
	})
}
