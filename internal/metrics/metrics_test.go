package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"feedback-backend/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given a fresh metrics set", t, func() {
		m := metrics.New()

		Convey("Generations are counted per artifact and result", func() {
			m.RecordGeneration("summary", metrics.ResultFallback, 20*time.Millisecond)
			m.RecordGeneration("summary", metrics.ResultFallback, 10*time.Millisecond)
			m.RecordGeneration("user_reply", metrics.ResultGenerated, time.Second)

			n, err := testutil.GatherAndCount(m.Registry(), "feedback_enrichment_generations_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})

		Convey("The handler exposes recorded series", func() {
			m.RecordSubmission(metrics.OutcomeAccepted)
			m.RecordHTTPRequest("/api/feedback", "POST", "201", 5*time.Millisecond)

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)

			So(string(body), ShouldContainSubstring, `feedback_submissions_total{outcome="accepted"} 1`)
			So(string(body), ShouldContainSubstring, `feedback_http_requests_total{code="201",method="POST",route="/api/feedback"} 1`)
		})

		Convey("A nil set is safe to record on", func() {
			var nilMetrics *metrics.Metrics
			So(func() { nilMetrics.RecordSubmission(metrics.OutcomeInvalid) }, ShouldNotPanic)
		})
	})
}
