package enrichment_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"feedback-backend/internal/enrichment"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEngineEnrich(t *testing.T) {
	Convey("Given an engine", t, func() {
		ctx := context.Background()

		Convey("When every call succeeds", func() {
			client := &fakeClient{respond: func(prompt string) (string, error) {
				switch {
				case strings.Contains(prompt, "customer service representative"):
					return "Thanks for telling us!", nil
				case strings.Contains(prompt, "Summarize"):
					return "Saved-card checkout times out.", nil
				default:
					return `["Investigate checkout timeouts"]`, nil
				}
			}}
			engine := enrichment.NewEngine(enrichment.NewGenerators(client))

			out := engine.Enrich(ctx, 2, longReview)
			So(out.UserResponse, ShouldEqual, "Thanks for telling us!")
			So(out.Summary, ShouldEqual, "Saved-card checkout times out.")
			So(out.RecommendedActions, ShouldResemble, []string{"Investigate checkout timeouts"})
			So(client.calls.Load(), ShouldEqual, int32(3))
		})

		Convey("When every call fails the fallbacks form a complete set", func() {
			engine := enrichment.NewEngine(enrichment.NewGenerators(failing()))

			for rating := 1; rating <= 5; rating++ {
				out := engine.Enrich(ctx, rating, longReview)
				So(out.UserResponse, ShouldNotBeEmpty)
				So(out.Summary, ShouldEqual, longReview)
				So(len(out.RecommendedActions), ShouldBeGreaterThanOrEqualTo, 1)
			}
		})

		Convey("When one artifact fails the others are unaffected", func() {
			client := &fakeClient{respond: func(prompt string) (string, error) {
				if strings.Contains(prompt, "Summarize") {
					return "", errUnavailable
				}
				if strings.Contains(prompt, "customer success manager") {
					return `["Send a thank-you note"]`, nil
				}
				return "Glad you enjoyed it!", nil
			}}
			engine := enrichment.NewEngine(enrichment.NewGenerators(client))

			out := engine.Enrich(ctx, 5, longReview)
			So(out.UserResponse, ShouldEqual, "Glad you enjoyed it!")
			So(out.Summary, ShouldEqual, longReview)
			So(out.RecommendedActions, ShouldResemble, []string{"Send a thank-you note"})
		})

		Convey("The three calls run concurrently", func() {
			client := &fakeClient{respond: func(string) (string, error) {
				time.Sleep(100 * time.Millisecond)
				return `["ok"]`, nil
			}}
			engine := enrichment.NewEngine(enrichment.NewGenerators(client))

			start := time.Now()
			engine.Enrich(ctx, 3, longReview)
			So(time.Since(start), ShouldBeLessThan, 250*time.Millisecond)
		})

		Convey("A hung artifact only costs its own timeout", func() {
			release := make(chan struct{})
			defer close(release)
			client := &fakeClient{respond: func(prompt string) (string, error) {
				if strings.Contains(prompt, "customer success manager") {
					<-release
				}
				return "fine", nil
			}}
			engine := enrichment.NewEngine(enrichment.NewGenerators(client, enrichment.WithCallTimeout(50*time.Millisecond)))

			out := engine.Enrich(ctx, 4, longReview)
			So(out.UserResponse, ShouldEqual, "fine")
			So(out.Summary, ShouldEqual, "fine")
			So(out.RecommendedActions, ShouldResemble, []string{
				"Thank customer for positive feedback",
				"Share feedback with team for motivation",
			})
		})
	})
}
