package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"feedback-backend/internal/enrichment"
	"feedback-backend/internal/service"

	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newService(store *memoryStore, opts ...service.Option) *service.FeedbackService {
	engine := enrichment.NewEngine(enrichment.NewGenerators(failingClient{}))
	return service.NewFeedbackService(store, engine, opts...)
}

func TestSubmitValidation(t *testing.T) {
	Convey("Given a feedback service", t, func() {
		store := &memoryStore{}
		svc := newService(store)
		ctx := context.Background()

		cases := []struct {
			name string
			in   service.SubmitInput
			want error
		}{
			{"rating zero", service.SubmitInput{Rating: intPtr(0), Review: strPtr("x")}, service.ErrInvalidRating},
			{"rating six", service.SubmitInput{Rating: intPtr(6), Review: strPtr("x")}, service.ErrInvalidRating},
			{"missing rating", service.SubmitInput{Review: strPtr("x")}, service.ErrInvalidRating},
			{"missing review", service.SubmitInput{Rating: intPtr(3)}, service.ErrReviewRequired},
			{"oversized review", service.SubmitInput{Rating: intPtr(3), Review: strPtr(strings.Repeat("a", 5001))}, service.ErrReviewTooLong},
		}

		for _, tc := range cases {
			Convey("It rejects "+tc.name, func() {
				res, err := svc.Submit(ctx, tc.in)
				So(res, ShouldBeNil)
				So(errors.Is(err, tc.want), ShouldBeTrue)

				var verr *service.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(store.records, ShouldBeEmpty)
			})
		}

		Convey("It measures length after trimming", func() {
			review := "  " + strings.Repeat("a", 5000) + "\n\n"
			_, err := svc.Submit(ctx, service.SubmitInput{Rating: intPtr(3), Review: &review})
			So(err, ShouldBeNil)
			So(store.records[0].Review, ShouldHaveLength, 5000)
		})

		Convey("It accepts an empty review", func() {
			res, err := svc.Submit(ctx, service.SubmitInput{Rating: intPtr(3), Review: strPtr("")})
			So(err, ShouldBeNil)
			So(res.ID, ShouldNotBeEmpty)
			So(store.records[0].Summary, ShouldEqual, "No review text provided")
		})
	})
}

func TestSubmitWithFailingGeneration(t *testing.T) {
	Convey("Given generation that always fails", t, func() {
		store := &memoryStore{}
		now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
		svc := newService(store, service.WithClock(fixedClock(now)))
		ctx := context.Background()

		Convey("Every rating tier still produces a complete record", func() {
			want := map[int]int{1: 3, 2: 3, 3: 2, 4: 2, 5: 2}
			for rating := 1; rating <= 5; rating++ {
				res, err := svc.Submit(ctx, service.SubmitInput{Rating: intPtr(rating), Review: strPtr("  The app crashes when I upload photos.  ")})
				So(err, ShouldBeNil)
				So(res.UserResponse, ShouldStartWith, "Thank you for your ")
				So(res.Timestamp.Equal(now), ShouldBeTrue)

				stored := store.records[len(store.records)-1]
				So(stored.Review, ShouldEqual, "The app crashes when I upload photos.")
				So(stored.Summary, ShouldEqual, "The app crashes when I upload photos.")
				So(stored.RecommendedActions, ShouldHaveLength, want[rating])
				So(string(stored.Status), ShouldEqual, "success")
				So(stored.ID, ShouldEqual, res.ID)
			}
		})

		Convey("Identical submissions persist distinct records", func() {
			in := service.SubmitInput{Rating: intPtr(4), Review: strPtr("Nice")}
			a, err := svc.Submit(ctx, in)
			So(err, ShouldBeNil)
			b, err := svc.Submit(ctx, in)
			So(err, ShouldBeNil)
			So(a.ID, ShouldNotEqual, b.ID)
			So(store.records, ShouldHaveLength, 2)
		})
	})
}

func TestSubmitStorageFailure(t *testing.T) {
	Convey("Given a store that rejects inserts", t, func() {
		boom := errors.New("connection refused")
		store := &memoryStore{err: boom}
		svc := newService(store)

		res, err := svc.Submit(context.Background(), service.SubmitInput{Rating: intPtr(5), Review: strPtr("Great")})
		So(res, ShouldBeNil)
		So(errors.Is(err, service.ErrStorage), ShouldBeTrue)
		So(errors.Is(err, boom), ShouldBeTrue)

		var serr *service.StorageError
		So(errors.As(err, &serr), ShouldBeTrue)

		var verr *service.ValidationError
		So(errors.As(err, &verr), ShouldBeFalse)
	})
}

func TestSubmitNotifiesOperators(t *testing.T) {
	Convey("Given a notifier limited to low ratings", t, func() {
		alerts := make(channelNotifier, 4)
		svc := newService(&memoryStore{}, service.WithNotifier(alerts, 2))
		ctx := context.Background()

		_, err := svc.Submit(ctx, service.SubmitInput{Rating: intPtr(5), Review: strPtr("Love it")})
		So(err, ShouldBeNil)
		_, err = svc.Submit(ctx, service.SubmitInput{Rating: intPtr(1), Review: strPtr("Broken")})
		So(err, ShouldBeNil)

		select {
		case msg := <-alerts:
			So(msg, ShouldContainSubstring, "(1/5)")
			So(msg, ShouldContainSubstring, "Reach out to customer immediately")
		case <-time.After(2 * time.Second):
			So("no alert published", ShouldBeEmpty)
		}

		select {
		case msg := <-alerts:
			So(msg, ShouldBeEmpty)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestList(t *testing.T) {
	Convey("Given stored records", t, func() {
		store := &memoryStore{}
		base := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			store.add(i%5+1, base.Add(time.Duration(i)*time.Hour))
		}
		svc := newService(store)
		ctx := context.Background()

		Convey("List returns newest first", func() {
			records, err := svc.List(ctx, 2)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)
			So(records[0].Timestamp.After(records[1].Timestamp), ShouldBeTrue)
		})

		Convey("Out-of-range limits are clamped", func() {
			records, err := svc.List(ctx, 0)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 5)

			records, err = svc.List(ctx, 5000)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 5)
		})

		Convey("Store failures surface as storage errors", func() {
			store.err = errors.New("timeout")
			_, err := svc.List(ctx, 10)
			So(errors.Is(err, service.ErrStorage), ShouldBeTrue)
		})
	})
}
