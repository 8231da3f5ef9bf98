package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedback-backend/internal/service"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatsAggregator(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		stats, err := service.NewStatsAggregator(&memoryStore{}).Compute(ctx, now)
		So(err, ShouldBeNil)
		So(stats.TotalCount, ShouldEqual, int64(0))
		So(stats.AverageRating, ShouldEqual, 0.0)
		So(stats.RecentCount, ShouldEqual, int64(0))
		So(stats.RatingDistribution, ShouldBeEmpty)
		So(stats.RatingDistribution, ShouldNotBeNil)
	})

	Convey("Given ratings 5,5,4,3,1", t, func() {
		store := &memoryStore{}
		for _, r := range []int{5, 5, 4, 3, 1} {
			store.add(r, now.Add(-time.Hour))
		}
		stats, err := service.NewStatsAggregator(store).Compute(ctx, now)
		So(err, ShouldBeNil)
		So(stats.TotalCount, ShouldEqual, int64(5))
		So(stats.AverageRating, ShouldEqual, 3.6)
		So(stats.RatingDistribution, ShouldResemble, map[int]int64{5: 2, 4: 1, 3: 1, 1: 1})
	})

	Convey("Averages round to one decimal", t, func() {
		store := &memoryStore{}
		for _, r := range []int{5, 4, 4} {
			store.add(r, now)
		}
		stats, err := service.NewStatsAggregator(store).Compute(ctx, now)
		So(err, ShouldBeNil)
		So(stats.AverageRating, ShouldEqual, 4.3)

		store.add(4, now)
		stats, err = service.NewStatsAggregator(store).Compute(ctx, now)
		So(err, ShouldBeNil)
		So(stats.AverageRating, ShouldEqual, 4.3)

		store.add(5, now)
		store.add(5, now)
		stats, err = service.NewStatsAggregator(store).Compute(ctx, now)
		So(err, ShouldBeNil)
		So(stats.AverageRating, ShouldEqual, 4.5)
	})

	Convey("The recent window is the trailing 24 hours", t, func() {
		store := &memoryStore{}
		store.add(3, now.Add(-24*time.Hour-time.Second))
		store.add(3, now.Add(-24*time.Hour))
		store.add(3, now.Add(-time.Second))

		stats, err := service.NewStatsAggregator(store).Compute(ctx, now)
		So(err, ShouldBeNil)
		So(stats.TotalCount, ShouldEqual, int64(3))
		So(stats.RecentCount, ShouldEqual, int64(2))
	})

	Convey("Store failures surface as storage errors", t, func() {
		_, err := service.NewStatsAggregator(&memoryStore{err: errors.New("down")}).Compute(ctx, now)
		So(errors.Is(err, service.ErrStorage), ShouldBeTrue)
	})
}
