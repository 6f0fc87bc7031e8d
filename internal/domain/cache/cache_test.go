package cache_test

import (
	"context"
	"fmt"
	"testing"

	cache "github.com/okian/rostermatch/internal/domain/cache"
	"github.com/okian/rostermatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func resolution(id string, score float64) model.Resolution {
	return model.Resolution{
		Matches: []model.Match{{Entity: model.Entity{ID: id}, Score: score}},
	}
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new in-memory cache", t, func() {
		Convey("When creating with default options", func() {
			c := cache.NewInMemoryCache()

			Convey("Then it starts empty", func() {
				So(c, ShouldNotBeNil)
				So(c.Size(), ShouldEqual, 0)
			})
		})

		Convey("When storing and retrieving", func() {
			c := cache.NewInMemoryCache()
			c.Put(ctx, "k1", resolution("lebron-james", 90))

			Convey("Then the stored resolution comes back", func() {
				got, ok := c.Get(ctx, "k1")
				So(ok, ShouldBeTrue)
				So(got.Matches[0].Entity.ID, ShouldEqual, "lebron-james")
				So(c.Size(), ShouldEqual, 1)
			})

			Convey("Then a missing key reports a miss", func() {
				_, ok := c.Get(ctx, "other")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When re-putting an existing key", func() {
			c := cache.NewInMemoryCache()
			c.Put(ctx, "k1", resolution("lebron-james", 90))
			c.Put(ctx, "k1", resolution("james-harden", 80))

			Convey("Then the value is replaced without growing the cache", func() {
				got, ok := c.Get(ctx, "k1")
				So(ok, ShouldBeTrue)
				So(got.Matches[0].Entity.ID, ShouldEqual, "james-harden")
				So(c.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the cache is bounded and overfilled", func() {
			c := cache.NewInMemoryCache(cache.WithMaxSize(3))
			for i := 1; i <= 4; i++ {
				c.Put(ctx, fmt.Sprintf("k%d", i), resolution("id", float64(i)))
			}

			Convey("Then the size never exceeds the bound", func() {
				So(c.Size(), ShouldEqual, 3)
			})

			Convey("Then the oldest entry was evicted", func() {
				_, ok := c.Get(ctx, "k1")
				So(ok, ShouldBeFalse)
				_, ok = c.Get(ctx, "k4")
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestKey(t *testing.T) {
	Convey("Given the cache key builder", t, func() {
		Convey("When versions differ", func() {
			Convey("Then keys differ for the same text", func() {
				So(cache.Key("v1", "text"), ShouldNotEqual, cache.Key("v2", "text"))
			})
		})

		Convey("When texts differ", func() {
			Convey("Then keys differ for the same version", func() {
				So(cache.Key("v1", "a"), ShouldNotEqual, cache.Key("v1", "b"))
			})
		})
	})
}
