package pool_test

import (
	"context"
	"sync"
	"testing"
	"time"

	pool "github.com/okian/rostermatch/internal/adapters/pool"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running pool", t, func() {
		p := pool.New(pool.WithWorkers(2), pool.WithQueueSize(8))
		p.Start(ctx)
		defer p.Stop()

		Convey("When submitting tasks", func() {
			var wg sync.WaitGroup
			var mu sync.Mutex
			ran := 0

			for i := 0; i < 5; i++ {
				wg.Add(1)
				ok := p.Submit(ctx, func() {
					defer wg.Done()
					mu.Lock()
					ran++
					mu.Unlock()
				})
				So(ok, ShouldBeTrue)
			}
			wg.Wait()

			Convey("Then every task ran", func() {
				mu.Lock()
				defer mu.Unlock()
				So(ran, ShouldEqual, 5)
			})
		})
	})

	Convey("Given an unstarted pool with a tiny queue", t, func() {
		p := pool.New(pool.WithWorkers(1), pool.WithQueueSize(1))

		Convey("When the queue is full", func() {
			first := p.Submit(ctx, func() {})
			second := p.Submit(ctx, func() {})

			Convey("Then the overflow submit is rejected", func() {
				So(first, ShouldBeTrue)
				So(second, ShouldBeFalse)
			})
		})
	})

	Convey("Given a stopped pool", t, func() {
		p := pool.New(pool.WithWorkers(1))
		p.Start(ctx)
		p.Stop()

		Convey("When submitting after stop", func() {
			ok := p.Submit(ctx, func() {})

			Convey("Then the submit is rejected", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When stopping again", func() {
			So(func() { p.Stop() }, ShouldNotPanic)
		})
	})

	Convey("Given a cancelled context", t, func() {
		p := pool.New(pool.WithWorkers(1), pool.WithQueueSize(1))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		// Fill the queue so the send cannot proceed immediately.
		So(p.Submit(ctx, func() { time.Sleep(10 * time.Millisecond) }), ShouldBeTrue)

		Convey("When submitting with it", func() {
			ok := p.Submit(cancelled, func() {})

			Convey("Then the submit is rejected", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
