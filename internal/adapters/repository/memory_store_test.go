package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store with a controllable clock", t, func() {
		ctx := context.Background()
		clock := newFakeClock()
		store := NewMemoryStore(ctx, WithClock(clock.Now), WithSweepInterval(time.Hour))
		Reset(func() { _ = store.Close() })

		Convey("When a key is set with a TTL", func() {
			So(store.Set(ctx, "1:Lux:Flash", "Lux:Flash", 300*time.Second), ShouldBeNil)

			Convey("Then it exists before the TTL elapses", func() {
				clock.Advance(299 * time.Second)
				ok, err := store.Exists(ctx, "1:Lux:Flash")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)

				v, found := store.Value(ctx, "1:Lux:Flash")
				So(found, ShouldBeTrue)
				So(v, ShouldEqual, "Lux:Flash")
			})

			Convey("Then it is gone once the TTL elapses", func() {
				clock.Advance(300 * time.Second)
				ok, err := store.Exists(ctx, "1:Lux:Flash")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)

				_, found, err := store.Remaining(ctx, "1:Lux:Flash")
				So(err, ShouldBeNil)
				So(found, ShouldBeFalse)
			})

			Convey("Then Remaining reports the time left", func() {
				clock.Advance(100 * time.Second)
				d, found, err := store.Remaining(ctx, "1:Lux:Flash")
				So(err, ShouldBeNil)
				So(found, ShouldBeTrue)
				So(d, ShouldEqual, 200*time.Second)
			})

			Convey("Then setting it again restarts the TTL", func() {
				clock.Advance(250 * time.Second)
				So(store.Set(ctx, "1:Lux:Flash", "Lux:Flash", 300*time.Second), ShouldBeNil)
				clock.Advance(100 * time.Second)

				ok, err := store.Exists(ctx, "1:Lux:Flash")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When a key was never set", func() {
			ok, err := store.Exists(ctx, "missing")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When expired entries are swept", func() {
			So(store.Set(ctx, "short", "a", time.Second), ShouldBeNil)
			So(store.Set(ctx, "long", "b", time.Minute), ShouldBeNil)
			clock.Advance(2 * time.Second)

			removed := store.Sweep()

			Convey("Then only the expired entry is removed", func() {
				So(removed, ShouldEqual, 1)
				So(store.Len(), ShouldEqual, 1)
				ok, _ := store.Exists(ctx, "long")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the store is closed", func() {
			So(store.Close(), ShouldBeNil)

			Convey("Then Set fails with ErrClosed", func() {
				So(store.Set(ctx, "k", "v", time.Second), ShouldEqual, ErrClosed)
			})

			Convey("Then closing again is harmless", func() {
				So(store.Close(), ShouldBeNil)
			})
		})
	})
}

func TestMemoryStoreBackgroundSweep(t *testing.T) {
	Convey("Given a store sweeping every few milliseconds", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		store := NewMemoryStore(ctx, WithSweepInterval(5*time.Millisecond))
		defer store.Close()

		So(store.Set(ctx, "k", "v", time.Millisecond), ShouldBeNil)

		Convey("Then the expired entry is reclaimed without a read", func() {
			deadline := time.Now().Add(time.Second)
			for store.Len() > 0 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(store.Len(), ShouldEqual, 0)
		})
	})
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	defer store.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Set(ctx, "k", "v", time.Minute)
				_, _ = store.Exists(ctx, "k")
			}
		}()
	}
	wg.Wait()

	if ok, _ := store.Exists(ctx, "k"); !ok {
		t.Fatal("expected key to exist after concurrent writes")
	}
}
