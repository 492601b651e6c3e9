package prefetch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/lootpool/internal/adapters/prefetch"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeWarmer struct {
	calls atomic.Int64
	err   error
}

func (f *fakeWarmer) WarmCaches(context.Context) (int, error) {
	f.calls.Add(1)
	return 4, f.err
}

func TestPrefetcher(t *testing.T) {
	Convey("Given a prefetcher with a short interval", t, func() {
		warmer := &fakeWarmer{}
		p := prefetch.New(warmer, prefetch.WithInterval(20*time.Millisecond))

		Convey("When it runs for a few intervals", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				p.Run(ctx)
				close(done)
			}()

			time.Sleep(70 * time.Millisecond)
			cancel()
			<-done

			Convey("Then it warmed immediately and then periodically", func() {
				So(warmer.calls.Load(), ShouldBeGreaterThanOrEqualTo, 3)
			})
		})

		Convey("When warming keeps failing", func() {
			warmer.err = errors.New("upstream down")
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				p.Run(ctx)
				close(done)
			}()

			time.Sleep(50 * time.Millisecond)
			cancel()

			Convey("Then the loop keeps running until canceled", func() {
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("prefetcher did not stop on cancel")
				}
				So(warmer.calls.Load(), ShouldBeGreaterThanOrEqualTo, 2)
			})
		})
	})
}
