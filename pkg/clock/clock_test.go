package clock_test

import (
	"testing"
	"time"

	"github.com/okian/lootpool/pkg/clock"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFakeClock(t *testing.T) {
	Convey("Given a fake clock frozen at a known instant", t, func() {
		start := time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC)
		fake := clock.NewFake(start)

		Convey("Then Now returns that instant until advanced", func() {
			So(fake.Now(), ShouldEqual, start)
			So(fake.Now(), ShouldEqual, start)
		})

		Convey("When the clock is advanced", func() {
			fake.Advance(5 * time.Minute)

			Convey("Then Now reflects the new instant", func() {
				So(fake.Now(), ShouldEqual, start.Add(5*time.Minute))
			})
		})

		Convey("When the clock is set to an absolute time", func() {
			target := start.AddDate(0, 0, 7)
			fake.Set(target)

			Convey("Then Now returns exactly that time", func() {
				So(fake.Now(), ShouldEqual, target)
			})
		})
	})
}

func TestSystemClock(t *testing.T) {
	Convey("Given the system clock", t, func() {
		clk := clock.System()

		Convey("Then Now tracks wall time", func() {
			before := time.Now()
			got := clk.Now()
			after := time.Now()
			So(got, ShouldHappenOnOrBetween, before, after)
		})
	})
}
