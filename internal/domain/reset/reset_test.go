package reset_test

import (
	"testing"
	"time"

	"github.com/okian/lootpool/internal/domain/reset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWindow(t *testing.T) {
	cet := time.FixedZone("UTC+1", 3600)

	Convey("Given the Friday 19:00 UTC+1 anchor", t, func() {
		Convey("When now is Friday 18:00 local, an hour before the cutover", func() {
			// 2025-06-06 is a Friday.
			now := time.Date(2025, 6, 6, 18, 0, 0, 0, cet)
			last, _ := reset.Window(now, time.Friday, 19, 1)

			Convey("Then lastReset is the previous Friday, not today", func() {
				So(last.Year(), ShouldEqual, 2025)
				So(last.Month(), ShouldEqual, time.May)
				So(last.Day(), ShouldEqual, 30)
				So(last.Hour(), ShouldEqual, 19)
			})
		})

		Convey("When now is exactly the anchor hour on the anchor day", func() {
			now := time.Date(2025, 6, 6, 19, 0, 0, 0, cet)
			last, _ := reset.Window(now, time.Friday, 19, 1)

			Convey("Then lastReset is today's rollover", func() {
				So(last.Day(), ShouldEqual, 6)
				So(last.Month(), ShouldEqual, time.June)
				So(last.Hour(), ShouldEqual, 19)
				So(last.Equal(now), ShouldBeTrue)
			})
		})

		Convey("When now is one second past the anchor hour", func() {
			now := time.Date(2025, 6, 6, 19, 0, 1, 0, cet)
			last, _ := reset.Window(now, time.Friday, 19, 1)

			Convey("Then lastReset is still today's rollover", func() {
				So(last.Day(), ShouldEqual, 6)
			})
		})

		Convey("When now is mid-week", func() {
			// Tuesday.
			now := time.Date(2025, 6, 10, 3, 30, 0, 0, cet)
			last, next := reset.Window(now, time.Friday, 19, 1)

			Convey("Then the window brackets now", func() {
				So(last.After(now), ShouldBeFalse)
				So(next.After(now), ShouldBeTrue)
			})

			Convey("Then lastReset lands on the anchor weekday and hour", func() {
				So(last.Weekday(), ShouldEqual, time.Friday)
				So(last.Hour(), ShouldEqual, 19)
				So(last.Minute(), ShouldEqual, 0)
				So(last.Second(), ShouldEqual, 0)
			})
		})

		Convey("For a spread of arbitrary instants", func() {
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

			Convey("Then lastReset <= now < nextReset and the span is exactly 7 days", func() {
				for i := 0; i < 200; i++ {
					now := base.Add(time.Duration(i) * 17 * time.Hour)
					last, next := reset.Window(now, time.Friday, 19, 1)
					So(last.After(now), ShouldBeFalse)
					So(now.Before(next), ShouldBeTrue)
					So(next.Sub(last), ShouldEqual, 7*24*time.Hour)
				}
			})
		})

		Convey("When given UTC input", func() {
			// Friday 17:30 UTC == Friday 18:30 UTC+1, still before the cutover.
			now := time.Date(2025, 6, 6, 17, 30, 0, 0, time.UTC)
			last, _ := reset.Window(now, time.Friday, 19, 1)

			Convey("Then the anchor-day check uses the fixed offset", func() {
				So(last.Day(), ShouldEqual, 30)
				So(last.Month(), ShouldEqual, time.May)
			})
		})
	})

	Convey("Given a different anchor", t, func() {
		Convey("When pools roll over Monday 00:00 UTC", func() {
			// Sunday.
			now := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
			last, next := reset.Window(now, time.Monday, 0, 0)

			Convey("Then the window uses that anchor", func() {
				So(last.Weekday(), ShouldEqual, time.Monday)
				So(last.Day(), ShouldEqual, 2)
				So(next.Day(), ShouldEqual, 9)
			})
		})
	})
}
