// Package reset computes the weekly rollover window for reward pools.
package reset

import (
	"fmt"
	"time"
)

// Default anchor: pools roll over Friday 19:00 at UTC+1.
const (
	DefaultWeekday   = time.Friday
	DefaultHour      = 19
	DefaultUTCOffset = 1
)

const (
	daysPerWeek    = 7
	secondsPerHour = 3600
	hoursPerWeek   = daysPerWeek * 24
)

// Window returns the previous and next rollover for the given anchor.
// The anchor is a fixed weekday and hour in a fixed UTC offset; lastReset is
// the most recent occurrence at or before now, nextReset is exactly one week
// later. Pure and deterministic.
func Window(now time.Time, anchorWeekday time.Weekday, anchorHour, utcOffsetHours int) (lastReset, nextReset time.Time) {
	loc := time.FixedZone(fmt.Sprintf("UTC%+d", utcOffsetHours), utcOffsetHours*secondsPerHour)
	local := now.In(loc)

	daysSince := (int(local.Weekday()) - int(anchorWeekday) + daysPerWeek) % daysPerWeek
	// On the anchor day but before the anchor hour, this week's rollover has
	// not happened yet; use last week's occurrence.
	if daysSince == 0 && local.Hour() < anchorHour {
		daysSince = daysPerWeek
	}

	anchor := local.AddDate(0, 0, -daysSince)
	lastReset = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), anchorHour, 0, 0, 0, loc)
	nextReset = lastReset.Add(hoursPerWeek * time.Hour)
	return lastReset, nextReset
}
