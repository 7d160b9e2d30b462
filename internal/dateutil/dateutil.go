// Package dateutil normalizes timestamps to the app's reference timezone.
//
// All worship records are keyed by calendar day in Malaysia time (UTC+8,
// no DST). A day key is stored as the UTC instant of 00:00 of that
// calendar day, so date-range queries compare plain UTC timestamps.
package dateutil

import "time"

// Weeks start on Sunday, applied uniformly to weekly progress and
// leaderboard boundaries.
const weekStartDay = time.Sunday

var appZone = time.FixedZone("Asia/Kuala_Lumpur", 8*60*60)

// DayStart returns the calendar day of t in Malaysia time, materialized
// as a UTC midnight instant.
func DayStart(t time.Time) time.Time {
	local := t.In(appZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the YYYY-MM-DD key of t's Malaysia-time calendar day.
func DayKey(t time.Time) string {
	return t.In(appZone).Format("2006-01-02")
}

// WeekRange returns the inclusive [start, end] day-start bounds of the
// week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	day := DayStart(t)
	offset := int(t.In(appZone).Weekday() - weekStartDay)
	if offset < 0 {
		offset += 7
	}
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the inclusive [start, end] day-start bounds of the
// month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	local := t.In(appZone)
	return MonthRangeOf(local.Year(), int(local.Month())-1)
}

// MonthRangeOf returns the bounds for an explicit month. month is
// zero-based (0 = January), matching the API contract.
func MonthRangeOf(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DaysBetween enumerates the day-start instants from start to end
// inclusive. Both arguments must already be day-start values.
func DaysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
