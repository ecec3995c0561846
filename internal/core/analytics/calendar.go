// Package analytics turns raw completion histories into streaks, rates,
// weekday rankings, trends and insights. Every function is a pure computation
// over an in-memory snapshot: the current moment and the calendar are always
// passed in explicitly.
package analytics

import (
	"fmt"
	"time"
)

// Calendar fixes the timezone and week start used for every day boundary.
type Calendar struct {
	Location     *time.Location
	FirstWeekday time.Weekday
}

func NewCalendar(loc *time.Location, firstWeekday time.Weekday) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Location: loc, FirstWeekday: firstWeekday}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// DayKey is an instant truncated to a calendar day. It is comparable and is
// the only unit used for "same day" checks.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

func newDayKey(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// civil returns the day as midnight UTC, which has no DST transitions, so
// day arithmetic on it is exact.
func (k DayKey) civil() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

func (k DayKey) ordinal() int64 {
	return k.civil().Unix() / 86400
}

func (k DayKey) AddDays(n int) DayKey {
	return newDayKey(time.Date(k.Year, k.Month, k.Day+n, 0, 0, 0, 0, time.UTC))
}

func (k DayKey) Weekday() time.Weekday {
	return k.civil().Weekday()
}

func (k DayKey) Before(other DayKey) bool {
	return k.ordinal() < other.ordinal()
}

// In returns the first instant of the day in loc.
func (k DayKey) In(loc *time.Location) time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// StartOfDay truncates t to its calendar day in the calendar's timezone.
func (c Calendar) StartOfDay(t time.Time) DayKey {
	return newDayKey(t.In(c.location()))
}

func (c Calendar) IsSameDay(a, b time.Time) bool {
	return c.StartOfDay(a) == c.StartOfDay(b)
}

// DaysBetweenKeys is the whole-day difference b - a.
func DaysBetweenKeys(a, b DayKey) int {
	return int(b.ordinal() - a.ordinal())
}

// DaysBetween compares day-truncated values only: 23:30 and 00:10 the next
// morning are one day apart.
func (c Calendar) DaysBetween(a, b time.Time) int {
	return DaysBetweenKeys(c.StartOfDay(a), c.StartOfDay(b))
}

// IsWithinLastNDays reports 0 <= days(t, now) < n. Today is day 0; instants
// after today are outside every window.
func (c Calendar) IsWithinLastNDays(t time.Time, n int, now time.Time) bool {
	d := c.DaysBetween(t, now)
	return d >= 0 && d < n
}

// StartOfWeek returns the first day of the locale week containing k.
func (c Calendar) StartOfWeek(k DayKey) DayKey {
	offset := (int(k.Weekday()) - int(c.FirstWeekday) + 7) % 7
	return k.AddDays(-offset)
}

func (c Calendar) StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.In(c.location()).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, c.location())
}

func (c Calendar) StartOfPreviousMonth(t time.Time) time.Time {
	y, m, _ := t.In(c.location()).Date()
	return time.Date(y, m-1, 1, 0, 0, 0, 0, c.location())
}

// DistinctDays collapses instants to the set of days they fall on.
func (c Calendar) DistinctDays(instants []time.Time) map[DayKey]struct{} {
	days := make(map[DayKey]struct{}, len(instants))
	for _, t := range instants {
		days[c.StartOfDay(t)] = struct{}{}
	}
	return days
}
