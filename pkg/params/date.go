// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package params

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearOnly     = regexp.MustCompile(`^(\d{4})$`)
	yearMonth    = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	calendarDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	basicDate    = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	weekDate     = regexp.MustCompile(`^(\d{4})-?W(\d{2})(?:-?([1-7]))?$`)
	ordinalDate  = regexp.MustCompile(`^(\d{4})-?(\d{3})$`)
	timeOfDay    = regexp.MustCompile(`^(\d{2})(?::?(\d{2})(?::?(\d{2})(?:[.,](\d{1,9}))?)?)?(Z|[+-]\d{2}(?::?\d{2})?)?$`)
)

// ParseDate parses the partial ISO 8601 forms accepted for expiration dates:
// calendar dates with optional month and day, week dates, ordinal dates and
// an optional time of day with fractional seconds and a zone offset.
// Dates without an offset are taken as UTC.
func ParseDate(text string) (time.Time, error) {
	t, ok := parseDate(strings.TrimSpace(text))
	if !ok {
		return time.Time{}, NewInvalidParameterError(
			ExpirationDateParam,
			text,
			`cannot be parsed as a date (try e.g. "2020-09-28", "2020-09-28T13:56")`,
		)
	}
	return t, nil
}

func parseDate(text string) (time.Time, bool) {
	datePart, timePart, hasTime := strings.Cut(text, "T")
	if !hasTime {
		datePart, timePart, hasTime = strings.Cut(text, " ")
	}
	year, yearDay, ok := parseDay(datePart)
	if !ok {
		return time.Time{}, false
	}
	var (
		clock time.Duration
		loc   = time.UTC
	)
	if hasTime {
		clock, loc, ok = parseTimeOfDay(timePart)
		if !ok {
			return time.Time{}, false
		}
	}
	day := time.Date(year, time.January, yearDay, 0, 0, 0, 0, loc)
	return day.Add(clock), true
}

// parseDay returns the year and the 1-based day of that year
func parseDay(text string) (int, int, bool) {
	if m := yearOnly.FindStringSubmatch(text); m != nil {
		return atoi(m[1]), 1, true
	}
	if m := yearMonth.FindStringSubmatch(text); m != nil {
		return calendarDay(atoi(m[1]), atoi(m[2]), 1)
	}
	if m := calendarDate.FindStringSubmatch(text); m != nil {
		return calendarDay(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := basicDate.FindStringSubmatch(text); m != nil {
		return calendarDay(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := weekDate.FindStringSubmatch(text); m != nil {
		weekday := 1
		if m[3] != "" {
			weekday = atoi(m[3])
		}
		return isoWeekDay(atoi(m[1]), atoi(m[2]), weekday)
	}
	if m := ordinalDate.FindStringSubmatch(text); m != nil {
		year, day := atoi(m[1]), atoi(m[2])
		if day < 1 || day > daysIn(year) {
			return 0, 0, false
		}
		return year, day, true
	}
	return 0, 0, false
}

func calendarDay(year, month, day int) (int, int, bool) {
	if month < 1 || month > 12 || day < 1 {
		return 0, 0, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) {
		return 0, 0, false
	}
	return year, t.YearDay(), true
}

func isoWeekDay(year, week, weekday int) (int, int, bool) {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	// monday of week one, which is the week holding january 4th
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	t := monday.AddDate(0, 0, (week-1)*7+weekday-1)
	if y, w := t.ISOWeek(); y != year || w != week {
		return 0, 0, false
	}
	return t.Year(), t.YearDay(), true
}

func parseTimeOfDay(text string) (time.Duration, *time.Location, bool) {
	m := timeOfDay.FindStringSubmatch(text)
	if m == nil {
		return 0, nil, false
	}
	hour, minute, second := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if hour > 23 || minute > 59 || second > 59 {
		return 0, nil, false
	}
	clock := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	if m[4] != "" {
		fraction := m[4] + strings.Repeat("0", 9-len(m[4]))
		clock += time.Duration(atoi(fraction))
	}
	loc, ok := parseZone(m[5])
	return clock, loc, ok
}

func parseZone(text string) (*time.Location, bool) {
	if text == "" || text == "Z" {
		return time.UTC, true
	}
	sign := 1
	if text[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(text[1:], ":", "")
	hours := atoi(digits[:2])
	minutes := 0
	if len(digits) == 4 {
		minutes = atoi(digits[2:])
	}
	if hours > 23 || minutes > 59 {
		return nil, false
	}
	return time.FixedZone(text, sign*(hours*3600+minutes*60)), true
}

func daysIn(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// atoi is only called on regexp matched digit groups, empty groups read as 0
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
