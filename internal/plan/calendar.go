package plan

import (
	"alcyxob/run-coach/internal/domain"
	"strings"
	"time"
)

// microCycleWeeks is the length of a micro-cycle block.
const microCycleWeeks = 4

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "weds": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// StartOfWeek returns the most recent day on or before today that begins a week,
// where weekStartDay 0 anchors weeks on Sunday and 1 on Monday. Today's calendar
// date is read in its own location; the result is that date at UTC midnight, the
// form every scheduled date is stored and queried in.
func StartOfWeek(today time.Time, weekStartDay int) time.Time {
	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	back := (int(midnight.Weekday()) - weekStartDay%DaysPerWeek + DaysPerWeek) % DaysPerWeek
	return midnight.AddDate(0, 0, -back)
}

// WeekdayIndex returns the slot of a weekday name within a week that starts on
// weekStartDay (Monday-anchored: Mon=0 ... Sun=6).
func WeekdayIndex(name string, weekStartDay int) (int, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return (int(wd) - weekStartDay%DaysPerWeek + DaysPerWeek) % DaysPerWeek, true
}

// PreferredDayIndices maps ordered weekday names to slot indices, keeping their order.
// Names that are not weekdays are returned separately.
func PreferredDayIndices(days []string, weekStartDay int) (indices []int, unknown []string) {
	for _, d := range days {
		idx, ok := WeekdayIndex(d, weekStartDay)
		if !ok {
			unknown = append(unknown, d)
			continue
		}
		indices = append(indices, idx)
	}
	return indices, unknown
}

// Distribute lays the week's non-rest tokens, in order, onto the preferred slots.
// The template's own weekday positions are not kept. Tokens beyond the number of
// preferred slots are dropped and counted.
func Distribute(week WeekTokens, preferred []int) (schedule WeekTokens, dropped int) {
	for i := range schedule {
		schedule[i] = domain.RestCode
	}
	tokens := week.WorkoutTokens()
	n := min(len(tokens), len(preferred))
	for i := 0; i < n; i++ {
		schedule[preferred[i]] = tokens[i]
	}
	return schedule, len(tokens) - n
}

// DateFor returns the calendar date of a slot in a given 0-based plan week.
func DateFor(startOfWeek time.Time, weekIndex, slot int) time.Time {
	return startOfWeek.AddDate(0, 0, DaysPerWeek*weekIndex+slot)
}

// MicroCycle returns the 1-based micro-cycle of a 0-based plan week.
func MicroCycle(weekIndex int) int {
	return weekIndex/microCycleWeeks + 1
}
