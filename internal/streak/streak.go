// Package streak computes consecutive-day completion streaks.
//
// Days are calendar days in a fixed location: two completions at 23:59 and
// 00:01 are one day apart, while completions 47 hours apart on adjacent dates
// still count as consecutive.
package streak

import "time"

type Outcome string

const (
	// Started is the first completion ever recorded for the user.
	Started Outcome = "started"
	// SameDay leaves the count unchanged.
	SameDay Outcome = "same_day"
	// Extended is a completion on the day after the previous one.
	Extended Outcome = "extended"
	// Reset follows a gap of two or more days.
	Reset Outcome = "reset"
	// Skewed means the previous completion lies in the future, which only
	// happens when the clock went backwards. The streak restarts at 1.
	Skewed Outcome = "skewed"
)

type Result struct {
	Streak             int
	LastCompletionDate time.Time
	Outcome            Outcome
	DayDiff            int
}

// Advance returns the streak after a completion at now.
func Advance(current int, last *time.Time, now time.Time, loc *time.Location) Result {
	if loc == nil {
		loc = time.UTC
	}

	res := Result{LastCompletionDate: now}

	if last == nil {
		res.Streak = 1
		res.Outcome = Started
		return res
	}

	diff := DayDiff(*last, now, loc)
	res.DayDiff = diff

	switch {
	case diff == 0:
		res.Streak = current
		if res.Streak < 1 {
			res.Streak = 1
		}
		res.Outcome = SameDay
	case diff == 1:
		res.Streak = current + 1
		res.Outcome = Extended
	case diff >= 2:
		res.Streak = 1
		res.Outcome = Reset
	default:
		res.Streak = 1
		res.Outcome = Skewed
	}

	return res
}

// DayDiff is the number of calendar-day boundaries in loc between from and to.
func DayDiff(from, to time.Time, loc *time.Location) int {
	return civilDay(to, loc) - civilDay(from, loc)
}

// civilDay maps the date of t in loc to a day number. Working on the date
// instead of on elapsed hours keeps DST transitions from shifting the count.
func civilDay(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
