package domain

import "time"

// AcademicCalendar computes the current teaching week of a semester
type AcademicCalendar struct {
	SemesterStart time.Time
	TotalWeeks    int
}

// CurrentWeek returns the 1-based week containing now, clamped to [1, TotalWeeks]
func (c AcademicCalendar) CurrentWeek(now time.Time) int {
	if c.SemesterStart.IsZero() {
		return 1
	}
	start := truncateDay(c.SemesterStart)
	days := int(truncateDay(now).Sub(start).Hours() / 24)
	week := 1
	if days > 0 {
		week = days/7 + 1
	}
	if c.TotalWeeks > 0 && week > c.TotalWeeks {
		week = c.TotalWeeks
	}
	return week
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
