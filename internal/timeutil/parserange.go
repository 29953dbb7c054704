package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Range is an inclusive span of time with a human-readable label.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls within the range.
func (r Range) Contains(t time.Time) bool {
	return IsInRange(t, r.Start, r.End)
}

// RangeNames lists the shorthand names accepted by ParseRange.
var RangeNames = []string{"today", "y", "w", "lw", "m", "lm"}

// ParseRange resolves a range expression relative to now. Accepted forms:
//
//	today, yesterday (y), this-week (w), last-week (lw),
//	this-month (m), last-month (lm), "last N days",
//	a single date, or "FROM..TO" with either side optional.
//
// An empty expression returns ok == false.
func ParseRange(expr string, now time.Time, weekStart string) (r Range, ok bool, err error) {
	expr = strings.ToLower(strings.TrimSpace(expr))
	loc := now.Location()

	switch expr {
	case "", "all":
		return Range{}, false, nil
	case "today", "t":
		return Range{StartOfDay(now), EndOfDay(now), "today"}, true, nil
	case "yesterday", "y":
		y := now.AddDate(0, 0, -1)
		return Range{StartOfDay(y), EndOfDay(y), "yesterday"}, true, nil
	case "this-week", "week", "w":
		return Range{StartOfWeek(now, weekStart), EndOfWeek(now, weekStart), "this week"}, true, nil
	case "last-week", "lw":
		start := StartOfWeek(now, weekStart).AddDate(0, 0, -7)
		return Range{start, EndOfWeek(start, weekStart), "last week"}, true, nil
	case "this-month", "month", "m":
		return Range{StartOfMonth(now), EndOfMonth(now), "this month"}, true, nil
	case "last-month", "lm":
		// day 1 avoids AddDate normalising Mar 31 into March again
		prev := StartOfMonth(now).AddDate(0, -1, 0)
		return Range{StartOfMonth(prev), EndOfMonth(prev), "last month"}, true, nil
	}

	if strings.HasPrefix(expr, "last ") {
		start, end, err := ParseRelativeDays(expr, now)
		if err != nil {
			return Range{}, false, err
		}
		return Range{start, end, expr}, true, nil
	}

	if from, to, found := strings.Cut(expr, ".."); found {
		return parseSpan(from, to, now, loc)
	}

	day, err := ParseDate(expr, loc)
	if err != nil {
		return Range{}, false, err
	}
	return Range{day, EndOfDay(day), day.Format("2006-01-02")}, true, nil
}

func parseSpan(fromStr, toStr string, now time.Time, loc *time.Location) (Range, bool, error) {
	var r Range
	if fromStr != "" {
		start, err := ParseDate(fromStr, loc)
		if err != nil {
			return Range{}, false, fmt.Errorf("invalid range start: %w", err)
		}
		r.Start = start
	}

	end := EndOfDay(now)
	if toStr != "" {
		to, err := ParseDate(toStr, loc)
		if err != nil {
			return Range{}, false, fmt.Errorf("invalid range end: %w", err)
		}
		end = EndOfDay(to)
	}
	r.End = end

	if !r.Start.IsZero() && r.Start.After(r.End) {
		return Range{}, false, fmt.Errorf("range start (%s) is after range end (%s)",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}

	if r.Start.IsZero() {
		r.Label = "until " + r.End.Format("2006-01-02")
	} else {
		r.Label = r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
	}
	return r, true, nil
}
