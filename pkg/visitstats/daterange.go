package visitstats

import (
	"errors"
	"fmt"
	"time"
)

// RangeKind selects how a date window is derived.
type RangeKind string

const (
	RangeDay    RangeKind = "day"
	RangeMonth  RangeKind = "month"
	RangeYear   RangeKind = "year"
	RangeCustom RangeKind = "custom"
)

// ErrUndefinedRange is returned when a custom range is missing one of its
// bounds. Callers must not run any aggregation over such a range.
var ErrUndefinedRange = errors.New("custom range requires both start and end dates")

// ParseRangeKind validates a filter value from a query string.
func ParseRangeKind(s string) (RangeKind, error) {
	switch RangeKind(s) {
	case RangeDay, RangeMonth, RangeYear, RangeCustom:
		return RangeKind(s), nil
	}
	return "", fmt.Errorf("unknown range filter %q", s)
}

// DateRangeFor resolves a range kind into inclusive ISO date bounds relative
// to now. For RangeCustom the given bounds are returned verbatim without
// reordering; if either is empty the range is undefined and ErrUndefinedRange
// is returned.
func DateRangeFor(kind RangeKind, customStart, customEnd string, now time.Time) (string, string, error) {
	switch kind {
	case RangeDay:
		d := now.Format("2006-01-02")
		return d, d, nil
	case RangeMonth:
		start := now.Format("2006-01") + "-01"
		// day 0 of the next month is the last day of this month
		last := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
		return start, last.Format("2006-01-02"), nil
	case RangeYear:
		y := now.Year()
		return fmt.Sprintf("%04d-01-01", y), fmt.Sprintf("%04d-12-31", y), nil
	case RangeCustom:
		if customStart == "" || customEnd == "" {
			return "", "", ErrUndefinedRange
		}
		return customStart, customEnd, nil
	}
	return "", "", fmt.Errorf("unknown range filter %q", kind)
}
