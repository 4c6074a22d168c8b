// Package visitstats is the shared aggregation engine behind the dashboard.
// Every screen derives its numbers from these functions instead of carrying
// its own copy of the date-range and summation logic. All operations are pure
// functions over in-memory slices: no storage, no network, no hidden state.
package visitstats

import "sort"

// Record is the slice of a visit the engine needs: calendar date
// (YYYY-MM-DD), clock time (HH:MM), category and price in the smallest
// currency unit.
type Record struct {
	Date     string
	Time     string
	Category string
	Price    int64
}

// Summary holds the dashboard card values for one date range.
type Summary struct {
	VisitorCount int   `json:"visitor_count"`
	TotalRevenue int64 `json:"total_revenue"`
	ChildCount   int   `json:"child_count"`
	AdultCount   int   `json:"adult_count"`
}

// DateCount is one bar of the visits-per-day chart.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Summarize computes the dashboard summary over records whose date falls in
// the inclusive range [startDate, endDate]. Lexicographic comparison on
// YYYY-MM-DD strings is date-order-correct. Records with an unrecognized
// category still count toward visitors and revenue but toward neither
// category counter. An empty input yields the zero Summary.
func Summarize(records []Record, startDate, endDate string) Summary {
	var s Summary
	for _, r := range records {
		if r.Date < startDate || r.Date > endDate {
			continue
		}
		s.VisitorCount++
		s.TotalRevenue += r.Price
		if c, err := ParseCategory(r.Category); err == nil {
			switch c {
			case CategoryChild:
				s.ChildCount++
			case CategoryAdult:
				s.AdultCount++
			}
		}
	}
	return s
}

// GroupByDate counts records per distinct date, sorted ascending by date
// string. Safe on empty input.
func GroupByDate(records []Record) []DateCount {
	grouped := make(map[string]int, len(records))
	for _, r := range records {
		grouped[r.Date]++
	}
	out := make([]DateCount, 0, len(grouped))
	for d, n := range grouped {
		out = append(out, DateCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TotalPages returns ceil(total/pageSize); 0 when total is 0 or pageSize is
// not positive.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the 1-based pageNumber-th slice of pageSize items.
// Out-of-range pages yield an empty slice, never an error. Callers are
// expected to reset pageNumber to 1 whenever the upstream filter changes.
func Paginate[T any](items []T, pageSize, pageNumber int) []T {
	if pageSize <= 0 || pageNumber < 1 {
		return []T{}
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// MatchesCategory reports whether a stored category value matches a filter
// selector. Matching is case-insensitive and tolerant of the localized
// labels; the "all" sentinel (or an empty selector) matches everything.
func MatchesCategory(category, selector string) bool {
	if selector == "" || selector == CategoryAll {
		return true
	}
	want, err := ParseCategory(selector)
	if err != nil {
		return false
	}
	got, err := ParseCategory(category)
	return err == nil && got == want
}

// FilterByCategory keeps records whose category matches the selector, per
// MatchesCategory.
func FilterByCategory(records []Record, selector string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if MatchesCategory(r.Category, selector) {
			out = append(out, r)
		}
	}
	return out
}
