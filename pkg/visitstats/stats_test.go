package visitstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []Record {
	return []Record{
		{Date: "2024-05-01", Time: "09:00", Category: "child", Price: 18000},
		{Date: "2024-05-01", Time: "10:30", Category: "adult", Price: 20000},
		{Date: "2024-05-31", Time: "16:15", Category: "adult", Price: 20000},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, "2024-01-01", "2024-12-31")
	assert.Equal(t, Summary{}, s)

	s = Summarize([]Record{}, "0001-01-01", "9999-12-31")
	assert.Equal(t, Summary{}, s)
}

func TestSummarizeSingleDay(t *testing.T) {
	s := Summarize(sampleRecords(), "2024-05-01", "2024-05-01")
	assert.Equal(t, 2, s.VisitorCount)
	assert.Equal(t, int64(38000), s.TotalRevenue)
	assert.Equal(t, 1, s.ChildCount)
	assert.Equal(t, 1, s.AdultCount)
}

func TestSummarizeFullRangeCountsEverything(t *testing.T) {
	records := sampleRecords()
	s := Summarize(records, "0001-01-01", "9999-12-31")
	assert.Equal(t, len(records), s.VisitorCount)
	assert.Equal(t, int64(58000), s.TotalRevenue)
}

func TestSummarizeLocalizedLabels(t *testing.T) {
	records := []Record{
		{Date: "2024-06-01", Category: "Anak-anak", Price: 18000},
		{Date: "2024-06-01", Category: "Dewasa", Price: 20000},
		{Date: "2024-06-01", Category: "walk-in", Price: 15000},
	}
	s := Summarize(records, "2024-06-01", "2024-06-01")
	assert.Equal(t, 3, s.VisitorCount)
	assert.Equal(t, int64(53000), s.TotalRevenue)
	assert.Equal(t, 1, s.ChildCount)
	assert.Equal(t, 1, s.AdultCount)
}

func TestSummarizeOutOfRange(t *testing.T) {
	s := Summarize(sampleRecords(), "2023-01-01", "2023-12-31")
	assert.Equal(t, Summary{}, s)
}

func TestGroupByDate(t *testing.T) {
	got := GroupByDate(sampleRecords())
	assert.Equal(t, []DateCount{
		{Date: "2024-05-01", Count: 2},
		{Date: "2024-05-31", Count: 1},
	}, got)

	assert.Empty(t, GroupByDate(nil))
}

func TestGroupByDateSortsAscending(t *testing.T) {
	records := []Record{
		{Date: "2024-12-01"},
		{Date: "2024-01-15"},
		{Date: "2024-12-01"},
		{Date: "2024-06-30"},
	}
	got := GroupByDate(records)
	assert.Equal(t, []DateCount{
		{Date: "2024-01-15", Count: 1},
		{Date: "2024-06-30", Count: 1},
		{Date: "2024-12-01", Count: 2},
	}, got)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestPaginateReconstructsInput(t *testing.T) {
	records := make([]Record, 23)
	for i := range records {
		records[i] = Record{Time: string(rune('a' + i))}
	}
	pageSize := 10
	total := TotalPages(len(records), pageSize)
	assert.Equal(t, 3, total)

	var rebuilt []Record
	for page := 1; page <= total; page++ {
		slice := Paginate(records, pageSize, page)
		assert.LessOrEqual(t, len(slice), pageSize)
		rebuilt = append(rebuilt, slice...)
	}
	assert.Equal(t, records, rebuilt)
}

func TestPaginateOutOfRange(t *testing.T) {
	records := sampleRecords()
	assert.Empty(t, Paginate(records, 10, 0))
	assert.Empty(t, Paginate(records, 10, 2))
	assert.Empty(t, Paginate(records, 10, -1))
	assert.Empty(t, Paginate([]Record{}, 10, 1))
	assert.Empty(t, Paginate(records, 0, 1))
}

func TestFilterByCategory(t *testing.T) {
	records := sampleRecords()

	assert.Equal(t, records, FilterByCategory(records, "all"))
	assert.Equal(t, records, FilterByCategory(records, ""))

	onlyChild := FilterByCategory(records, "CHILD")
	assert.Len(t, onlyChild, 1)
	assert.Equal(t, records[0], onlyChild[0])

	adults := FilterByCategory(records, "Dewasa")
	assert.Len(t, adults, 2)

	assert.Empty(t, FilterByCategory(records, "senior"))
}

func TestMatchesCategory(t *testing.T) {
	assert.True(t, MatchesCategory("child", "all"))
	assert.True(t, MatchesCategory("anything", ""))
	assert.True(t, MatchesCategory("Anak-anak", "child"))
	assert.True(t, MatchesCategory("adult", "DEWASA"))
	assert.False(t, MatchesCategory("adult", "child"))
	assert.False(t, MatchesCategory("walk-in", "adult"))
	assert.False(t, MatchesCategory("child", "vip"))
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"child":     CategoryChild,
		"CHILD":     CategoryChild,
		"Anak-anak": CategoryChild,
		"anak-anak": CategoryChild,
		"adult":     CategoryAdult,
		"Dewasa":    CategoryAdult,
		" dewasa ":  CategoryAdult,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCategory("")
	assert.Error(t, err)
	_, err = ParseCategory("teen")
	assert.Error(t, err)
}

func TestPriceFor(t *testing.T) {
	assert.Equal(t, int64(18000), PriceFor(CategoryChild))
	assert.Equal(t, int64(20000), PriceFor(CategoryAdult))
	assert.Equal(t, int64(0), PriceFor(Category("other")))
}
