// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package growth

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citegrowth/pkg/types"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Date extraction ---

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name   string
		record types.CitationRecord
		want   string
		wantOK bool
	}{
		{"full date", types.CitationRecord{PublicationDate: "2023-01-05", Year: 2023}, "2023-01-05", true},
		{"padded", types.CitationRecord{PublicationDate: " 2023-01-05 "}, "2023-01-05", true},
		{"year only field", types.CitationRecord{Year: 2023}, "", false},
		{"year only string", types.CitationRecord{PublicationDate: "2023"}, "", false},
		{"year and month", types.CitationRecord{PublicationDate: "2023-01"}, "", false},
		{"garbage", types.CitationRecord{PublicationDate: "January 5th"}, "", false},
		{"impossible day", types.CitationRecord{PublicationDate: "2023-02-30"}, "", false},
		{"empty", types.CitationRecord{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDate(tt.record)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, day(tt.want), got)
			}
		})
	}
}

func TestExtractDatesCountsDropped(t *testing.T) {
	records := []types.CitationRecord{
		{PaperID: "a", PublicationDate: "2023-02-10"},
		{PaperID: "b", Year: 2021},
		{PaperID: "c", PublicationDate: "2023-01-05"},
		{PaperID: "d"},
	}
	dates, dropped := ExtractDates(records)
	assert.Equal(t, []time.Time{day("2023-02-10"), day("2023-01-05")}, dates)
	assert.Equal(t, 2, dropped)
}

// --- Bucketing ---

func TestBucketStart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		res  types.Resolution
		want string
	}{
		{"day", "2023-05-17", types.ResolutionDay, "2023-05-17"},
		{"week wednesday", "2023-05-17", types.ResolutionWeek, "2023-05-15"},
		{"week monday", "2023-05-15", types.ResolutionWeek, "2023-05-15"},
		{"week sunday", "2023-05-21", types.ResolutionWeek, "2023-05-15"},
		{"week crosses year", "2023-01-01", types.ResolutionWeek, "2022-12-26"},
		{"month", "2023-05-17", types.ResolutionMonth, "2023-05-01"},
		{"quarter Q2", "2023-05-17", types.ResolutionQuarter, "2023-04-01"},
		{"quarter Q4", "2023-12-31", types.ResolutionQuarter, "2023-10-01"},
		{"year", "2023-05-17", types.ResolutionYear, "2023-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BucketStart(day(tt.in), tt.res)
			require.NoError(t, err)
			assert.Equal(t, day(tt.want), got)
		})
	}
}

func TestBucketStartUsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2023-03-01 05:00 JST is still 2023-02-28 in UTC.
	got, err := BucketStart(time.Date(2023, 3, 1, 5, 0, 0, 0, tokyo), types.ResolutionMonth)
	require.NoError(t, err)
	assert.Equal(t, day("2023-02-01"), got)
}

func TestBucketStartUnknownResolution(t *testing.T) {
	_, err := BucketStart(day("2023-01-01"), "X")
	assert.Error(t, err)
}

// --- Cumulative series ---

func TestCumulativeMonthlyScenario(t *testing.T) {
	dates := []time.Time{day("2023-01-05"), day("2023-01-20"), day("2023-02-10")}
	series, err := Cumulative(dates, types.ResolutionMonth)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeSeriesPoint{
		{Date: day("2023-01-01"), Cumulative: 2},
		{Date: day("2023-02-01"), Cumulative: 3},
	}, series)
}

func TestCumulativeFillsGaps(t *testing.T) {
	dates := []time.Time{day("2023-06-02"), day("2023-01-15"), day("2023-01-31")}
	series, err := Cumulative(dates, types.ResolutionMonth)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeSeriesPoint{
		{Date: day("2023-01-01"), Cumulative: 2},
		{Date: day("2023-02-01"), Cumulative: 2},
		{Date: day("2023-03-01"), Cumulative: 2},
		{Date: day("2023-04-01"), Cumulative: 2},
		{Date: day("2023-05-01"), Cumulative: 2},
		{Date: day("2023-06-01"), Cumulative: 3},
	}, series)
}

func TestCumulativeWeekly(t *testing.T) {
	dates := []time.Time{day("2024-02-29"), day("2024-03-01"), day("2024-03-13")}
	series, err := Cumulative(dates, types.ResolutionWeek)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeSeriesPoint{
		{Date: day("2024-02-26"), Cumulative: 2},
		{Date: day("2024-03-04"), Cumulative: 2},
		{Date: day("2024-03-11"), Cumulative: 3},
	}, series)
}

func TestCumulativeSingleDate(t *testing.T) {
	series, err := Cumulative([]time.Time{day("2020-07-04")}, types.ResolutionDay)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeSeriesPoint{{Date: day("2020-07-04"), Cumulative: 1}}, series)
}

func TestCumulativeEmpty(t *testing.T) {
	for _, res := range types.Resolutions {
		series, err := Cumulative(nil, res)
		require.NoError(t, err)
		assert.Empty(t, series)
	}
}

func TestCumulativeDoesNotReorderInput(t *testing.T) {
	dates := []time.Time{day("2023-03-01"), day("2023-01-01")}
	_, err := Cumulative(dates, types.ResolutionMonth)
	require.NoError(t, err)
	assert.Equal(t, day("2023-03-01"), dates[0])
}

func TestCumulativeUnknownResolution(t *testing.T) {
	_, err := Cumulative([]time.Time{day("2023-01-01")}, "X")
	assert.Error(t, err)
}

// TestCumulativeProperties checks the series invariants on random inputs for
// every resolution: dates strictly increase one bucket at a time, totals
// never decrease, and the final total equals the number of dates.
func TestCumulativeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	origin := day("2017-06-12")

	for _, res := range types.Resolutions {
		t.Run(string(res), func(t *testing.T) {
			for trial := 0; trial < 50; trial++ {
				n := 1 + rng.Intn(200)
				dates := make([]time.Time, n)
				for i := range dates {
					dates[i] = origin.AddDate(0, 0, rng.Intn(2000))
				}

				series, err := Cumulative(dates, res)
				require.NoError(t, err)
				require.NotEmpty(t, series)

				assert.Equal(t, n, series[len(series)-1].Cumulative)
				for i := 1; i < len(series); i++ {
					assert.GreaterOrEqual(t, series[i].Cumulative, series[i-1].Cumulative)
					assert.Equal(t, nextBucket(series[i-1].Date, res), series[i].Date, "gap before bucket %d", i)
				}
			}
		})
	}
}
