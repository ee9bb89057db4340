// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package growth

import (
	"fmt"
	"slices"
	"time"

	"github.com/pdiddy/citegrowth/pkg/types"
)

// BucketStart truncates t (in UTC) to the start of its bucket: the day,
// the Monday of its week, or the first day of its month, quarter, or year.
func BucketStart(t time.Time, res types.Resolution) (time.Time, error) {
	t = t.UTC()
	y, m, d := t.Date()
	switch res {
	case types.ResolutionDay:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case types.ResolutionWeek:
		sinceMonday := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, time.UTC), nil
	case types.ResolutionMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), nil
	case types.ResolutionQuarter:
		return time.Date(y, (m-1)/3*3+1, 1, 0, 0, 0, 0, time.UTC), nil
	case types.ResolutionYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("unknown resolution %q", res)
	}
}

// nextBucket returns the start of the bucket after start.
func nextBucket(start time.Time, res types.Resolution) time.Time {
	switch res {
	case types.ResolutionDay:
		return start.AddDate(0, 0, 1)
	case types.ResolutionWeek:
		return start.AddDate(0, 0, 7)
	case types.ResolutionMonth:
		return start.AddDate(0, 1, 0)
	case types.ResolutionQuarter:
		return start.AddDate(0, 3, 0)
	default:
		return start.AddDate(1, 0, 0)
	}
}

// Cumulative buckets dates at res and returns the running total for every
// bucket from the first populated one to the last, inclusive. Buckets with
// no new citations repeat the previous total. The input slice is not
// modified. No dates yields an empty series.
func Cumulative(dates []time.Time, res types.Resolution) ([]types.TimeSeriesPoint, error) {
	if _, err := BucketStart(time.Time{}, res); err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	counts := make(map[int64]int)
	for _, t := range sorted {
		b, _ := BucketStart(t, res)
		counts[b.Unix()]++
	}

	first, _ := BucketStart(sorted[0], res)
	last, _ := BucketStart(sorted[len(sorted)-1], res)

	var series []types.TimeSeriesPoint
	total := 0
	for b := first; !b.After(last); b = nextBucket(b, res) {
		total += counts[b.Unix()]
		series = append(series, types.TimeSeriesPoint{Date: b, Cumulative: total})
	}
	return series, nil
}
