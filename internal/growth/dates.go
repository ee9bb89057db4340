// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package growth turns citing-paper records into a cumulative citation
// time series.
package growth

import (
	"strings"
	"time"

	"github.com/pdiddy/citegrowth/pkg/types"
)

const dateLayout = "2006-01-02"

// ExtractDate returns the full publication date of r. Records with no date,
// or only a year or year-month, report false and are left out of the series.
func ExtractDate(r types.CitationRecord) (time.Time, bool) {
	s := strings.TrimSpace(r.PublicationDate)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExtractDates returns the usable dates of records in input order and how
// many records were dropped.
func ExtractDates(records []types.CitationRecord) (dates []time.Time, dropped int) {
	dates = make([]time.Time, 0, len(records))
	for _, r := range records {
		if t, ok := ExtractDate(r); ok {
			dates = append(dates, t)
			continue
		}
		dropped++
	}
	return dates, dropped
}
