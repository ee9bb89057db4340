// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citegrowth pipeline:
// citing-paper records, aggregation resolutions, cumulative time series
// points, and the run configuration.
package types

import (
	"fmt"
	"strings"
	"time"
)

// PaperIdentifier is a normalized arXiv identifier (e.g. "1706.03762" or
// "hep-th/9901001"). Values are produced by the identifier resolver only.
type PaperIdentifier string

// String returns the bare identifier.
func (id PaperIdentifier) String() string { return string(id) }

// CitationRecord is one work that cites the target paper, as returned by the
// Semantic Scholar citations endpoint.
type CitationRecord struct {
	// PaperID is the opaque Semantic Scholar identifier of the citing paper.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Title is the citing paper title. Used for the CSV dump only.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, or 0 when the API does not report one.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// PublicationDate is the raw publication date string ("2023-01-05").
	// Empty when the API has no full date for the paper.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
}

// Resolution selects the bucket width used when aggregating citation dates.
type Resolution string

const (
	ResolutionDay     Resolution = "D"
	ResolutionWeek    Resolution = "W"
	ResolutionMonth   Resolution = "M"
	ResolutionQuarter Resolution = "Q"
	ResolutionYear    Resolution = "Y"
)

// Resolutions lists the accepted resolutions in flag-help order.
var Resolutions = []Resolution{
	ResolutionDay, ResolutionWeek, ResolutionMonth, ResolutionQuarter, ResolutionYear,
}

// ParseResolution converts a flag value ("m", "W", ...) to a Resolution.
func ParseResolution(s string) (Resolution, error) {
	r := Resolution(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range Resolutions {
		if r == valid {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown aggregation frequency %q (want one of D, W, M, Q, Y)", s)
}

// Label returns a human-readable name for chart titles and reports.
func (r Resolution) Label() string {
	switch r {
	case ResolutionDay:
		return "daily"
	case ResolutionWeek:
		return "weekly"
	case ResolutionMonth:
		return "monthly"
	case ResolutionQuarter:
		return "quarterly"
	case ResolutionYear:
		return "yearly"
	default:
		return string(r)
	}
}

// TimeSeriesPoint is one bucket of the cumulative citation series.
type TimeSeriesPoint struct {
	// Date is the bucket start (UTC midnight).
	Date time.Time `json:"date" yaml:"date"`

	// Cumulative is the number of dated citations up to and including this bucket.
	Cumulative int `json:"cumulative_count" yaml:"cumulative_count"`
}
