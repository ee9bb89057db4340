// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package csvout writes the citing-paper dump and the cumulative series as
// CSV files, and reads the series back.
package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pdiddy/citegrowth/pkg/types"
)

const dateLayout = "2006-01-02"

// Column headers.
var (
	CitationHeader = []string{"paper_id", "title", "year", "publication_date"}
	SeriesHeader   = []string{"date", "cumulative_count"}
)

// WriteCitations writes one row per fetched record, dated or not.
func WriteCitations(path string, records []types.CitationRecord) error {
	return writeFile(path, func(w *csv.Writer) error {
		if err := w.Write(CitationHeader); err != nil {
			return err
		}
		for _, r := range records {
			year := ""
			if r.Year != 0 {
				year = strconv.Itoa(r.Year)
			}
			if err := w.Write([]string{r.PaperID, r.Title, year, r.PublicationDate}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSeries writes one row per bucket of series.
func WriteSeries(path string, series []types.TimeSeriesPoint) error {
	return writeFile(path, func(w *csv.Writer) error {
		if err := w.Write(SeriesHeader); err != nil {
			return err
		}
		for _, p := range series {
			if err := w.Write([]string{p.Date.Format(dateLayout), strconv.Itoa(p.Cumulative)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadSeries parses a file produced by WriteSeries.
func ReadSeries(path string) ([]types.TimeSeriesPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(SeriesHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if header[0] != SeriesHeader[0] || header[1] != SeriesHeader[1] {
		return nil, fmt.Errorf("%s: unexpected header %v", path, header)
	}

	var series []types.TimeSeriesPoint
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		date, err := time.Parse(dateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad date: %w", path, line, err)
		}
		count, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad count: %w", path, line, err)
		}
		series = append(series, types.TimeSeriesPoint{Date: date, Cumulative: count})
	}
	return series, nil
}

// writeFile creates path, runs fill, and flushes and closes the file on
// every path. The first failure is returned as an IOError.
func writeFile(path string, fill func(*csv.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &types.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &types.IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
