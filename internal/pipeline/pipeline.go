// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one citation-growth pass: resolve the identifier,
// fetch citing papers, aggregate their dates, and write the CSV, chart, and
// optional report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pdiddy/citegrowth/internal/chart"
	"github.com/pdiddy/citegrowth/internal/csvout"
	"github.com/pdiddy/citegrowth/internal/growth"
	"github.com/pdiddy/citegrowth/internal/paperid"
	"github.com/pdiddy/citegrowth/internal/report"
	"github.com/pdiddy/citegrowth/internal/semantic"
	"github.com/pdiddy/citegrowth/pkg/types"
)

// DefaultOutputFile is the citing-paper CSV written when none is configured.
const DefaultOutputFile = "citations.csv"

// Fetcher retrieves citation data for one paper. *semantic.Client
// implements it.
type Fetcher interface {
	Citations(ctx context.Context, id types.PaperIdentifier) ([]types.CitationRecord, error)
	PaperTitle(ctx context.Context, id types.PaperIdentifier) (semantic.PaperInfo, error)
}

// Result holds what one run produced.
type Result struct {
	ID            types.PaperIdentifier
	Title         string
	ReportedCount int
	Records       []types.CitationRecord
	Dropped       int
	Series        []types.TimeSeriesPoint
	PlotFile      string
}

// Dated returns the number of records that made it into the series.
func (r *Result) Dated() int {
	return len(r.Records) - r.Dropped
}

// Run executes the pipeline for raw. Output paths are checked before any
// network call so a bad extension fails fast.
func Run(ctx context.Context, raw string, cfg types.RunConfig, f Fetcher, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id, err := paperid.Resolve(raw)
	if err != nil {
		return nil, err
	}
	cfg = withDefaults(cfg, id)

	if err := chart.CheckFormat(cfg.PlotFile); err != nil {
		return nil, &types.IOError{Op: "render", Path: cfg.PlotFile, Err: err}
	}
	if cfg.ReportFile != "" {
		if err := report.CheckFormat(cfg.ReportFile); err != nil {
			return nil, &types.IOError{Op: "write", Path: cfg.ReportFile, Err: err}
		}
	}

	res := &Result{ID: id, Title: "arXiv:" + id.String(), PlotFile: cfg.PlotFile}

	logger.Info("fetching citations", "arxiv_id", id.String())
	if info, err := f.PaperTitle(ctx, id); err != nil {
		logger.Warn("paper title lookup failed", "arxiv_id", id.String(), "error", err)
	} else {
		if info.Title != "" {
			res.Title = info.Title
		}
		res.ReportedCount = info.CitationCount
	}

	res.Records, err = f.Citations(ctx, id)
	if err != nil {
		if semantic.IsNotFound(err) {
			return nil, fmt.Errorf("arXiv:%s is not indexed by Semantic Scholar: %w", id, err)
		}
		return nil, err
	}

	dates, dropped := growth.ExtractDates(res.Records)
	res.Dropped = dropped
	logger.Info("extracted publication dates",
		"fetched", len(res.Records), "dated", len(dates), "dropped", dropped)

	res.Series, err = growth.Cumulative(dates, cfg.Resolution)
	if err != nil {
		return nil, fmt.Errorf("aggregating citations: %w", err)
	}

	logger.Info("writing citing papers", "count", len(res.Records), "path", cfg.OutputFile)
	if err := csvout.WriteCitations(cfg.OutputFile, res.Records); err != nil {
		return nil, err
	}
	if cfg.SeriesFile != "" {
		logger.Info("writing cumulative series", "buckets", len(res.Series), "path", cfg.SeriesFile)
		if err := csvout.WriteSeries(cfg.SeriesFile, res.Series); err != nil {
			return nil, err
		}
	}

	if len(res.Series) == 0 {
		logger.Warn("no citing paper has a full publication date; chart will be empty", "arxiv_id", id.String())
	}
	logger.Info("saving plot", "path", cfg.PlotFile, "theme", string(cfg.Chart.Theme))
	opts := chart.Options{ChartConfig: cfg.Chart, PaperTitle: res.Title, Resolution: cfg.Resolution}
	if err := chart.Render(res.Series, opts, cfg.PlotFile); err != nil {
		return nil, err
	}

	if cfg.ReportFile != "" {
		logger.Info("writing report", "path", cfg.ReportFile)
		if err := report.Write(cfg.ReportFile, summarize(res, cfg)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func withDefaults(cfg types.RunConfig, id types.PaperIdentifier) types.RunConfig {
	if cfg.Resolution == "" {
		cfg.Resolution = types.ResolutionMonth
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.PlotFile == "" {
		cfg.PlotFile = paperid.DefaultPlotFile(id)
	}
	if cfg.Chart.Theme == "" {
		cfg.Chart.Theme = types.ThemeSketch
	}
	return cfg
}

func summarize(res *Result, cfg types.RunConfig) report.Summary {
	return report.Summary{
		ArxivID:       res.ID.String(),
		Title:         res.Title,
		ReportedCount: res.ReportedCount,
		Fetched:       len(res.Records),
		Dated:         res.Dated(),
		Dropped:       res.Dropped,
		Resolution:    string(cfg.Resolution),
		CitationsFile: cfg.OutputFile,
		SeriesFile:    cfg.SeriesFile,
		PlotFile:      cfg.PlotFile,
		GeneratedAt:   time.Now().UTC(),
		Series:        report.SeriesItems(res.Series),
	}
}
