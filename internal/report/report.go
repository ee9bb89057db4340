// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a summary of one citegrowth run as YAML or Markdown.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citegrowth/pkg/types"
)

// Summary describes one run: what was fetched, what was kept, and where the
// outputs went.
type Summary struct {
	ArxivID       string       `yaml:"arxiv_id"`
	Title         string       `yaml:"title"`
	ReportedCount int          `yaml:"reported_citation_count,omitempty"`
	Fetched       int          `yaml:"fetched_records"`
	Dated         int          `yaml:"dated_records"`
	Dropped       int          `yaml:"dropped_records"`
	Resolution    string       `yaml:"resolution"`
	CitationsFile string       `yaml:"citations_file"`
	SeriesFile    string       `yaml:"series_file,omitempty"`
	PlotFile      string       `yaml:"plot_file"`
	GeneratedAt   time.Time    `yaml:"generated_at"`
	Series        []SeriesItem `yaml:"series"`
}

// SeriesItem is one bucket in the report, with dates as plain strings.
type SeriesItem struct {
	Date       string `yaml:"date"`
	Cumulative int    `yaml:"cumulative_count"`
	New        int    `yaml:"new"`
}

// SeriesItems converts a cumulative series to report rows, adding the
// per-bucket increase.
func SeriesItems(series []types.TimeSeriesPoint) []SeriesItem {
	items := make([]SeriesItem, len(series))
	prev := 0
	for i, p := range series {
		items[i] = SeriesItem{
			Date:       p.Date.Format("2006-01-02"),
			Cumulative: p.Cumulative,
			New:        p.Cumulative - prev,
		}
		prev = p.Cumulative
	}
	return items
}

// CheckFormat reports whether path has a supported report extension.
func CheckFormat(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".md":
		return nil
	default:
		return fmt.Errorf("unsupported report format %q (use .yaml, .yml, or .md)", filepath.Ext(path))
	}
}

// Write stores s at path, choosing YAML or Markdown by extension.
func Write(path string, s Summary) (err error) {
	if err := CheckFormat(path); err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &types.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &types.IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if strings.ToLower(filepath.Ext(path)) == ".md" {
		err = WriteMarkdown(f, s)
	} else {
		err = WriteYAML(f, s)
	}
	if err != nil {
		return &types.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteYAML encodes s as a YAML document.
func WriteYAML(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&s); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteMarkdown renders s as a Markdown page with a counts table and the
// bucket-by-bucket series.
func WriteMarkdown(w io.Writer, s Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Citation growth: arXiv:" + s.ArxivID)
	md.PlainText("")
	md.PlainTextf("**%s**", s.Title)
	md.PlainText("")

	rows := [][]string{
		{"Fetched records", strconv.Itoa(s.Fetched)},
		{"Dated records", strconv.Itoa(s.Dated)},
		{"Dropped (no full date)", strconv.Itoa(s.Dropped)},
		{"Resolution", s.Resolution + " (" + types.Resolution(s.Resolution).Label() + ")"},
		{"Generated", s.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	if s.ReportedCount > 0 {
		rows = append(rows, []string{"Reported by Semantic Scholar", strconv.Itoa(s.ReportedCount)})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	md.H2("Outputs")
	md.PlainText("")
	outputs := []string{"Citations CSV: `" + s.CitationsFile + "`", "Chart: `" + s.PlotFile + "`"}
	if s.SeriesFile != "" {
		outputs = append(outputs, "Series CSV: `"+s.SeriesFile+"`")
	}
	md.BulletList(outputs...)
	md.PlainText("")

	md.H2("Cumulative series")
	md.PlainText("")
	if len(s.Series) == 0 {
		md.Note("No citing paper has a full publication date.")
		return md.Build()
	}
	seriesRows := make([][]string, len(s.Series))
	for i, item := range s.Series {
		seriesRows[i] = []string{item.Date, strconv.Itoa(item.New), strconv.Itoa(item.Cumulative)}
	}
	md.Table(markdown.TableSet{Header: []string{"Bucket", "New", "Cumulative"}, Rows: seriesRows})

	return md.Build()
}
