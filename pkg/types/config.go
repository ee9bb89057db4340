package types

import "time"

// HTTPConfig holds shared HTTP settings used by every request to the
// citation API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citegrowth/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the citation fetcher.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBase is the Semantic Scholar Graph API root
	// (default https://api.semanticscholar.org/graph/v1).
	APIBase string `json:"api_base" yaml:"api_base"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PageSize is the number of citations requested per page (1-1000, default 1000).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxRetries is the number of retries on HTTP 429. Zero surfaces the
	// first throttle to the caller.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// Theme selects the chart rendering style.
type Theme string

const (
	ThemeSketch Theme = "sketch"
	ThemePlain  Theme = "plain"
)

// ChartConfig holds settings for the plotter.
type ChartConfig struct {
	// Theme is the rendering style: sketch (hand-drawn look) or plain.
	Theme Theme `json:"theme" yaml:"theme"`

	// Width and Height are the image size in inches.
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// DPI is the raster resolution.
	DPI int `json:"dpi" yaml:"dpi"`
}

// RunConfig groups everything one pipeline run needs.
type RunConfig struct {
	Fetch FetchConfig `json:"fetch" yaml:"fetch"`
	Chart ChartConfig `json:"chart" yaml:"chart"`

	// Resolution is the aggregation bucket width (default M).
	Resolution Resolution `json:"resolution" yaml:"resolution"`

	// OutputFile is the citing-paper CSV path (default "citations.csv").
	OutputFile string `json:"output_file" yaml:"output_file"`

	// SeriesFile is an optional CSV path for the bucketed cumulative series.
	SeriesFile string `json:"series_file,omitempty" yaml:"series_file,omitempty"`

	// PlotFile is the chart image path. Empty means "<slug>_citations.png".
	PlotFile string `json:"plot_file,omitempty" yaml:"plot_file,omitempty"`

	// ReportFile is an optional .yaml or .md run summary path.
	ReportFile string `json:"report_file,omitempty" yaml:"report_file,omitempty"`
}
