// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citegrowth CLI. It fetches the
// papers citing one arXiv paper and writes their cumulative growth as a CSV
// and a chart.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citegrowth/internal/pipeline"
	"github.com/pdiddy/citegrowth/internal/secrets"
	"github.com/pdiddy/citegrowth/internal/semantic"
	"github.com/pdiddy/citegrowth/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE once -v is known.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// rootCmd runs the whole pipeline for one arXiv identifier.
var rootCmd = &cobra.Command{
	Use:   "citegrowth <arxiv-id>",
	Short: "Chart how citations to an arXiv paper accumulate over time",
	Long: `citegrowth looks up every paper citing an arXiv paper on Semantic Scholar,
keeps those with a full publication date, and buckets them by day, week,
month, quarter, or year into a cumulative series.

It writes the citing papers to a CSV file and renders the series as a chart
(PNG, JPEG, TIFF, SVG, PDF, or EPS by file extension). A series CSV and a
YAML or Markdown run report are optional.

Identifiers may be bare (1706.03762, hep-th/9901001), prefixed (arXiv:1706.03762),
or arxiv.org abs/pdf URLs. Version suffixes are ignored.`,
	Example: `  citegrowth 1706.03762
  citegrowth arXiv:2005.14165 --freq W --plot-file gpt3.svg
  citegrowth https://arxiv.org/abs/1810.04805 --report-file bert.md`,
	Args:              exactlyOneID,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runGrowth,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./citegrowth.yaml or $XDG_CONFIG_HOME/citegrowth/citegrowth.yaml)")
	pf.BoolP("verbose", "v", false, "debug logging to stderr")

	f := rootCmd.Flags()
	f.String("freq", "M", "aggregation frequency: D, W, M, Q, or Y")
	f.String("plot-file", "", "chart output path (default <id>_citations.png)")
	f.StringP("output-file", "o", pipeline.DefaultOutputFile, "citing-paper CSV path")
	f.String("series-file", "", "optional CSV path for the bucketed cumulative series")
	f.String("report-file", "", "optional run report path (.yaml, .yml, or .md)")
	f.String("theme", string(types.ThemeSketch), "chart style: sketch or plain")
	f.Duration("timeout", 20*time.Second, "HTTP request timeout")
	f.Int("page-size", semantic.MaxPageSize, "citations requested per page (1-1000)")
	f.Int("max-retries", 0, "retries on HTTP 429 before giving up")
	f.Float64("rate-limit", 1, "requests per second (0 disables pacing)")
	f.String("api-key", "", "Semantic Scholar API key")
	f.String("api-base", semantic.DefaultAPIBase, "Semantic Scholar Graph API root")

	for key, flag := range map[string]string{
		"freq":        "freq",
		"plot_file":   "plot-file",
		"output_file": "output-file",
		"series_file": "series-file",
		"report_file": "report-file",
		"theme":       "theme",
		"timeout":     "timeout",
		"page_size":   "page-size",
		"max_retries": "max-retries",
		"rate_limit":  "rate-limit",
		"api_key":     "api-key",
		"api_base":    "api-base",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))

	viper.SetDefault("user_agent", "citegrowth/"+version)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citegrowth")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, "citegrowth"))
	}

	viper.SetEnvPrefix("CITEGROWTH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// setup reads the config file and .env, then builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	_ = godotenv.Load()

	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}
	return nil
}

func exactlyOneID(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

func runGrowth(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig()
	if err != nil {
		return err
	}

	client := semantic.NewClient(cfg.Fetch, semantic.WithLogger(logger))
	res, err := pipeline.Run(cmd.Context(), args[0], cfg, client, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d citing papers, %d with a full publication date\n",
		res.Title, len(res.Records), res.Dated())
	fmt.Fprintf(out, "Saved citing papers to %s\n", viper.GetString("output_file"))
	if s := viper.GetString("series_file"); s != "" {
		fmt.Fprintf(out, "Saved series to %s\n", s)
	}
	fmt.Fprintf(out, "Saved plot to %s\n", res.PlotFile)
	if r := viper.GetString("report_file"); r != "" {
		fmt.Fprintf(out, "Saved report to %s\n", r)
	}
	return nil
}

// runConfig assembles a RunConfig from flags, config file, and environment.
func runConfig() (types.RunConfig, error) {
	res, err := types.ParseResolution(viper.GetString("freq"))
	if err != nil {
		return types.RunConfig{}, usageError{err}
	}

	theme := types.Theme(strings.ToLower(viper.GetString("theme")))
	if theme != types.ThemeSketch && theme != types.ThemePlain {
		return types.RunConfig{}, usageError{fmt.Errorf("unknown theme %q (use sketch or plain)", theme)}
	}

	pageSize := viper.GetInt("page_size")
	if pageSize < 1 || pageSize > semantic.MaxPageSize {
		return types.RunConfig{}, usageError{fmt.Errorf("page size %d out of range 1-%d", pageSize, semantic.MaxPageSize)}
	}
	if viper.GetInt("max_retries") < 0 || viper.GetFloat64("rate_limit") < 0 {
		return types.RunConfig{}, usageError{fmt.Errorf("max-retries and rate-limit must not be negative")}
	}

	key, source, err := secrets.APIKey(viper.GetString("api_key"), secrets.DefaultDir, logger)
	if err != nil {
		return types.RunConfig{}, err
	}
	if key != "" {
		logger.Debug("using Semantic Scholar API key", "source", source)
	}

	return types.RunConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("timeout"),
				UserAgent: viper.GetString("user_agent"),
			},
			APIBase:           viper.GetString("api_base"),
			APIKey:            key,
			PageSize:          pageSize,
			MaxRetries:        viper.GetInt("max_retries"),
			RequestsPerSecond: viper.GetFloat64("rate_limit"),
		},
		Chart: types.ChartConfig{
			Theme:  theme,
			Width:  viper.GetFloat64("chart.width"),
			Height: viper.GetFloat64("chart.height"),
			DPI:    viper.GetInt("chart.dpi"),
		},
		Resolution: res,
		OutputFile: viper.GetString("output_file"),
		SeriesFile: viper.GetString("series_file"),
		PlotFile:   viper.GetString("plot_file"),
		ReportFile: viper.GetString("report_file"),
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
