// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package semantic fetches citing papers from the Semantic Scholar Graph API.
package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citegrowth/internal/httputil"
	"github.com/pdiddy/citegrowth/pkg/types"
)

const (
	// DefaultAPIBase is the Semantic Scholar Graph API root.
	DefaultAPIBase = "https://api.semanticscholar.org/graph/v1"

	// MaxPageSize is the largest limit the citations endpoint accepts.
	MaxPageSize = 1000

	citationFields = "paperId,title,year,publicationDate"
	paperFields    = "title,citationCount"

	// errorBodyLimit bounds how much of a failed response is kept in APIError.
	errorBodyLimit = 200
)

// Client is a paced HTTP client for the citation endpoints.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	userAgent  string
	pageSize   int
	maxRetries int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for per-page progress.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client from cfg. A zero RequestsPerSecond disables
// pacing; a zero PageSize uses MaxPageSize.
func NewClient(cfg types.FetchConfig, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		baseURL:    strings.TrimRight(cfg.APIBase, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		pageSize:   cfg.PageSize,
		maxRetries: cfg.MaxRetries,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultAPIBase
	}
	if c.pageSize <= 0 || c.pageSize > MaxPageSize {
		c.pageSize = MaxPageSize
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Citations returns every paper that cites id, in API order. It requests
// pages sequentially, starting at offset 0 and following the "next" offset
// until a page omits it.
func (c *Client) Citations(ctx context.Context, id types.PaperIdentifier) ([]types.CitationRecord, error) {
	endpoint := c.paperURL(id) + "/citations"

	var records []types.CitationRecord
	offset := 0
	for {
		params := url.Values{
			"fields": {citationFields},
			"limit":  {strconv.Itoa(c.pageSize)},
			"offset": {strconv.Itoa(offset)},
		}

		var page citationsPage
		if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &page); err != nil {
			return nil, fmt.Errorf("fetching citations of arXiv:%s at offset %d: %w", id, offset, err)
		}

		for _, edge := range page.Data {
			if edge.CitingPaper == nil {
				continue
			}
			records = append(records, types.CitationRecord{
				PaperID:         edge.CitingPaper.PaperID,
				Title:           edge.CitingPaper.Title,
				Year:            edge.CitingPaper.Year,
				PublicationDate: edge.CitingPaper.PublicationDate,
			})
		}
		c.logger.Debug("fetched citation page",
			"paper", id.String(), "offset", offset, "page_records", len(page.Data), "total", len(records))

		// A page that makes no progress also ends the walk.
		if page.Next == nil || len(page.Data) == 0 || *page.Next <= offset {
			break
		}
		offset = *page.Next
	}
	return records, nil
}

// PaperTitle looks up the title and reported citation count of id.
func (c *Client) PaperTitle(ctx context.Context, id types.PaperIdentifier) (PaperInfo, error) {
	params := url.Values{"fields": {paperFields}}

	var details paperDetails
	if err := c.getJSON(ctx, c.paperURL(id)+"?"+params.Encode(), &details); err != nil {
		return PaperInfo{}, fmt.Errorf("looking up arXiv:%s: %w", id, err)
	}
	return PaperInfo{Title: details.Title, CitationCount: details.CitationCount}, nil
}

// paperURL returns the /paper/ARXIV:{id} endpoint. Old-style ids keep their
// slash escaped so it stays inside one path segment.
func (c *Client) paperURL(id types.PaperIdentifier) string {
	return c.baseURL + "/paper/" + url.PathEscape("ARXIV:"+id.String())
}

// getJSON issues one paced GET and decodes a 200 response into v.
func (c *Client) getJSON(ctx context.Context, reqURL string, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: waiting for request slot: %w", ErrNetwork, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	c.logger.Debug("GET", "url", reqURL)
	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries, c.logger)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			URL:        reqURL,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}
