package chart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DateLayout is the week format accepted by Fetch.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when the requested week is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("chart date must be YYYY-MM-DD")

// Fetcher retrieves chart rows for a week.
type Fetcher interface {
	Fetch(ctx context.Context, date string, count int) ([]Row, error)
}

// Client downloads chart pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a chart client rooted at baseURL; the week date is appended as
// the final path segment.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("chart base url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse chart base url: %w", err)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ValidateDate reports whether date is a real calendar day in DateLayout.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(date)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// URL returns the chart page address for date.
func (c *Client) URL(date string) string {
	return c.baseURL + "/" + url.PathEscape(strings.TrimSpace(date))
}

// Fetch downloads the chart for date and returns at most count rows in rank
// order.
func (c *Client) Fetch(ctx context.Context, date string, count int) ([]Row, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(date), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("fetch chart (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart page returned %d (latency=%v)", resp.StatusCode, latency)
	}

	rows, err := Parse(resp.Body, count)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", strings.TrimSpace(date), err)
	}
	return rows, nil
}
