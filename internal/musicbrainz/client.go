package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public MusicBrainz web service root.
const DefaultBaseURL = "https://musicbrainz.org/ws/2"

// Searcher finds release candidates.
type Searcher interface {
	SearchReleases(ctx context.Context, query string) (*SearchResponse, error)
}

// ReleaseGetter looks up a single release.
type ReleaseGetter interface {
	GetRelease(ctx context.Context, id string, includes ...string) (*ReleaseDetail, error)
}

// Client provides access to the MusicBrainz release endpoints.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

var (
	_ Searcher      = (*Client)(nil)
	_ ReleaseGetter = (*Client)(nil)
)

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

// New creates a MusicBrainz client.
func New(baseURL, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz user agent required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchReleases runs a release search using the Lucene query syntax.
func (c *Client) SearchReleases(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload SearchResponse
	if err := c.get(ctx, "/release", params, "search", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetRelease fetches a release by MBID. Includes are joined into the inc
// parameter, e.g. "discids", "recordings".
func (c *Client) GetRelease(ctx context.Context, id string, includes ...string) (*ReleaseDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("release id must not be empty")
	}
	params := url.Values{}
	if inc := joinIncludes(includes); inc != "" {
		params.Set("inc", inc)
	}

	var payload ReleaseDetail
	if err := c.get(ctx, "/release/"+url.PathEscape(id), params, "lookup", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, op string, dst any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse musicbrainz url: %w", err)
	}
	params.Set("fmt", "json")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("musicbrainz %s returned %d (latency=%v)", op, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode musicbrainz response: %w", err)
	}
	return nil
}

func joinIncludes(includes []string) string {
	parts := make([]string, 0, len(includes))
	for _, inc := range includes {
		inc = strings.TrimSpace(inc)
		if inc != "" {
			parts = append(parts, inc)
		}
	}
	return strings.Join(parts, "+")
}
