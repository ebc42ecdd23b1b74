// Package gdelt provides a client for the GDELT DOC 2.0 full-text API.
package gdelt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the GDELT document search operations.
type Client interface {
	// Search returns Indian-press coverage matching one state query within
	// the lookback window.
	Search(ctx context.Context, state string, opts ...SearchOption) ([]Article, error)
}

// Article is one matched document from an ArtList response.
type Article struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Domain        string `json:"domain"`
	Language      string `json:"language"`
	SourceCountry string `json:"sourcecountry"`
	SeenDate      string `json:"seendate"`
}

// SeenTime parses the API's compact UTC timestamp ("20250213T103000Z").
// Returns false when the field is absent or malformed.
func (a Article) SeenTime() (time.Time, bool) {
	t, err := time.Parse("20060102T150405Z", a.SeenDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type artListResponse struct {
	Articles []Article `json:"articles"`
}

// SearchOption configures a search request.
type SearchOption func(*searchOpts)

type searchOpts struct {
	window     string
	maxRecords int
}

// WithWindow sets the lookback window in GDELT timespan syntax (e.g. "24h",
// "7d", "1w").
func WithWindow(window string) SearchOption {
	return func(o *searchOpts) {
		o.window = window
	}
}

// WithMaxRecords caps the number of returned articles. The API accepts at
// most 250.
func WithMaxRecords(n int) SearchOption {
	return func(o *searchOpts) {
		o.maxRecords = n
	}
}

// Option configures the GDELT client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a GDELT DOC API client. The API is keyless.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.gdeltproject.org/api/v2/doc/doc",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes an HTTP request with exponential backoff retries on
// transient failures (429, 500, 502, 503). Returns the response body and
// status code on success, or the last error after exhausting retries.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "gdelt: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("gdelt: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) Search(ctx context.Context, state string, opts ...SearchOption) ([]Article, error) {
	so := &searchOpts{window: "7d", maxRecords: 75}
	for _, opt := range opts {
		opt(so)
	}
	if so.maxRecords > 250 {
		so.maxRecords = 250
	}

	params := url.Values{}
	params.Set("query", stateQuery(state))
	params.Set("mode", "ArtList")
	params.Set("format", "json")
	params.Set("timespan", so.window)
	params.Set("maxrecords", fmt.Sprintf("%d", so.maxRecords))
	params.Set("sort", "DateDesc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "gdelt: create request")
	}

	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "gdelt: request failed")
	}

	if statusCode != http.StatusOK {
		return nil, eris.Errorf("gdelt: unexpected status %d: %s", statusCode, string(body))
	}

	// The API reports query problems as a plain-text message with status
	// 200, which surfaces here as an unmarshal failure.
	var result artListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "gdelt: unmarshal response")
	}

	return result.Articles, nil
}

// stateQuery builds the per-state query. sourcecountry keeps the match to
// the Indian press regardless of where the state name also occurs.
func stateQuery(state string) string {
	return fmt.Sprintf("%q (investment OR crore) sourcecountry:IN", state)
}
