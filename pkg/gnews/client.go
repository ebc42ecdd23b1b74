// Package gnews provides a client for the Google News RSS search feed.
package gnews

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/rss"
	"github.com/rotisserie/eris"
)

// Client defines the Google News discovery operations.
type Client interface {
	// Search returns coverage matching one state query within the lookback
	// window. The same article may appear under several states' queries.
	Search(ctx context.Context, state string, opts ...SearchOption) ([]Article, error)
}

// Article is one feed entry with its real publisher resolved. Links point at
// Google's redirect service, not the publisher, so URL is an identity key
// rather than something to display.
type Article struct {
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Source    string     `json:"source"`
	Published *time.Time `json:"published,omitempty"`
}

// SearchOption configures a search request.
type SearchOption func(*searchOpts)

type searchOpts struct {
	window string
	limit  int
}

// WithWindow sets the lookback window in Google News "when:" syntax (e.g.
// "1d", "7d", "30d").
func WithWindow(window string) SearchOption {
	return func(o *searchOpts) {
		o.window = window
	}
}

// WithLimit caps the number of returned articles.
func WithLimit(n int) SearchOption {
	return func(o *searchOpts) {
		o.limit = n
	}
}

// Option configures the Google News client.
type Option func(*httpClient)

// WithBaseURL sets a custom feed base URL (for testing).
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

// NewClient creates a Google News feed client for the Indian English edition.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://news.google.com/rss/search",
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
			return nil, resp.StatusCode, eris.Wrap(readErr, "gnews: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("gnews: status %d: %s", resp.StatusCode, string(body))
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
	so := &searchOpts{window: "7d"}
	for _, opt := range opts {
		opt(so)
	}

	reqURL := fmt.Sprintf("%s?q=%s&hl=en-IN&gl=IN&ceid=IN:en",
		c.baseURL, url.QueryEscape(stateQuery(state, so.window)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "gnews: create request")
	}

	req.Header.Set("Accept", "application/rss+xml")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "gnews: request failed")
	}

	if statusCode != http.StatusOK {
		return nil, eris.Errorf("gnews: unexpected status %d: %s", statusCode, string(body))
	}

	// The universal gofeed parser drops the <source> element, which is the
	// only place Google News names the actual publisher. Parse with the
	// typed RSS parser to keep it. The parser is not safe for concurrent
	// use, so each call gets its own.
	feed, err := (&rss.Parser{}).Parse(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "gnews: parse feed")
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		source := sourceName(item)
		articles = append(articles, Article{
			Title:     cleanTitle(item.Title, source),
			URL:       strings.TrimSpace(item.Link),
			Source:    source,
			Published: item.PubDateParsed,
		})
		if so.limit > 0 && len(articles) >= so.limit {
			break
		}
	}

	return articles, nil
}

// stateQuery builds the per-state feed query. Quoting the state keeps
// multi-word names ("Tamil Nadu") together as a phrase.
func stateQuery(state, window string) string {
	q := fmt.Sprintf("%q investment OR crore OR MoU", state)
	if window != "" {
		q += " when:" + window
	}
	return q
}

// sourceName resolves the publisher from the item's <source> element,
// falling back to the " - Publisher" suffix Google News appends to titles.
func sourceName(item *rss.Item) string {
	if item.Source != nil && strings.TrimSpace(item.Source.Title) != "" {
		return strings.TrimSpace(item.Source.Title)
	}
	if i := strings.LastIndex(item.Title, " - "); i >= 0 {
		return strings.TrimSpace(item.Title[i+3:])
	}
	return ""
}

// cleanTitle strips the publisher suffix from a feed title so titles compare
// cleanly across providers.
func cleanTitle(title, source string) string {
	title = strings.TrimSpace(title)
	if source != "" && strings.HasSuffix(title, " - "+source) {
		return strings.TrimSpace(strings.TrimSuffix(title, " - "+source))
	}
	return title
}
