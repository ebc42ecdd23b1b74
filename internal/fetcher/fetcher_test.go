package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><body>
<header><p>Masthead</p></header>
<article>
<p>Acme Steel announced a ₹2,500 crore expansion on Friday.</p>
<p>The project is expected to create 1,200 jobs.</p>
</article>
</body></html>`

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := NewArticleFetcher(Options{})
	got, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "Acme Steel announced a ₹2,500 crore expansion on Friday.\nThe project is expected to create 1,200 jobs.", got)
}

func TestFetch_CharLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := NewArticleFetcher(Options{CharLimit: 10})
	got, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "Acme Steel", got)
}

func TestFetch_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewArticleFetcher(Options{})
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_RetryOn500(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := NewArticleFetcher(Options{})
	got, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, got, "Acme Steel")
	assert.Equal(t, int32(2), attempts.Load())
}

func TestFetch_RateLimitAdapts(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := NewArticleFetcher(Options{})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	// 4 rps halved by the 429 to 2, then nudged up 20% by the success.
	assert.InDelta(t, 2.4, float64(f.limiterFor(u.Host).Limit()), 0.001)
}

func TestText_SwallowsFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewArticleFetcher(Options{})
	assert.Empty(t, f.Text(context.Background(), srv.URL))
}

func TestText_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := NewArticleFetcher(Options{})
	assert.Contains(t, f.Text(context.Background(), srv.URL), "1,200 jobs")
}

func TestFetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewArticleFetcher(Options{})
	_, err := f.Fetch(ctx, srv.URL)

	require.Error(t, err)
}

func TestNewArticleFetcher_Defaults(t *testing.T) {
	t.Parallel()

	f := NewArticleFetcher(Options{})

	assert.Equal(t, 30*time.Second, f.opts.Timeout)
	assert.Equal(t, 3, f.opts.MaxRetries)
	assert.Equal(t, 8000, f.opts.CharLimit)
	assert.Contains(t, f.opts.UserAgent, "Mozilla/5.0")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	// Cuts at rune boundaries, not bytes.
	assert.Equal(t, "₹5", truncate("₹500 crore", 2))
	assert.Equal(t, strings.Repeat("x", 3), truncate("xxx", 3))
}
