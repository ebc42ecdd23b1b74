package gdelt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{"articles":[
{"url":"https://www.newindianexpress.com/states/odisha/2025/feb/13/steel-plant.html",
"title":"Company announces Rs 5,000 crore steel plant in Odisha",
"domain":"newindianexpress.com","language":"English","sourcecountry":"India",
"seendate":"20250213T103000Z"},
{"url":"https://www.business-standard.com/article/mou-signed",
"title":"MoU signed for industrial park",
"domain":"business-standard.com","language":"English","sourcecountry":"India",
"seendate":"20250212T080000Z"}
]}`

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, `"Odisha" (investment OR crore) sourcecountry:IN`, q.Get("query"))
		assert.Equal(t, "ArtList", q.Get("mode"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "7d", q.Get("timespan"))
		assert.Equal(t, "75", q.Get("maxrecords"))
		assert.Equal(t, "DateDesc", q.Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Search(context.Background(), "Odisha")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Company announces Rs 5,000 crore steel plant in Odisha", got[0].Title)
	assert.Equal(t, "newindianexpress.com", got[0].Domain)

	seen, ok := got[0].SeenTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 13, 10, 30, 0, 0, time.UTC), seen)
}

func TestSearch_Options(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "24h", q.Get("timespan"))
		assert.Equal(t, "250", q.Get("maxrecords")) // 400 clamped to the API maximum
		w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Search(context.Background(), "Gujarat", WithWindow("24h"), WithMaxRecords(400))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not found`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "Odisha")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSearch_PlainTextError(t *testing.T) {
	t.Parallel()

	// GDELT reports bad queries as 200 with a plain-text message.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`Your query was too short or too long.`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "Odisha")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestSearch_RetryOn429(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`rate limit`))
			return
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Search(context.Background(), "Odisha")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestSearch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Search(ctx, "Odisha")

	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient()
	hc := c.(*httpClient)
	assert.Equal(t, "https://api.gdeltproject.org/api/v2/doc/doc", hc.baseURL)
	assert.NotNil(t, hc.http)
	assert.Equal(t, 30*time.Second, hc.http.Timeout)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()
	customClient := &http.Client{}
	c := NewClient(WithHTTPClient(customClient))
	hc := c.(*httpClient)
	assert.Equal(t, customClient, hc.http)
}

func TestSeenTime_Malformed(t *testing.T) {
	t.Parallel()
	_, ok := Article{SeenDate: "yesterday"}.SeenTime()
	assert.False(t, ok)
	_, ok = Article{}.SeenTime()
	assert.False(t, ok)
}

func TestStateQuery(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"Tamil Nadu" (investment OR crore) sourcecountry:IN`, stateQuery("Tamil Nadu"))
}
