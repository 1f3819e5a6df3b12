package fetch

import (
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"webrank/internal/metrics"
)

// Fetcher is the transport the crawl engine consumes: a URL in, body bytes
// out. Any failure (network error, non-2xx, timeout) returns nil.
type Fetcher interface {
	Fetch(url string) []byte
}

// DefaultTimeout bounds a single fetch including redirects.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response we read. 1 MiB is plenty of HTML.
const maxBodyBytes = 1 << 20

// HTTPFetcher fetches over a shared http.Client. Redirects are followed by
// the client; the body cap keeps one hostile page from eating the heap.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTP returns a fetcher with the given timeout and User-Agent. A zero
// timeout falls back to DefaultTimeout.
func NewHTTP(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads a URL and returns its body, or nil on any failure.
func (h *HTTPFetcher) Fetch(url string) []byte {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		logrus.Debugf("fetch %s: %v", url, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.Debugf("fetch %s: status %d", url, resp.StatusCode)
		return nil
	}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.BytesFetched.Add(float64(len(b)))
	metrics.PagesFetched.Inc()
	return b
}
