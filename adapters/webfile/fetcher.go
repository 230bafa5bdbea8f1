package webfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrRequest      = fmt.Errorf("request failed")
	ErrBodyTooLarge = fmt.Errorf("response body too large")
)

// DefaultMaxBodySize bounds a list download unless overridden.
const DefaultMaxBodySize int64 = 8 << 20

// CacheBustParam is set to the current unix time in milliseconds on every request.
const CacheBustParam = "t"

var Now = time.Now // used to mock time in tests

type Fetcher struct {
	url     string
	cl      http.Client
	maxBody int64
}

func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{url: url, cl: http.Client{Timeout: timeout}, maxBody: DefaultMaxBodySize}
}

// WithMaxBodySize sets the largest accepted body; n <= 0 keeps the default.
func (f *Fetcher) WithMaxBodySize(n int64) *Fetcher {
	if n > 0 {
		f.maxBody = n
	}
	return f
}

func (f *Fetcher) Name() string {
	return f.url
}

func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	reqURL, err := withCacheBuster(f.url, Now())
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Cache-Control", "no-cache")
	resp, err := f.cl.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("err: %w status code %d", ErrRequest, resp.StatusCode)
	}
	bts, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(bts)) > f.maxBody {
		return nil, fmt.Errorf("err: %w, limit %d bytes", ErrBodyTooLarge, f.maxBody)
	}
	return bts, nil
}

func withCacheBuster(rawURL string, at time.Time) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(CacheBustParam, strconv.FormatInt(at.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
