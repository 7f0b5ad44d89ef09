package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/observability"
)

// DefaultTimeout bounds a single dataset fetch.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response is read (the reference dataset is
// roughly 200 KB).
const maxBodySize = 32 << 20

// Loader fetches raw dataset documents from URLs or local files.
// The zero value is not usable; construct with [NewLoader].
type Loader struct {
	http      *http.Client
	userAgent string
}

// LoaderOption configures a [Loader].
type LoaderOption func(*Loader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.http = c }
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header for remote fetches.
func WithUserAgent(ua string) LoaderOption {
	return func(l *Loader) { l.userAgent = ua }
}

// NewLoader returns a Loader with a [DefaultTimeout] HTTP client.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{http: &http.Client{Timeout: DefaultTimeout}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches src and decodes it.
func (l *Loader) Load(ctx context.Context, src string) (Dataset, error) {
	data, err := l.Fetch(ctx, src)
	if err != nil {
		return Dataset{}, err
	}
	return Decode(bytes.NewReader(data))
}

// Fetch returns the raw bytes of src. Remote sources are fetched exactly
// once; every failure is reported as LOAD_FAILURE.
func (l *Loader) Fetch(ctx context.Context, src string) ([]byte, error) {
	if err := errors.ValidateSource(src); err != nil {
		return nil, err
	}
	if errors.IsRemote(src) {
		return l.fetchRemote(ctx, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailure, err, "read dataset")
	}
	return data, nil
}

func (l *Loader) fetchRemote(ctx context.Context, src string) ([]byte, error) {
	u, _ := url.Parse(src) // validated above
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailure, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := l.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, errors.Wrap(errors.ErrCodeLoadFailure, err, "fetch dataset")
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailure, err, "fetch dataset")
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailure, err, "read response")
	}
	return data, nil
}

func checkStatus(code int) error {
	if code == http.StatusOK {
		return nil
	}
	return fmt.Errorf("status %d %s", code, http.StatusText(code))
}
