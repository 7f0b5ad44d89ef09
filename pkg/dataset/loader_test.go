package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/heatmap/pkg/errors"
)

func TestLoaderRemote(t *testing.T) {
	body, err := os.ReadFile("testdata/sample.json")
	require.NoError(t, err)

	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	l := NewLoader(WithUserAgent("heatmap-test"))
	d, err := l.Load(context.Background(), srv.URL+"/global-temperature.json")
	require.NoError(t, err)
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, "heatmap-test", ua)
}

func TestLoaderStatusFailsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewLoader().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLoadFailure))
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoaderMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewLoader().Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLoadFailure))
}

func TestLoaderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewLoader(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLoadFailure))
}

func TestLoaderCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader().Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLoadFailure))
}

func TestLoaderLocalFile(t *testing.T) {
	d, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "sample.json"))
	require.NoError(t, err)
	assert.InDelta(t, 8.66, d.BaseTemperature, 1e-9)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLoadFailure))
}

func TestLoaderInvalidSource(t *testing.T) {
	_, err := NewLoader().Fetch(context.Background(), "ftp://example.com/data.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSource))
}
