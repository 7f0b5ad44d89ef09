package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/heatmap/pkg/cache"
	"github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/observability"
)

const sampleSource = "../dataset/testdata/sample.json"

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(c, nil, nil)
	r.Clock = clockwork.NewFakeClock()
	t.Cleanup(func() { r.Close() })
	return r
}

func newFileCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	return c
}

// serve counts requests to a handler returning body with status.
func serve(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func sampleBody(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(sampleSource)
	require.NoError(t, err)
	return string(data)
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t, nil)
	result, err := r.Execute(context.Background(), Options{
		Source:  sampleSource,
		Formats: []string{FormatSVG, FormatHTML, FormatJSON},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, result.Stats.Records)
	assert.Equal(t, 6, result.Stats.Cells)
	require.Len(t, result.Artifacts, 3)
	for format, data := range result.Artifacts {
		assert.NotEmpty(t, data, format)
	}
	assert.Equal(t, "heatmap-"+result.DatasetHash[:12], result.Chart.ID)
	assert.Contains(t, string(result.Artifacts[FormatSVG]), `id="`+result.Chart.ID+`"`)
	assert.False(t, result.CacheInfo.DatasetHit, "first run misses the dataset cache")
	assert.False(t, result.CacheInfo.RenderHit, "first run misses the artifact cache")
}

func TestExecuteFakeClockStats(t *testing.T) {
	r := newTestRunner(t, nil)
	result, err := r.Execute(context.Background(), Options{Source: sampleSource})
	require.NoError(t, err)

	assert.Zero(t, result.Stats.LoadTime)
	assert.Zero(t, result.Stats.BuildTime)
	assert.Zero(t, result.Stats.RenderTime)
}

func TestExecuteDeterministic(t *testing.T) {
	r := newTestRunner(t, nil)
	opts := Options{Source: sampleSource, Formats: []string{FormatSVG, FormatJSON}}

	a, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	b, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)

	for _, f := range opts.Formats {
		assert.True(t, bytes.Equal(a.Artifacts[f], b.Artifacts[f]), "%s output differs between runs", f)
	}
}

func TestExecuteCacheHitOnSecondRun(t *testing.T) {
	srv, hits := serve(t, http.StatusOK, sampleBody(t))
	r := newTestRunner(t, newFileCache(t))
	opts := Options{Source: srv.URL, Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	second, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "server hits")
	assert.True(t, second.CacheInfo.DatasetHit)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts[FormatSVG], second.Artifacts[FormatSVG])

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load(), "refresh refetches")
	assert.False(t, third.CacheInfo.DatasetHit)
	assert.True(t, third.CacheInfo.RenderHit, "unchanged data reuses cached artifacts")
}

func TestExecuteOptionChangeMissesArtifactCache(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	_, err := r.Execute(context.Background(), Options{Source: sampleSource})
	require.NoError(t, err)

	result, err := r.Execute(context.Background(), Options{Source: sampleSource, Width: 1200})
	require.NoError(t, err)
	assert.True(t, result.CacheInfo.DatasetHit)
	assert.False(t, result.CacheInfo.RenderHit, "a new width must not reuse cached artifacts")
}

func TestLoadIgnoresCorruptCacheEntry(t *testing.T) {
	c := newFileCache(t)
	r := newTestRunner(t, c)
	key := r.Keyer.DatasetKey(sampleSource)
	require.NoError(t, c.Set(context.Background(), key, []byte("not json"), time.Hour))

	_, ds, hit, err := r.LoadWithCacheInfo(context.Background(), Options{Source: sampleSource})
	require.NoError(t, err)
	assert.False(t, hit, "corrupt entry counts as a miss")
	assert.Equal(t, 6, ds.Len())
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   errors.Code
	}{
		{"server error", http.StatusInternalServerError, "boom", errors.ErrCodeLoadFailure},
		{"malformed", http.StatusOK, "{", errors.ErrCodeLoadFailure},
		{"empty", http.StatusOK, `{"baseTemperature":8.66,"monthlyVariance":[]}`, errors.ErrCodeEmptyDataset},
		{"no deviation", http.StatusOK,
			`{"baseTemperature":8.66,"monthlyVariance":[{"year":1900,"month":1,"variance":0}]}`,
			errors.ErrCodeDegenerateDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body)
			r := newTestRunner(t, newFileCache(t))

			result, err := r.Execute(context.Background(), Options{Source: srv.URL})
			require.True(t, errors.Is(err, tt.code), "error = %v, want code %s", err, tt.code)
			assert.Nil(t, result, "failed run returns no result")
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, sampleBody(t))
	r := newTestRunner(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Execute(ctx, Options{Source: srv.URL})
	assert.Error(t, err, "canceled context fails the load")
}

func TestRender(t *testing.T) {
	r := newTestRunner(t, nil)
	opts := Options{Source: sampleSource}
	ds, err := r.Load(context.Background(), opts)
	require.NoError(t, err)
	c, err := r.Build(ds, "", opts)
	require.NoError(t, err)
	assert.Regexp(t, `^heatmap-`, c.ID)

	artifacts, err := Render(context.Background(), c, Options{Formats: []string{FormatSVG, FormatJSON}})
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingHooks) OnBuildComplete(_ context.Context, cells int, _ time.Duration, _ error) {
	h.record("build")
}
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}
func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string)  { h.record("hit:" + keyType) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) { h.record("miss:" + keyType) }

func TestExecuteHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t, newFileCache(t))
	_, err := r.Execute(context.Background(), Options{Source: sampleSource})
	require.NoError(t, err)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Equal(t, []string{"load", "miss:dataset", "build", "miss:artifact", "render"}, h.events)
}
