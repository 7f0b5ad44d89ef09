package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "global-temperature.json")
	p.OnLoadComplete(ctx, "global-temperature.json", 3153, time.Second, nil)
	p.OnBuildStart(ctx, 3153)
	p.OnBuildComplete(ctx, 3153, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg", "html"})
	p.OnRenderComplete(ctx, []string{"svg", "html"}, time.Second, errors.New("boom"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "dataset")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "raw.githubusercontent.com", "/global-temperature.json")
	h.OnResponse(ctx, "GET", "raw.githubusercontent.com", "/global-temperature.json", 200, time.Second)
	h.OnError(ctx, "GET", "raw.githubusercontent.com", "/global-temperature.json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	assert.IsType(t, NoopPipelineHooks{}, Pipeline())
	assert.IsType(t, NoopCacheHooks{}, Cache())
	assert.IsType(t, NoopHTTPHooks{}, HTTP())

	prom := NewPrometheus()
	SetPipelineHooks(prom)
	SetCacheHooks(prom)
	SetHTTPHooks(prom)
	assert.Same(t, prom, Pipeline())
	assert.Same(t, prom, Cache())
	assert.Same(t, prom, HTTP())

	Reset()
	assert.IsType(t, NoopPipelineHooks{}, Pipeline(), "Reset restores the no-op hooks")
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	assert.Same(t, custom, Pipeline(), "SetPipelineHooks(nil) is ignored")
}

type testPipelineHooks struct{ NoopPipelineHooks }
