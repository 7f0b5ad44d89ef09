package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	sandbox(t)
	buf := captureOutput(t)
	t.Setenv("HEATMAP_CHART_PALETTE", "Spectral")

	require.NoError(t, run(t, "config", "show"))
	got := buf.String()
	for _, want := range []string{`source = "https://`, "[chart]", `palette = "Spectral"`, "[cache]"} {
		assert.Contains(t, got, want)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := sandbox(t)
	buf := captureOutput(t)

	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("source = \"local.json\"\n"), 0o644))

	require.NoError(t, run(t, "--config", path, "config", "show"))
	assert.Contains(t, buf.String(), `source = "local.json"`, "config file not applied")

	buf.Reset()
	require.NoError(t, run(t, "--config", path, "config", "path"))
	assert.Equal(t, path, strings.TrimSpace(buf.String()))
}

func TestConfigInvalid(t *testing.T) {
	dir := sandbox(t)
	captureOutput(t)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chart]\nwidth = -1.0\n"), 0o644))
	assert.Error(t, run(t, "--config", path, "config", "show"), "invalid config should fail every command")
}

func TestCachePathAndClear(t *testing.T) {
	src := sampleDataset(t)
	dir := sandbox(t)
	buf := captureOutput(t)

	require.NoError(t, run(t, "cache", "path"))
	want := filepath.Join(dir, "cache", appName)
	assert.Equal(t, want, strings.TrimSpace(buf.String()))

	require.NoError(t, run(t, "render", src, "-o", filepath.Join(dir, "x.svg")))
	entries, _ := os.ReadDir(want)
	require.NotEmpty(t, entries, "render should populate the cache")

	buf.Reset()
	require.NoError(t, run(t, "cache", "clear"))
	assert.Contains(t, buf.String(), "Cleared file cache")

	entries, _ = os.ReadDir(want)
	assert.Empty(t, entries)
}

func TestCacheDisabled(t *testing.T) {
	sandbox(t)
	buf := captureOutput(t)
	t.Setenv("HEATMAP_CACHE_BACKEND", "none")

	require.NoError(t, run(t, "cache", "clear"))
	assert.Contains(t, buf.String(), "disabled")
}

func TestCompletion(t *testing.T) {
	sandbox(t)
	buf := captureOutput(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		buf.Reset()
		assert.NoError(t, run(t, "completion", shell), shell)
		assert.NotZero(t, buf.Len(), "completion %s wrote nothing", shell)
	}
	assert.Error(t, run(t, "completion", "tcsh"), "unknown shell should fail")
}

func TestCompleteList(t *testing.T) {
	got, _ := completeList([]string{"html", "json", "png", "svg"}, "svg,j")
	assert.Equal(t, []string{"svg,json"}, got)

	got, _ = completeList([]string{"RdBu", "RdYlBu", "Spectral"}, "Rd")
	assert.Len(t, got, 2)
}
