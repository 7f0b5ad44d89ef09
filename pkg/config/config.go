// Package config loads heatmap settings.
//
// Settings are resolved in order, later layers overriding earlier ones:
//
//  1. compiled defaults ([Default])
//  2. a TOML file (default $XDG_CONFIG_HOME/heatmap/config.toml)
//  3. a .env file in the working directory (via godotenv; never overrides
//     variables already set)
//  4. HEATMAP_* environment variables, e.g. HEATMAP_SOURCE,
//     HEATMAP_CHART_WIDTH, HEATMAP_CACHE_BACKEND
//
// CLI flags are applied on top by the command layer. The merged result is
// validated before use.
package config

import (
	"time"

	"github.com/matzehuels/heatmap/pkg/chart"
	"github.com/matzehuels/heatmap/pkg/dataset"
	"github.com/matzehuels/heatmap/pkg/palette"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "HEATMAP"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete heatmap configuration.
type Config struct {
	// Source is the dataset URL or file path.
	Source  string        `toml:"source" envconfig:"SOURCE" validate:"required"`
	Timeout time.Duration `toml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	// MetricsFile, when set, receives Prometheus metrics after each run.
	MetricsFile string `toml:"metrics_file,omitempty" envconfig:"METRICS_FILE"`

	Chart ChartConfig `toml:"chart" envconfig:"CHART"`
	Cache CacheConfig `toml:"cache" envconfig:"CACHE"`
}

// ChartConfig controls layout and output.
type ChartConfig struct {
	Width        float64  `toml:"width" envconfig:"WIDTH" validate:"gt=0"`
	Height       float64  `toml:"height" envconfig:"HEIGHT" validate:"gt=0"`
	Palette      string   `toml:"palette" envconfig:"PALETTE" validate:"required"`
	PaletteSize  int      `toml:"palette_size" envconfig:"PALETTE_SIZE" validate:"gte=3,lte=11"`
	PaletteOrder string   `toml:"palette_order" envconfig:"PALETTE_ORDER" validate:"oneof=warm-first cool-first"`
	XTicks       int      `toml:"x_ticks" envconfig:"X_TICKS" validate:"gte=1,lte=100"`
	Formats      []string `toml:"formats" envconfig:"FORMATS" validate:"min=1,dive,oneof=svg html json png pdf"`
	PNGScale     float64  `toml:"png_scale" envconfig:"PNG_SCALE" validate:"gt=0,lte=8"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend     string        `toml:"backend" envconfig:"BACKEND" validate:"oneof=file redis none"`
	Dir         string        `toml:"dir,omitempty" envconfig:"DIR"`
	RedisURL    string        `toml:"redis_url,omitempty" envconfig:"REDIS_URL" validate:"required_if=Backend redis"`
	Prefix      string        `toml:"prefix,omitempty" envconfig:"PREFIX"`
	DatasetTTL  time.Duration `toml:"dataset_ttl" envconfig:"DATASET_TTL" validate:"gte=0"`
	ArtifactTTL time.Duration `toml:"artifact_ttl" envconfig:"ARTIFACT_TTL" validate:"gte=0"`
}

// Default returns the compiled defaults.
func Default() *Config {
	return &Config{
		Source:  dataset.DefaultSource,
		Timeout: dataset.DefaultTimeout,
		Chart: ChartConfig{
			Width:        chart.DefaultWidth,
			Height:       chart.DefaultHeight,
			Palette:      palette.DefaultName,
			PaletteSize:  palette.DefaultSize,
			PaletteOrder: string(palette.WarmFirst),
			XTicks:       chart.DefaultXTicks,
			Formats:      []string{"svg"},
			PNGScale:     2,
		},
		Cache: CacheConfig{
			Backend:     BackendFile,
			DatasetTTL:  24 * time.Hour,
			ArtifactTTL: 7 * 24 * time.Hour,
		},
	}
}

// ResolvePalette resolves the configured palette.
func (c ChartConfig) ResolvePalette() (palette.Palette, error) {
	order, err := palette.ParseOrder(c.PaletteOrder)
	if err != nil {
		return palette.Palette{}, err
	}
	return palette.Parse(c.Palette, c.PaletteSize, order)
}

// RenderContext builds the chart render context for these settings.
func (c ChartConfig) RenderContext() (chart.RenderContext, error) {
	p, err := c.ResolvePalette()
	if err != nil {
		return chart.RenderContext{}, err
	}
	rc := chart.DefaultRenderContext()
	rc.Dimensions.Width = c.Width
	rc.Dimensions.Height = c.Height
	rc.Palette = p
	rc.XTicks = c.XTicks
	return rc, nil
}
