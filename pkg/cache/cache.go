// Package cache stores fetched datasets and rendered artifacts between runs.
//
// # Backends
//
//   - [FileCache]: zstd-compressed entries under a directory (CLI default)
//   - [RedisCache]: shared cache for several machines
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// Keys are produced by a [Keyer] so the pipeline never builds key strings
// by hand. A dataset is keyed by its source; an artifact by the hash of the
// dataset bytes plus every option that changes the output. [ScopedKeyer]
// prefixes all keys, e.g. to separate environments sharing one Redis.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	DatasetTTL  = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeDataset  = "dataset"
	KeyTypeArtifact = "artifact"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A miss is (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer derives cache keys.
type Keyer interface {
	// DatasetKey keys the raw bytes fetched from source.
	DatasetKey(source string) string
	// ArtifactKey keys one rendered output of a dataset.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Palette      string  `json:"palette"`
	PaletteOrder string  `json:"palette_order"`
	XTicks       int     `json:"x_ticks"`
	Title        string  `json:"title,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey returns "dataset:<sha256(source)>".
func (DefaultKeyer) DatasetKey(source string) string {
	return hashKey(KeyTypeDataset, source)
}

// ArtifactKey returns "artifact:<sha256(datasetHash, opts)>".
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, datasetHash, opts)
}
