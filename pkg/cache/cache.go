// Package cache provides pluggable storage for pseudo-localized documents.
//
// Localizing a document is deterministic: the same bytes run through the same
// transforms always produce the same output. The pipeline runner therefore
// keys results by a hash of the input plus the options that affect the
// output, and stores them in a [Cache].
//
// # Backends
//
//   - [FileCache]: JSON envelopes under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP service
//   - [MongoCache]: shared cache with server-side TTL expiry
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys. [DefaultKeyer] hashes all key components;
// [ScopedKeyer] adds a prefix so several deployments can share one backend.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLDocument is how long a localized document stays cached.
const TTLDocument = 7 * 24 * time.Hour

// Cache stores opaque byte values by key.
//
// Get reports a miss with hit=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DocumentKeyOpts holds the options that change a localized document.
type DocumentKeyOpts struct {
	Format     string   `json:"format"`
	Transforms []string `json:"transforms"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey returns the key for a localized document, given the hash
	// of its source bytes.
	DocumentKey(contentHash string, opts DocumentKeyOpts) string
}

// DefaultKeyer produces "doc:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey implements Keyer. Transform order is significant.
func (DefaultKeyer) DocumentKey(contentHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", contentHash, opts)
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend string

	// Dir is the FileCache directory.
	Dir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Prefix namespaces keys in shared backends.
	Prefix string
}

// Open creates the backend named by opts.Backend. An empty name selects the
// file cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, MongoOptions{
			URI:        opts.MongoURI,
			Database:   opts.MongoDatabase,
			Collection: opts.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
