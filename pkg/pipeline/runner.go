package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pseudoloc/pkg/cache"
	"github.com/matzehuels/pseudoloc/pkg/culture"
	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
	"github.com/matzehuels/pseudoloc/pkg/observability"
	"github.com/matzehuels/pseudoloc/pkg/resource"
	"github.com/matzehuels/pseudoloc/pkg/transform"
)

// cacheKeyType labels document entries in cache hooks.
const cacheKeyType = "document"

// Runner encapsulates localization with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds how long documents stay cached. Zero uses cache.TTLDocument.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedDocument is the cache payload for a localized document.
type cachedDocument struct {
	Data    []byte `json:"data"`
	Entries int    `json:"entries"`
}

// LocalizeDocument rewrites every localizable value of src.
func (r *Runner) LocalizeDocument(ctx context.Context, src []byte, format resource.Format, opts Options) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	walker, err := resource.NewWalker(format)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnDocumentStart(ctx, string(format), len(src))

	key := r.Keyer.DocumentKey(cache.Hash(src), cache.DocumentKeyOpts{
		Format:     string(format),
		Transforms: transform.Strings(opts.Transforms),
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedDocument
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				res := &DocumentResult{
					Data:     cached.Data,
					Entries:  cached.Entries,
					CacheHit: true,
					Duration: time.Since(start),
				}
				hooks.OnDocumentComplete(ctx, string(format), res.Entries, res.Duration, nil)
				return res, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	data, n, err := resource.Localize(walker, src, resource.Values(opts.Apply))
	if err != nil {
		hooks.OnDocumentComplete(ctx, string(format), n, time.Since(start), err)
		return nil, err
	}

	if payload, err := json.Marshal(cachedDocument{Data: data, Entries: n}); err == nil {
		if err := r.Cache.Set(ctx, key, payload, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(payload))
		}
	}

	res := &DocumentResult{Data: data, Entries: n, Duration: time.Since(start)}
	hooks.OnDocumentComplete(ctx, string(format), n, res.Duration, nil)
	return res, nil
}

// OutputPath returns where a localized copy of input is written.
func (o *Options) OutputPath(input string) string {
	if o.OutputDir != "" {
		return culture.OutputPathIn(o.OutputDir, input, o.Culture)
	}
	return culture.OutputPath(input, o.Culture)
}

// LocalizeFile localizes one file and writes the result.
func (r *Runner) LocalizeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := perrors.ValidatePath(path); err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		f, err := resource.DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	out := opts.OutputPath(path)
	if filepath.Clean(out) == filepath.Clean(path) {
		return nil, perrors.New(perrors.ErrCodeInvalidInput,
			"%s already carries culture %s; output would overwrite the input", path, opts.Culture)
	}

	src, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := r.LocalizeDocument(ctx, src, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(out, doc.Data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}

	opts.Logger.Debug("localized file",
		"input", path,
		"output", out,
		"entries", doc.Entries,
		"cached", doc.CacheHit,
		"duration", doc.Duration)

	return &Result{
		Input:    path,
		Output:   out,
		Format:   format,
		Entries:  doc.Entries,
		Duration: doc.Duration,
		CacheHit: doc.CacheHit,
	}, nil
}

// LocalizeFiles localizes paths concurrently, bounded by opts.Concurrency.
// Results come back in input order. A file that fails records its error in
// Result.Err and does not stop the others; the returned error is non-nil
// only for invalid options or a cancelled context.
func (r *Runner) LocalizeFiles(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	results := make([]*Result, len(paths))

	// Two inputs that map to one output would race on the same file.
	owners := make(map[string]string, len(paths))
	skip := make([]error, len(paths))
	for i, p := range paths {
		out := filepath.Clean(opts.OutputPath(p))
		if first, ok := owners[out]; ok {
			skip[i] = perrors.New(perrors.ErrCodeInvalidInput,
				"output %s is already written from %s", out, first)
			continue
		}
		owners[out] = p
	}

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)
	for i, p := range paths {
		if skip[i] != nil {
			results[i] = &Result{Input: p, Err: skip[i]}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = &Result{Input: p, Err: err}
				return nil
			}
			res, err := r.LocalizeFile(ctx, p, opts)
			if err != nil {
				res = &Result{Input: p, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	failed := Failed(results)
	observability.Pipeline().OnBatchComplete(ctx, len(paths), failed, time.Since(start))
	opts.Logger.Debug("localized files", "files", len(paths), "failed", failed, "duration", time.Since(start))

	return results, ctx.Err()
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLDocument
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
