// Package config loads pseudoloc settings from a TOML file and the
// environment.
//
// Lookup order for the file: an explicit path, $PSEUDOLOC_CONFIG,
// ./.pseudoloc.toml, then $XDG_CONFIG_HOME/pseudoloc/config.toml. A missing
// file is not an error; defaults apply. Environment variables override file
// values, and command-line flags override both.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pseudoloc/pkg/cache"
	"github.com/matzehuels/pseudoloc/pkg/culture"
	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
	"github.com/matzehuels/pseudoloc/pkg/transform"
)

const (
	appName = "pseudoloc"

	// EnvConfig names a config file to load.
	EnvConfig = "PSEUDOLOC_CONFIG"

	// LocalFile is looked up in the working directory.
	LocalFile = ".pseudoloc.toml"
)

// Environment overrides.
const (
	EnvCacheBackend = "PSEUDOLOC_CACHE_BACKEND"
	EnvRedisAddr    = "PSEUDOLOC_REDIS_ADDR"
	EnvMongoURI     = "PSEUDOLOC_MONGO_URI"
	EnvServerAddr   = "PSEUDOLOC_ADDR"
)

// Duration is a time.Duration written as a string ("30s", "168h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the full set of file-configurable settings.
type Config struct {
	Culture     string   `toml:"culture"`
	Transforms  []string `toml:"transforms"`
	Concurrency int      `toml:"concurrency"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	path string
}

// CacheConfig selects the document cache backend.
type CacheConfig struct {
	Backend string   `toml:"backend"` // file, redis, mongo or none
	TTL     Duration `toml:"ttl"`
	Dir     string   `toml:"dir"`
	Prefix  string   `toml:"prefix"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures `pseudoloc serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Culture:    culture.Default,
		Transforms: transform.Strings(transform.Defaults()),
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.TTLDocument},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			MaxBodyBytes: 10 << 20,
		},
	}
}

// Load reads the config file at path, or the first file found by Lookup when
// path is empty, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Lookup()
	}
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, os.ErrNotExist) && explicit:
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file %s", path)
		case errors.Is(err, os.ErrNotExist):
			path = ""
		case err != nil:
			return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return nil, perrors.New(perrors.ErrCodeInvalidConfig,
					"%s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
		}
	}
	cfg.path = path

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Lookup returns the first config file that exists, or "".
func Lookup() string {
	candidates := []string{os.Getenv(EnvConfig), LocalFile}
	if dir, err := Dir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Dir returns the config directory using XDG standard (~/.config/pseudoloc/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/pseudoloc/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string { return c.path }

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Cache.MongoURI = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

var backends = []string{cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone}

// Validate checks every setting and reports the first problem as an
// INVALID_CONFIG error.
func (c *Config) Validate() error {
	if _, err := transform.ParseIDs(c.Transforms); err != nil {
		return c.invalid(err, "transforms")
	}
	if c.Culture != "" {
		if err := culture.Validate(c.Culture); err != nil {
			return c.invalid(err, "culture")
		}
	}
	if c.Concurrency < 0 {
		return c.invalid(errors.New("must not be negative"), "concurrency")
	}
	if c.Cache.Backend != "" && !slices.Contains(backends, c.Cache.Backend) {
		return c.invalid(errors.New("must be one of: "+strings.Join(backends, ", ")), "cache.backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return c.invalid(errors.New("must not be negative"), "cache.ttl")
	}
	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return c.invalid(errors.New("must not be negative"), "server timeouts")
	}
	if c.Server.MaxBodyBytes < 0 {
		return c.invalid(errors.New("must not be negative"), "server.max_body_bytes")
	}
	return nil
}

func (c *Config) invalid(err error, key string) error {
	where := "config"
	if c.path != "" {
		where = c.path
	}
	return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s: %s", where, key)
}

// TransformIDs resolves the configured transform names.
func (c *Config) TransformIDs() ([]transform.ID, error) {
	return transform.ParseIDs(c.Transforms)
}

// CacheOptions converts the cache section for cache.Open. An empty Dir
// falls back to CacheDir.
func (c *Config) CacheOptions() cache.Options {
	dir := c.Cache.Dir
	if dir == "" {
		dir, _ = CacheDir()
	}
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             dir,
		RedisAddr:       c.Cache.RedisAddr,
		RedisPassword:   c.Cache.RedisPassword,
		RedisDB:         c.Cache.RedisDB,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
		Prefix:          c.Cache.Prefix,
	}
}
