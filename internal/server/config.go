package server

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/viewmorph/viewmorph/pkg/cache"
	"github.com/viewmorph/viewmorph/pkg/store"
)

// Config configures the HTTP service. Fields map to a TOML file passed to
// the serve command; zero values take the development defaults (local
// address, file cache, in-memory store).
type Config struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "null".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty uses the standard
	// cache directory.
	Dir string `toml:"dir"`

	// Addr, Password, and DB configure the redis backend.
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	// Backend is one of "memory" or "mongo".
	Backend string `toml:"backend"`

	// URI and Database configure the mongo backend.
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		Addr:  ":8080",
		Cache: CacheConfig{Backend: "file"},
		Store: StoreConfig{Backend: "memory"},
	}
}

// LoadConfig reads a TOML config file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks backend selections and their required settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "file", "null":
	case "redis":
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache backend %q needs an addr", c.Cache.Backend)
		}
	default:
		return fmt.Errorf("unknown cache backend %q (choose one of file, redis, null)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case "memory":
	case "mongo":
		if c.Store.URI == "" {
			return fmt.Errorf("store backend %q needs a uri", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q (choose one of memory, mongo)", c.Store.Backend)
	}
	return nil
}

// BuildCache constructs the configured cache backend.
func (c Config) BuildCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Addr,
			Password: c.Cache.Password,
			DB:       c.Cache.DB,
		})
	case "null":
		return cache.NewNullCache(), nil
	default:
		dir := c.Cache.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// BuildStore constructs the configured record store backend.
func (c Config) BuildStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      c.Store.URI,
			Database: c.Store.Database,
		})
	default:
		return store.NewMemoryStore(), nil
	}
}
