package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/pipeline"
)

const configFileName = "config.toml"

// Cache backends.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Document stores for "roomml serve".
const (
	storeMemory = "memory"
	storeFile   = "file"
	storeMongo  = "mongo"
)

// Config is the contents of config.toml.
//
//	[render]
//	formats = ["svg", "mesh"]
//	mesh_cells = 120
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	prefix = "roomml:staging:"
//
//	[serve]
//	addr = ":8080"
//	store = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Formats   []string `toml:"formats"`
	MeshCells int      `toml:"mesh_cells"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`

	// Prefix scopes every key, so several deployments can share one Redis.
	Prefix string `toml:"prefix"`
}

// ServeConfig configures "roomml serve".
type ServeConfig struct {
	Addr          string `toml:"addr"`
	Store         string `toml:"store"`
	StoreDir      string `toml:"store_dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

func defaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Formats:   []string{pipeline.FormatSVG},
			MeshCells: pipeline.DefaultMeshCells,
		},
		Cache: CacheConfig{
			Backend:   cacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Serve: ServeConfig{
			Addr:          ":8080",
			Store:         storeMemory,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
	}
}

// loadConfig reads the config file at path on top of the defaults. With an
// empty path the default location is used, and a missing file there is not
// an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidPath, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if err := pipeline.ValidateMeshCells(c.Render.MeshCells); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendRedis, cacheBackendNone:
	default:
		return apperr.New(apperr.ErrCodeInvalidInput, "unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	switch c.Serve.Store {
	case storeMemory, storeFile, storeMongo:
	default:
		return apperr.New(apperr.ErrCodeInvalidInput, "unknown store %q (must be memory, file or mongo)", c.Serve.Store)
	}
	return nil
}
