// Package config loads the settings of the logica CLI and server.
//
// Sources, lowest precedence first: built-in defaults, the YAML file, a .env file
// in the working directory, LOGICA_* environment variables. Command-line flags
// are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/logica/pkg/registry"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no path is given and it exists.
const DefaultFile = "logica.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

type Config struct {
	Store  Store           `yaml:"store"`
	Server Server          `yaml:"server"`
	Log    Log             `yaml:"log"`
	Editor Editor          `yaml:"editor"`
	Kinds  []registry.Spec `yaml:"kinds"`
}

type Store struct {
	Driver string `yaml:"driver"`
	// Path is the survey directory of the file driver.
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	Redis  Redis  `yaml:"redis"`
}

type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
	Lock     bool          `yaml:"lock"`
}

type Server struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Editor struct {
	ShowTitles bool `yaml:"showTitles"`
	ReadOnly   bool `yaml:"readOnly"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Store: Store{
			Driver: DriverFile,
			Path:   ".",
			Format: "json",
			Redis:  Redis{Addr: "localhost:6379", Prefix: "logica:document:"},
		},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads path (or DefaultFile when path is empty and the file exists), then
// applies .env and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from LOGICA_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
		return nil
	}

	str("LOGICA_STORE", &c.Store.Driver)
	str("LOGICA_STORE_PATH", &c.Store.Path)
	str("LOGICA_STORE_FORMAT", &c.Store.Format)
	str("LOGICA_REDIS_ADDR", &c.Store.Redis.Addr)
	str("LOGICA_REDIS_PASSWORD", &c.Store.Redis.Password)
	str("LOGICA_REDIS_PREFIX", &c.Store.Redis.Prefix)
	str("LOGICA_ADDR", &c.Server.Addr)
	str("LOGICA_LOG_LEVEL", &c.Log.Level)
	str("LOGICA_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("LOGICA_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGICA_REDIS_DB: %w", err)
		}
		c.Store.Redis.DB = db
	}
	if v, ok := lookup("LOGICA_REDIS_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LOGICA_REDIS_TTL: %w", err)
		}
		c.Store.Redis.TTL = ttl
	}
	for key, dst := range map[string]*bool{
		"LOGICA_REDIS_LOCK":  &c.Store.Redis.Lock,
		"LOGICA_METRICS":     &c.Server.Metrics,
		"LOGICA_SHOW_TITLES": &c.Editor.ShowTitles,
		"LOGICA_READ_ONLY":   &c.Editor.ReadOnly,
	} {
		if err := boolean(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case DriverMemory, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Registry returns the built-in kinds plus the configured ones.
func (c *Config) Registry() (*registry.Registry, error) {
	reg := registry.NewDefault()
	if err := reg.RegisterSpecs(c.Kinds); err != nil {
		return nil, fmt.Errorf("invalid kinds: %w", err)
	}
	return reg, nil
}
